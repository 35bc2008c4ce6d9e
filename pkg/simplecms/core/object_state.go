package core

import (
	"context"
	"maps"
	"slices"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// contentStates holds the explicit states of one content item keyed by
// state group. Groups without an entry are on their default state.
type contentStates struct {
	ContentID int64           `json:"content_id"`
	States    map[int64]int64 `json:"states"`
}

type objectStateService struct{ *Repository }

func (r *Repository) loadStateGroup(ctx context.Context, id int64) (*simplecms.ObjectStateGroup, error) {
	g, err := r.stateGroups.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "objectStateGroup", id)
	}
	return &g, nil
}

func (r *Repository) loadState(ctx context.Context, id int64) (*simplecms.ObjectState, error) {
	st, err := r.states.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "objectState", id)
	}
	return &st, nil
}

// statesOf returns the states of a group ordered by priority.
func (r *Repository) statesOf(ctx context.Context, groupID int64) ([]simplecms.ObjectState, error) {
	states, err := r.states.Find(ctx, func(st simplecms.ObjectState) bool { return st.GroupID == groupID })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(states, func(a, b simplecms.ObjectState) int { return a.Priority - b.Priority })
	return states, nil
}

// stateIDsOf returns the state of the content in every group, falling back
// to the default state of groups without an explicit one.
func (r *Repository) stateIDsOf(ctx context.Context, contentID int64) ([]int64, error) {
	explicit, err := r.contentStates.Get(ctx, contentID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	groups, err := r.stateGroups.All(ctx)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, g := range groups {
		if id, ok := explicit.States[g.ID]; ok {
			ids = append(ids, id)
			continue
		}
		states, err := r.statesOf(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		if len(states) > 0 {
			ids = append(ids, states[0].ID)
		}
	}
	return ids, nil
}

func (s objectStateService) LoadObjectStateGroup(ctx context.Context, id int64) (*simplecms.ObjectStateGroup, error) {
	return s.loadStateGroup(ctx, id)
}

func (s objectStateService) LoadObjectStateGroupByIdentifier(ctx context.Context, identifier string) (*simplecms.ObjectStateGroup, error) {
	g, ok, err := s.stateGroups.First(ctx, func(g simplecms.ObjectStateGroup) bool { return g.Identifier == identifier })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "objectStateGroup", Identifier: identifier}
	}
	return &g, nil
}

func (s objectStateService) LoadObjectStateGroups(ctx context.Context) ([]*simplecms.ObjectStateGroup, error) {
	groups, err := s.stateGroups.All(ctx)
	if err != nil {
		return nil, err
	}
	return ptrs(groups), nil
}

func (s objectStateService) LoadObjectStates(ctx context.Context, group *simplecms.ObjectStateGroup) ([]*simplecms.ObjectState, error) {
	if _, err := s.loadStateGroup(ctx, group.ID); err != nil {
		return nil, err
	}
	states, err := s.statesOf(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	return ptrs(states), nil
}

func (s objectStateService) LoadObjectState(ctx context.Context, id int64) (*simplecms.ObjectState, error) {
	return s.loadState(ctx, id)
}

func (s objectStateService) LoadObjectStateByIdentifier(ctx context.Context, group *simplecms.ObjectStateGroup, identifier string) (*simplecms.ObjectState, error) {
	st, ok, err := s.states.First(ctx, func(st simplecms.ObjectState) bool {
		return st.GroupID == group.ID && st.Identifier == identifier
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "objectState", Identifier: identifier}
	}
	return &st, nil
}

func (s objectStateService) GetContentState(ctx context.Context, contentInfo *simplecms.ContentInfo, group *simplecms.ObjectStateGroup) (*simplecms.ObjectState, error) {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	g, err := s.loadStateGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	explicit, err := s.contentStates.Get(ctx, info.ID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if id, ok := explicit.States[g.ID]; ok {
		return s.loadState(ctx, id)
	}
	states, err := s.statesOf(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, &simplecms.NotFoundError{What: "objectState", Identifier: "default of group " + g.Identifier}
	}
	return &states[0], nil
}

func (s objectStateService) GetContentCount(ctx context.Context, state *simplecms.ObjectState) (int, error) {
	st, err := s.loadState(ctx, state.ID)
	if err != nil {
		return 0, err
	}
	states, err := s.statesOf(ctx, st.GroupID)
	if err != nil {
		return 0, err
	}
	isDefault := len(states) > 0 && states[0].ID == st.ID

	explicit, err := s.contentStates.All(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	assigned := make(map[int64]bool, len(explicit))
	for _, cs := range explicit {
		id, ok := cs.States[st.GroupID]
		if !ok {
			continue
		}
		assigned[cs.ContentID] = true
		if id == st.ID {
			count++
		}
	}
	if isDefault {
		implicit, err := s.contentInfos.Count(ctx, func(info simplecms.ContentInfo) bool { return !assigned[info.ID] })
		if err != nil {
			return 0, err
		}
		count += implicit
	}
	return count, nil
}

func (s objectStateService) CreateObjectStateGroup(ctx context.Context, create simplecms.ObjectStateGroupCreateStruct) (*simplecms.ObjectStateGroup, error) {
	if err := s.require(ctx, "state", "administrate", nil); err != nil {
		return nil, err
	}
	if create.Identifier == "" {
		return nil, invalid("identifier", "must not be empty")
	}
	if create.DefaultLanguageCode == "" {
		return nil, invalid("defaultLanguageCode", "must not be empty")
	}
	if err := s.uniqueStateGroup(ctx, create.Identifier, 0); err != nil {
		return nil, err
	}
	g, err := s.stateGroups.Create(ctx, func(id int64) simplecms.ObjectStateGroup {
		return simplecms.ObjectStateGroup{
			ID:                  id,
			Identifier:          create.Identifier,
			DefaultLanguageCode: create.DefaultLanguageCode,
			Names:               create.Names,
			Descriptions:        create.Descriptions,
		}
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repository) uniqueStateGroup(ctx context.Context, identifier string, self int64) error {
	_, exists, err := r.stateGroups.First(ctx, func(g simplecms.ObjectStateGroup) bool {
		return g.Identifier == identifier && g.ID != self
	})
	if err != nil {
		return err
	}
	if exists {
		return invalid("identifier", "object state group %q already exists", identifier)
	}
	return nil
}

func (s objectStateService) UpdateObjectStateGroup(ctx context.Context, group *simplecms.ObjectStateGroup, update simplecms.ObjectStateGroupUpdateStruct) (*simplecms.ObjectStateGroup, error) {
	if err := s.require(ctx, "state", "administrate", nil); err != nil {
		return nil, err
	}
	g, err := s.loadStateGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if update.Identifier != nil && *update.Identifier != g.Identifier {
		if err := s.uniqueStateGroup(ctx, *update.Identifier, g.ID); err != nil {
			return nil, err
		}
		g.Identifier = *update.Identifier
	}
	if update.DefaultLanguageCode != nil {
		g.DefaultLanguageCode = *update.DefaultLanguageCode
	}
	if update.Names != nil {
		g.Names = update.Names
	}
	if update.Descriptions != nil {
		g.Descriptions = update.Descriptions
	}
	if err := s.stateGroups.Put(ctx, g.ID, *g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s objectStateService) DeleteObjectStateGroup(ctx context.Context, group *simplecms.ObjectStateGroup) error {
	if err := s.require(ctx, "state", "administrate", nil); err != nil {
		return err
	}
	g, err := s.loadStateGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	states, err := s.statesOf(ctx, g.ID)
	if err != nil {
		return err
	}
	for _, st := range states {
		if err := s.states.Delete(ctx, st.ID); err != nil {
			return err
		}
	}
	if err := s.dropContentStates(ctx, g.ID, 0); err != nil {
		return err
	}
	return s.stateGroups.Delete(ctx, g.ID)
}

// dropContentStates removes explicit content states of a group, or only
// those pointing at stateID when it is not zero, and reindexes the content.
func (r *Repository) dropContentStates(ctx context.Context, groupID, stateID int64) error {
	all, err := r.contentStates.All(ctx)
	if err != nil {
		return err
	}
	for _, cs := range all {
		id, ok := cs.States[groupID]
		if !ok || (stateID != 0 && id != stateID) {
			continue
		}
		delete(cs.States, groupID)
		if len(cs.States) == 0 {
			err = r.contentStates.Delete(ctx, cs.ContentID)
		} else {
			err = r.contentStates.Put(ctx, cs.ContentID, cs)
		}
		if err != nil {
			return err
		}
		if err := r.reindex(ctx, cs.ContentID); err != nil {
			return err
		}
	}
	return nil
}

func (s objectStateService) CreateObjectState(ctx context.Context, group *simplecms.ObjectStateGroup, create simplecms.ObjectStateCreateStruct) (*simplecms.ObjectState, error) {
	if err := s.require(ctx, "state", "administrate", nil); err != nil {
		return nil, err
	}
	g, err := s.loadStateGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if create.Identifier == "" {
		return nil, invalid("identifier", "must not be empty")
	}
	states, err := s.statesOf(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(states, func(st simplecms.ObjectState) bool { return st.Identifier == create.Identifier }) {
		return nil, invalid("identifier", "object state %q already exists in group %q", create.Identifier, g.Identifier)
	}
	priority := 0
	if create.Priority != nil {
		priority = *create.Priority
	} else if len(states) > 0 {
		priority = states[len(states)-1].Priority + 1
	}
	lang := create.DefaultLanguageCode
	if lang == "" {
		lang = g.DefaultLanguageCode
	}

	st, err := s.states.Create(ctx, func(id int64) simplecms.ObjectState {
		return simplecms.ObjectState{
			ID:                  id,
			GroupID:             g.ID,
			Identifier:          create.Identifier,
			Priority:            priority,
			DefaultLanguageCode: lang,
			Names:               create.Names,
			Descriptions:        create.Descriptions,
		}
	})
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		// the first state of a group becomes the state of all content
		if err := s.Reindex(ctx); err != nil {
			return nil, err
		}
	}
	return &st, nil
}

func (s objectStateService) UpdateObjectState(ctx context.Context, state *simplecms.ObjectState, update simplecms.ObjectStateUpdateStruct) (*simplecms.ObjectState, error) {
	if err := s.require(ctx, "state", "administrate", nil); err != nil {
		return nil, err
	}
	st, err := s.loadState(ctx, state.ID)
	if err != nil {
		return nil, err
	}
	if update.Identifier != nil && *update.Identifier != st.Identifier {
		_, exists, err := s.states.First(ctx, func(o simplecms.ObjectState) bool {
			return o.GroupID == st.GroupID && o.Identifier == *update.Identifier
		})
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, invalid("identifier", "object state %q already exists", *update.Identifier)
		}
		st.Identifier = *update.Identifier
	}
	if update.DefaultLanguageCode != nil {
		st.DefaultLanguageCode = *update.DefaultLanguageCode
	}
	if update.Names != nil {
		st.Names = update.Names
	}
	if update.Descriptions != nil {
		st.Descriptions = update.Descriptions
	}
	if err := s.states.Put(ctx, st.ID, *st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s objectStateService) SetPriorityOfObjectState(ctx context.Context, state *simplecms.ObjectState, priority int) error {
	if err := s.require(ctx, "state", "administrate", nil); err != nil {
		return err
	}
	st, err := s.loadState(ctx, state.ID)
	if err != nil {
		return err
	}
	st.Priority = priority
	if err := s.states.Put(ctx, st.ID, *st); err != nil {
		return err
	}
	// the default state may have changed
	return s.Reindex(ctx)
}

func (s objectStateService) DeleteObjectState(ctx context.Context, state *simplecms.ObjectState) error {
	if err := s.require(ctx, "state", "administrate", nil); err != nil {
		return err
	}
	st, err := s.loadState(ctx, state.ID)
	if err != nil {
		return err
	}
	if err := s.states.Delete(ctx, st.ID); err != nil {
		return err
	}
	if err := s.dropContentStates(ctx, st.GroupID, st.ID); err != nil {
		return err
	}
	return s.Reindex(ctx)
}

func (s objectStateService) SetContentState(ctx context.Context, contentInfo *simplecms.ContentInfo, group *simplecms.ObjectStateGroup, state *simplecms.ObjectState) error {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return err
	}
	g, err := s.loadStateGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	st, err := s.loadState(ctx, state.ID)
	if err != nil {
		return err
	}
	if st.GroupID != g.ID {
		return invalid("objectState", "state %q does not belong to group %q", st.Identifier, g.Identifier)
	}
	if err := s.require(ctx, "state", "assign", info); err != nil {
		return err
	}

	cs, err := s.contentStates.Get(ctx, info.ID)
	if isNotFound(err) {
		cs = contentStates{ContentID: info.ID}
	} else if err != nil {
		return err
	}
	states := maps.Clone(cs.States)
	if states == nil {
		states = make(map[int64]int64)
	}
	states[g.ID] = st.ID
	cs.States = states
	if err := s.contentStates.Put(ctx, info.ID, cs); err != nil {
		return err
	}
	s.logger.Debug("set content state", "content_id", info.ID, "group", g.Identifier, "state", st.Identifier)
	return s.reindex(ctx, info.ID)
}

var _ simplecms.ObjectStateService = objectStateService{}
