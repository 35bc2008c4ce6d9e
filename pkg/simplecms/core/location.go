package core

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

type locationService struct{ *Repository }

func (r *Repository) loadLocation(ctx context.Context, id int64) (*simplecms.Location, error) {
	loc, err := r.locations.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "location", id)
	}
	return &loc, nil
}

// locationsOf returns the locations of a content item ordered by ID.
func (r *Repository) locationsOf(ctx context.Context, contentID int64) ([]simplecms.Location, error) {
	if contentID == 0 {
		return nil, nil
	}
	return r.locations.Find(ctx, func(l simplecms.Location) bool { return l.ContentID == contentID })
}

// subtree returns loc and its descendants ordered by depth.
func (r *Repository) subtree(ctx context.Context, loc *simplecms.Location) ([]simplecms.Location, error) {
	locations, err := r.locations.Find(ctx, func(l simplecms.Location) bool {
		return strings.HasPrefix(l.PathString, loc.PathString)
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(locations, func(a, b simplecms.Location) int { return a.Depth - b.Depth })
	return locations, nil
}

// withContentInfo attaches the content info to a loaded location.
func (r *Repository) withContentInfo(ctx context.Context, loc *simplecms.Location) (*simplecms.Location, error) {
	if loc.ContentID == 0 {
		return loc, nil
	}
	info, err := r.loadInfo(ctx, loc.ContentID)
	if err != nil {
		return nil, err
	}
	loc.ContentInfo = info
	return loc, nil
}

func (r *Repository) putLocation(ctx context.Context, loc simplecms.Location) error {
	loc.ContentInfo = nil
	return r.locations.Put(ctx, loc.ID, loc)
}

// createLocation places a published content item below a parent.
func (r *Repository) createLocation(ctx context.Context, info *simplecms.ContentInfo, create simplecms.LocationCreateStruct) (*simplecms.Location, error) {
	parent, err := r.loadLocation(ctx, create.ParentLocationID)
	if err != nil {
		return nil, err
	}
	existing, err := r.locationsOf(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].ParentLocationID == parent.ID {
			return nil, invalid("parentLocation", "content %d already has a location below %d", info.ID, parent.ID)
		}
		if strings.HasPrefix(parent.PathString, existing[i].PathString) {
			return nil, invalid("parentLocation", "location %d is below a location of content %d", parent.ID, info.ID)
		}
	}

	if create.RemoteID == "" {
		create.RemoteID = uuid.NewString()
	} else if _, exists, err := r.locations.First(ctx, func(l simplecms.Location) bool { return l.RemoteID == create.RemoteID }); err != nil {
		return nil, err
	} else if exists {
		return nil, invalid("remoteId", "location with remote id %q already exists", create.RemoteID)
	}

	sortField, sortOrder := create.SortField, create.SortOrder
	if sortField == "" || sortOrder == "" {
		ct, err := r.contentTypes.Get(ctx, info.ContentTypeID)
		if err == nil {
			sortField = cmp.Or(sortField, ct.DefaultSortField)
			sortOrder = cmp.Or(sortOrder, ct.DefaultSortOrder)
		}
	}

	loc, err := r.locations.Create(ctx, func(id int64) simplecms.Location {
		return simplecms.Location{
			ID:               id,
			ContentID:        info.ID,
			ParentLocationID: parent.ID,
			PathString:       parent.PathString + strconv.FormatInt(id, 10) + "/",
			Depth:            parent.Depth + 1,
			Priority:         create.Priority,
			Hidden:           create.Hidden,
			Invisible:        create.Hidden || info.IsHidden || parent.Invisible,
			RemoteID:         create.RemoteID,
			SortField:        cmp.Or(sortField, simplecms.SortFieldPath),
			SortOrder:        cmp.Or(sortOrder, simplecms.SortAscending),
		}
	})
	if err != nil {
		return nil, err
	}

	if info.MainLocationID == 0 {
		info.MainLocationID = loc.ID
		if err := r.contentInfos.Put(ctx, info.ID, *info); err != nil {
			return nil, err
		}
	}
	r.logger.Debug("created location", "location_id", loc.ID, "content_id", info.ID, "parent_id", parent.ID)
	return &loc, nil
}

// deleteSubtree removes loc and its descendants. Content left without any
// location is deleted. It returns the IDs of the removed locations.
func (r *Repository) deleteSubtree(ctx context.Context, loc *simplecms.Location) ([]int64, error) {
	locations, err := r.subtree(ctx, loc)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(locations))
	var contents []int64
	for _, l := range locations {
		if err := r.removeLocation(ctx, l.ID); err != nil {
			return nil, err
		}
		ids = append(ids, l.ID)
		if l.ContentID != 0 && !slices.Contains(contents, l.ContentID) {
			contents = append(contents, l.ContentID)
		}
	}
	for _, contentID := range contents {
		if err := r.afterLocationsRemoved(ctx, contentID, true); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// removeLocation deletes a location record together with its aliases and
// bookmarks.
func (r *Repository) removeLocation(ctx context.Context, id int64) error {
	if err := r.removeLocationAliases(ctx, id); err != nil {
		return err
	}
	bookmarks, err := r.bookmarks.Find(ctx, func(b simplecms.Bookmark) bool { return b.LocationID == id })
	if err != nil {
		return err
	}
	for _, b := range bookmarks {
		if err := r.bookmarks.Delete(ctx, b.ID); err != nil {
			return err
		}
	}
	return r.locations.Delete(ctx, id)
}

// afterLocationsRemoved fixes the main location of a content item that
// lost locations, or deletes it when none is left and deleteOrphan is set.
func (r *Repository) afterLocationsRemoved(ctx context.Context, contentID int64, deleteOrphan bool) error {
	info, err := r.loadInfo(ctx, contentID)
	if isNotFound(err) {
		return nil
	} else if err != nil {
		return err
	}
	remaining, err := r.locationsOf(ctx, contentID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		if deleteOrphan {
			return r.deleteContentData(ctx, contentID)
		}
		return nil
	}
	if !slices.ContainsFunc(remaining, func(l simplecms.Location) bool { return l.ID == info.MainLocationID }) {
		info.MainLocationID = remaining[0].ID
		if err := r.contentInfos.Put(ctx, info.ID, *info); err != nil {
			return err
		}
	}
	return r.reindex(ctx, contentID)
}

// updateVisibility recomputes the invisible flag of loc and its
// descendants. A location is invisible when it is hidden, its content is
// hidden or its parent is invisible.
func (r *Repository) updateVisibility(ctx context.Context, loc *simplecms.Location) error {
	locations, err := r.subtree(ctx, loc)
	if err != nil {
		return err
	}
	invisible := make(map[int64]bool, len(locations)+1)
	if loc.ParentLocationID != 0 {
		parent, err := r.loadLocation(ctx, loc.ParentLocationID)
		if err != nil {
			return err
		}
		invisible[parent.ID] = parent.Invisible
	}

	hidden := make(map[int64]bool)
	var touched []int64
	for _, l := range locations {
		contentHidden, ok := hidden[l.ContentID]
		if !ok && l.ContentID != 0 {
			info, err := r.loadInfo(ctx, l.ContentID)
			if err != nil {
				return err
			}
			contentHidden = info.IsHidden
			hidden[l.ContentID] = contentHidden
		}
		value := l.Hidden || contentHidden || invisible[l.ParentLocationID]
		invisible[l.ID] = value
		if value != l.Invisible {
			l.Invisible = value
			if err := r.putLocation(ctx, l); err != nil {
				return err
			}
		}
		if l.ContentID != 0 && !slices.Contains(touched, l.ContentID) {
			touched = append(touched, l.ContentID)
		}
	}
	for _, contentID := range touched {
		if err := r.reindex(ctx, contentID); err != nil {
			return err
		}
	}
	return nil
}

func (s locationService) LoadLocation(ctx context.Context, id int64) (*simplecms.Location, error) {
	loc, err := s.loadLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.readLocation(ctx, loc)
}

func (r *Repository) readLocation(ctx context.Context, loc *simplecms.Location) (*simplecms.Location, error) {
	if err := r.require(ctx, "content", "read", loc); err != nil {
		return nil, err
	}
	return r.withContentInfo(ctx, loc)
}

func (s locationService) LoadLocationByRemoteID(ctx context.Context, remoteID string) (*simplecms.Location, error) {
	loc, ok, err := s.locations.First(ctx, func(l simplecms.Location) bool { return l.RemoteID == remoteID })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "location", Identifier: remoteID}
	}
	return s.readLocation(ctx, &loc)
}

func (s locationService) LoadLocations(ctx context.Context, contentInfo *simplecms.ContentInfo) ([]*simplecms.Location, error) {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	locations, err := s.locationsOf(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	return s.readable(ctx, locations)
}

// readable filters locations the current user may read and attaches their
// content info.
func (r *Repository) readable(ctx context.Context, locations []simplecms.Location) ([]*simplecms.Location, error) {
	out := make([]*simplecms.Location, 0, len(locations))
	for i := range locations {
		ok, err := r.canUser(ctx, "content", "read", &locations[i])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		loc, err := r.withContentInfo(ctx, &locations[i])
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, nil
}

func (s locationService) LoadLocationChildren(ctx context.Context, location *simplecms.Location, offset, limit int) (*simplecms.LocationList, error) {
	parent, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	children, err := s.children(ctx, parent)
	if err != nil {
		return nil, err
	}
	return &simplecms.LocationList{TotalCount: len(children), Locations: pageOf(children, offset, limit)}, nil
}

func (s locationService) GetLocationChildCount(ctx context.Context, location *simplecms.Location) (int, error) {
	children, err := s.children(ctx, location)
	if err != nil {
		return 0, err
	}
	return len(children), nil
}

// children returns the readable children of parent in its sort order.
func (r *Repository) children(ctx context.Context, parent *simplecms.Location) ([]*simplecms.Location, error) {
	locations, err := r.locations.Find(ctx, func(l simplecms.Location) bool { return l.ParentLocationID == parent.ID })
	if err != nil {
		return nil, err
	}
	children, err := r.readable(ctx, locations)
	if err != nil {
		return nil, err
	}
	sortLocations(children, parent.SortField, parent.SortOrder)
	return children, nil
}

func sortLocations(locations []*simplecms.Location, field simplecms.SortField, order simplecms.SortOrder) {
	key := func(a, b *simplecms.Location) int {
		ai, bi := a.ContentInfo, b.ContentInfo
		if ai == nil || bi == nil {
			return cmp.Compare(a.ID, b.ID)
		}
		switch field {
		case simplecms.SortFieldPublished:
			return ai.PublicationDate.Compare(bi.PublicationDate)
		case simplecms.SortFieldModified:
			return ai.ModificationDate.Compare(bi.ModificationDate)
		case simplecms.SortFieldSection:
			return cmp.Compare(ai.SectionID, bi.SectionID)
		case simplecms.SortFieldDepth:
			return cmp.Compare(a.Depth, b.Depth)
		case simplecms.SortFieldPriority:
			return cmp.Compare(a.Priority, b.Priority)
		case simplecms.SortFieldName:
			return strings.Compare(strings.ToLower(ai.Name), strings.ToLower(bi.Name))
		case simplecms.SortFieldContentID:
			return cmp.Compare(ai.ID, bi.ID)
		case simplecms.SortFieldNodeID:
			return cmp.Compare(a.ID, b.ID)
		default:
			return slices.Compare(a.Path(), b.Path())
		}
	}
	slices.SortStableFunc(locations, func(a, b *simplecms.Location) int {
		c := key(a, b)
		if order == simplecms.SortDescending {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	})
}

func (s locationService) CreateLocation(ctx context.Context, contentInfo *simplecms.ContentInfo, create simplecms.LocationCreateStruct) (*simplecms.Location, error) {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "manage_locations", info); err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "create", info, &create); err != nil {
		return nil, err
	}
	if !info.IsPublished() {
		return nil, badState("contentInfo", "content %d is not published", info.ID)
	}
	loc, err := s.createLocation(ctx, info, create)
	if err != nil {
		return nil, err
	}
	if err := s.reindex(ctx, info.ID); err != nil {
		return nil, err
	}
	if err := s.refreshSystemAliases(ctx, loc); err != nil {
		return nil, err
	}
	return s.withContentInfo(ctx, loc)
}

func (s locationService) UpdateLocation(ctx context.Context, location *simplecms.Location, update simplecms.LocationUpdateStruct) (*simplecms.Location, error) {
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "edit", loc); err != nil {
		return nil, err
	}
	if update.RemoteID != nil && *update.RemoteID != loc.RemoteID {
		_, exists, err := s.locations.First(ctx, func(l simplecms.Location) bool { return l.RemoteID == *update.RemoteID })
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, invalid("remoteId", "location with remote id %q already exists", *update.RemoteID)
		}
		loc.RemoteID = *update.RemoteID
	}
	if update.Priority != nil {
		loc.Priority = *update.Priority
	}
	if update.SortField != nil {
		loc.SortField = *update.SortField
	}
	if update.SortOrder != nil {
		loc.SortOrder = *update.SortOrder
	}
	if err := s.putLocation(ctx, *loc); err != nil {
		return nil, err
	}
	if err := s.reindex(ctx, loc.ContentID); err != nil {
		return nil, err
	}
	return s.withContentInfo(ctx, loc)
}

func (s locationService) SwapLocation(ctx context.Context, location1, location2 *simplecms.Location) error {
	l1, err := s.loadLocation(ctx, location1.ID)
	if err != nil {
		return err
	}
	l2, err := s.loadLocation(ctx, location2.ID)
	if err != nil {
		return err
	}
	for _, l := range []*simplecms.Location{l1, l2} {
		if l.ContentID == 0 {
			return invalid("location", "location %d has no content", l.ID)
		}
		if err := s.require(ctx, "content", "edit", l); err != nil {
			return err
		}
	}
	if l1.ContentID == l2.ContentID {
		return invalid("location2", "both locations belong to content %d", l1.ContentID)
	}

	c1, c2 := l1.ContentID, l2.ContentID
	l1.ContentID, l2.ContentID = c2, c1
	for _, l := range []*simplecms.Location{l1, l2} {
		if err := s.putLocation(ctx, *l); err != nil {
			return err
		}
	}
	for _, pair := range [][2]int64{{c1, l1.ID}, {c2, l2.ID}} {
		info, err := s.loadInfo(ctx, pair[0])
		if err != nil {
			return err
		}
		if info.MainLocationID == pair[1] {
			if pair[0] == c1 {
				info.MainLocationID = l2.ID
			} else {
				info.MainLocationID = l1.ID
			}
			if err := s.contentInfos.Put(ctx, info.ID, *info); err != nil {
				return err
			}
		}
	}
	for _, l := range []*simplecms.Location{l1, l2} {
		if err := s.updateVisibility(ctx, l); err != nil {
			return err
		}
		if err := s.refreshSystemAliases(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (s locationService) HideLocation(ctx context.Context, location *simplecms.Location) (*simplecms.Location, error) {
	return s.setHidden(ctx, location, true)
}

func (s locationService) UnhideLocation(ctx context.Context, location *simplecms.Location) (*simplecms.Location, error) {
	return s.setHidden(ctx, location, false)
}

func (s locationService) setHidden(ctx context.Context, location *simplecms.Location, hidden bool) (*simplecms.Location, error) {
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "hide", loc); err != nil {
		return nil, err
	}
	if loc.Hidden != hidden {
		loc.Hidden = hidden
		if err := s.putLocation(ctx, *loc); err != nil {
			return nil, err
		}
		if err := s.updateVisibility(ctx, loc); err != nil {
			return nil, err
		}
	}
	if loc, err = s.loadLocation(ctx, loc.ID); err != nil {
		return nil, err
	}
	return s.withContentInfo(ctx, loc)
}

func (s locationService) MoveSubtree(ctx context.Context, location, newParent *simplecms.Location) error {
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return err
	}
	parent, err := s.loadLocation(ctx, newParent.ID)
	if err != nil {
		return err
	}
	if err := s.require(ctx, "content", "read", loc); err != nil {
		return err
	}
	if err := s.require(ctx, "content", "remove", loc); err != nil {
		return err
	}
	if err := s.require(ctx, "content", "create", loc, parent); err != nil {
		return err
	}
	if strings.HasPrefix(parent.PathString, loc.PathString) {
		return invalid("newParentLocation", "location %d cannot be moved below itself", loc.ID)
	}
	return s.moveSubtree(ctx, loc, parent)
}

func (r *Repository) moveSubtree(ctx context.Context, loc, parent *simplecms.Location) error {
	locations, err := r.subtree(ctx, loc)
	if err != nil {
		return err
	}
	oldPrefix := strings.TrimSuffix(loc.PathString, strconv.FormatInt(loc.ID, 10)+"/")
	delta := parent.Depth + 1 - loc.Depth
	for _, l := range locations {
		l.PathString = parent.PathString + strings.TrimPrefix(l.PathString, oldPrefix)
		l.Depth += delta
		if l.ID == loc.ID {
			l.ParentLocationID = parent.ID
		}
		if err := r.putLocation(ctx, l); err != nil {
			return err
		}
	}
	moved, err := r.loadLocation(ctx, loc.ID)
	if err != nil {
		return err
	}
	if err := r.updateVisibility(ctx, moved); err != nil {
		return err
	}
	r.logger.Debug("moved subtree", "location_id", loc.ID, "parent_id", parent.ID)
	return r.refreshSystemAliases(ctx, moved)
}

func (s locationService) DeleteLocation(ctx context.Context, location *simplecms.Location) error {
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return err
	}
	if loc.ID == simplecms.RootLocationID {
		return invalid("location", "the root location cannot be deleted")
	}
	if err := s.require(ctx, "content", "remove", loc); err != nil {
		return err
	}
	_, err = s.deleteSubtree(ctx, loc)
	return err
}

func (s locationService) CopySubtree(ctx context.Context, subtree, targetParent *simplecms.Location) (*simplecms.Location, error) {
	source, err := s.loadLocation(ctx, subtree.ID)
	if err != nil {
		return nil, err
	}
	target, err := s.loadLocation(ctx, targetParent.ID)
	if err != nil {
		return nil, err
	}
	if source.ID == simplecms.RootLocationID {
		return nil, invalid("subtree", "the root location cannot be copied")
	}
	if strings.HasPrefix(target.PathString, source.PathString) {
		return nil, invalid("targetParentLocation", "location %d cannot be copied below itself", source.ID)
	}

	locations, err := s.subtree(ctx, source)
	if err != nil {
		return nil, err
	}
	for i := range locations {
		if err := s.require(ctx, "content", "read", &locations[i]); err != nil {
			return nil, err
		}
	}
	if err := s.require(ctx, "content", "create", source, target); err != nil {
		return nil, err
	}

	copies := map[int64]int64{source.ParentLocationID: target.ID}
	var top *simplecms.Location
	for _, l := range locations {
		info, err := s.loadInfo(ctx, l.ContentID)
		if err != nil {
			return nil, err
		}
		parentID, ok := copies[l.ParentLocationID]
		if !ok {
			return nil, fmt.Errorf("copy subtree: parent of location %d was not copied", l.ID)
		}
		_, loc, err := s.copyContent(ctx, info, simplecms.LocationCreateStruct{
			ParentLocationID: parentID,
			Priority:         l.Priority,
			Hidden:           l.Hidden,
			SortField:        l.SortField,
			SortOrder:        l.SortOrder,
		}, 0)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			continue
		}
		copies[l.ID] = loc.ID
		if top == nil {
			top = loc
		}
	}
	if top == nil {
		return nil, badState("subtree", "location %d has no published content", source.ID)
	}
	if err := s.refreshSystemAliases(ctx, top); err != nil {
		return nil, err
	}
	return s.withContentInfo(ctx, top)
}

var _ simplecms.LocationService = locationService{}
