package core

import (
	"context"
	"slices"
	"strconv"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

type sectionService struct{ *Repository }

func (r *Repository) loadSection(ctx context.Context, id int64) (*simplecms.Section, error) {
	sec, err := r.sections.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "section", id)
	}
	return &sec, nil
}

func (s sectionService) LoadSection(ctx context.Context, id int64) (*simplecms.Section, error) {
	sec, err := s.loadSection(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "section", "view", sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s sectionService) LoadSections(ctx context.Context) ([]*simplecms.Section, error) {
	sections, err := s.sections.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []*simplecms.Section
	for i := range sections {
		ok, err := s.canUser(ctx, "section", "view", &sections[i])
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, &sections[i])
		}
	}
	return out, nil
}

func (s sectionService) LoadSectionByIdentifier(ctx context.Context, identifier string) (*simplecms.Section, error) {
	sec, ok, err := s.sections.First(ctx, func(sec simplecms.Section) bool { return sec.Identifier == identifier })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "section", Identifier: identifier}
	}
	if err := s.require(ctx, "section", "view", &sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

func (s sectionService) CountAssignedContents(ctx context.Context, section *simplecms.Section) (int, error) {
	return s.contentInfos.Count(ctx, func(info simplecms.ContentInfo) bool { return info.SectionID == section.ID })
}

func (s sectionService) IsSectionUsed(ctx context.Context, section *simplecms.Section) (bool, error) {
	return s.sectionUsed(ctx, section.ID)
}

func (r *Repository) sectionUsed(ctx context.Context, sectionID int64) (bool, error) {
	n, err := r.contentInfos.Count(ctx, func(info simplecms.ContentInfo) bool { return info.SectionID == sectionID })
	if err != nil || n > 0 {
		return n > 0, err
	}

	value := strconv.FormatInt(sectionID, 10)
	limits := func(l *simplecms.Limitation) bool {
		return l != nil && l.Identifier == simplecms.LimitationSection && slices.Contains(l.Values, value)
	}
	roles, err := r.roles.All(ctx)
	if err != nil {
		return false, err
	}
	for _, role := range roles {
		for _, p := range role.Policies {
			for i := range p.Limitations {
				if limits(&p.Limitations[i]) {
					return true, nil
				}
			}
		}
	}
	n, err = r.roleAssignments.Count(ctx, func(a simplecms.RoleAssignment) bool { return limits(a.Limitation) })
	return n > 0, err
}

func (s sectionService) CreateSection(ctx context.Context, create simplecms.SectionCreateStruct) (*simplecms.Section, error) {
	if err := s.require(ctx, "section", "edit", nil); err != nil {
		return nil, err
	}
	if create.Identifier == "" {
		return nil, invalid("identifier", "must not be empty")
	}
	if err := s.uniqueSection(ctx, create.Identifier, 0); err != nil {
		return nil, err
	}
	sec, err := s.sections.Create(ctx, func(id int64) simplecms.Section {
		return simplecms.Section{ID: id, Identifier: create.Identifier, Name: create.Name}
	})
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

func (r *Repository) uniqueSection(ctx context.Context, identifier string, self int64) error {
	_, exists, err := r.sections.First(ctx, func(sec simplecms.Section) bool {
		return sec.Identifier == identifier && sec.ID != self
	})
	if err != nil {
		return err
	}
	if exists {
		return invalid("identifier", "section %q already exists", identifier)
	}
	return nil
}

func (s sectionService) UpdateSection(ctx context.Context, section *simplecms.Section, update simplecms.SectionUpdateStruct) (*simplecms.Section, error) {
	sec, err := s.loadSection(ctx, section.ID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "section", "edit", sec); err != nil {
		return nil, err
	}
	if update.Identifier != nil && *update.Identifier != sec.Identifier {
		if err := s.uniqueSection(ctx, *update.Identifier, sec.ID); err != nil {
			return nil, err
		}
		sec.Identifier = *update.Identifier
	}
	if update.Name != nil {
		sec.Name = *update.Name
	}
	if err := s.sections.Put(ctx, sec.ID, *sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s sectionService) AssignSection(ctx context.Context, contentInfo *simplecms.ContentInfo, section *simplecms.Section) error {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return err
	}
	sec, err := s.loadSection(ctx, section.ID)
	if err != nil {
		return err
	}
	if err := s.require(ctx, "section", "assign", info, sec); err != nil {
		return err
	}
	return s.assignSection(ctx, info, sec.ID)
}

func (r *Repository) assignSection(ctx context.Context, info *simplecms.ContentInfo, sectionID int64) error {
	if info.SectionID == sectionID {
		return nil
	}
	info.SectionID = sectionID
	if err := r.contentInfos.Put(ctx, info.ID, *info); err != nil {
		return err
	}
	return r.reindex(ctx, info.ID)
}

func (s sectionService) AssignSectionToSubtree(ctx context.Context, location *simplecms.Location, section *simplecms.Section) error {
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return err
	}
	sec, err := s.loadSection(ctx, section.ID)
	if err != nil {
		return err
	}
	if err := s.require(ctx, "section", "assign", loc, sec); err != nil {
		return err
	}
	locations, err := s.subtree(ctx, loc)
	if err != nil {
		return err
	}
	var done []int64
	for _, l := range locations {
		if l.ContentID == 0 || slices.Contains(done, l.ContentID) {
			continue
		}
		done = append(done, l.ContentID)
		info, err := s.loadInfo(ctx, l.ContentID)
		if err != nil {
			return err
		}
		if err := s.assignSection(ctx, info, sec.ID); err != nil {
			return err
		}
	}
	s.logger.Info("assigned section to subtree", "section", sec.Identifier, "location_id", loc.ID, "contents", len(done))
	return nil
}

func (s sectionService) DeleteSection(ctx context.Context, section *simplecms.Section) error {
	sec, err := s.loadSection(ctx, section.ID)
	if err != nil {
		return err
	}
	if err := s.require(ctx, "section", "edit", sec); err != nil {
		return err
	}
	used, err := s.sectionUsed(ctx, sec.ID)
	if err != nil {
		return err
	}
	if used {
		return badState("section", "section %q is still in use", sec.Identifier)
	}
	return s.sections.Delete(ctx, sec.ID)
}

var _ simplecms.SectionService = sectionService{}
