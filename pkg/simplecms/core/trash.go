package core

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Trash items keep the ID of the location they were created from. Every
// trashed location of a subtree gets its own item so that the subtree can
// be recovered as a whole.
type trashService struct{ *Repository }

func (s trashService) LoadTrashItem(ctx context.Context, id int64) (*simplecms.TrashItem, error) {
	item, err := s.trash.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "trashItem", id)
	}
	if err := s.require(ctx, "content", "read", &item); err != nil {
		return nil, err
	}
	return s.withTrashContent(ctx, &item)
}

func (r *Repository) withTrashContent(ctx context.Context, item *simplecms.TrashItem) (*simplecms.TrashItem, error) {
	if item.ContentID == 0 {
		return item, nil
	}
	info, err := r.loadInfo(ctx, item.ContentID)
	if err != nil {
		return nil, err
	}
	item.ContentInfo = info
	return item, nil
}

func (s trashService) FindTrashItems(ctx context.Context, query simplecms.TrashQuery) (*simplecms.TrashItemList, error) {
	if err := s.require(ctx, "content", "read", nil); err != nil {
		return nil, err
	}
	items, err := s.trash.All(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*simplecms.TrashItem
	for i := range items {
		ok, err := s.canUser(ctx, "content", "read", &items[i])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		item, err := s.withTrashContent(ctx, &items[i])
		if err != nil {
			return nil, err
		}
		if query.ContentTypeID != 0 && (item.ContentInfo == nil || item.ContentInfo.ContentTypeID != query.ContentTypeID) {
			continue
		}
		matched = append(matched, item)
	}
	return &simplecms.TrashItemList{TotalCount: len(matched), Items: pageOf(matched, query.Offset, query.Limit)}, nil
}

func (s trashService) Trash(ctx context.Context, location *simplecms.Location) (*simplecms.TrashItem, error) {
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	if loc.ID == simplecms.RootLocationID {
		return nil, invalid("location", "the root location cannot be trashed")
	}
	if err := s.require(ctx, "content", "remove", loc); err != nil {
		return nil, err
	}

	locations, err := s.subtree(ctx, loc)
	if err != nil {
		return nil, err
	}
	inSubtree := func(l simplecms.Location) bool { return strings.HasPrefix(l.PathString, loc.PathString) }

	now := s.now()
	var top *simplecms.TrashItem
	var survivors []int64
	for _, l := range locations {
		all, err := s.locationsOf(ctx, l.ContentID)
		if err != nil {
			return nil, err
		}
		keepsLocation := slices.ContainsFunc(all, func(other simplecms.Location) bool { return !inSubtree(other) })

		if err := s.removeLocation(ctx, l.ID); err != nil {
			return nil, err
		}
		if keepsLocation {
			if !slices.Contains(survivors, l.ContentID) {
				survivors = append(survivors, l.ContentID)
			}
			continue
		}

		item := simplecms.TrashItem{Location: l, TrashedAt: now}
		if err := s.trash.Put(ctx, l.ID, item); err != nil {
			return nil, err
		}
		if l.ID == loc.ID {
			top = &item
		}
		info, err := s.loadInfo(ctx, l.ContentID)
		if err != nil {
			return nil, err
		}
		if !info.IsTrashed() {
			info.Status = simplecms.ContentStatusTrashed
			if err := s.contentInfos.Put(ctx, info.ID, *info); err != nil {
				return nil, err
			}
			if err := s.reindex(ctx, info.ID); err != nil {
				return nil, err
			}
		}
	}
	for _, contentID := range survivors {
		if err := s.afterLocationsRemoved(ctx, contentID, false); err != nil {
			return nil, err
		}
	}
	s.logger.Info("trashed location", "location_id", loc.ID, "items", len(locations)-len(survivors))
	if top == nil {
		return nil, nil
	}
	return s.withTrashContent(ctx, top)
}

func (s trashService) Recover(ctx context.Context, item *simplecms.TrashItem, newParent *simplecms.Location) (*simplecms.Location, error) {
	trashed, err := s.trash.Get(ctx, item.ID)
	if err != nil {
		return nil, notFound(err, "trashItem", item.ID)
	}
	parentID := trashed.ParentLocationID
	if newParent != nil {
		parentID = newParent.ID
	}
	parent, err := s.loadLocation(ctx, parentID)
	if isNotFound(err) {
		return nil, invalid("newParentLocation", "parent location %d does not exist", parentID)
	} else if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "restore", &trashed, parent); err != nil {
		return nil, err
	}

	items, err := s.trash.Find(ctx, func(t simplecms.TrashItem) bool {
		return strings.HasPrefix(t.PathString, trashed.PathString)
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b simplecms.TrashItem) int { return a.Depth - b.Depth })

	oldPrefix := strings.TrimSuffix(trashed.PathString, strconv.FormatInt(trashed.ID, 10)+"/")
	delta := parent.Depth + 1 - trashed.Depth
	var contents []int64
	for _, t := range items {
		loc := t.Location
		loc.PathString = parent.PathString + strings.TrimPrefix(loc.PathString, oldPrefix)
		loc.Depth += delta
		if loc.ID == trashed.ID {
			loc.ParentLocationID = parent.ID
		}
		if err := s.putLocation(ctx, loc); err != nil {
			return nil, err
		}
		if err := s.trash.Delete(ctx, t.ID); err != nil {
			return nil, err
		}
		if !slices.Contains(contents, loc.ContentID) {
			contents = append(contents, loc.ContentID)
		}
	}

	for _, contentID := range contents {
		info, err := s.loadInfo(ctx, contentID)
		if err != nil {
			return nil, err
		}
		info.Status = simplecms.ContentStatusPublished
		locations, err := s.locationsOf(ctx, contentID)
		if err != nil {
			return nil, err
		}
		if !slices.ContainsFunc(locations, func(l simplecms.Location) bool { return l.ID == info.MainLocationID }) && len(locations) > 0 {
			info.MainLocationID = locations[0].ID
		}
		if err := s.contentInfos.Put(ctx, info.ID, *info); err != nil {
			return nil, err
		}
	}

	restored, err := s.loadLocation(ctx, trashed.ID)
	if err != nil {
		return nil, err
	}
	if err := s.updateVisibility(ctx, restored); err != nil {
		return nil, err
	}
	if err := s.refreshSystemAliases(ctx, restored); err != nil {
		return nil, err
	}
	s.logger.Info("recovered trash item", "location_id", restored.ID, "parent_id", parent.ID)
	return s.withContentInfo(ctx, restored)
}

func (s trashService) EmptyTrash(ctx context.Context) (*simplecms.TrashItemDeleteResultList, error) {
	if err := s.require(ctx, "content", "cleantrash", nil); err != nil {
		return nil, err
	}
	items, err := s.trash.All(ctx)
	if err != nil {
		return nil, err
	}
	result := &simplecms.TrashItemDeleteResultList{}
	for i := range items {
		res, err := s.deleteTrashItem(ctx, &items[i])
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, res)
	}
	return result, nil
}

func (s trashService) DeleteTrashItem(ctx context.Context, item *simplecms.TrashItem) (*simplecms.TrashItemDeleteResult, error) {
	trashed, err := s.trash.Get(ctx, item.ID)
	if err != nil {
		return nil, notFound(err, "trashItem", item.ID)
	}
	if err := s.require(ctx, "content", "cleantrash", &trashed); err != nil {
		return nil, err
	}
	return s.deleteTrashItem(ctx, &trashed)
}

// deleteTrashItem removes an item and deletes its content when nothing else
// refers to it.
func (r *Repository) deleteTrashItem(ctx context.Context, item *simplecms.TrashItem) (*simplecms.TrashItemDeleteResult, error) {
	if err := r.trash.Delete(ctx, item.ID); err != nil {
		return nil, err
	}
	result := &simplecms.TrashItemDeleteResult{TrashItemID: item.ID, ContentID: item.ContentID}

	locations, err := r.locationsOf(ctx, item.ContentID)
	if err != nil {
		return nil, err
	}
	others, err := r.trash.Find(ctx, func(t simplecms.TrashItem) bool { return t.ContentID == item.ContentID })
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 && len(others) == 0 {
		if err := r.deleteContentData(ctx, item.ContentID); err != nil {
			return nil, err
		}
		result.ContentRemoved = true
	}
	return result, nil
}

var _ simplecms.TrashService = trashService{}
