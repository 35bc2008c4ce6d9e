package core

import (
	"context"
	"slices"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/search"
)

// reindex refreshes the search document of a content item. Content that is
// not published is removed from the index.
func (r *Repository) reindex(ctx context.Context, contentID int64) error {
	info, err := r.loadInfo(ctx, contentID)
	if isNotFound(err) {
		return r.engine.Remove(ctx, contentID)
	} else if err != nil {
		return err
	}
	if !info.IsPublished() {
		return r.engine.Remove(ctx, contentID)
	}
	doc, err := r.document(ctx, info)
	if err != nil {
		return err
	}
	return r.engine.Index(ctx, *doc)
}

func (r *Repository) document(ctx context.Context, info *simplecms.ContentInfo) (*search.Document, error) {
	rec, err := r.loadVersion(ctx, info, 0)
	if err != nil {
		return nil, err
	}
	doc := &search.Document{
		ContentID:        info.ID,
		ContentTypeID:    info.ContentTypeID,
		Name:             info.Name,
		SectionID:        info.SectionID,
		OwnerID:          info.OwnerID,
		Status:           string(info.Status),
		RemoteID:         info.RemoteID,
		ModifiedAt:       search.Unix(info.ModificationDate),
		PublishedAt:      search.Unix(info.PublicationDate),
		MainLanguageCode: info.MainLanguageCode,
		LanguageCodes:    slices.Clone(rec.Info.LanguageCodes),
		AlwaysAvailable:  info.AlwaysAvailable,
		IsHidden:         info.IsHidden,
		MainLocationID:   info.MainLocationID,
	}
	if ct, err := r.contentTypes.Get(ctx, info.ContentTypeID); err == nil {
		doc.ContentTypeIdentifier = ct.Identifier
	} else if !isNotFound(err) {
		return nil, err
	}

	locations, err := r.locationsOf(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	for _, l := range locations {
		doc.Locations = append(doc.Locations, search.Location{
			ID:         l.ID,
			ParentID:   l.ParentLocationID,
			PathString: l.PathString,
			Depth:      l.Depth,
			Priority:   l.Priority,
			Hidden:     l.Hidden,
			Invisible:  l.Invisible,
		})
	}

	if doc.StateIDs, err = r.stateIDsOf(ctx, info.ID); err != nil {
		return nil, err
	}
	return doc, nil
}
