package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/fieldtype"
)

// versionRecord is the stored form of a version. Pending locations are
// created when the first version of a content item is published.
type versionRecord struct {
	Info             simplecms.VersionInfo            `json:"info"`
	Fields           []simplecms.Field                `json:"fields"`
	PendingLocations []simplecms.LocationCreateStruct `json:"pending_locations,omitempty"`
}

type contentService struct{ *Repository }

func (r *Repository) loadInfo(ctx context.Context, contentID int64) (*simplecms.ContentInfo, error) {
	info, err := r.contentInfos.Get(ctx, contentID)
	if err != nil {
		return nil, notFound(err, "content", contentID)
	}
	return &info, nil
}

// infoOf reloads the content info of a version.
func (r *Repository) infoOf(ctx context.Context, vi *simplecms.VersionInfo) (*simplecms.ContentInfo, error) {
	if vi == nil {
		return nil, invalid("versionInfo", "version info is required")
	}
	return r.loadInfo(ctx, vi.ContentID)
}

func (r *Repository) versionsOf(ctx context.Context, contentID int64) ([]versionRecord, error) {
	records, err := r.versions.Find(ctx, func(v versionRecord) bool { return v.Info.ContentID == contentID })
	if err != nil {
		return nil, err
	}
	slices.SortFunc(records, func(a, b versionRecord) int { return a.Info.VersionNo - b.Info.VersionNo })
	return records, nil
}

// loadVersion returns a version of a content item. Zero selects the
// current version.
func (r *Repository) loadVersion(ctx context.Context, info *simplecms.ContentInfo, versionNo int) (*versionRecord, error) {
	if versionNo == 0 {
		versionNo = info.CurrentVersionNo
	}
	rec, ok, err := r.versions.First(ctx, func(v versionRecord) bool {
		return v.Info.ContentID == info.ID && v.Info.VersionNo == versionNo
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "version", Identifier: fmt.Sprintf("%d/%d", info.ID, versionNo)}
	}
	rec.Fields = r.normalizeFields(rec.Fields)
	return &rec, nil
}

func (r *Repository) versionInfo(rec *versionRecord, info *simplecms.ContentInfo) *simplecms.VersionInfo {
	vi := rec.Info
	vi.ContentInfo = info
	return &vi
}

// buildContent assembles a content value. With languages given only those
// translations are included; the main language is used instead when none
// is available and the content is always available.
func (r *Repository) buildContent(ctx context.Context, info *simplecms.ContentInfo, rec *versionRecord, languages []string) (*simplecms.Content, error) {
	ct, err := r.contentTypes.Get(ctx, info.ContentTypeID)
	if err != nil {
		return nil, notFound(err, "contentType", info.ContentTypeID)
	}

	selected := rec.Info.LanguageCodes
	if len(languages) > 0 {
		selected = nil
		for _, lang := range languages {
			if slices.Contains(rec.Info.LanguageCodes, lang) {
				selected = append(selected, lang)
			}
		}
		if len(selected) == 0 {
			if !info.AlwaysAvailable {
				return nil, &simplecms.NotFoundError{What: "content", Identifier: fmt.Sprintf("%d in %v", info.ID, languages)}
			}
			selected = []string{info.MainLanguageCode}
		}
	}

	return &simplecms.Content{
		VersionInfo: r.versionInfo(rec, info),
		Fields:      r.alignFields(&ct, rec.Fields, selected),
	}, nil
}

// readVersion checks read access to a version: content/read for the
// published version and content/versionread for the others.
func (r *Repository) readVersion(ctx context.Context, info *simplecms.ContentInfo, rec *versionRecord) error {
	if err := r.require(ctx, "content", "read", info); err != nil {
		return err
	}
	if rec != nil && !rec.Info.IsPublished() {
		return r.require(ctx, "content", "versionread", r.versionInfo(rec, info))
	}
	return nil
}

func (s contentService) LoadContentInfo(ctx context.Context, contentID int64) (*simplecms.ContentInfo, error) {
	info, err := s.loadInfo(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "read", info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s contentService) LoadContentInfoByRemoteID(ctx context.Context, remoteID string) (*simplecms.ContentInfo, error) {
	info, ok, err := s.contentInfos.First(ctx, func(c simplecms.ContentInfo) bool { return c.RemoteID == remoteID })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "content", Identifier: remoteID}
	}
	if err := s.require(ctx, "content", "read", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s contentService) LoadContentInfoList(ctx context.Context, contentIDs []int64) (map[int64]*simplecms.ContentInfo, error) {
	out := make(map[int64]*simplecms.ContentInfo, len(contentIDs))
	for _, id := range contentIDs {
		info, err := s.loadInfo(ctx, id)
		if isNotFound(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		ok, err := s.canUser(ctx, "content", "read", info)
		if err != nil {
			return nil, err
		}
		if ok {
			out[id] = info
		}
	}
	return out, nil
}

func (s contentService) LoadVersionInfo(ctx context.Context, contentInfo *simplecms.ContentInfo, versionNo int) (*simplecms.VersionInfo, error) {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	rec, err := s.loadVersion(ctx, info, versionNo)
	if err != nil {
		return nil, err
	}
	if err := s.readVersion(ctx, info, rec); err != nil {
		return nil, err
	}
	return s.versionInfo(rec, info), nil
}

func (s contentService) LoadContent(ctx context.Context, contentID int64, languages []string, versionNo int) (*simplecms.Content, error) {
	info, err := s.loadInfo(ctx, contentID)
	if err != nil {
		return nil, err
	}
	return s.loadContent(ctx, info, languages, versionNo)
}

func (s contentService) loadContent(ctx context.Context, info *simplecms.ContentInfo, languages []string, versionNo int) (*simplecms.Content, error) {
	rec, err := s.loadVersion(ctx, info, versionNo)
	if err != nil {
		return nil, err
	}
	if err := s.readVersion(ctx, info, rec); err != nil {
		return nil, err
	}
	return s.buildContent(ctx, info, rec, languages)
}

func (s contentService) LoadContentByRemoteID(ctx context.Context, remoteID string, languages []string, versionNo int) (*simplecms.Content, error) {
	info, ok, err := s.contentInfos.First(ctx, func(c simplecms.ContentInfo) bool { return c.RemoteID == remoteID })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "content", Identifier: remoteID}
	}
	return s.loadContent(ctx, &info, languages, versionNo)
}

func (s contentService) LoadContentByVersionInfo(ctx context.Context, versionInfo *simplecms.VersionInfo, languages []string) (*simplecms.Content, error) {
	info, err := s.infoOf(ctx, versionInfo)
	if err != nil {
		return nil, err
	}
	return s.loadContent(ctx, info, languages, versionInfo.VersionNo)
}

func (s contentService) LoadVersions(ctx context.Context, contentInfo *simplecms.ContentInfo) ([]*simplecms.VersionInfo, error) {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "versionread", info); err != nil {
		return nil, err
	}
	records, err := s.versionsOf(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*simplecms.VersionInfo, 0, len(records))
	for i := range records {
		out = append(out, s.versionInfo(&records[i], info))
	}
	return out, nil
}

func (s contentService) LoadRelations(ctx context.Context, versionInfo *simplecms.VersionInfo) ([]*simplecms.Relation, error) {
	info, err := s.infoOf(ctx, versionInfo)
	if err != nil {
		return nil, err
	}
	rec, err := s.loadVersion(ctx, info, versionInfo.VersionNo)
	if err != nil {
		return nil, err
	}
	if err := s.readVersion(ctx, info, rec); err != nil {
		return nil, err
	}
	relations, err := s.relations.Find(ctx, func(rel simplecms.Relation) bool {
		return rel.SourceContentID == info.ID && rel.SourceVersionNo == rec.Info.VersionNo
	})
	if err != nil {
		return nil, err
	}
	return s.readableRelations(ctx, relations, func(rel simplecms.Relation) int64 { return rel.DestinationContentID })
}

func (s contentService) LoadReverseRelations(ctx context.Context, contentInfo *simplecms.ContentInfo) ([]*simplecms.Relation, error) {
	if err := s.require(ctx, "content", "reverserelatedlist", contentInfo); err != nil {
		return nil, err
	}
	relations, err := s.reverseRelations(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	return s.readableRelations(ctx, relations, func(rel simplecms.Relation) int64 { return rel.SourceContentID })
}

func (s contentService) CountReverseRelations(ctx context.Context, contentInfo *simplecms.ContentInfo) (int, error) {
	relations, err := s.LoadReverseRelations(ctx, contentInfo)
	if err != nil {
		return 0, err
	}
	return len(relations), nil
}

// reverseRelations returns relations to contentID from the current version
// of their source.
func (r *Repository) reverseRelations(ctx context.Context, contentID int64) ([]simplecms.Relation, error) {
	relations, err := r.relations.Find(ctx, func(rel simplecms.Relation) bool { return rel.DestinationContentID == contentID })
	if err != nil {
		return nil, err
	}
	var out []simplecms.Relation
	for _, rel := range relations {
		source, err := r.loadInfo(ctx, rel.SourceContentID)
		if isNotFound(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		if source.CurrentVersionNo == rel.SourceVersionNo && source.IsPublished() {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (r *Repository) readableRelations(ctx context.Context, relations []simplecms.Relation, other func(simplecms.Relation) int64) ([]*simplecms.Relation, error) {
	out := make([]*simplecms.Relation, 0, len(relations))
	for i := range relations {
		info, err := r.loadInfo(ctx, other(relations[i]))
		if isNotFound(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		ok, err := r.canUser(ctx, "content", "read", info)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, &relations[i])
		}
	}
	return out, nil
}

func (s contentService) LoadContentDrafts(ctx context.Context, userID int64) ([]*simplecms.VersionInfo, error) {
	if userID == 0 {
		userID = s.currentUserID(ctx)
	}
	if err := s.require(ctx, "content", "versionread", nil); err != nil {
		return nil, err
	}
	records, err := s.versions.Find(ctx, func(v versionRecord) bool {
		return v.Info.IsDraft() && v.Info.CreatorID == userID
	})
	if err != nil {
		return nil, err
	}
	out := make([]*simplecms.VersionInfo, 0, len(records))
	for i := range records {
		info, err := s.loadInfo(ctx, records[i].Info.ContentID)
		if err != nil {
			return nil, err
		}
		out = append(out, s.versionInfo(&records[i], info))
	}
	return out, nil
}

func (s contentService) CreateContent(ctx context.Context, create simplecms.ContentCreateStruct, locations []simplecms.LocationCreateStruct) (*simplecms.Content, error) {
	ct, err := s.contentTypes.Get(ctx, create.ContentTypeID)
	if err != nil {
		return nil, notFound(err, "contentType", create.ContentTypeID)
	}
	if create.MainLanguageCode == "" {
		return nil, invalid("mainLanguageCode", "main language code is required")
	}
	if _, err := s.languageByCode(ctx, create.MainLanguageCode); err != nil {
		return nil, err
	}
	if create.SectionID == 0 {
		create.SectionID = 1
	}
	if create.OwnerID == 0 {
		create.OwnerID = s.currentUserID(ctx)
	}
	if err := s.require(ctx, "content", "create", &create, locations); err != nil {
		return nil, err
	}

	if create.RemoteID == "" {
		create.RemoteID = uuid.NewString()
	} else if _, exists, err := s.contentInfos.First(ctx, func(c simplecms.ContentInfo) bool { return c.RemoteID == create.RemoteID }); err != nil {
		return nil, err
	} else if exists {
		return nil, invalid("remoteId", "content with remote id %q already exists", create.RemoteID)
	}
	for _, loc := range locations {
		if _, err := s.locations.Get(ctx, loc.ParentLocationID); err != nil {
			return nil, notFound(err, "location", loc.ParentLocationID)
		}
	}

	fields, err := s.mapFields(&ct, create.Fields, nil, create.MainLanguageCode, create.MainLanguageCode)
	if err != nil {
		return nil, err
	}
	names := s.versionNames(&ct, fields, create.MainLanguageCode)

	now := s.now()
	modified := now
	if !create.ModificationDate.IsZero() {
		modified = create.ModificationDate
	}
	alwaysAvailable := ct.DefaultAlwaysAvailable
	if create.AlwaysAvailable != nil {
		alwaysAvailable = *create.AlwaysAvailable
	}

	info, err := s.contentInfos.Create(ctx, func(id int64) simplecms.ContentInfo {
		return simplecms.ContentInfo{
			ID:               id,
			ContentTypeID:    ct.ID,
			Name:             names[create.MainLanguageCode],
			SectionID:        create.SectionID,
			CurrentVersionNo: 1,
			Status:           simplecms.ContentStatusDraft,
			OwnerID:          create.OwnerID,
			ModificationDate: modified,
			AlwaysAvailable:  alwaysAvailable,
			RemoteID:         create.RemoteID,
			MainLanguageCode: create.MainLanguageCode,
		}
	})
	if err != nil {
		return nil, err
	}

	rec, err := s.versions.Create(ctx, func(id int64) versionRecord {
		return versionRecord{
			Info: simplecms.VersionInfo{
				ID:                  id,
				ContentID:           info.ID,
				VersionNo:           1,
				Status:              simplecms.VersionStatusDraft,
				CreatorID:           s.currentUserID(ctx),
				CreationDate:        now,
				ModificationDate:    now,
				InitialLanguageCode: create.MainLanguageCode,
				LanguageCodes:       fieldLanguages(fields, create.MainLanguageCode),
				Names:               names,
			},
			Fields:           fields,
			PendingLocations: locations,
		}
	})
	if err != nil {
		return nil, err
	}
	rec.Fields = fields

	s.logger.Debug("created content", "content_id", info.ID, "content_type", ct.Identifier)
	return s.buildContent(ctx, &info, &rec, nil)
}

func (s contentService) UpdateContentMetadata(ctx context.Context, contentInfo *simplecms.ContentInfo, update simplecms.ContentMetadataUpdateStruct) (*simplecms.Content, error) {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "edit", info); err != nil {
		return nil, err
	}
	if update == (simplecms.ContentMetadataUpdateStruct{}) {
		return nil, invalid("contentMetadataUpdateStruct", "at least one property must be set")
	}

	if update.OwnerID != nil {
		info.OwnerID = *update.OwnerID
	}
	if update.PublishedDate != nil {
		info.PublicationDate = *update.PublishedDate
	}
	info.ModificationDate = s.now()
	if update.ModificationDate != nil {
		info.ModificationDate = *update.ModificationDate
	}
	if update.AlwaysAvailable != nil {
		info.AlwaysAvailable = *update.AlwaysAvailable
	}
	if update.RemoteID != nil && *update.RemoteID != info.RemoteID {
		_, exists, err := s.contentInfos.First(ctx, func(c simplecms.ContentInfo) bool { return c.RemoteID == *update.RemoteID })
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, invalid("remoteId", "content with remote id %q already exists", *update.RemoteID)
		}
		info.RemoteID = *update.RemoteID
	}
	if update.MainLanguageCode != nil && *update.MainLanguageCode != info.MainLanguageCode {
		rec, err := s.loadVersion(ctx, info, 0)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(rec.Info.LanguageCodes, *update.MainLanguageCode) {
			return nil, invalid("mainLanguageCode", "content has no translation %q", *update.MainLanguageCode)
		}
		info.MainLanguageCode = *update.MainLanguageCode
		info.Name = rec.Info.Names[info.MainLanguageCode]
	}
	if update.MainLocationID != nil {
		loc, err := s.locations.Get(ctx, *update.MainLocationID)
		if err != nil || loc.ContentID != info.ID {
			return nil, invalid("mainLocationId", "location %d is not a location of content %d", *update.MainLocationID, info.ID)
		}
		info.MainLocationID = loc.ID
	}

	if err := s.contentInfos.Put(ctx, info.ID, *info); err != nil {
		return nil, err
	}
	if err := s.reindex(ctx, info.ID); err != nil {
		return nil, err
	}
	if update.MainLanguageCode != nil || update.AlwaysAvailable != nil {
		if err := s.refreshContentAliases(ctx, info.ID); err != nil {
			return nil, err
		}
	}
	rec, err := s.loadVersion(ctx, info, 0)
	if err != nil {
		return nil, err
	}
	return s.buildContent(ctx, info, rec, nil)
}

func (s contentService) DeleteContent(ctx context.Context, contentInfo *simplecms.ContentInfo) ([]int64, error) {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "remove", info); err != nil {
		return nil, err
	}
	locations, err := s.locationsOf(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	var deleted []int64
	for i := range locations {
		ids, err := s.deleteSubtree(ctx, &locations[i])
		if err != nil {
			return nil, err
		}
		deleted = append(deleted, ids...)
	}
	// Content without locations, such as an unpublished draft, is left over.
	if _, err := s.contentInfos.Get(ctx, info.ID); err == nil {
		if err := s.deleteContentData(ctx, info.ID); err != nil {
			return nil, err
		}
	}
	return deleted, nil
}

// deleteContentData removes a content item and everything stored for it
// except its locations.
func (r *Repository) deleteContentData(ctx context.Context, contentID int64) error {
	records, err := r.versionsOf(ctx, contentID)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if r.binary != nil {
			for _, v := range fieldValues(r.normalizeFields(rec.Fields), fieldtype.BinaryFile{}.Identifier()) {
				if file, ok := v.(fieldtype.BinaryFileValue); ok {
					if err := r.binary.Delete(ctx, file); err != nil {
						r.logger.Warn("failed to delete binary file", "content_id", contentID, "file", file.ID, "err", err)
					}
				}
			}
		}
		if err := r.versions.Delete(ctx, rec.Info.ID); err != nil {
			return err
		}
	}

	relations, err := r.relations.Find(ctx, func(rel simplecms.Relation) bool {
		return rel.SourceContentID == contentID || rel.DestinationContentID == contentID
	})
	if err != nil {
		return err
	}
	for _, rel := range relations {
		if err := r.relations.Delete(ctx, rel.ID); err != nil {
			return err
		}
	}
	if err := r.removeURLUsages(ctx, contentID); err != nil {
		return err
	}
	if err := r.contentStates.Delete(ctx, contentID); err != nil {
		return err
	}
	if err := r.engine.Remove(ctx, contentID); err != nil {
		return fmt.Errorf("remove content %d from index: %w", contentID, err)
	}
	if err := r.contentInfos.Delete(ctx, contentID); err != nil {
		return err
	}
	r.logger.Debug("deleted content", "content_id", contentID)
	return nil
}

func (s contentService) CreateContentDraft(ctx context.Context, contentInfo *simplecms.ContentInfo, versionNo int) (*simplecms.Content, error) {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "edit", info); err != nil {
		return nil, err
	}
	source, err := s.loadVersion(ctx, info, versionNo)
	if err != nil {
		return nil, err
	}
	if info.IsDraft() {
		return nil, badState("contentInfo", "content %d has never been published", info.ID)
	}
	records, err := s.versionsOf(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	next := records[len(records)-1].Info.VersionNo + 1

	now := s.now()
	rec, err := s.versions.Create(ctx, func(id int64) versionRecord {
		vi := source.Info
		vi.ID = id
		vi.VersionNo = next
		vi.Status = simplecms.VersionStatusDraft
		vi.CreatorID = s.currentUserID(ctx)
		vi.CreationDate = now
		vi.ModificationDate = now
		return versionRecord{Info: vi, Fields: source.Fields}
	})
	if err != nil {
		return nil, err
	}
	rec.Fields = source.Fields
	return s.buildContent(ctx, info, &rec, nil)
}

func (s contentService) UpdateContent(ctx context.Context, versionInfo *simplecms.VersionInfo, update simplecms.ContentUpdateStruct) (*simplecms.Content, error) {
	info, err := s.infoOf(ctx, versionInfo)
	if err != nil {
		return nil, err
	}
	rec, err := s.loadVersion(ctx, info, versionInfo.VersionNo)
	if err != nil {
		return nil, err
	}
	if !rec.Info.IsDraft() {
		return nil, badState("versionInfo", "version %d of content %d is not a draft", rec.Info.VersionNo, info.ID)
	}
	initial := update.InitialLanguageCode
	if initial == "" {
		initial = rec.Info.InitialLanguageCode
	}
	if _, err := s.languageByCode(ctx, initial); err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "edit", info, initial); err != nil {
		return nil, err
	}

	ct, err := s.contentTypes.Get(ctx, info.ContentTypeID)
	if err != nil {
		return nil, notFound(err, "contentType", info.ContentTypeID)
	}
	fields, err := s.mapFields(&ct, update.Fields, rec.Fields, initial, info.MainLanguageCode)
	if err != nil {
		return nil, err
	}

	rec.Fields = fields
	rec.Info.InitialLanguageCode = initial
	rec.Info.LanguageCodes = fieldLanguages(fields, info.MainLanguageCode)
	rec.Info.Names = s.versionNames(&ct, fields, info.MainLanguageCode)
	rec.Info.ModificationDate = s.now()
	if update.CreatorID != 0 {
		rec.Info.CreatorID = update.CreatorID
	}
	if err := s.versions.Put(ctx, rec.Info.ID, *rec); err != nil {
		return nil, err
	}
	return s.buildContent(ctx, info, rec, nil)
}

func (s contentService) PublishVersion(ctx context.Context, versionInfo *simplecms.VersionInfo, translations []string) (*simplecms.Content, error) {
	info, err := s.infoOf(ctx, versionInfo)
	if err != nil {
		return nil, err
	}
	rec, err := s.loadVersion(ctx, info, versionInfo.VersionNo)
	if err != nil {
		return nil, err
	}
	if !rec.Info.IsDraft() {
		return nil, badState("versionInfo", "only drafts can be published")
	}
	if err := s.require(ctx, "content", "publish", info); err != nil {
		return nil, err
	}
	for _, lang := range translations {
		if !slices.Contains(rec.Info.LanguageCodes, lang) {
			return nil, invalid("translations", "version has no translation %q", lang)
		}
	}
	return s.publish(ctx, info, rec, translations)
}

func (r *Repository) publish(ctx context.Context, info *simplecms.ContentInfo, rec *versionRecord, translations []string) (*simplecms.Content, error) {
	ct, err := r.contentTypes.Get(ctx, info.ContentTypeID)
	if err != nil {
		return nil, notFound(err, "contentType", info.ContentTypeID)
	}

	var previous *versionRecord
	if info.IsPublished() {
		if previous, err = r.loadVersion(ctx, info, info.CurrentVersionNo); err != nil {
			return nil, err
		}
	}

	if previous != nil && len(translations) > 0 {
		// Translations not being published keep their published values.
		var fields []simplecms.Field
		for _, f := range rec.Fields {
			if slices.Contains(translations, f.LanguageCode) {
				fields = append(fields, f)
			}
		}
		for _, f := range previous.Fields {
			if !slices.Contains(translations, f.LanguageCode) {
				fields = append(fields, f)
			}
		}
		rec.Fields = fields
		rec.Info.LanguageCodes = fieldLanguages(fields, info.MainLanguageCode)
		rec.Info.Names = r.versionNames(&ct, fields, info.MainLanguageCode)
	}

	now := r.now()
	if previous != nil {
		previous.Info.Status = simplecms.VersionStatusArchived
		if err := r.versions.Put(ctx, previous.Info.ID, *previous); err != nil {
			return nil, err
		}
	}

	pending := rec.PendingLocations
	rec.PendingLocations = nil
	rec.Info.Status = simplecms.VersionStatusPublished
	rec.Info.ModificationDate = now
	if err := r.versions.Put(ctx, rec.Info.ID, *rec); err != nil {
		return nil, err
	}

	firstPublish := info.IsDraft()
	info.CurrentVersionNo = rec.Info.VersionNo
	info.Status = simplecms.ContentStatusPublished
	info.Name = rec.Info.Names[info.MainLanguageCode]
	info.ModificationDate = now
	if firstPublish && info.PublicationDate.IsZero() {
		info.PublicationDate = now
	}
	if err := r.contentInfos.Put(ctx, info.ID, *info); err != nil {
		return nil, err
	}

	if firstPublish {
		for _, create := range pending {
			if _, err := r.createLocation(ctx, info, create); err != nil {
				return nil, err
			}
		}
		if info, err = r.loadInfo(ctx, info.ID); err != nil {
			return nil, err
		}
	}

	if err := r.registerURLs(ctx, info.ID, rec.Fields); err != nil {
		return nil, err
	}
	if err := r.reindex(ctx, info.ID); err != nil {
		return nil, err
	}
	if err := r.refreshContentAliases(ctx, info.ID); err != nil {
		return nil, err
	}
	r.logger.Info("published content", "content_id", info.ID, "version", rec.Info.VersionNo)
	return r.buildContent(ctx, info, rec, nil)
}

func (s contentService) DeleteVersion(ctx context.Context, versionInfo *simplecms.VersionInfo) error {
	info, err := s.infoOf(ctx, versionInfo)
	if err != nil {
		return err
	}
	rec, err := s.loadVersion(ctx, info, versionInfo.VersionNo)
	if err != nil {
		return err
	}
	if rec.Info.IsPublished() {
		return badState("versionInfo", "the published version cannot be deleted")
	}
	if err := s.require(ctx, "content", "versionremove", s.versionInfo(rec, info)); err != nil {
		return err
	}
	records, err := s.versionsOf(ctx, info.ID)
	if err != nil {
		return err
	}
	if len(records) == 1 {
		return badState("versionInfo", "the last version of a content item cannot be deleted")
	}

	relations, err := s.relations.Find(ctx, func(rel simplecms.Relation) bool {
		return rel.SourceContentID == info.ID && rel.SourceVersionNo == rec.Info.VersionNo
	})
	if err != nil {
		return err
	}
	for _, rel := range relations {
		if err := s.relations.Delete(ctx, rel.ID); err != nil {
			return err
		}
	}
	return s.versions.Delete(ctx, rec.Info.ID)
}

func (s contentService) CopyContent(ctx context.Context, contentInfo *simplecms.ContentInfo, destination simplecms.LocationCreateStruct, versionNo int) (*simplecms.Content, error) {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, "content", "create", info, &destination); err != nil {
		return nil, err
	}
	copied, loc, err := s.copyContent(ctx, info, destination, versionNo)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		if err := s.refreshSystemAliases(ctx, loc); err != nil {
			return nil, err
		}
	}
	rec, err := s.loadVersion(ctx, copied, 0)
	if err != nil {
		return nil, err
	}
	return s.buildContent(ctx, copied, rec, nil)
}

// copyContent copies every version, or only versionNo, of a content item
// and places the copy below the destination parent.
func (r *Repository) copyContent(ctx context.Context, info *simplecms.ContentInfo, destination simplecms.LocationCreateStruct, versionNo int) (*simplecms.ContentInfo, *simplecms.Location, error) {
	parent, err := r.locations.Get(ctx, destination.ParentLocationID)
	if err != nil {
		return nil, nil, notFound(err, "location", destination.ParentLocationID)
	}
	records, err := r.versionsOf(ctx, info.ID)
	if err != nil {
		return nil, nil, err
	}
	sources := make([]int, len(records))
	for i, rec := range records {
		sources[i] = rec.Info.VersionNo
	}
	if versionNo != 0 {
		rec, err := r.loadVersion(ctx, info, versionNo)
		if err != nil {
			return nil, nil, err
		}
		sources = []int{rec.Info.VersionNo}
		rec.Info.VersionNo = 1
		if !info.IsDraft() {
			rec.Info.Status = simplecms.VersionStatusPublished
		}
		records = []versionRecord{*rec}
	}

	now := r.now()
	copied, err := r.contentInfos.Create(ctx, func(id int64) simplecms.ContentInfo {
		c := *info
		c.ID = id
		c.RemoteID = uuid.NewString()
		c.MainLocationID = 0
		c.ModificationDate = now
		if versionNo != 0 {
			c.CurrentVersionNo = 1
		}
		return c
	})
	if err != nil {
		return nil, nil, err
	}

	for i, rec := range records {
		sourceVersion := sources[i]
		rec.Info.ContentID = copied.ID
		rec.PendingLocations = nil
		if _, err := r.versions.Create(ctx, func(id int64) versionRecord {
			rec.Info.ID = id
			return rec
		}); err != nil {
			return nil, nil, err
		}
		relations, err := r.relations.Find(ctx, func(rel simplecms.Relation) bool {
			return rel.SourceContentID == info.ID && rel.SourceVersionNo == sourceVersion
		})
		if err != nil {
			return nil, nil, err
		}
		for _, rel := range relations {
			if _, err := r.relations.Create(ctx, func(id int64) simplecms.Relation {
				rel.ID = id
				rel.SourceContentID = copied.ID
				rel.SourceVersionNo = rec.Info.VersionNo
				return rel
			}); err != nil {
				return nil, nil, err
			}
		}
	}

	states, err := r.contentStates.Get(ctx, info.ID)
	if err == nil {
		states.ContentID = copied.ID
		if err := r.contentStates.Put(ctx, copied.ID, states); err != nil {
			return nil, nil, err
		}
	} else if !isNotFound(err) {
		return nil, nil, err
	}

	if copied.IsDraft() {
		return &copied, nil, nil
	}
	destination.ParentLocationID = parent.ID
	loc, err := r.createLocation(ctx, &copied, destination)
	if err != nil {
		return nil, nil, err
	}
	published, err := r.loadInfo(ctx, copied.ID)
	if err != nil {
		return nil, nil, err
	}
	current, err := r.loadVersion(ctx, published, 0)
	if err != nil {
		return nil, nil, err
	}
	if err := r.registerURLs(ctx, published.ID, current.Fields); err != nil {
		return nil, nil, err
	}
	if err := r.reindex(ctx, published.ID); err != nil {
		return nil, nil, err
	}
	return published, loc, nil
}

func (s contentService) AddRelation(ctx context.Context, source *simplecms.VersionInfo, destination *simplecms.ContentInfo) (*simplecms.Relation, error) {
	info, err := s.infoOf(ctx, source)
	if err != nil {
		return nil, err
	}
	rec, err := s.loadVersion(ctx, info, source.VersionNo)
	if err != nil {
		return nil, err
	}
	if !rec.Info.IsDraft() {
		return nil, badState("sourceVersion", "relations can only be added to drafts")
	}
	if err := s.require(ctx, "content", "edit", info); err != nil {
		return nil, err
	}
	dest, err := s.loadInfo(ctx, destination.ID)
	if err != nil {
		return nil, err
	}
	_, exists, err := s.relations.First(ctx, func(rel simplecms.Relation) bool {
		return rel.SourceContentID == info.ID && rel.SourceVersionNo == rec.Info.VersionNo && rel.DestinationContentID == dest.ID
	})
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, invalid("destinationContent", "content %d is already related", dest.ID)
	}
	rel, err := s.relations.Create(ctx, func(id int64) simplecms.Relation {
		return simplecms.Relation{
			ID:                   id,
			SourceContentID:      info.ID,
			SourceVersionNo:      rec.Info.VersionNo,
			DestinationContentID: dest.ID,
		}
	})
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (s contentService) DeleteRelation(ctx context.Context, source *simplecms.VersionInfo, destination *simplecms.ContentInfo) error {
	info, err := s.infoOf(ctx, source)
	if err != nil {
		return err
	}
	rec, err := s.loadVersion(ctx, info, source.VersionNo)
	if err != nil {
		return err
	}
	if !rec.Info.IsDraft() {
		return badState("sourceVersion", "relations can only be removed from drafts")
	}
	if err := s.require(ctx, "content", "edit", info); err != nil {
		return err
	}
	rel, ok, err := s.relations.First(ctx, func(rel simplecms.Relation) bool {
		return rel.SourceContentID == info.ID && rel.SourceVersionNo == rec.Info.VersionNo && rel.DestinationContentID == destination.ID
	})
	if err != nil {
		return err
	}
	if !ok {
		return invalid("destinationContent", "there is no relation to content %d", destination.ID)
	}
	return s.relations.Delete(ctx, rel.ID)
}

func (s contentService) DeleteTranslation(ctx context.Context, contentInfo *simplecms.ContentInfo, languageCode string) error {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return err
	}
	if err := s.require(ctx, "content", "remove", info, languageCode); err != nil {
		return err
	}
	if languageCode == info.MainLanguageCode {
		return badState("languageCode", "the main translation cannot be deleted")
	}
	records, err := s.versionsOf(ctx, info.ID)
	if err != nil {
		return err
	}
	found := false
	for _, rec := range records {
		if !slices.Contains(rec.Info.LanguageCodes, languageCode) {
			continue
		}
		found = true
		if len(rec.Info.LanguageCodes) == 1 {
			return badState("languageCode", "version %d has no other translation", rec.Info.VersionNo)
		}
	}
	if !found {
		return invalid("languageCode", "content %d has no translation %q", info.ID, languageCode)
	}

	for _, rec := range records {
		if !slices.Contains(rec.Info.LanguageCodes, languageCode) {
			continue
		}
		rec.Fields = slices.DeleteFunc(rec.Fields, func(f simplecms.Field) bool { return f.LanguageCode == languageCode })
		rec.Info.LanguageCodes = slices.DeleteFunc(rec.Info.LanguageCodes, func(l string) bool { return l == languageCode })
		delete(rec.Info.Names, languageCode)
		if rec.Info.InitialLanguageCode == languageCode {
			rec.Info.InitialLanguageCode = info.MainLanguageCode
		}
		if err := s.versions.Put(ctx, rec.Info.ID, rec); err != nil {
			return err
		}
	}
	if err := s.reindex(ctx, info.ID); err != nil {
		return err
	}
	return s.removeTranslationAliases(ctx, info.ID, languageCode)
}

func (s contentService) HideContent(ctx context.Context, contentInfo *simplecms.ContentInfo) error {
	return s.setContentHidden(ctx, contentInfo, true)
}

func (s contentService) RevealContent(ctx context.Context, contentInfo *simplecms.ContentInfo) error {
	return s.setContentHidden(ctx, contentInfo, false)
}

func (s contentService) setContentHidden(ctx context.Context, contentInfo *simplecms.ContentInfo, hidden bool) error {
	info, err := s.loadInfo(ctx, contentInfo.ID)
	if err != nil {
		return err
	}
	if err := s.require(ctx, "content", "hide", info); err != nil {
		return err
	}
	if info.IsHidden == hidden {
		return nil
	}
	info.IsHidden = hidden
	if err := s.contentInfos.Put(ctx, info.ID, *info); err != nil {
		return err
	}
	locations, err := s.locationsOf(ctx, info.ID)
	if err != nil {
		return err
	}
	for i := range locations {
		if err := s.updateVisibility(ctx, &locations[i]); err != nil {
			return err
		}
	}
	return s.reindex(ctx, info.ID)
}

var _ simplecms.ContentService = contentService{}
