package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// CreateContentRequest creates a draft of a content type below a parent
// location. Fields are keyed by field definition identifier.
type CreateContentRequest struct {
	ContentType      string         `json:"content_type"`
	ParentLocationID int64          `json:"parent_location_id"`
	Language         string         `json:"language,omitempty"`
	RemoteID         string         `json:"remote_id,omitempty"`
	Section          string         `json:"section,omitempty"`
	Fields           map[string]any `json:"fields"`
	Publish          bool           `json:"publish,omitempty"`
}

// UpdateVersionRequest sets field values of a draft.
type UpdateVersionRequest struct {
	Language string         `json:"language,omitempty"`
	Fields   map[string]any `json:"fields"`
}

type PublishRequest struct {
	Translations []string `json:"translations,omitempty"`
}

type DraftRequest struct {
	FromVersionNo int `json:"from_version_no,omitempty"`
}

// DeleteContentResponse lists the locations removed with the content.
type DeleteContentResponse struct {
	LocationIDs []int64 `json:"location_ids"`
}

// sortedKeys keeps field order stable for validation messages.
func sortedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CreateContent creates a draft and optionally publishes it.
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	if req.ContentType == "" {
		h.badRequest(w, r, "content_type is required")
		return
	}
	if req.ParentLocationID == 0 {
		req.ParentLocationID = simplecms.RootLocationID
	}
	ctx := r.Context()

	ct, err := h.repo.ContentTypeService().LoadContentTypeByIdentifier(ctx, req.ContentType)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	language := req.Language
	if language == "" {
		language = h.repo.LanguageService().DefaultLanguageCode()
	}
	create := simplecms.NewContentCreateStruct(ct, language)
	create.RemoteID = req.RemoteID
	if req.Section != "" {
		section, err := h.repo.SectionService().LoadSectionByIdentifier(ctx, req.Section)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		create.SectionID = section.ID
	}
	for _, identifier := range sortedKeys(req.Fields) {
		create.SetField(identifier, req.Fields[identifier])
	}

	content, err := h.repo.ContentService().CreateContent(ctx, create, []simplecms.LocationCreateStruct{
		{ParentLocationID: req.ParentLocationID},
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if req.Publish {
		content, err = h.repo.ContentService().PublishVersion(ctx, content.VersionInfo, nil)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, content)
}

// GetContent returns the current version, or the one given by the
// version query parameter, in the languages of the lang parameter.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	versionNo, err := queryInt(r, "version", 0)
	if err != nil {
		h.badRequest(w, r, "invalid version")
		return
	}
	content, err := h.repo.ContentService().LoadContent(r.Context(), id, languages(r), versionNo)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

func (h *Handler) GetContentByRemoteID(w http.ResponseWriter, r *http.Request) {
	content, err := h.repo.ContentService().LoadContentByRemoteID(r.Context(), chi.URLParam(r, "remoteID"), languages(r), 0)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

// DeleteContent removes the content with all its locations and versions.
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	info, ok := h.contentInfo(w, r)
	if !ok {
		return
	}
	locationIDs, err := h.repo.ContentService().DeleteContent(r.Context(), info)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, DeleteContentResponse{LocationIDs: locationIDs})
}

func (h *Handler) ListVersions(w http.ResponseWriter, r *http.Request) {
	info, ok := h.contentInfo(w, r)
	if !ok {
		return
	}
	versions, err := h.repo.ContentService().LoadVersions(r.Context(), info)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, versions)
}

func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	version, ok := h.versionInfo(w, r)
	if !ok {
		return
	}
	content, err := h.repo.ContentService().LoadContentByVersionInfo(r.Context(), version, languages(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

// UpdateVersion sets field values of a draft version.
func (h *Handler) UpdateVersion(w http.ResponseWriter, r *http.Request) {
	version, ok := h.versionInfo(w, r)
	if !ok {
		return
	}
	var req UpdateVersionRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	update := simplecms.ContentUpdateStruct{InitialLanguageCode: req.Language}
	if update.InitialLanguageCode == "" {
		update.InitialLanguageCode = version.InitialLanguageCode
	}
	for _, identifier := range sortedKeys(req.Fields) {
		update.SetField(identifier, req.Fields[identifier])
	}
	content, err := h.repo.ContentService().UpdateContent(r.Context(), version, update)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

func (h *Handler) PublishVersion(w http.ResponseWriter, r *http.Request) {
	version, ok := h.versionInfo(w, r)
	if !ok {
		return
	}
	var req PublishRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			h.badRequest(w, r, err.Error())
			return
		}
	}
	content, err := h.repo.ContentService().PublishVersion(r.Context(), version, req.Translations)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

// CreateDraft copies the current version, or from_version_no, into a new
// draft.
func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	info, ok := h.contentInfo(w, r)
	if !ok {
		return
	}
	var req DraftRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			h.badRequest(w, r, err.Error())
			return
		}
	}
	content, err := h.repo.ContentService().CreateContentDraft(r.Context(), info, req.FromVersionNo)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, content)
}

func (h *Handler) contentInfo(w http.ResponseWriter, r *http.Request) (*simplecms.ContentInfo, bool) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return nil, false
	}
	info, err := h.repo.ContentService().LoadContentInfo(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return nil, false
	}
	return info, true
}

func (h *Handler) versionInfo(w http.ResponseWriter, r *http.Request) (*simplecms.VersionInfo, bool) {
	info, ok := h.contentInfo(w, r)
	if !ok {
		return nil, false
	}
	versionNo, err := strconv.Atoi(chi.URLParam(r, "versionNo"))
	if err != nil || versionNo <= 0 {
		h.badRequest(w, r, "invalid versionNo")
		return nil, false
	}
	version, err := h.repo.ContentService().LoadVersionInfo(r.Context(), info, versionNo)
	if err != nil {
		h.handleError(w, r, err)
		return nil, false
	}
	return version, true
}
