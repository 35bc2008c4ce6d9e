package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

type CountResponse struct {
	Count   int `json:"count"`
	Pending int `json:"pending"`
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.repo.SectionService().LoadSections(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, sections)
}

func (h *Handler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req simplecms.SectionCreateStruct
	if err := decode(r, &req); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	section, err := h.repo.SectionService().CreateSection(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, section)
}

// ListContentTypes lists the content types of every group, or of the
// group query parameter.
func (h *Handler) ListContentTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	service := h.repo.ContentTypeService()

	var groups []*simplecms.ContentTypeGroup
	if identifier := r.URL.Query().Get("group"); identifier != "" {
		group, err := service.LoadContentTypeGroupByIdentifier(ctx, identifier)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		groups = append(groups, group)
	} else {
		var err error
		if groups, err = service.LoadContentTypeGroups(ctx); err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	seen := make(map[int64]bool)
	types := make([]*simplecms.ContentType, 0)
	for _, group := range groups {
		inGroup, err := service.LoadContentTypes(ctx, group)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		for _, ct := range inGroup {
			if !seen[ct.ID] {
				seen[ct.ID] = true
				types = append(types, ct)
			}
		}
	}
	render.JSON(w, r, types)
}

func (h *Handler) GetContentType(w http.ResponseWriter, r *http.Request) {
	ct, err := h.repo.ContentTypeService().LoadContentTypeByIdentifier(r.Context(), chi.URLParam(r, "identifier"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, ct)
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := paging(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	list, err := h.repo.NotificationService().LoadNotifications(r.Context(), offset, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

func (h *Handler) CountNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	count, err := h.repo.NotificationService().GetNotificationCount(ctx)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	pending, err := h.repo.NotificationService().GetPendingNotificationCount(ctx)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, CountResponse{Count: count, Pending: pending})
}

// LookupURLAlias resolves the url query parameter to an alias.
func (h *Handler) LookupURLAlias(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("url")
	if path == "" {
		h.badRequest(w, r, "url is required")
		return
	}
	alias, err := h.repo.URLAliasService().Lookup(r.Context(), path, r.URL.Query().Get("lang"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, alias)
}
