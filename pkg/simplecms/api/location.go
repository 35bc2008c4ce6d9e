package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

type MoveRequest struct {
	NewParentLocationID int64 `json:"new_parent_location_id"`
}

type RestoreRequest struct {
	NewParentLocationID int64 `json:"new_parent_location_id,omitempty"`
}

// TrashResponse is nil Item when the content kept other locations and
// nothing went to the trash.
type TrashResponse struct {
	Item *simplecms.TrashItem `json:"item"`
}

func (h *Handler) location(w http.ResponseWriter, r *http.Request) (*simplecms.Location, bool) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return nil, false
	}
	loc, err := h.repo.LocationService().LoadLocation(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return nil, false
	}
	return loc, true
}

func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, loc)
}

// ListChildren pages through children in the parent's sort order.
func (h *Handler) ListChildren(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}
	offset, limit, err := paging(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	children, err := h.repo.LocationService().LoadLocationChildren(r.Context(), loc, offset, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, children)
}

func (h *Handler) MoveLocation(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}
	var req MoveRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	parent, err := h.repo.LocationService().LoadLocation(r.Context(), req.NewParentLocationID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := h.repo.LocationService().MoveSubtree(r.Context(), loc, parent); err != nil {
		h.handleError(w, r, err)
		return
	}
	moved, err := h.repo.LocationService().LoadLocation(r.Context(), loc.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, moved)
}

func (h *Handler) HideLocation(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}
	hidden, err := h.repo.LocationService().HideLocation(r.Context(), loc)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, hidden)
}

func (h *Handler) UnhideLocation(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}
	revealed, err := h.repo.LocationService().UnhideLocation(r.Context(), loc)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, revealed)
}

func (h *Handler) TrashLocation(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}
	item, err := h.repo.TrashService().Trash(r.Context(), loc)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, TrashResponse{Item: item})
}

func (h *Handler) ListTrash(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := paging(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	items, err := h.repo.TrashService().FindTrashItems(r.Context(), simplecms.TrashQuery{Offset: offset, Limit: limit})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

// RestoreTrashItem recovers an item below its original parent, or below
// new_parent_location_id.
func (h *Handler) RestoreTrashItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	var req RestoreRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			h.badRequest(w, r, err.Error())
			return
		}
	}
	ctx := r.Context()
	item, err := h.repo.TrashService().LoadTrashItem(ctx, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	var parent *simplecms.Location
	if req.NewParentLocationID != 0 {
		if parent, err = h.repo.LocationService().LoadLocation(ctx, req.NewParentLocationID); err != nil {
			h.handleError(w, r, err)
			return
		}
	}
	loc, err := h.repo.TrashService().Recover(ctx, item, parent)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, loc)
}

func (h *Handler) EmptyTrash(w http.ResponseWriter, r *http.Request) {
	results, err := h.repo.TrashService().EmptyTrash(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, results)
}
