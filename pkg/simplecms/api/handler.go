// Package api serves the repository over HTTP as JSON.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/event"
)

// Handler exposes repository services as HTTP endpoints. Every call runs
// as the user named by the bearer token, or as the anonymous user.
type Handler struct {
	repo     simplecms.Repository
	auth     *jwtauth.JWTAuth
	tokenTTL time.Duration
	logger   *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for request and error logs.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		if ttl > 0 {
			h.tokenTTL = ttl
		}
	}
}

// NewAuth returns an HS256 token signer and verifier.
func NewAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// New creates a handler for repo.
func New(repo simplecms.Repository, auth *jwtauth.JWTAuth, opts ...Option) *Handler {
	h := &Handler{
		repo:     repo,
		auth:     auth,
		tokenTTL: 24 * time.Hour,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns a router with all endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recovery(h.logger))
	r.Use(Logging(h.logger))

	r.Post("/auth/token", h.CreateToken)

	r.Group(func(r chi.Router) {
		r.Use(Authenticator(h.auth))

		r.Get("/user", h.CurrentUser)

		r.Route("/content", func(r chi.Router) {
			r.Post("/", h.CreateContent)
			r.Get("/remote/{remoteID}", h.GetContentByRemoteID)
			r.Get("/{id}", h.GetContent)
			r.Delete("/{id}", h.DeleteContent)
			r.Get("/{id}/versions", h.ListVersions)
			r.Get("/{id}/versions/{versionNo}", h.GetVersion)
			r.Patch("/{id}/versions/{versionNo}", h.UpdateVersion)
			r.Post("/{id}/versions/{versionNo}/publish", h.PublishVersion)
			r.Post("/{id}/drafts", h.CreateDraft)
		})

		r.Route("/locations/{id}", func(r chi.Router) {
			r.Get("/", h.GetLocation)
			r.Get("/children", h.ListChildren)
			r.Post("/move", h.MoveLocation)
			r.Post("/hide", h.HideLocation)
			r.Post("/unhide", h.UnhideLocation)
			r.Post("/trash", h.TrashLocation)
		})

		r.Route("/trash", func(r chi.Router) {
			r.Get("/", h.ListTrash)
			r.Delete("/", h.EmptyTrash)
			r.Post("/{id}/restore", h.RestoreTrashItem)
		})

		r.Get("/search", h.Search)

		r.Get("/sections", h.ListSections)
		r.Post("/sections", h.CreateSection)
		r.Get("/content-types", h.ListContentTypes)
		r.Get("/content-types/{identifier}", h.GetContentType)
		r.Get("/notifications", h.ListNotifications)
		r.Get("/notifications/count", h.CountNotifications)
		r.Get("/url-aliases/lookup", h.LookupURLAlias)
	})

	return r
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFrom(r.Context()),
	}})
}

// handleError maps repository errors to HTTP statuses.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"request_id", RequestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err)
	}
	writeError(w, r, status, code, err.Error())
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, simplecms.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, simplecms.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, simplecms.ErrContentValidation):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, simplecms.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, simplecms.ErrBadState):
		return http.StatusConflict, "bad_state"
	case errors.Is(err, event.ErrNoResult):
		return http.StatusConflict, "cancelled"
	case errors.Is(err, simplecms.ErrNotImplemented):
		return http.StatusNotImplemented, "not_implemented"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, "bad_request", message)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// idParam reads a positive integer URL parameter.
func (h *Handler) idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := parseID(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		h.badRequest(w, r, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, returning def when it is
// absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// paging reads the offset and limit query parameters. Both must be
// non-negative; limit defaults to 25.
func paging(r *http.Request) (offset, limit int, err error) {
	if offset, err = queryInt(r, "offset", 0); err != nil || offset < 0 {
		return 0, 0, invalidParam("offset", r.URL.Query().Get("offset"))
	}
	if limit, err = queryInt(r, "limit", 25); err != nil || limit < 0 {
		return 0, 0, invalidParam("limit", r.URL.Query().Get("limit"))
	}
	return offset, limit, nil
}

// languages splits the comma separated lang query parameter.
func languages(r *http.Request) []string {
	raw := r.URL.Query().Get("lang")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
