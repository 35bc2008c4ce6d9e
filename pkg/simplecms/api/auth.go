package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

type TokenRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	UserID    int64  `json:"user_id"`
}

// UserResponse is a user without its password hash.
type UserResponse struct {
	ID       int64   `json:"id"`
	Login    string  `json:"login"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Enabled  bool    `json:"enabled"`
	GroupIDs []int64 `json:"group_ids"`
}

func toUserResponse(u *simplecms.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Login:    u.Login,
		Email:    u.Email,
		Name:     u.Name,
		Enabled:  u.Enabled,
		GroupIDs: u.GroupIDs,
	}
}

// CreateToken exchanges a login and password for a bearer token. The user
// needs the user/login permission.
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	if req.Login == "" || req.Password == "" {
		h.badRequest(w, r, "login and password are required")
		return
	}

	sudo := simplecms.WithSudo(r.Context())
	users := h.repo.UserService()
	user, err := users.LoadUserByLogin(sudo, req.Login)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid login or password")
		return
	}
	ok, err := users.CheckUserCredentials(sudo, user, req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok || !user.Enabled {
		writeError(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid login or password")
		return
	}

	userCtx := simplecms.WithUserReference(r.Context(), simplecms.UserReference{UserID: user.ID})
	access, err := h.repo.PermissionResolver().HasAccess(userCtx, "user", "login")
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !access.Granted() {
		writeError(w, r, http.StatusForbidden, "login_denied", "user may not log in")
		return
	}

	claims := map[string]interface{}{"sub": strconv.FormatInt(user.ID, 10)}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, h.tokenTTL)
	_, token, err := h.auth.Encode(claims)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.Info("token issued", "user_id", user.ID, "login", user.Login)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, TokenResponse{
		Token:     token,
		ExpiresIn: int64(h.tokenTTL.Seconds()),
		UserID:    user.ID,
	})
}

// CurrentUser returns the user the request runs as.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ref := h.repo.PermissionResolver().CurrentUserReference(r.Context())
	if ref.UserID == 0 {
		h.handleError(w, r, &simplecms.NotFoundError{What: "User", Identifier: "current"})
		return
	}
	user, err := h.repo.UserService().LoadUser(simplecms.WithSudo(r.Context()), ref.UserID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, toUserResponse(user))
}
