package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDFrom returns the request ID set by RequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID adds a unique request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

// Logging logs each request with its status and duration.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info("request",
				"request_id", RequestIDFrom(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration", time.Since(start))
		})
	}
}

// Recovery turns a panic into a 500 response.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic", "request_id", RequestIDFrom(r.Context()), "panic", rec)
					writeError(w, r, http.StatusInternalServerError, "internal_error", "an internal server error occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticator puts the user named by a verified bearer token on the
// request context. Requests without a token continue as the anonymous
// user; an invalid token is rejected.
func Authenticator(auth *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return jwtauth.Verifier(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				writeError(w, r, http.StatusUnauthorized, "invalid_token", err.Error())
				return
			}
			userID, ok := claimUserID(claims)
			if !ok {
				writeError(w, r, http.StatusUnauthorized, "invalid_token", "token has no subject")
				return
			}
			ctx := simplecms.WithUserReference(r.Context(), simplecms.UserReference{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		}))
	}
}

func claimUserID(claims map[string]interface{}) (int64, bool) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	id, err := parseID(sub)
	return id, err == nil && id > 0
}
