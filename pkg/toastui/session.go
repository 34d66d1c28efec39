package toastui

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

type sessionKey struct{}

// SessionFromContext returns the toast session id resolved by the middleware.
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// SessionExtractor adds the toast session id to log records.
// Pass it to logger.WithContextExtractors.
func SessionExtractor(ctx context.Context) (slog.Attr, bool) {
	id := SessionFromContext(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return logger.SessionID(id), true
}

// Middleware resolves the session cookie, issuing a new one when missing,
// and stores the session's toast manager on the request context.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if toast.FromContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		sessionID := h.sessionID(w, r)
		ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
		ctx = toast.WithManager(ctx, h.registry.Manager(sessionID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.cfg.cookieName); err == nil && c.Value != "" {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
