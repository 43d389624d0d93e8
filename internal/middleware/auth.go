package middleware

import (
	"context"
	"net/http"

	"github.com/ecinar/stocksim/internal/session"
)

type ctxKey string

const ctxUserIDKey ctxKey = "uid"

// UserID returns the authenticated user id placed in the context by RequireUser.
func UserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUserIDKey).(string)
	return v, ok
}

type AuthMiddleware struct {
	sessions *session.Manager
}

func NewAuthMiddleware(sm *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sm}
}

// RequireUser gates protected pages. A request without a valid session cookie
// is redirected to the login form rather than erroring.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := m.sessions.UserID(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
