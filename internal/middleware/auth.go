package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/deepakMaj/Task-Manager-API/internal/api/httpx"
	"github.com/deepakMaj/Task-Manager-API/internal/auth"
	"github.com/deepakMaj/Task-Manager-API/internal/models"
	"github.com/deepakMaj/Task-Manager-API/internal/repository"
)

type ctxKey int

const (
	ctxUserKey ctxKey = iota
	ctxTokenKey
)

// UserFrom returns the authenticated user attached by Auth.
func UserFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxUserKey).(*models.User)
	return u, ok
}

// TokenFrom returns the exact token string the request authenticated with.
// Logout uses it to revoke only the current session.
func TokenFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(ctxTokenKey).(string)
	return t, ok
}

type AuthMiddleware struct {
	tm    *auth.TokenManager
	users repository.Users
}

func NewAuthMiddleware(tm *auth.TokenManager, users repository.Users) *AuthMiddleware {
	return &AuthMiddleware{tm: tm, users: users}
}

// Auth gates protected routes: it extracts the bearer token, verifies the
// signature, then resolves the user whose token list still contains this
// exact string. A token missing from the list (logged out, or the account
// was deleted) is rejected the same way as a forged one.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "please authenticate", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		userID, err := m.tm.Parse(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "please authenticate", nil)
			return
		}

		u, err := m.users.GetByIDAndToken(r.Context(), userID, token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "please authenticate", nil)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, u)
		ctx = context.WithValue(ctx, ctxTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
