package middleware

import (
	"go-feedback-app/internal/session"
	"net/http"

	"github.com/casbin/casbin/v2"
)

// Session keys written at login.
const (
	SessionUserID = "user_id"
	SessionRole   = "user_role"
)

// Authorizer creates a new middleware for authorization. It resolves the
// request user from the session, stores the user info in the request context
// for downstream handlers, and enforces the Casbin path policy for the
// user's role.
func Authorizer(e casbin.IEnforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionUserID)
			role := sm.GetString(r.Context(), SessionRole)
			if userID == 0 || role == "" {
				role = RoleAnonymous
			}

			userInfo := &UserInfo{ID: userID, Role: role}
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			allowed, err := e.Enforce(role, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				if role == RoleAnonymous {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
