package guard

import (
	"net/http"

	"github.com/campuskit/campuskit/pkg/rbac"
	"github.com/campuskit/campuskit/pkg/session"
)

// RequirePermission gates a route on the caller holding at least one
// role that grants one of the given permissions. It must run behind a
// gate middleware that put a session in the context.
func RequirePermission(authz rbac.Authorizer, onError ErrorHandler, permissions ...string) func(http.Handler) http.Handler {
	if onError == nil {
		onError = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok {
				onError(w, r, ErrAuthenticationRequired)
				return
			}

			for _, role := range sess.Roles {
				if authz.CanAny(string(role), permissions...) == nil {
					next.ServeHTTP(w, r)
					return
				}
			}

			onError(w, r, ErrPermissionRequired)
		})
	}
}
