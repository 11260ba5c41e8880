package delivery

import (
	"context"
	"net/http"

	"github.com/Vovarama1992/visus/internal/ports"
)

type ctxKey int

const adminUserKey ctxKey = iota

const basicRealm = `Basic realm="VISUS admin", charset="UTF-8"`

// AuthMiddleware guards the admin routes with HTTP Basic credentials.
func AuthMiddleware(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// preflight идёт без заголовков авторизации
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", basicRealm)
				writeError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			if !auth.Authenticate(r.Context(), user, pass) {
				w.Header().Set("WWW-Authenticate", basicRealm)
				writeError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}

			ctx := context.WithValue(r.Context(), adminUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminUser returns the authenticated administrator of the request.
func AdminUser(ctx context.Context) string {
	u, _ := ctx.Value(adminUserKey).(string)
	return u
}
