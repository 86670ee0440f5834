package auth

import (
	"context"
	"net/http"

	"github.com/xiuxian-wiki/encyclopedia/app/respond"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

type userContextKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the user stored by Middleware, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*models.User)
	return user, ok && user != nil
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated user in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return a.guard(next, a.RequireAuth)
}

// AdminMiddleware is Middleware restricted to the admin role.
func (a *Authenticator) AdminMiddleware(next http.Handler) http.Handler {
	return a.guard(next, a.RequireAdmin)
}

func (a *Authenticator) guard(next http.Handler, check func(*http.Request) (*models.User, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := check(r)
		if err != nil {
			respond.Error(w, a.log, err, "authenticate request")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}
