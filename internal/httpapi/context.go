package httpapi

import (
	"context"

	"github.com/lumishot/lumishot/internal/storage"
)

type userCtxKey struct{}

func setUserToContext(ctx context.Context, u storage.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// userFromContext returns the authenticated user placed by the auth
// middleware.
func userFromContext(ctx context.Context) (storage.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(storage.User)
	return u, ok
}
