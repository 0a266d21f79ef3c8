package contextkeys

import (
	"context"

	"recommendation-service/internal/core/domain"
)

type userKeyType struct{}

var userKey = userKeyType{}

// ContextWithUser stores the authenticated user in the context.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user set by the auth middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}
