package port

import (
	"context"
	"time"

	"recommendation-service/internal/core/domain"
)

// TokenServicePort issues and verifies access tokens.
type TokenServicePort interface {
	GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)
	// ValidateToken returns the claims of a valid token.
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}
