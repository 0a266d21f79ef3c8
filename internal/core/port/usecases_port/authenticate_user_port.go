package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"
)

type AuthenticateUserUseCasePort interface {
	Execute(ctx context.Context, tokenString string) (*domain.User, error)
}
