package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"
)

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.User, string, error) // user and JWT
}
