package usecase

import (
	"context"
	"fmt"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
)

// AuthenticateUserUseCase resolves a token to the user that still owns it.
type AuthenticateUserUseCase struct {
	tokenSvc port.TokenServicePort
	userRepo port.UserRepositoryPort
}

func NewAuthenticateUserUseCase(tokenSvc port.TokenServicePort, userRepo port.UserRepositoryPort) *AuthenticateUserUseCase {
	return &AuthenticateUserUseCase{tokenSvc: tokenSvc, userRepo: userRepo}
}

func (uc *AuthenticateUserUseCase) Execute(ctx context.Context, tokenString string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "AuthenticateUser",
	})

	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		ucLogger.Warn("Token validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		ucLogger.Error("Repository failed to find user by id", err, port.Fields{"user_id": claims.UserID.String()})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("Token owner no longer exists", port.Fields{"user_id": claims.UserID.String()})
		return nil, domain.ErrUserNotFound
	}

	ucLogger.Debug("User authenticated", port.Fields{
		"user_id": user.ID.String(),
		"role":    user.Role,
	})
	return user, nil
}
