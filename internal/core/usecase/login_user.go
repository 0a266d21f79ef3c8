package usecase

import (
	"context"
	"fmt"
	"time"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
)

type LoginUserUseCase struct {
	userRepo       port.UserRepositoryPort
	tokenSvc       port.TokenServicePort
	accessTokenTTL time.Duration
}

func NewLoginUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, accessTokenTTL time.Duration) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:       userRepo,
		tokenSvc:       tokenSvc,
		accessTokenTTL: accessTokenTTL,
	}
}

// Execute checks the credentials and issues an access token. Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (uc *LoginUserUseCase) Execute(ctx context.Context, email, password string) (*domain.User, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"email":    email,
	})
	ucLogger.Info("Use case started: attempting to login user", nil)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed to find user by email", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("Login failed: user not found", nil)
		return nil, "", domain.ErrInvalidCredentials
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	if !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful login", err, nil)
		return nil, "", err
	}

	ucLogger.Info("Use case finished: user logged in successfully", nil)
	return user, token, nil
}
