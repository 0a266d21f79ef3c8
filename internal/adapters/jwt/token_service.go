package token_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultIssuer = "recommendation-service"

// TokenService implements TokenServicePort with HS256 JWTs.
type TokenService struct {
	signingKey []byte
	issuer     string
}

func NewTokenService(signingKey, issuer string) (*TokenService, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &TokenService{signingKey: []byte(signingKey), issuer: issuer}, nil
}

type jwtCustomClaims struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

func (s *TokenService) GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "GenerateToken",
		"user_id":   user.ID.String(),
	})

	now := time.Now()
	claims := &jwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		serviceLogger.Error("Failed to sign token", err, nil)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	serviceLogger.Debug("Token generated.", port.Fields{"ttl": ttl.String()})
	return signedToken, nil
}

// ValidateToken returns domain.ErrTokenInvalid for any malformed, forged or expired token.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "ValidateToken",
	})

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			serviceLogger.Warn("Token has expired", nil)
		} else {
			serviceLogger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		serviceLogger.Error("Token was parsed without error, but claims type assertion failed", nil, nil)
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
