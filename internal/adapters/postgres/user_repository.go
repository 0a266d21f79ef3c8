package postgres

import (
	"context"
	"errors"
	"fmt"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements UserRepositoryPort for PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UserRepository{pool: pool}, nil
}

const selectUser = `SELECT id, name, email, household_income, role, password_hash, created_at FROM users`

// FindByEmail returns (nil, nil) when no user has that email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "FindByEmail",
		"email":     email,
	})
	return r.findOne(ctx, repoLogger, selectUser+` WHERE email = $1`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "FindByID",
		"user_id":   id.String(),
	})
	return r.findOne(ctx, repoLogger, selectUser+` WHERE id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, repoLogger port.LoggerPort, query string, arg interface{}) (*domain.User, error) {
	repoLogger.Debug("Executing query to find user.", nil)

	var user domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HouseholdIncome,
		&user.Role,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("User not found.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find user", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	repoLogger.Debug("User found.", port.Fields{"user_id": user.ID.String()})
	return &user, nil
}
