package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleLandlord = "Landlord"
	RoleTenant   = "Tenant"
	RoleAgent    = "Agent"
)

// User is an account of the platform.
type User struct {
	ID              uuid.UUID
	Name            string
	Email           string
	HouseholdIncome *float64
	Role            string
	PasswordHash    string
	CreatedAt       time.Time
}

// Claims is the data carried inside a JWT.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// NewUser creates a user with a bcrypt-hashed password.
func NewUser(name, email, password, role string) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword compares password with the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
