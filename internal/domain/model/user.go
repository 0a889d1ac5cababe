package model

import (
	"time"

	"salon-suite/internal/domain"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleStaff    Role = "Staff"
	RoleCustomer Role = "Customer"
)

// User is a salon account. Customers carry loyalty credits and the
// first-time flag the lifecycle mutates on first confirmed subscription.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role

	TotalCredits    int64
	IsFirstTimeUser bool

	// Password reset; expiry is a plain timestamp comparison, no timers.
	OTP        string
	OTPExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }

// OTPValid reports whether code matches a non-expired one-time code.
func (u *User) OTPValid(code string, now time.Time) bool {
	if u.OTP == "" || u.OTP != code {
		return false
	}
	return u.OTPExpires != nil && now.Before(*u.OTPExpires)
}

func NewUser(id, name, email, passwordHash string, role Role) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if name == "" || email == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	if role == "" {
		role = RoleCustomer
	}
	now := time.Now()
	return &User{
		ID:              id,
		Name:            name,
		Email:           email,
		PasswordHash:    passwordHash,
		Role:            role,
		IsFirstTimeUser: role == RoleCustomer,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
