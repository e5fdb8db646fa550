package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrUserNotFound = errors.New("user not found")

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a wallet owner. ID is the identity provider's subject.
type User struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Balance   int64     `json:"balance" validate:"gte=0"`
	Role      Role      `json:"role" validate:"oneof=user admin"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NewUser is the profile created on first authentication.
type NewUser struct {
	ID     string
	Name   string
	Email  string
	Role   Role
	Avatar *string
}

type Users interface {
	Exists(tx *sql.Tx, userID string) error
	Get(ctx context.Context, userID string) (User, error)
	GetBalance(ctx context.Context, userID string) (int64, error)
	LockAndGetBalance(tx *sql.Tx, userID string) (int64, error)
	IncreaseBalance(tx *sql.Tx, userID string, amount int64) error
	DecreaseBalance(tx *sql.Tx, userID string, amount int64) error
	// EnsureUser inserts u unless a user with the same ID exists, then
	// returns the stored record. Existing users are never modified.
	EnsureUser(ctx context.Context, u NewUser) (User, error)
}
