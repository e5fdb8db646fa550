package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// Order is a purchase paid from the wallet. Game and Package hold display
// names as they were at placement time.
type Order struct {
	ID            uuid.UUID `json:"id" validate:"required"`
	UserID        string    `json:"userId" validate:"required"`
	Game          string    `json:"game" validate:"required"`
	Package       string    `json:"package" validate:"required"`
	GameAccountID string    `json:"gameAccountId" validate:"required"`
	Price         int64     `json:"price" validate:"gt=0"`
	Status        Status    `json:"status" validate:"oneof=pending completed cancelled"`
	CreatedAt     time.Time `json:"createdAt" validate:"required"`
}

type NewOrder struct {
	UserID        string
	Game          string
	Package       string
	GameAccountID string
	Price         int64
}

// DayStats summarizes orders created within a time range.
type DayStats struct {
	Sales   int64 `json:"sales"` // sum of completed order prices
	Orders  int   `json:"orders"`
	Pending int   `json:"pending"`
}

type Orders interface {
	// Insert records a pending order.
	Insert(tx *sql.Tx, o NewOrder) (Order, error)
	Get(ctx context.Context, id uuid.UUID) (Order, error)
	LockGet(tx *sql.Tx, id uuid.UUID) (Order, error)
	// SetStatus moves a pending order to status. Orders not pending yield
	// ErrInvalidTransition.
	SetStatus(tx *sql.Tx, id uuid.UUID, status Status) (Order, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Order, error)
	ListRecent(ctx context.Context, limit int) ([]Order, error)
	// StatsBetween covers orders created in [from, to).
	StatsBetween(ctx context.Context, from, to time.Time) (DayStats, error)
}
