package addmoney

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound    = errors.New("add money request not found")
	ErrAlreadyResolved    = errors.New("add money request already resolved")
	ErrDuplicateReference = errors.New("duplicate transaction reference")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown add money status %q", s)
	}
}

// Request asks an admin to credit a wallet after a manual mobile payment.
// TransactionRef is the payment provider's reference quoted by the user.
type Request struct {
	ID             uuid.UUID  `json:"id" validate:"required"`
	UserID         string     `json:"userId" validate:"required"`
	Amount         int64      `json:"amount" validate:"gt=0"`
	SenderNumber   string     `json:"senderNumber" validate:"required"`
	TransactionRef string     `json:"transactionRef" validate:"required"`
	Status         Status     `json:"status" validate:"oneof=pending approved rejected"`
	CreatedAt      time.Time  `json:"createdAt" validate:"required"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
}

type NewRequest struct {
	UserID         string
	Amount         int64
	SenderNumber   string
	TransactionRef string
}

type Requests interface {
	// Insert records a pending request. A reference already used by a
	// pending or approved request yields ErrDuplicateReference.
	Insert(ctx context.Context, r NewRequest) (Request, error)
	Get(ctx context.Context, id uuid.UUID) (Request, error)
	LockGet(tx *sql.Tx, id uuid.UUID) (Request, error)
	// Resolve moves a pending request to status and stamps resolved_at.
	// Requests not pending yield ErrAlreadyResolved.
	Resolve(tx *sql.Tx, id uuid.UUID, status Status) (Request, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Request, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Request, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}
