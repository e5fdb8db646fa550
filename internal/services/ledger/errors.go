package ledger

import (
	"errors"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
)

var (
	ErrUserNotFound       = users.ErrUserNotFound
	ErrInsufficientFunds  = users.ErrInsufficientFunds
	ErrOrderNotFound      = orders.ErrOrderNotFound
	ErrInvalidTransition  = orders.ErrInvalidTransition
	ErrRequestNotFound    = addmoney.ErrRequestNotFound
	ErrAlreadyResolved    = addmoney.ErrAlreadyResolved
	ErrDuplicateReference = addmoney.ErrDuplicateReference
	ErrMalformedRecord    = schema.ErrMalformedRecord

	// ErrOperationFailed is joined onto store or network failures that have
	// no more specific classification.
	ErrOperationFailed = errors.New("operation failed")
	ErrRequestMismatch = errors.New("approval does not match request")
	ErrInvalidInput    = errors.New("invalid input")
)

var classified = []error{
	ErrUserNotFound,
	ErrInsufficientFunds,
	ErrOrderNotFound,
	ErrInvalidTransition,
	ErrRequestNotFound,
	ErrAlreadyResolved,
	ErrDuplicateReference,
	ErrMalformedRecord,
	ErrRequestMismatch,
	ErrInvalidInput,
}

// wrap prefixes err with op and joins ErrOperationFailed unless err already
// carries a ledger sentinel.
func wrap(op string, err error) error {
	for _, target := range classified {
		if errors.Is(err, target) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return fmt.Errorf("%s: %w", op, errors.Join(ErrOperationFailed, err))
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
