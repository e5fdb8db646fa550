package addmoney

import (
	"context"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/infra/pgutils"
	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/google/uuid"
)

func (r *requestsRepo) Insert(ctx context.Context, nr addmoney.NewRequest) (addmoney.Request, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO add_money_requests (id, user_id, amount, sender_number, transaction_ref, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING `+requestColumns,
		uuid.New(), nr.UserID, nr.Amount, nr.SenderNumber, nr.TransactionRef)

	req, err := scanRequest(row)
	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return addmoney.Request{}, addmoney.ErrDuplicateReference
		}

		return addmoney.Request{}, fmt.Errorf("insert add money request: %w", err)
	}

	return req, nil
}
