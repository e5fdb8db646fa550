package addmoney

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/google/uuid"
)

func (r *requestsRepo) Resolve(tx *sql.Tx, id uuid.UUID, status addmoney.Status) (addmoney.Request, error) {
	row := tx.QueryRow(`
		UPDATE add_money_requests
		SET status = $2, resolved_at = now()
		WHERE id = $1
		  AND status = 'pending'
		RETURNING `+requestColumns,
		id, string(status))

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return addmoney.Request{}, addmoney.ErrAlreadyResolved
		}

		return addmoney.Request{}, fmt.Errorf("resolve add money request: %w", err)
	}

	return req, nil
}
