package addmoney

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/google/uuid"
)

func (r *requestsRepo) Get(ctx context.Context, id uuid.UUID) (addmoney.Request, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM add_money_requests
		WHERE id = $1
	`, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return addmoney.Request{}, addmoney.ErrRequestNotFound
		}

		return addmoney.Request{}, fmt.Errorf("get add money request: %w", err)
	}

	return req, nil
}

func (r *requestsRepo) LockGet(tx *sql.Tx, id uuid.UUID) (addmoney.Request, error) {
	row := tx.QueryRow(`
		SELECT `+requestColumns+`
		FROM add_money_requests
		WHERE id = $1
		FOR UPDATE
	`, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return addmoney.Request{}, addmoney.ErrRequestNotFound
		}

		return addmoney.Request{}, fmt.Errorf("lock/get add money request: %w", err)
	}

	return req, nil
}
