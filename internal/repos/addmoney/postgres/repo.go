package addmoney

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
)

var _ addmoney.Requests = (*requestsRepo)(nil)

type requestsRepo struct{ db *sql.DB }

func New(db *sql.DB) *requestsRepo {
	return &requestsRepo{db: db}
}

const requestColumns = `id, user_id, amount, sender_number, transaction_ref, status, created_at, resolved_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (addmoney.Request, error) {
	var (
		r        addmoney.Request
		status   string
		resolved sql.NullTime
	)

	err := row.Scan(&r.ID, &r.UserID, &r.Amount, &r.SenderNumber, &r.TransactionRef, &status, &r.CreatedAt, &resolved)
	if err != nil {
		return addmoney.Request{}, err
	}

	r.Status = addmoney.Status(status)
	if resolved.Valid {
		r.ResolvedAt = &resolved.Time
	}

	err = schema.CheckRecord("add money request", r.ID.String(), r)
	if err != nil {
		return addmoney.Request{}, err
	}

	return r, nil
}

func collectRequests(rows *sql.Rows) ([]addmoney.Request, error) {
	defer rows.Close()

	out := make([]addmoney.Request, 0)

	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, r)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return out, nil
}
