package addmoney

import (
	"context"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
)

func (r *requestsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]addmoney.Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM add_money_requests
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list user add money requests: %w", err)
	}

	out, err := collectRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("list user add money requests: %w", err)
	}

	return out, nil
}

func (r *requestsRepo) ListByStatus(ctx context.Context, status addmoney.Status, limit int) ([]addmoney.Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM add_money_requests
		WHERE status = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list add money requests by status: %w", err)
	}

	out, err := collectRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("list add money requests by status: %w", err)
	}

	return out, nil
}

func (r *requestsRepo) CountByStatus(ctx context.Context, status addmoney.Status) (int, error) {
	var n int

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM add_money_requests
		WHERE status = $1
	`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count add money requests: %w", err)
	}

	return n, nil
}
