package orders

import (
	"context"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/repos/orders"
)

func (r *ordersRepo) ListByUser(ctx context.Context, userID string, limit int) ([]orders.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}

	out, err := collectOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}

	return out, nil
}

func (r *ordersRepo) ListRecent(ctx context.Context, limit int) ([]orders.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent orders: %w", err)
	}

	out, err := collectOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("list recent orders: %w", err)
	}

	return out, nil
}
