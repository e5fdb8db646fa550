package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/fastprodman/TopupLedger/internal/repos/orders"
)

func (r *ordersRepo) StatsBetween(ctx context.Context, from, to time.Time) (orders.DayStats, error) {
	var s orders.DayStats

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(price) FILTER (WHERE status = 'completed'), 0)::BIGINT,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending')
		FROM orders
		WHERE created_at >= $1
		  AND created_at < $2
	`, from, to).Scan(&s.Sales, &s.Orders, &s.Pending)
	if err != nil {
		return orders.DayStats{}, fmt.Errorf("order stats: %w", err)
	}

	return s, nil
}
