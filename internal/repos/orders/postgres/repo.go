package orders

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
)

var _ orders.Orders = (*ordersRepo)(nil)

type ordersRepo struct{ db *sql.DB }

func New(db *sql.DB) *ordersRepo {
	return &ordersRepo{db: db}
}

const orderColumns = `id, user_id, game, package, game_account_id, price, status, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (orders.Order, error) {
	var (
		o      orders.Order
		status string
	)

	err := row.Scan(&o.ID, &o.UserID, &o.Game, &o.Package, &o.GameAccountID, &o.Price, &status, &o.CreatedAt)
	if err != nil {
		return orders.Order{}, err
	}

	o.Status = orders.Status(status)

	err = schema.CheckRecord("order", o.ID.String(), o)
	if err != nil {
		return orders.Order{}, err
	}

	return o, nil
}

func collectOrders(rows *sql.Rows) ([]orders.Order, error) {
	defer rows.Close()

	out := make([]orders.Order, 0)

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, o)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return out, nil
}
