package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/google/uuid"
)

func (r *ordersRepo) Get(ctx context.Context, id uuid.UUID) (orders.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orders.Order{}, orders.ErrOrderNotFound
		}

		return orders.Order{}, fmt.Errorf("get order: %w", err)
	}

	return o, nil
}

func (r *ordersRepo) LockGet(tx *sql.Tx, id uuid.UUID) (orders.Order, error) {
	row := tx.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orders.Order{}, orders.ErrOrderNotFound
		}

		return orders.Order{}, fmt.Errorf("lock/get order: %w", err)
	}

	return o, nil
}
