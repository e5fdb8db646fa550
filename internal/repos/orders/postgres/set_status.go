package orders

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/google/uuid"
)

func (r *ordersRepo) SetStatus(tx *sql.Tx, id uuid.UUID, status orders.Status) (orders.Order, error) {
	row := tx.QueryRow(`
		UPDATE orders
		SET status = $2
		WHERE id = $1
		  AND status = 'pending'
		RETURNING `+orderColumns,
		id, string(status))

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orders.Order{}, orders.ErrInvalidTransition
		}

		return orders.Order{}, fmt.Errorf("set order status: %w", err)
	}

	return o, nil
}
