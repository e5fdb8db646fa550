package orders

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/google/uuid"
)

func (r *ordersRepo) Insert(tx *sql.Tx, no orders.NewOrder) (orders.Order, error) {
	row := tx.QueryRow(`
		INSERT INTO orders (id, user_id, game, package, game_account_id, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING `+orderColumns,
		uuid.New(), no.UserID, no.Game, no.Package, no.GameAccountID, no.Price)

	o, err := scanOrder(row)
	if err != nil {
		return orders.Order{}, fmt.Errorf("insert order: %w", err)
	}

	return o, nil
}
