package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fastprodman/TopupLedger/internal/infra/pgutils"
	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlaceOrder runs the full flow in a single DB transaction:
//
// 1) Ensure user exists.
// 2) Lock user row (FOR UPDATE) and check funds.
// 3) Debit the balance.
// 4) Insert the pending order.
func (s *Service) PlaceOrder(ctx context.Context, p OrderPlacement) (orders.Order, error) {
	p.GameAccountID = strings.TrimSpace(p.GameAccountID)

	err := schema.Validate(p)
	if err != nil {
		return orders.Order{}, wrap("place order", invalid(err))
	}

	var placed orders.Order

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.users.Exists(tx, p.UserID)
		if err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}

		balance, err := s.users.LockAndGetBalance(tx, p.UserID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		if balance < p.Price {
			return fmt.Errorf("pre-check decrease: %w", ErrInsufficientFunds)
		}

		err = s.users.DecreaseBalance(tx, p.UserID, p.Price)
		if err != nil {
			return fmt.Errorf("decrease balance: %w", err)
		}

		placed, err = s.orders.Insert(tx, orders.NewOrder{
			UserID:        p.UserID,
			Game:          p.Game,
			Package:       p.Package,
			GameAccountID: p.GameAccountID,
			Price:         p.Price,
		})
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		return nil
	})
	if err != nil {
		return orders.Order{}, wrap("place order", err)
	}

	zap.L().Info("order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("user_id", placed.UserID),
		zap.Int64("price", placed.Price))

	return placed, nil
}

// UpdateOrderStatus completes or cancels a pending order. The balance is not
// touched; cancelling does not refund.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status orders.Status) (orders.Order, error) {
	if status != orders.StatusCompleted && status != orders.StatusCancelled {
		return orders.Order{}, wrap("update order status", invalid(fmt.Errorf("target status %q", status)))
	}

	var updated orders.Order

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := s.orders.LockGet(tx, orderID)
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}

		updated, err = s.orders.SetStatus(tx, orderID, status)
		if err != nil {
			return fmt.Errorf("set status: %w", err)
		}

		return nil
	})
	if err != nil {
		return orders.Order{}, wrap("update order status", err)
	}

	zap.L().Info("order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", string(status)))

	return updated, nil
}
