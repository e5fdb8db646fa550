package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/fastprodman/TopupLedger/internal/infra/pgutils"
	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateAddMoneyRequest files a pending request for an admin to reconcile.
func (s *Service) CreateAddMoneyRequest(ctx context.Context, in AddMoneyInput) (addmoney.Request, error) {
	in.SenderNumber = strings.TrimSpace(in.SenderNumber)
	in.TransactionRef = strings.TrimSpace(in.TransactionRef)

	err := schema.Validate(in)
	if err != nil {
		return addmoney.Request{}, wrap("create add money request", invalid(err))
	}

	if in.Amount < s.cfg.AddMoneyMin {
		return addmoney.Request{}, wrap("create add money request",
			invalid(fmt.Errorf("amount %d below minimum %d", in.Amount, s.cfg.AddMoneyMin)))
	}

	req, err := s.requests.Insert(ctx, addmoney.NewRequest{
		UserID:         in.UserID,
		Amount:         in.Amount,
		SenderNumber:   in.SenderNumber,
		TransactionRef: in.TransactionRef,
	})
	if err != nil {
		if pgutils.IsForeignKeyViolation(err) {
			err = fmt.Errorf("%w: %w", ErrUserNotFound, err)
		}

		return addmoney.Request{}, wrap("create add money request", err)
	}

	zap.L().Info("add money request created",
		zap.String("request_id", req.ID.String()),
		zap.String("user_id", req.UserID),
		zap.Int64("amount", req.Amount))

	return req, nil
}

// ApproveAddMoney runs in a single DB transaction:
//
// 1) Lock the request; it must be pending and match the approval.
// 2) Ensure user exists and lock its row.
// 3) Credit the balance.
// 4) Mark the request approved.
func (s *Service) ApproveAddMoney(ctx context.Context, a Approval) (addmoney.Request, error) {
	err := schema.Validate(a)
	if err != nil {
		return addmoney.Request{}, wrap("approve add money", invalid(err))
	}

	var approved addmoney.Request

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		req, err := s.requests.LockGet(tx, a.RequestID)
		if err != nil {
			return fmt.Errorf("lock request: %w", err)
		}

		if req.Status != addmoney.StatusPending {
			return fmt.Errorf("request is %s: %w", req.Status, ErrAlreadyResolved)
		}

		if req.UserID != a.UserID || req.Amount != a.Amount {
			return ErrRequestMismatch
		}

		// Only reachable if the user row vanished despite the foreign key.
		err = s.users.Exists(tx, req.UserID)
		if err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}

		balance, err := s.users.LockAndGetBalance(tx, req.UserID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		if balance > math.MaxInt64-req.Amount {
			return invalid(fmt.Errorf("credit of %d overflows balance", req.Amount))
		}

		err = s.users.IncreaseBalance(tx, req.UserID, req.Amount)
		if err != nil {
			return fmt.Errorf("increase balance: %w", err)
		}

		approved, err = s.requests.Resolve(tx, req.ID, addmoney.StatusApproved)
		if err != nil {
			return fmt.Errorf("mark approved: %w", err)
		}

		return nil
	})
	if err != nil {
		return addmoney.Request{}, wrap("approve add money", err)
	}

	zap.L().Info("add money request approved",
		zap.String("request_id", approved.ID.String()),
		zap.String("user_id", approved.UserID),
		zap.Int64("amount", approved.Amount))

	return approved, nil
}

// RejectAddMoney resolves a pending request without touching the balance.
func (s *Service) RejectAddMoney(ctx context.Context, requestID uuid.UUID) (addmoney.Request, error) {
	var rejected addmoney.Request

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := s.requests.LockGet(tx, requestID)
		if err != nil {
			return fmt.Errorf("lock request: %w", err)
		}

		rejected, err = s.requests.Resolve(tx, requestID, addmoney.StatusRejected)
		if err != nil {
			return fmt.Errorf("mark rejected: %w", err)
		}

		return nil
	})
	if err != nil {
		return addmoney.Request{}, wrap("reject add money", err)
	}

	zap.L().Info("add money request rejected", zap.String("request_id", requestID.String()))

	return rejected, nil
}
