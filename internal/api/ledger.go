package api

import (
	"context"

	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
	"github.com/fastprodman/TopupLedger/internal/services/ledger"
	"github.com/fastprodman/TopupLedger/internal/services/liveview"
	"github.com/google/uuid"
)

// Ledger is the service surface the HTTP layer depends on.
type Ledger interface {
	EnsureProfile(ctx context.Context, id ledger.Identity) (users.User, error)
	GetProfile(ctx context.Context, userID string) (users.User, error)

	PlaceOrder(ctx context.Context, p ledger.OrderPlacement) (orders.Order, error)
	ListUserOrders(ctx context.Context, userID string, limit int) ([]orders.Order, error)
	ListRecentOrders(ctx context.Context, limit int) ([]orders.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status orders.Status) (orders.Order, error)

	CreateAddMoneyRequest(ctx context.Context, in ledger.AddMoneyInput) (addmoney.Request, error)
	ListUserAddMoney(ctx context.Context, userID string, limit int) ([]addmoney.Request, error)
	ListAddMoneyByStatus(ctx context.Context, status addmoney.Status, limit int) ([]addmoney.Request, error)
	ApproveAddMoney(ctx context.Context, a ledger.Approval) (addmoney.Request, error)
	RejectAddMoney(ctx context.Context, requestID uuid.UUID) (addmoney.Request, error)

	AdminStats(ctx context.Context) (ledger.AdminStats, error)

	WatchProfile(ctx context.Context, userID string) *liveview.Stream[users.User]
	WatchUserOrders(ctx context.Context, userID string) *liveview.Stream[[]orders.Order]
	WatchUserAddMoney(ctx context.Context, userID string) *liveview.Stream[[]addmoney.Request]
	WatchRecentOrders(ctx context.Context) *liveview.Stream[[]orders.Order]
	WatchPendingAddMoney(ctx context.Context) *liveview.Stream[[]addmoney.Request]
	WatchAdminStats(ctx context.Context) *liveview.Stream[ledger.AdminStats]
}

var _ Ledger = (*ledger.Service)(nil)
