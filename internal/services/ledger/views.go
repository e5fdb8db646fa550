package ledger

import (
	"context"

	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
	"github.com/fastprodman/TopupLedger/internal/services/liveview"
)

func (s *Service) WatchProfile(ctx context.Context, userID string) *liveview.Stream[users.User] {
	return liveview.Subscribe(ctx, s.hub, liveview.Query[users.User]{
		Name:  "profile",
		Match: liveview.OwnedBy(liveview.Users, userID),
		Fetch: func(ctx context.Context) (users.User, error) { return s.GetProfile(ctx, userID) },
	})
}

func (s *Service) WatchUserOrders(ctx context.Context, userID string) *liveview.Stream[[]orders.Order] {
	return liveview.Subscribe(ctx, s.hub, liveview.Query[[]orders.Order]{
		Name:  "user_orders",
		Match: liveview.OwnedBy(liveview.Orders, userID),
		Fetch: func(ctx context.Context) ([]orders.Order, error) { return s.ListUserOrders(ctx, userID, 0) },
	})
}

func (s *Service) WatchUserAddMoney(ctx context.Context, userID string) *liveview.Stream[[]addmoney.Request] {
	return liveview.Subscribe(ctx, s.hub, liveview.Query[[]addmoney.Request]{
		Name:  "user_add_money",
		Match: liveview.OwnedBy(liveview.AddMoneyRequests, userID),
		Fetch: func(ctx context.Context) ([]addmoney.Request, error) { return s.ListUserAddMoney(ctx, userID, 0) },
	})
}

func (s *Service) WatchRecentOrders(ctx context.Context) *liveview.Stream[[]orders.Order] {
	return liveview.Subscribe(ctx, s.hub, liveview.Query[[]orders.Order]{
		Name:  "recent_orders",
		Match: liveview.In(liveview.Orders),
		Fetch: func(ctx context.Context) ([]orders.Order, error) { return s.ListRecentOrders(ctx, 0) },
	})
}

func (s *Service) WatchPendingAddMoney(ctx context.Context) *liveview.Stream[[]addmoney.Request] {
	return liveview.Subscribe(ctx, s.hub, liveview.Query[[]addmoney.Request]{
		Name:  "pending_add_money",
		Match: liveview.In(liveview.AddMoneyRequests),
		Fetch: func(ctx context.Context) ([]addmoney.Request, error) {
			return s.ListAddMoneyByStatus(ctx, addmoney.StatusPending, 0)
		},
	})
}

func (s *Service) WatchAdminStats(ctx context.Context) *liveview.Stream[AdminStats] {
	orderOrRequest := func(c liveview.Change) bool {
		return c.Collection == liveview.Orders || c.Collection == liveview.AddMoneyRequests
	}

	return liveview.Subscribe(ctx, s.hub, liveview.Query[AdminStats]{
		Name:  "admin_stats",
		Match: orderOrRequest,
		Fetch: s.AdminStats,
	})
}
