package ledger

import (
	"context"
	"time"

	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/google/uuid"
)

func (s *Service) ListUserOrders(ctx context.Context, userID string, limit int) ([]orders.Order, error) {
	out, err := s.orders.ListByUser(ctx, userID, s.limit(limit, s.cfg.ListLimit))
	if err != nil {
		return nil, wrap("list user orders", err)
	}

	return out, nil
}

// ListRecentOrders returns the newest orders across all users.
func (s *Service) ListRecentOrders(ctx context.Context, limit int) ([]orders.Order, error) {
	out, err := s.orders.ListRecent(ctx, s.limit(limit, recentOrdersLimit))
	if err != nil {
		return nil, wrap("list recent orders", err)
	}

	return out, nil
}

func (s *Service) ListUserAddMoney(ctx context.Context, userID string, limit int) ([]addmoney.Request, error) {
	out, err := s.requests.ListByUser(ctx, userID, s.limit(limit, s.cfg.ListLimit))
	if err != nil {
		return nil, wrap("list user add money requests", err)
	}

	return out, nil
}

func (s *Service) ListAddMoneyByStatus(ctx context.Context, status addmoney.Status, limit int) ([]addmoney.Request, error) {
	out, err := s.requests.ListByStatus(ctx, status, s.limit(limit, s.cfg.ListLimit))
	if err != nil {
		return nil, wrap("list add money requests", err)
	}

	return out, nil
}

func (s *Service) GetAddMoneyRequest(ctx context.Context, id uuid.UUID) (addmoney.Request, error) {
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		return addmoney.Request{}, wrap("get add money request", err)
	}

	return req, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (orders.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return orders.Order{}, wrap("get order", err)
	}

	return o, nil
}

// AdminStats summarizes today's orders (local midnight onwards) and the
// number of add money requests awaiting review.
func (s *Service) AdminStats(ctx context.Context) (AdminStats, error) {
	day, err := s.DaySummary(ctx, s.now())
	if err != nil {
		return AdminStats{}, wrap("admin stats", err)
	}

	pending, err := s.requests.CountByStatus(ctx, addmoney.StatusPending)
	if err != nil {
		return AdminStats{}, wrap("admin stats", err)
	}

	return fromDayStats(day, pending), nil
}

// DaySummary aggregates orders created on the local calendar day containing t.
func (s *Service) DaySummary(ctx context.Context, t time.Time) (orders.DayStats, error) {
	from := startOfDay(t, s.cfg.Location)
	to := from.AddDate(0, 0, 1)

	d, err := s.orders.StatsBetween(ctx, from, to)
	if err != nil {
		return orders.DayStats{}, wrap("day summary", err)
	}

	return d, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
