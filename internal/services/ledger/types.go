package ledger

import (
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/google/uuid"
)

// OrderPlacement is a purchase request. Game and Package are display names
// and Price is already resolved from the catalog.
type OrderPlacement struct {
	UserID        string `validate:"required"`
	Game          string `validate:"required"`
	Package       string `validate:"required"`
	GameAccountID string `validate:"required,max=64"`
	Price         int64  `validate:"gt=0"`
}

// Approval is what the admin saw when approving: the request and the
// user/amount it claims. Both must still match the stored request.
type Approval struct {
	RequestID uuid.UUID `validate:"required"`
	UserID    string    `validate:"required"`
	Amount    int64     `validate:"gt=0"`
}

type AddMoneyInput struct {
	UserID         string `validate:"required"`
	Amount         int64  `validate:"gt=0"`
	SenderNumber   string `validate:"required,phone"`
	TransactionRef string `validate:"required,max=64"`
}

// Identity is a verified login from the identity provider.
type Identity struct {
	UID    string `validate:"required"`
	Email  string `validate:"required,email"`
	Name   string
	Avatar *string
}

// AdminStats is the admin dashboard summary for the current local day.
type AdminStats struct {
	TodaySales       int64 `json:"todaySales"`
	TodayOrders      int   `json:"todayOrders"`
	PendingOrders    int   `json:"pendingOrders"`
	AddMoneyRequests int   `json:"addMoneyRequests"`
}

func fromDayStats(d orders.DayStats, pendingRequests int) AdminStats {
	return AdminStats{
		TodaySales:       d.Sales,
		TodayOrders:      d.Orders,
		PendingOrders:    d.Pending,
		AddMoneyRequests: pendingRequests,
	}
}
