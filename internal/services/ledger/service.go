package ledger

import (
	"database/sql"
	"time"

	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	pgaddmoney "github.com/fastprodman/TopupLedger/internal/repos/addmoney/postgres"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	pgorders "github.com/fastprodman/TopupLedger/internal/repos/orders/postgres"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
	pgusers "github.com/fastprodman/TopupLedger/internal/repos/users/postgres"
	"github.com/fastprodman/TopupLedger/internal/services/liveview"
)

const (
	defaultAddMoneyMin = 50
	defaultListLimit   = 50
	recentOrdersLimit  = 10
)

type Config struct {
	// AdminEmail gets the admin role when its profile is first created.
	AdminEmail  string
	AddMoneyMin int64
	// ListLimit caps every list operation and is the default page size.
	ListLimit int
	// Location defines where "today" starts for admin stats.
	Location *time.Location
}

// Service owns every write to wallet balances. Each ledger operation runs in
// one database transaction that locks the rows it reads.
type Service struct {
	db       *sql.DB
	users    users.Users
	orders   orders.Orders
	requests addmoney.Requests
	hub      *liveview.Hub
	cfg      Config
	now      func() time.Time
}

func New(db *sql.DB, hub *liveview.Hub, cfg Config) *Service {
	if cfg.AddMoneyMin <= 0 {
		cfg.AddMoneyMin = defaultAddMoneyMin
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = defaultListLimit
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Service{
		db:       db,
		users:    pgusers.New(db),
		orders:   pgorders.New(db),
		requests: pgaddmoney.New(db),
		hub:      hub,
		cfg:      cfg,
		now:      time.Now,
	}
}

// limit applies def to unset values and caps at the configured maximum.
func (s *Service) limit(n, def int) int {
	if n <= 0 {
		n = def
	}

	return min(n, s.cfg.ListLimit)
}
