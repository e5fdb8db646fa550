package api

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fastprodman/TopupLedger/internal/catalog"
	"github.com/fastprodman/TopupLedger/internal/config"
	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
	"github.com/fastprodman/TopupLedger/internal/services/ledger"
	"github.com/fastprodman/TopupLedger/internal/services/liveview"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	testSecret     = "test-secret"
	testAdminEmail = "admin@topup.local"
)

// fakeLedger records calls and returns canned results. Methods a test does
// not configure panic through the embedded nil interface.
type fakeLedger struct {
	Ledger

	hub *liveview.Hub

	mu        sync.Mutex
	users     map[string]users.User
	placed    []ledger.OrderPlacement
	deposits  []ledger.AddMoneyInput
	approvals []ledger.Approval
	err       error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{hub: liveview.NewHub(), users: map[string]users.User{}}
}

func (f *fakeLedger) failWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.err = err
}

func (f *fakeLedger) setBalance(uid string, balance int64) {
	f.mu.Lock()
	u := f.users[uid]
	u.Balance = balance
	f.users[uid] = u
	f.mu.Unlock()

	f.hub.Publish(liveview.Change{Collection: liveview.Users, DocID: uid, UserID: uid, Op: "update"})
}

func (f *fakeLedger) EnsureProfile(_ context.Context, id ledger.Identity) (users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id.UID]; ok {
		return u, nil
	}

	role := users.RoleUser
	if strings.EqualFold(id.Email, testAdminEmail) {
		role = users.RoleAdmin
	}

	u := users.User{ID: id.UID, Name: id.Name, Email: id.Email, Role: role, CreatedAt: time.Now()}
	f.users[id.UID] = u

	return u, nil
}

func (f *fakeLedger) GetProfile(_ context.Context, uid string) (users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[uid]
	if !ok {
		return users.User{}, ledger.ErrUserNotFound
	}

	return u, nil
}

func (f *fakeLedger) PlaceOrder(_ context.Context, p ledger.OrderPlacement) (orders.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return orders.Order{}, f.err
	}

	f.placed = append(f.placed, p)

	return orders.Order{
		ID:            uuid.New(),
		UserID:        p.UserID,
		Game:          p.Game,
		Package:       p.Package,
		GameAccountID: p.GameAccountID,
		Price:         p.Price,
		Status:        orders.StatusPending,
		CreatedAt:     time.Now(),
	}, nil
}

func (f *fakeLedger) CreateAddMoneyRequest(_ context.Context, in ledger.AddMoneyInput) (addmoney.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return addmoney.Request{}, f.err
	}

	f.deposits = append(f.deposits, in)

	return addmoney.Request{
		ID:             uuid.New(),
		UserID:         in.UserID,
		Amount:         in.Amount,
		SenderNumber:   in.SenderNumber,
		TransactionRef: in.TransactionRef,
		Status:         addmoney.StatusPending,
		CreatedAt:      time.Now(),
	}, nil
}

func (f *fakeLedger) ApproveAddMoney(_ context.Context, a ledger.Approval) (addmoney.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return addmoney.Request{}, f.err
	}

	f.approvals = append(f.approvals, a)
	now := time.Now()

	return addmoney.Request{
		ID:         a.RequestID,
		UserID:     a.UserID,
		Amount:     a.Amount,
		Status:     addmoney.StatusApproved,
		CreatedAt:  now,
		ResolvedAt: &now,
	}, nil
}

func (f *fakeLedger) AdminStats(context.Context) (ledger.AdminStats, error) {
	return ledger.AdminStats{TodaySales: 160, TodayOrders: 2, PendingOrders: 1, AddMoneyRequests: 3}, nil
}

func (f *fakeLedger) WatchProfile(ctx context.Context, uid string) *liveview.Stream[users.User] {
	return liveview.Subscribe(ctx, f.hub, liveview.Query[users.User]{
		Name:  "profile",
		Match: liveview.OwnedBy(liveview.Users, uid),
		Fetch: func(ctx context.Context) (users.User, error) { return f.GetProfile(ctx, uid) },
	})
}

func newTestRouter(t *testing.T, f *fakeLedger) *HandlerProvider {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	auth := NewAuthenticator(config.AuthConfig{JWTSecret: testSecret, AdminEmail: testAdminEmail})

	return NewHandler(f, cat, auth)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return s
}

func userToken(t *testing.T, uid, email string) string {
	t.Helper()

	return signToken(t, testSecret, jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"name":  "Player " + uid,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
}
