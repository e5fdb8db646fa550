package orders

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fastprodman/TopupLedger/internal/infra/pgtestutil"
	"github.com/fastprodman/TopupLedger/internal/infra/pgutils"
	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/google/uuid"
)

func insertOrder(t *testing.T, db *sql.DB, userID string, price int64) orders.Order {
	t.Helper()

	repo := New(db)

	var o orders.Order

	err := pgutils.WithTx(t.Context(), db, func(tx *sql.Tx) error {
		var err error
		o, err = repo.Insert(tx, orders.NewOrder{
			UserID:        userID,
			Game:          "PUBG Mobile",
			Package:       "60 UC",
			GameAccountID: "5123456789",
			Price:         price,
		})
		return err
	})
	if err != nil {
		t.Fatalf("insert order: %v", err)
	}

	return o
}

func TestOrders_InsertAndGet(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	pgtestutil.SeedUser(t, db, "u-1", 0)

	created := insertOrder(t, db, "u-1", 95)

	if created.Status != orders.StatusPending {
		t.Fatalf("new order status = %s, want pending", created.Status)
	}
	if created.ID == uuid.Nil || created.CreatedAt.IsZero() {
		t.Fatalf("id/created_at not assigned: %+v", created)
	}

	got, err := New(db).Get(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.ID != created.ID || got.Price != 95 || got.GameAccountID != "5123456789" || got.UserID != "u-1" {
		t.Fatalf("unexpected order: %+v", got)
	}

	_, err = New(db).Get(t.Context(), uuid.New())
	if !errors.Is(err, orders.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrders_Insert_RequiresUser(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	tx, err := db.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = New(db).Insert(tx, orders.NewOrder{
		UserID: "ghost", Game: "g", Package: "p", GameAccountID: "a", Price: 1,
	})
	if !pgutils.IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}

func TestOrders_SetStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		first   orders.Status // applied before the step under test; empty = none
		target  orders.Status
		wantErr error
	}{
		{name: "pending_to_completed", target: orders.StatusCompleted},
		{name: "pending_to_cancelled", target: orders.StatusCancelled},
		{name: "completed_to_cancelled", first: orders.StatusCompleted, target: orders.StatusCancelled, wantErr: orders.ErrInvalidTransition},
		{name: "cancelled_to_completed", first: orders.StatusCancelled, target: orders.StatusCompleted, wantErr: orders.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			pgtestutil.SeedUser(t, db, "u-1", 0)
			o := insertOrder(t, db, "u-1", 100)

			repo := New(db)

			setStatus := func(s orders.Status) (orders.Order, error) {
				var out orders.Order
				err := pgutils.WithTx(t.Context(), db, func(tx *sql.Tx) error {
					var err error
					out, err = repo.SetStatus(tx, o.ID, s)
					return err
				})
				return out, err
			}

			if tt.first != "" {
				_, err := setStatus(tt.first)
				if err != nil {
					t.Fatalf("first transition: %v", err)
				}
			}

			got, err := setStatus(tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr == nil && got.Status != tt.target {
				t.Fatalf("status = %s, want %s", got.Status, tt.target)
			}

			stored, err := repo.Get(t.Context(), o.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}

			want := tt.target
			if tt.wantErr != nil {
				want = tt.first
			}
			if stored.Status != want {
				t.Fatalf("stored status = %s, want %s", stored.Status, want)
			}
		})
	}
}

func TestOrders_ListByUser_NewestFirstAndLimited(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	pgtestutil.SeedUser(t, db, "u-1", 0)
	pgtestutil.SeedUser(t, db, "u-2", 0)

	var ids []uuid.UUID
	for i := range 3 {
		ids = append(ids, insertOrder(t, db, "u-1", int64(10+i)).ID)
		time.Sleep(5 * time.Millisecond)
	}
	insertOrder(t, db, "u-2", 99)

	repo := New(db)

	got, err := repo.ListByUser(t.Context(), "u-1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(got) != 2 || got[0].ID != ids[2] || got[1].ID != ids[1] {
		t.Fatalf("unexpected list: %+v", got)
	}

	recent, err := repo.ListRecent(t.Context(), 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 4 || recent[0].UserID != "u-2" {
		t.Fatalf("unexpected recent list: %+v", recent)
	}

	none, err := repo.ListByUser(t.Context(), "nobody", 10)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}
}

func TestOrders_StatsBetween(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	pgtestutil.SeedUser(t, db, "u-1", 0)

	old := insertOrder(t, db, "u-1", 1000)
	_, err := db.Exec(`UPDATE orders SET created_at = now() - interval '3 days', status = 'completed' WHERE id = $1`, old.ID)
	if err != nil {
		t.Fatalf("age order: %v", err)
	}

	a := insertOrder(t, db, "u-1", 80)
	b := insertOrder(t, db, "u-1", 160)
	insertOrder(t, db, "u-1", 390)
	c := insertOrder(t, db, "u-1", 780)

	_, err = db.Exec(`UPDATE orders SET status = 'completed' WHERE id IN ($1, $2)`, a.ID, b.ID)
	if err != nil {
		t.Fatalf("complete orders: %v", err)
	}
	_, err = db.Exec(`UPDATE orders SET status = 'cancelled' WHERE id = $1`, c.ID)
	if err != nil {
		t.Fatalf("cancel order: %v", err)
	}

	got, err := New(db).StatsBetween(t.Context(), time.Now().Add(-24*time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	want := orders.DayStats{Sales: 240, Orders: 4, Pending: 1}
	if got != want {
		t.Fatalf("stats = %+v, want %+v", got, want)
	}

	past, err := New(db).StatsBetween(t.Context(), time.Now().Add(-96*time.Hour), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("past stats: %v", err)
	}

	want = orders.DayStats{Sales: 1000, Orders: 1, Pending: 0}
	if past != want {
		t.Fatalf("past stats = %+v, want %+v", past, want)
	}
}

func TestOrders_Get_MalformedRecord(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	pgtestutil.SeedUser(t, db, "u-1", 0)

	id := uuid.New()

	_, err := db.Exec(`
		INSERT INTO orders (id, user_id, game, package, game_account_id, price)
		VALUES ($1, 'u-1', 'Roblox', '80 Robux', '', 100)
	`, id)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = New(db).Get(t.Context(), id)
	if !errors.Is(err, schema.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}
