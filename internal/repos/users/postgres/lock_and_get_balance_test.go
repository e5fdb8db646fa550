package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fastprodman/TopupLedger/internal/infra/pgtestutil"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
)

func TestUsers_LockAndGetBalance_Table(t *testing.T) {
	t.Parallel()

	type tc struct {
		name        string
		seed        func(db *sql.DB, t *testing.T)
		userID      string
		wantBalance int64
		wantErr     bool // true => expect users.ErrUserNotFound
	}

	tests := []tc{
		{
			name:        "user_exists_zero_balance",
			seed:        func(db *sql.DB, t *testing.T) { pgtestutil.SeedUser(t, db, "u-1", 0) },
			userID:      "u-1",
			wantBalance: 0,
		},
		{
			name:        "user_exists_positive_balance",
			seed:        func(db *sql.DB, t *testing.T) { pgtestutil.SeedUser(t, db, "u-2", 12345) },
			userID:      "u-2",
			wantBalance: 12345,
		},
		{
			name:    "user_not_found",
			seed:    func(_ *sql.DB, _ *testing.T) {},
			userID:  "u-999",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			tt.seed(db, t)

			repo := New(db)

			ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
			defer cancel()

			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				t.Fatalf("begin tx: %v", err)
			}
			defer func() { _ = tx.Rollback() }()

			bal, err := repo.LockAndGetBalance(tx, tt.userID)

			if tt.wantErr {
				if !errors.Is(err, users.ErrUserNotFound) {
					t.Fatalf("expected ErrUserNotFound, got: %v (balance=%d)", err, bal)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bal != tt.wantBalance {
				t.Fatalf("balance mismatch: want %d, got %d", tt.wantBalance, bal)
			}
		})
	}
}

// A second FOR UPDATE on the same row blocks until the first tx commits.
func TestUsers_LockAndGetBalance_LocksRow(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	pgtestutil.SeedUser(t, db, "u-42", 200)

	repo := New(db)

	ctx1, cancel1 := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel1()

	tx1, err := db.BeginTx(ctx1, nil)
	if err != nil {
		t.Fatalf("begin tx1: %v", err)
	}
	defer func() { _ = tx1.Rollback() }()

	_, err = repo.LockAndGetBalance(tx1, "u-42")
	if err != nil {
		t.Fatalf("tx1 lock/get: %v", err)
	}

	lockedCh := make(chan struct{})
	errCh := make(chan error, 1)

	go func() {
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()

		tx2, e := db.BeginTx(ctx2, nil)
		if e != nil {
			errCh <- e
			return
		}
		defer func() { _ = tx2.Rollback() }()

		_, e = repo.LockAndGetBalance(tx2, "u-42")
		if e != nil {
			errCh <- e
			return
		}

		close(lockedCh)
		errCh <- tx2.Commit()
	}()

	select {
	case <-lockedCh:
		t.Fatal("tx2 acquired the row lock while tx1 still holds it")
	case e := <-errCh:
		t.Fatalf("tx2 finished early: %v", e)
	case <-time.After(300 * time.Millisecond):
	}

	err = tx1.Commit()
	if err != nil {
		t.Fatalf("commit tx1: %v", err)
	}

	select {
	case e := <-errCh:
		if e != nil {
			t.Fatalf("tx2 error: %v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for tx2 to complete after tx1 commit")
	}
}
