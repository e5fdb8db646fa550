package ledger

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fastprodman/TopupLedger/internal/infra/pgtestutil"
	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/fastprodman/TopupLedger/internal/services/liveview"
)

const testAdminEmail = "Admin@Topup.Local"

func newTestService(t *testing.T) (*Service, *sql.DB, func()) {
	t.Helper()

	db, cleanup := pgtestutil.NewTestDB(t)

	svc := New(db, liveview.NewHub(), Config{
		AdminEmail:  testAdminEmail,
		AddMoneyMin: 50,
		ListLimit:   50,
		Location:    time.UTC,
	})

	return svc, db, cleanup
}

func placement(userID string, price int64) OrderPlacement {
	return OrderPlacement{
		UserID:        userID,
		Game:          "Free Fire",
		Package:       "100 Diamonds",
		GameAccountID: "123456789",
		Price:         price,
	}
}

func createRequest(t *testing.T, svc *Service, userID string, amount int64, ref string) addmoney.Request {
	t.Helper()

	req, err := svc.CreateAddMoneyRequest(t.Context(), AddMoneyInput{
		UserID:         userID,
		Amount:         amount,
		SenderNumber:   "01712345678",
		TransactionRef: ref,
	})
	if err != nil {
		t.Fatalf("create add money request: %v", err)
	}

	return req
}

func requestStatus(t *testing.T, svc *Service, req addmoney.Request) addmoney.Status {
	t.Helper()

	got, err := svc.GetAddMoneyRequest(t.Context(), req.ID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}

	return got.Status
}
