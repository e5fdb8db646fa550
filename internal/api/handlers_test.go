package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fastprodman/TopupLedger/internal/catalog"
	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/fastprodman/TopupLedger/internal/services/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestCatalogHandlers(t *testing.T) {
	t.Parallel()

	router := NewRouter(newTestRouter(t, newFakeLedger()))

	rec := do(t, router, http.MethodGet, "/catalog/games", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var games []catalog.Game
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	assert.Len(t, games, 6)

	rec = do(t, router, http.MethodGet, "/catalog/games/pubg", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PUBG Mobile")

	rec = do(t, router, http.MethodGet, "/catalog/games/tetris", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaceOrderHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		svcErr   error
		want     int
		wantCall bool
	}{
		{"price comes from catalog", `{"gameId":"free-fire","packageId":"2","gameAccountId":"123456789"}`, nil, http.StatusCreated, true},
		{"client price is rejected", `{"gameId":"free-fire","packageId":"2","gameAccountId":"1","price":1}`, nil, http.StatusBadRequest, false},
		{"unknown game", `{"gameId":"tetris","packageId":"1","gameAccountId":"1"}`, nil, http.StatusBadRequest, false},
		{"unknown package", `{"gameId":"free-fire","packageId":"99","gameAccountId":"1"}`, nil, http.StatusBadRequest, false},
		{"missing account", `{"gameId":"free-fire","packageId":"1"}`, nil, http.StatusBadRequest, false},
		{"empty body", ``, nil, http.StatusBadRequest, false},
		{"insufficient funds", `{"gameId":"free-fire","packageId":"1","gameAccountId":"1"}`, ledger.ErrInsufficientFunds, http.StatusConflict, false},
		{"store failure", `{"gameId":"free-fire","packageId":"1","gameAccountId":"1"}`, ledger.ErrOperationFailed, http.StatusInternalServerError, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFakeLedger()
			f.failWith(tc.svcErr)
			router := NewRouter(newTestRouter(t, f))

			rec := do(t, router, http.MethodPost, "/me/orders", userToken(t, "u1", "u1@example.com"), tc.body)
			require.Equal(t, tc.want, rec.Code, rec.Body.String())

			if !tc.wantCall {
				assert.Empty(t, f.placed)
				return
			}

			require.Len(t, f.placed, 1)
			assert.Equal(t, ledger.OrderPlacement{
				UserID:        "u1",
				Game:          "Free Fire",
				Package:       "210 Diamonds",
				GameAccountID: "123456789",
				Price:         160,
			}, f.placed[0])

			var o orders.Order
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
			assert.Equal(t, orders.StatusPending, o.Status)
		})
	}
}

func TestCreateAddMoneyHandler_Amounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount string
		want   int
		units  int64
	}{
		{"number", `500`, http.StatusCreated, 500},
		{"string", `"750"`, http.StatusCreated, 750},
		{"trailing zero fraction", `"100.00"`, http.StatusCreated, 100},
		{"fractional", `12.5`, http.StatusBadRequest, 0},
		{"zero", `0`, http.StatusBadRequest, 0},
		{"negative", `"-20"`, http.StatusBadRequest, 0},
		{"overflow", `"99999999999999999999"`, http.StatusBadRequest, 0},
		{"not a number", `"lots"`, http.StatusBadRequest, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFakeLedger()
			router := NewRouter(newTestRouter(t, f))

			body := fmt.Sprintf(`{"amount":%s,"senderNumber":"01712345678","transactionRef":"TRX1"}`, tc.amount)
			rec := do(t, router, http.MethodPost, "/me/add-money", userToken(t, "u1", "u1@example.com"), body)
			require.Equal(t, tc.want, rec.Code, rec.Body.String())

			if tc.want != http.StatusCreated {
				assert.Empty(t, f.deposits)
				return
			}

			require.Len(t, f.deposits, 1)
			assert.Equal(t, tc.units, f.deposits[0].Amount)
			assert.Equal(t, "u1", f.deposits[0].UserID)
		})
	}
}

func TestApproveAddMoneyHandler(t *testing.T) {
	t.Parallel()

	reqID := uuid.New()
	admin := func(t *testing.T) string { return userToken(t, "a1", testAdminEmail) }

	t.Run("passes what the admin reviewed", func(t *testing.T) {
		t.Parallel()

		f := newFakeLedger()
		router := NewRouter(newTestRouter(t, f))

		rec := do(t, router, http.MethodPost, "/admin/add-money/"+reqID.String()+"/approve", admin(t),
			`{"userId":"u1","amount":"500"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		require.Len(t, f.approvals, 1)
		assert.Equal(t, ledger.Approval{RequestID: reqID, UserID: "u1", Amount: 500}, f.approvals[0])

		var got addmoney.Request
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, addmoney.StatusApproved, got.Status)
	})

	t.Run("bad request id", func(t *testing.T) {
		t.Parallel()

		router := NewRouter(newTestRouter(t, newFakeLedger()))

		rec := do(t, router, http.MethodPost, "/admin/add-money/abc/approve", admin(t), `{"userId":"u1","amount":500}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	for _, svcErr := range []error{ledger.ErrAlreadyResolved, ledger.ErrRequestMismatch} {
		t.Run(svcErr.Error(), func(t *testing.T) {
			t.Parallel()

			f := newFakeLedger()
			f.failWith(fmt.Errorf("approve add money: %w", svcErr))
			router := NewRouter(newTestRouter(t, f))

			rec := do(t, router, http.MethodPost, "/admin/add-money/"+reqID.String()+"/approve", admin(t),
				`{"userId":"u1","amount":500}`)
			assert.Equal(t, http.StatusConflict, rec.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", ledger.ErrInvalidInput), http.StatusBadRequest},
		{ledger.ErrUserNotFound, http.StatusNotFound},
		{ledger.ErrOrderNotFound, http.StatusNotFound},
		{ledger.ErrRequestNotFound, http.StatusNotFound},
		{catalog.ErrGameNotFound, http.StatusNotFound},
		{ledger.ErrInsufficientFunds, http.StatusConflict},
		{ledger.ErrInvalidTransition, http.StatusConflict},
		{ledger.ErrDuplicateReference, http.StatusConflict},
		{errors.Join(ledger.ErrOperationFailed, errors.New("conn reset")), http.StatusInternalServerError},
		{ledger.ErrMalformedRecord, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		got, msg := statusFor(tc.err)
		assert.Equal(t, tc.want, got, tc.err.Error())

		if got == http.StatusInternalServerError {
			assert.Equal(t, "internal error", msg)
		}
	}
}

func TestListOrdersHandler_BadLimit(t *testing.T) {
	t.Parallel()

	rec := do(t, NewRouter(newTestRouter(t, newFakeLedger())), http.MethodGet, "/me/orders?limit=-1",
		userToken(t, "u1", "u1@example.com"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
