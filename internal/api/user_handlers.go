package api

import (
	"errors"
	"net/http"

	"github.com/fastprodman/TopupLedger/internal/catalog"
	"github.com/fastprodman/TopupLedger/internal/services/ledger"
	"github.com/shopspring/decimal"
)

type placeOrderRequest struct {
	GameID        string `json:"gameId" validate:"required"`
	PackageID     string `json:"packageId" validate:"required"`
	GameAccountID string `json:"gameAccountId" validate:"required,max=64"`
}

type addMoneyRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	SenderNumber   string          `json:"senderNumber" validate:"required"`
	TransactionRef string          `json:"transactionRef" validate:"required"`
}

// GetProfileHandler handles GET /me
func (h *HandlerProvider) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetProfile(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// ListOrdersHandler handles GET /me/orders
func (h *HandlerProvider) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.ListUserOrders(r.Context(), userFrom(r.Context()).ID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// PlaceOrderHandler handles POST /me/orders. The price always comes from the
// catalog, never from the client.
func (h *HandlerProvider) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	game, pkg, err := h.catalog.Package(req.GameID, req.PackageID)
	if err != nil {
		if errors.Is(err, catalog.ErrGameNotFound) || errors.Is(err, catalog.ErrPackageNotFound) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeServiceError(w, r, err)
		return
	}

	o, err := h.svc.PlaceOrder(r.Context(), ledger.OrderPlacement{
		UserID:        userFrom(r.Context()).ID,
		Game:          game.Name,
		Package:       pkg.Name,
		GameAccountID: req.GameAccountID,
		Price:         pkg.Price,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, o)
}

// ListAddMoneyHandler handles GET /me/add-money
func (h *HandlerProvider) ListAddMoneyHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.ListUserAddMoney(r.Context(), userFrom(r.Context()).ID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// CreateAddMoneyHandler handles POST /me/add-money
func (h *HandlerProvider) CreateAddMoneyHandler(w http.ResponseWriter, r *http.Request) {
	var req addMoneyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := wholeUnits(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.CreateAddMoneyRequest(r.Context(), ledger.AddMoneyInput{
		UserID:         userFrom(r.Context()).ID,
		Amount:         amount,
		SenderNumber:   req.SenderNumber,
		TransactionRef: req.TransactionRef,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
