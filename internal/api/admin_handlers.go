package api

import (
	"net/http"

	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/fastprodman/TopupLedger/internal/services/ledger"
	"github.com/shopspring/decimal"
)

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// approveRequest carries the user and amount the admin reviewed.
type approveRequest struct {
	UserID string          `json:"userId" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// AdminStatsHandler handles GET /admin/stats
func (h *HandlerProvider) AdminStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.AdminStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// RecentOrdersHandler handles GET /admin/orders
func (h *HandlerProvider) RecentOrdersHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.ListRecentOrders(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// UpdateOrderStatusHandler handles POST /admin/orders/{orderId}/status
func (h *HandlerProvider) UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "orderId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req orderStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status, err := orders.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.svc.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, o)
}

// ListAddMoneyByStatusHandler handles GET /admin/add-money?status=
func (h *HandlerProvider) ListAddMoneyByStatusHandler(w http.ResponseWriter, r *http.Request) {
	status := addmoney.StatusPending

	if raw := r.URL.Query().Get("status"); raw != "" {
		var err error

		status, err = addmoney.ParseStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.ListAddMoneyByStatus(r.Context(), status, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// ApproveAddMoneyHandler handles POST /admin/add-money/{requestId}/approve
func (h *HandlerProvider) ApproveAddMoneyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "requestId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req approveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := wholeUnits(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resolved, err := h.svc.ApproveAddMoney(r.Context(), ledger.Approval{
		RequestID: id,
		UserID:    req.UserID,
		Amount:    amount,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resolved)
}

// RejectAddMoneyHandler handles POST /admin/add-money/{requestId}/reject
func (h *HandlerProvider) RejectAddMoneyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "requestId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resolved, err := h.svc.RejectAddMoney(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resolved)
}
