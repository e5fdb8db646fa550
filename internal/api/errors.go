package api

import (
	"errors"
	"net/http"

	"github.com/fastprodman/TopupLedger/internal/catalog"
	"github.com/fastprodman/TopupLedger/internal/services/ledger"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type errorMapping struct {
	target error
	status int
	msg    string
}

var errorMappings = []errorMapping{
	{ledger.ErrInvalidInput, http.StatusBadRequest, ""},
	{ledger.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{ledger.ErrOrderNotFound, http.StatusNotFound, "order not found"},
	{ledger.ErrRequestNotFound, http.StatusNotFound, "add money request not found"},
	{catalog.ErrGameNotFound, http.StatusNotFound, "game not found"},
	{catalog.ErrPackageNotFound, http.StatusNotFound, "package not found"},
	{ledger.ErrInsufficientFunds, http.StatusConflict, "insufficient funds"},
	{ledger.ErrAlreadyResolved, http.StatusConflict, "request already resolved"},
	{ledger.ErrInvalidTransition, http.StatusConflict, "order is not pending"},
	{ledger.ErrDuplicateReference, http.StatusConflict, "transaction reference already used"},
	{ledger.ErrRequestMismatch, http.StatusConflict, "approval does not match request"},
}

// statusFor maps a service error to an HTTP status and a client-safe message.
// An empty message in the table means the error text itself is safe to show.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.msg == "" {
				return m.status, err.Error()
			}

			return m.status, m.msg
		}
	}

	return http.StatusInternalServerError, "internal error"
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)

	if status == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	}

	writeError(w, status, msg)
}
