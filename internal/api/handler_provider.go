package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/fastprodman/TopupLedger/internal/catalog"
	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// HandlerProvider wraps the ledger service and exposes HTTP handlers.
type HandlerProvider struct {
	svc     Ledger
	catalog catalog.Provider
	auth    *Authenticator
}

func NewHandler(svc Ledger, cat catalog.Provider, auth *Authenticator) *HandlerProvider {
	return &HandlerProvider{svc: svc, catalog: cat, auth: auth}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		zap.L().Error("failed to encode JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody reads a single JSON object into dst and validates its tags.
// On failure it writes the 400 response itself and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")
			return false
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}

	err = schema.Validate(dst)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// wholeUnits converts a decoded amount to integer currency units.
func wholeUnits(d decimal.Decimal) (int64, error) {
	switch {
	case d.Sign() <= 0:
		return 0, fmt.Errorf("amount must be positive")
	case !d.IsInteger():
		return 0, fmt.Errorf("amount must be a whole number")
	case d.GreaterThan(maxAmount):
		return 0, fmt.Errorf("amount too large")
	}

	return d.IntPart(), nil
}

// parseLimit reads the optional ?limit= query parameter. Zero means default.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid limit")
	}

	return n, nil
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}

	return id, nil
}

// --- Catalog ---

// ListGamesHandler handles GET /catalog/games
func (h *HandlerProvider) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Games())
}

// GetGameHandler handles GET /catalog/games/{gameId}
func (h *HandlerProvider) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	g, err := h.catalog.Game(chi.URLParam(r, "gameId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, g)
}
