package liveview

import (
	"encoding/json"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/infra/schema"
)

// Channel is the NOTIFY channel the change triggers publish on.
const Channel = "ledger_changes"

// Collection names match the tables that publish changes.
type Collection string

const (
	Users            Collection = "users"
	Orders           Collection = "orders"
	AddMoneyRequests Collection = "add_money_requests"
)

// Change describes one row written to a ledger table. UserID is the wallet
// owner the row belongs to.
type Change struct {
	Collection Collection `json:"collection" validate:"oneof=users orders add_money_requests"`
	DocID      string     `json:"id" validate:"required"`
	UserID     string     `json:"userId" validate:"required"`
	Op         string     `json:"op" validate:"oneof=insert update delete"`
}

// DecodeChange parses a notification payload emitted by the change triggers.
func DecodeChange(payload string) (Change, error) {
	var c Change

	err := json.Unmarshal([]byte(payload), &c)
	if err != nil {
		return Change{}, fmt.Errorf("decode change: %w", err)
	}

	err = schema.Validate(c)
	if err != nil {
		return Change{}, fmt.Errorf("decode change: %w", err)
	}

	return c, nil
}

// In reports whether the change touched collection.
func In(collection Collection) func(Change) bool {
	return func(c Change) bool { return c.Collection == collection }
}

// OwnedBy reports whether the change touched collection for userID.
func OwnedBy(collection Collection, userID string) func(Change) bool {
	return func(c Change) bool { return c.Collection == collection && c.UserID == userID }
}
