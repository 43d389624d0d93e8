package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeAction string

const (
	ActionBuy  TradeAction = "buy"
	ActionSell TradeAction = "sell"
)

// LedgerEntry is an immutable record of a completed trade. The ledger is
// append-only; entries are never updated or deleted.
type LedgerEntry struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Action    TradeAction     `json:"action"`
	Symbol    string          `json:"symbol"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}
