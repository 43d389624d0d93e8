package models

import "github.com/shopspring/decimal"

// Quote is ephemeral price data, fetched fresh from the oracle on every use
// and never persisted.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Position is a holding enriched with the current quote for display.
type Position struct {
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Value    decimal.Decimal `json:"value"`
}

// Portfolio is the index-page view: every position priced at current quotes,
// plus cash and the grand total.
type Portfolio struct {
	Positions []Position      `json:"positions"`
	Cash      decimal.Decimal `json:"cash"`
	Shares    decimal.Decimal `json:"shares_value"`
	Total     decimal.Decimal `json:"total"`
}
