package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account holder. Username is immutable after creation; Cash is
// mutated only by trades and stays non-negative (enforced by the store).
type User struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Cash         decimal.Decimal `json:"cash"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
