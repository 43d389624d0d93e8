package repository

import (
	"context"

	"github.com/ecinar/stocksim/internal/models"
	"github.com/shopspring/decimal"
)

type Users interface {
	Create(ctx context.Context, username, passwordHash string, cash decimal.Decimal) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type Holdings interface {
	Get(ctx context.Context, userID, symbol string) (models.Holding, error)
	ListByUser(ctx context.Context, userID string) ([]models.Holding, error)
}

type Ledger interface {
	History(ctx context.Context, userID string) ([]models.LedgerEntry, error)
}

// Trades applies a trade's three mutations (cash, ledger, holding) as one
// atomic unit: either all are visible afterwards or none are. Sufficiency
// guards re-run inside the transaction so a stale pre-check cannot overdraw.
type Trades interface {
	Buy(ctx context.Context, userID, symbol string, quantity int64, price decimal.Decimal) error
	Sell(ctx context.Context, userID, symbol string, quantity int64, price decimal.Decimal) error
}

type Activities interface {
	Record(ctx context.Context, a models.Activity) error
}
