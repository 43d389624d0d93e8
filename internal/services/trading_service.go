package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ecinar/stocksim/internal/metrics"
	"github.com/ecinar/stocksim/internal/models"
	"github.com/ecinar/stocksim/internal/quotes"
	repo "github.com/ecinar/stocksim/internal/repository"
	"github.com/ecinar/stocksim/internal/worker"
	"github.com/shopspring/decimal"
)

// TradingService holds the business rules for trades. The authenticated user
// id is passed in explicitly; there is no ambient session state. The price
// for a Buy/Sell is fetched exactly once and used for the funds/shares check,
// the cash mutation and the ledger row alike.
type TradingService struct {
	users    repo.Users
	holdings repo.Holdings
	ledger   repo.Ledger
	trades   repo.Trades
	acts     repo.Activities
	oracle   quotes.Oracle
	wp       *worker.Pool
}

func NewTradingService(users repo.Users, holdings repo.Holdings, ledger repo.Ledger, trades repo.Trades, acts repo.Activities, oracle quotes.Oracle, wp *worker.Pool) *TradingService {
	return &TradingService{
		users:    users,
		holdings: holdings,
		ledger:   ledger,
		trades:   trades,
		acts:     acts,
		oracle:   oracle,
		wp:       wp,
	}
}

// Quote resolves a symbol to its current price. Read-only.
func (s *TradingService) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	if strings.TrimSpace(symbol) == "" {
		return models.Quote{}, models.ValidationError("Must provide stock symbol")
	}
	q, err := s.oracle.Lookup(ctx, symbol)
	switch {
	case errors.Is(err, models.ErrUnknownSymbol):
		metrics.QuoteLookups.WithLabelValues("miss").Inc()
	case err != nil:
		metrics.QuoteLookups.WithLabelValues("error").Inc()
	default:
		metrics.QuoteLookups.WithLabelValues("ok").Inc()
	}
	return q, err
}

// Buy purchases quantity shares at the current oracle price. Cash debit,
// ledger append and holding upsert commit atomically in the store.
func (s *TradingService) Buy(ctx context.Context, userID, symbol string, quantity int64) error {
	if strings.TrimSpace(symbol) == "" {
		return models.ValidationError("Missing symbol")
	}
	if quantity <= 0 {
		return models.ValidationError("Invalid ammount")
	}

	q, err := s.Quote(ctx, symbol)
	if err != nil {
		return err
	}
	if err := s.trades.Buy(ctx, userID, q.Symbol, quantity, q.Price); err != nil {
		if errors.Is(err, models.ErrInsufficientFunds) {
			metrics.TradesRejected.Inc()
		}
		return err
	}
	metrics.TradesTotal.WithLabelValues(string(models.ActionBuy)).Inc()
	s.recordTrade(userID, models.ActionBuy, q, quantity)
	return nil
}

// Sell sells quantity shares at the current oracle price. Selling the whole
// position removes the holding row.
func (s *TradingService) Sell(ctx context.Context, userID, symbol string, quantity int64) error {
	if strings.TrimSpace(symbol) == "" {
		return models.ValidationError("Missing symbol")
	}
	if quantity <= 0 {
		return models.ValidationError("Invalid ammount")
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if _, err := s.holdings.Get(ctx, userID, symbol); err != nil {
		return err
	}
	q, err := s.Quote(ctx, symbol)
	if err != nil {
		return err
	}
	if err := s.trades.Sell(ctx, userID, q.Symbol, quantity, q.Price); err != nil {
		if errors.Is(err, models.ErrInsufficientShares) || errors.Is(err, models.ErrNoHolding) {
			metrics.TradesRejected.Inc()
		}
		return err
	}
	metrics.TradesTotal.WithLabelValues(string(models.ActionSell)).Inc()
	s.recordTrade(userID, models.ActionSell, q, quantity)
	return nil
}

// Portfolio prices every holding at its current quote and totals the account.
// One oracle call per distinct held symbol.
func (s *TradingService) Portfolio(ctx context.Context, userID string) (models.Portfolio, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Portfolio{}, err
	}
	hs, err := s.holdings.ListByUser(ctx, userID)
	if err != nil {
		return models.Portfolio{}, err
	}

	p := models.Portfolio{Cash: u.Cash}
	for _, h := range hs {
		q, err := s.Quote(ctx, h.Symbol)
		if err != nil {
			return models.Portfolio{}, err
		}
		value := q.Price.Mul(decimal.NewFromInt(h.Quantity))
		p.Positions = append(p.Positions, models.Position{
			Symbol:   h.Symbol,
			Name:     q.Name,
			Quantity: h.Quantity,
			Price:    q.Price,
			Value:    value,
		})
		p.Shares = p.Shares.Add(value)
	}
	p.Total = p.Cash.Add(p.Shares)
	return p, nil
}

// History returns the user's ledger, oldest entry first.
func (s *TradingService) History(ctx context.Context, userID string) ([]models.LedgerEntry, error) {
	return s.ledger.History(ctx, userID)
}

func (s *TradingService) recordTrade(userID string, action models.TradeAction, q models.Quote, quantity int64) {
	uid := userID
	s.wp.Submit(func() {
		_ = s.acts.Record(context.Background(), models.Activity{
			UserID: &uid,
			Action: string(action),
			Details: map[string]any{
				"symbol":   q.Symbol,
				"quantity": quantity,
				"price":    q.Price.String(),
			},
		})
	})
}
