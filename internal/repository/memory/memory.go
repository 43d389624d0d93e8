// Package memory implements the repository interfaces over process-local maps.
// It backs the service and handler tests; semantics mirror the postgres
// implementation, including the delete-on-zero holding rule.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ecinar/stocksim/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu         sync.Mutex
	users      map[string]*models.User // by id
	holdings   map[string]map[string]int64
	ledger     map[string][]models.LedgerEntry
	activities []models.Activity
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*models.User),
		holdings: make(map[string]map[string]int64),
		ledger:   make(map[string][]models.LedgerEntry),
	}
}

// ---------------- Users ----------------

func (s *Store) Create(_ context.Context, username, hash string, cash decimal.Decimal) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return models.User{}, models.ErrUsernameTaken
		}
	}
	now := time.Now()
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Cash:         cash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = &u
	return u, nil
}

func (s *Store) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return *u, nil
	}
	return models.User{}, models.ErrNotFound
}

func (s *Store) GetByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return *u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (s *Store) UpdatePassword(_ context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// ---------------- Holdings ----------------

func (s *Store) Get(_ context.Context, userID, symbol string) (models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok := s.holdings[userID][symbol]; ok {
		return models.Holding{UserID: userID, Symbol: symbol, Quantity: q}, nil
	}
	return models.Holding{}, models.ErrNoHolding
}

func (s *Store) ListByUser(_ context.Context, userID string) ([]models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Holding
	for sym, q := range s.holdings[userID] {
		out = append(out, models.Holding{UserID: userID, Symbol: sym, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

// ---------------- Ledger ----------------

func (s *Store) History(_ context.Context, userID string) ([]models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.LedgerEntry(nil), s.ledger[userID]...), nil
}

// ---------------- Trades ----------------

func (s *Store) Buy(_ context.Context, userID, symbol string, quantity int64, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	cost := price.Mul(decimal.NewFromInt(quantity))
	if u.Cash.LessThan(cost) {
		return models.ErrInsufficientFunds
	}
	u.Cash = u.Cash.Sub(cost)
	s.appendLedger(userID, models.ActionBuy, symbol, quantity, price)
	if s.holdings[userID] == nil {
		s.holdings[userID] = make(map[string]int64)
	}
	s.holdings[userID][symbol] += quantity
	return nil
}

func (s *Store) Sell(_ context.Context, userID, symbol string, quantity int64, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	held, ok := s.holdings[userID][symbol]
	if !ok {
		return models.ErrNoHolding
	}
	if quantity > held {
		return models.ErrInsufficientShares
	}
	u.Cash = u.Cash.Add(price.Mul(decimal.NewFromInt(quantity)))
	s.appendLedger(userID, models.ActionSell, symbol, quantity, price)
	if quantity == held {
		delete(s.holdings[userID], symbol)
	} else {
		s.holdings[userID][symbol] = held - quantity
	}
	return nil
}

func (s *Store) appendLedger(userID string, action models.TradeAction, symbol string, quantity int64, price decimal.Decimal) {
	s.ledger[userID] = append(s.ledger[userID], models.LedgerEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Symbol:    symbol,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: time.Now(),
	})
}

// ---------------- Activities ----------------

func (s *Store) Record(_ context.Context, a models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	s.activities = append(s.activities, a)
	return nil
}
