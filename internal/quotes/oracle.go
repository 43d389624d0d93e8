// Package quotes talks to the external price oracle. Quotes are fetched fresh
// on every call; nothing is cached.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ecinar/stocksim/internal/models"
	"github.com/shopspring/decimal"
)

// Oracle resolves a ticker symbol to its current quote. Implementations
// return models.ErrUnknownSymbol when the symbol does not resolve.
type Oracle interface {
	Lookup(ctx context.Context, symbol string) (models.Quote, error)
}

type Client struct {
	base string
	hc   *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type quoteResp struct {
	Name   string      `json:"name"`
	Symbol string      `json:"symbol"`
	Price  json.Number `json:"price"`
}

func (c *Client) Lookup(ctx context.Context, symbol string) (models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return models.Quote{}, models.ErrUnknownSymbol
	}

	u := c.base + "/quote?symbol=" + url.QueryEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.Quote{}, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return models.Quote{}, fmt.Errorf("quote lookup %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.Quote{}, models.ErrUnknownSymbol
	case resp.StatusCode != http.StatusOK:
		return models.Quote{}, fmt.Errorf("quote lookup %s: status %d", symbol, resp.StatusCode)
	}

	var qr quoteResp
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return models.Quote{}, fmt.Errorf("quote lookup %s: %w", symbol, err)
	}
	price, err := decimal.NewFromString(qr.Price.String())
	if err != nil || price.IsNegative() {
		return models.Quote{}, fmt.Errorf("quote lookup %s: bad price %q", symbol, qr.Price)
	}
	if qr.Symbol == "" {
		qr.Symbol = symbol
	}
	return models.Quote{Symbol: strings.ToUpper(qr.Symbol), Name: qr.Name, Price: price}, nil
}
