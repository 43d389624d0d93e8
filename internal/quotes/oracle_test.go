package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecinar/stocksim/internal/models"
	"github.com/shopspring/decimal"
)

func newOracleServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			http.NotFound(w, r)
			return
		}
		switch r.URL.Query().Get("symbol") {
		case "NFLX":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"Netflix, Inc.","symbol":"NFLX","price":123.45}`))
		case "BAD":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"Bad","symbol":"BAD","price":"not-a-number"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookup(t *testing.T) {
	srv := newOracleServer(t)
	c := NewClient(srv.URL)

	q, err := c.Lookup(context.Background(), "NFLX")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if q.Symbol != "NFLX" || q.Name != "Netflix, Inc." {
		t.Errorf("quote = %+v", q)
	}
	if !q.Price.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("price = %s, want 123.45", q.Price)
	}
}

func TestLookupUpperCasesSymbol(t *testing.T) {
	srv := newOracleServer(t)
	c := NewClient(srv.URL)

	q, err := c.Lookup(context.Background(), "  nflx ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if q.Symbol != "NFLX" {
		t.Errorf("symbol = %q, want NFLX", q.Symbol)
	}
}

func TestLookupUnknownSymbol(t *testing.T) {
	srv := newOracleServer(t)
	c := NewClient(srv.URL)

	_, err := c.Lookup(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrUnknownSymbol) {
		t.Fatalf("err = %v, want ErrUnknownSymbol", err)
	}
}

func TestLookupEmptySymbol(t *testing.T) {
	c := NewClient("http://unused")
	_, err := c.Lookup(context.Background(), "   ")
	if !errors.Is(err, models.ErrUnknownSymbol) {
		t.Fatalf("err = %v, want ErrUnknownSymbol", err)
	}
}

func TestLookupBadPrice(t *testing.T) {
	srv := newOracleServer(t)
	c := NewClient(srv.URL)

	_, err := c.Lookup(context.Background(), "BAD")
	if err == nil || errors.Is(err, models.ErrUnknownSymbol) {
		t.Fatalf("err = %v, want decode failure", err)
	}
}
