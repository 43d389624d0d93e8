package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ecinar/stocksim/internal/config"
	"github.com/ecinar/stocksim/internal/models"
	"github.com/ecinar/stocksim/internal/quotes"
	"github.com/ecinar/stocksim/internal/repository/memory"
	"github.com/ecinar/stocksim/internal/services"
	"github.com/ecinar/stocksim/internal/session"
	"github.com/ecinar/stocksim/internal/worker"
	"github.com/shopspring/decimal"
)

type fixedOracle map[string]string

func (o fixedOracle) Lookup(_ context.Context, symbol string) (models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	p, ok := o[symbol]
	if !ok {
		return models.Quote{}, models.ErrUnknownSymbol
	}
	return models.Quote{Symbol: symbol, Name: symbol + " Inc.", Price: decimal.RequireFromString(p)}, nil
}

var _ quotes.Oracle = fixedOracle{}

func newTestServer(t *testing.T, oracle fixedOracle) (*httptest.Server, *http.Client) {
	t.Helper()
	store := memory.NewStore()
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)

	cfg := config.Config{
		Env:          "test",
		RateRPS:      1000,
		StartingCash: decimal.RequireFromString("10000"),
	}
	sm := session.NewManager("test-secret", time.Hour, false)
	us := services.NewUserService(store, store, wp, cfg)
	ts := services.NewTradingService(store, store, store, store, store, oracle, wp)
	h := NewHandler(us, ts, sm)

	srv := httptest.NewServer(NewRouter(cfg, h, sm))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return srv, &http.Client{Jar: jar}
}

func postForm(t *testing.T, c *http.Client, u string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(u, form)
	if err != nil {
		t.Fatalf("POST %s: %v", u, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(b)
}

func register(t *testing.T, c *http.Client, base, username, password string) {
	t.Helper()
	resp, body := postForm(t, c, base+"/register", url.Values{
		"username":         {username},
		"password":         {password},
		"password_confirm": {password},
	})
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Portfolio") {
		t.Fatalf("register landed on status %d body %q", resp.StatusCode, body)
	}
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	srv, client := newTestServer(t, fixedOracle{})

	for _, path := range []string{"/", "/buy", "/sell", "/quote", "/history", "/change"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		finalPath := resp.Request.URL.Path
		_ = resp.Body.Close()
		if finalPath != "/login" {
			t.Errorf("GET %s landed on %s, want /login", path, finalPath)
		}
	}
}

func TestRegisterLogsUserIn(t *testing.T) {
	srv, client := newTestServer(t, fixedOracle{})
	register(t, client, srv.URL, "alice", "hunter2")

	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Request.URL.Path != "/" {
		t.Errorf("after register GET / = %d at %s, want 200 at /", resp.StatusCode, resp.Request.URL.Path)
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	srv, client := newTestServer(t, fixedOracle{})
	register(t, client, srv.URL, "alice", "hunter2")

	// logout drops the session
	resp, err := client.Get(srv.URL + "/logout")
	if err != nil {
		t.Fatalf("GET /logout: %v", err)
	}
	_ = resp.Body.Close()
	if resp.Request.URL.Path != "/login" {
		t.Errorf("logout landed on %s, want /login", resp.Request.URL.Path)
	}

	// bad credentials rejected
	resp, body := postForm(t, client, srv.URL+"/login", url.Values{
		"username": {"alice"}, "password": {"wrong"},
	})
	if resp.StatusCode != http.StatusUnauthorized || !strings.Contains(body, "invalid username and/or password") {
		t.Errorf("bad login = %d %q", resp.StatusCode, body)
	}

	// good credentials land on the portfolio
	resp, body = postForm(t, client, srv.URL+"/login", url.Values{
		"username": {"alice"}, "password": {"hunter2"},
	})
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Portfolio") {
		t.Errorf("login = %d %q", resp.StatusCode, body)
	}
}

func TestQuotePage(t *testing.T) {
	srv, client := newTestServer(t, fixedOracle{"NFLX": "123.45"})
	register(t, client, srv.URL, "alice", "hunter2")

	resp, body := postForm(t, client, srv.URL+"/quote", url.Values{"symbol": {"nflx"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("quote status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "NFLX") || !strings.Contains(body, "$123.45") {
		t.Errorf("quote body = %q, want NFLX at $123.45", body)
	}

	resp, body = postForm(t, client, srv.URL+"/quote", url.Values{"symbol": {"NOPE"}})
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "Could not find symbol") {
		t.Errorf("unknown symbol = %d %q", resp.StatusCode, body)
	}
}

func TestBuyFlow(t *testing.T) {
	srv, client := newTestServer(t, fixedOracle{"NFLX": "100"})
	register(t, client, srv.URL, "alice", "hunter2")

	resp, body := postForm(t, client, srv.URL+"/buy", url.Values{
		"symbol": {"NFLX"}, "ammount": {"10"},
	})
	if resp.StatusCode != http.StatusOK || resp.Request.URL.Path != "/" {
		t.Fatalf("buy landed on %d at %s", resp.StatusCode, resp.Request.URL.Path)
	}
	if !strings.Contains(body, "Purchased!") {
		t.Errorf("flash missing from %q", body)
	}
	if !strings.Contains(body, "NFLX") || !strings.Contains(body, "$9,000.00") {
		t.Errorf("portfolio body = %q, want NFLX position and $9,000.00 cash", body)
	}

	// two-step flow: ammount=direct re-renders the form with the symbol
	resp, body = postForm(t, client, srv.URL+"/buy", url.Values{
		"symbol": {"NFLX"}, "ammount": {"direct"},
	})
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `value="NFLX"`) {
		t.Errorf("direct buy = %d %q, want pre-filled form", resp.StatusCode, body)
	}

	// overdrawing is rejected
	resp, body = postForm(t, client, srv.URL+"/buy", url.Values{
		"symbol": {"NFLX"}, "ammount": {"1000"},
	})
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "Not enough cash") {
		t.Errorf("overdraw = %d %q", resp.StatusCode, body)
	}

	// malformed quantity is rejected
	resp, body = postForm(t, client, srv.URL+"/buy", url.Values{
		"symbol": {"NFLX"}, "ammount": {"ten"},
	})
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "Invalid ammount") {
		t.Errorf("malformed quantity = %d %q", resp.StatusCode, body)
	}
}

func TestSellFlow(t *testing.T) {
	srv, client := newTestServer(t, fixedOracle{"NFLX": "100"})
	register(t, client, srv.URL, "alice", "hunter2")

	if resp, _ := postForm(t, client, srv.URL+"/buy", url.Values{
		"symbol": {"NFLX"}, "ammount": {"10"},
	}); resp.StatusCode != http.StatusOK {
		t.Fatalf("setup buy status = %d", resp.StatusCode)
	}

	resp, body := postForm(t, client, srv.URL+"/sell", url.Values{
		"symbol": {"NFLX"}, "ammount": {"10"},
	})
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Sold!") {
		t.Fatalf("sell = %d %q", resp.StatusCode, body)
	}
	if !strings.Contains(body, "$10,000.00") {
		t.Errorf("cash after round trip = %q, want $10,000.00", body)
	}

	// position is gone now
	resp, body = postForm(t, client, srv.URL+"/sell", url.Values{
		"symbol": {"NFLX"}, "ammount": {"1"},
	})
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "does not exist in your portfolio") {
		t.Errorf("sell without holding = %d %q", resp.StatusCode, body)
	}
}

func TestHistoryPage(t *testing.T) {
	srv, client := newTestServer(t, fixedOracle{"NFLX": "100"})
	register(t, client, srv.URL, "alice", "hunter2")

	if resp, _ := postForm(t, client, srv.URL+"/buy", url.Values{
		"symbol": {"NFLX"}, "ammount": {"3"},
	}); resp.StatusCode != http.StatusOK {
		t.Fatalf("setup buy status = %d", resp.StatusCode)
	}

	resp, err := client.Get(srv.URL + "/history")
	if err != nil {
		t.Fatalf("GET /history: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(b), "buy") || !strings.Contains(string(b), "NFLX") {
		t.Errorf("history = %d %q", resp.StatusCode, string(b))
	}
}

func TestChangePasswordFlow(t *testing.T) {
	srv, client := newTestServer(t, fixedOracle{})
	register(t, client, srv.URL, "alice", "oldpw")

	resp, body := postForm(t, client, srv.URL+"/change", url.Values{
		"password":         {"oldpw"},
		"newpassword":      {"newpw"},
		"password_confirm": {"newpw"},
	})
	if resp.StatusCode != http.StatusOK || resp.Request.URL.Path != "/login" {
		t.Fatalf("change landed on %d at %s, want /login", resp.StatusCode, resp.Request.URL.Path)
	}
	if !strings.Contains(body, "Password changed! Please login again") {
		t.Errorf("flash missing from %q", body)
	}

	// session was cleared, protected pages bounce
	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	_ = resp.Body.Close()
	if resp.Request.URL.Path != "/login" {
		t.Errorf("after change GET / landed on %s, want /login", resp.Request.URL.Path)
	}

	// old password refused, new one accepted
	resp, _ = postForm(t, client, srv.URL+"/login", url.Values{
		"username": {"alice"}, "password": {"oldpw"},
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("old password login = %d, want 401", resp.StatusCode)
	}
	resp, body = postForm(t, client, srv.URL+"/login", url.Values{
		"username": {"alice"}, "password": {"newpw"},
	})
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Portfolio") {
		t.Errorf("new password login = %d %q", resp.StatusCode, body)
	}
}
