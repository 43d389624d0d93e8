package web

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/ecinar/stocksim/internal/middleware"
	"github.com/ecinar/stocksim/internal/models"
	"github.com/ecinar/stocksim/internal/services"
	"github.com/ecinar/stocksim/internal/session"
)

type Handler struct {
	users     *services.UserService
	trading   *services.TradingService
	sessions  *session.Manager
	templates map[string]*template.Template
}

func NewHandler(us *services.UserService, ts *services.TradingService, sm *session.Manager) *Handler {
	return &Handler{
		users:     us,
		trading:   ts,
		sessions:  sm,
		templates: parseTemplates(),
	}
}

func userID(r *http.Request) string {
	uid, _ := middleware.UserID(r.Context())
	return uid
}

// parseQuantity enforces the positive-integer rule for the `ammount` field.
func parseQuantity(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return 0, models.ValidationError("Invalid ammount")
	}
	return n, nil
}

// ---------- portfolio ----------

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	p, err := h.trading.Portfolio(r.Context(), userID(r))
	if err != nil {
		h.apology(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "index", p)
}

// ---------- quote ----------

func (h *Handler) QuoteForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "quote", nil)
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	q, err := h.trading.Quote(r.Context(), r.PostFormValue("symbol"))
	if err != nil {
		h.apology(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "quoted", q)
}

// ---------- buy ----------

func (h *Handler) BuyForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "buy", map[string]string{})
}

func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	symbol := r.PostFormValue("symbol")
	raw := r.PostFormValue("ammount")
	if strings.TrimSpace(symbol) == "" {
		h.apology(w, r, models.ValidationError("Missing symbol"))
		return
	}
	// portfolio-page links post ammount=direct to pre-fill the form
	if raw == "direct" {
		h.render(w, r, http.StatusOK, "buy", map[string]string{"Symbol": symbol})
		return
	}
	qty, err := parseQuantity(raw)
	if err != nil {
		h.apology(w, r, err)
		return
	}
	if err := h.trading.Buy(r.Context(), userID(r), symbol, qty); err != nil {
		h.apology(w, r, err)
		return
	}
	setFlash(w, "Purchased!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ---------- sell ----------

func (h *Handler) SellForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "sell", map[string]string{})
}

func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	symbol := r.PostFormValue("symbol")
	raw := r.PostFormValue("ammount")
	if strings.TrimSpace(symbol) == "" {
		h.apology(w, r, models.ValidationError("Missing symbol"))
		return
	}
	if raw == "direct" {
		h.render(w, r, http.StatusOK, "sell", map[string]string{"Symbol": symbol})
		return
	}
	qty, err := parseQuantity(raw)
	if err != nil {
		h.apology(w, r, err)
		return
	}
	if err := h.trading.Sell(r.Context(), userID(r), symbol, qty); err != nil {
		h.apology(w, r, err)
		return
	}
	setFlash(w, "Sold!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ---------- history ----------

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.trading.History(r.Context(), userID(r))
	if err != nil {
		h.apology(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "history", entries)
}

// ---------- auth ----------

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	h.render(w, r, http.StatusOK, "login", nil)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	u, err := h.users.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		h.apology(w, r, err)
		return
	}
	if err := h.sessions.Establish(w, u.ID); err != nil {
		h.apology(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register", nil)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
		r.PostFormValue("password_confirm"),
	)
	if err != nil {
		h.apology(w, r, err)
		return
	}
	// registering logs the user straight in
	if err := h.sessions.Establish(w, u.ID); err != nil {
		h.apology(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ---------- change password ----------

func (h *Handler) ChangeForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "change", nil)
}

func (h *Handler) Change(w http.ResponseWriter, r *http.Request) {
	err := h.users.ChangePassword(r.Context(), userID(r),
		r.PostFormValue("password"),
		r.PostFormValue("newpassword"),
		r.PostFormValue("password_confirm"),
	)
	if err != nil {
		h.apology(w, r, err)
		return
	}
	// force re-authentication with the new password
	h.sessions.Clear(w)
	setFlash(w, "Password changed! Please login again")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
