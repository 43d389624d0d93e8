package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecinar/stocksim/internal/models"
)

type viewData struct {
	LoggedIn bool
	Flash    string
	Data     any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tpl, ok := h.templates[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	_, loggedIn := h.sessions.UserID(r)
	vd := viewData{
		LoggedIn: loggedIn,
		Flash:    popFlash(w, r),
		Data:     data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tpl.Execute(w, vd); err != nil {
		slog.Error("render", "page", page, "err", err)
	}
}

// apology renders the rejection page with the business-rule message mapped
// from the error. Store-layer faults fall through to a generic message.
func (h *Handler) apology(w http.ResponseWriter, r *http.Request, err error) {
	var ve models.ValidationError
	var status int
	var msg string

	switch {
	case errors.As(err, &ve):
		status, msg = http.StatusBadRequest, ve.Error()
	case errors.Is(err, models.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid username and/or password"
	case errors.Is(err, models.ErrUsernameTaken):
		status, msg = http.StatusConflict, "Existing username"
	case errors.Is(err, models.ErrUnknownSymbol):
		status, msg = http.StatusNotFound, "Could not find symbol"
	case errors.Is(err, models.ErrNoHolding):
		status, msg = http.StatusNotFound, "Selected Stock does not exist in your portfolio"
	case errors.Is(err, models.ErrInsufficientFunds):
		status, msg = http.StatusBadRequest, "Not enough cash"
	case errors.Is(err, models.ErrInsufficientShares):
		status, msg = http.StatusBadRequest, "Not enough shares to sell"
	case errors.Is(err, models.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	default:
		slog.Error("request failed", "err", err, "path", r.URL.Path)
		status, msg = http.StatusInternalServerError, "something went wrong"
	}
	h.render(w, r, status, "apology", map[string]string{"Message": msg})
}
