package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ecinar/stocksim/internal/config"
	"github.com/ecinar/stocksim/internal/metrics"
	"github.com/ecinar/stocksim/internal/middleware"
	"github.com/ecinar/stocksim/internal/session"
)

func NewRouter(cfg config.Config, h *Handler, sm *session.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	// operational endpoints
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// public pages
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)

	// pages requiring an active session
	auth := middleware.NewAuthMiddleware(sm)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/", h.Index)
		r.Get("/buy", h.BuyForm)
		r.Post("/buy", h.Buy)
		r.Get("/sell", h.SellForm)
		r.Post("/sell", h.Sell)
		r.Get("/quote", h.QuoteForm)
		r.Post("/quote", h.Quote)
		r.Get("/history", h.History)
		r.Get("/change", h.ChangeForm)
		r.Post("/change", h.Change)
	})

	return r
}
