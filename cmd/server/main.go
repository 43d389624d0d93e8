package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecinar/stocksim/internal/config"
	"github.com/ecinar/stocksim/internal/db"
	"github.com/ecinar/stocksim/internal/logger"
	"github.com/ecinar/stocksim/internal/metrics"
	"github.com/ecinar/stocksim/internal/quotes"
	"github.com/ecinar/stocksim/internal/repository/postgres"
	"github.com/ecinar/stocksim/internal/services"
	"github.com/ecinar/stocksim/internal/session"
	"github.com/ecinar/stocksim/internal/web"
	"github.com/ecinar/stocksim/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	oracle := quotes.NewClient(cfg.QuoteURL)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.Env == "prod")
	userSvc := services.NewUserService(repos.Users, repos.Activities, wp, cfg)
	tradingSvc := services.NewTradingService(
		repos.Users,
		repos.Holdings,
		repos.Ledger,
		repos.Trades,
		repos.Activities,
		oracle,
		wp,
	)

	h := web.NewHandler(userSvc, tradingSvc, sessions)
	r := web.NewRouter(cfg, h, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
