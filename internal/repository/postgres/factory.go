package postgres

import (
	repo "github.com/ecinar/stocksim/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users      repo.Users
	Holdings   repo.Holdings
	Ledger     repo.Ledger
	Trades     repo.Trades
	Activities repo.Activities
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:      &usersRepo{pool},
		Holdings:   &holdingsRepo{pool},
		Ledger:     &ledgerRepo{pool},
		Trades:     &tradesRepo{pool},
		Activities: &activitiesRepo{pool},
	}
}
