package postgres

import (
	"context"
	"errors"

	"github.com/ecinar/stocksim/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type holdingsRepo struct{ pool *pgxpool.Pool }

func (r *holdingsRepo) Get(ctx context.Context, userID, symbol string) (models.Holding, error) {
	var h models.Holding
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, symbol, quantity FROM holdings WHERE user_id=$1 AND symbol=$2`,
		userID, symbol,
	).Scan(&h.UserID, &h.Symbol, &h.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Holding{}, models.ErrNoHolding
	}
	return h, err
}

func (r *holdingsRepo) ListByUser(ctx context.Context, userID string) ([]models.Holding, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, symbol, quantity FROM holdings WHERE user_id=$1 ORDER BY symbol`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.UserID, &h.Symbol, &h.Quantity); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
