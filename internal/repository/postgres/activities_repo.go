package postgres

import (
	"context"

	"github.com/ecinar/stocksim/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type activitiesRepo struct{ pool *pgxpool.Pool }

func (r *activitiesRepo) Record(ctx context.Context, a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO activity_log(id, user_id, action, details) VALUES($1,$2,$3,$4)`,
		a.ID, a.UserID, a.Action, a.Details,
	)
	return err
}
