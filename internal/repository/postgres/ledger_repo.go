package postgres

import (
	"context"

	"github.com/ecinar/stocksim/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ledgerRepo struct{ pool *pgxpool.Pool }

// History returns the user's full ledger, oldest first.
func (r *ledgerRepo) History(ctx context.Context, userID string) ([]models.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, action, symbol, quantity, price, created_at
		   FROM ledger
		  WHERE user_id=$1
		  ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Symbol, &e.Quantity, &e.Price, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
