package postgres

import (
	"context"
	"errors"

	"github.com/ecinar/stocksim/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type tradesRepo struct{ pool *pgxpool.Pool }

// Buy debits cash, appends the ledger row and upserts the holding in one
// serializable transaction. The cash guard lives in the UPDATE's WHERE clause,
// so a concurrent spend between service pre-check and commit cannot overdraw.
func (r *tradesRepo) Buy(ctx context.Context, userID, symbol string, quantity int64, price decimal.Decimal) error {
	cost := price.Mul(decimal.NewFromInt(quantity))
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE users SET cash = cash - $2, updated_at = now()
			  WHERE id = $1 AND cash >= $2`,
			userID, cost,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return models.ErrInsufficientFunds
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO ledger(id, user_id, action, symbol, quantity, price)
			 VALUES($1,$2,$3,$4,$5,$6)`,
			uuid.NewString(), userID, models.ActionBuy, symbol, quantity, price,
		); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO holdings(user_id, symbol, quantity) VALUES($1,$2,$3)
			 ON CONFLICT (user_id, symbol) DO UPDATE
			   SET quantity = holdings.quantity + EXCLUDED.quantity`,
			userID, symbol, quantity,
		)
		return err
	})
}

// Sell credits cash, appends the ledger row and decrements the holding,
// deleting the row when it reaches zero. The share guard is the decrement's
// WHERE clause; selling without a position reports ErrNoHolding.
func (r *tradesRepo) Sell(ctx context.Context, userID, symbol string, quantity int64, price decimal.Decimal) error {
	proceeds := price.Mul(decimal.NewFromInt(quantity))
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var held int64
		err := tx.QueryRow(ctx,
			`SELECT quantity FROM holdings WHERE user_id=$1 AND symbol=$2 FOR UPDATE`,
			userID, symbol,
		).Scan(&held)
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNoHolding
		}
		if err != nil {
			return err
		}
		if quantity > held {
			return models.ErrInsufficientShares
		}

		if _, err := tx.Exec(ctx,
			`UPDATE users SET cash = cash + $2, updated_at = now() WHERE id = $1`,
			userID, proceeds,
		); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO ledger(id, user_id, action, symbol, quantity, price)
			 VALUES($1,$2,$3,$4,$5,$6)`,
			uuid.NewString(), userID, models.ActionSell, symbol, quantity, price,
		); err != nil {
			return err
		}

		if quantity == held {
			_, err = tx.Exec(ctx,
				`DELETE FROM holdings WHERE user_id=$1 AND symbol=$2`, userID, symbol)
		} else {
			_, err = tx.Exec(ctx,
				`UPDATE holdings SET quantity = quantity - $3 WHERE user_id=$1 AND symbol=$2`,
				userID, symbol, quantity)
		}
		return err
	})
}

func (r *tradesRepo) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
