package common

import (
	"context"
	"database/sql"
)

// Tx is the subset of a transaction the seeder needs, shared by
// database/sql and pgx backed adapters.
type Tx interface {
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SQLTx adapts *sql.Tx to Tx.
type SQLTx struct {
	Tx *sql.Tx
}

func (t *SQLTx) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := t.Tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *SQLTx) Commit(ctx context.Context) error {
	return t.Tx.Commit()
}

func (t *SQLTx) Rollback(ctx context.Context) error {
	return t.Tx.Rollback()
}
