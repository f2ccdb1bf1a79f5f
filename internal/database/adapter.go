package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/demoseed/internal/database/common"
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Dialect describes quoting, placeholders and the timestamp expression.
	Dialect() common.Dialect

	Begin(ctx context.Context) (common.Tx, error)
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
	ExecuteQuery(ctx context.Context, query string, args ...interface{}) (*common.QueryResult, error)

	CheckTableExists(ctx context.Context, tableName string) (bool, error)
}
