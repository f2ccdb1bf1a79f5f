package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/demoseed/internal/database/common"
	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
)

type Adapter struct {
	db        *sql.DB
	qb        squirrel.StatementBuilderType
	currentDB string
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Dialect quotes with backticks; Condition and friends are reserved words.
func (m *Adapter) Dialect() common.Dialect {
	return common.Dialect{
		Name:        "mysql",
		Placeholder: squirrel.Question,
		Quote:       common.QuoteWith("`"),
		Now:         "NOW()",
	}
}

// ConvertURL turns a mysql:// URL into a go-sql-driver DSN. Plain DSNs pass
// through unchanged.
func ConvertURL(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.LastIndex(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=REQUIRED", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=DISABLED", "tls=false")
	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=VERIFY_CA", "tls=true")
	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=VERIFY_IDENTITY", "tls=true")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=verify-ca", "tls=true")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=verify-full", "tls=true")

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn := ConvertURL(url)

	if idx := strings.LastIndex(dsn, "/"); idx > 0 {
		dbPart := dsn[idx+1:]
		if qIdx := strings.Index(dbPart, "?"); qIdx >= 0 {
			m.currentDB = dbPart[:qIdx]
		} else {
			m.currentDB = dbPart
		}
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &common.SQLTx{Tx: tx}, nil
}

func (m *Adapter) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (m *Adapter) ExecuteQuery(ctx context.Context, query string, args ...interface{}) (*common.QueryResult, error) {
	trimmedQuery := strings.TrimSpace(strings.ToUpper(query))
	if strings.HasPrefix(trimmedQuery, "USE ") ||
		strings.HasPrefix(trimmedQuery, "SET ") ||
		strings.HasPrefix(trimmedQuery, "CREATE ") ||
		strings.HasPrefix(trimmedQuery, "DROP ") ||
		strings.HasPrefix(trimmedQuery, "ALTER ") {
		if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to execute command: %w", err)
		}
		return &common.QueryResult{
			Columns: []string{},
			Rows:    []map[string]interface{}{},
		}, nil
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return common.ScanRows(rows)
}

func (m *Adapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	query, args, err := m.qb.
		Select("COUNT(*) > 0").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_name": tableName}).
		Where("table_schema = DATABASE()").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	err = m.db.QueryRowContext(ctx, query, args...).Scan(&exists)
	return exists, err
}

// CurrentDatabase is the schema name parsed from the DSN.
func (m *Adapter) CurrentDatabase() string {
	return m.currentDB
}
