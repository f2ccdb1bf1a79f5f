package seeder

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/demoseed/internal/database"
	"github.com/Lumos-Labs-HQ/demoseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/demoseed/internal/demodata"
	"github.com/Masterminds/squirrel"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// execer is satisfied by both adapters and transactions.
type execer interface {
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
}

type Seeder struct {
	adapter   database.DatabaseAdapter
	dialect   common.Dialect
	datasets  map[string]demodata.Dataset
	graph     *DependencyGraph
	createdBy string
	logger    *zap.Logger
}

type Option func(*Seeder)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Seeder) { s.logger = logger }
}

func WithCreatedBy(createdBy string) Option {
	return func(s *Seeder) { s.createdBy = createdBy }
}

// WithDatasets replaces the built-in demo rows.
func WithDatasets(datasets []demodata.Dataset) Option {
	return func(s *Seeder) { s.setDatasets(datasets) }
}

func New(adapter database.DatabaseAdapter, opts ...Option) *Seeder {
	s := &Seeder{
		adapter:   adapter,
		dialect:   adapter.Dialect(),
		createdBy: demodata.CreatedBy,
		logger:    zap.NewNop(),
	}
	s.setDatasets(demodata.Datasets())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Seeder) setDatasets(datasets []demodata.Dataset) {
	s.datasets = make(map[string]demodata.Dataset, len(datasets))
	s.graph = NewDependencyGraph()
	for _, d := range datasets {
		s.datasets[d.Table] = d
		s.graph.AddTable(d)
	}
}

// order returns the insertion order restricted to tables, or every table
// when tables is empty.
func (s *Seeder) order(tables []string) ([]string, error) {
	full, err := s.graph.BuildInsertionOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}
	if len(tables) == 0 {
		return full, nil
	}

	wanted := make(map[string]bool, len(tables))
	for _, t := range tables {
		if _, ok := s.datasets[t]; !ok {
			return nil, fmt.Errorf("unknown demo table: %s (available: %s)", t, strings.Join(full, ", "))
		}
		wanted[t] = true
	}

	var order []string
	for _, t := range full {
		if wanted[t] {
			order = append(order, t)
		}
	}
	return order, nil
}

// BuildInsert builds one multi-row INSERT for d in the seeder's dialect.
func (s *Seeder) BuildInsert(d demodata.Dataset) (string, []interface{}, error) {
	if err := d.Validate(); err != nil {
		return "", nil, err
	}

	builder := s.dialect.Builder().
		Insert(s.dialect.Quote(d.Table)).
		Columns(s.dialect.QuoteAll(d.Columns)...)

	for _, row := range d.Rows {
		values := make([]interface{}, len(row))
		for i, v := range row {
			if demodata.IsNow(v) {
				values[i] = squirrel.Expr(s.dialect.Now)
			} else {
				values[i] = v
			}
		}
		builder = builder.Values(values...)
	}

	return builder.ToSql()
}

// Render returns the INSERT statements for tables with values inlined, for
// dry runs.
func (s *Seeder) Render(tables []string) ([]string, error) {
	order, err := s.order(tables)
	if err != nil {
		return nil, err
	}

	statements := make([]string, 0, len(order))
	for _, name := range order {
		statements = append(statements, RenderInsert(s.tagged(s.datasets[name]), s.dialect))
	}
	return statements, nil
}

// RenderInsert renders d as a literal INSERT statement, one row per line.
func RenderInsert(d demodata.Dataset, dialect common.Dialect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES\n", dialect.Quote(d.Table), strings.Join(dialect.QuoteAll(d.Columns), ", "))

	for i, row := range d.Rows {
		values := make([]string, len(row))
		for j, v := range row {
			if demodata.IsNow(v) {
				values[j] = dialect.Now
			} else {
				values[j] = common.FormatValue(v)
			}
		}
		b.WriteString("(" + strings.Join(values, ", ") + ")")
		if i < len(d.Rows)-1 {
			b.WriteString(",\n")
		}
	}
	b.WriteString(";")
	return b.String()
}

func (s *Seeder) Apply(ctx context.Context, opts ApplyOptions) (*Report, error) {
	order, err := s.order(opts.Tables)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(zap.String("run", uuid.NewString()))
	logger.Debug("apply", zap.Strings("order", order), zap.Bool("force", opts.Force))

	color.Cyan("🌱 Seeding demo data...")
	color.Cyan("📋 Insertion order: %s", strings.Join(order, " → "))
	fmt.Println()

	useTx := !opts.NoTransaction
	if useTx && opts.Force {
		// a failed statement poisons the whole transaction on some engines
		color.Yellow("⚠️  --force runs each table outside a transaction")
		useTx = false
	}

	var exec execer = s.adapter
	var tx common.Tx
	if useTx {
		tx, err = s.adapter.Begin(ctx)
		if err != nil {
			color.Yellow("⚠️  Could not start transaction: %v (continuing without transaction)", err)
		} else {
			exec = tx
			color.Cyan("🔒 Transaction started")
		}
	}

	report := &Report{}
	var seedErr error
	for _, name := range order {
		d := s.datasets[name]
		color.Cyan("  📝 Seeding %s (%d records)...", name, len(d.Rows))

		rows, err := s.insertDataset(ctx, exec, d)
		if err != nil {
			logger.Debug("insert failed", zap.String("table", name), zap.Error(err))
			report.Tables = append(report.Tables, TableReport{Name: name, Skipped: true, Err: err})
			if !opts.Force {
				seedErr = fmt.Errorf("failed to seed table %s: %w", name, err)
				break
			}
			color.Yellow("  ⚠️  Failed to seed %s but continuing with --force: %v", name, err)
			continue
		}

		report.Tables = append(report.Tables, TableReport{Name: name, Exists: true, Rows: rows})
		color.Green("  ✅ %s seeded (%d rows)", name, rows)
	}

	if tx != nil {
		if seedErr != nil {
			color.Yellow("🔄 Rolling back transaction due to error...")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				return report, fmt.Errorf("seed failed and rollback failed: %v (original: %w)", rbErr, seedErr)
			}
			color.Yellow("✅ Transaction rolled back")
			return report, seedErr
		}

		if err := tx.Commit(ctx); err != nil {
			tx.Rollback(ctx)
			return report, fmt.Errorf("failed to commit transaction: %w", err)
		}
		color.Cyan("🔓 Transaction committed")
	} else if seedErr != nil {
		return report, seedErr
	}

	color.Green("\n✅ Demo data seeded: %d rows", report.Total())
	return report, nil
}

// tagged returns a copy of d whose CreatedBy column carries the seeder's tag.
func (s *Seeder) tagged(d demodata.Dataset) demodata.Dataset {
	idx := d.ColumnIndex("CreatedBy")
	if idx < 0 || s.createdBy == demodata.CreatedBy {
		return d
	}

	rows := make([][]interface{}, len(d.Rows))
	for i, row := range d.Rows {
		rows[i] = append([]interface{}(nil), row...)
		rows[i][idx] = s.createdBy
	}
	d.Rows = rows
	return d
}

func (s *Seeder) insertDataset(ctx context.Context, exec execer, d demodata.Dataset) (int64, error) {
	query, args, err := s.BuildInsert(s.tagged(d))
	if err != nil {
		return 0, err
	}

	s.logger.Debug("insert demo rows",
		zap.String("table", d.Table),
		zap.Int("rows", len(d.Rows)),
		zap.String("query", query))

	affected, err := exec.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	// some drivers cannot report affected rows for multi-row inserts
	if affected <= 0 {
		affected = int64(len(d.Rows))
	}
	return affected, nil
}

// Clean deletes rows tagged with the seeder's CreatedBy value, children first.
func (s *Seeder) Clean(ctx context.Context, opts CleanOptions) (*Report, error) {
	order, err := s.order(opts.Tables)
	if err != nil {
		return nil, err
	}

	color.Yellow("🗑️  Removing demo data (CreatedBy = %s)...", s.createdBy)

	// existence is checked before the transaction holds the connection
	report := &Report{}
	var targets []string
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		exists, err := s.adapter.CheckTableExists(ctx, name)
		if err != nil {
			return report, fmt.Errorf("failed to check table %s: %w", name, err)
		}
		if !exists {
			color.Yellow("  ⚠️  Table %s does not exist, skipping", name)
			report.Tables = append(report.Tables, TableReport{Name: name, Skipped: true})
			continue
		}
		targets = append(targets, name)
	}

	var exec execer = s.adapter
	var tx common.Tx
	if !opts.NoTransaction && len(targets) > 0 {
		tx, err = s.adapter.Begin(ctx)
		if err != nil {
			return report, err
		}
		exec = tx
	}

	for _, name := range targets {
		query, args, err := s.dialect.Builder().
			Delete(s.dialect.Quote(name)).
			Where(squirrel.Eq{s.dialect.Quote("CreatedBy"): s.createdBy}).
			ToSql()
		if err != nil {
			s.rollback(ctx, tx)
			return report, err
		}

		s.logger.Debug("delete demo rows", zap.String("table", name), zap.String("query", query))

		deleted, err := exec.Exec(ctx, query, args...)
		if err != nil {
			s.rollback(ctx, tx)
			return report, fmt.Errorf("failed to clean table %s: %w", name, err)
		}

		report.Tables = append(report.Tables, TableReport{Name: name, Exists: true, Rows: deleted})
		color.Green("  ✅ %s: %d rows removed", name, deleted)
	}

	if tx != nil {
		if err := tx.Commit(ctx); err != nil {
			tx.Rollback(ctx)
			return report, fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	return report, nil
}

func (s *Seeder) rollback(ctx context.Context, tx common.Tx) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(ctx); err != nil {
		s.logger.Warn("rollback failed", zap.Error(err))
	}
}

// Status counts the tagged demo rows in each table. Tables are counted
// concurrently; the report keeps insertion order.
func (s *Seeder) Status(ctx context.Context) (*Report, error) {
	order, err := s.order(nil)
	if err != nil {
		return nil, err
	}

	tables := make([]TableReport, len(order))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range order {
		g.Go(func() error {
			table, err := s.countTable(gctx, name)
			tables[i] = table
			return err
		})
	}

	err = g.Wait()
	return &Report{Tables: tables}, err
}

func (s *Seeder) countTable(ctx context.Context, name string) (TableReport, error) {
	exists, err := s.adapter.CheckTableExists(ctx, name)
	if err != nil {
		return TableReport{Name: name}, fmt.Errorf("failed to check table %s: %w", name, err)
	}
	if !exists {
		return TableReport{Name: name}, nil
	}

	query, args, err := s.dialect.Builder().
		Select("COUNT(*)").
		From(s.dialect.Quote(name)).
		Where(squirrel.Eq{s.dialect.Quote("CreatedBy"): s.createdBy}).
		ToSql()
	if err != nil {
		return TableReport{Name: name, Exists: true}, err
	}

	result, err := s.adapter.ExecuteQuery(ctx, query, args...)
	if err != nil {
		return TableReport{Name: name, Exists: true}, fmt.Errorf("failed to count demo rows in %s: %w", name, err)
	}

	count, err := toInt64(result.FirstValue())
	if err != nil {
		return TableReport{Name: name, Exists: true}, fmt.Errorf("unexpected count for %s: %w", name, err)
	}
	return TableReport{Name: name, Exists: true, Rows: count}, nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
