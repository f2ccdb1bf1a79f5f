// Package scriptrun executes hand-written demo data scripts and stops at the
// first failing data statement with a diagnosis of what went wrong.
package scriptrun

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/demoseed/internal/database/common"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

const maxStatementDisplay = 500

type Kind int

const (
	// KindData statements are counted and must succeed.
	KindData Kind = iota
	// KindSession statements (USE, SET, SELECT) run best-effort.
	KindSession
	// KindOther statements are not executed.
	KindOther
)

// Classify sorts a statement by its leading keyword.
func Classify(stmt string) Kind {
	upper := strings.ToUpper(strings.TrimSpace(stmt))
	switch {
	case strings.HasPrefix(upper, "INSERT "), strings.HasPrefix(upper, "UPDATE "), strings.HasPrefix(upper, "DELETE "):
		return KindData
	case strings.HasPrefix(upper, "USE "), strings.HasPrefix(upper, "SET "), strings.HasPrefix(upper, "SELECT "):
		return KindSession
	default:
		return KindOther
	}
}

type Execer interface {
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
}

type Options struct {
	StatementTimeout time.Duration
	ProgressEvery    int
}

type Failure struct {
	Index     int // 1-based position among the parsed statements
	Statement string
	Err       error
	Hint      string
}

type Result struct {
	Total   int // data statements attempted
	Success int
	Errors  int
	Skipped int // statements that are neither data nor session
	Failure *Failure
}

type Runner struct {
	exec   Execer
	opts   Options
	logger *zap.Logger
	out    io.Writer
}

func NewRunner(exec Execer, opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		exec:   exec,
		opts:   opts,
		logger: logger,
		out:    color.Output,
	}
}

// SetOutput redirects progress and diagnostics.
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

func (r *Runner) RunFile(ctx context.Context, path string) (*Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("SQL file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SQL file: %w", err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, fmt.Errorf("SQL file is empty: %s", path)
	}

	return r.Run(ctx, string(content))
}

func (r *Runner) Run(ctx context.Context, script string) (*Result, error) {
	statements := common.ParseSQLStatements(script)
	result := &Result{}

	for i, stmt := range statements {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		switch Classify(stmt) {
		case KindSession:
			if _, err := r.exec.Exec(ctx, stmt); err != nil {
				r.logger.Debug("ignored session statement error", zap.Int("statement", i+1), zap.Error(err))
			}
			continue
		case KindOther:
			result.Skipped++
			r.logger.Debug("skipped statement", zap.Int("statement", i+1))
			continue
		}

		result.Total++
		if err := r.execData(ctx, stmt); err != nil {
			result.Errors++
			result.Failure = &Failure{
				Index:     i + 1,
				Statement: truncate(stmt, maxStatementDisplay),
				Err:       err,
				Hint:      Hint(err),
			}
			r.printFailure(result.Failure)
			break
		}

		result.Success++
		if r.opts.ProgressEvery > 0 && result.Total%r.opts.ProgressEvery == 0 {
			fmt.Fprintf(r.out, "\rProcessed: %d statements (%d success, %d errors)", result.Total, result.Success, result.Errors)
		}
	}

	fmt.Fprintln(r.out)
	return result, nil
}

func (r *Runner) execData(ctx context.Context, stmt string) error {
	if r.opts.StatementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.StatementTimeout)
		defer cancel()
	}

	start := time.Now()
	affected, err := r.exec.Exec(ctx, stmt)
	r.logger.Debug("data statement",
		zap.Int64("rows", affected),
		zap.Duration("took", time.Since(start)),
		zap.Error(err))
	return err
}

func (r *Runner) printFailure(f *Failure) {
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out)
	color.New(color.FgRed).Fprintln(r.out, "❌ FIRST ERROR DETECTED:")
	color.New(color.FgRed).Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Statement #%d\n", f.Index)
	fmt.Fprintf(r.out, "Error: %v\n\n", f.Err)
	color.New(color.FgYellow).Fprintln(r.out, "Statement:")
	color.New(color.FgYellow).Fprintln(r.out, f.Statement)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, "Script execution stopped at first error.")

	if f.Hint != "" {
		fmt.Fprintln(r.out)
		color.New(color.FgCyan).Fprintf(r.out, "💡 SOLUTION: %s\n", f.Hint)
	}
}

// PrintSummary writes the closing totals.
func (r *Runner) PrintSummary(result *Result) {
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(r.out)
	if result.Errors == 0 {
		color.New(color.FgGreen).Fprintln(r.out, "✓ ALL STATEMENTS EXECUTED SUCCESSFULLY!")
		fmt.Fprintln(r.out)
	}
	fmt.Fprintln(r.out, "SUMMARY:")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Total Statements: %d\n", result.Total)
	color.New(color.FgGreen).Fprintf(r.out, "Success: %d\n", result.Success)
	color.New(color.FgRed).Fprintf(r.out, "Errors: %d\n", result.Errors)
	if result.Skipped > 0 {
		fmt.Fprintf(r.out, "Skipped: %d\n", result.Skipped)
	}
	fmt.Fprintln(r.out, rule)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
