package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// Dialect captures the per-provider bits needed to build seed statements.
type Dialect struct {
	Name        string
	Placeholder squirrel.PlaceholderFormat
	Quote       func(ident string) string
	// Now is the SQL expression for the current timestamp.
	Now string
}

// Builder returns a squirrel statement builder using the dialect's placeholders.
func (d Dialect) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder)
}

// QuoteAll quotes every identifier in names.
func (d Dialect) QuoteAll(names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = d.Quote(n)
	}
	return quoted
}

// QuoteWith wraps ident in q, doubling any embedded q.
func QuoteWith(q string) func(string) string {
	return func(ident string) string {
		return q + strings.ReplaceAll(ident, q, q+q) + q
	}
}

// FormatValue renders v as a SQL literal for display or dry runs.
func FormatValue(v interface{}) string {
	if v == nil {
		return "NULL"
	}
	switch val := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case int, int32, int64, float32, float64:
		return fmt.Sprintf("%v", val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		return fmt.Sprintf("'%s'", val.Format("2006-01-02 15:04:05"))
	case fmt.Stringer:
		return val.String()
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", val), "'", "''") + "'"
	}
}
