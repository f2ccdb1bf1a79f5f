package scriptrun

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// MySQL server error numbers
const (
	erBadFieldError        = 1054
	erWrongValueCountOnRow = 1136
	erNoDefaultForField    = 1364
)

// PostgreSQL SQLSTATE codes
const (
	pgNotNullViolation = "23502"
	pgUndefinedColumn  = "42703"
	pgSyntaxError      = "42601"
)

var (
	noDefaultRegex     = regexp.MustCompile(`Field '(\w+)' doesn't have a default value`)
	unknownColumnRegex = regexp.MustCompile(`Unknown column '(\w+)' in 'field list'`)
	countMismatchRegex = regexp.MustCompile(`Column count doesn't match value count|\d+ values for \d+ columns|more expressions than target columns|more target columns than expressions`)
	sqliteNotNullRegex = regexp.MustCompile(`NOT NULL constraint failed: \w+\.(\w+)`)
	sqliteNoColumn     = regexp.MustCompile(`has no column named (\w+)`)
	pgNoColumnRegex    = regexp.MustCompile(`column "(\w+)"`)
)

func missingFieldHint(field string) string {
	return fmt.Sprintf("Add column '%s' to the INSERT statement", field)
}

func unknownColumnHint(column string) string {
	return fmt.Sprintf("Remove or fix column '%s' in the INSERT statement", column)
}

const countMismatchHint = "Number of columns doesn't match number of values"

// Hint suggests a fix for the common mistakes in hand-written seed scripts.
// It returns "" when err matches none of them.
func Hint(err error) string {
	if err == nil {
		return ""
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erNoDefaultForField:
			if m := noDefaultRegex.FindStringSubmatch(myErr.Message); m != nil {
				return missingFieldHint(m[1])
			}
		case erBadFieldError:
			if m := unknownColumnRegex.FindStringSubmatch(myErr.Message); m != nil {
				return unknownColumnHint(m[1])
			}
		case erWrongValueCountOnRow:
			return countMismatchHint
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation:
			if pgErr.ColumnName != "" {
				return missingFieldHint(pgErr.ColumnName)
			}
		case pgUndefinedColumn:
			if m := pgNoColumnRegex.FindStringSubmatch(pgErr.Message); m != nil {
				return unknownColumnHint(m[1])
			}
		case pgSyntaxError:
			if countMismatchRegex.MatchString(pgErr.Message) {
				return countMismatchHint
			}
		}
	}

	msg := err.Error()
	switch {
	case noDefaultRegex.MatchString(msg):
		return missingFieldHint(noDefaultRegex.FindStringSubmatch(msg)[1])
	case sqliteNotNullRegex.MatchString(msg):
		return missingFieldHint(sqliteNotNullRegex.FindStringSubmatch(msg)[1])
	case unknownColumnRegex.MatchString(msg):
		return unknownColumnHint(unknownColumnRegex.FindStringSubmatch(msg)[1])
	case sqliteNoColumn.MatchString(msg):
		return unknownColumnHint(sqliteNoColumn.FindStringSubmatch(msg)[1])
	case countMismatchRegex.MatchString(msg):
		return countMismatchHint
	}
	return ""
}
