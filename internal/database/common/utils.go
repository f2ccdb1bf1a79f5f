package common

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

var stringRegex = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")

type QueryResult struct {
	Columns []string
	Rows    []map[string]interface{}
}

// ParseSQLStatements splits sql on semicolons that are not inside a quoted
// string or identifier. Comments outside literals are dropped first.
func ParseSQLStatements(sql string) []string {
	sql = StripComments(sql)

	stringPositions := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(sql, -1) {
		for i := match[0]; i < match[1]; i++ {
			stringPositions[i] = true
		}
	}

	estimatedStmts := strings.Count(sql, ";") + 1
	statements := make([]string, 0, estimatedStmts)

	var currentStatement strings.Builder
	currentStatement.Grow(len(sql) / estimatedStmts)

	for i, char := range sql {
		if char == ';' && !stringPositions[i] {
			stmt := strings.TrimSpace(currentStatement.String())
			if stmt != "" {
				statements = append(statements, stmt)
			}
			currentStatement.Reset()
		} else {
			currentStatement.WriteRune(char)
		}
	}

	if currentStatement.Len() > 0 {
		stmt := strings.TrimSpace(currentStatement.String())
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}

	return statements
}

// StripComments removes -- line comments and /* */ block comments that sit
// outside quoted strings and identifiers. Line breaks are kept so statement
// positions stay stable.
func StripComments(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))

	var quote rune
	inLine, inBlock := false, false
	runes := []rune(sql)

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch {
		case inLine:
			if c == '\n' {
				inLine = false
				b.WriteRune(c)
			}
		case inBlock:
			if c == '*' && next == '/' {
				inBlock = false
				i++
			} else if c == '\n' {
				b.WriteRune(c)
			}
		case quote != 0:
			b.WriteRune(c)
			if c == quote {
				// doubled quote is an escape, stay inside the literal
				if next == quote {
					b.WriteRune(next)
					i++
				} else {
					quote = 0
				}
			}
		case c == '-' && next == '-':
			inLine = true
			i++
		case c == '/' && next == '*':
			inBlock = true
			i++
		case c == '\'' || c == '"' || c == '`':
			quote = c
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}

	return b.String()
}

// ScanRows drains rows into a QueryResult. Byte slices become strings.
func ScanRows(rows *sql.Rows) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &QueryResult{
		Columns: columns,
		Rows:    results,
	}, nil
}

// FirstValue returns the first column of the first row, or nil.
func (r *QueryResult) FirstValue() interface{} {
	if r == nil || len(r.Rows) == 0 || len(r.Columns) == 0 {
		return nil
	}
	return r.Rows[0][r.Columns[0]]
}
