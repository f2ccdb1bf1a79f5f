package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/demoseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/demoseed/internal/demodata"
	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"
)

var Formats = []string{"json", "yaml", "csv", "sqlite"}

// Fixture is the serialised form of the demo datasets.
type Fixture struct {
	Timestamp string                              `json:"timestamp" yaml:"timestamp"`
	Version   string                              `json:"version" yaml:"version"`
	Comment   string                              `json:"comment" yaml:"comment"`
	Order     []string                            `json:"order" yaml:"order"`
	Tables    map[string][]map[string]interface{} `json:"tables" yaml:"tables"`
}

// NewFixture converts datasets to plain records. Now becomes "NOW()".
func NewFixture(datasets []demodata.Dataset, at time.Time) Fixture {
	fixture := Fixture{
		Timestamp: at.Format("2006-01-02 15:04:05"),
		Version:   "1.0",
		Comment:   "Garage demo data",
		Tables:    make(map[string][]map[string]interface{}, len(datasets)),
	}

	for _, d := range datasets {
		fixture.Order = append(fixture.Order, d.Table)
		records := make([]map[string]interface{}, 0, len(d.Rows))
		for i := range d.Rows {
			record := d.Record(i)
			for k, v := range record {
				record[k] = plain(v)
			}
			records = append(records, record)
		}
		fixture.Tables[d.Table] = records
	}

	return fixture
}

func plain(v interface{}) interface{} {
	if demodata.IsNow(v) {
		return demodata.Now.String()
	}
	return v
}

// PerformExport writes datasets to exportPath and returns the written path.
func PerformExport(ctx context.Context, datasets []demodata.Dataset, exportPath, format string, at time.Time) (string, error) {
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := at.Format("2006-01-02_15-04-05")

	switch strings.ToLower(format) {
	case "json", "":
		return exportToJSON(NewFixture(datasets, at), filepath.Join(exportPath, fmt.Sprintf("demo_%s.json", timestamp)))
	case "yaml", "yml":
		return exportToYAML(NewFixture(datasets, at), filepath.Join(exportPath, fmt.Sprintf("demo_%s.yaml", timestamp)))
	case "csv":
		return exportToCSV(datasets, filepath.Join(exportPath, fmt.Sprintf("demo_%s_csv", timestamp)))
	case "sqlite":
		return exportToSQLite(ctx, datasets, filepath.Join(exportPath, fmt.Sprintf("demo_%s.db", timestamp)))
	default:
		return "", fmt.Errorf("unsupported export format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

func exportToJSON(fixture Fixture, filePath string) (string, error) {
	jsonData, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func exportToYAML(fixture Fixture, filePath string) (string, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(fixture); err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

// exportToCSV writes one file per table with columns in declared order.
// NULL becomes an empty cell.
func exportToCSV(datasets []demodata.Dataset, dirPath string) (string, error) {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create CSV directory: %w", err)
	}

	for _, d := range datasets {
		filePath := filepath.Join(dirPath, fmt.Sprintf("%s.csv", d.Table))
		file, err := os.Create(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to create CSV file for %s: %w", d.Table, err)
		}

		writer := csv.NewWriter(file)
		writer.Write(d.Columns)

		for _, row := range d.Rows {
			values := make([]string, len(row))
			for i, v := range row {
				if v != nil {
					values[i] = fmt.Sprintf("%v", plain(v))
				}
			}
			writer.Write(values)
		}

		writer.Flush()
		err = writer.Error()
		file.Close()
		if err != nil {
			return "", fmt.Errorf("failed to write CSV file for %s: %w", d.Table, err)
		}
	}

	return dirPath, nil
}

// exportToSQLite creates a standalone database with one untyped table per
// dataset, handy for inspecting the demo rows without a server.
func exportToSQLite(ctx context.Context, datasets []demodata.Dataset, filePath string) (string, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create SQLite database: %w", err)
	}
	defer db.Close()

	quote := common.QuoteWith(`"`)
	qb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).RunWith(db)

	for _, d := range datasets {
		defs := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			defs[i] = quote(col) + " TEXT"
		}
		createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quote(d.Table), strings.Join(defs, ", "))
		if _, err := db.ExecContext(ctx, createSQL); err != nil {
			return "", fmt.Errorf("failed to create table %s: %w", d.Table, err)
		}

		cols := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			cols[i] = quote(col)
		}
		insert := qb.Insert(quote(d.Table)).Columns(cols...)
		for _, row := range d.Rows {
			values := make([]interface{}, len(row))
			for i, v := range row {
				values[i] = plain(v)
			}
			insert = insert.Values(values...)
		}

		if _, err := insert.ExecContext(ctx); err != nil {
			return "", fmt.Errorf("failed to insert rows into %s: %w", d.Table, err)
		}
	}

	return filePath, nil
}
