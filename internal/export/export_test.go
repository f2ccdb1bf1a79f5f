package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/demoseed/internal/demodata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var exportTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()

	path, err := PerformExport(context.Background(), demodata.Datasets(), dir, "json", exportTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "demo_2024-03-01_09-30-00.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fixture Fixture
	require.NoError(t, json.Unmarshal(data, &fixture))
	assert.Equal(t, []string{"services", "parts", "suppliers"}, fixture.Order)
	assert.Equal(t, "2024-03-01 09:30:00", fixture.Timestamp)
	require.Len(t, fixture.Tables["services"], 3)
	require.Len(t, fixture.Tables["suppliers"], 1)

	part := fixture.Tables["parts"][0]
	assert.Equal(t, "NOW()", part["CreatedAt"])
	assert.Equal(t, "DemoData", part["CreatedBy"])
	assert.Contains(t, part, "Condition")
}

func TestExportYAML(t *testing.T) {
	path, err := PerformExport(context.Background(), demodata.Datasets(), t.TempDir(), "yaml", exportTime)
	require.NoError(t, err)
	assert.Equal(t, ".yaml", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fixture Fixture
	require.NoError(t, yaml.Unmarshal(data, &fixture))
	require.Len(t, fixture.Tables["parts"], 3)
	assert.Equal(t, "NOW()", fixture.Tables["services"][0]["CreatedAt"])
}

func TestExportCSV(t *testing.T) {
	dir, err := PerformExport(context.Background(), demodata.Datasets(), t.TempDir(), "csv", exportTime)
	require.NoError(t, err)

	for _, d := range demodata.Datasets() {
		file, err := os.Open(filepath.Join(dir, d.Table+".csv"))
		require.NoError(t, err)

		records, err := csv.NewReader(file).ReadAll()
		file.Close()
		require.NoError(t, err)

		require.Len(t, records, len(d.Rows)+1, d.Table)
		assert.Equal(t, d.Columns, records[0])

		for i, row := range d.Rows {
			for j, v := range row {
				if v == nil {
					assert.Empty(t, records[i+1][j], "%s.%s", d.Table, d.Columns[j])
				}
				if demodata.IsNow(v) {
					assert.Equal(t, "NOW()", records[i+1][j])
				}
			}
		}
	}
}

func TestExportSQLite(t *testing.T) {
	path, err := PerformExport(context.Background(), demodata.Datasets(), t.TempDir(), "sqlite", exportTime)
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "parts" WHERE "Condition" = 'New'`).Scan(&count))
	assert.Equal(t, 3, count)

	var name string
	require.NoError(t, db.QueryRow(`SELECT "SupplierName" FROM "suppliers"`).Scan(&name))
	assert.Contains(t, name, "[DEMO]")
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := PerformExport(context.Background(), demodata.Datasets(), t.TempDir(), "xml", exportTime)
	assert.ErrorContains(t, err, "unsupported export format: xml")
}
