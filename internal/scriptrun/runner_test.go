package scriptrun

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/demoseed/internal/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	executed []string
	failOn   string
}

func (f *fakeExec) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	f.executed = append(f.executed, query)
	if f.failOn != "" && strings.Contains(query, f.failOn) {
		return 0, errors.New("Column count doesn't match value count at row 1")
	}
	if strings.HasPrefix(query, "USE ") {
		return 0, errors.New("unknown database")
	}
	return 1, nil
}

func newTestRunner(exec Execer, opts Options) (*Runner, *bytes.Buffer) {
	var out bytes.Buffer
	r := NewRunner(exec, opts, nil)
	r.SetOutput(&out)
	return r, &out
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindData, Classify("insert into parts values (1)"))
	assert.Equal(t, KindData, Classify("  UPDATE parts SET x = 1"))
	assert.Equal(t, KindData, Classify("DELETE FROM parts"))
	assert.Equal(t, KindSession, Classify("USE GaraManagement"))
	assert.Equal(t, KindSession, Classify("SET FOREIGN_KEY_CHECKS = 0"))
	assert.Equal(t, KindSession, Classify("select 1"))
	assert.Equal(t, KindOther, Classify("CREATE TABLE x (id int)"))
	assert.Equal(t, KindOther, Classify("INSERTX"))
}

func TestRunStopsAtFirstError(t *testing.T) {
	script := `
-- demo data
USE GaraManagement;
SET NAMES utf8mb4;
/* services */
INSERT INTO services (Name) VALUES ('a; b');
CREATE TABLE ignored (id int);
INSERT INTO parts (PartNumber, PartName) VALUES ('FAIL', 'x', 'y');
INSERT INTO suppliers (SupplierName) VALUES ('never');
`
	exec := &fakeExec{failOn: "FAIL"}
	r, out := newTestRunner(exec, Options{})

	result, err := r.Run(context.Background(), script)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 1, result.Skipped)

	require.NotNil(t, result.Failure)
	assert.Equal(t, 5, result.Failure.Index)
	assert.Equal(t, countMismatchHint, result.Failure.Hint)
	assert.True(t, strings.HasPrefix(result.Failure.Statement, "INSERT INTO parts"))

	for _, stmt := range exec.executed {
		assert.NotContains(t, stmt, "never")
		assert.NotContains(t, stmt, "CREATE TABLE")
	}
	assert.Contains(t, exec.executed, "INSERT INTO services (Name) VALUES ('a; b')")

	assert.Contains(t, out.String(), "FIRST ERROR DETECTED")
	assert.Contains(t, out.String(), "Statement #5")
	assert.Contains(t, out.String(), "SOLUTION: Number of columns")
}

func TestRunReportsProgress(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		b.WriteString("INSERT INTO services (Name) VALUES ('x');\n")
	}

	r, out := newTestRunner(&fakeExec{}, Options{ProgressEvery: 10})
	result, err := r.Run(context.Background(), b.String())
	require.NoError(t, err)

	assert.Equal(t, 25, result.Success)
	assert.Nil(t, result.Failure)
	assert.Contains(t, out.String(), "Processed: 20 statements (20 success, 0 errors)")

	r.PrintSummary(result)
	assert.Contains(t, out.String(), "ALL STATEMENTS EXECUTED SUCCESSFULLY")
	assert.Contains(t, out.String(), "Total Statements: 25")
}

func TestTruncateLongStatements(t *testing.T) {
	long := "INSERT INTO services (Name) VALUES ('" + strings.Repeat("x", 600) + "')"
	r, _ := newTestRunner(&fakeExec{failOn: "xxx"}, Options{})

	result, err := r.Run(context.Background(), long)
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
	assert.Len(t, []rune(result.Failure.Statement), maxStatementDisplay+3)
	assert.True(t, strings.HasSuffix(result.Failure.Statement, "..."))
}

func TestRunFileErrors(t *testing.T) {
	r, _ := newTestRunner(&fakeExec{}, Options{})

	_, err := r.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.sql"))
	assert.ErrorContains(t, err, "not found")

	empty := filepath.Join(t.TempDir(), "empty.sql")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0644))
	_, err = r.RunFile(context.Background(), empty)
	assert.ErrorContains(t, err, "empty")
}

func TestRunAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	adapter := sqlite.New()
	require.NoError(t, adapter.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "check.db")))
	defer adapter.Close()

	_, err := adapter.Exec(ctx, `CREATE TABLE suppliers (SupplierName TEXT NOT NULL, SupplierCode TEXT NOT NULL)`)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "demo.sql")
	script := `INSERT INTO suppliers (SupplierName, SupplierCode) VALUES ('[DEMO] A', 'DEMO001');
SELECT 1;
INSERT INTO suppliers (SupplierName) VALUES ('[DEMO] B');
INSERT INTO suppliers (SupplierName, SupplierCode) VALUES ('[DEMO] C', 'DEMO003');`
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	r, _ := newTestRunner(adapter, Options{StatementTimeout: 5 * time.Second})
	result, err := r.RunFile(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	require.NotNil(t, result.Failure)
	assert.Equal(t, 3, result.Failure.Index)
	assert.Equal(t, "Add column 'SupplierCode' to the INSERT statement", result.Failure.Hint)

	rows, err := adapter.ExecuteQuery(ctx, "SELECT COUNT(*) AS n FROM suppliers")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows.FirstValue())
}
