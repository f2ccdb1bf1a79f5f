package demodata

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptMatchesGolden(t *testing.T) {
	golden, err := os.ReadFile(filepath.Join("testdata", "demo_seed.golden.sql"))
	require.NoError(t, err)

	if diff := cmp.Diff(string(golden), Script()); diff != "" {
		t.Errorf("script differs from testdata/demo_seed.golden.sql (-want +got):\n%s", diff)
	}
}

func TestScriptIsDeterministic(t *testing.T) {
	assert.Equal(t, Script(), Script())
}

func TestWriteScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScript(&buf))
	assert.Equal(t, Script(), buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteScriptReturnsWriterError(t *testing.T) {
	assert.EqualError(t, WriteScript(failingWriter{}), "disk full")
}

func TestScriptLayout(t *testing.T) {
	script := Script()

	assert.True(t, strings.HasPrefix(script, "-- Services\nINSERT INTO `services` ("))
	assert.Contains(t, script, "\n\n-- Parts\nINSERT INTO `parts` (")
	assert.Contains(t, script, "\n\n-- Suppliers\nINSERT INTO `suppliers` (")
	assert.True(t, strings.HasSuffix(script, "0, NOW(), 'DemoData');\n"))
	assert.Contains(t, script, "`Condition`")
	assert.Equal(t, 7, strings.Count(script, "NOW()"))
}

func TestSectionsOrder(t *testing.T) {
	var tables []string
	for _, s := range Sections() {
		tables = append(tables, s.Table)
	}
	assert.Equal(t, []string{"services", "parts", "suppliers"}, tables)
	assert.Equal(t, tables, TableNames())
}

func TestDatasetsAreWellFormed(t *testing.T) {
	rowCounts := map[string]int{"services": 3, "parts": 3, "suppliers": 1}

	for _, d := range Datasets() {
		require.NoError(t, d.Validate(), d.Table)
		assert.Len(t, d.Rows, rowCounts[d.Table], d.Table)

		createdBy := d.ColumnIndex("CreatedBy")
		createdAt := d.ColumnIndex("CreatedAt")
		require.GreaterOrEqual(t, createdBy, 0)
		require.GreaterOrEqual(t, createdAt, 0)

		for i := range d.Rows {
			record := d.Record(i)
			assert.Equal(t, CreatedBy, record["CreatedBy"])
			assert.True(t, IsNow(record["CreatedAt"]))
			assert.Equal(t, 0, record["IsDeleted"])
		}
	}
}

func TestDemoNamesArePrefixed(t *testing.T) {
	nameColumn := map[string]string{"services": "Name", "parts": "PartName", "suppliers": "SupplierName"}

	for _, d := range Datasets() {
		for i := range d.Rows {
			name, _ := d.Record(i)[nameColumn[d.Table]].(string)
			assert.True(t, strings.HasPrefix(name, "[DEMO] "), name)
		}
	}

	parts, ok := Lookup("parts")
	require.True(t, ok)
	for i := range parts.Rows {
		number := parts.Record(i)["PartNumber"].(string)
		assert.True(t, strings.HasPrefix(number, "DEMO"), number)
	}
}

func TestLookupUnknownTable(t *testing.T) {
	_, ok := Lookup("customers")
	assert.False(t, ok)
}

func TestValidateCatchesMismatch(t *testing.T) {
	d := Dataset{Table: "x", Columns: []string{"a", "b"}, Rows: [][]interface{}{{1, 2}, {3}}}
	assert.ErrorContains(t, d.Validate(), "row 2: 1 values for 2 columns")

	assert.Error(t, Dataset{Table: "empty"}.Validate())
}

func TestNowMarker(t *testing.T) {
	assert.True(t, IsNow(Now))
	assert.False(t, IsNow("NOW()"))
	assert.Equal(t, "NOW()", Now.String())
}
