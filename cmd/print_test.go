package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func golden(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "internal", "demodata", "testdata", "demo_seed.golden.sql"))
	require.NoError(t, err)
	return string(data)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		printCmd.Flags().Set("out", "")
		rootCmd.Flags().Set("print", "false")
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestPrintWritesScript(t *testing.T) {
	out, err := execute(t, "print")
	require.NoError(t, err)
	assert.Equal(t, golden(t), out)
}

func TestPrintFlagOnRoot(t *testing.T) {
	out, err := execute(t, "--print")
	require.NoError(t, err)
	assert.Equal(t, golden(t), out)
}

func TestPrintToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo_seed.sql")

	out, err := execute(t, "print", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, golden(t), string(data))
}

func TestPrintRejectsArguments(t *testing.T) {
	_, err := execute(t, "print", "extra")
	assert.Error(t, err)
}

func TestPrintToMissingDirectory(t *testing.T) {
	_, err := execute(t, "print", "--out", filepath.Join(t.TempDir(), "missing", "demo_seed.sql"))
	assert.ErrorContains(t, err, "failed to create")
}

func TestPrintIgnoresEnvironmentAndConfig(t *testing.T) {
	want := golden(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demoseed.config.json"), []byte(`{"output": "cfg.sql"}`), 0644))
	t.Chdir(dir)
	t.Setenv("DEMOSEED_OUTPUT", filepath.Join(dir, "env.sql"))
	t.Setenv("OUTPUT", filepath.Join(dir, "plain.sql"))

	for _, args := range [][]string{{"print"}, {"--print"}} {
		out, err := execute(t, args...)
		require.NoError(t, err, args)
		assert.Equal(t, want, out, args)
	}

	for _, name := range []string{"cfg.sql", "env.sql", "plain.sql"} {
		assert.NoFileExists(t, filepath.Join(dir, name))
	}
}
