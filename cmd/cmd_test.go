package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args in an isolated data directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("SQLCHALLENGE_DB", filepath.Join(dir, "history.db"))
	t.Setenv("SQLCHALLENGE_DB_DRIVER", "sqlite")
	t.Setenv("SQLCHALLENGE_DB_DSN", filepath.Join(dir, "practice.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sqlchallenge (devel)\n", out)
}

func TestVersionVerbose(t *testing.T) {
	t.Cleanup(func() { _ = versionCmd.Flags().Set("verbose", "false") })

	out, err := execute(t, "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlchallenge (devel)\n")
	assert.Contains(t, out, "platform: ")
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "pgx")
	assert.Contains(t, out, "mysql")
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema", "sales")
	require.NoError(t, err)
	assert.Contains(t, out, "Table: sales")
	assert.NotContains(t, out, "Table: employee")

	_, err = execute(t, "schema", "orders")
	assert.Error(t, err)
}

func TestTemplatesCommand(t *testing.T) {
	out, err := execute(t, "templates", "--topic", "employee")
	require.NoError(t, err)
	assert.Contains(t, out, "PERCENT_RANK()")
	assert.Contains(t, out, "14 templates")
	assert.NotContains(t, out, "Reference SQL")
}

func TestProvisionThenRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("SQLCHALLENGE_DB", filepath.Join(dir, "history.db"))
	t.Setenv("SQLCHALLENGE_DB_DRIVER", "sqlite")
	t.Setenv("SQLCHALLENGE_DB_DSN", filepath.Join(dir, "practice.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"provision", "sales", "--rows", "7", "--seed", "1"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "provisioned sales")

	out.Reset()
	rootCmd.SetArgs([]string{"run", "SELECT", "COUNT(*)", "AS", "n", "FROM", "sales"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "7")
	assert.Contains(t, out.String(), "1 row(s)")
}

func TestStatsEmpty(t *testing.T) {
	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No attempts yet.")
}

func TestResetRequiresConfirmation(t *testing.T) {
	_, err := execute(t, "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestLLMUsageEmpty(t *testing.T) {
	out, err := execute(t, "llm", "usage")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM requests recorded.")
}
