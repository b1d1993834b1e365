package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/aerissecure/excel2csv"
)

func fixture(t *testing.T) string {
	t.Helper()
	wb := spreadsheet.New()
	money := wb.StyleSheet.AddCellStyle()
	money.SetNumberFormat("#,##0.00")

	for _, name := range []string{"Data", "Notes"} {
		sheet := wb.AddSheet()
		sheet.SetName(name)
		row := sheet.AddRow()
		row.AddCell().SetString(name)
		c := row.AddCell()
		c.SetNumber(1234.5)
		c.SetStyle(money)
		row.AddCell()
	}
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, wb.SaveToFile(path))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	in := fixture(t)

	out, _, err := execute(t, in, "-s", "Data")
	require.NoError(t, err)
	assert.Equal(t, "Data,\"1,234.50\",\n", out)

	out, _, err = execute(t, in, "-s", "1", "-f", "european", "-e", "-", "--decimal-sep", ",", "--thousands-sep", ".")
	require.NoError(t, err)
	assert.Equal(t, "Notes;1.234,50;-\n", out)

	_, stderr, err := execute(t, in, "-s", "Data", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "selected")
}

func TestRootCommandErrors(t *testing.T) {
	in := fixture(t)

	_, _, err := execute(t, in)
	assert.True(t, errors.Is(err, excel2csv.ErrMultipleSheetsNoOutput))
	assert.Equal(t, 3, excel2csv.ExitCode(err))

	_, _, err = execute(t, in, "-f", "pdf")
	assert.Equal(t, 3, excel2csv.ExitCode(err))

	_, _, err = execute(t)
	assert.Error(t, err)
}

func TestRootCommandOutputDir(t *testing.T) {
	in := fixture(t)
	dir := t.TempDir()

	_, _, err := execute(t, in, "-o", dir+string(os.PathSeparator), "-f", "tsv")
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "Notes.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "Notes\t1,234.50\t\n", string(b))
	assert.FileExists(t, filepath.Join(dir, "Data.tsv"))
}

func TestRootCommandConfig(t *testing.T) {
	in := fixture(t)
	cfg := filepath.Join(t.TempDir(), "excel2csv.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output:\n  format: tsv\n  sheet: Data\n  empty: NA\n"), 0o644))

	out, _, err := execute(t, in, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Data\t1,234.50\tNA\n", out)

	out, _, err = execute(t, in, "--config", cfg, "-f", "csv")
	require.NoError(t, err)
	assert.Equal(t, "Data,\"1,234.50\",NA\n", out)
}

func TestRootCommandOutputFile(t *testing.T) {
	in := fixture(t)
	out := filepath.Join(t.TempDir(), "data.csv")

	_, _, err := execute(t, in, "-s", "Data", "-o", out)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Data,\"1,234.50\",\n", string(b))
}
