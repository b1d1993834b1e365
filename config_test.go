package excel2csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	for _, tc := range []struct {
		name, body string
	}{
		{"conf.toml", `
[output]
format = "european"
empty = "-"
charset = "windows-1252"

[number]
decimal_separator = ","
thousands_separator = "."
currency_symbol = "€"
general_digits = 9
fill_width = 12
`},
		{"conf.yaml", `
output:
  format: european
  empty: "-"
  charset: windows-1252
number:
  decimal_separator: ","
  thousands_separator: "."
  currency_symbol: "€"
  general_digits: 9
  fill_width: 12
`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tc.name, tc.body))
			require.NoError(t, err)
			opts, err := cfg.Options()
			require.NoError(t, err)

			assert.Equal(t, FormatEuropean, opts.Format)
			assert.Equal(t, "-", opts.Empty)
			assert.Equal(t, "windows-1252", opts.Charset)
			assert.Equal(t, ',', opts.Number.DecimalSeparator)
			assert.Equal(t, '.', opts.Number.ThousandsSeparator)
			assert.Equal(t, "€", opts.Number.CurrencySymbol)
			assert.Equal(t, 9, opts.Number.GeneralDigits)
			assert.Equal(t, 12, opts.Number.FillWidth)
			assert.Equal(t, "General", opts.Number.DefaultFormat)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "empty.toml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, opts.Format)
	assert.Equal(t, '.', opts.Number.DecimalSeparator)
	assert.Equal(t, 11, opts.Number.GeneralDigits)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "conf.ini", "a=b"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = LoadConfig(writeConfig(t, "bad.toml", "[output"))
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Number.DecimalSeparator = ",,"
	_, err = cfg.Options()
	assert.ErrorContains(t, err, "decimal_separator")

	cfg = DefaultConfig()
	cfg.Output.Format = "pdf"
	_, err = cfg.Options()
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
