package excel2csv

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk form of Options, read from TOML or YAML.
//
//	[output]
//	format = "european"
//	empty = "-"
//	charset = "windows-1252"
//
//	[number]
//	decimal_separator = ","
//	thousands_separator = "."
type Config struct {
	Output OutputConfig `toml:"output" yaml:"output"`
	Number NumberConfig `toml:"number" yaml:"number"`
}

type OutputConfig struct {
	Format  string `toml:"format" yaml:"format"`
	Empty   string `toml:"empty" yaml:"empty"`
	Charset string `toml:"charset" yaml:"charset"`
	Sheet   string `toml:"sheet" yaml:"sheet"`
}

type NumberConfig struct {
	DecimalSeparator   string `toml:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `toml:"thousands_separator" yaml:"thousands_separator"`
	CurrencySymbol     string `toml:"currency_symbol" yaml:"currency_symbol"`
	GeneralDigits      int    `toml:"general_digits" yaml:"general_digits"`
	FillWidth          int    `toml:"fill_width" yaml:"fill_width"`
	DefaultFormat      string `toml:"default_format" yaml:"default_format"`
}

// DefaultConfig mirrors DefaultOptions.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{Format: string(FormatCSV), Charset: "utf-8"},
		Number: NumberConfig{
			DecimalSeparator:   ".",
			ThousandsSeparator: ",",
			GeneralDigits:      11,
			DefaultFormat:      "General",
		},
	}
}

// LoadConfig reads path over DefaultConfig. The extension picks the
// syntax: .toml, or .yaml/.yml.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(b), &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse %s", path)
		}
	default:
		return cfg, errors.Wrapf(ErrUnsupportedFormat, "config %s", path)
	}
	return cfg, nil
}

// Options converts the config, validating the separators and format.
func (c Config) Options() (Options, error) {
	opts := DefaultOptions()
	if c.Output.Format != "" {
		opts.Format = OutputFormat(strings.ToLower(c.Output.Format))
		if !opts.Format.valid() {
			return opts, errors.Wrapf(ErrUnsupportedFormat, "output format %q", c.Output.Format)
		}
	}
	opts.Empty = c.Output.Empty
	opts.Charset = c.Output.Charset
	opts.Sheet = c.Output.Sheet

	var err error
	if opts.Number.DecimalSeparator, err = separator(c.Number.DecimalSeparator, opts.Number.DecimalSeparator); err != nil {
		return opts, errors.Wrap(err, "decimal_separator")
	}
	if opts.Number.ThousandsSeparator, err = separator(c.Number.ThousandsSeparator, opts.Number.ThousandsSeparator); err != nil {
		return opts, errors.Wrap(err, "thousands_separator")
	}
	opts.Number.CurrencySymbol = c.Number.CurrencySymbol
	if c.Number.GeneralDigits > 0 {
		opts.Number.GeneralDigits = c.Number.GeneralDigits
	}
	opts.Number.FillWidth = c.Number.FillWidth
	if c.Number.DefaultFormat != "" {
		opts.Number.DefaultFormat = c.Number.DefaultFormat
	}
	return opts, nil
}

// separator parses a one-character separator; "" keeps def.
func separator(s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Errorf("separator %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
