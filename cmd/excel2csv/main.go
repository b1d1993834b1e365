// Command excel2csv converts Excel workbooks to CSV with the values
// formatted the way Excel displays them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aerissecure/excel2csv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(excel2csv.ExitCode(err))
	}
}

type flags struct {
	output, sheet, format, empty string
	config, charset              string
	decimalSep, thousandsSep     string
	currency                     string
	verbose                      bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "excel2csv INPUT",
		Short: "Convert Excel files to CSV with formatted output",
		Long: `Convert .xlsx, .xlsm and .xls workbooks to CSV, TSV, semicolon
separated (european) or HTML output. Cell values are rendered through
their number formats, so "#,##0.00" shows 1,234.50 and dates show as dates.

Examples:
  excel2csv report.xlsx
  excel2csv report.xlsx -s Summary -f european
  excel2csv report.xlsx -s 'Data*' -o out/`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if f.verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
			ctx := logger.WithContext(cmd.Context())

			opts, err := f.options(cmd)
			if err != nil {
				return err
			}
			return run(ctx, args[0], f.output, stdout, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: stdout)")
	fs.StringVarP(&f.sheet, "sheet", "s", "", "sheet name, 0-based index or glob (default: all sheets)")
	fs.StringVarP(&f.format, "format", "f", "csv", "output format: csv, tsv, european or html")
	fs.StringVarP(&f.empty, "empty", "e", "", "value for empty cells")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print detailed progress to stderr")
	fs.StringVar(&f.config, "config", "", "TOML or YAML config file")
	fs.StringVar(&f.charset, "charset", "", "output charset (default: utf-8)")
	fs.StringVar(&f.decimalSep, "decimal-sep", "", "decimal separator")
	fs.StringVar(&f.thousandsSep, "thousands-sep", "", "thousands separator")
	fs.StringVar(&f.currency, "currency", "", "currency symbol replacing $ in formats")
	return cmd
}

// options loads the config file, if any, and applies the flags that
// were set on top of it.
func (f flags) options(cmd *cobra.Command) (excel2csv.Options, error) {
	cfg := excel2csv.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = excel2csv.LoadConfig(f.config); err != nil {
			return excel2csv.Options{}, err
		}
	}
	changed := cmd.Flags().Changed
	if changed("format") || f.config == "" {
		cfg.Output.Format = f.format
	}
	if changed("empty") {
		cfg.Output.Empty = f.empty
	}
	if changed("sheet") {
		cfg.Output.Sheet = f.sheet
	}
	if changed("charset") {
		cfg.Output.Charset = f.charset
	}
	if changed("decimal-sep") {
		cfg.Number.DecimalSeparator = f.decimalSep
	}
	if changed("thousands-sep") {
		cfg.Number.ThousandsSeparator = f.thousandsSep
	}
	if changed("currency") {
		cfg.Number.CurrencySymbol = f.currency
	}
	return cfg.Options()
}

func run(ctx context.Context, input, output string, stdout io.Writer, opts excel2csv.Options) error {
	if output == "" {
		return excel2csv.Convert(ctx, input, stdout, opts)
	}
	if isDir(output) {
		_, err := excel2csv.ConvertToDir(ctx, input, output, opts)
		return err
	}

	fh, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "create "+output)
	}
	if err := excel2csv.Convert(ctx, input, fh, opts); err != nil {
		fh.Close()
		os.Remove(output)
		return err
	}
	return errors.Wrap(fh.Close(), "close "+output)
}

// isDir reports whether output names a directory: an existing one, or
// any path ending in a separator.
func isDir(output string) bool {
	if r, _ := utf8.DecodeLastRuneInString(output); r == '/' || r == os.PathSeparator {
		return true
	}
	fi, err := os.Stat(output)
	return err == nil && fi.IsDir()
}
