// Package excel2csv converts spreadsheet workbooks to CSV, TSV or HTML,
// rendering every cell through its number format the way a spreadsheet
// application displays it.
package excel2csv

import (
	"bytes"
	"cmp"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aerissecure/excel2csv/numfmt"
	"github.com/aerissecure/excel2csv/workbook"
	"github.com/aerissecure/excel2csv/xls"
	"github.com/aerissecure/excel2csv/xlsx"
)

type FileType string

const (
	Unknown = FileType("")
	Xls     = FileType("xls")
	XlsX    = FileType("xlsx")
)

// DetectType sniffs the leading bytes of b, falling back to the
// extension of fileName.
func DetectType(b []byte, fileName string) (FileType, error) {
	switch {
	case bytes.HasPrefix(b, []byte{0xd0, 0xcf, 0x11, 0xe0}): // OLE2
		return Xls, nil
	case bytes.HasPrefix(b, []byte{0x50, 0x4b, 0x03, 0x04}): // PKZip, so xlsx
		return XlsX, nil
	}
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".xls":
		return Xls, nil
	case ".xlsx", ".xlsm":
		return XlsX, nil
	default:
		return Unknown, errors.Wrapf(ErrUnsupportedFormat, "%q", strings.TrimPrefix(ext, "."))
	}
}

// Open reads the workbook at path, .xlsx/.xlsm or legacy .xls.
func Open(ctx context.Context, path string) (*workbook.Workbook, error) {
	logger := zerolog.Ctx(ctx)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(ErrFileNotFound, path)
		}
		return nil, errors.Wrap(err, "read "+path)
	}
	typ, err := DetectType(b, path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("file", path).Str("type", string(typ)).Int("size", len(b)).Msg("open")

	var wb *workbook.Workbook
	switch typ {
	case Xls:
		wb, err = xls.Open(path, b, debugWriter{logger})
	default:
		wb, err = xlsx.Read(bytes.NewReader(b), int64(len(b)))
	}
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidWorkbook, "%s (%v)", path, err)
	}
	logger.Debug().Strs("sheets", wb.SheetNames()).Bool("date1904", wb.Date1904).Msg("workbook")
	return wb, nil
}

// SelectSheets picks sheets by exact name, then by 0-based index, then
// by glob pattern. An empty selector selects every sheet.
func SelectSheets(wb *workbook.Workbook, sel string) ([]*workbook.Sheet, error) {
	if sel == "" {
		return wb.Sheets, nil
	}
	for _, s := range wb.Sheets {
		if s.Name == sel {
			return []*workbook.Sheet{s}, nil
		}
	}
	if i, err := strconv.Atoi(sel); err == nil {
		if i < 0 || i >= len(wb.Sheets) {
			return nil, errors.Wrapf(ErrSheetIndexOutOfRange, "index %d (have %d sheets)", i, len(wb.Sheets))
		}
		return []*workbook.Sheet{wb.Sheets[i]}, nil
	}
	if !doublestar.ValidatePattern(sel) {
		return nil, sheetNotFound(wb, sel)
	}
	var sheets []*workbook.Sheet
	for _, s := range wb.Sheets {
		if ok, _ := doublestar.Match(sel, s.Name); ok {
			sheets = append(sheets, s)
		}
	}
	if len(sheets) == 0 {
		return nil, sheetNotFound(wb, sel)
	}
	return sheets, nil
}

func sheetNotFound(wb *workbook.Workbook, name string) error {
	return errors.Wrapf(ErrSheetNotFound, "%q (available: %s)", name, strings.Join(wb.SheetNames(), ", "))
}

// FormatSheets fills Text and Color of every cell of sheets. Sheets are
// formatted in parallel and share one parse cache. A format code that
// does not parse or render fails the whole pass.
func FormatSheets(ctx context.Context, wb *workbook.Workbook, sheets []*workbook.Sheet, opts numfmt.Options) error {
	opts.Epoch = wb.Epoch()
	cache := numfmt.NewCache()
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for _, s := range sheets {
		grp.Go(func() error { return formatSheet(ctx, s, cache, opts) })
	}
	err := grp.Wait()
	zerolog.Ctx(ctx).Debug().Int("sheets", len(sheets)).Int("codes", cache.Len()).Msg("formatted")
	return err
}

func formatSheet(ctx context.Context, s *workbook.Sheet, cache *numfmt.Cache, opts numfmt.Options) error {
	def := cmp.Or(opts.DefaultFormat, "General")
	for _, row := range s.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, c := range row.Cells {
			if c == nil {
				continue
			}
			code := cmp.Or(c.Format, def)
			res, err := cache.Format(code, c.Value, opts)
			if err != nil {
				return errors.Wrapf(err, "sheet %q cell %s (format %q)", s.Name, c.Ref, code)
			}
			c.Text, c.Color = res.Text, res.Color
		}
	}
	zerolog.Ctx(ctx).Debug().Str("sheet", s.Name).Int("rows", len(s.Rows)).Msg("sheet formatted")
	return nil
}

// Convert writes the selected sheet of the workbook at path to w. CSV
// formats take exactly one sheet; HTML renders every selected sheet.
func Convert(ctx context.Context, path string, w io.Writer, opts Options) error {
	wb, sheets, err := load(ctx, path, opts)
	if err != nil {
		return err
	}
	if len(sheets) > 1 && opts.Format != FormatHTML {
		return errors.Wrapf(ErrMultipleSheetsNoOutput, "%d sheets selected", len(sheets))
	}
	if err := FormatSheets(ctx, wb, sheets, opts.Number); err != nil {
		return err
	}
	return write(w, sheets, opts)
}

// ConvertToDir writes one file per selected sheet into dir, named after
// the sheet, and returns the paths written.
func ConvertToDir(ctx context.Context, path, dir string, opts Options) ([]string, error) {
	wb, sheets, err := load(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	if err := FormatSheets(ctx, wb, sheets, opts.Number); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create "+dir)
	}

	logger := zerolog.Ctx(ctx)
	paths := make([]string, 0, len(sheets))
	seen := make(map[string]int)
	for _, s := range sheets {
		name := SanitizeFilename(s.Name)
		if n := seen[name]; n > 0 {
			name += "-" + strconv.Itoa(n)
		}
		seen[name]++
		fn := filepath.Join(dir, name+opts.Format.Ext())
		if err := writeFile(fn, s, opts); err != nil {
			return paths, err
		}
		logger.Info().Str("sheet", s.Name).Str("file", fn).Msg("written")
		paths = append(paths, fn)
	}
	return paths, nil
}

func load(ctx context.Context, path string, opts Options) (*workbook.Workbook, []*workbook.Sheet, error) {
	if opts.Format == "" {
		opts.Format = FormatCSV
	}
	if !opts.Format.valid() {
		return nil, nil, errors.Wrapf(ErrUnsupportedFormat, "output format %q", opts.Format)
	}
	wb, err := Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	sheets, err := SelectSheets(wb, opts.Sheet)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = s.Name
	}
	zerolog.Ctx(ctx).Info().Str("file", path).Strs("sheets", names).Msg("selected")
	return wb, sheets, nil
}

func writeFile(fn string, s *workbook.Sheet, opts Options) error {
	fh, err := os.Create(fn)
	if err != nil {
		return errors.Wrap(err, "create "+fn)
	}
	if err := write(fh, []*workbook.Sheet{s}, opts); err != nil {
		fh.Close()
		return err
	}
	return errors.Wrap(fh.Close(), "close "+fn)
}

func write(w io.Writer, sheets []*workbook.Sheet, opts Options) error {
	if opts.Format == FormatHTML {
		return WriteHTML(w, sheets, opts)
	}
	if len(sheets) == 0 {
		return nil
	}
	return WriteCSV(w, sheets[0], opts)
}

// debugWriter turns library diagnostics into debug log lines.
type debugWriter struct{ logger *zerolog.Logger }

func (w debugWriter) Write(p []byte) (int, error) {
	if msg := strings.TrimSpace(string(p)); msg != "" {
		w.logger.Debug().Msg(msg)
	}
	return len(p), nil
}

// SanitizeFilename replaces characters that are unsafe in file names.
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < ' ' {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." {
		return "sheet"
	}
	return name
}
