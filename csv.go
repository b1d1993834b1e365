package excel2csv

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/aerissecure/excel2csv/workbook"
)

// WriteCSV writes the display text of s, one record per row and one
// field per column. Empty fields get opts.Empty.
func WriteCSV(w io.Writer, s *workbook.Sheet, opts Options) error {
	ew, err := encodeWriter(w, opts.Charset)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(ew)
	cw.Comma = opts.Format.Delimiter()

	record := make([]string, s.Cols())
	for r := range s.Rows {
		for c := range record {
			record[c] = opts.Empty
			if cell := s.Cell(r, c); cell != nil && cell.Text != "" {
				record[c] = cell.Text
			}
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(ErrCSVWrite, "sheet %q row %d: %v", s.Name, r+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrapf(ErrCSVWrite, "sheet %q: %v", s.Name, err)
	}
	if err := ew.Close(); err != nil {
		return errors.Wrapf(ErrCSVWrite, "sheet %q: %v", s.Name, err)
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// encodeWriter re-encodes UTF-8 written to it into charset.
func encodeWriter(w io.Writer, charset string) (io.WriteCloser, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return nopCloser{w}, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.Wrapf(err, "charset %q", charset)
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}
