// Package workbook holds the format-neutral representation readers
// produce and writers consume.
package workbook

import (
	"fmt"

	"github.com/aerissecure/excel2csv/numfmt"
)

// Pixel values are floats to allow fractional widths/heights.

// CellStyle captures the limited set of Excel styles we carry to HTML.
type CellStyle struct {
	FontFamily      string  // e.g. "Calibri"
	FontSizePt      float64 // original size in points
	FontColor       string  // "RRGGBB"
	BackgroundColor string  // "RRGGBB"
	BorderColor     string  // left-border color as representative
	HorizontalAlign string  // left|center|right|justify
	VerticalAlign   string  // top|middle|bottom
	WrapText        bool
	IndentPx        float64 // computed indent in pixels
}

func (s CellStyle) String() string {
	return fmt.Sprintf("FontFamily: %s, FontSizePt: %f, FontColor: %s, BackgroundColor: %s, BorderColor: %s, HorizontalAlign: %s, VerticalAlign: %s, WrapText: %t, IndentPx: %f", s.FontFamily, s.FontSizePt, s.FontColor, s.BackgroundColor, s.BorderColor, s.HorizontalAlign, s.VerticalAlign, s.WrapText, s.IndentPx)
}

// Cell is a single cell (or merged master). Readers fill Value and
// Format; the formatting pass fills Text and Color.
type Cell struct {
	Ref     string       // e.g. "A1"
	Value   numfmt.Value // raw value
	Format  string       // number format code, "" when the cell has none
	ColSpan int          // 1 if not merged
	RowSpan int          // 1 if not merged
	Style   CellStyle

	Text  string // display text
	Color string // color directive of the selected section, e.g. "Red"
}

func (c Cell) String() string {
	return fmt.Sprintf("Ref: %s, Value: %s, Format: %q, Text: %q, ColSpan: %d, RowSpan: %d, Style: %s", c.Ref, c.Value, c.Format, c.Text, c.ColSpan, c.RowSpan, c.Style.String())
}

// Row represents one logical row in a sheet.
type Row struct {
	HeightPx float64 // resolved height in px
	Hidden   bool
	Cells    []*Cell // len == Sheet.Cols; nil for blank cells and merge continuations
}

func (r Row) String() string {
	return fmt.Sprintf("HeightPx: %f, Hidden: %t, Cells: %d", r.HeightPx, r.Hidden, len(r.Cells))
}

// Sheet is one worksheet.
type Sheet struct {
	Name      string
	ColWidths []float64 // per column pixel widths, len == Cols
	ColHidden []bool
	Rows      []Row // index == row number - 1; gaps are empty rows
}

// Cols is the width of the sheet in columns.
func (s *Sheet) Cols() int {
	return len(s.ColWidths)
}

// Cell returns the cell at zero-based row and col, nil when blank.
func (s *Sheet) Cell(row, col int) *Cell {
	if row < 0 || row >= len(s.Rows) {
		return nil
	}
	cells := s.Rows[row].Cells
	if col < 0 || col >= len(cells) {
		return nil
	}
	return cells[col]
}

func (s Sheet) String() string {
	return fmt.Sprintf("Name: %s, ColWidths: %v, ColHidden: %v, Rows: %d", s.Name, s.ColWidths, s.ColHidden, len(s.Rows))
}

// Workbook is the top-level model containing all sheets.
type Workbook struct {
	Sheets   []*Sheet
	Date1904 bool
}

// Epoch is the date system serials in this workbook count from.
func (w *Workbook) Epoch() numfmt.Epoch {
	if w.Date1904 {
		return numfmt.Epoch1904
	}
	return numfmt.Epoch1900
}

// SheetNames lists the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// NewSheet returns a sheet of cols default-width columns.
func NewSheet(name string, cols int) *Sheet {
	s := &Sheet{
		Name:      name,
		ColWidths: make([]float64, cols),
		ColHidden: make([]bool, cols),
	}
	for i := range s.ColWidths {
		s.ColWidths[i] = DefaultColWidthPx
	}
	return s
}

// Row returns row idx (zero-based), growing the sheet for sparse rows.
func (s *Sheet) Row(idx int) *Row {
	if idx >= len(s.Rows) {
		grow := make([]Row, idx-len(s.Rows)+1)
		for i := range grow {
			grow[i].HeightPx = DefaultRowHeightPx
		}
		s.Rows = append(s.Rows, grow...)
	}
	r := &s.Rows[idx]
	if r.Cells == nil {
		r.Cells = make([]*Cell, s.Cols())
	}
	return r
}

const (
	// DefaultColWidthPx approximates Excel's 8.43 character default.
	DefaultColWidthPx = 8.43 * 8.3
	// DefaultRowHeightPx is Excel's 15pt default.
	DefaultRowHeightPx = 15.0 * 1.333
)
