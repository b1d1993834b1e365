// Package xlsx reads .xlsx and .xlsm workbooks into the workbook model:
// raw cell values, resolved number format codes, styles and merges.
package xlsx

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/aerissecure/excel2csv/numfmt"
	"github.com/aerissecure/excel2csv/workbook"
)

// Open reads the workbook at path.
func Open(path string) (*workbook.Workbook, error) {
	wb, err := spreadsheet.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer wb.Close()
	return convertWorkbook(wb)
}

// Read reads an XLSX from r/size.
func Read(r io.ReaderAt, size int64) (*workbook.Workbook, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "read xlsx")
	}
	defer wb.Close()
	return convertWorkbook(wb)
}

type span struct{ rowSpan, colSpan int }

func convertWorkbook(wb *spreadsheet.Workbook) (*workbook.Workbook, error) {
	model := &workbook.Workbook{Date1904: wb.Uses1904Dates()}
	formats := numberFormats(wb.StyleSheet)

	for _, sheet := range wb.Sheets() {
		rows := sheet.Rows()
		// Row.Cells fills gaps, so its length is the last used column + 1.
		cells := make([][]spreadsheet.Cell, len(rows))
		maxCols := 0
		for i, row := range rows {
			cells[i] = row.Cells()
			maxCols = max(maxCols, len(cells[i]))
		}

		masters, covered := merges(sheet)
		for k, sp := range masters {
			maxCols = max(maxCols, k[1]+sp.colSpan)
		}

		rs := workbook.NewSheet(sheet.Name(), maxCols)
		for c := range maxCols {
			col := sheet.Column(uint32(c + 1)).X()
			if col.CustomWidthAttr != nil && *col.CustomWidthAttr && col.WidthAttr != nil {
				rs.ColWidths[c] = *col.WidthAttr * 8.3
			}
			if col.HiddenAttr != nil {
				rs.ColHidden[c] = *col.HiddenAttr
			}
		}

		for i, row := range rows {
			rowIdx := int(row.RowNumber()) - 1
			if rowIdx < 0 {
				continue
			}
			rr := rs.Row(rowIdx)
			rr.Hidden = row.IsHidden()
			if x := row.X(); x.CustomHeightAttr != nil && *x.CustomHeightAttr && x.HtAttr != nil {
				rr.HeightPx = *x.HtAttr * 1.333 // pt -> px
			}

			for _, cell := range cells[i] {
				colName, err := cell.Column()
				if err != nil {
					continue
				}
				colIdx := int(reference.ColumnToIndex(colName))
				if covered[[2]int{rowIdx, colIdx}] {
					continue
				}
				x := cell.X()
				if cell.IsEmpty() && x.SAttr == nil {
					if _, ok := masters[[2]int{rowIdx, colIdx}]; !ok {
						continue
					}
				}

				value, err := cellValue(cell)
				if err != nil {
					return nil, errors.Wrapf(err, "sheet %q cell %s", sheet.Name(), cell.Reference())
				}
				rc := &workbook.Cell{
					Ref:     colName + strconv.Itoa(rowIdx+1),
					Value:   value,
					ColSpan: 1,
					RowSpan: 1,
				}
				if x.SAttr != nil {
					rc.Format = formats.code(wb.StyleSheet, *x.SAttr)
					rc.Style = cellStyle(wb, *x.SAttr)
				}
				if sp, ok := masters[[2]int{rowIdx, colIdx}]; ok {
					rc.RowSpan, rc.ColSpan = sp.rowSpan, sp.colSpan
				}
				rr.Cells[colIdx] = rc
			}
		}

		model.Sheets = append(model.Sheets, rs)
	}
	return model, nil
}

// merges returns the merge master cells with their spans and the set of
// cells the merges cover.
func merges(sheet spreadsheet.Sheet) (map[[2]int]span, map[[2]int]bool) {
	masters := make(map[[2]int]span)
	covered := make(map[[2]int]bool)
	if sheet.X().MergeCells == nil {
		return masters, covered
	}
	for _, mc := range sheet.X().MergeCells.MergeCell {
		from, to, err := reference.ParseRangeReference(mc.RefAttr)
		if err != nil {
			continue
		}
		fromRow := int(from.RowIdx - 1)
		fromCol := int(from.ColumnIdx)
		toRow := int(to.RowIdx - 1)
		toCol := int(to.ColumnIdx)
		masters[[2]int{fromRow, fromCol}] = span{toRow - fromRow + 1, toCol - fromCol + 1}

		for r := fromRow; r <= toRow; r++ {
			for c := fromCol; c <= toCol; c++ {
				if r == fromRow && c == fromCol {
					continue
				}
				covered[[2]int{r, c}] = true
			}
		}
	}
	return masters, covered
}

// cellValue maps the stored cell type to a raw value. Formula cells
// carry their cached result. ISO 8601 cells (t="d") reach here untyped
// and become dates.
func cellValue(cell spreadsheet.Cell) (numfmt.Value, error) {
	x := cell.X()
	switch x.TAttr {
	case sml.ST_CellTypeB:
		return numfmt.Bool(x.V != nil && (*x.V == "1" || strings.EqualFold(*x.V, "true"))), nil
	case sml.ST_CellTypeE:
		return numfmt.Error(cell.GetString()), nil
	case sml.ST_CellTypeS, sml.ST_CellTypeStr, sml.ST_CellTypeInlineStr:
		return numfmt.Text(cell.GetString()), nil
	}
	if x.V == nil || strings.TrimSpace(*x.V) == "" {
		return numfmt.Empty(), nil
	}
	raw := strings.TrimSpace(*x.V)
	f, err := strconv.ParseFloat(raw, 64)
	if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		err = errors.New("not a finite number")
	}
	if err == nil {
		return numfmt.Number(f), nil
	}
	if x.TAttr == sml.ST_CellTypeN {
		return numfmt.Value{}, errors.Wrapf(err, "numeric cell value %q", *x.V)
	}
	if v, ok := isoValue(raw); ok {
		return v, nil
	}
	return numfmt.Text(*x.V), nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// isoValue parses an ISO 8601 date, date-time or time of day. A bare
// time is a fraction of a day.
func isoValue(s string) (numfmt.Value, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return numfmt.Date(t), true
		}
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			h, m, sec := t.Clock()
			day := float64(h*3600+m*60+sec)/86400 + float64(t.Nanosecond())/86400e9
			return numfmt.Number(day), true
		}
	}
	return numfmt.Value{}, false
}

// formatTable maps custom number format ids to their codes.
type formatTable map[uint32]string

func numberFormats(ss spreadsheet.StyleSheet) formatTable {
	t := make(formatTable)
	if ss.X().NumFmts == nil {
		return t
	}
	for _, nf := range ss.X().NumFmts.NumFmt {
		t[nf.NumFmtIdAttr] = nf.FormatCodeAttr
	}
	return t
}

// code resolves the number format of cell style styleID: a custom code
// first, then the built-in table. Unknown ids fall back to General.
func (t formatTable) code(ss spreadsheet.StyleSheet, styleID uint32) string {
	xfs := ss.X().CellXfs
	if xfs == nil || int(styleID) >= len(xfs.Xf) {
		return ""
	}
	xf := xfs.Xf[styleID]
	if xf.NumFmtIdAttr == nil {
		return ""
	}
	id := *xf.NumFmtIdAttr
	if code, ok := t[id]; ok {
		return code
	}
	if code, ok := numfmt.BuiltinFormat(int(id)); ok {
		return code
	}
	return "General"
}
