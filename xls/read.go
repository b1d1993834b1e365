// Package xls reads legacy BIFF .xls workbooks into the workbook model.
package xls

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/yamitzky/xlrd-go/xlrd"

	"github.com/aerissecure/excel2csv/numfmt"
	"github.com/aerissecure/excel2csv/workbook"
)

// Open reads the .xls file at path. content may hold the already-read
// file bytes; when nil the file is read from disk. Library diagnostics
// go to logw, which may be nil.
func Open(path string, content []byte, logw io.Writer) (*workbook.Workbook, error) {
	if logw == nil {
		logw = io.Discard
	}
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{
		Logfile:        logw,
		FormattingInfo: true,
		FileContents:   content,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer book.ReleaseResources()
	return convertBook(book), nil
}

func convertBook(book *xlrd.Book) *workbook.Workbook {
	m := &workbook.Workbook{Date1904: book.Datemode == 1}
	for _, sh := range book.Sheets() {
		m.Sheets = append(m.Sheets, convertSheet(book, sh))
	}
	return m
}

func convertSheet(book *xlrd.Book, sh *xlrd.Sheet) *workbook.Sheet {
	s := workbook.NewSheet(sh.Name, sh.NCols)
	for c, info := range sh.ColInfoMap {
		if c < 0 || c >= sh.NCols || info == nil {
			continue
		}
		if info.Width > 0 {
			// 1/256 of a character width
			s.ColWidths[c] = float64(info.Width) / 256 * 8.3
		}
		s.ColHidden[c] = info.Hidden
	}

	masters := make(map[[2]int][2]int)
	covered := make(map[[2]int]bool)
	for _, mc := range sh.MergedCells {
		rlo, rhi, clo, chi := mc[0], mc[1], mc[2], mc[3]
		masters[[2]int{rlo, clo}] = [2]int{rhi - rlo, chi - clo}
		for r := rlo; r < rhi; r++ {
			for c := clo; c < chi; c++ {
				if r != rlo || c != clo {
					covered[[2]int{r, c}] = true
				}
			}
		}
	}

	for r := range sh.NRows {
		row := s.Row(r)
		if info, ok := sh.RowInfoMap[r]; ok && info != nil {
			row.Hidden = info.Hidden
			if info.Height > 0 {
				// twips -> pt -> px
				row.HeightPx = float64(info.Height) / 20 * 1.333
			}
		}
		for c := range sh.NCols {
			if covered[[2]int{r, c}] {
				continue
			}
			ctype := sh.CellType(r, c)
			if ctype == xlrd.XL_CELL_EMPTY {
				continue
			}
			cell := &workbook.Cell{
				Ref:     fmt.Sprintf("%s%d", xlrd.Colname(c), r+1),
				Value:   cellValue(ctype, sh.CellValue(r, c)),
				Format:  formatCode(book, sh.CellXFIndex(r, c)),
				ColSpan: 1,
				RowSpan: 1,
			}
			if span, ok := masters[[2]int{r, c}]; ok {
				cell.RowSpan, cell.ColSpan = span[0], span[1]
			}
			row.Cells[c] = cell
		}
	}
	return s
}

func cellValue(ctype int, v interface{}) numfmt.Value {
	switch ctype {
	case xlrd.XL_CELL_BLANK:
		return numfmt.Empty()
	case xlrd.XL_CELL_TEXT:
		return numfmt.Text(toString(v))
	case xlrd.XL_CELL_BOOLEAN:
		switch b := v.(type) {
		case bool:
			return numfmt.Bool(b)
		case int:
			return numfmt.Bool(b != 0)
		}
		return numfmt.Bool(false)
	case xlrd.XL_CELL_ERROR:
		return numfmt.Error(errorText(v))
	}
	if f, ok := toFloat(v); ok {
		return numfmt.Number(f)
	}
	return numfmt.Text(toString(v))
}

func errorText(v interface{}) string {
	var code byte
	switch e := v.(type) {
	case byte:
		code = e
	case int:
		code = byte(e)
	default:
		return toString(v)
	}
	if text, ok := xlrd.ErrorTextFromCode[code]; ok {
		return text
	}
	return "#ERROR"
}

// formatCode resolves the number format code of an XF record. Built-in
// keys use the Excel table; the codes older writers store for them are
// locale dependent.
func formatCode(book *xlrd.Book, xfIndex int) string {
	if xfIndex < 0 || xfIndex >= len(book.XFList) || book.XFList[xfIndex] == nil {
		return ""
	}
	key := book.XFList[xfIndex].FormatKey
	if code, ok := numfmt.BuiltinFormat(key); ok {
		return code
	}
	if f := book.FormatMap[key]; f != nil && f.FormatString != "" {
		return f.FormatString
	}
	return "General"
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	return fmt.Sprint(v)
}

func toFloat(v interface{}) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	}
	return 0, false
}
