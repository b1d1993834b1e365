package excel2csv

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/aerissecure/excel2csv/numfmt"
	"github.com/aerissecure/excel2csv/workbook"
)

// WriteHTML renders sheets as HTML tables. Cell styles become CSS
// classes holding only what differs from the most common value of each
// property; a color directive of the number format overrides the font
// color.
func WriteHTML(w io.Writer, sheets []*workbook.Sheet, opts Options) error {
	ew, err := encodeWriter(w, opts.Charset)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(ew, RenderHTML(sheets, opts.Empty)); err != nil {
		return errors.Wrap(err, "write html")
	}
	return errors.Wrap(ew.Close(), "write html")
}

// cellStyle is the style a cell is displayed with.
func cellStyle(c *workbook.Cell) workbook.CellStyle {
	st := c.Style
	if rgb, ok := numfmt.ColorRGB(c.Color); ok {
		st.FontColor = rgb
	}
	return st
}

// RenderHTML converts sheets into an HTML string.
func RenderHTML(sheets []*workbook.Sheet, empty string) string {
	var builder strings.Builder

	// 1. Collect unique cell styles and count property values
	fontFamilyCount := make(map[string]int)
	fontSizeCount := make(map[float64]int)
	borderColorCount := make(map[string]int)
	hAlignCount := make(map[string]int)
	vAlignCount := make(map[string]int)
	fontColorCount := make(map[string]int)
	bgColorCount := make(map[string]int)
	wrapTextCount := make(map[bool]int)

	styleMap := make(map[workbook.CellStyle]string) // CellStyle -> class name
	var styleList []workbook.CellStyle              // to preserve order
	styledCells := 0

	for _, sheet := range sheets {
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				if cell == nil {
					continue
				}
				styledCells++
				st := cellStyle(cell)
				if st.FontFamily != "" {
					fontFamilyCount[st.FontFamily]++
				}
				if st.FontSizePt > 0 {
					fontSizeCount[st.FontSizePt]++
				}
				if st.BorderColor != "" {
					borderColorCount[st.BorderColor]++
				}
				if st.HorizontalAlign != "" {
					hAlignCount[st.HorizontalAlign]++
				}
				if st.VerticalAlign != "" {
					vAlignCount[st.VerticalAlign]++
				}
				if st.FontColor != "" {
					fontColorCount[st.FontColor]++
				}
				if st.BackgroundColor != "" {
					bgColorCount[st.BackgroundColor]++
				}
				wrapTextCount[st.WrapText]++
				if _, exists := styleMap[st]; !exists {
					styleMap[st] = fmt.Sprintf("cellstyle%d", len(styleList)+1)
					styleList = append(styleList, st)
				}
			}
		}
	}

	// 2. Compute defaults: a value is the default only when more than
	// half of the cells use it.
	var def workbook.CellStyle
	def.FontFamily = majority(fontFamilyCount, styledCells)
	def.FontSizePt = majority(fontSizeCount, styledCells)
	def.BorderColor = majority(borderColorCount, styledCells)
	def.HorizontalAlign = majority(hAlignCount, styledCells)
	def.VerticalAlign = majority(vAlignCount, styledCells)
	def.FontColor = majority(fontColorCount, styledCells)
	def.BackgroundColor = majority(bgColorCount, styledCells)
	def.WrapText = wrapTextCount[true] > wrapTextCount[false]

	// 3. Basic CSS
	builder.WriteString("<style>\n")
	builder.WriteString(".table { border-collapse: collapse; table-layout: fixed; margin-bottom: 2em; }\n")
	builder.WriteString(".table td { padding: 4px 8px; ")
	if def.BorderColor == "" {
		builder.WriteString("border:1px solid #333;")
	}
	if !def.WrapText {
		builder.WriteString("white-space:nowrap;overflow:hidden;")
	}
	builder.WriteString(styleToCSSDiff(def, workbook.CellStyle{}))
	builder.WriteString(" }\n")
	builder.WriteString(".sheet { margin-bottom: 2em; }\n")

	// 4. Render cell style classes (only properties that differ from default)
	for i, style := range styleList {
		if css := styleToCSSDiff(style, def); css != "" {
			fmt.Fprintf(&builder, ".cellstyle%d { %s }\n", i+1, css)
		}
	}
	builder.WriteString("</style>\n")

	for _, sheet := range sheets {
		totalPx := 0.0
		for _, w := range sheet.ColWidths {
			totalPx += w
		}
		fmt.Fprintf(&builder, "<div class=\"sheet\" data-name=\"%s\">\n", html.EscapeString(sheet.Name))
		builder.WriteString("<div style=\"width:100%;overflow-x:auto;\">\n")
		fmt.Fprintf(&builder, "<table class=\"table\" style=\"width:%.0fpx;\">\n", totalPx)
		builder.WriteString("  <colgroup>\n")
		for i, w := range sheet.ColWidths {
			style := fmt.Sprintf(" style=\"width:%.0fpx;\"", w)
			if sheet.ColHidden[i] {
				style = " style=\"display:none;\""
			}
			fmt.Fprintf(&builder, "    <col%s>\n", style)
		}
		builder.WriteString("  </colgroup>\n")

		covered := coveredCells(sheet)
		for r, row := range sheet.Rows {
			rowStyle := fmt.Sprintf("height:%.0fpx;", row.HeightPx)
			if row.Hidden {
				rowStyle += "display:none;"
			}
			fmt.Fprintf(&builder, "  <tr style=\"%s\">\n", rowStyle)
			for c := 0; c < sheet.Cols(); c++ {
				if covered[[2]int{r, c}] {
					continue
				}
				cell := sheet.Cell(r, c)
				if cell == nil {
					fmt.Fprintf(&builder, "    <td>%s</td>\n", html.EscapeString(empty))
					continue
				}

				spanAttr := ""
				if cell.ColSpan > 1 {
					spanAttr += fmt.Sprintf(" colspan=\"%d\"", cell.ColSpan)
				}
				if cell.RowSpan > 1 {
					spanAttr += fmt.Sprintf(" rowspan=\"%d\"", cell.RowSpan)
				}

				text := cell.Text
				if text == "" {
					text = empty
				}
				escaped := html.EscapeString(text)
				// Excel stores explicit line breaks as \n
				escaped = strings.ReplaceAll(escaped, "\n", "<br>")
				fmt.Fprintf(&builder, "    <td data-cell=\"%s\"%s class=\"%s\">%s</td>\n",
					cell.Ref, spanAttr, styleMap[cellStyle(cell)], escaped)
			}
			builder.WriteString("  </tr>\n")
		}
		builder.WriteString("</table>\n</div>\n</div>\n")
	}
	return builder.String()
}

// coveredCells marks the cells hidden under a merged master.
func coveredCells(sheet *workbook.Sheet) map[[2]int]bool {
	covered := make(map[[2]int]bool)
	for r, row := range sheet.Rows {
		for c, cell := range row.Cells {
			if cell == nil || (cell.RowSpan <= 1 && cell.ColSpan <= 1) {
				continue
			}
			for dr := range max(cell.RowSpan, 1) {
				for dc := range max(cell.ColSpan, 1) {
					if dr != 0 || dc != 0 {
						covered[[2]int{r + dr, c + dc}] = true
					}
				}
			}
		}
	}
	return covered
}

func majority[K comparable](counts map[K]int, total int) K {
	var val K
	best := 0
	for k, n := range counts {
		if n > best {
			best, val = n, k
		}
	}
	if best <= total/2 {
		var zero K
		return zero
	}
	return val
}

// styleToCSSDiff returns only the CSS properties of s that differ from def.
func styleToCSSDiff(s, def workbook.CellStyle) string {
	var b strings.Builder
	if s.FontFamily != "" && s.FontFamily != def.FontFamily {
		fmt.Fprintf(&b, "font-family:'%s';", s.FontFamily)
	}
	if s.FontSizePt > 0 && s.FontSizePt != def.FontSizePt {
		fmt.Fprintf(&b, "font-size:%.1fpt;", s.FontSizePt)
	}
	if s.FontColor != "" && s.FontColor != def.FontColor {
		fmt.Fprintf(&b, "color:#%s;", s.FontColor)
	}
	if s.BackgroundColor != "" && s.BackgroundColor != def.BackgroundColor {
		fmt.Fprintf(&b, "background-color:#%s;", s.BackgroundColor)
	}
	if s.BorderColor != "" && s.BorderColor != def.BorderColor {
		fmt.Fprintf(&b, "border:1px solid #%s;", s.BorderColor)
	}
	if s.HorizontalAlign != "" && s.HorizontalAlign != def.HorizontalAlign {
		switch s.HorizontalAlign {
		case "center", "centerContinuous", "distributed":
			b.WriteString("text-align:center;")
		case "right":
			b.WriteString("text-align:right;")
		case "justify":
			b.WriteString("text-align:justify;")
		default:
			b.WriteString("text-align:left;")
		}
	}
	if s.VerticalAlign != "" && s.VerticalAlign != def.VerticalAlign {
		switch s.VerticalAlign {
		case "top":
			b.WriteString("vertical-align:top;")
		case "middle":
			b.WriteString("vertical-align:middle;")
		default:
			b.WriteString("vertical-align:bottom;")
		}
	}
	if s.WrapText != def.WrapText {
		if s.WrapText {
			b.WriteString("white-space:normal;")
		} else {
			b.WriteString("white-space:nowrap;overflow:hidden;")
		}
	}
	if s.IndentPx > 0 && s.IndentPx != def.IndentPx {
		if s.HorizontalAlign == "right" {
			fmt.Fprintf(&b, "padding-right:%.0fpx;", s.IndentPx)
		} else {
			fmt.Fprintf(&b, "padding-left:%.0fpx;", s.IndentPx)
		}
	}
	return b.String()
}
