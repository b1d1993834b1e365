package xlsx

import (
	"strings"

	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/aerissecure/excel2csv/workbook"
)

// cellXf returns the cell format record of styleID, nil when out of range.
func cellXf(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Xf {
	xfs := ss.X().CellXfs
	if xfs == nil || int(styleID) >= len(xfs.Xf) {
		return nil
	}
	return xfs.Xf[styleID]
}

// FontProps returns the font record a cell style points at.
func FontProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Font {
	xf := cellXf(ss, styleID)
	if xf == nil || xf.FontIdAttr == nil || ss.X().Fonts == nil {
		return nil
	}
	idx := int(*xf.FontIdAttr)
	if idx >= len(ss.X().Fonts.Font) {
		return nil
	}
	return ss.X().Fonts.Font[idx]
}

// FillProps returns the fill record a cell style points at.
func FillProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Fill {
	xf := cellXf(ss, styleID)
	if xf == nil || xf.FillIdAttr == nil || ss.X().Fills == nil {
		return nil
	}
	idx := int(*xf.FillIdAttr)
	if idx >= len(ss.X().Fills.Fill) {
		return nil
	}
	return ss.X().Fills.Fill[idx]
}

// BorderProps returns the border record a cell style points at.
func BorderProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Border {
	xf := cellXf(ss, styleID)
	if xf == nil || xf.BorderIdAttr == nil || ss.X().Borders == nil {
		return nil
	}
	idx := int(*xf.BorderIdAttr)
	if idx >= len(ss.X().Borders.Border) {
		return nil
	}
	return ss.X().Borders.Border[idx]
}

// ThemeColorToRGB resolves a theme color index (0-based) to an RGB hex
// string such as "FFFFFF". Tint is not applied.
func ThemeColorToRGB(wb *spreadsheet.Workbook, themeIdx int) (string, bool) {
	themes := wb.Themes()
	if len(themes) == 0 || themes[0] == nil || themes[0].ThemeElements == nil {
		return "", false
	}
	scheme := themes[0].ThemeElements.ClrScheme
	if scheme == nil {
		return "", false
	}

	var clr *dml.CT_Color
	switch themeIdx {
	case 0:
		clr = scheme.Dk1
	case 1:
		clr = scheme.Lt1
	case 2:
		clr = scheme.Dk2
	case 3:
		clr = scheme.Lt2
	case 4:
		clr = scheme.Accent1
	case 5:
		clr = scheme.Accent2
	case 6:
		clr = scheme.Accent3
	case 7:
		clr = scheme.Accent4
	case 8:
		clr = scheme.Accent5
	case 9:
		clr = scheme.Accent6
	case 10:
		clr = scheme.Hlink
	case 11:
		clr = scheme.FolHlink
	default:
		return "", false
	}
	if clr == nil {
		return "", false
	}

	if clr.SrgbClr != nil && clr.SrgbClr.ValAttr != "" {
		return clr.SrgbClr.ValAttr, true
	} else if clr.SysClr != nil && clr.SysClr.LastClrAttr != nil {
		return *clr.SysClr.LastClrAttr, true
	}
	return "", false
}

// cellStyle resolves the subset of a cell style the HTML writer uses.
func cellStyle(wb *spreadsheet.Workbook, styleID uint32) workbook.CellStyle {
	var st workbook.CellStyle
	ss := wb.StyleSheet

	if font := FontProps(ss, styleID); font != nil {
		if len(font.Name) > 0 {
			st.FontFamily = font.Name[0].ValAttr
		}
		if len(font.Sz) > 0 {
			st.FontSizePt = font.Sz[0].ValAttr
		}
		if len(font.Color) > 0 && font.Color[0].RgbAttr != nil {
			st.FontColor = normalizeColor(*font.Color[0].RgbAttr)
		}
	}
	if fill := FillProps(ss, styleID); fill != nil && fill.PatternFill != nil && fill.PatternFill.FgColor != nil {
		fg := fill.PatternFill.FgColor
		if fg.RgbAttr != nil {
			st.BackgroundColor = normalizeColor(*fg.RgbAttr)
		} else if fg.ThemeAttr != nil {
			if hex, ok := ThemeColorToRGB(wb, int(*fg.ThemeAttr)); ok {
				st.BackgroundColor = hex
			}
		}
	}
	if border := BorderProps(ss, styleID); border != nil && border.Left != nil && border.Left.Color != nil && border.Left.Color.RgbAttr != nil {
		st.BorderColor = normalizeColor(*border.Left.Color.RgbAttr)
	}

	xf := cellXf(ss, styleID)
	if xf == nil || xf.Alignment == nil {
		return st
	}
	st.HorizontalAlign = xf.Alignment.HorizontalAttr.String()
	switch xf.Alignment.VerticalAttr.String() {
	case "top":
		st.VerticalAlign = "top"
	case "center":
		st.VerticalAlign = "middle"
	default:
		st.VerticalAlign = "bottom"
	}
	if xf.Alignment.WrapTextAttr != nil {
		st.WrapText = *xf.Alignment.WrapTextAttr
	}
	if xf.Alignment.IndentAttr != nil {
		st.IndentPx = float64(*xf.Alignment.IndentAttr) * 8.0
	}
	return st
}

// normalizeColor converts an 8-digit ARGB hex (as used in XLSX) to a
// 6-digit RGB string. Other lengths are returned unchanged.
func normalizeColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}
