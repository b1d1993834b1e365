package numfmt

import (
	"strconv"
	"strings"
)

var namedColors = map[string]string{
	"black":   "000000",
	"blue":    "0000FF",
	"cyan":    "00FFFF",
	"green":   "00FF00",
	"magenta": "FF00FF",
	"red":     "FF0000",
	"white":   "FFFFFF",
	"yellow":  "FFFF00",
}

// palette is the default 56 color indexed palette; [ColorN] is entry N.
var palette = [56]string{
	"000000", "FFFFFF", "FF0000", "00FF00", "0000FF", "FFFF00", "FF00FF", "00FFFF",
	"800000", "008000", "000080", "808000", "800080", "008080", "C0C0C0", "808080",
	"9999FF", "993366", "FFFFCC", "CCFFFF", "660066", "FF8080", "0066CC", "CCCCFF",
	"000080", "FF00FF", "FFFF00", "00FFFF", "800080", "800000", "008080", "0000FF",
	"00CCFF", "CCFFFF", "CCFFCC", "FFFF99", "99CCFF", "FF99CC", "CC99FF", "FFCC99",
	"3366FF", "33CCCC", "99CC00", "FFCC00", "FF9900", "FF6600", "666699", "969696",
	"003366", "339966", "003300", "333300", "993300", "993366", "333399", "333333",
}

// colorName normalizes the content of a color tag: "RED" becomes "Red",
// "color 5" becomes "Color5".
func colorName(tag string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(tag))
	if _, ok := namedColors[lower]; ok {
		return strings.ToUpper(lower[:1]) + lower[1:], true
	}
	if n, ok := strings.CutPrefix(lower, "color"); ok {
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err == nil && i >= 1 && i <= len(palette) {
			return "Color" + strconv.Itoa(i), true
		}
	}
	return "", false
}

// ColorRGB returns the RRGGBB hex value of a color name produced by the
// parser.
func ColorRGB(name string) (string, bool) {
	lower := strings.ToLower(name)
	if rgb, ok := namedColors[lower]; ok {
		return rgb, true
	}
	if n, ok := strings.CutPrefix(lower, "color"); ok {
		if i, err := strconv.Atoi(n); err == nil && i >= 1 && i <= len(palette) {
			return palette[i-1], true
		}
	}
	return "", false
}
