package numfmt

import (
	"strconv"
	"strings"
)

// decimal is a non-negative number held as significant digits with the
// decimal point after the first point digits, so 0.0123 is {"123", -1}.
// Zero has no digits.
type decimal struct {
	digits string
	point  int
}

// toDecimal converts x, which must be non-negative, rounding to the 15
// significant digits a spreadsheet keeps.
func toDecimal(x float64) decimal {
	if x == 0 {
		return decimal{}
	}
	s := strconv.FormatFloat(x, 'e', 14, 64)
	mant, exp, _ := strings.Cut(s, "e")
	e, _ := strconv.Atoi(exp)
	digits := strings.TrimRight(strings.Replace(mant, ".", "", 1), "0")
	return decimal{digits: digits, point: e + 1}
}

func (d decimal) isZero() bool { return d.digits == "" }

// round rounds half away from zero to frac digits after the point.
// frac may be negative.
func (d decimal) round(frac int) decimal {
	n := d.point + frac
	if n >= len(d.digits) {
		return d
	}
	if n < 0 {
		return decimal{}
	}
	up := d.digits[n] >= '5'
	kept := []byte(d.digits[:n])
	point := d.point
	if up {
		i := len(kept) - 1
		for i >= 0 && kept[i] == '9' {
			kept[i] = '0'
			i--
		}
		if i >= 0 {
			kept[i]++
		} else {
			kept = append([]byte{'1'}, kept...)
			point++
		}
	}
	digits := strings.TrimRight(string(kept), "0")
	if digits == "" {
		return decimal{}
	}
	return decimal{digits: digits, point: point}
}

// roundSignificant rounds to n significant digits.
func (d decimal) roundSignificant(n int) decimal {
	return d.round(n - d.point)
}

// intDigits returns the digits before the point, "" when d < 1.
func (d decimal) intDigits() string {
	if d.point <= 0 || d.isZero() {
		return ""
	}
	if d.point >= len(d.digits) {
		return d.digits + strings.Repeat("0", d.point-len(d.digits))
	}
	return d.digits[:d.point]
}

// fracDigits returns exactly n digits after the point.
func (d decimal) fracDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		j := d.point + i
		if j >= 0 && j < len(d.digits) {
			b[i] = d.digits[j]
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// fracLen is the number of significant digits after the point.
func (d decimal) fracLen() int {
	return max(len(d.digits)-d.point, 0)
}

func (d decimal) float() float64 {
	if d.isZero() {
		return 0
	}
	f, _ := strconv.ParseFloat("0."+d.digits+"e"+strconv.Itoa(d.point), 64)
	return f
}
