package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// General renders v the way the General format does: integers as is,
// other numbers to Options.GeneralDigits significant digits, and
// scientific notation outside [GeneralMin, GeneralMax). Text and error
// values pass through, bools are TRUE or FALSE, Empty is "".
func General(v Value, opts Options) string {
	opts = opts.withDefaults()
	switch v.Kind() {
	case KindEmpty:
		return ""
	case KindText, KindError:
		return v.Text()
	case KindBool:
		if v.Bool() {
			return "TRUE"
		}
		return "FALSE"
	}
	x, _ := v.Float(opts.Epoch)
	return formatGeneral(x, opts)
}

func formatGeneral(x float64, opts Options) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "#NUM!"
	}
	if x == 0 {
		return "0"
	}
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	d := toDecimal(x)
	if x < opts.GeneralMin || x >= opts.GeneralMax {
		return sign + generalScientific(d, opts)
	}
	d = d.roundSignificant(opts.GeneralDigits)
	if d.float() >= opts.GeneralMax {
		return sign + generalScientific(d, opts)
	}

	var b strings.Builder
	b.WriteString(sign)
	if ip := d.intDigits(); ip != "" {
		b.WriteString(ip)
	} else {
		b.WriteByte('0')
	}
	if n := d.fracLen(); n > 0 {
		b.WriteRune(opts.DecimalSeparator)
		b.WriteString(d.fracDigits(n))
	}
	return b.String()
}

// generalScientific renders d as 1.23457E+11: six significant digits,
// trailing zeros trimmed, at least two exponent digits.
func generalScientific(d decimal, opts Options) string {
	exp := d.point - 1
	m := decimal{digits: d.digits, point: 1}.round(5)
	if m.point > 1 {
		m.point--
		exp++
	}

	var b strings.Builder
	b.WriteString(m.intDigits())
	if n := m.fracLen(); n > 0 {
		b.WriteRune(opts.DecimalSeparator)
		b.WriteString(m.fracDigits(n))
	}
	b.WriteByte('E')
	if exp < 0 {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
	}
	e := strconv.Itoa(abs(exp))
	if len(e) < 2 {
		b.WriteByte('0')
	}
	b.WriteString(e)
	return b.String()
}
