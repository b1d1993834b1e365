package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// Render formats v with the section alone. The sign of a negative
// number is not shown: sections carry their own sign literals, and
// Format decides when a minus has to be added.
func (s *Section) Render(v Value, opts Options) (string, error) {
	return s.render(v, false, opts.withDefaults())
}

func (s *Section) render(v Value, minus bool, opts Options) (string, error) {
	switch s.Kind {
	case SectionNumber, SectionDate:
		if !v.IsNumeric() {
			return "", &RenderError{Section: s.Kind, Value: v.Kind()}
		}
	case SectionText:
		if v.IsNumeric() {
			return "", &RenderError{Section: s.Kind, Value: v.Kind()}
		}
	}

	x, _ := v.Float(opts.Epoch)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "#NUM!", nil
	}
	if s.Kind == SectionDate {
		if x < 0 || x >= maxSerial {
			return formatGeneral(x, opts), nil
		}
		// rounding to the displayed precision can still carry past the limit
		f := splitSerial(x, s.fracSecDigits, opts.Epoch)
		if f.days >= maxSerial {
			return formatGeneral(x, opts), nil
		}
		return s.renderDate(x, f, opts), nil
	}

	x = math.Abs(x)
	for range s.Percent {
		x *= 100
	}
	for range s.Scale {
		x /= 1000
	}

	var b strings.Builder
	fill := -1
	var fillChar string
	for _, p := range s.Parts {
		switch p := p.(type) {
		case Literal:
			if p.Currency && p.Text == "$" && opts.CurrencySymbol != "" {
				b.WriteString(opts.CurrencySymbol)
				continue
			}
			b.WriteString(p.Text)
		case PercentMarker:
			b.WriteByte('%')
		case Skip:
			b.WriteByte(' ')
		case Fill:
			if fill < 0 {
				fill, fillChar = b.Len(), p.Char
			}
		case DigitGroup:
			renderGroup(&b, p, toDecimal(x), opts)
		case Scientific:
			renderScientific(&b, p, x, opts)
		case Fraction:
			renderFraction(&b, p, x, opts)
		case GeneralPart, TextPlaceholder:
			if v.IsNumeric() {
				b.WriteString(formatGeneral(x, opts))
			} else {
				b.WriteString(textOf(v, opts))
			}
		}
	}

	out := b.String()
	if fill >= 0 && opts.FillWidth > 0 {
		out = padFill(out, fill, fillChar, opts.FillWidth-minusWidth(minus))
	}
	if minus {
		out = "-" + out
	}
	return out, nil
}

func minusWidth(minus bool) int {
	if minus {
		return 1
	}
	return 0
}

// padFill repeats char at byte offset at until out spans width display
// columns.
func padFill(out string, at int, char string, width int) string {
	cw := uniseg.StringWidth(char)
	if cw <= 0 {
		return out
	}
	n := (width - uniseg.StringWidth(out)) / cw
	if n <= 0 {
		return out
	}
	return out[:at] + strings.Repeat(char, n) + out[at:]
}

func textOf(v Value, opts Options) string {
	if v.Kind() == KindText {
		return v.Text()
	}
	return General(v, opts)
}

func placeholders(slots []Slot) int {
	n := 0
	for _, sl := range slots {
		if sl.Placeholder != 0 {
			n++
		}
	}
	return n
}

// renderGroup writes d through the placeholders of g. d is rounded to
// the fraction placeholders first.
func renderGroup(b *strings.Builder, g DigitGroup, d decimal, opts Options) {
	fracN := placeholders(g.Fraction)
	d = d.round(fracN)

	sep := ""
	if g.Grouped {
		sep = string(opts.ThousandsSeparator)
	}
	b.WriteString(integerDigits(g.Integer, d.intDigits(), sep))
	if g.Decimal {
		b.WriteRune(opts.DecimalSeparator)
	}
	b.WriteString(fractionDigits(g.Fraction, d.fracDigits(fracN)))
}

// integerDigits aligns digits right to left under the placeholders. The
// leftmost placeholder takes any digits that do not fit.
func integerDigits(slots []Slot, digits, sep string) string {
	leftmost := -1
	for i, sl := range slots {
		if sl.Placeholder != 0 {
			leftmost = i
			break
		}
	}
	if leftmost < 0 {
		var b strings.Builder
		b.WriteString(digits)
		for _, sl := range slots {
			b.WriteString(sl.Text)
		}
		return b.String()
	}

	var rev []string
	next := len(digits) - 1
	pos := 0
	put := func(c string) {
		if sep != "" && pos > 0 && pos%3 == 0 && c != " " {
			rev = append(rev, sep)
		}
		rev = append(rev, c)
		pos++
	}
	for i := len(slots) - 1; i >= 0; i-- {
		sl := slots[i]
		if sl.Placeholder == 0 {
			rev = append(rev, sl.Text)
			continue
		}
		switch {
		case next >= 0:
			put(digits[next : next+1])
			next--
		case sl.Placeholder == '0':
			put("0")
		case sl.Placeholder == '?':
			put(" ")
		}
		if i == leftmost {
			for ; next >= 0; next-- {
				put(digits[next : next+1])
			}
		}
	}

	var b strings.Builder
	for i := len(rev) - 1; i >= 0; i-- {
		b.WriteString(rev[i])
	}
	return b.String()
}

// fractionDigits writes digits left to right; trailing zeros under # are
// dropped and under ? become spaces.
func fractionDigits(slots []Slot, digits string) string {
	out := make([]string, len(slots))
	j := 0
	for i, sl := range slots {
		if sl.Placeholder == 0 {
			out[i] = sl.Text
			continue
		}
		out[i] = digits[j : j+1]
		j++
	}
	for i := len(slots) - 1; i >= 0; i-- {
		sl := slots[i]
		if sl.Placeholder == 0 {
			continue
		}
		if sl.Placeholder == '0' || out[i] != "0" {
			break
		}
		if sl.Placeholder == '?' {
			out[i] = " "
		} else {
			out[i] = ""
		}
	}
	return strings.Join(out, "")
}

func renderScientific(b *strings.Builder, sc Scientific, x float64, opts Options) {
	intN := placeholders(sc.Mantissa.Integer)
	fracN := placeholders(sc.Mantissa.Fraction)
	engineering := intN > 1 && hasPlaceholder(sc.Mantissa.Integer, '#')

	d := toDecimal(x)
	exp := 0
	if !d.isZero() {
		switch {
		case engineering:
			exp = floorDiv(d.point-1, intN) * intN
		case intN == 0:
			exp = d.point
		default:
			exp = d.point - max(intN, 1)
		}
		m := decimal{digits: d.digits, point: d.point - exp}
		want := m.point
		m = m.round(fracN)
		if m.point > want {
			// rounding carried into a new digit
			step := 1
			if engineering {
				if m.point <= intN {
					step = 0
				} else {
					step = intN
				}
			}
			m.point -= step
			exp += step
		}
		d = m
	}

	renderGroup(b, sc.Mantissa, d, opts)
	if sc.Upper {
		b.WriteByte('E')
	} else {
		b.WriteByte('e')
	}
	switch {
	case exp < 0:
		b.WriteByte('-')
	case sc.ForceSign:
		b.WriteByte('+')
	}
	e := strconv.Itoa(abs(exp))
	if pad := sc.ExponentDigits - len(e); pad > 0 {
		b.WriteString(strings.Repeat("0", pad))
	}
	b.WriteString(e)
}

func hasPlaceholder(slots []Slot, c byte) bool {
	for _, sl := range slots {
		if sl.Placeholder == c {
			return true
		}
	}
	return false
}

func renderFraction(b *strings.Builder, fr Fraction, x float64, opts Options) {
	maxDen := int(math.Pow10(len(fr.Denominator))) - 1

	whole, rest := 0.0, x
	if fr.Whole != nil {
		whole = math.Floor(x)
		rest = x - whole
	}

	var num, den int
	if fr.FixedDenominator > 0 {
		den = fr.FixedDenominator
		num = int(math.Floor(rest*float64(den) + 0.5))
	} else {
		num, den = approximate(rest, maxDen)
	}
	if fr.Whole != nil && num == den {
		whole++
		num = 0
	}

	if fr.Whole != nil {
		var ws strings.Builder
		renderGroup(&ws, *fr.Whole, toDecimal(whole), opts)
		w := ws.String()
		if num == 0 {
			if strings.TrimSpace(w) == "" {
				w = "0"
			}
			b.WriteString(w)
			b.WriteString(strings.Repeat(" ", len(fr.Separator)+fractionWidth(fr, den)))
			return
		}
		b.WriteString(w)
		if strings.TrimSpace(w) != "" {
			b.WriteString(fr.Separator)
		}
	}

	b.WriteString(integerDigits(byteSlots(fr.Numerator), strconv.Itoa(num), ""))
	b.WriteByte('/')
	if fr.FixedDenominator > 0 {
		b.WriteString(strconv.Itoa(den))
		return
	}
	b.WriteString(denominatorDigits(fr.Denominator, strconv.Itoa(den)))
}

func fractionWidth(fr Fraction, den int) int {
	n := len(fr.Numerator) + 1
	if fr.FixedDenominator > 0 {
		return n + len(strconv.Itoa(den))
	}
	return n + len(fr.Denominator)
}

func byteSlots(ph []byte) []Slot {
	slots := make([]Slot, len(ph))
	for i, c := range ph {
		slots[i] = Slot{Placeholder: c}
	}
	return slots
}

// denominatorDigits left-aligns the denominator: ? pads with spaces on
// the right, 0 pads with zeros on the left.
func denominatorDigits(ph []byte, digits string) string {
	if len(digits) >= len(ph) {
		return digits
	}
	var left, right strings.Builder
	for _, c := range ph[len(digits):] {
		switch c {
		case '?':
			right.WriteByte(' ')
		case '0':
			left.WriteByte('0')
		}
	}
	return left.String() + digits + right.String()
}

// approximate returns the fraction closest to x with a denominator of
// at most maxDen, from the continued fraction convergents of x and the
// best semiconvergent at the bound.
func approximate(x float64, maxDen int) (num, den int) {
	if maxDen < 1 {
		maxDen = 1
	}
	if x >= 1<<52 {
		return int(math.Round(x)), 1
	}
	p0, q0, p1, q1 := 0, 1, 1, 0
	f := x
	for range 64 {
		a := math.Floor(f)
		p2, q2 := int(a)*p1+p0, int(a)*q1+q0
		if q2 > maxDen {
			k := (maxDen - q0) / q1
			pk, qk := k*p1+p0, k*q1+q0
			if math.Abs(x-float64(pk)/float64(qk)) < math.Abs(x-float64(p1)/float64(q1)) {
				return pk, qk
			}
			return p1, q1
		}
		p0, q0, p1, q1 = p1, q1, p2, q2
		if f-a < 1e-12 {
			break
		}
		f = 1 / (f - a)
	}
	return p1, q1
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
