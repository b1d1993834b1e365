package numfmt

import (
	"fmt"
	"strings"
)

// Part is one render unit of a section, in source order.
type Part interface {
	part()
}

// Literal is fixed text. Currency marks a currency symbol, which
// Options.CurrencySymbol may replace when it is a bare $.
type Literal struct {
	Text     string
	Currency bool
}

// Slot is one position of a digit run: either a placeholder (0 # ?) or
// literal text embedded between placeholders, as in "000-00-0000".
type Slot struct {
	Placeholder byte
	Text        string
}

// DigitGroup is a run of digit placeholders with an optional decimal
// point.
type DigitGroup struct {
	Integer  []Slot
	Fraction []Slot
	Decimal  bool
	Grouped  bool
}

// Scientific renders the mantissa in Mantissa and an exponent of at
// least ExponentDigits digits.
type Scientific struct {
	Mantissa       DigitGroup
	ExponentDigits int
	ForceSign      bool
	Upper          bool
}

// PercentMarker is a literal % whose section is scaled by 100.
type PercentMarker struct{}

// Fraction renders numerator/denominator, optionally after a whole
// number part. FixedDenominator is 0 unless the code spells out a
// literal denominator such as "?/8".
type Fraction struct {
	Whole            *DigitGroup
	Separator        string
	Numerator        []byte
	Denominator      []byte
	FixedDenominator int
}

// DateTimeToken renders one calendar or clock field.
type DateTimeToken struct {
	Kind   DateKind
	Repeat int
	// Text keeps the AM/PM spelling.
	Text string
}

// TextPlaceholder is @.
type TextPlaceholder struct{}

// ColorDirective and ConditionDirective render nothing; the section
// carries the values they set.
type ColorDirective struct{ Name string }

type ConditionDirective struct{ Condition Condition }

// Fill is *x, Skip is _x.
type Fill struct{ Char string }

type Skip struct{ Char string }

// GeneralPart is an embedded General rendering, as in "General;-General".
type GeneralPart struct{}

func (Literal) part()            {}
func (DigitGroup) part()         {}
func (Scientific) part()         {}
func (PercentMarker) part()      {}
func (Fraction) part()           {}
func (DateTimeToken) part()      {}
func (TextPlaceholder) part()    {}
func (ColorDirective) part()     {}
func (ConditionDirective) part() {}
func (Fill) part()               {}
func (Skip) part()               {}
func (GeneralPart) part()        {}

// SectionKind classifies what a section renders.
type SectionKind int

const (
	// SectionLiteral has no placeholders; it renders its literals.
	SectionLiteral SectionKind = iota
	SectionNumber
	SectionDate
	SectionText
	// SectionGeneral renders General output, possibly decorated.
	SectionGeneral
)

var sectionKindNames = [...]string{
	SectionLiteral: "literal",
	SectionNumber:  "number",
	SectionDate:    "date",
	SectionText:    "text",
	SectionGeneral: "general",
}

func (k SectionKind) String() string {
	if int(k) < len(sectionKindNames) {
		return sectionKindNames[k]
	}
	return fmt.Sprintf("SectionKind(%d)", int(k))
}

// Section is one ;-separated sub-format.
type Section struct {
	Parts     []Part
	Kind      SectionKind
	Color     string
	Condition *Condition
	// Percent is the number of % signs; each scales by 100.
	Percent int
	// Scale is the number of trailing commas; each divides by 1000.
	Scale int

	hour12        bool
	fracSecDigits int
}

// NumberFormat is a parsed format code. It is immutable and safe for
// concurrent use. A NumberFormat with no sections is General.
type NumberFormat struct {
	code     string
	sections []*Section
}

// IsGeneral reports whether f is the General sentinel.
func (f *NumberFormat) IsGeneral() bool { return len(f.sections) == 0 }

// Sections returns the parsed sections in source order.
func (f *NumberFormat) Sections() []*Section { return f.sections }

// IsDate reports whether the first section renders dates or times.
func (f *NumberFormat) IsDate() bool {
	return len(f.sections) > 0 && f.sections[0].Kind == SectionDate
}

func (f *NumberFormat) String() string {
	if f.IsGeneral() {
		return "General"
	}
	return f.code
}

func (s *Section) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[", s.Kind)
	for i, p := range s.Parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%T%+v", p, p)
	}
	b.WriteByte(']')
	return b.String()
}
