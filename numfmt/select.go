package numfmt

// Selection is the outcome of choosing a section for a value.
type Selection struct {
	// Section is nil when the value renders as General.
	Section *Section
	// Index is the position of Section in the code, or -1.
	Index int
	// Minus asks the renderer to prefix a minus sign.
	Minus bool
}

const (
	signPositive = iota
	signNegative
	signZero
)

// selectTable maps the number of numeric sections and the sign class of
// a value to a section index.
var selectTable = [4][3]int{
	1: {signPositive: 0, signNegative: 0, signZero: 0},
	2: {signPositive: 0, signNegative: 1, signZero: 0},
	3: {signPositive: 0, signNegative: 1, signZero: 2},
}

// textPassthrough stands in for a missing text section.
var textPassthrough = &Section{Kind: SectionText, Parts: []Part{TextPlaceholder{}}}

var general = Selection{Index: -1}

// Select picks the section that renders v. Dates are compared as
// serials in opts.Epoch.
func (f *NumberFormat) Select(v Value, opts Options) Selection {
	if f.IsGeneral() || v.Kind() == KindEmpty {
		return general
	}
	numeric, text, textIdx := f.split()

	if !v.IsNumeric() {
		switch {
		case text != nil:
			return Selection{Section: text, Index: textIdx}
		case v.Kind() == KindText:
			return Selection{Section: textPassthrough, Index: -1}
		}
		return general
	}
	if len(numeric) == 0 {
		return general
	}

	x, _ := v.Float(opts.Epoch)
	if conditional(numeric) {
		return selectConditional(numeric, x)
	}

	class := signPositive
	switch {
	case x < 0:
		class = signNegative
	case x == 0:
		class = signZero
	}
	i := selectTable[len(numeric)][class]
	return Selection{Section: numeric[i], Index: i, Minus: x < 0 && len(numeric) == 1}
}

// split separates the numeric sections from the text section: the
// fourth section, or a trailing section with @ and no placeholders.
func (f *NumberFormat) split() (numeric []*Section, text *Section, textIdx int) {
	secs := f.sections
	last := len(secs) - 1
	if len(secs) == maxSections || secs[last].Kind == SectionText {
		return secs[:last], secs[last], last
	}
	return secs, nil, -1
}

func conditional(secs []*Section) bool {
	for _, s := range secs {
		if s.Condition != nil {
			return true
		}
	}
	return false
}

// selectConditional tries conditions in source order, then the first
// section without a condition, then the last section. Sections whose
// condition admits only negative values supply their own sign.
func selectConditional(secs []*Section, x float64) Selection {
	for i, s := range secs {
		if s.Condition != nil && s.Condition.Match(x) {
			return Selection{Section: s, Index: i, Minus: x < 0 && !s.Condition.negativeOnly()}
		}
	}
	for i, s := range secs {
		if s.Condition == nil {
			return Selection{Section: s, Index: i, Minus: x < 0}
		}
	}
	last := len(secs) - 1
	return Selection{Section: secs[last], Index: last, Minus: x < 0}
}
