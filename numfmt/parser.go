package numfmt

import (
	"strconv"
	"strings"
)

const maxSections = 4

// Parse parses a format code into a NumberFormat. "General" in any case,
// with surrounding whitespace, yields the General sentinel without
// lexing.
func Parse(code string) (*NumberFormat, error) {
	trimmed := strings.TrimSpace(code)
	if strings.EqualFold(trimmed, "General") {
		return &NumberFormat{code: trimmed}, nil
	}
	if trimmed == "" {
		return nil, &ParseError{Code: code, Err: ErrEmptyFormat}
	}

	toks, err := Tokenize(code)
	if err != nil {
		return nil, err
	}

	var segments [][]Token
	start := 0
	for i, t := range toks {
		if t.Kind != TokSectionSeparator {
			continue
		}
		segments = append(segments, toks[start:i])
		start = i + 1
		if len(segments) == maxSections {
			return nil, &ParseError{Code: code, Pos: t.Pos, Err: ErrTooManySections}
		}
	}
	segments = append(segments, toks[start:])

	f := &NumberFormat{code: code}
	for _, seg := range segments {
		s, err := parseSection(seg)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Code = code
			}
			return nil, err
		}
		f.sections = append(f.sections, s)
	}
	return f, nil
}

func parseSection(toks []Token) (*Section, error) {
	s := &Section{}

	var hasDate, hasDigit, hasAt, hasGeneral, hasVisible bool
	for _, t := range toks {
		switch {
		case t.Kind == TokDate:
			hasDate = true
		case t.isDigit():
			hasDigit = true
		case t.Kind == TokAt:
			hasAt = true
		case t.Kind == TokGeneral:
			hasGeneral = true
		}
		switch t.Kind {
		case TokColor:
			if s.Color == "" {
				s.Color = t.Text
			}
		case TokCondition:
			if s.Condition == nil {
				c := t.Cond
				s.Condition = &c
			}
		default:
			hasVisible = true
		}
	}
	if hasDate {
		toks = dateLetters(toks)
		for _, t := range toks {
			if t.isDigit() {
				return nil, &ParseError{Pos: t.Pos, Err: ErrConflictingDateAndNumber}
			}
		}
	}

	switch {
	case hasDate:
		s.Kind = SectionDate
		s.Parts = s.dateParts(toks)
	case hasDigit:
		s.Kind = SectionNumber
		s.Parts = s.numberParts(toks)
	case hasGeneral:
		s.Kind = SectionGeneral
		s.Parts = s.plainParts(toks)
	case hasAt:
		s.Kind = SectionText
		s.Parts = s.plainParts(toks)
	case len(toks) > 0 && !hasVisible:
		// only [Color] and [condition] tags
		s.Kind = SectionGeneral
		s.Parts = append(s.plainParts(toks), GeneralPart{})
	default:
		s.Kind = SectionLiteral
		s.Parts = s.plainParts(toks)
	}
	return s, nil
}

// dateLetters rewrites a stray e or E in a date section as a four digit
// year; any exponent sign that came with it stays as a literal.
func dateLetters(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		switch {
		case t.Kind == TokExponentUpper || t.Kind == TokExponentLower:
			out = append(out, Token{Kind: TokDate, Date: DateYear, Repeat: 4, Pos: t.Pos})
			if t.Text != "" {
				out = append(out, Token{Kind: TokLiteral, Text: t.Text, Pos: t.Pos + 1})
			}
		case t.Kind == TokLiteral && (t.Text == "e" || t.Text == "E"):
			out = append(out, Token{Kind: TokDate, Date: DateYear, Repeat: 4, Pos: t.Pos})
		default:
			out = append(out, t)
		}
	}
	return out
}

// literalPart converts any token that is not a placeholder into a part.
func (s *Section) literalPart(t Token) Part {
	switch t.Kind {
	case TokColor:
		return ColorDirective{Name: t.Text}
	case TokCondition:
		return ConditionDirective{Condition: t.Cond}
	case TokFill:
		return Fill{Char: t.Text}
	case TokSkip:
		return Skip{Char: t.Text}
	case TokCurrency:
		return Literal{Text: t.Text, Currency: true}
	case TokAt:
		return TextPlaceholder{}
	case TokGeneral:
		return GeneralPart{}
	case TokPercent:
		s.Percent++
		return PercentMarker{}
	}
	return Literal{Text: tokenText(t)}
}

// tokenText is the text a token shows when it is taken literally.
func tokenText(t Token) string {
	switch t.Kind {
	case TokDecimalPoint:
		return "."
	case TokThousands:
		return ","
	case TokFractionSlash:
		return "/"
	case TokExponentUpper:
		return "E" + t.Text
	case TokExponentLower:
		return "e" + t.Text
	case TokDigitRequired, TokDigitOptional, TokDigitSpace:
		return string(t.placeholder())
	}
	return t.Text
}

func (s *Section) plainParts(toks []Token) []Part {
	parts := make([]Part, 0, len(toks))
	for _, t := range toks {
		parts = appendPart(parts, s.literalPart(t))
	}
	return parts
}

// appendPart merges adjacent plain literals.
func appendPart(parts []Part, p Part) []Part {
	if lit, ok := p.(Literal); ok && !lit.Currency && len(parts) > 0 {
		if prev, ok := parts[len(parts)-1].(Literal); ok && !prev.Currency {
			parts[len(parts)-1] = Literal{Text: prev.Text + lit.Text}
			return parts
		}
	}
	return append(parts, p)
}

func (s *Section) dateParts(toks []Token) []Part {
	parts := make([]Part, 0, len(toks))
	for _, t := range toks {
		if t.Kind != TokDate {
			if t.Kind == TokPercent {
				parts = appendPart(parts, Literal{Text: "%"})
				continue
			}
			parts = appendPart(parts, s.literalPart(t))
			continue
		}
		switch t.Date {
		case DateAMPM:
			s.hour12 = true
		case DateFractionalSecond:
			s.fracSecDigits = max(s.fracSecDigits, t.Repeat)
		}
		parts = append(parts, DateTimeToken{Kind: t.Date, Repeat: t.Repeat, Text: t.Text})
	}
	return parts
}

func (s *Section) numberParts(toks []Token) []Part {
	if slash, ok := findFraction(toks); ok {
		return s.fractionParts(toks, slash)
	}

	first, last := -1, -1
	for i, t := range toks {
		if t.isDigit() {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	// exponent marker with digits after the first placeholder
	exp := -1
	for i := first + 1; i < len(toks); i++ {
		if k := toks[i].Kind; (k == TokExponentUpper || k == TokExponentLower) && i+1 < len(toks) && toks[i+1].isDigit() {
			exp = i
			break
		}
	}

	mantEnd := last
	if exp >= 0 {
		mantEnd = exp - 1
		for mantEnd > first && !toks[mantEnd].isDigit() {
			mantEnd--
		}
	}

	start, end := first, mantEnd
	if start > 0 && toks[start-1].Kind == TokDecimalPoint {
		start--
	}
	if end+1 < len(toks) && toks[end+1].Kind == TokDecimalPoint && !hasKind(toks[start:end+1], TokDecimalPoint) {
		end++
	}
	for end+1 < len(toks) && toks[end+1].Kind == TokThousands {
		end++
	}

	var parts []Part
	for _, t := range toks[:start] {
		parts = appendPart(parts, s.literalPart(t))
	}
	group := s.digitGroup(toks[start : end+1])

	rest := toks[end+1:]
	if exp >= 0 {
		et := toks[exp]
		sci := Scientific{
			Mantissa:  group,
			ForceSign: et.Text == "+",
			Upper:     et.Kind == TokExponentUpper,
		}
		// literals between the mantissa and the marker stay in place
		for _, t := range toks[end+1 : exp] {
			parts = appendPart(parts, s.literalPart(t))
		}
		i := exp + 1
		for i < len(toks) && toks[i].isDigit() {
			sci.ExponentDigits++
			i++
		}
		parts = append(parts, sci)
		rest = toks[i:]
	} else {
		parts = append(parts, group)
	}
	for _, t := range rest {
		parts = appendPart(parts, s.literalPart(t))
	}
	return parts
}

// digitGroup builds a DigitGroup from the tokens between the first and
// last placeholder, counting trailing commas into s.Scale.
func (s *Section) digitGroup(toks []Token) DigitGroup {
	var g DigitGroup
	point := -1
	for i, t := range toks {
		if t.Kind == TokDecimalPoint {
			point = i
			g.Decimal = true
			break
		}
	}
	intToks, fracToks := toks, []Token(nil)
	if point >= 0 {
		intToks, fracToks = toks[:point], toks[point+1:]
	}

	g.Integer = s.slots(intToks, &g.Grouped)
	var ignored bool
	g.Fraction = s.slots(fracToks, &ignored)
	return g
}

func (s *Section) slots(toks []Token, grouped *bool) []Slot {
	var out []Slot
	for i, t := range toks {
		switch {
		case t.isDigit():
			out = append(out, Slot{Placeholder: t.placeholder()})
		case t.Kind == TokThousands:
			if hasDigitAfter(toks, i) {
				*grouped = true
			} else {
				s.Scale++
			}
		case t.Kind == TokPercent:
			s.Percent++
			out = append(out, Slot{Text: "%"})
		case t.Kind == TokFill || t.Kind == TokColor || t.Kind == TokCondition:
		case t.Kind == TokSkip:
			out = append(out, Slot{Text: " "})
		default:
			out = append(out, Slot{Text: tokenText(t)})
		}
	}
	return out
}

// findFraction returns the index of a / that has a placeholder before
// it and a placeholder or literal digit after it.
func findFraction(toks []Token) (int, bool) {
	for i, t := range toks {
		if t.Kind != TokFractionSlash || i == 0 || !toks[i-1].isDigit() {
			continue
		}
		if i+1 < len(toks) && (toks[i+1].isDigit() || isLiteralDigit(toks[i+1])) {
			return i, true
		}
	}
	return 0, false
}

func isLiteralDigit(t Token) bool {
	return t.Kind == TokLiteral && len(t.Text) == 1 && t.Text[0] >= '1' && t.Text[0] <= '9'
}

func (s *Section) fractionParts(toks []Token, slash int) []Part {
	var fr Fraction

	// denominator
	end := slash + 1
	if isLiteralDigit(toks[end]) {
		var digits strings.Builder
		for end < len(toks) && (isLiteralDigit(toks[end]) || toks[end].Kind == TokDigitRequired) {
			digits.WriteString(tokenText(toks[end]))
			end++
		}
		fr.FixedDenominator, _ = strconv.Atoi(digits.String())
	} else {
		for end < len(toks) && toks[end].isDigit() {
			fr.Denominator = append(fr.Denominator, toks[end].placeholder())
			end++
		}
	}

	// numerator
	numStart := slash
	for numStart > 0 && toks[numStart-1].isDigit() {
		numStart--
	}
	for _, t := range toks[numStart:slash] {
		fr.Numerator = append(fr.Numerator, t.placeholder())
	}

	// whole part, separated from the numerator by literals
	prefixEnd := numStart
	wholeEnd := numStart - 1
	for wholeEnd >= 0 && !toks[wholeEnd].isDigit() {
		wholeEnd--
	}
	if wholeEnd >= 0 {
		wholeStart := 0
		for !toks[wholeStart].isDigit() {
			wholeStart++
		}
		var sep strings.Builder
		for _, t := range toks[wholeEnd+1 : numStart] {
			if t.Kind == TokSkip {
				sep.WriteByte(' ')
				continue
			}
			sep.WriteString(tokenText(t))
		}
		g := s.digitGroup(toks[wholeStart : wholeEnd+1])
		fr.Whole = &g
		fr.Separator = sep.String()
		prefixEnd = wholeStart
	}

	var parts []Part
	for _, t := range toks[:prefixEnd] {
		parts = appendPart(parts, s.literalPart(t))
	}
	parts = append(parts, fr)
	for _, t := range toks[end:] {
		parts = appendPart(parts, s.literalPart(t))
	}
	return parts
}

func hasKind(toks []Token, kind TokenKind) bool {
	for _, t := range toks {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

func hasDigitAfter(toks []Token, i int) bool {
	for _, t := range toks[i+1:] {
		if t.isDigit() {
			return true
		}
	}
	return false
}
