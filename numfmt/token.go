package numfmt

import "fmt"

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	TokLiteral TokenKind = iota
	TokDigitRequired      // 0
	TokDigitOptional      // #
	TokDigitSpace         // ?
	TokDecimalPoint       // .
	TokThousands          // ,
	TokPercent            // %
	TokExponentUpper      // E+ E- E0
	TokExponentLower      // e+ e- e0
	TokFractionSlash      // /
	TokDate               // y m d h s AM/PM [h] ...
	TokAt                 // @
	TokQuoted             // "text"
	TokEscaped            // \x
	TokFill               // *x
	TokSkip               // _x
	TokColor              // [Red] [Color12]
	TokCondition          // [>=100]
	TokCurrency           // $ or [$€-407]
	TokGeneral            // General inside a multi-section code
	TokSectionSeparator   // ;
)

var tokenKindNames = [...]string{
	TokLiteral:          "Literal",
	TokDigitRequired:    "DigitRequired",
	TokDigitOptional:    "DigitOptional",
	TokDigitSpace:       "DigitOptionalSpace",
	TokDecimalPoint:     "DecimalPoint",
	TokThousands:        "ThousandsSeparator",
	TokPercent:          "Percent",
	TokExponentUpper:    "ExponentUpper",
	TokExponentLower:    "ExponentLower",
	TokFractionSlash:    "FractionSlash",
	TokDate:             "Date",
	TokAt:               "AtSign",
	TokQuoted:           "QuotedLiteral",
	TokEscaped:          "EscapedChar",
	TokFill:             "RepeatFill",
	TokSkip:             "SkipWidth",
	TokColor:            "ColorTag",
	TokCondition:        "ConditionTag",
	TokCurrency:         "CurrencySymbol",
	TokGeneral:          "General",
	TokSectionSeparator: "SectionSeparator",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// DateKind is the calendar or clock field a date token renders.
type DateKind int

const (
	DateYear DateKind = iota
	DateMonth
	DateDay
	DateHour
	DateMinute
	DateSecond
	DateAMPM
	DateElapsedHour
	DateElapsedMinute
	DateElapsedSecond
	DateFractionalSecond
)

var dateKindNames = [...]string{
	DateYear:             "year",
	DateMonth:            "month",
	DateDay:              "day",
	DateHour:             "hour",
	DateMinute:           "minute",
	DateSecond:           "second",
	DateAMPM:             "am_pm",
	DateElapsedHour:      "elapsed_hour",
	DateElapsedMinute:    "elapsed_minute",
	DateElapsedSecond:    "elapsed_second",
	DateFractionalSecond: "fractional_second",
}

func (k DateKind) String() string {
	if int(k) < len(dateKindNames) {
		return dateKindNames[k]
	}
	return fmt.Sprintf("DateKind(%d)", int(k))
}

// Token is one lexical unit of a format code.
type Token struct {
	Kind TokenKind
	// Text holds the literal character(s), quoted text, color name,
	// currency symbol, the exponent sign or the AM/PM spelling.
	Text string
	// Date and Repeat are set for TokDate.
	Date   DateKind
	Repeat int
	// Cond is set for TokCondition.
	Cond Condition
	// Pos is the byte offset of the token in the format code.
	Pos int
}

func (t Token) String() string {
	switch t.Kind {
	case TokDate:
		return fmt.Sprintf("Date(%s,%d)", t.Date, t.Repeat)
	case TokCondition:
		return fmt.Sprintf("Condition(%s)", t.Cond)
	case TokLiteral, TokQuoted, TokEscaped, TokFill, TokSkip, TokColor, TokCurrency:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	}
	return t.Kind.String()
}

func (t Token) isDigit() bool {
	switch t.Kind {
	case TokDigitRequired, TokDigitOptional, TokDigitSpace:
		return true
	}
	return false
}

// placeholder returns the format character of a digit token.
func (t Token) placeholder() byte {
	switch t.Kind {
	case TokDigitRequired:
		return '0'
	case TokDigitOptional:
		return '#'
	case TokDigitSpace:
		return '?'
	}
	return 0
}

// isLiteral reports whether the token renders as fixed text.
func (t Token) isLiteral() bool {
	switch t.Kind {
	case TokLiteral, TokQuoted, TokEscaped, TokCurrency, TokSkip:
		return true
	}
	return false
}
