package numfmt

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type lexMode int

const (
	modeCode lexMode = iota
	modeTag          // inside [...]
)

type lexer struct {
	code     string
	pos      int
	mode     lexMode
	tagStart int
	toks     []Token
}

// Tokenize splits a format code into tokens in a single forward pass.
// Runs of the same date letter are coalesced into one date token
// carrying the run length, so "mmmm" is one month token with Repeat 4.
//
// Tokenize does not intercept the General keyword; Parse does that
// before lexing.
func Tokenize(code string) ([]Token, error) {
	l := &lexer{code: code}
	if err := l.run(); err != nil {
		return nil, err
	}
	resolveMinutes(l.toks)
	return l.toks, nil
}

func (l *lexer) run() error {
	for l.pos < len(l.code) {
		if l.mode == modeTag {
			end := strings.IndexByte(l.code[l.pos:], ']')
			if end < 0 {
				return &ParseError{Code: l.code, Pos: l.tagStart, Err: ErrUnterminatedBracket}
			}
			l.tag(l.tagStart, l.code[l.pos:l.pos+end])
			l.pos += end + 1
			l.mode = modeCode
			continue
		}
		if err := l.next(); err != nil {
			return err
		}
	}
	if l.mode == modeTag {
		return &ParseError{Code: l.code, Pos: l.tagStart, Err: ErrUnterminatedBracket}
	}
	return nil
}

func (l *lexer) emit(kind TokenKind, text string, start int) {
	l.toks = append(l.toks, Token{Kind: kind, Text: text, Pos: start})
}

func (l *lexer) emitDate(kind DateKind, repeat int, text string, start int) {
	l.toks = append(l.toks, Token{Kind: TokDate, Date: kind, Repeat: repeat, Text: text, Pos: start})
}

// peek returns the byte at offset n past the current position, or 0.
func (l *lexer) peek(n int) byte {
	if l.pos+n < len(l.code) {
		return l.code[l.pos+n]
	}
	return 0
}

func (l *lexer) next() error {
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.code[l.pos:])
	l.pos += size

	switch r {
	case '[':
		l.mode = modeTag
		l.tagStart = start
	case '"':
		end := strings.IndexByte(l.code[l.pos:], '"')
		if end < 0 {
			return &ParseError{Code: l.code, Pos: start, Err: ErrUnterminatedQuote}
		}
		l.emit(TokQuoted, l.code[l.pos:l.pos+end], start)
		l.pos += end + 1
	case '\\':
		if l.pos >= len(l.code) {
			return &ParseError{Code: l.code, Pos: start, Err: ErrTrailingEscape}
		}
		r2, size2 := utf8.DecodeRuneInString(l.code[l.pos:])
		l.pos += size2
		l.emit(TokEscaped, string(r2), start)
	case '*', '_':
		if l.pos >= len(l.code) {
			l.emit(TokLiteral, string(r), start)
			break
		}
		r2, size2 := utf8.DecodeRuneInString(l.code[l.pos:])
		l.pos += size2
		if r == '*' {
			l.emit(TokFill, string(r2), start)
		} else {
			l.emit(TokSkip, string(r2), start)
		}
	case ';':
		l.emit(TokSectionSeparator, ";", start)
	case '0':
		l.emit(TokDigitRequired, "0", start)
	case '#':
		l.emit(TokDigitOptional, "#", start)
	case '?':
		l.emit(TokDigitSpace, "?", start)
	case '.':
		if l.afterSeconds() && l.peek(0) == '0' {
			n := 0
			for l.peek(0) == '0' {
				l.pos++
				n++
			}
			l.emitDate(DateFractionalSecond, n, "", start)
			break
		}
		l.emit(TokDecimalPoint, ".", start)
	case ',':
		l.emit(TokThousands, ",", start)
	case '%':
		l.emit(TokPercent, "%", start)
	case '/':
		l.emit(TokFractionSlash, "/", start)
	case '@':
		l.emit(TokAt, "@", start)
	case '$':
		l.emit(TokCurrency, "$", start)
	case 'E', 'e':
		kind := TokExponentUpper
		if r == 'e' {
			kind = TokExponentLower
		}
		switch c := l.peek(0); c {
		case '+', '-':
			l.pos++
			l.emit(kind, string(c), start)
		case '0', '#', '?':
			l.emit(kind, "", start)
		default:
			l.emit(TokLiteral, string(r), start)
		}
	case 'G', 'g':
		if hasPrefixFold(l.code[start:], "General") {
			l.pos = start + len("General")
			l.emit(TokGeneral, l.code[start:l.pos], start)
			break
		}
		l.emit(TokLiteral, string(r), start)
	case 'A', 'a':
		switch {
		case hasPrefixFold(l.code[start:], "AM/PM"):
			l.pos = start + len("AM/PM")
			l.emitDate(DateAMPM, 1, l.code[start:l.pos], start)
		case hasPrefixFold(l.code[start:], "A/P"):
			l.pos = start + len("A/P")
			l.emitDate(DateAMPM, 1, l.code[start:l.pos], start)
		default:
			l.emit(TokLiteral, string(r), start)
		}
	default:
		kind, ok := dateLetter(r)
		if !ok {
			l.emit(TokLiteral, string(r), start)
			break
		}
		n := 1
		for l.pos < len(l.code) && lowerASCII(l.code[l.pos]) == lowerASCII(byte(r)) {
			l.pos++
			n++
		}
		l.emitDate(kind, n, "", start)
	}
	return nil
}

// afterSeconds reports whether the previous token is a seconds field,
// which turns a following ".0" into fractional seconds.
func (l *lexer) afterSeconds() bool {
	if len(l.toks) == 0 {
		return false
	}
	last := l.toks[len(l.toks)-1]
	return last.Kind == TokDate && (last.Date == DateSecond || last.Date == DateElapsedSecond)
}

// tag classifies the verbatim content of a [...] tag.
func (l *lexer) tag(start int, content string) {
	switch {
	case content == "":
	case strings.ContainsAny(content[:1], "<>="):
		if c, ok := parseCondition(content); ok {
			l.toks = append(l.toks, Token{Kind: TokCondition, Text: content, Cond: c, Pos: start})
		}
	case content[0] == '$':
		// [$€-407]: currency symbol, then an optional locale id
		sym := content[1:]
		if i := strings.IndexByte(sym, '-'); i >= 0 {
			sym = sym[:i]
		}
		if sym != "" {
			l.emit(TokCurrency, sym, start)
		}
	default:
		if kind, ok := elapsedTag(content); ok {
			l.emitDate(kind, len(content), "", start)
			return
		}
		if name, ok := colorName(content); ok {
			l.emit(TokColor, name, start)
		}
		// other tags ([DBNum1], [natnum1], ...) are ignored
	}
}

func elapsedTag(s string) (DateKind, bool) {
	first := lowerASCII(s[0])
	for i := 1; i < len(s); i++ {
		if lowerASCII(s[i]) != first {
			return 0, false
		}
	}
	switch first {
	case 'h':
		return DateElapsedHour, true
	case 'm':
		return DateElapsedMinute, true
	case 's':
		return DateElapsedSecond, true
	}
	return 0, false
}

func dateLetter(r rune) (DateKind, bool) {
	switch r {
	case 'y', 'Y':
		return DateYear, true
	case 'm', 'M':
		return DateMonth, true
	case 'd', 'D':
		return DateDay, true
	case 'h', 'H':
		return DateHour, true
	case 's', 'S':
		return DateSecond, true
	}
	return 0, false
}

// resolveMinutes turns m/mm into minutes when they directly follow an
// hour field or directly precede a seconds field, ignoring literals.
func resolveMinutes(toks []Token) {
	for i := range toks {
		t := &toks[i]
		if t.Kind != TokDate || t.Date != DateMonth || t.Repeat > 2 {
			continue
		}
		if prev, ok := adjacentDate(toks, i, -1); ok && (prev == DateHour || prev == DateElapsedHour) {
			t.Date = DateMinute
			continue
		}
		if next, ok := adjacentDate(toks, i, 1); ok && (next == DateSecond || next == DateElapsedSecond) {
			t.Date = DateMinute
		}
	}
}

// adjacentDate finds the nearest date token from i in direction dir,
// without crossing a section separator.
func adjacentDate(toks []Token, i, dir int) (DateKind, bool) {
	for j := i + dir; j >= 0 && j < len(toks); j += dir {
		switch toks[j].Kind {
		case TokSectionSeparator:
			return 0, false
		case TokDate:
			if toks[j].Date == DateAMPM || toks[j].Date == DateFractionalSecond {
				continue
			}
			return toks[j].Date, true
		}
	}
	return 0, false
}

func parseCondition(s string) (Condition, bool) {
	for _, op := range []string{"<=", ">=", "<>", "<", ">", "="} {
		if !strings.HasPrefix(s, op) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s[len(op):]), 64)
		if err != nil {
			return Condition{}, false
		}
		return Condition{Op: op, Value: v}, true
	}
	return Condition{}, false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
