package numfmt

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrEmptyFormat              = errors.New("empty format code")
	ErrUnterminatedQuote        = errors.New("unterminated quoted literal")
	ErrUnterminatedBracket      = errors.New("unterminated bracket tag")
	ErrTrailingEscape           = errors.New("trailing escape character")
	ErrTooManySections          = errors.New("too many sections")
	ErrConflictingDateAndNumber = errors.New("section mixes date and digit placeholders")
	ErrTypeMismatch             = errors.New("value type does not match section")
)

// ParseError reports a malformed format code. Err is one of the Err*
// sentinels above.
type ParseError struct {
	Code string
	Pos  int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse format %q at offset %d: %v", e.Code, e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Cause lets errors.Cause reach the sentinel.
func (e *ParseError) Cause() error { return e.Err }

// RenderError means a section was handed a value it cannot render.
// Section selection never produces one; seeing it is a bug.
type RenderError struct {
	Section SectionKind
	Value   ValueKind
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s value with %s section: %v", e.Value, e.Section, ErrTypeMismatch)
}

func (e *RenderError) Unwrap() error { return ErrTypeMismatch }

func (e *RenderError) Cause() error { return ErrTypeMismatch }
