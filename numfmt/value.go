package numfmt

import (
	"fmt"
	"math"
	"time"
)

// ValueKind is the type tag of a Value.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindNumber
	KindDate
	KindText
	KindBool
	KindError
)

var valueKindNames = [...]string{
	KindEmpty:  "empty",
	KindNumber: "number",
	KindDate:   "date",
	KindText:   "text",
	KindBool:   "bool",
	KindError:  "error",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Value is a raw cell value.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	t    time.Time
	b    bool
}

func Number(f float64) Value  { return Value{kind: KindNumber, num: f} }
func Date(t time.Time) Value  { return Value{kind: KindDate, t: t} }
func Text(s string) Value     { return Value{kind: KindText, str: s} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Error(code string) Value { return Value{kind: KindError, str: code} }
func Empty() Value            { return Value{} }

func (v Value) Kind() ValueKind { return v.kind }

// IsNumeric reports whether v renders through numeric sections.
func (v Value) IsNumeric() bool { return v.kind == KindNumber || v.kind == KindDate }

// Text returns the string of a text or error value.
func (v Value) Text() string { return v.str }

// Bool returns the value of a bool value.
func (v Value) Bool() bool { return v.b }

// Float returns the numeric value, converting dates to a serial in the
// given epoch. ok is false for non-numeric values.
func (v Value) Float(epoch Epoch) (f float64, ok bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindDate:
		return TimeToSerial(v.t, epoch), true
	}
	return 0, false
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return fmt.Sprintf("Number(%g)", v.num)
	case KindDate:
		return fmt.Sprintf("Date(%s)", v.t.Format(time.RFC3339Nano))
	case KindText:
		return fmt.Sprintf("Text(%q)", v.str)
	case KindBool:
		return fmt.Sprintf("Bool(%t)", v.b)
	case KindError:
		return fmt.Sprintf("Error(%s)", v.str)
	}
	return "Empty"
}

var (
	base1900 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	base1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// TimeToSerial converts the wall clock of t to a date serial. Dates
// before 1900-03-01 shift by one in the 1900 system to make room for
// the nonexistent 1900-02-29.
func TimeToSerial(t time.Time, epoch Epoch) float64 {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	wall := time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)

	base := base1900
	if epoch == Epoch1904 {
		base = base1904
	}
	secs := wall.Unix() - base.Unix()
	days := float64(secs)/86400 + float64(wall.Nanosecond())/86400e9
	if epoch == Epoch1900 && days < 61 {
		days--
	}
	return days
}

// SerialToTime converts a date serial to a UTC time. Serials from 60 up
// to 61 in the 1900 system fall on the nonexistent 1900-02-29 and map
// to 1900-02-28 plus the time of day.
func SerialToTime(serial float64, epoch Epoch) time.Time {
	base := base1904
	if epoch == Epoch1900 {
		base = base1900
		if serial < 60 {
			serial++
		}
	}
	days := math.Floor(serial)
	ns := math.Round((serial - days) * 86400e9)
	return base.AddDate(0, 0, int(days)).Add(time.Duration(ns))
}
