package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxSerial is the serial of 10000-01-01; later dates do not render.
const maxSerial = 2958466

// dateFields are the calendar fields of a serial.
type dateFields struct {
	year, month, day int
	weekday          time.Weekday
	days             int64 // whole days since the epoch
	hour, min, sec   int
	frac             string // fractional second digits
}

// splitSerial rounds x to the precision the section displays and then
// splits it into fields, so 23:59:59.6 shown without fractions carries
// into the next day.
func splitSerial(x float64, fracDigits int, epoch Epoch) dateFields {
	scale := int64(math.Pow10(fracDigits))
	perDay := 86400 * scale
	ticks := int64(math.Floor(x*float64(perDay) + 0.5))

	var f dateFields
	f.days = ticks / perDay
	rem := ticks % perDay
	secs := rem / scale
	f.hour = int(secs / 3600)
	f.min = int(secs / 60 % 60)
	f.sec = int(secs % 60)
	if fracDigits > 0 {
		f.frac = fmt.Sprintf("%0*d", fracDigits, rem%scale)
	}

	days := int(f.days)
	if epoch == Epoch1904 {
		f.weekday = time.Weekday((days + 5) % 7)
	} else {
		f.weekday = time.Weekday((days + 6) % 7)
	}
	switch {
	case epoch == Epoch1900 && days == 0:
		f.year, f.month, f.day = 1900, 1, 0
	case epoch == Epoch1900 && days == 60:
		f.year, f.month, f.day = 1900, 2, 29
	default:
		t := SerialToTime(float64(days), epoch)
		f.year, f.month, f.day = t.Year(), int(t.Month()), t.Day()
	}
	return f
}

func (s *Section) renderDate(x float64, f dateFields, opts Options) string {

	var b strings.Builder
	for _, p := range s.Parts {
		switch p := p.(type) {
		case DateTimeToken:
			s.renderField(&b, p, f)
		case Literal:
			if p.Currency && p.Text == "$" && opts.CurrencySymbol != "" {
				b.WriteString(opts.CurrencySymbol)
				continue
			}
			b.WriteString(p.Text)
		case Skip:
			b.WriteByte(' ')
		case GeneralPart:
			b.WriteString(formatGeneral(x, opts))
		case TextPlaceholder:
			b.WriteString(formatGeneral(x, opts))
		}
	}
	return b.String()
}

func (s *Section) renderField(b *strings.Builder, t DateTimeToken, f dateFields) {
	switch t.Kind {
	case DateYear:
		if t.Repeat <= 2 {
			pad2(b, f.year%100)
		} else {
			fmt.Fprintf(b, "%04d", f.year)
		}
	case DateMonth:
		name := time.Month(f.month).String()
		switch t.Repeat {
		case 1:
			b.WriteString(strconv.Itoa(f.month))
		case 2:
			pad2(b, f.month)
		case 3:
			b.WriteString(name[:3])
		case 4:
			b.WriteString(name)
		default:
			b.WriteString(name[:1])
		}
	case DateDay:
		name := f.weekday.String()
		switch t.Repeat {
		case 1:
			b.WriteString(strconv.Itoa(f.day))
		case 2:
			pad2(b, f.day)
		case 3:
			b.WriteString(name[:3])
		default:
			b.WriteString(name)
		}
	case DateHour:
		h := f.hour
		if s.hour12 {
			h %= 12
			if h == 0 {
				h = 12
			}
		}
		field(b, h, t.Repeat)
	case DateMinute:
		field(b, f.min, t.Repeat)
	case DateSecond:
		field(b, f.sec, t.Repeat)
	case DateElapsedHour:
		fmt.Fprintf(b, "%0*d", t.Repeat, f.days*24+int64(f.hour))
	case DateElapsedMinute:
		fmt.Fprintf(b, "%0*d", t.Repeat, (f.days*24+int64(f.hour))*60+int64(f.min))
	case DateElapsedSecond:
		fmt.Fprintf(b, "%0*d", t.Repeat, ((f.days*24+int64(f.hour))*60+int64(f.min))*60+int64(f.sec))
	case DateFractionalSecond:
		b.WriteRune('.')
		b.WriteString(f.frac[:min(t.Repeat, len(f.frac))])
	case DateAMPM:
		b.WriteString(ampm(t.Text, f.hour))
	}
}

// ampm renders AM/PM in upper case and A/P in the case it was written.
func ampm(spelling string, hour int) string {
	pm := hour >= 12
	if len(spelling) == 3 {
		c := spelling[0]
		if pm {
			c = spelling[2]
		}
		return string(c)
	}
	if pm {
		return "PM"
	}
	return "AM"
}

func field(b *strings.Builder, n, repeat int) {
	if repeat >= 2 {
		pad2(b, n)
		return
	}
	b.WriteString(strconv.Itoa(n))
}

func pad2(b *strings.Builder, n int) {
	if n < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(n))
}
