package numfmt

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		value Value
		opts  Options
		want  string
	}{
		// General
		{name: "general", code: "General", value: Number(10), want: "10"},
		{name: "general lower", code: "general", value: Number(10), want: "10"},
		{name: "general spaced", code: "  GENERAL ", value: Number(10), want: "10"},
		{name: "general fraction", code: "General", value: Number(0.5), want: "0.5"},
		{name: "general sections", code: "General;-General", value: Number(-5), want: "-5"},
		{name: "color only", code: "[Red]", value: Number(5), want: "5"},
		{name: "color only negative", code: "[Red]", value: Number(-5), want: "-5"},

		// digit groups
		{name: "grouped", code: "#,##0.00", value: Number(1234.5), want: "1,234.50"},
		{name: "grouped negative", code: "#,##0.00", value: Number(-1234.5), want: "-1,234.50"},
		{name: "grouped millions", code: "#,##0", value: Number(1234567), want: "1,234,567"},
		{name: "grouped small", code: "#,##0", value: Number(12), want: "12"},
		{name: "two decimals", code: "0.00", value: Number(303.6), want: "303.60"},
		{name: "zero", code: "0", value: Number(0), want: "0"},
		{name: "half away up", code: "0", value: Number(2.5), want: "3"},
		{name: "half away down", code: "0", value: Number(-2.5), want: "-3"},
		{name: "half decimal", code: "0.0", value: Number(0.05), want: "0.1"},
		{name: "optional fraction", code: "0.0#", value: Number(1.5), want: "1.5"},
		{name: "optional fraction full", code: "0.0#", value: Number(1.25), want: "1.25"},
		{name: "hash only", code: "#.##", value: Number(0.5), want: ".5"},
		{name: "no integer placeholder", code: ".00", value: Number(1.5), want: "1.50"},
		{name: "space fraction", code: "0.0?", value: Number(1.5), want: "1.5 "},
		{name: "space integer", code: "???0", value: Number(12), want: "  12"},
		{name: "scale", code: "#,##0,", value: Number(1234567), want: "1,235"},
		{name: "scale millions", code: `0.0,,"M"`, value: Number(12345678), want: "12.3M"},
		{name: "quoted prefix", code: `"E"0`, value: Number(40013205), want: "E40013205"},
		{name: "escaped braces", code: `\{###\}`, value: Number(42), want: "{42}"},
		{name: "ssn", code: "000-00-0000", value: Number(123456789), want: "123-45-6789"},
		{name: "skip", code: "_(0_)", value: Number(5), want: " 5 "},
		{name: "fill dropped", code: "*-0", value: Number(42), want: "42"},
		{name: "fill padded", code: "*-0", value: Number(42), opts: Options{FillWidth: 6}, want: "----42"},

		// percent
		{name: "percent", code: "0%", value: Number(0.75), want: "75%"},
		{name: "percent decimals", code: "0.00%", value: Number(0.12345), want: "12.35%"},
		{name: "double percent", code: "0%%", value: Number(0.5), want: "5000%%"},

		// sections
		{name: "currency positive", code: "$#,##0.00;[Red](#,##0.00)", value: Number(1234.5), want: "$1,234.50"},
		{name: "currency negative", code: "$#,##0.00;[Red](#,##0.00)", value: Number(-1234.5), want: "(1,234.50)"},
		{name: "two sections zero", code: "0.00;(0.00)", value: Number(0), want: "0.00"},
		{name: "two sections negative", code: "0.00;(0.00)", value: Number(-2.5), want: "(2.50)"},
		{name: "three sections zero", code: `#,##0;(#,##0);"-"`, value: Number(0), want: "-"},
		{name: "three sections negative", code: `#,##0;(#,##0);"-"`, value: Number(-5), want: "(5)"},
		{name: "hidden negatives", code: "0;;", value: Number(-5), want: ""},
		{name: "text passthrough", code: "0;-0;0", value: Text("abc"), want: "abc"},
		{name: "text section", code: `0;-0;0;"t:"@`, value: Text("abc"), want: "t:abc"},
		{name: "text only", code: "@", value: Text("abc"), want: "abc"},
		{name: "text only number", code: "@", value: Number(1.5), want: "1.5"},
		{name: "text prefix", code: `"pre "@`, value: Text("hi"), want: "pre hi"},
		{name: "bool", code: "0.00", value: Bool(true), want: "TRUE"},
		{name: "bool text section", code: `0;0;0;"t:"@`, value: Bool(false), want: "t:FALSE"},
		{name: "error", code: "0.00", value: Error("#DIV/0!"), want: "#DIV/0!"},
		{name: "empty", code: "0.00", value: Empty(), want: ""},

		// conditions
		{name: "condition match", code: `[>=100]"big";"small"`, value: Number(150), want: "big"},
		{name: "condition else", code: `[>=100]"big";"small"`, value: Number(50), want: "small"},
		{name: "phone short", code: "[<=9999999]###-####;(###) ###-####", value: Number(5551234), want: "555-1234"},
		{name: "phone long", code: "[<=9999999]###-####;(###) ###-####", value: Number(8005551234), want: "(800) 555-1234"},
		{name: "negative condition", code: "[<0](0);0", value: Number(-5), want: "(5)"},
		{name: "conditional minus", code: "[>=100]0;0", value: Number(-5), want: "-5"},

		// scientific
		{name: "scientific", code: "0.00E+00", value: Number(12345), want: "1.23E+04"},
		{name: "scientific small", code: "0.00E+00", value: Number(0.0001234), want: "1.23E-04"},
		{name: "scientific zero", code: "0.00E+00", value: Number(0), want: "0.00E+00"},
		{name: "scientific carry", code: "0.00E+00", value: Number(9.999), want: "1.00E+01"},
		{name: "scientific no integer", code: ".00E+00", value: Number(12345), want: ".12E+05"},
		{name: "scientific no integer carry", code: ".00E+00", value: Number(0.9999), want: ".10E+01"},
		{name: "scientific lower", code: "0.0e0", value: Number(1500), want: "1.5e3"},
		{name: "engineering", code: "##0.0E+0", value: Number(12345), want: "12.3E+3"},
		{name: "engineering small", code: "##0.0E+0", value: Number(0.0012345), want: "1.2E-3"},
		{name: "engineering carry", code: "##0.0E+0", value: Number(999.96), want: "1.0E+3"},
		{name: "fixed mantissa", code: "00.0E+0", value: Number(12345), want: "12.3E+3"},

		// fractions
		{name: "fixed denominator", code: "# ?/8", value: Number(1.3), want: "1 2/8"},
		{name: "best fraction", code: "# ?/?", value: Number(1.5), want: "1 1/2"},
		{name: "best fraction bound", code: "# ?/?", value: Number(0.3), want: "2/7"},
		{name: "two digit fraction", code: "# ??/??", value: Number(3.14159), want: "3 14/99"},
		{name: "improper", code: "?/?", value: Number(1.5), want: "3/2"},
		{name: "fraction integer", code: "# ?/?", value: Number(3), want: "3    "},
		{name: "fraction carry", code: "# ?/8", value: Number(1.99), want: "2    "},

		// currency options
		{name: "currency option", code: "$#,##0.00", value: Number(5), opts: Options{CurrencySymbol: "€"}, want: "€5.00"},
		{name: "currency tag kept", code: "[$£-809]#,##0", value: Number(5), opts: Options{CurrencySymbol: "€"}, want: "£5"},
		{name: "separators", code: "#,##0.00", value: Number(1234.5), opts: Options{DecimalSeparator: ',', ThousandsSeparator: '.'}, want: "1.234,50"},

		// dates
		{name: "iso date", code: "yyyy-mm-dd", value: Number(45356), want: "2024-03-05"},
		{name: "iso date 1904", code: "yyyy-mm-dd", value: Number(43894), opts: Options{Epoch: Epoch1904}, want: "2024-03-05"},
		{name: "builtin 14", code: "m/d/yyyy", value: Number(45412), want: "4/30/2024"},
		{name: "weekday", code: "DDDD DD/MM/YYYY", value: Number(45285), want: "Monday 25/12/2023"},
		{name: "short month", code: "DD-MMM", value: Number(45119), want: "12-Jul"},
		{name: "short year", code: "MM-DD-YY", value: Number(45367), want: "03-16-24"},
		{name: "month letter", code: "mmmmm", value: Number(45356), want: "M"},
		{name: "month name", code: "mmmm", value: Number(45356), want: "March"},
		{name: "weekday short", code: "ddd", value: Number(45356), want: "Tue"},
		{name: "pm", code: "h:mm AM/PM", value: Number(0.75), want: "6:00 PM"},
		{name: "am", code: "h:mm AM/PM", value: Number(0.25), want: "6:00 AM"},
		{name: "midnight", code: "h:mm AM/PM", value: Number(0), want: "12:00 AM"},
		{name: "a/p lower", code: "h:mm:ss a/p", value: Number(0.75), want: "6:00:00 p"},
		{name: "elapsed", code: "[h]:mm:ss", value: Number(1.5), want: "36:00:00"},
		{name: "elapsed hours", code: "[h]:mm:ss", value: Number(6.5 / 24), want: "6:30:00"},
		{name: "elapsed minutes", code: "[mm]:ss", value: Number(1.0 / 24), want: "60:00"},
		{name: "fractional seconds", code: "mm:ss.0", value: Number(62.34 / 86400), want: "01:02.3"},
		{name: "seconds carry", code: "hh:mm:ss", value: Number(0.99999999), want: "00:00:00"},
		{name: "leap bug", code: "yyyy-mm-dd", value: Number(60), want: "1900-02-29"},
		{name: "day zero", code: "yyyy-mm-dd", value: Number(0), want: "1900-01-00"},
		{name: "after leap bug", code: "yyyy-mm-dd", value: Number(61), want: "1900-03-01"},
		{name: "last day", code: "yyyy-mm-dd", value: Number(2958465), want: "9999-12-31"},
		{name: "rounds past last day", code: "dd", value: Number(2958465.9999999), want: "2958466"},
		{name: "negative date", code: "yyyy-mm-dd", value: Number(-1), want: "-1"},
		{name: "time value", code: "yyyy-mm-dd hh:mm", value: Date(time.Date(2024, 3, 5, 13, 45, 0, 0, time.UTC)), want: "2024-03-05 13:45"},
		{name: "time value 1904", code: "yyyy-mm-dd", value: Date(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)), opts: Options{Epoch: Epoch1904}, want: "2024-03-05"},
		{name: "e year", code: "d/m/e", value: Number(45356), want: "5/3/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.code, tt.value, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatColor(t *testing.T) {
	f, err := Parse("#,##0.00;[Red](#,##0.00)")
	require.NoError(t, err)

	res, err := f.Format(Number(-1234.5), Options{})
	require.NoError(t, err)
	assert.Equal(t, Result{Text: "(1,234.50)", Color: "Red"}, res)

	res, err = f.Format(Number(1234.5), Options{})
	require.NoError(t, err)
	assert.Equal(t, Result{Text: "1,234.50"}, res)
}

func TestFormatGeneralNeverLeaksLetters(t *testing.T) {
	for _, code := range []string{"General", "general", " GENERAL ", "GeNeRaL"} {
		got, err := Format(code, Number(10), Options{})
		require.NoError(t, err)
		assert.Equal(t, "10", got)
		assert.NotContains(t, got, "G")
	}
}

func TestFormatStable(t *testing.T) {
	codes := []string{"#,##0.00", "$#,##0.00;[Red](#,##0.00)", "yyyy-mm-dd", "# ?/?", "0.00E+00"}
	values := []Value{Number(1234.5), Number(-0.25), Number(0), Number(45356.75)}
	for _, code := range codes {
		a, err := Parse(code)
		require.NoError(t, err)
		b, err := Parse(code)
		require.NoError(t, err)
		for _, v := range values {
			ra, err := a.Format(v, Options{})
			require.NoError(t, err)
			rb, err := b.Format(v, Options{})
			require.NoError(t, err)
			assert.Equal(t, ra, rb, "%s %s", code, v)
		}
	}
}

func TestFormatNonFinite(t *testing.T) {
	codes := []string{"0.00", "#,##0", "0.00E+00", "# ?/?", "yyyy-mm-dd", "[h]:mm", "0%", "General"}
	for _, code := range codes {
		for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			got, err := Format(code, Number(x), Options{})
			require.NoError(t, err, code)
			assert.Equal(t, "#NUM!", strings.TrimPrefix(got, "-"), "%s %g", code, x)
		}
	}
}

func TestFormatParseError(t *testing.T) {
	_, err := Format(`"open`, Number(1), Options{})
	require.ErrorIs(t, err, ErrUnterminatedQuote)
}

func TestRenderTypeMismatch(t *testing.T) {
	f, err := Parse("0;0;0;@")
	require.NoError(t, err)
	secs := f.Sections()

	_, err = secs[0].Render(Text("x"), Options{})
	require.ErrorIs(t, err, ErrTypeMismatch)
	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, SectionNumber, re.Section)
	assert.Equal(t, KindText, re.Value)

	_, err = secs[3].Render(Number(1), Options{})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestSectionRenderOmitsSign(t *testing.T) {
	f, err := Parse("#,##0.00")
	require.NoError(t, err)
	got, err := f.Sections()[0].Render(Number(-1234.5), Options{})
	require.NoError(t, err)
	assert.Equal(t, "1,234.50", got)
}
