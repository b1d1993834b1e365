package numfmt

// Epoch selects the date system used to map serials to calendar dates.
type Epoch int

const (
	// Epoch1900 counts from 1900-01-00 and keeps the fictitious
	// 1900-02-29 at serial 60.
	Epoch1900 Epoch = iota
	// Epoch1904 counts from 1904-01-01 = serial 0.
	Epoch1904
)

func (e Epoch) String() string {
	if e == Epoch1904 {
		return "1904"
	}
	return "1900"
}

// Options are render-time settings. The zero value of every field means
// its default, so Options{} behaves like DefaultOptions().
type Options struct {
	DecimalSeparator   rune
	ThousandsSeparator rune
	// CurrencySymbol replaces a bare $ in format codes when set.
	// Symbols spelled out in [$€-407] tags are never replaced.
	CurrencySymbol string
	Epoch          Epoch

	// GeneralDigits is the number of significant digits General shows.
	GeneralDigits int
	// General switches to scientific notation for magnitudes at or
	// above GeneralMax or below GeneralMin.
	GeneralMax float64
	GeneralMin float64

	// FillWidth is the display width *x fills pad to. 0 drops fills.
	FillWidth int

	// DefaultFormat is used by callers for cells with no format code.
	DefaultFormat string
}

// DefaultOptions returns the Excel en-US settings.
func DefaultOptions() Options {
	return Options{
		DecimalSeparator:   '.',
		ThousandsSeparator: ',',
		Epoch:              Epoch1900,
		GeneralDigits:      11,
		GeneralMax:         1e11,
		GeneralMin:         1e-10,
		DefaultFormat:      "General",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DecimalSeparator == 0 {
		o.DecimalSeparator = d.DecimalSeparator
	}
	if o.ThousandsSeparator == 0 {
		o.ThousandsSeparator = d.ThousandsSeparator
	}
	if o.GeneralDigits <= 0 {
		o.GeneralDigits = d.GeneralDigits
	}
	if o.GeneralDigits > 15 {
		o.GeneralDigits = 15
	}
	if o.GeneralMax <= 0 {
		o.GeneralMax = d.GeneralMax
	}
	if o.GeneralMin <= 0 {
		o.GeneralMin = d.GeneralMin
	}
	if o.DefaultFormat == "" {
		o.DefaultFormat = d.DefaultFormat
	}
	return o
}
