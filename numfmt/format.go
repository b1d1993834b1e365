// Package numfmt interprets spreadsheet number format codes such as
// "#,##0.00", "$#,##0.00;[Red](#,##0.00)" or "yyyy-mm-dd" and renders
// cell values the way a spreadsheet application displays them.
//
// A code is parsed once into an immutable NumberFormat, which picks a
// section for each value and renders it:
//
//	f, err := numfmt.Parse("#,##0.00;[Red](#,##0.00)")
//	res, err := f.Format(numfmt.Number(-1234.5), numfmt.Options{})
//	// res.Text == "(1,234.50)", res.Color == "Red"
package numfmt

// Result is a rendered value and the color of the section that
// rendered it, if any.
type Result struct {
	Text  string
	Color string
}

// Format renders v.
func (f *NumberFormat) Format(v Value, opts Options) (Result, error) {
	opts = opts.withDefaults()
	sel := f.Select(v, opts)
	if sel.Section == nil {
		return Result{Text: General(v, opts)}, nil
	}
	text, err := sel.Section.render(v, sel.Minus, opts)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text, Color: sel.Section.Color}, nil
}

// Format parses code and renders v with it.
func Format(code string, v Value, opts Options) (string, error) {
	f, err := Parse(code)
	if err != nil {
		return "", err
	}
	res, err := f.Format(v, opts)
	return res.Text, err
}
