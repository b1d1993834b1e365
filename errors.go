package excel2csv

import (
	"github.com/pkg/errors"

	"github.com/aerissecure/excel2csv/numfmt"
)

var (
	ErrFileNotFound           = errors.New("file not found")
	ErrInvalidWorkbook        = errors.New("invalid Excel file")
	ErrSheetNotFound          = errors.New("sheet not found")
	ErrSheetIndexOutOfRange   = errors.New("sheet index out of range")
	ErrMultipleSheetsNoOutput = errors.New("multiple sheets require -o <directory>")
	ErrUnsupportedFormat      = errors.New("unsupported file format")
	ErrCSVWrite               = errors.New("failed to write CSV")
)

// ExitCode maps an error returned by this package to a process exit
// status: 1 file and I/O, 2 unreadable workbook or format code, 3 sheet
// selection and unsupported input, 4 CSV writing.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var pe *numfmt.ParseError
	switch {
	case errors.Is(err, ErrFileNotFound):
		return 1
	case errors.Is(err, ErrInvalidWorkbook), errors.As(err, &pe), errors.Is(err, numfmt.ErrTypeMismatch):
		return 2
	case errors.Is(err, ErrSheetNotFound),
		errors.Is(err, ErrSheetIndexOutOfRange),
		errors.Is(err, ErrMultipleSheetsNoOutput),
		errors.Is(err, ErrUnsupportedFormat):
		return 3
	case errors.Is(err, ErrCSVWrite):
		return 4
	}
	return 1
}
