package excel2csv

import (
	"github.com/aerissecure/excel2csv/numfmt"
)

// OutputFormat selects the writer.
type OutputFormat string

const (
	FormatCSV      OutputFormat = "csv"
	FormatTSV      OutputFormat = "tsv"
	FormatEuropean OutputFormat = "european"
	FormatHTML     OutputFormat = "html"
)

// Delimiter is the field separator of the CSV-like formats.
func (f OutputFormat) Delimiter() rune {
	switch f {
	case FormatTSV:
		return '\t'
	case FormatEuropean:
		return ';'
	}
	return ','
}

// Ext is the file extension used when writing one file per sheet.
func (f OutputFormat) Ext() string {
	switch f {
	case FormatTSV:
		return ".tsv"
	case FormatHTML:
		return ".html"
	}
	return ".csv"
}

func (f OutputFormat) valid() bool {
	switch f {
	case FormatCSV, FormatTSV, FormatEuropean, FormatHTML:
		return true
	}
	return false
}

// Options control a conversion.
type Options struct {
	Format OutputFormat
	// Empty is written for cells whose display text is empty.
	Empty string
	// Charset names the output encoding ("windows-1252"); "" is UTF-8.
	Charset string
	// Sheet selects sheets by name, 0-based index or glob; "" selects all.
	Sheet string
	// Number holds the number formatting settings. Epoch is taken from
	// the workbook.
	Number numfmt.Options
}

// DefaultOptions returns CSV output with Excel en-US number settings.
func DefaultOptions() Options {
	return Options{
		Format: FormatCSV,
		Number: numfmt.DefaultOptions(),
	}
}
