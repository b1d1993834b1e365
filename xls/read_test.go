package xls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yamitzky/xlrd-go/xlrd"

	"github.com/aerissecure/excel2csv/numfmt"
)

func TestCellValue(t *testing.T) {
	for _, tc := range []struct {
		name  string
		ctype int
		v     interface{}
		want  numfmt.Value
	}{
		{"text", xlrd.XL_CELL_TEXT, "abc", numfmt.Text("abc")},
		{"number", xlrd.XL_CELL_NUMBER, 1.5, numfmt.Number(1.5)},
		{"int number", xlrd.XL_CELL_NUMBER, 3, numfmt.Number(3)},
		{"bool", xlrd.XL_CELL_BOOLEAN, 1, numfmt.Bool(true)},
		{"bool native", xlrd.XL_CELL_BOOLEAN, false, numfmt.Bool(false)},
		{"error", xlrd.XL_CELL_ERROR, byte(0x07), numfmt.Error("#DIV/0!")},
		{"blank", xlrd.XL_CELL_BLANK, "", numfmt.Empty()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cellValue(tc.ctype, tc.v))
		})
	}
}

func TestFormatCode(t *testing.T) {
	book := &xlrd.Book{
		XFList: []*xlrd.XF{
			{FormatKey: 0},
			{FormatKey: 14},
			{FormatKey: 164},
			{FormatKey: 200},
		},
		FormatMap: map[int]*xlrd.Format{
			14:  {FormatString: "m/d/yy"},
			164: {FormatString: `"\{"###"\}"`},
		},
	}

	assert.Equal(t, "General", formatCode(book, 0))
	assert.Equal(t, "m/d/yyyy", formatCode(book, 1))
	assert.Equal(t, `"\{"###"\}"`, formatCode(book, 2))
	assert.Equal(t, "General", formatCode(book, 3))
	assert.Equal(t, "", formatCode(book, 99))
}
