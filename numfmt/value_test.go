package numfmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeToSerial(t *testing.T) {
	tests := []struct {
		t     time.Time
		epoch Epoch
		want  float64
	}{
		{time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), Epoch1900, 1},
		{time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC), Epoch1900, 59},
		{time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC), Epoch1900, 61},
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Epoch1900, 45356},
		{time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC), Epoch1900, 45356.75},
		{time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC), Epoch1904, 0},
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Epoch1904, 43894},
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.FixedZone("X", 3600)), Epoch1900, 45356},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, TimeToSerial(tt.t, tt.epoch), 1e-9, "%s %s", tt.t, tt.epoch)
	}
}

func TestSerialToTime(t *testing.T) {
	tests := []struct {
		serial float64
		epoch  Epoch
		want   time.Time
	}{
		{1, Epoch1900, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
		{59, Epoch1900, time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC)},
		{59.5, Epoch1900, time.Date(1900, 2, 28, 12, 0, 0, 0, time.UTC)},
		{60, Epoch1900, time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC)},
		{60.5, Epoch1900, time.Date(1900, 2, 28, 12, 0, 0, 0, time.UTC)},
		{61, Epoch1900, time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)},
		{45356.5, Epoch1900, time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)},
		{43894, Epoch1904, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SerialToTime(tt.serial, tt.epoch), "%g %s", tt.serial, tt.epoch)
	}
}

func TestSplitSerialWeekday(t *testing.T) {
	// 1900-01-01 is a Sunday in the 1900 date system
	assert.Equal(t, time.Sunday, splitSerial(1, 0, Epoch1900).weekday)
	assert.Equal(t, time.Thursday, splitSerial(61, 0, Epoch1900).weekday)
	assert.Equal(t, time.Friday, splitSerial(0, 0, Epoch1904).weekday)
	assert.Equal(t, time.Tuesday, splitSerial(43894, 0, Epoch1904).weekday)
}

func TestBuiltinFormat(t *testing.T) {
	code, ok := BuiltinFormat(14)
	assert.True(t, ok)
	assert.Equal(t, "m/d/yyyy", code)

	code, ok = BuiltinFormat(46)
	assert.True(t, ok)
	assert.Equal(t, "[h]:mm:ss", code)

	_, ok = BuiltinFormat(23)
	assert.False(t, ok)

	for id := range 50 {
		code, ok := BuiltinFormat(id)
		if !ok {
			continue
		}
		_, err := Parse(code)
		assert.NoError(t, err, "builtin %d %q", id, code)
	}
}

func TestColorRGB(t *testing.T) {
	rgb, ok := ColorRGB("Red")
	assert.True(t, ok)
	assert.Equal(t, "FF0000", rgb)

	rgb, ok = ColorRGB("Color10")
	assert.True(t, ok)
	assert.Equal(t, "008000", rgb)

	_, ok = ColorRGB("Color57")
	assert.False(t, ok)
}
