package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "midnight", in: "00:00", want: 0},
		{name: "morning", in: "08:30", want: 510},
		{name: "with seconds", in: "08:30:45", want: 510},
		{name: "end of day", in: "23:59", want: 1439},
		{name: "empty", in: "", want: -1},
		{name: "no colon", in: "0830", want: -1},
		{name: "one segment", in: "08:", want: -1},
		{name: "four segments", in: "08:30:00:00", want: -1},
		{name: "hour too big", in: "24:00", want: -1},
		{name: "minute too big", in: "12:60", want: -1},
		{name: "negative hour", in: "-1:30", want: -1},
		{name: "non numeric hour", in: "ab:30", want: -1},
		{name: "non numeric minute", in: "12:cd", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClock(tt.in))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h00"},
		{-30, "0h00"},
		{5, "0h05"},
		{60, "1h00"},
		{240, "4h00"},
		{485, "8h05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes))
	}
}
