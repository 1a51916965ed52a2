package timecode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDuration(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0:00:10", true},
		{"12:34:56", true},
		{"99:59:59", true},
		{"1:02:03:04", true},
		{"365:23:59:59", true},
		{"1:2:3", false},
		{"100:00:00", false},
		{"1000:00:00:00", false},
		{"00:00", false},
		{"1:00:00:00:00", false},
		{"aa:bb:cc", false},
		{"1:0a:00", false},
		{" 1:00:00", false},
		{"", false},
		{"$1,234", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuration(tt.in))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"0:00:10", 10, true},
		{"1:01:01", 3661, true},
		{"2:00:00:01", 2*86400 + 1, true},
		{"0:00:00:00", 0, true},
		{"10:00", 0, false},
		{"1:2:3:4:5", 0, false},
		{"x:00:00", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00:00", Format(0))
	assert.Equal(t, "00:00:59", Format(59))
	assert.Equal(t, "01:00:00", Format(3600))
	assert.Equal(t, "23:59:59", Format(86399))
	assert.Equal(t, "1:00:00:00", Format(86400))
	assert.Equal(t, "12:03:04:05", Format(12*86400+3*3600+4*60+5))
	assert.Equal(t, "00:00:00", Format(-5))
}

func TestRoundTripThreePart(t *testing.T) {
	for h := 0; h <= 99; h += 7 {
		for m := 0; m <= 59; m += 13 {
			for s := 0; s <= 59; s += 11 {
				for _, in := range []string{
					fmt.Sprintf("%d:%02d:%02d", h, m, s),
					fmt.Sprintf("%02d:%02d:%02d", h, m, s),
				} {
					secs, ok := Parse(in)
					require.True(t, ok, in)
					assert.Equal(t, in, FormatLike(secs, in))
				}
			}
		}
	}
}

func TestRoundTripFourPart(t *testing.T) {
	in := "3:04:05:06"
	secs, ok := Parse(in)
	require.True(t, ok)
	assert.Equal(t, in, Format(secs))
	assert.Equal(t, in, FormatLike(secs, in))

	// A zero day segment is dropped on the way back.
	secs, ok = Parse("0:04:05:06")
	require.True(t, ok)
	assert.Equal(t, "04:05:06", Format(secs))
}

func TestFormatLikeRollover(t *testing.T) {
	assert.Equal(t, "10:00:00", FormatLike(36000, "9:59:59"))
	assert.Equal(t, "24:00:00", FormatLike(86400, "23:59:59"))
	assert.Equal(t, "24:00:00", FormatLike(86400, "9:59:59"))
	assert.Equal(t, "00:00:11", FormatLike(11, "00:00:10"))
	assert.Equal(t, "0:00:11", FormatLike(11, "0:00:10"))
	assert.Equal(t, "0:00:00", FormatLike(-3, "0:00:10"))
}

func TestFormatLikeKeepsThreePartShape(t *testing.T) {
	for _, in := range []string{"24:00:00", "30:00:00", "98:52:55", "99:59:59"} {
		secs, ok := Parse(in)
		require.True(t, ok, in)
		assert.Equal(t, in, FormatLike(secs, in))
	}
	assert.Equal(t, "100:00:00", FormatLike(360000, "99:59:59"))
}

func TestFormatLikeFourPartTemplate(t *testing.T) {
	assert.Equal(t, "1:00:00:00", FormatLike(86400, "0:23:59:59"))
	assert.Equal(t, "2:00:00:01", FormatLike(2*86400+1, "2:00:00:00"))
	// A zero day segment normalizes to the 3-part form.
	assert.Equal(t, "04:05:07", FormatLike(4*3600+5*60+7, "0:04:05:06"))
}
