// Package timecode classifies, parses and formats elapsed-time values
// of the form H:MM:SS and D:HH:MM:SS.
package timecode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

var (
	hmsPattern  = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}$`)
	dhmsPattern = regexp.MustCompile(`^\d{1,3}:\d{2}:\d{2}:\d{2}$`)
)

// IsDuration reports whether text looks like an elapsed time:
// 1-2 digit hours or 1-3 digit days, with the other segments zero-padded
// to two digits.
func IsDuration(text string) bool {
	return hmsPattern.MatchString(text) || dhmsPattern.MatchString(text)
}

// Parse converts a duration string into total seconds. ok is false when
// text does not split into three or four numeric segments.
func Parse(text string) (seconds int64, ok bool) {
	parts := strings.Split(text, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return 0, false
	}
	nums := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, false
		}
		nums[i] = n
	}
	if len(nums) == 3 {
		return nums[0]*secondsPerHour + nums[1]*secondsPerMinute + nums[2], true
	}
	return nums[0]*secondsPerDay + nums[1]*secondsPerHour + nums[2]*secondsPerMinute + nums[3], true
}

// Format renders seconds as [D:]HH:MM:SS. The day segment only appears
// when at least one full day has elapsed, so "0:01:02:03" formats back as
// "01:02:03".
func Format(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := seconds / secondsPerDay
	h := (seconds % secondsPerDay) / secondsPerHour
	m := (seconds % secondsPerHour) / secondsPerMinute
	s := seconds % secondsPerMinute
	if d > 0 {
		return fmt.Sprintf("%d:%02d:%02d:%02d", d, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatLike renders seconds in the shape of template. A 3-part template
// stays H:MM:SS with the hour segment unbounded, keeping a single-digit
// hour unpadded while it fits ("0:00:10" ticks to "0:00:11", "23:59:59"
// ticks to "24:00:00"). Any other template formats as Format does.
func FormatLike(seconds int64, template string) string {
	if !hmsPattern.MatchString(template) {
		return Format(seconds)
	}
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / secondsPerHour
	m := (seconds % secondsPerHour) / secondsPerMinute
	s := seconds % secondsPerMinute
	if strings.IndexByte(template, ':') == 1 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
