package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeAgo renders the elapsed time in words: "just now", "1 min ago",
// "3 hours ago", "2 days ago". Times in the future read as "just now".
func TimeAgo(now, t time.Time) string {
	secs := elapsedSeconds(now, t)
	switch {
	case secs < 60:
		return "just now"
	case secs < 3600:
		return plural(secs/60, "min")
	case secs < 86400:
		return plural(secs/3600, "hour")
	default:
		return plural(secs/86400, "day")
	}
}

// TimeAgoShort renders the elapsed time as a compact code: "45s", "5M",
// "3H", "2D".
func TimeAgoShort(now, t time.Time) string {
	secs := elapsedSeconds(now, t)
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dM", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dH", secs/3600)
	default:
		return fmt.Sprintf("%dD", secs/86400)
	}
}

func elapsedSeconds(now, t time.Time) int64 {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts the timestamp encodings seen in backend payloads,
// including unix milliseconds.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}
