// Package timefmt renders millisecond durations and timestamps for display.
// Nothing here feeds a persisted or compared value.
package timefmt

import (
	"fmt"
	"time"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// FormatDuration renders ms as "M:SS". Minutes are unbounded and unpadded,
// seconds are floored. Negative input renders as "0:00".
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / msPerSecond
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// FormatDurationHoursMinutes renders ms as "Hh MMmin", dropping seconds.
func FormatDurationHoursMinutes(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%dh %02dmin", ms/msPerHour, (ms%msPerHour)/msPerMinute)
}

// FormatTime renders a Unix-millisecond timestamp as a local 24h clock time.
func FormatTime(ts int64) string {
	return time.UnixMilli(ts).Local().Format("15:04")
}

// FormatDate renders a Unix-millisecond timestamp as a local short date.
func FormatDate(ts int64) string {
	return time.UnixMilli(ts).Local().Format("Jan 2, 2006")
}
