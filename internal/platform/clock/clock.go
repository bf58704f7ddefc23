package clock

import "time"

// Clock abstracts time to keep reducers and usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Millis returns the clock's current instant as Unix milliseconds, the unit
// every persisted timestamp uses.
func Millis(c Clock) int64 {
	return c.Now().UnixMilli()
}
