package clock

import "time"

// Clock abstracts wall time so cache sync stamps stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports real time in UTC, the zone all stored timestamps use.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
