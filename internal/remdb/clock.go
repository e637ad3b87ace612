package remdb

import "time"

// Core Data stores timestamps as floating-point seconds since the Apple
// reference date, 2001-01-01T00:00:00Z, not the Unix epoch.
const referenceEpochOffset = 978307200

// Clock supplies the current wall time. Injected so tests can pin
// recency timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// referenceSeconds converts t to the store's timestamp representation:
// fractional seconds relative to the reference epoch.
func referenceSeconds(t time.Time) float64 {
	return float64(t.UnixNano())/float64(time.Second) - referenceEpochOffset
}

// fromReferenceSeconds converts a stored timestamp back to a time.Time.
func fromReferenceSeconds(s float64) time.Time {
	ns := (s + referenceEpochOffset) * float64(time.Second)
	return time.Unix(0, int64(ns)).UTC()
}
