package platform

import "time"

// RealClock reports wall-clock time. Services take a Clock port so tests can
// pin timestamps.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
