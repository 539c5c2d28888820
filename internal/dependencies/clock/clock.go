// Package clock abstracts wall-clock access so game timestamps (room
// creation, turn timer starts) can be controlled in tests.
package clock

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a RealClock
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}
