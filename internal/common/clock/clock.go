package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/rolltogether/internal/common/clock Clock

// Clock stamps rolls and saved presets
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time in UTC, truncated to the millisecond
// precision roll timestamps are stored with
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
