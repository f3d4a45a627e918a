package services

import "time"

// Clock supplies "today" to due-date and proration math so tests can rewind
// or advance it. A nil Clock falls back to time.Now.
type Clock func() time.Time

func orSystemClock(clock Clock) Clock {
	if clock == nil {
		return time.Now
	}
	return clock
}
