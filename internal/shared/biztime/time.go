// Package biztime holds the business timezone. Storage is always UTC; the
// business zone only decides calendar boundaries such as the ticket number year.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "UTC"

var (
	mu          sync.RWMutex
	bizLocation = time.UTC
	now         = time.Now
)

// Init sets the business timezone. An empty name selects UTC.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return bizLocation
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	mu.RLock()
	f := now
	mu.RUnlock()
	return f().UTC()
}

// NowMilli returns the current time as Unix milliseconds.
func NowMilli() int64 {
	return NowUTC().UnixMilli()
}

// YearTwoDigits returns the business-zone year of t modulo 100.
func YearTwoDigits(t time.Time) int {
	return t.In(Location()).Year() % 100
}

// SetClock replaces the clock and returns a function restoring the previous one.
func SetClock(f func() time.Time) (restore func()) {
	mu.Lock()
	prev := now
	now = f
	mu.Unlock()
	return func() {
		mu.Lock()
		now = prev
		mu.Unlock()
	}
}
