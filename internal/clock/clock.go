// Package clock provides an injectable time source so that code which
// waits on wall-clock boundaries can be tested without real time passing.
//
// Production code uses Real(). Tests use Fake(), whose time only moves
// when Advance is called:
//
//	c := clock.Fake(time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC))
//	go sched.Run(ctx)
//	c.WaitForTimers(1) // scheduler is now blocked in After
//	c.Advance(time.Hour)
package clock

import "time"

// Clock abstracts the time operations used by the scheduler.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d has
	// elapsed. If d <= 0 the channel receives immediately.
	After(d time.Duration) <-chan time.Time
}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
