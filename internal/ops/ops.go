package ops

import (
	"context"
	"time"

	"github.com/azizzya/zozh-bot/internal/clock"
)

// DateLayout is the calendar-date format used in inputs and outputs.
const DateLayout = "2006-01-02"

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow returns the calendar day containing t in loc, from the day's
// first instant to the next day's first instant. A nil loc means time.Local.
func DayWindow(t time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Window{
		Start: clock.StartOfDay(y, m, d, loc),
		End:   clock.StartOfDay(y, m, d+1, loc),
	}
}

// PreviousDayWindow returns the calendar day before the one containing t.
func PreviousDayWindow(t time.Time, loc *time.Location) Window {
	today := DayWindow(t, loc)
	y, m, d := today.Start.Date()
	return Window{
		Start: clock.StartOfDay(y, m, d-1, today.Start.Location()),
		End:   today.Start,
	}
}

// ParseDate parses a YYYY-MM-DD date as the first instant of that day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return clock.StartOfDay(y, m, d, loc), nil
}

// Notifier delivers a text message to a user.
type Notifier interface {
	Notify(ctx context.Context, userID int64, text string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, userID int64, text string) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, userID int64, text string) error {
	return f(ctx, userID, text)
}
