package clock

import "time"

// StartOfDay returns the first instant of the calendar day y-m-d in loc.
// Out-of-range months and days are normalized the way time.Date does.
//
// That instant is usually 00:00, but in zones whose daylight saving starts
// at midnight 00:00 does not exist and the day begins at the transition
// (01:00 on 2026-03-08 in America/Havana).
func StartOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	y, m, d = time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Date()

	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if ty, tm, td := t.Date(); ty == y && tm == m && td == d {
		return t
	}
	// Midnight fell into a gap and was resolved onto the previous day.
	// The zone in effect there ends where day d begins.
	if _, end := t.ZoneBounds(); !end.IsZero() {
		return end.In(loc)
	}
	return t
}
