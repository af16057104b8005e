package schedule

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/azizzya/zozh-bot/internal/clock"
)

// NextMidnight returns the first instant of the day after now's, in now's
// location. It is always strictly after now, on days that are not 24h long
// and in zones where 00:00 is skipped by a daylight saving change.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return clock.StartOfDay(y, m, d+1, now.Location())
}

// UntilNextMidnight returns how long to wait from now until NextMidnight.
func UntilNextMidnight(now time.Time) time.Duration {
	return NextMidnight(now).Sub(now)
}

// Job is run once per day with the instant the scheduler woke up.
type Job func(ctx context.Context, firedAt time.Time)

// Daily runs a job at every local midnight.
//
// The wait is recomputed from the clock after every run, so a late wake-up
// or a slow job shifts only that one run and never accumulates.
type Daily struct {
	clock clock.Clock
	loc   *time.Location
	job   Job
}

// NewDaily creates a Daily scheduler. A nil loc means time.Local.
func NewDaily(c clock.Clock, loc *time.Location, job Job) *Daily {
	if loc == nil {
		loc = time.Local
	}
	return &Daily{clock: c, loc: loc, job: job}
}

// Run blocks, running the job at each midnight, until ctx is cancelled.
// Cancellation while waiting is a normal shutdown and returns nil.
func (d *Daily) Run(ctx context.Context) error {
	var target time.Time
	for {
		now := d.clock.Now().In(d.loc)
		if target.IsZero() {
			target = now.Add(UntilNextMidnight(now))
		}
		wait := target.Sub(now)
		log.Debug().Time("next_run", target).Dur("wait", wait).Msg("Waiting for midnight")

		select {
		case <-ctx.Done():
			return nil
		case <-d.clock.After(wait):
		}

		firedAt := d.clock.Now().In(d.loc)
		if firedAt.Before(target) {
			// Wall clock stepped back while waiting; keep the same target.
			log.Warn().Time("now", firedAt).Time("next_run", target).Msg("Woke before midnight")
			continue
		}
		target = time.Time{}
		log.Info().Time("fired_at", firedAt).Msg("Running daily job")
		d.job(ctx, firedAt)
	}
}
