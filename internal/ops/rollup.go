package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
)

// RollupInput contains parameters for the Rollup operation.
type RollupInput struct {
	FiredAt  time.Time      // the summarized day is the one before this instant's day
	Location *time.Location // default: time.Local
}

// RollupOutput contains the result of the Rollup operation.
type RollupOutput struct {
	Date   string `json:"date"`
	Users  int    `json:"users"`
	Sent   int    `json:"sent"`
	Failed int    `json:"failed"`
}

// Rollup sends every user who logged a meal yesterday one summary of that
// day. A failed send is logged and counted; it never stops the remaining
// users from being notified. Only a failure to read the totals, or a
// cancelled context, returns an error.
func Rollup(ctx context.Context, database *sql.DB, notifier Notifier, input RollupInput) (*RollupOutput, error) {
	if input.FiredAt.IsZero() {
		input.FiredAt = time.Now()
	}

	w := PreviousDayWindow(input.FiredAt, input.Location)
	summaries, err := summariesFor(ctx, database, w)
	if err != nil {
		return nil, err
	}

	out := &RollupOutput{
		Date:  summaries.Date,
		Users: len(summaries.Summaries),
	}
	for _, s := range summaries.Summaries {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := notifier.Notify(ctx, s.UserID, s.Text); err != nil {
			out.Failed++
			log.Warn().Err(err).Int64("user_id", s.UserID).Str("date", out.Date).
				Msg("Failed to send daily summary")
			continue
		}
		out.Sent++
	}

	log.Info().Str("date", out.Date).Int("users", out.Users).Int("sent", out.Sent).
		Int("failed", out.Failed).Msg("Daily summaries dispatched")
	return out, nil
}
