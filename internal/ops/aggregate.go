package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/azizzya/zozh-bot/internal/db"
	"github.com/azizzya/zozh-bot/internal/errors"
	"github.com/azizzya/zozh-bot/internal/meal"
)

// DayTotalInput contains parameters for the DayTotal operation.
type DayTotalInput struct {
	UserID       int64          // required, non-zero
	Day          time.Time      // any instant within the day; default: now
	Location     *time.Location // default: time.Local
	IncludeMeals bool
}

// MealSummary is one logged meal as listed in a day total.
type MealSummary struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	LoggedAt string  `json:"logged_at"`
}

// DayTotalOutput contains the result of the DayTotal operation.
// Calories and Protein are rounded to two decimals.
type DayTotalOutput struct {
	UserID   int64         `json:"user_id"`
	Date     string        `json:"date"`
	Calories float64       `json:"calories"`
	Protein  float64       `json:"protein"`
	Count    int           `json:"count"`
	Meals    []MealSummary `json:"meals,omitempty"`
	Text     string        `json:"text"`
}

// DayTotal sums one user's meals over the calendar day containing input.Day.
func DayTotal(ctx context.Context, database *sql.DB, input DayTotalInput) (*DayTotalOutput, error) {
	if input.UserID == 0 {
		return nil, errors.NewInvalidRequest("user_id is required")
	}
	if input.Day.IsZero() {
		input.Day = time.Now()
	}

	w := DayWindow(input.Day, input.Location)
	sums, err := db.SumByUserAndWindow(ctx, database, input.UserID, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	out := &DayTotalOutput{
		UserID:   input.UserID,
		Date:     w.Start.Format(DateLayout),
		Calories: meal.Round(sums.Calories, 2),
		Protein:  meal.Round(sums.Protein, 2),
		Count:    sums.Count,
		Text:     meal.FormatToday(sums.Calories, sums.Protein, sums.Count),
	}

	if input.IncludeMeals && sums.Count > 0 {
		records, err := db.ListByUserAndWindow(ctx, database, input.UserID, w.Start, w.End)
		if err != nil {
			return nil, err
		}
		out.Meals = make([]MealSummary, 0, len(records))
		for _, r := range records {
			out.Meals = append(out.Meals, MealSummary{
				ID:       r.ID,
				Text:     r.RawText,
				Calories: r.Calories,
				Protein:  r.Protein,
				LoggedAt: r.Timestamp.In(w.Start.Location()).Format(time.RFC3339),
			})
		}
	}

	return out, nil
}

// Summary is one user's end-of-day summary. Calories and Protein are
// rounded to one decimal.
type Summary struct {
	UserID   int64   `json:"user_id"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Count    int     `json:"count"`
	Text     string  `json:"text"`
}

// SummariesOutput contains the result of the DaySummaries operation.
type SummariesOutput struct {
	Date      string    `json:"date"`
	Summaries []Summary `json:"summaries"`
}

// DaySummaries builds the end-of-day summary for every user with at least
// one meal on the calendar day containing day.
func DaySummaries(ctx context.Context, database *sql.DB, day time.Time, loc *time.Location) (*SummariesOutput, error) {
	return summariesFor(ctx, database, DayWindow(day, loc))
}

func summariesFor(ctx context.Context, database *sql.DB, w Window) (*SummariesOutput, error) {
	totals, err := db.SumAllUsersByWindow(ctx, database, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	out := &SummariesOutput{
		Date:      w.Start.Format(DateLayout),
		Summaries: make([]Summary, 0, len(totals)),
	}
	for _, u := range totals {
		if u.Count < 1 {
			continue
		}
		out.Summaries = append(out.Summaries, Summary{
			UserID:   u.UserID,
			Calories: meal.Round(u.Calories, 1),
			Protein:  meal.Round(u.Protein, 1),
			Count:    u.Count,
			Text:     meal.FormatRollup(w.Start, u.Calories, u.Protein, u.Count),
		})
	}
	return out, nil
}
