package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/azizzya/zozh-bot/internal/db"
	"github.com/azizzya/zozh-bot/internal/errors"
	"github.com/azizzya/zozh-bot/internal/meal"
)

// LogInput contains parameters for the LogMeal operation.
type LogInput struct {
	UserID     int64          // required, non-zero
	Text       string         // raw message
	ReceivedAt time.Time      // default: now
	Location   *time.Location // day boundaries; default: time.Local
}

// LogOutput contains the result of the LogMeal operation.
type LogOutput struct {
	ID            string      `json:"id"`
	Items         []meal.Item `json:"items"`
	TotalCalories float64     `json:"total_calories"`
	TotalProtein  float64     `json:"total_protein"`
	DayCalories   float64     `json:"day_calories"`
	DayProtein    float64     `json:"day_protein"`
	Reply         string      `json:"reply"`
}

// LogMeal parses a meal message, appends it to the log and renders the
// reply with the sender's running total for the day.
//
// A message in which no line parses returns an EMPTY_MEAL error and
// nothing is stored. A storage failure aborts the whole operation.
func LogMeal(ctx context.Context, database *sql.DB, input LogInput) (*LogOutput, error) {
	if input.UserID == 0 {
		return nil, errors.NewInvalidRequest("user_id is required")
	}
	if input.ReceivedAt.IsZero() {
		input.ReceivedAt = time.Now()
	}

	res := meal.Parse(input.Text)
	if res.Empty() {
		return nil, errors.NewEmptyMeal(meal.CountLines(input.Text))
	}

	record := &meal.Record{
		UserID:    input.UserID,
		RawText:   input.Text,
		Calories:  res.Calories,
		Protein:   res.Protein,
		Timestamp: input.ReceivedAt,
	}
	id, err := db.InsertMeal(ctx, database, record)
	if err != nil {
		return nil, err
	}

	today := DayWindow(input.ReceivedAt, input.Location)
	sums, err := db.SumByUserAndWindow(ctx, database, input.UserID, today.Start, today.End)
	if err != nil {
		return nil, err
	}

	return &LogOutput{
		ID:            id,
		Items:         res.Items,
		TotalCalories: res.Calories,
		TotalProtein:  res.Protein,
		DayCalories:   meal.Round(sums.Calories, 2),
		DayProtein:    meal.Round(sums.Protein, 2),
		Reply:         meal.FormatReply(res, sums.Calories, sums.Protein),
	}, nil
}
