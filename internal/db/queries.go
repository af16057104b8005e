package db

import (
	"context"
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/azizzya/zozh-bot/internal/errors"
	"github.com/azizzya/zozh-bot/internal/meal"
)

// Sums is an aggregate over the meals in a time window.
type Sums struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Count    int     `json:"count"`
}

// UserSums is one user's aggregate within a window.
type UserSums struct {
	UserID int64 `json:"user_id"`
	Sums
}

// InsertMeal appends a meal record and returns its newly assigned ID.
// r.ID is set on success.
func InsertMeal(ctx context.Context, db *sql.DB, r *meal.Record) (string, error) {
	id, err := generateULID(r.Timestamp)
	if err != nil {
		return "", errors.NewInternal(err)
	}

	query := `
		INSERT INTO meals (id, user_id, message, calories, protein, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query,
		id, r.UserID, r.RawText, r.Calories, r.Protein, r.Timestamp.UnixMilli(),
	)
	if err != nil {
		return "", errors.NewInternal(err)
	}

	r.ID = id
	return id, nil
}

// SumByUserAndWindow sums one user's meals with start <= timestamp < end.
// A window with no meals yields zero sums.
func SumByUserAndWindow(ctx context.Context, db *sql.DB, userID int64, start, end time.Time) (Sums, error) {
	query := `
		SELECT COALESCE(SUM(calories), 0.0), COALESCE(SUM(protein), 0.0), COUNT(*)
		FROM meals
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
	`

	var s Sums
	err := db.QueryRowContext(ctx, query, userID, start.UnixMilli(), end.UnixMilli()).
		Scan(&s.Calories, &s.Protein, &s.Count)
	if err != nil {
		return Sums{}, errors.NewInternal(err)
	}
	return s, nil
}

// SumAllUsersByWindow sums meals with start <= timestamp < end for every
// user that has at least one, ordered by user ID.
func SumAllUsersByWindow(ctx context.Context, db *sql.DB, start, end time.Time) ([]UserSums, error) {
	query := `
		SELECT user_id, SUM(calories), SUM(protein), COUNT(*)
		FROM meals
		WHERE created_at >= ? AND created_at < ?
		GROUP BY user_id
		ORDER BY user_id
	`

	rows, err := db.QueryContext(ctx, query, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var result []UserSums
	for rows.Next() {
		var u UserSums
		if err := rows.Scan(&u.UserID, &u.Calories, &u.Protein, &u.Count); err != nil {
			return nil, errors.NewInternal(err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return result, nil
}

// ListByUserAndWindow returns one user's meals with start <= timestamp < end,
// oldest first.
func ListByUserAndWindow(ctx context.Context, db *sql.DB, userID int64, start, end time.Time) ([]meal.Record, error) {
	query := `
		SELECT id, user_id, message, calories, protein, created_at
		FROM meals
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at, id
	`

	rows, err := db.QueryContext(ctx, query, userID, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	records := make([]meal.Record, 0)
	for rows.Next() {
		var (
			r         meal.Record
			createdAt int64
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.RawText, &r.Calories, &r.Protein, &createdAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		r.Timestamp = time.UnixMilli(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return records, nil
}

// generateULID generates a new ULID stamped with t.
func generateULID(t time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
