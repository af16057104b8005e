package meal

import "time"

// Record is one persisted meal entry. Records are append-only: they are
// created once per accepted message and never updated or deleted.
type Record struct {
	// ID is a ULID assigned by the storage layer on insert
	ID string

	// UserID is the sender's Telegram user id
	UserID int64

	// RawText is the message exactly as received
	RawText string

	// Calories is the sum of the parsed items' calories
	Calories float64

	// Protein is the sum of the parsed items' protein
	Protein float64

	// Timestamp is when the record was accepted
	Timestamp time.Time
}

// Item is one parsed food line.
type Item struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}
