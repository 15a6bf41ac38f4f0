package models

import "time"

// Deck is a named, immutable ordered set of questions produced by import
// or generation. IsNew is cleared once viewed; Active is a soft-delete flag.
type Deck struct {
	ID            int64
	Name          string
	IsNew         bool
	Active        bool
	QuestionCount int
	CreatedAt     time.Time
}

// DeckQuestion links a question into a deck
type DeckQuestion struct {
	ID         int64
	DeckID     int64
	QuestionID int64
}
