package models

import "time"

const (
	TransactionEarned = "earned"
	TransactionSpent  = "spent"
)

// EcocoinTransaction is an append-only ledger row. Amount is signed:
// positive for earned, negative for spent. Rows are never updated or deleted.
type EcocoinTransaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      int64     `json:"amount" example:"50"`
	Type        string    `json:"type" example:"earned"`
	Description string    `json:"description" example:"Task completed: Waste Sorting"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeaderboardEntry is a read projection over the users balance column.
type LeaderboardEntry struct {
	Name           string `json:"name"`
	EcocoinBalance int64  `json:"ecocoin_balance"`
}
