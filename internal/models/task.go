package models

import "time"

// Submission verification states. verifying is initial; the other three are
// terminal and no transition leads back out of them.
const (
	SubmissionVerifying = "verifying"
	SubmissionApproved  = "approved"
	SubmissionRejected  = "rejected"
	SubmissionError     = "error"
)

// Task is an eco-task a user can complete for a fixed coin reward.
// Rows are seeded once and never updated afterwards.
type Task struct {
	ID            string `json:"id" example:"task_recycle"`
	TitleRU       string `json:"title_ru"`
	TitleEN       string `json:"title_en"`
	TitleKZ       string `json:"title_kz"`
	DescriptionRU string `json:"description_ru"`
	DescriptionEN string `json:"description_en"`
	DescriptionKZ string `json:"description_kz"`
	RewardCoins   int64  `json:"reward_coins" example:"50"`
	Type          string `json:"type" example:"recycling"`
	ImageRequired bool   `json:"image_required"`
}

type TaskSubmission struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	TaskID      string     `json:"task_id"`
	ImageBase64 string     `json:"image_base64,omitempty"` // not loaded on list reads
	Status      string     `json:"status" example:"verifying"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"` // stamped on approved/rejected, never on error
	CreatedAt   time.Time  `json:"created_at"`
}
