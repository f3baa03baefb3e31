package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ecosayahat/backend/internal/models"
	"github.com/ecosayahat/backend/internal/seed"
)

// TaskService owns the eco-task catalog and the submission state machine:
// verifying -> {approved, rejected, error}. Terminal states are enforced by
// conditional updates, so no transition can ever leave a terminal state.
type TaskService struct {
	db *sql.DB
}

func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

// ListTasks returns the task catalog, seeding it on first access.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.queryTasks(ctx)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		if err := seed.Tasks(ctx, s.db); err != nil {
			return nil, fmt.Errorf("failed to seed tasks: %w", err)
		}
		return s.queryTasks(ctx)
	}
	return tasks, nil
}

func (s *TaskService) queryTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title_ru, title_en, title_kz, description_ru, description_en, description_kz,
		       reward_coins, type, image_required
		FROM tasks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.TitleRU, &t.TitleEN, &t.TitleKZ,
			&t.DescriptionRU, &t.DescriptionEN, &t.DescriptionKZ,
			&t.RewardCoins, &t.Type, &t.ImageRequired); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask looks a task up by id. Returns sql.ErrNoRows when absent.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title_ru, title_en, title_kz, description_ru, description_en, description_kz,
		       reward_coins, type, image_required
		FROM tasks WHERE id = $1`, taskID).
		Scan(&t.ID, &t.TitleRU, &t.TitleEN, &t.TitleKZ,
			&t.DescriptionRU, &t.DescriptionEN, &t.DescriptionKZ,
			&t.RewardCoins, &t.Type, &t.ImageRequired)
	return t, err
}

// CreateSubmission persists a new submission in the verifying state and
// returns it. The task id is not validated here: a missing task is handled
// (silently) by the verification dispatcher.
func (s *TaskService) CreateSubmission(ctx context.Context, userID, taskID, imageBase64 string) (models.TaskSubmission, error) {
	submission := models.TaskSubmission{
		ID:          uuid.NewString(),
		UserID:      userID,
		TaskID:      taskID,
		ImageBase64: imageBase64,
		Status:      models.SubmissionVerifying,
		CreatedAt:   time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO task_submissions (id, user_id, task_id, image_base64, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		submission.ID, submission.UserID, submission.TaskID,
		submission.ImageBase64, submission.Status, submission.CreatedAt)
	if err != nil {
		return models.TaskSubmission{}, err
	}

	log.Printf("[TASK] Submission %s created for task %s by user %s", submission.ID, taskID, userID)
	return submission, nil
}

// ListSubmissionsByUser returns the caller's submissions newest first, for
// polling verification outcomes.
func (s *TaskService) ListSubmissionsByUser(ctx context.Context, userID string) ([]models.TaskSubmission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, task_id, status, verified_at, created_at
		FROM task_submissions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 100`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := []models.TaskSubmission{}
	for rows.Next() {
		var sub models.TaskSubmission
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.TaskID, &sub.Status, &sub.VerifiedAt, &sub.CreatedAt); err != nil {
			return nil, err
		}
		submissions = append(submissions, sub)
	}
	return submissions, rows.Err()
}

// MarkApprovedTx transitions verifying -> approved inside a caller-owned
// transaction, stamping verified_at. The dispatcher pairs it with the ledger
// credit so approval and payout commit together.
func (s *TaskService) MarkApprovedTx(tx *sql.Tx, submissionID string, at time.Time) error {
	return s.transitionTx(tx, submissionID, models.SubmissionApproved, &at)
}

// MarkRejected transitions verifying -> rejected, stamping verified_at.
func (s *TaskService) MarkRejected(ctx context.Context, submissionID string, at time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE task_submissions SET status = $1, verified_at = $2
		WHERE id = $3 AND status = $4`,
		models.SubmissionRejected, at, submissionID, models.SubmissionVerifying)
	if err != nil {
		return err
	}
	return requireTransition(result, submissionID)
}

// MarkError transitions verifying -> error. verified_at stays unset on this
// path.
func (s *TaskService) MarkError(ctx context.Context, submissionID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE task_submissions SET status = $1
		WHERE id = $2 AND status = $3`,
		models.SubmissionError, submissionID, models.SubmissionVerifying)
	if err != nil {
		return err
	}
	return requireTransition(result, submissionID)
}

func (s *TaskService) transitionTx(tx *sql.Tx, submissionID, status string, at *time.Time) error {
	result, err := tx.Exec(`
		UPDATE task_submissions SET status = $1, verified_at = $2
		WHERE id = $3 AND status = $4`,
		status, at, submissionID, models.SubmissionVerifying)
	if err != nil {
		return err
	}
	return requireTransition(result, submissionID)
}

func requireTransition(result sql.Result, submissionID string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("submission %s is not in the verifying state", submissionID)
	}
	return nil
}
