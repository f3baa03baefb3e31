package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ecosayahat/backend/internal/models"
)

// stubClassifier returns a canned verdict without a network call.
type stubClassifier struct {
	response string
	err      error
}

func (c *stubClassifier) Verify(ctx context.Context, sessionID, prompt, imageBase64 string) (string, error) {
	return c.response, c.err
}

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title_ru", "title_en", "title_kz",
		"description_ru", "description_en", "description_kz",
		"reward_coins", "type", "image_required",
	}).AddRow("task_recycle", "Сортировка мусора", "Waste Sorting", "Қоқысты сұрыптау",
		"Сфотографируйте как вы сортируете отходы", "Take a photo of you sorting waste",
		"Қалдықтарды сұрыптап жатқаныңызды суретке түсіріңіз",
		int64(50), "recycling", true)
}

func newVerificationFixture(t *testing.T, classifier Classifier) (*VerificationService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	tasks := NewTaskService(db)
	ledger := NewEcocoinLedgerService(db, nil)
	service := NewVerificationService(db, tasks, ledger, classifier)

	return service, mock, func() { db.Close() }
}

func TestVerificationService_Process(t *testing.T) {
	job := VerificationJob{
		SubmissionID: "sub1",
		TaskID:       "task_recycle",
		UserID:       "user1",
		ImageBase64:  "aGVsbG8=",
	}

	t.Run("approval commits transition and payout together", func(t *testing.T) {
		service, mock, cleanup := newVerificationFixture(t, &stubClassifier{response: "VERIFIED - the photo shows waste sorting."})
		defer cleanup()

		mock.ExpectQuery("SELECT id, title_ru, title_en, title_kz").
			WithArgs("task_recycle").
			WillReturnRows(taskRows())
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE task_submissions SET status = \\$1, verified_at = \\$2").
			WithArgs(models.SubmissionApproved, sqlmock.AnyArg(), "sub1", models.SubmissionVerifying).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET ecocoin_balance = ecocoin_balance \\+ \\$1 WHERE id = \\$2").
			WithArgs(int64(50), "user1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO ecocoin_transactions").
			WithArgs(sqlmock.AnyArg(), "user1", int64(50), models.TransactionEarned, "Task completed: Waste Sorting", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		service.Process(context.Background(), job)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("verdict marker is case-insensitive", func(t *testing.T) {
		service, mock, cleanup := newVerificationFixture(t, &stubClassifier{response: "Looks good, verified."})
		defer cleanup()

		mock.ExpectQuery("SELECT id, title_ru, title_en, title_kz").
			WithArgs("task_recycle").
			WillReturnRows(taskRows())
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE task_submissions SET status = \\$1, verified_at = \\$2").
			WithArgs(models.SubmissionApproved, sqlmock.AnyArg(), "sub1", models.SubmissionVerifying).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET ecocoin_balance = ecocoin_balance \\+ \\$1 WHERE id = \\$2").
			WithArgs(int64(50), "user1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO ecocoin_transactions").
			WithArgs(sqlmock.AnyArg(), "user1", int64(50), models.TransactionEarned, "Task completed: Waste Sorting", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		service.Process(context.Background(), job)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejection skips the ledger", func(t *testing.T) {
		service, mock, cleanup := newVerificationFixture(t, &stubClassifier{response: "REJECTED - no eco activity visible."})
		defer cleanup()

		mock.ExpectQuery("SELECT id, title_ru, title_en, title_kz").
			WithArgs("task_recycle").
			WillReturnRows(taskRows())
		mock.ExpectExec("UPDATE task_submissions SET status = \\$1, verified_at = \\$2").
			WithArgs(models.SubmissionRejected, sqlmock.AnyArg(), "sub1", models.SubmissionVerifying).
			WillReturnResult(sqlmock.NewResult(0, 1))

		service.Process(context.Background(), job)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("classifier failure marks submission error", func(t *testing.T) {
		service, mock, cleanup := newVerificationFixture(t, &stubClassifier{err: errors.New("upstream timeout")})
		defer cleanup()

		mock.ExpectQuery("SELECT id, title_ru, title_en, title_kz").
			WithArgs("task_recycle").
			WillReturnRows(taskRows())
		mock.ExpectExec("UPDATE task_submissions SET status = \\$1").
			WithArgs(models.SubmissionError, "sub1", models.SubmissionVerifying).
			WillReturnResult(sqlmock.NewResult(0, 1))

		service.Process(context.Background(), job)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing task leaves submission untouched", func(t *testing.T) {
		service, mock, cleanup := newVerificationFixture(t, &stubClassifier{response: "VERIFIED"})
		defer cleanup()

		mock.ExpectQuery("SELECT id, title_ru, title_en, title_kz").
			WithArgs("task_recycle").
			WillReturnError(sql.ErrNoRows)

		service.Process(context.Background(), job)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed payout marks submission error", func(t *testing.T) {
		service, mock, cleanup := newVerificationFixture(t, &stubClassifier{response: "VERIFIED"})
		defer cleanup()

		mock.ExpectQuery("SELECT id, title_ru, title_en, title_kz").
			WithArgs("task_recycle").
			WillReturnRows(taskRows())
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE task_submissions SET status = \\$1, verified_at = \\$2").
			WithArgs(models.SubmissionApproved, sqlmock.AnyArg(), "sub1", models.SubmissionVerifying).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET ecocoin_balance = ecocoin_balance \\+ \\$1 WHERE id = \\$2").
			WithArgs(int64(50), "user1").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()
		mock.ExpectExec("UPDATE task_submissions SET status = \\$1").
			WithArgs(models.SubmissionError, "sub1", models.SubmissionVerifying).
			WillReturnResult(sqlmock.NewResult(0, 1))

		service.Process(context.Background(), job)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVerificationService_Enqueue(t *testing.T) {
	t.Run("full queue fails the submission", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		tasks := NewTaskService(db)
		ledger := NewEcocoinLedgerService(db, nil)
		service := NewVerificationService(db, tasks, ledger, &stubClassifier{response: "VERIFIED"})
		// No workers started and a hand-shrunk queue, so the second job
		// cannot be buffered.
		service.jobs = make(chan VerificationJob, 1)

		mock.ExpectExec("UPDATE task_submissions SET status = \\$1").
			WithArgs(models.SubmissionError, "sub2", models.SubmissionVerifying).
			WillReturnResult(sqlmock.NewResult(0, 1))

		service.Enqueue(context.Background(), VerificationJob{SubmissionID: "sub1"})
		service.Enqueue(context.Background(), VerificationJob{SubmissionID: "sub2"})

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsVerified(t *testing.T) {
	assert.True(t, isVerified("VERIFIED"))
	assert.True(t, isVerified("The submission is verified."))
	assert.True(t, isVerified("Result: VeRiFiEd, good job"))
	assert.False(t, isVerified("REJECTED"))
	assert.False(t, isVerified(""))
	assert.False(t, isVerified("This cannot be confirmed"))
}
