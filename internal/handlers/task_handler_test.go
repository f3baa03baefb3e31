package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ecosayahat/backend/internal/models"
	"github.com/ecosayahat/backend/internal/services"
)

type stubClassifier struct{}

func (stubClassifier) Verify(ctx context.Context, sessionID, prompt, imageBase64 string) (string, error) {
	return "VERIFIED", nil
}

func newTaskHandlerFixture(t *testing.T) (*TaskHandler, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	tasks := services.NewTaskService(db)
	ledger := services.NewEcocoinLedgerService(db, nil)
	verification := services.NewVerificationService(db, tasks, ledger, stubClassifier{})
	handler := NewTaskHandler(tasks, verification)

	return handler, mock, func() { db.Close() }
}

func TestTaskHandler_ListTasks(t *testing.T) {
	handler, mock, cleanup := newTaskHandlerFixture(t)
	defer cleanup()

	t.Run("returns catalog", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, title_ru, title_en, title_kz").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "title_ru", "title_en", "title_kz",
				"description_ru", "description_en", "description_kz",
				"reward_coins", "type", "image_required",
			}).AddRow("task_recycle", "Сортировка мусора", "Waste Sorting", "Қоқысты сұрыптау",
				"ru", "en", "kz", int64(50), "recycling", true))

		r := httptest.NewRequest("GET", "/tasks", nil)
		w := httptest.NewRecorder()

		handler.ListTasks(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var tasks []models.Task
		json.Unmarshal(w.Body.Bytes(), &tasks)
		assert.Len(t, tasks, 1)
		assert.Equal(t, int64(50), tasks[0].RewardCoins)
	})
}

func TestTaskHandler_SubmitTask(t *testing.T) {
	t.Run("creates submission in verifying state", func(t *testing.T) {
		handler, mock, cleanup := newTaskHandlerFixture(t)
		defer cleanup()

		mock.ExpectExec("INSERT INTO task_submissions").
			WithArgs(sqlmock.AnyArg(), "user1", "task_recycle", "aGVsbG8=", models.SubmissionVerifying, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		body, _ := json.Marshal(map[string]string{
			"task_id":      "task_recycle",
			"image_base64": "aGVsbG8=",
		})
		r := httptest.NewRequest("POST", "/tasks/submit", bytes.NewBuffer(body))
		r = r.WithContext(context.WithValue(r.Context(), "userID", "user1"))
		w := httptest.NewRecorder()

		handler.SubmitTask(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var submission models.TaskSubmission
		json.Unmarshal(w.Body.Bytes(), &submission)
		assert.Equal(t, models.SubmissionVerifying, submission.Status)
		assert.Equal(t, "task_recycle", submission.TaskID)
		assert.Nil(t, submission.VerifiedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing image is rejected", func(t *testing.T) {
		handler, _, cleanup := newTaskHandlerFixture(t)
		defer cleanup()

		body, _ := json.Marshal(map[string]string{"task_id": "task_recycle"})
		r := httptest.NewRequest("POST", "/tasks/submit", bytes.NewBuffer(body))
		r = r.WithContext(context.WithValue(r.Context(), "userID", "user1"))
		w := httptest.NewRecorder()

		handler.SubmitTask(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		handler, _, cleanup := newTaskHandlerFixture(t)
		defer cleanup()

		r := httptest.NewRequest("POST", "/tasks/submit", bytes.NewBufferString("not json"))
		r = r.WithContext(context.WithValue(r.Context(), "userID", "user1"))
		w := httptest.NewRecorder()

		handler.SubmitTask(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		handler, _, cleanup := newTaskHandlerFixture(t)
		defer cleanup()

		r := httptest.NewRequest("POST", "/tasks/submit", bytes.NewBufferString("{}"))
		w := httptest.NewRecorder()

		handler.SubmitTask(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTaskHandler_ListMySubmissions(t *testing.T) {
	handler, mock, cleanup := newTaskHandlerFixture(t)
	defer cleanup()

	t.Run("returns caller's submissions", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, task_id, status, verified_at, created_at").
			WithArgs("user1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "task_id", "status", "verified_at", "created_at"}).
				AddRow("sub1", "user1", "task_recycle", models.SubmissionApproved, time.Now(), time.Now()))

		r := httptest.NewRequest("GET", "/tasks/submissions", nil)
		r = r.WithContext(context.WithValue(r.Context(), "userID", "user1"))
		w := httptest.NewRecorder()

		handler.ListMySubmissions(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		// The listing never loads evidence images, so the payload must not
		// carry an empty image_base64 field.
		assert.NotContains(t, w.Body.String(), "image_base64")
	})
}
