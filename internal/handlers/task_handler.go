package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/ecosayahat/backend/internal/services"
)

type TaskHandler struct {
	tasks        *services.TaskService
	verification *services.VerificationService
	validator    *services.ValidationHelper
}

func NewTaskHandler(tasks *services.TaskService, verification *services.VerificationService) *TaskHandler {
	return &TaskHandler{
		tasks:        tasks,
		verification: verification,
		validator:    services.NewValidationHelper(),
	}
}

// ListTasks returns the eco-task catalog
// @Summary List eco-tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} models.Task
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		log.Printf("[TASK] Catalog query failed: %v", err)
		services.SendErrorResponse(w, "Failed to fetch tasks", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// SubmitTask creates a submission and schedules its verification
// @Summary Submit an eco-task for verification
// @Description Creates a submission in the verifying state and returns immediately; the verdict is applied asynchronously
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{task_id=string,image_base64=string} true "Submission request"
// @Success 200 {object} models.TaskSubmission
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /tasks/submit [post]
func (h *TaskHandler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req struct {
		TaskID      string `json:"task_id" validate:"required"`
		ImageBase64 string `json:"image_base64" validate:"required"`
	}

	// Evidence images arrive inline, so allow a larger body than usual.
	r.Body = http.MaxBytesReader(w, r.Body, 10*1024*1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	submission, err := h.tasks.CreateSubmission(r.Context(), userID, req.TaskID, req.ImageBase64)
	if err != nil {
		log.Printf("[TASK] Submission insert failed for user %s: %v", userID, err)
		services.SendErrorResponse(w, "Failed to create submission", http.StatusInternalServerError, nil)
		return
	}

	// Fire-and-forget: the response carries the verifying submission, the
	// verdict lands in the background.
	h.verification.Enqueue(r.Context(), services.VerificationJob{
		SubmissionID: submission.ID,
		TaskID:       submission.TaskID,
		UserID:       submission.UserID,
		ImageBase64:  submission.ImageBase64,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(submission)
}

// ListMySubmissions returns the caller's submissions for outcome polling
// @Summary List own task submissions
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TaskSubmission
// @Failure 401 {object} services.ErrorResponse
// @Router /tasks/submissions [get]
func (h *TaskHandler) ListMySubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	submissions, err := h.tasks.ListSubmissionsByUser(r.Context(), userID)
	if err != nil {
		log.Printf("[TASK] Submission query failed for user %s: %v", userID, err)
		services.SendErrorResponse(w, "Failed to fetch submissions", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(submissions)
}
