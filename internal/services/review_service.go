package services

import (
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ecosayahat/backend/internal/models"
)

// ReviewService implements the review moderation workflow: tourists create
// pending reviews, admins approve or reject them, and only approved reviews
// are publicly listed.
type ReviewService struct {
	db        *sql.DB
	validator *validator.Validate
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func NewReviewService(db *sql.DB) *ReviewService {
	return &ReviewService{db: db, validator: validator.New()}
}

// ListApproved returns the approved reviews of an attraction, newest first
// @Summary List approved reviews
// @Tags reviews
// @Produce json
// @Param attractionID path string true "Attraction id"
// @Success 200 {array} models.Review
// @Router /attractions/{attractionID}/reviews [get]
func (s *ReviewService) ListApproved(w http.ResponseWriter, r *http.Request) {
	attractionID := chi.URLParam(r, "attractionID")

	reviews, err := s.queryReviews(r, `
		SELECT id, attraction_id, user_id, user_name, rating, comment, status, created_at
		FROM reviews
		WHERE attraction_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 100`, attractionID, models.ReviewApproved)
	if err != nil {
		log.Printf("[REVIEW] Query failed for attraction %s: %v", attractionID, err)
		SendErrorResponse(w, "Failed to fetch reviews", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}

// Create stores a pending review for moderation
// @Summary Create a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attractionID path string true "Attraction id"
// @Param request body object{rating=int,comment=string} true "Review"
// @Success 200 {object} models.Review
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /attractions/{attractionID}/reviews [post]
func (s *ReviewService) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	attractionID := chi.URLParam(r, "attractionID")

	var req createReviewRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.Struct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	var userName string
	if err := s.db.QueryRowContext(r.Context(), `SELECT name FROM users WHERE id = $1`, userID).Scan(&userName); err != nil {
		log.Printf("[REVIEW] User lookup failed for %s: %v", userID, err)
		SendErrorResponse(w, "Failed to create review", http.StatusInternalServerError, nil)
		return
	}

	review := models.Review{
		ID:           uuid.NewString(),
		AttractionID: attractionID,
		UserID:       userID,
		UserName:     userName,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Status:       models.ReviewPending,
		CreatedAt:    time.Now(),
	}

	_, err := s.db.ExecContext(r.Context(), `
		INSERT INTO reviews (id, attraction_id, user_id, user_name, rating, comment, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		review.ID, review.AttractionID, review.UserID, review.UserName,
		review.Rating, review.Comment, review.Status, review.CreatedAt)
	if err != nil {
		log.Printf("[REVIEW] Insert failed for user %s: %v", userID, err)
		SendErrorResponse(w, "Failed to create review", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(review)
}

// ListAll returns every review for moderation (admin only)
// @Summary List all reviews
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Review
// @Failure 403 {object} ErrorResponse
// @Router /admin/reviews [get]
func (s *ReviewService) ListAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.queryReviews(r, `
		SELECT id, attraction_id, user_id, user_name, rating, comment, status, created_at
		FROM reviews
		ORDER BY created_at DESC
		LIMIT 100`)
	if err != nil {
		log.Printf("[REVIEW] Admin query failed: %v", err)
		SendErrorResponse(w, "Failed to fetch reviews", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}

// Approve marks a review approved (admin only)
// @Summary Approve a review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param reviewID path string true "Review id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Router /admin/reviews/{reviewID}/approve [post]
func (s *ReviewService) Approve(w http.ResponseWriter, r *http.Request) {
	s.moderate(w, r, models.ReviewApproved)
}

// Reject marks a review rejected (admin only)
// @Summary Reject a review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param reviewID path string true "Review id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Router /admin/reviews/{reviewID}/reject [post]
func (s *ReviewService) Reject(w http.ResponseWriter, r *http.Request) {
	s.moderate(w, r, models.ReviewRejected)
}

func (s *ReviewService) moderate(w http.ResponseWriter, r *http.Request, status string) {
	reviewID := chi.URLParam(r, "reviewID")

	result, err := s.db.ExecContext(r.Context(), `UPDATE reviews SET status = $1 WHERE id = $2`, status, reviewID)
	if err != nil {
		log.Printf("[REVIEW] Moderation update failed for %s: %v", reviewID, err)
		SendErrorResponse(w, "Failed to update review", http.StatusInternalServerError, nil)
		return
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		SendErrorResponse(w, "Review not found", http.StatusNotFound, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Review " + status})
}

// Stats returns platform counters (admin only)
// @Summary Admin statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 403 {object} ErrorResponse
// @Router /admin/stats [get]
func (s *ReviewService) Stats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]int64{}
	queries := map[string]struct {
		query string
		args  []any
	}{
		"total_users":           {"SELECT COUNT(*) FROM users", nil},
		"total_orders":          {"SELECT COUNT(*) FROM taxi_orders", nil},
		"total_tasks_completed": {"SELECT COUNT(*) FROM task_submissions WHERE status = $1", []any{models.SubmissionApproved}},
		"pending_reviews":       {"SELECT COUNT(*) FROM reviews WHERE status = $1", []any{models.ReviewPending}},
	}

	for key, q := range queries {
		var count int64
		if err := s.db.QueryRowContext(r.Context(), q.query, q.args...).Scan(&count); err != nil {
			log.Printf("[REVIEW] Stats query %s failed: %v", key, err)
			SendErrorResponse(w, "Failed to fetch stats", http.StatusInternalServerError, nil)
			return
		}
		stats[key] = count
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *ReviewService) queryReviews(r *http.Request, query string, args ...any) ([]models.Review, error) {
	rows, err := s.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.AttractionID, &rev.UserID, &rev.UserName,
			&rev.Rating, &rev.Comment, &rev.Status, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
