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

// TaxiService implements the dispatch mini-workflow: tourists create pending
// orders, drivers see the pending pool and accept orders with a conditional
// update so two drivers can never claim the same ride.
type TaxiService struct {
	db        *sql.DB
	validator *validator.Validate
}

type createTaxiOrderRequest struct {
	FromLocation string  `json:"from_location" validate:"required"`
	ToLocation   string  `json:"to_location" validate:"required"`
	FromLat      float64 `json:"from_lat" validate:"required"`
	FromLng      float64 `json:"from_lng" validate:"required"`
	ToLat        float64 `json:"to_lat" validate:"required"`
	ToLng        float64 `json:"to_lng" validate:"required"`
}

func NewTaxiService(db *sql.DB) *TaxiService {
	return &TaxiService{db: db, validator: validator.New()}
}

// CreateOrder creates a pending taxi order
// @Summary Order a taxi
// @Tags taxi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{from_location=string,to_location=string,from_lat=number,from_lng=number,to_lat=number,to_lng=number} true "Order"
// @Success 200 {object} models.TaxiOrder
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /taxi/order [post]
func (s *TaxiService) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req createTaxiOrderRequest
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

	order := models.TaxiOrder{
		ID:           uuid.NewString(),
		UserID:       userID,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		FromLat:      req.FromLat,
		FromLng:      req.FromLng,
		ToLat:        req.ToLat,
		ToLng:        req.ToLng,
		Status:       models.TaxiOrderPending,
		CreatedAt:    time.Now(),
	}

	_, err := s.db.ExecContext(r.Context(), `
		INSERT INTO taxi_orders (id, user_id, from_location, to_location, from_lat, from_lng, to_lat, to_lng, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID, order.UserID, order.FromLocation, order.ToLocation,
		order.FromLat, order.FromLng, order.ToLat, order.ToLng, order.Status, order.CreatedAt)
	if err != nil {
		log.Printf("[TAXI] Order insert failed for user %s: %v", userID, err)
		SendErrorResponse(w, "Failed to create order", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[TAXI] Order %s created by user %s", order.ID, userID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// ListOrders lists orders: drivers see the pending pool, everyone else their own
// @Summary List taxi orders
// @Tags taxi
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TaxiOrder
// @Failure 401 {object} ErrorResponse
// @Router /taxi/orders [get]
func (s *TaxiService) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	role, _ := r.Context().Value("userRole").(string)

	var (
		query string
		arg   string
	)
	if role == models.RoleTaxiDriver {
		query = `SELECT id, user_id, driver_id, from_location, to_location, from_lat, from_lng, to_lat, to_lng, status, created_at
			FROM taxi_orders WHERE status = $1 ORDER BY created_at DESC LIMIT 100`
		arg = models.TaxiOrderPending
	} else {
		query = `SELECT id, user_id, driver_id, from_location, to_location, from_lat, from_lng, to_lat, to_lng, status, created_at
			FROM taxi_orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT 100`
		arg = userID
	}

	rows, err := s.db.QueryContext(r.Context(), query, arg)
	if err != nil {
		log.Printf("[TAXI] Order query failed for user %s: %v", userID, err)
		SendErrorResponse(w, "Failed to fetch orders", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	orders := []models.TaxiOrder{}
	for rows.Next() {
		var o models.TaxiOrder
		if err := rows.Scan(&o.ID, &o.UserID, &o.DriverID, &o.FromLocation, &o.ToLocation,
			&o.FromLat, &o.FromLng, &o.ToLat, &o.ToLng, &o.Status, &o.CreatedAt); err != nil {
			log.Printf("[TAXI] Order scan failed: %v", err)
			SendErrorResponse(w, "Failed to fetch orders", http.StatusInternalServerError, nil)
			return
		}
		orders = append(orders, o)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// AcceptOrder claims a pending order for the calling driver
// @Summary Accept a taxi order
// @Tags taxi
// @Produce json
// @Security BearerAuth
// @Param orderID path string true "Order id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /taxi/accept/{orderID} [post]
func (s *TaxiService) AcceptOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	role, _ := r.Context().Value("userRole").(string)
	if role != models.RoleTaxiDriver {
		SendErrorResponse(w, "Only taxi drivers can accept orders", http.StatusForbidden, nil)
		return
	}

	orderID := chi.URLParam(r, "orderID")

	// Conditional update: only one driver wins a pending order.
	result, err := s.db.ExecContext(r.Context(), `
		UPDATE taxi_orders SET driver_id = $1, status = $2
		WHERE id = $3 AND status = $4`,
		userID, models.TaxiOrderAccepted, orderID, models.TaxiOrderPending)
	if err != nil {
		log.Printf("[TAXI] Accept failed for order %s: %v", orderID, err)
		SendErrorResponse(w, "Failed to accept order", http.StatusInternalServerError, nil)
		return
	}

	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		SendErrorResponse(w, "Order not found or already accepted", http.StatusNotFound, nil)
		return
	}

	log.Printf("[TAXI] Order %s accepted by driver %s", orderID, userID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Order accepted"})
}
