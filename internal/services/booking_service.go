package services

import (
	"bytes"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/ecosayahat/backend/internal/config"
	"github.com/ecosayahat/backend/internal/models"
)

// BookingService books hotel stays. Partner hotels accept eco-coins: the
// booking debits up to the configured spend amount from the guest's balance,
// clamped at whatever the guest actually has.
type BookingService struct {
	db        *sql.DB
	ledger    *EcocoinLedgerService
	validator *validator.Validate
	config    *config.EcocoinConfig
}

type bookHotelRequest struct {
	HotelID  string `json:"hotel_id" validate:"required"`
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Guests   int    `json:"guests" validate:"required,min=1"`
}

type bookHotelResponse struct {
	Message       string         `json:"message"`
	Booking       models.Booking `json:"booking"`
	EcocoinsSpent int64          `json:"ecocoins_spent"`
	VoucherQR     string         `json:"voucher_qr,omitempty"`
}

func NewBookingService(db *sql.DB, ledger *EcocoinLedgerService) *BookingService {
	return &BookingService{
		db:        db,
		ledger:    ledger,
		validator: validator.New(),
		config:    config.LoadEcocoinConfig(),
	}
}

// BookHotel books a stay and settles the partner eco-coin discount
// @Summary Book a hotel
// @Description Books a stay; partner hotels debit up to the configured eco-coin spend, clamped at the guest's balance
// @Tags hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{hotel_id=string,check_in=string,check_out=string,guests=int} true "Booking"
// @Success 200 {object} object{message=string,booking=models.Booking,ecocoins_spent=int64,voucher_qr=string}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /hotels/book [post]
func (s *BookingService) BookHotel(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req bookHotelRequest
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

	var hotel models.Hotel
	err := s.db.QueryRowContext(r.Context(), `
		SELECT id, region_id, name, description, price_per_night, is_partner, image_url, rating
		FROM hotels WHERE id = $1`, req.HotelID).
		Scan(&hotel.ID, &hotel.RegionID, &hotel.Name, &hotel.Description,
			&hotel.PricePerNight, &hotel.IsPartner, &hotel.ImageURL, &hotel.Rating)
	if err != nil {
		if err == sql.ErrNoRows {
			SendErrorResponse(w, "Hotel not found", http.StatusNotFound, nil)
		} else {
			log.Printf("[BOOKING] Hotel lookup failed for %s: %v", req.HotelID, err)
			SendErrorResponse(w, "Failed to book hotel", http.StatusInternalServerError, nil)
		}
		return
	}

	booking := models.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		HotelID:       hotel.ID,
		HotelName:     hotel.Name,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Guests:        req.Guests,
		TotalPrice:    hotel.PricePerNight,
		PaymentStatus: "completed",
		CreatedAt:     time.Now(),
	}

	if _, err := s.db.ExecContext(r.Context(), `
		INSERT INTO bookings (id, user_id, hotel_id, hotel_name, check_in, check_out, guests, total_price, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		booking.ID, booking.UserID, booking.HotelID, booking.HotelName,
		booking.CheckIn, booking.CheckOut, booking.Guests,
		booking.TotalPrice, booking.PaymentStatus, booking.CreatedAt); err != nil {
		log.Printf("[BOOKING] Insert failed for user %s: %v", userID, err)
		SendErrorResponse(w, "Failed to book hotel", http.StatusInternalServerError, nil)
		return
	}

	// The debit clamps at the guest's balance, so a low balance reduces the
	// discount instead of failing the booking.
	var spent int64
	if hotel.IsPartner {
		spent, err = s.ledger.Debit(r.Context(), userID, s.config.PartnerBookingSpend, "Hotel booking: "+hotel.Name)
		if err != nil {
			log.Printf("[BOOKING] Eco-coin debit failed for booking %s: %v", booking.ID, err)
			SendErrorResponse(w, "Failed to book hotel", http.StatusInternalServerError, nil)
			return
		}
	}

	voucher, err := s.voucherQR(booking)
	if err != nil {
		// The booking is already committed, ship it without the voucher image.
		log.Printf("[BOOKING] Voucher QR generation failed for booking %s: %v", booking.ID, err)
	}

	log.Printf("[BOOKING] Booking %s created for user %s at %s (spent %d coins)",
		booking.ID, userID, hotel.ID, spent)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookHotelResponse{
		Message:       "Booking successful",
		Booking:       booking,
		EcocoinsSpent: spent,
		VoucherQR:     voucher,
	})
}

// ListMyBookings returns the caller's bookings, newest first
// @Summary List own bookings
// @Tags hotels
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Booking
// @Failure 401 {object} ErrorResponse
// @Router /hotels/bookings [get]
func (s *BookingService) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	rows, err := s.db.QueryContext(r.Context(), `
		SELECT id, user_id, hotel_id, hotel_name, check_in, check_out, guests, total_price, payment_status, created_at
		FROM bookings WHERE user_id = $1 ORDER BY created_at DESC LIMIT 100`, userID)
	if err != nil {
		log.Printf("[BOOKING] Booking query failed for user %s: %v", userID, err)
		SendErrorResponse(w, "Failed to fetch bookings", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.HotelID, &b.HotelName,
			&b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalPrice, &b.PaymentStatus, &b.CreatedAt); err != nil {
			log.Printf("[BOOKING] Booking scan failed: %v", err)
			SendErrorResponse(w, "Failed to fetch bookings", http.StatusInternalServerError, nil)
			return
		}
		bookings = append(bookings, b)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

// voucherQR renders the booking voucher as a base64 PNG the mobile client
// shows at check-in.
func (s *BookingService) voucherQR(booking models.Booking) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"booking_id": booking.ID,
		"hotel_id":   booking.HotelID,
		"check_in":   booking.CheckIn,
		"check_out":  booking.CheckOut,
		"guests":     booking.Guests,
	})
	if err != nil {
		return "", err
	}

	qr, err := qrcode.New(base64.URLEncoding.EncodeToString(payload), qrcode.Medium)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
