package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ecosayahat/backend/internal/models"
)

func hotelRow(id, region, name string, price int64, partner bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "region_id", "name", "description", "price_per_night", "is_partner", "image_url", "rating",
	}).AddRow(id, region, name, "desc", price, partner, "http://img", 4.5)
}

func bookRequest(t *testing.T, userID string) *http.Request {
	body, _ := json.Marshal(map[string]any{
		"hotel_id":  "hotel_1",
		"check_in":  "2026-09-01",
		"check_out": "2026-09-05",
		"guests":    2,
	})
	r := httptest.NewRequest("POST", "/hotels/book", bytes.NewBuffer(body))
	return r.WithContext(context.WithValue(r.Context(), "userID", userID))
}

func TestBookingService_BookHotel(t *testing.T) {
	t.Run("partner hotel debits clamped eco-coins", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		service := NewBookingService(db, NewEcocoinLedgerService(db, nil))

		mock.ExpectQuery("SELECT id, region_id, name, description, price_per_night, is_partner, image_url, rating").
			WithArgs("hotel_1").
			WillReturnRows(hotelRow("hotel_1", "burabay", "Eco Resort Burabay", 15000, true))
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT ecocoin_balance FROM users WHERE id = \\$1 FOR UPDATE").
			WithArgs("user1").
			WillReturnRows(sqlmock.NewRows([]string{"ecocoin_balance"}).AddRow(int64(40)))
		mock.ExpectExec("UPDATE users SET ecocoin_balance = ecocoin_balance - \\$1 WHERE id = \\$2").
			WithArgs(int64(40), "user1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO ecocoin_transactions").
			WithArgs(sqlmock.AnyArg(), "user1", int64(-40), models.TransactionSpent, "Hotel booking: Eco Resort Burabay", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		w := httptest.NewRecorder()
		service.BookHotel(w, bookRequest(t, "user1"))

		assert.Equal(t, http.StatusOK, w.Code)
		var response bookHotelResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "Booking successful", response.Message)
		assert.Equal(t, int64(40), response.EcocoinsSpent)
		assert.Equal(t, "Eco Resort Burabay", response.Booking.HotelName)
		assert.NotEmpty(t, response.VoucherQR)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-partner hotel skips the ledger", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		service := NewBookingService(db, NewEcocoinLedgerService(db, nil))

		mock.ExpectQuery("SELECT id, region_id, name, description, price_per_night, is_partner, image_url, rating").
			WithArgs("hotel_1").
			WillReturnRows(hotelRow("hotel_1", "kolsay", "Mountain Eco Camp", 10000, false))
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := httptest.NewRecorder()
		service.BookHotel(w, bookRequest(t, "user1"))

		assert.Equal(t, http.StatusOK, w.Code)
		var response bookHotelResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, int64(0), response.EcocoinsSpent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown hotel", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		service := NewBookingService(db, NewEcocoinLedgerService(db, nil))

		mock.ExpectQuery("SELECT id, region_id, name, description, price_per_night, is_partner, image_url, rating").
			WithArgs("hotel_1").
			WillReturnError(sql.ErrNoRows)

		w := httptest.NewRecorder()
		service.BookHotel(w, bookRequest(t, "user1"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		service := NewBookingService(db, NewEcocoinLedgerService(db, nil))

		r := httptest.NewRequest("POST", "/hotels/book", bytes.NewBufferString("{}"))
		w := httptest.NewRecorder()
		service.BookHotel(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		service := NewBookingService(db, NewEcocoinLedgerService(db, nil))

		r := httptest.NewRequest("POST", "/hotels/book", bytes.NewBufferString(`{"hotel_id":"hotel_1"}`))
		r = r.WithContext(context.WithValue(r.Context(), "userID", "user1"))
		w := httptest.NewRecorder()
		service.BookHotel(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
