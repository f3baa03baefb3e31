package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/ecosayahat/backend/internal/models"
)

func TestTaxiService_CreateOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewTaxiService(db)

	t.Run("creates pending order", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO taxi_orders").
			WillReturnResult(sqlmock.NewResult(0, 1))

		body, _ := json.Marshal(map[string]any{
			"from_location": "Burabay Visitor Center",
			"to_location":   "Okzhetpes Mountain",
			"from_lat":      53.0833,
			"from_lng":      70.2833,
			"to_lat":        53.0944,
			"to_lng":        70.3011,
		})
		r := httptest.NewRequest("POST", "/taxi/order", bytes.NewBuffer(body))
		r = r.WithContext(context.WithValue(r.Context(), "userID", "user1"))
		w := httptest.NewRecorder()

		service.CreateOrder(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var order models.TaxiOrder
		json.Unmarshal(w.Body.Bytes(), &order)
		assert.Equal(t, models.TaxiOrderPending, order.Status)
		assert.Nil(t, order.DriverID)
	})

	t.Run("missing coordinates rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"from_location": "A", "to_location": "B"})
		r := httptest.NewRequest("POST", "/taxi/order", bytes.NewBuffer(body))
		r = r.WithContext(context.WithValue(r.Context(), "userID", "user1"))
		w := httptest.NewRecorder()

		service.CreateOrder(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaxiService_AcceptOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewTaxiService(db)

	router := chi.NewRouter()
	router.Post("/taxi/accept/{orderID}", service.AcceptOrder)

	withRole := func(r *http.Request, userID, role string) *http.Request {
		ctx := context.WithValue(r.Context(), "userID", userID)
		ctx = context.WithValue(ctx, "userRole", role)
		return r.WithContext(ctx)
	}

	t.Run("driver claims pending order", func(t *testing.T) {
		mock.ExpectExec("UPDATE taxi_orders SET driver_id = \\$1, status = \\$2").
			WithArgs("driver1", models.TaxiOrderAccepted, "order1", models.TaxiOrderPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		r := httptest.NewRequest("POST", "/taxi/accept/order1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withRole(r, "driver1", models.RoleTaxiDriver))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already accepted order is not re-claimed", func(t *testing.T) {
		mock.ExpectExec("UPDATE taxi_orders SET driver_id = \\$1, status = \\$2").
			WithArgs("driver2", models.TaxiOrderAccepted, "order1", models.TaxiOrderPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		r := httptest.NewRequest("POST", "/taxi/accept/order1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withRole(r, "driver2", models.RoleTaxiDriver))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("tourists cannot accept orders", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/taxi/accept/order1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withRole(r, "user1", models.RoleTourist))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestTaxiService_ListOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewTaxiService(db)

	cols := []string{"id", "user_id", "driver_id", "from_location", "to_location",
		"from_lat", "from_lng", "to_lat", "to_lng", "status", "created_at"}

	t.Run("drivers see the pending pool", func(t *testing.T) {
		mock.ExpectQuery("FROM taxi_orders WHERE status = \\$1").
			WithArgs(models.TaxiOrderPending).
			WillReturnRows(sqlmock.NewRows(cols))

		r := httptest.NewRequest("GET", "/taxi/orders", nil)
		ctx := context.WithValue(r.Context(), "userID", "driver1")
		ctx = context.WithValue(ctx, "userRole", models.RoleTaxiDriver)
		w := httptest.NewRecorder()

		service.ListOrders(w, r.WithContext(ctx))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tourists see their own orders", func(t *testing.T) {
		mock.ExpectQuery("FROM taxi_orders WHERE user_id = \\$1").
			WithArgs("user1").
			WillReturnRows(sqlmock.NewRows(cols))

		r := httptest.NewRequest("GET", "/taxi/orders", nil)
		ctx := context.WithValue(r.Context(), "userID", "user1")
		ctx = context.WithValue(ctx, "userRole", models.RoleTourist)
		w := httptest.NewRecorder()

		service.ListOrders(w, r.WithContext(ctx))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
