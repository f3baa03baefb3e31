package models

import "time"

const (
	TaxiOrderPending  = "pending"
	TaxiOrderAccepted = "accepted"
)

type TaxiOrder struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	DriverID     *string   `json:"driver_id,omitempty"`
	FromLocation string    `json:"from_location"`
	ToLocation   string    `json:"to_location"`
	FromLat      float64   `json:"from_lat"`
	FromLng      float64   `json:"from_lng"`
	ToLat        float64   `json:"to_lat"`
	ToLng        float64   `json:"to_lng"`
	Status       string    `json:"status" example:"pending"`
	CreatedAt    time.Time `json:"created_at"`
}
