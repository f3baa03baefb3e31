package models

import "time"

const (
	RoleTourist    = "tourist"
	RoleTaxiDriver = "taxi_driver"
	RoleAdmin      = "admin"
)

type User struct {
	ID             string    `json:"id" example:"7b0c1a4e-9d2f-4c3b-8a1e-2f5d6c7b8a90"`
	Email          string    `json:"email" example:"aida@example.com"` // unique
	Name           string    `json:"name" example:"Aida"`
	Role           string    `json:"role" example:"tourist"` // tourist, taxi_driver or admin
	EcocoinBalance int64     `json:"ecocoin_balance"`        // denormalized cache of the transaction sum
	CreatedAt      time.Time `json:"created_at"`
}
