package models

import "time"

type Region struct {
	ID            string `json:"id" example:"burabay"`
	NameRU        string `json:"name_ru"`
	NameEN        string `json:"name_en"`
	NameKZ        string `json:"name_kz"`
	DescriptionRU string `json:"description_ru"`
	DescriptionEN string `json:"description_en"`
	DescriptionKZ string `json:"description_kz"`
	ImageURL      string `json:"image_url"`
}

type Attraction struct {
	ID            string  `json:"id"`
	RegionID      string  `json:"region_id"`
	NameRU        string  `json:"name_ru"`
	NameEN        string  `json:"name_en"`
	NameKZ        string  `json:"name_kz"`
	DescriptionRU string  `json:"description_ru"`
	DescriptionEN string  `json:"description_en"`
	DescriptionKZ string  `json:"description_kz"`
	ImageURL      string  `json:"image_url"`
	VRURL         string  `json:"vr_url,omitempty"`
	VRType        string  `json:"vr_type,omitempty"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

type Review struct {
	ID           string    `json:"id"`
	AttractionID string    `json:"attraction_id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	Rating       int       `json:"rating" example:"5"`
	Comment      string    `json:"comment"`
	Status       string    `json:"status" example:"pending"`
	CreatedAt    time.Time `json:"created_at"`
}

type Hotel struct {
	ID            string  `json:"id"`
	RegionID      string  `json:"region_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PricePerNight int64   `json:"price_per_night"`
	IsPartner     bool    `json:"is_partner"`
	ImageURL      string  `json:"image_url"`
	Rating        float64 `json:"rating"`
}

type Booking struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	HotelID       string    `json:"hotel_id"`
	HotelName     string    `json:"hotel_name"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Guests        int       `json:"guests"`
	TotalPrice    int64     `json:"total_price"`
	PaymentStatus string    `json:"payment_status" example:"completed"`
	CreatedAt     time.Time `json:"created_at"`
}

type ChargingStation struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Availability bool    `json:"availability"`
}
