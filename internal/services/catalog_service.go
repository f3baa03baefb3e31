package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ecosayahat/backend/internal/models"
	"github.com/ecosayahat/backend/internal/seed"
)

// CatalogService serves the read-mostly tourism catalog: regions,
// attractions, hotels and charging stations. Empty collections are seeded
// lazily on first read, matching the original platform behavior.
type CatalogService struct {
	db        *sql.DB
	validator *validator.Validate
}

func NewCatalogService(db *sql.DB) *CatalogService {
	return &CatalogService{db: db, validator: validator.New()}
}

// ListRegions returns all regions
// @Summary List regions
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Region
// @Router /regions [get]
func (s *CatalogService) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := s.queryRegions(r.Context())
	if err == nil && len(regions) == 0 {
		if err = seed.Regions(r.Context(), s.db); err == nil {
			regions, err = s.queryRegions(r.Context())
		}
	}
	if err != nil {
		log.Printf("[CATALOG] Region query failed: %v", err)
		SendErrorResponse(w, "Failed to fetch regions", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(regions)
}

func (s *CatalogService) queryRegions(ctx context.Context) ([]models.Region, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name_ru, name_en, name_kz, description_ru, description_en, description_kz, image_url
		FROM regions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regions := []models.Region{}
	for rows.Next() {
		var reg models.Region
		if err := rows.Scan(&reg.ID, &reg.NameRU, &reg.NameEN, &reg.NameKZ,
			&reg.DescriptionRU, &reg.DescriptionEN, &reg.DescriptionKZ, &reg.ImageURL); err != nil {
			return nil, err
		}
		regions = append(regions, reg)
	}
	return regions, rows.Err()
}

// ListAttractions returns the attractions of one region
// @Summary List attractions in a region
// @Tags catalog
// @Produce json
// @Param regionID path string true "Region id"
// @Success 200 {array} models.Attraction
// @Router /regions/{regionID}/attractions [get]
func (s *CatalogService) ListAttractions(w http.ResponseWriter, r *http.Request) {
	regionID := chi.URLParam(r, "regionID")

	rows, err := s.db.QueryContext(r.Context(), `
		SELECT id, region_id, name_ru, name_en, name_kz,
		       description_ru, description_en, description_kz,
		       image_url, vr_url, vr_type, latitude, longitude, average_rating, review_count
		FROM attractions WHERE region_id = $1`, regionID)
	if err != nil {
		log.Printf("[CATALOG] Attraction query failed for region %s: %v", regionID, err)
		SendErrorResponse(w, "Failed to fetch attractions", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	attractions := []models.Attraction{}
	for rows.Next() {
		var a models.Attraction
		if err := rows.Scan(&a.ID, &a.RegionID, &a.NameRU, &a.NameEN, &a.NameKZ,
			&a.DescriptionRU, &a.DescriptionEN, &a.DescriptionKZ,
			&a.ImageURL, &a.VRURL, &a.VRType, &a.Latitude, &a.Longitude,
			&a.AverageRating, &a.ReviewCount); err != nil {
			log.Printf("[CATALOG] Attraction scan failed: %v", err)
			SendErrorResponse(w, "Failed to fetch attractions", http.StatusInternalServerError, nil)
			return
		}
		attractions = append(attractions, a)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(attractions)
}

// GetAttraction returns one attraction by id
// @Summary Get attraction details
// @Tags catalog
// @Produce json
// @Param attractionID path string true "Attraction id"
// @Success 200 {object} models.Attraction
// @Failure 404 {object} ErrorResponse
// @Router /attractions/{attractionID} [get]
func (s *CatalogService) GetAttraction(w http.ResponseWriter, r *http.Request) {
	attractionID := chi.URLParam(r, "attractionID")

	var a models.Attraction
	err := s.db.QueryRowContext(r.Context(), `
		SELECT id, region_id, name_ru, name_en, name_kz,
		       description_ru, description_en, description_kz,
		       image_url, vr_url, vr_type, latitude, longitude, average_rating, review_count
		FROM attractions WHERE id = $1`, attractionID).
		Scan(&a.ID, &a.RegionID, &a.NameRU, &a.NameEN, &a.NameKZ,
			&a.DescriptionRU, &a.DescriptionEN, &a.DescriptionKZ,
			&a.ImageURL, &a.VRURL, &a.VRType, &a.Latitude, &a.Longitude,
			&a.AverageRating, &a.ReviewCount)
	if err != nil {
		if err == sql.ErrNoRows {
			SendErrorResponse(w, "Attraction not found", http.StatusNotFound, nil)
		} else {
			log.Printf("[CATALOG] Attraction lookup failed for %s: %v", attractionID, err)
			SendErrorResponse(w, "Failed to fetch attraction", http.StatusInternalServerError, nil)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

// ListHotels returns the hotels of one region
// @Summary List hotels in a region
// @Tags catalog
// @Produce json
// @Param regionID path string true "Region id"
// @Success 200 {array} models.Hotel
// @Router /hotels/{regionID} [get]
func (s *CatalogService) ListHotels(w http.ResponseWriter, r *http.Request) {
	regionID := chi.URLParam(r, "regionID")

	hotels, err := s.queryHotels(r.Context(), regionID)
	if err == nil && len(hotels) == 0 {
		if err = seed.Hotels(r.Context(), s.db); err == nil {
			hotels, err = s.queryHotels(r.Context(), regionID)
		}
	}
	if err != nil {
		log.Printf("[CATALOG] Hotel query failed for region %s: %v", regionID, err)
		SendErrorResponse(w, "Failed to fetch hotels", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hotels)
}

func (s *CatalogService) queryHotels(ctx context.Context, regionID string) ([]models.Hotel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, region_id, name, description, price_per_night, is_partner, image_url, rating
		FROM hotels WHERE region_id = $1`, regionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hotels := []models.Hotel{}
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.RegionID, &h.Name, &h.Description,
			&h.PricePerNight, &h.IsPartner, &h.ImageURL, &h.Rating); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// ListChargingStations returns all EV charging stations
// @Summary List charging stations
// @Tags catalog
// @Produce json
// @Success 200 {array} models.ChargingStation
// @Router /charging-stations [get]
func (s *CatalogService) ListChargingStations(w http.ResponseWriter, r *http.Request) {
	stations, err := s.queryStations(r.Context())
	if err == nil && len(stations) == 0 {
		if err = seed.ChargingStations(r.Context(), s.db); err == nil {
			stations, err = s.queryStations(r.Context())
		}
	}
	if err != nil {
		log.Printf("[CATALOG] Charging station query failed: %v", err)
		SendErrorResponse(w, "Failed to fetch charging stations", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stations)
}

func (s *CatalogService) queryStations(ctx context.Context) ([]models.ChargingStation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, latitude, longitude, availability FROM charging_stations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := []models.ChargingStation{}
	for rows.Next() {
		var st models.ChargingStation
		if err := rows.Scan(&st.ID, &st.Name, &st.Latitude, &st.Longitude, &st.Availability); err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

// SendContact stores a contact form message
// @Summary Send a contact form message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,message=string} true "Message"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /contact/send [post]
func (s *CatalogService) SendContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Email   string `json:"email" validate:"required,email"`
		Message string `json:"message" validate:"required"`
	}

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

	if _, err := s.db.ExecContext(r.Context(), `
		INSERT INTO contact_messages (id, name, email, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), req.Name, req.Email, req.Message, "sent", time.Now()); err != nil {
		log.Printf("[CATALOG] Contact message insert failed: %v", err)
		SendErrorResponse(w, "Failed to send message", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[CATALOG] Contact form submitted by %s (%s)", req.Name, req.Email)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":       "Message sent successfully",
		"contact_email": "contact@ecosayahat.kz",
	})
}

// RecreateData wipes and reseeds the catalog collections (development only)
// @Summary Recreate seed data
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string
// @Router /db/recreate [get]
func (s *CatalogService) RecreateData(w http.ResponseWriter, r *http.Request) {
	for _, table := range []string{"regions", "attractions", "hotels", "tasks", "charging_stations"} {
		if _, err := s.db.ExecContext(r.Context(), fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			log.Printf("[CATALOG] Failed to clear %s: %v", table, err)
			SendErrorResponse(w, "Failed to recreate data", http.StatusInternalServerError, nil)
			return
		}
	}

	if err := seed.All(r.Context(), s.db); err != nil {
		log.Printf("[CATALOG] Reseed failed: %v", err)
		SendErrorResponse(w, "Failed to recreate data", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Database recreated successfully"})
}
