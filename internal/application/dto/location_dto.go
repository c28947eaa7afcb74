package dto

import "time"

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name       string `json:"name"`
	FacilityID string `json:"facility_id"`
	Type       string `json:"type"` // storage | production
}

// LocationResponse representación pública de una ubicación.
type LocationResponse struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LocationListResponse listado paginado.
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
	Page      PageResponse       `json:"page"`
}

// CreateFacilityRequest body para POST /api/facilities.
type CreateFacilityRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// FacilityResponse representación pública de una planta.
type FacilityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
