package entity

import "time"

// Tipos de ubicación.
const (
	LocationTypeStorage    = "storage"    // almacén
	LocationTypeProduction = "production" // línea de producción
)

// Location representa un lugar físico donde se almacena stock de componentes,
// perteneciente a una Facility. Dos ubicaciones bien conocidas ("Main" y "Line")
// se distinguen por nombre para la agregación del dashboard.
type Location struct {
	ID         string
	FacilityID string
	Name       string
	Type       string // storage | production
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
