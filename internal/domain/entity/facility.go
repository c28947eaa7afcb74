package entity

import "time"

// Facility representa una planta o sede que agrupa ubicaciones y usuarios.
type Facility struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
