package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Component representa un tipo de pieza rastreable, identificado por un número único legible.
// El ledger lo trata como llave foránea inmutable una vez referenciado; su creación y edición
// pertenecen a los colaboradores de administración e ingestión.
type Component struct {
	ID            string
	Number        string // código único legible (ej. "C-10042")
	Description   string
	Category      string
	Supplier      string
	UnitPrice     decimal.Decimal
	MinStockLevel int64 // mínimo por defecto que heredan las filas de inventario
	MaxStockLevel int64
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
