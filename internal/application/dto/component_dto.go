package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateComponentRequest body para POST /api/components.
type CreateComponentRequest struct {
	Number        string          `json:"number"`
	Description   string          `json:"description"`
	Category      string          `json:"category,omitempty"`
	Supplier      string          `json:"supplier,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	MinStockLevel int64           `json:"min_stock_level"`
	MaxStockLevel int64           `json:"max_stock_level"`
}

// UpdateComponentRequest body para PUT /api/components/:id.
type UpdateComponentRequest struct {
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Supplier      *string          `json:"supplier,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	MinStockLevel *int64           `json:"min_stock_level,omitempty"`
	MaxStockLevel *int64           `json:"max_stock_level,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

// ComponentResponse representación pública de un componente.
type ComponentResponse struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Description   string          `json:"description"`
	Category      string          `json:"category,omitempty"`
	Supplier      string          `json:"supplier,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	MinStockLevel int64           `json:"min_stock_level"`
	MaxStockLevel int64           `json:"max_stock_level"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ComponentListResponse listado paginado.
type ComponentListResponse struct {
	Components []ComponentResponse `json:"components"`
	Page       PageResponse        `json:"page"`
}
