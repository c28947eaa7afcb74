package dto

import "time"

// Cuerpos de las cuatro operaciones del motor. Unión etiquetada por endpoint:
// cada request lleva solo los campos de su variante (un add no tiene origen).

// AddStockRequest body para POST /api/ledger/add.
type AddStockRequest struct {
	ComponentID string `json:"component_id"`
	LocationID  string `json:"location_id"`
	Quantity    int64  `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// RemoveStockRequest body para POST /api/ledger/remove.
type RemoveStockRequest struct {
	ComponentID string `json:"component_id"`
	LocationID  string `json:"location_id"`
	Quantity    int64  `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// ConsumeRequest body para POST /api/ledger/consume.
type ConsumeRequest struct {
	ComponentID string `json:"component_id"`
	LocationID  string `json:"location_id"`
	Quantity    int64  `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// TransferRequest body para POST /api/ledger/transfer.
type TransferRequest struct {
	ComponentID    string `json:"component_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"`
	Notes          string `json:"notes,omitempty"`
}

// TransactionResponse transacción confirmada devuelta al caller.
type TransactionResponse struct {
	ID             string    `json:"id"`
	ComponentID    string    `json:"component_id"`
	FromLocationID string    `json:"from_location_id,omitempty"`
	ToLocationID   string    `json:"to_location_id,omitempty"`
	Quantity       int64     `json:"quantity"`
	Type           string    `json:"type"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// MinStockRequest body para PUT /api/items/min-stock.
type MinStockRequest struct {
	ComponentID   string `json:"component_id"`
	LocationID    string `json:"location_id"`
	MinStockLevel int64  `json:"min_stock_level"`
}

// InventoryItemResponse fila actual del ledger.
type InventoryItemResponse struct {
	ComponentID   string    `json:"component_id"`
	LocationID    string    `json:"location_id"`
	Quantity      int64     `json:"quantity"`
	MinStockLevel int64     `json:"min_stock_level"`
	UpdatedAt     time.Time `json:"updated_at"`
}
