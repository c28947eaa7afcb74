package dto

import "time"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Totales del almacén central ("Main") y la línea de producción ("Line"),
// calculados en fresco desde el estado confirmado del ledger.
type DashboardStatsDTO struct {
	TotalComponents    int   `json:"total_components"`     // componentes activos
	MainInventoryTotal int64 `json:"main_inventory_total"` // suma de cantidades en Main
	LineInventoryTotal int64 `json:"line_inventory_total"` // suma de cantidades en Line
	LowStockAlerts     int   `json:"low_stock_alerts"`     // filas con quantity <= min_stock_level
}

// LowStockItemDTO par (componente, ubicación) en o bajo su mínimo.
type LowStockItemDTO struct {
	ComponentID          string `json:"component_id"`
	ComponentNumber      string `json:"component_number"`
	ComponentDescription string `json:"component_description"`
	LocationID           string `json:"location_id"`
	LocationName         string `json:"location_name"`
	Quantity             int64  `json:"quantity"`
	MinStockLevel        int64  `json:"min_stock_level"`
	Deficit              int64  `json:"deficit"` // min_stock_level - quantity
}

// RecentTransactionDTO transacción reciente con contexto listo para mostrar.
type RecentTransactionDTO struct {
	ID                   string    `json:"id"`
	Type                 string    `json:"type"`
	Quantity             int64     `json:"quantity"`
	ComponentID          string    `json:"component_id"`
	ComponentNumber      string    `json:"component_number"`
	ComponentDescription string    `json:"component_description"`
	FromLocationName     string    `json:"from_location_name,omitempty"`
	ToLocationName       string    `json:"to_location_name,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	CreatedBy            string    `json:"created_by,omitempty"`
}
