package repository

import (
	"context"
	"time"
)

// LowStockRow resultado crudo de la consulta de stock bajo: un par
// (componente, ubicación) cuya cantidad está en o por debajo de su mínimo.
type LowStockRow struct {
	ComponentID          string
	ComponentNumber      string
	ComponentDescription string
	LocationID           string
	LocationName         string
	Quantity             int64
	MinStockLevel        int64
}

// Deficit es cuánto falta para volver al mínimo (criterio de orden: mayor primero).
func (r LowStockRow) Deficit() int64 {
	return r.MinStockLevel - r.Quantity
}

// RecentTransactionRow transacción reciente con contexto de componente y
// ubicaciones ya resuelto (lista para presentar sin lookups adicionales).
type RecentTransactionRow struct {
	ID                   string
	Type                 string
	Quantity             int64
	ComponentID          string
	ComponentNumber      string
	ComponentDescription string
	FromLocationID       string
	FromLocationName     string
	ToLocationID         string
	ToLocationName       string
	Notes                string
	CreatedAt            time.Time
	CreatedBy            string
}

// ReportRepository define las consultas de solo lectura del Aggregator.
// Las implementaciones nunca modifican datos y leen siempre estado confirmado
// (read-committed o superior): jamás el decremento de un transfer sin su incremento.
type ReportRepository interface {
	// CountActiveComponents cuenta los componentes activos.
	CountActiveComponents(ctx context.Context) (int, error)

	// SumQuantityByLocationName suma el stock de todas las filas de la ubicación
	// con ese nombre. Devuelve 0 si la ubicación no existe o no tiene filas.
	SumQuantityByLocationName(ctx context.Context, name string) (int64, error)

	// CountLowStock cuenta las filas con quantity <= min_stock_level.
	CountLowStock(ctx context.Context) (int, error)

	// ListLowStock devuelve las filas bajo mínimo ordenadas por mayor déficit
	// primero, desempate por número de componente (orden estable para paginación).
	ListLowStock(ctx context.Context) ([]LowStockRow, error)

	// ListRecentTransactions devuelve las últimas transacciones con joins de
	// componente y ubicaciones, más reciente primero.
	ListRecentTransactions(ctx context.Context, limit int) ([]RecentTransactionRow, error)
}
