package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// InventoryItemRepository define el puerto del Ledger Store: cantidades actuales
// por (componente, ubicación). Solo el motor de inventario escribe aquí, y siempre
// dentro de una transacción del TxRunner.
type InventoryItemRepository interface {
	// Get devuelve la fila actual. Si no existe devuelve una fila con Quantity 0
	// y UpdatedAt cero (ausencia significa stock cero, no error).
	Get(componentID, locationID string) (*entity.InventoryItem, error)

	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) dentro de la
	// transacción en curso. Mismo contrato de ausencia que Get.
	GetForUpdate(componentID, locationID string) (*entity.InventoryItem, error)

	// Upsert inserta o actualiza la cantidad absoluta de la fila. En una fila ya
	// existente no toca min_stock_level (es propiedad del par, fijada al crearse).
	Upsert(item *entity.InventoryItem) error

	// UpdateMinStock fija el umbral de stock mínimo del par (componente, ubicación).
	UpdateMinStock(componentID, locationID string, minStock int64) error

	ListByComponent(componentID string) ([]*entity.InventoryItem, error)
	ListByLocation(locationID string, limit, offset int) ([]*entity.InventoryItem, error)

	// ListAll devuelve todas las filas del ledger. Lo usa la verificación por
	// replay para comparar el snapshot reconstruido contra el estado actual.
	ListAll() ([]*entity.InventoryItem, error)
}
