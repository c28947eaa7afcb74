package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionRepository define el puerto del log de transacciones: append-only.
// Create es la única escritura; ninguna implementación actualiza ni borra registros.
type TransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	GetByID(id string) (*entity.InventoryTransaction, error)

	// ListRecent devuelve las últimas transacciones, más reciente primero.
	ListRecent(limit int) ([]*entity.InventoryTransaction, error)
	ListByComponent(componentID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error)

	// ListAllAsc devuelve todo el log en orden de creación ascendente.
	// Lo usa la verificación por replay (reconstruir el snapshot desde cero).
	ListAllAsc(ctx context.Context) ([]*entity.InventoryTransaction, error)
}
