package entity

import "time"

// Tipos de transacción de inventario.
// "consume" y "remove" comparten mecánica pero son tipos distintos: analítica
// aguas abajo separa lo consumido en producción de lo retirado/devuelto.
const (
	TransactionTypeAdd      = "add"
	TransactionTypeRemove   = "remove"
	TransactionTypeTransfer = "transfer"
	TransactionTypeConsume  = "consume"
)

// InventoryTransaction es el registro inmutable de una mutación de stock confirmada.
// Exactamente un registro por operación exitosa; nunca se actualiza ni se borra.
// Un transfer lleva ambas ubicaciones en el mismo registro (conservación de cantidad).
type InventoryTransaction struct {
	ID             string
	ComponentID    string
	FromLocationID string // vacío para add
	ToLocationID   string // vacío para remove/consume
	Quantity       int64  // siempre > 0; el tipo determina el signo del efecto
	Type           string // add | remove | transfer | consume
	Notes          string
	CreatedAt      time.Time
	CreatedBy      string // UserID; vacío para procesos automáticos
}
