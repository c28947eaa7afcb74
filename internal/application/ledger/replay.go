package ledger

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ItemKey identifica una fila del ledger durante un replay.
type ItemKey struct {
	ComponentID string
	LocationID  string
}

// Replay reconstruye el snapshot de cantidades aplicando el log completo en
// orden de creación sobre un ledger vacío. Si el log está completo (toda
// mutación dejó exactamente un registro), el resultado coincide con las filas
// actuales de inventory_items; la auditoría usa esa igualdad como verificación.
//
// Devuelve error si el log contiene un tipo desconocido o si alguna cantidad
// intermedia quedaría negativa (log corrupto o incompleto).
func Replay(txs []*entity.InventoryTransaction) (map[ItemKey]int64, error) {
	snapshot := make(map[ItemKey]int64)

	for _, tx := range txs {
		if tx.Quantity <= 0 {
			return nil, fmt.Errorf("replay: transacción %s con cantidad no positiva %d", tx.ID, tx.Quantity)
		}
		switch tx.Type {
		case entity.TransactionTypeAdd:
			snapshot[key(tx.ComponentID, tx.ToLocationID)] += tx.Quantity
		case entity.TransactionTypeRemove, entity.TransactionTypeConsume:
			k := key(tx.ComponentID, tx.FromLocationID)
			snapshot[k] -= tx.Quantity
			if snapshot[k] < 0 {
				return nil, fmt.Errorf("replay: transacción %s deja %s/%s en negativo", tx.ID, tx.ComponentID, tx.FromLocationID)
			}
		case entity.TransactionTypeTransfer:
			from := key(tx.ComponentID, tx.FromLocationID)
			snapshot[from] -= tx.Quantity
			if snapshot[from] < 0 {
				return nil, fmt.Errorf("replay: transacción %s deja %s/%s en negativo", tx.ID, tx.ComponentID, tx.FromLocationID)
			}
			snapshot[key(tx.ComponentID, tx.ToLocationID)] += tx.Quantity
		default:
			return nil, fmt.Errorf("replay: tipo de transacción desconocido %q en %s", tx.Type, tx.ID)
		}
	}
	return snapshot, nil
}

func key(componentID, locationID string) ItemKey {
	return ItemKey{ComponentID: componentID, LocationID: locationID}
}
