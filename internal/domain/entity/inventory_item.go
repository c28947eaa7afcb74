package entity

import "time"

// InventoryItem es el estado mutable central del ledger: la cantidad actual de un
// componente en una ubicación. Llave compuesta (ComponentID, LocationID), única.
// Invariante: Quantity >= 0 en todo momento; el motor rechaza cualquier resultado
// negativo en lugar de recortarlo.
// La fila se crea de forma perezosa la primera vez que un componente recibe stock
// en una ubicación; el ledger nunca la elimina.
type InventoryItem struct {
	ComponentID   string
	LocationID    string
	Quantity      int64
	MinStockLevel int64 // propiedad del par (componente, ubicación); hereda el default del componente
	UpdatedAt     time.Time
}

// IsLowStock indica si la fila está en o por debajo de su mínimo configurado.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinStockLevel
}
