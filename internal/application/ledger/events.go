package ledger

// StockEvent notifica que una transacción fue confirmada. Se entrega DESPUÉS
// del commit y es best-effort: su pérdida o retraso nunca afecta el resultado
// de la mutación.
type StockEvent struct {
	TransactionID string `json:"transaction_id"`
	Type          string `json:"type"`
}

// Notifier recibe eventos de stock confirmados para fan-out a clientes
// interesados (WebSocket u otro transporte). Las implementaciones no deben
// bloquear: el motor las invoca en el camino de retorno de cada operación.
type Notifier interface {
	StockChanged(evt StockEvent)
}

// NopNotifier descarta los eventos. Útil en tests y procesos batch.
type NopNotifier struct{}

// StockChanged no hace nada.
func (NopNotifier) StockChanged(StockEvent) {}
