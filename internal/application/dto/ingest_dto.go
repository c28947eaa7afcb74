package dto

// BulkRow una fila ya parseada por el colaborador de ingestión (Excel/CSV).
// Delta con signo: positivo entra stock, negativo sale. El puente de ingestión
// SIEMPRE la convierte en llamadas add/remove del motor; nunca sobreescribe
// una cantidad directamente (eso rompería la completitud del log).
type BulkRow struct {
	ComponentNumber string `json:"component_number"`
	LocationID      string `json:"location_id"`
	Delta           int64  `json:"delta"`
	Notes           string `json:"notes,omitempty"`
}

// BulkIngestRequest body para POST /api/ledger/bulk.
type BulkIngestRequest struct {
	Rows []BulkRow `json:"rows"`
}

// BulkRowResult resultado por fila del lote.
type BulkRowResult struct {
	Index         int    `json:"index"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BulkIngestResponse resumen del lote.
type BulkIngestResponse struct {
	Applied int             `json:"applied"`
	Failed  int             `json:"failed"`
	Results []BulkRowResult `json:"results"`
}
