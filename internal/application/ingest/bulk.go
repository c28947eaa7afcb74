// Package ingest es el puente entre la ingestión masiva (filas ya parseadas de
// Excel/CSV por el colaborador externo) y el motor del ledger. Cada fila se
// convierte en una llamada add/remove con delta: nunca se sobreescribe una
// cantidad directamente, así toda mutación deja su transacción en el log.
package ingest

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// BulkUseCase aplica lotes de ajustes delta vía el motor del ledger.
type BulkUseCase struct {
	engine        *ledger.Engine
	componentRepo repository.ComponentRepository
}

// NewBulkUseCase construye el caso de uso de ingestión.
func NewBulkUseCase(engine *ledger.Engine, componentRepo repository.ComponentRepository) *BulkUseCase {
	return &BulkUseCase{engine: engine, componentRepo: componentRepo}
}

// Apply procesa el lote fila a fila. Una fila fallida no aborta el resto:
// el archivo suele mezclar componentes válidos e inválidos y el operador
// corrige con el detalle por fila. Delta cero se rechaza como inválido.
func (uc *BulkUseCase) Apply(ctx context.Context, userID string, rows []dto.BulkRow) (*dto.BulkIngestResponse, error) {
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}

	resp := &dto.BulkIngestResponse{Results: make([]dto.BulkRowResult, 0, len(rows))}
	for i, row := range rows {
		result := dto.BulkRowResult{Index: i}
		tx, err := uc.applyRow(ctx, userID, row)
		if err != nil {
			result.Error = err.Error()
			resp.Failed++
		} else {
			result.TransactionID = tx.ID
			resp.Applied++
		}
		resp.Results = append(resp.Results, result)
	}
	return resp, nil
}

func (uc *BulkUseCase) applyRow(ctx context.Context, userID string, row dto.BulkRow) (*entity.InventoryTransaction, error) {
	if row.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	component, err := uc.componentRepo.GetByNumber(row.ComponentNumber)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}

	if row.Delta > 0 {
		return uc.engine.AddStock(ctx, ledger.AddInput{
			ComponentID: component.ID,
			LocationID:  row.LocationID,
			Quantity:    row.Delta,
			Notes:       row.Notes,
			UserID:      userID,
		})
	}
	return uc.engine.RemoveStock(ctx, ledger.RemoveInput{
		ComponentID: component.ID,
		LocationID:  row.LocationID,
		Quantity:    -row.Delta,
		Notes:       row.Notes,
		UserID:      userID,
	})
}
