package usecase

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TransactionsUseCase consultas de solo lectura sobre el log de transacciones.
type TransactionsUseCase struct {
	txRepo repository.TransactionRepository
}

// NewTransactionsUseCase construye el caso de uso.
func NewTransactionsUseCase(txRepo repository.TransactionRepository) *TransactionsUseCase {
	return &TransactionsUseCase{txRepo: txRepo}
}

// GetByID devuelve una transacción del log.
func (uc *TransactionsUseCase) GetByID(id string) (*dto.TransactionResponse, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionResponse(tx), nil
}

// ListRecent devuelve las últimas transacciones, más reciente primero.
func (uc *TransactionsUseCase) ListRecent(limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	txs, err := uc.txRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(txs), nil
}

// ListByComponent devuelve el historial de un componente, con rango de fechas opcional.
func (uc *TransactionsUseCase) ListByComponent(componentID string, from, to *time.Time, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	page.DefaultPage()
	txs, err := uc.txRepo.ListByComponent(componentID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(txs), nil
}

func toTransactionResponse(tx *entity.InventoryTransaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:             tx.ID,
		ComponentID:    tx.ComponentID,
		FromLocationID: tx.FromLocationID,
		ToLocationID:   tx.ToLocationID,
		Quantity:       tx.Quantity,
		Type:           tx.Type,
		Notes:          tx.Notes,
		CreatedAt:      tx.CreatedAt,
		CreatedBy:      tx.CreatedBy,
	}
}

func toTransactionResponses(txs []*entity.InventoryTransaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, *toTransactionResponse(tx))
	}
	return out
}
