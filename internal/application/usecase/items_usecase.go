package usecase

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ItemsUseCase lecturas del ledger y administración del umbral mínimo por fila.
// Las cantidades solo las muta el motor; aquí nunca se escribe Quantity.
type ItemsUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewItemsUseCase construye el caso de uso.
func NewItemsUseCase(itemRepo repository.InventoryItemRepository) *ItemsUseCase {
	return &ItemsUseCase{itemRepo: itemRepo}
}

// Get devuelve la fila actual; ausencia significa cantidad cero.
func (uc *ItemsUseCase) Get(componentID, locationID string) (*dto.InventoryItemResponse, error) {
	if componentID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.Get(componentID, locationID)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListByLocation devuelve las filas de una ubicación.
func (uc *ItemsUseCase) ListByLocation(locationID string, page dto.PageRequest) ([]dto.InventoryItemResponse, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	items, err := uc.itemRepo.ListByLocation(locationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toItemResponse(item))
	}
	return out, nil
}

// SetMinStock fija el umbral del par (componente, ubicación).
func (uc *ItemsUseCase) SetMinStock(in dto.MinStockRequest) error {
	if in.ComponentID == "" || in.LocationID == "" || in.MinStockLevel < 0 {
		return domain.ErrInvalidInput
	}
	return uc.itemRepo.UpdateMinStock(in.ComponentID, in.LocationID, in.MinStockLevel)
}

func toItemResponse(i *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ComponentID:   i.ComponentID,
		LocationID:    i.LocationID,
		Quantity:      i.Quantity,
		MinStockLevel: i.MinStockLevel,
		UpdatedAt:     i.UpdatedAt,
	}
}
