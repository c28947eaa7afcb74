package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ComponentUseCase CRUD de componentes. El ledger trata al componente como
// llave foránea inmutable; aquí vive su administración.
type ComponentUseCase struct {
	repo repository.ComponentRepository
}

// NewComponentUseCase construye el caso de uso.
func NewComponentUseCase(repo repository.ComponentRepository) *ComponentUseCase {
	return &ComponentUseCase{repo: repo}
}

// Create registra un componente nuevo. El número debe ser único.
func (uc *ComponentUseCase) Create(in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	if in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStockLevel < 0 || in.MaxStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByNumber(in.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	component := &entity.Component{
		ID:            uuid.New().String(),
		Number:        in.Number,
		Description:   in.Description,
		Category:      in.Category,
		Supplier:      in.Supplier,
		UnitPrice:     in.UnitPrice,
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(component); err != nil {
		return nil, err
	}
	return toComponentResponse(component), nil
}

// GetByID devuelve el componente o nil si no existe.
func (uc *ComponentUseCase) GetByID(id string) (*dto.ComponentResponse, error) {
	component, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, nil
	}
	return toComponentResponse(component), nil
}

// Update aplica cambios parciales (solo los campos presentes).
func (uc *ComponentUseCase) Update(id string, in dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	component, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description != nil {
		component.Description = *in.Description
	}
	if in.Category != nil {
		component.Category = *in.Category
	}
	if in.Supplier != nil {
		component.Supplier = *in.Supplier
	}
	if in.UnitPrice != nil {
		component.UnitPrice = *in.UnitPrice
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		component.MinStockLevel = *in.MinStockLevel
	}
	if in.MaxStockLevel != nil {
		component.MaxStockLevel = *in.MaxStockLevel
	}
	if in.Active != nil {
		component.Active = *in.Active
	}
	component.UpdatedAt = time.Now()
	if err := uc.repo.Update(component); err != nil {
		return nil, err
	}
	return toComponentResponse(component), nil
}

// List devuelve una página de componentes.
func (uc *ComponentUseCase) List(page dto.PageRequest) (*dto.ComponentListResponse, error) {
	page.DefaultPage()
	components, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ComponentListResponse{
		Components: make([]dto.ComponentResponse, 0, len(components)),
		Page:       dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range components {
		out.Components = append(out.Components, *toComponentResponse(c))
	}
	return out, nil
}

// Deactivate marca el componente como inactivo. Las filas y transacciones que
// lo referencian se conservan.
func (uc *ComponentUseCase) Deactivate(id string) error {
	return uc.repo.Deactivate(id)
}

func toComponentResponse(c *entity.Component) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:            c.ID,
		Number:        c.Number,
		Description:   c.Description,
		Category:      c.Category,
		Supplier:      c.Supplier,
		UnitPrice:     c.UnitPrice,
		MinStockLevel: c.MinStockLevel,
		MaxStockLevel: c.MaxStockLevel,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
