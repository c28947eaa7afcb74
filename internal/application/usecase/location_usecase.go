package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// LocationUseCase CRUD de ubicaciones y plantas.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
	facilityRepo repository.FacilityRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository, facilityRepo repository.FacilityRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo, facilityRepo: facilityRepo}
}

// CreateFacility registra una planta.
func (uc *LocationUseCase) CreateFacility(in dto.CreateFacilityRequest) (*dto.FacilityResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	facility := &entity.Facility{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.facilityRepo.Create(facility); err != nil {
		return nil, err
	}
	return &dto.FacilityResponse{ID: facility.ID, Name: facility.Name, Address: facility.Address, CreatedAt: facility.CreatedAt}, nil
}

// Create registra una ubicación dentro de una planta existente.
// El nombre es único: el dashboard identifica "Main" y "Line" por nombre.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" || in.FacilityID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.LocationTypeStorage && in.Type != entity.LocationTypeProduction {
		return nil, domain.ErrInvalidInput
	}
	facility, err := uc.facilityRepo.GetByID(in.FacilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.locationRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	location := &entity.Location{
		ID:         uuid.New().String(),
		FacilityID: in.FacilityID,
		Name:       in.Name,
		Type:       in.Type,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID devuelve la ubicación o nil si no existe.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// List devuelve una página de ubicaciones.
func (uc *LocationUseCase) List(page dto.PageRequest) (*dto.LocationListResponse, error) {
	page.DefaultPage()
	locations, err := uc.locationRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.LocationListResponse{
		Locations: make([]dto.LocationResponse, 0, len(locations)),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, l := range locations {
		out.Locations = append(out.Locations, *toLocationResponse(l))
	}
	return out, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:         l.ID,
		FacilityID: l.FacilityID,
		Name:       l.Name,
		Type:       l.Type,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
