package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// FacilityRepository define el puerto de persistencia para Facility (DIP).
type FacilityRepository interface {
	Create(facility *entity.Facility) error
	GetByID(id string) (*entity.Facility, error)
	List(limit, offset int) ([]*entity.Facility, error)
}
