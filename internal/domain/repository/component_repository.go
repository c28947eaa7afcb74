package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ComponentRepository define el puerto de persistencia para Component (DIP).
type ComponentRepository interface {
	Create(component *entity.Component) error
	GetByID(id string) (*entity.Component, error)
	GetByNumber(number string) (*entity.Component, error)
	Update(component *entity.Component) error
	List(limit, offset int) ([]*entity.Component, error)
	// Deactivate marca el componente como inactivo; el ledger nunca borra
	// componentes referenciados por transacciones.
	Deactivate(id string) error
}
