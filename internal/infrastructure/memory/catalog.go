package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Repositorios de catálogo (componentes, ubicaciones, plantas, usuarios)
// sobre el mismo Store. Cada operación toma el mutex.

// Components devuelve la vista de componentes.
func (s *Store) Components() repository.ComponentRepository { return &componentView{store: s} }

// Locations devuelve la vista de ubicaciones.
func (s *Store) Locations() repository.LocationRepository { return &locationView{store: s} }

// Facilities devuelve la vista de plantas.
func (s *Store) Facilities() repository.FacilityRepository { return &facilityView{store: s} }

// Users devuelve la vista de usuarios.
func (s *Store) Users() repository.UserRepository { return &userView{store: s} }

// ─────────────────────────────────────────────
// Components
// ─────────────────────────────────────────────

type componentView struct {
	store *Store
}

var _ repository.ComponentRepository = (*componentView)(nil)

func (v *componentView) Create(c *entity.Component) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	for _, existing := range v.store.components {
		if existing.Number == c.Number {
			return domain.ErrDuplicate
		}
	}
	v.store.components[c.ID] = *c
	return nil
}

func (v *componentView) GetByID(id string) (*entity.Component, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	if c, ok := v.store.components[id]; ok {
		copied := c
		return &copied, nil
	}
	return nil, nil
}

func (v *componentView) GetByNumber(number string) (*entity.Component, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	for _, c := range v.store.components {
		if c.Number == number {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (v *componentView) Update(c *entity.Component) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	if _, ok := v.store.components[c.ID]; !ok {
		return domain.ErrNotFound
	}
	v.store.components[c.ID] = *c
	return nil
}

func (v *componentView) List(limit, offset int) ([]*entity.Component, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	list := make([]*entity.Component, 0, len(v.store.components))
	for _, c := range v.store.components {
		copied := c
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return page(list, limit, offset), nil
}

func (v *componentView) Deactivate(id string) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	c, ok := v.store.components[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Active = false
	c.UpdatedAt = time.Now().UTC()
	v.store.components[id] = c
	return nil
}

// ─────────────────────────────────────────────
// Locations
// ─────────────────────────────────────────────

type locationView struct {
	store *Store
}

var _ repository.LocationRepository = (*locationView)(nil)

func (v *locationView) Create(l *entity.Location) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	for _, existing := range v.store.locations {
		if existing.Name == l.Name {
			return domain.ErrDuplicate
		}
	}
	v.store.locations[l.ID] = *l
	return nil
}

func (v *locationView) GetByID(id string) (*entity.Location, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	if l, ok := v.store.locations[id]; ok {
		copied := l
		return &copied, nil
	}
	return nil, nil
}

func (v *locationView) GetByName(name string) (*entity.Location, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	for _, l := range v.store.locations {
		if l.Name == name {
			copied := l
			return &copied, nil
		}
	}
	return nil, nil
}

func (v *locationView) Update(l *entity.Location) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	if _, ok := v.store.locations[l.ID]; !ok {
		return domain.ErrNotFound
	}
	v.store.locations[l.ID] = *l
	return nil
}

func (v *locationView) ListByFacility(facilityID string, limit, offset int) ([]*entity.Location, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	var list []*entity.Location
	for _, l := range v.store.locations {
		if l.FacilityID == facilityID {
			copied := l
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (v *locationView) List(limit, offset int) ([]*entity.Location, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	list := make([]*entity.Location, 0, len(v.store.locations))
	for _, l := range v.store.locations {
		copied := l
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// ─────────────────────────────────────────────
// Facilities
// ─────────────────────────────────────────────

type facilityView struct {
	store *Store
}

var _ repository.FacilityRepository = (*facilityView)(nil)

func (v *facilityView) Create(f *entity.Facility) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	v.store.facilities[f.ID] = *f
	return nil
}

func (v *facilityView) GetByID(id string) (*entity.Facility, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	if f, ok := v.store.facilities[id]; ok {
		copied := f
		return &copied, nil
	}
	return nil, nil
}

func (v *facilityView) List(limit, offset int) ([]*entity.Facility, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	list := make([]*entity.Facility, 0, len(v.store.facilities))
	for _, f := range v.store.facilities {
		copied := f
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// ─────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────

type userView struct {
	store *Store
}

var _ repository.UserRepository = (*userView)(nil)

func (v *userView) Create(u *entity.User) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	for _, existing := range v.store.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	v.store.users[u.ID] = *u
	return nil
}

func (v *userView) GetByID(id string) (*entity.User, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	if u, ok := v.store.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (v *userView) FindByEmail(email string) (*entity.User, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	for _, u := range v.store.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (v *userView) GetByEmailAndFacility(email, facilityID string) (*entity.User, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	for _, u := range v.store.users {
		if u.Email == email && u.FacilityID == facilityID {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func page[T any](list []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
