package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const selectLocation = `
	SELECT id, facility_id, name, type, created_at, updated_at
	FROM locations`

// Create persiste una ubicación nueva.
func (r *LocationRepo) Create(l *entity.Location) error {
	query := `
		INSERT INTO locations (id, facility_id, name, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.FacilityID, l.Name, l.Type, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID; nil si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	row := r.q.QueryRow(context.Background(), selectLocation+` WHERE id = $1`, id)
	l, err := scanLocationRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// GetByName obtiene una ubicación por nombre; nil si no existe.
// El dashboard resuelve "Main" y "Line" por esta vía.
func (r *LocationRepo) GetByName(name string) (*entity.Location, error) {
	row := r.q.QueryRow(context.Background(), selectLocation+` WHERE name = $1`, name)
	l, err := scanLocationRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by name: %w", err)
	}
	return l, nil
}

// Update persiste los cambios de la ubicación.
func (r *LocationRepo) Update(l *entity.Location) error {
	query := `
		UPDATE locations SET facility_id = $2, name = $3, type = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.FacilityID, l.Name, l.Type, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// ListByFacility lista las ubicaciones de una planta.
func (r *LocationRepo) ListByFacility(facilityID string, limit, offset int) ([]*entity.Location, error) {
	query := selectLocation + ` WHERE facility_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, facilityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations by facility: %w", err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

// List lista todas las ubicaciones.
func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	query := selectLocation + ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

func scanLocationRow(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	if err := row.Scan(&l.ID, &l.FacilityID, &l.Name, &l.Type, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLocations(rows pgx.Rows) ([]*entity.Location, error) {
	var list []*entity.Location
	for rows.Next() {
		l, err := scanLocationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
