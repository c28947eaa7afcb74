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

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo implementación de ComponentRepository sobre PostgreSQL.
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

const selectComponent = `
	SELECT id, number, description, category, supplier, unit_price, min_stock_level, max_stock_level, active, created_at, updated_at
	FROM components`

// Create persiste un componente nuevo.
func (r *ComponentRepo) Create(c *entity.Component) error {
	query := `
		INSERT INTO components (id, number, description, category, supplier, unit_price, min_stock_level, max_stock_level, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Number, c.Description, c.Category, c.Supplier, c.UnitPrice,
		c.MinStockLevel, c.MaxStockLevel, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create component: %w", err)
	}
	return nil
}

// GetByID obtiene un componente por ID; nil si no existe.
func (r *ComponentRepo) GetByID(id string) (*entity.Component, error) {
	row := r.q.QueryRow(context.Background(), selectComponent+` WHERE id = $1`, id)
	c, err := scanComponentRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return c, nil
}

// GetByNumber obtiene un componente por su número único; nil si no existe.
func (r *ComponentRepo) GetByNumber(number string) (*entity.Component, error) {
	row := r.q.QueryRow(context.Background(), selectComponent+` WHERE number = $1`, number)
	c, err := scanComponentRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component by number: %w", err)
	}
	return c, nil
}

// Update persiste los cambios del componente.
func (r *ComponentRepo) Update(c *entity.Component) error {
	query := `
		UPDATE components
		SET description = $2, category = $3, supplier = $4, unit_price = $5,
		    min_stock_level = $6, max_stock_level = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Description, c.Category, c.Supplier, c.UnitPrice,
		c.MinStockLevel, c.MaxStockLevel, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	return nil
}

// List devuelve una página de componentes ordenada por número.
func (r *ComponentRepo) List(limit, offset int) ([]*entity.Component, error) {
	query := selectComponent + ` ORDER BY number LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()
	var list []*entity.Component
	for rows.Next() {
		c, err := scanComponentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Deactivate marca el componente como inactivo.
func (r *ComponentRepo) Deactivate(id string) error {
	query := `UPDATE components SET active = false, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate component: %w", err)
	}
	return nil
}

func scanComponentRow(row pgx.Row) (*entity.Component, error) {
	var c entity.Component
	if err := row.Scan(&c.ID, &c.Number, &c.Description, &c.Category, &c.Supplier,
		&c.UnitPrice, &c.MinStockLevel, &c.MaxStockLevel, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
