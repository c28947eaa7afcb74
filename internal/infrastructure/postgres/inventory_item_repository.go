package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del Ledger Store sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Get obtiene la fila actual. Ausencia de fila = cantidad cero (no error).
func (r *InventoryItemRepo) Get(componentID, locationID string) (*entity.InventoryItem, error) {
	query := `
		SELECT component_id, location_id, quantity, min_stock_level, updated_at
		FROM inventory_items WHERE component_id = $1 AND location_id = $2`
	var i entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, componentID, locationID).Scan(
		&i.ComponentID, &i.LocationID, &i.Quantity, &i.MinStockLevel, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryItem{ComponentID: componentID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &i, nil
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(componentID, locationID string) (*entity.InventoryItem, error) {
	query := `
		SELECT component_id, location_id, quantity, min_stock_level, updated_at
		FROM inventory_items WHERE component_id = $1 AND location_id = $2
		FOR UPDATE`
	var i entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, componentID, locationID).Scan(
		&i.ComponentID, &i.LocationID, &i.Quantity, &i.MinStockLevel, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryItem{ComponentID: componentID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return &i, nil
}

// Upsert inserta o actualiza la cantidad absoluta. En conflicto no toca
// min_stock_level: el umbral se fija al crear la fila o vía UpdateMinStock.
// El CHECK (quantity >= 0) del esquema respalda el invariante del motor.
func (r *InventoryItemRepo) Upsert(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (component_id, location_id, quantity, min_stock_level, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (component_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		item.ComponentID, item.LocationID, item.Quantity, item.MinStockLevel)
	if err != nil {
		return fmt.Errorf("upsert inventory item: %w", err)
	}
	return nil
}

// UpdateMinStock fija el umbral mínimo del par; crea la fila en cero si no existe.
func (r *InventoryItemRepo) UpdateMinStock(componentID, locationID string, minStock int64) error {
	query := `
		INSERT INTO inventory_items (component_id, location_id, quantity, min_stock_level, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (component_id, location_id)
		DO UPDATE SET min_stock_level = EXCLUDED.min_stock_level, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, componentID, locationID, minStock)
	if err != nil {
		return fmt.Errorf("update min stock: %w", err)
	}
	return nil
}

// ListByComponent lista las filas del componente en todas las ubicaciones.
func (r *InventoryItemRepo) ListByComponent(componentID string) ([]*entity.InventoryItem, error) {
	query := `
		SELECT component_id, location_id, quantity, min_stock_level, updated_at
		FROM inventory_items WHERE component_id = $1
		ORDER BY location_id`
	rows, err := r.q.Query(context.Background(), query, componentID)
	if err != nil {
		return nil, fmt.Errorf("list items by component: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListByLocation lista las filas de una ubicación.
func (r *InventoryItemRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT component_id, location_id, quantity, min_stock_level, updated_at
		FROM inventory_items WHERE location_id = $1
		ORDER BY component_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items by location: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListAll devuelve todas las filas del ledger (verificación por replay).
func (r *InventoryItemRepo) ListAll() ([]*entity.InventoryItem, error) {
	query := `
		SELECT component_id, location_id, quantity, min_stock_level, updated_at
		FROM inventory_items
		ORDER BY component_id, location_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(&i.ComponentID, &i.LocationID, &i.Quantity, &i.MinStockLevel, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
