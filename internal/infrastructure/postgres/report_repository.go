package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura del dashboard sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// CountActiveComponents cuenta los componentes activos.
func (r *ReportRepo) CountActiveComponents(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM components WHERE active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active components: %w", err)
	}
	return count, nil
}

// SumQuantityByLocationName suma el stock de la ubicación con ese nombre.
// COALESCE devuelve 0 cuando la ubicación no existe o no tiene filas.
func (r *ReportRepo) SumQuantityByLocationName(ctx context.Context, name string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(ii.quantity), 0)
		FROM inventory_items ii
		JOIN locations l ON l.id = ii.location_id
		WHERE l.name = $1`
	var total int64
	if err := r.q.QueryRow(ctx, query, name).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum quantity by location name: %w", err)
	}
	return total, nil
}

// CountLowStock cuenta las filas con cantidad en o por debajo del mínimo.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM inventory_items
		WHERE min_stock_level > 0 AND quantity <= min_stock_level`
	var count int
	if err := r.q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}

// ListLowStock devuelve las filas bajo mínimo, mayor déficit primero.
func (r *ReportRepo) ListLowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT ii.component_id, c.number, c.description, ii.location_id, l.name,
		       ii.quantity, ii.min_stock_level
		FROM inventory_items ii
		JOIN components c ON c.id = ii.component_id
		JOIN locations l ON l.id = ii.location_id
		WHERE ii.min_stock_level > 0 AND ii.quantity <= ii.min_stock_level
		ORDER BY (ii.min_stock_level - ii.quantity) DESC, c.number ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ComponentID, &row.ComponentNumber, &row.ComponentDescription,
			&row.LocationID, &row.LocationName, &row.Quantity, &row.MinStockLevel); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListRecentTransactions devuelve las últimas transacciones con los joins ya resueltos.
func (r *ReportRepo) ListRecentTransactions(ctx context.Context, limit int) ([]repository.RecentTransactionRow, error) {
	query := `
		SELECT t.id, t.type, t.quantity,
		       t.component_id, c.number, c.description,
		       COALESCE(t.from_location_id::text, ''), COALESCE(lf.name, ''),
		       COALESCE(t.to_location_id::text, ''), COALESCE(lt.name, ''),
		       COALESCE(t.notes, ''), t.created_at, COALESCE(t.created_by::text, '')
		FROM inventory_transactions t
		JOIN components c ON c.id = t.component_id
		LEFT JOIN locations lf ON lf.id = t.from_location_id
		LEFT JOIN locations lt ON lt.id = t.to_location_id
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	defer rows.Close()

	var list []repository.RecentTransactionRow
	for rows.Next() {
		var row repository.RecentTransactionRow
		if err := rows.Scan(&row.ID, &row.Type, &row.Quantity,
			&row.ComponentID, &row.ComponentNumber, &row.ComponentDescription,
			&row.FromLocationID, &row.FromLocationName,
			&row.ToLocationID, &row.ToLocationName,
			&row.Notes, &row.CreatedAt, &row.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan recent transaction row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
