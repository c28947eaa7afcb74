package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del log de transacciones sobre PostgreSQL
// (usable con pool o tx). Solo inserta: el log es append-only por contrato
// y por esquema (sin UPDATE ni DELETE en ninguna consulta).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción de inventario.
func (r *TransactionRepo) Create(tx *entity.InventoryTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_transactions (id, component_id, from_location_id, to_location_id, quantity, type, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ComponentID, nullable(tx.FromLocationID), nullable(tx.ToLocationID),
		tx.Quantity, tx.Type, tx.Notes, tx.CreatedAt, nullable(tx.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	query := selectTransaction + ` WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	tx, err := scanTransactionRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// ListRecent lista las últimas transacciones, más reciente primero.
func (r *TransactionRepo) ListRecent(limit int) ([]*entity.InventoryTransaction, error) {
	query := selectTransaction + ` ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListByComponent lista transacciones de un componente en un rango de fechas.
func (r *TransactionRepo) ListByComponent(componentID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := selectTransaction + ` WHERE component_id = $1`
	args := []any{componentID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions by component: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListAllAsc devuelve el log completo en orden de creación (para replay).
func (r *TransactionRepo) ListAllAsc(ctx context.Context) ([]*entity.InventoryTransaction, error) {
	query := selectTransaction + ` ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

const selectTransaction = `
	SELECT id, component_id, from_location_id, to_location_id, quantity, type, notes, created_at, created_by
	FROM inventory_transactions`

func scanTransactionRow(row pgx.Row) (*entity.InventoryTransaction, error) {
	var tx entity.InventoryTransaction
	var fromLoc, toLoc, createdBy *string
	if err := row.Scan(&tx.ID, &tx.ComponentID, &fromLoc, &toLoc, &tx.Quantity, &tx.Type, &tx.Notes, &tx.CreatedAt, &createdBy); err != nil {
		return nil, err
	}
	if fromLoc != nil {
		tx.FromLocationID = *fromLoc
	}
	if toLoc != nil {
		tx.ToLocationID = *toLoc
	}
	if createdBy != nil {
		tx.CreatedBy = *createdBy
	}
	return &tx, nil
}

func scanTransactions(rows pgx.Rows) ([]*entity.InventoryTransaction, error) {
	var list []*entity.InventoryTransaction
	for rows.Next() {
		tx, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
