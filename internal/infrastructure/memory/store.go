// Package memory implementa todos los puertos del dominio sobre mapas en
// memoria protegidos por un único mutex. Se usa con DB_DRIVER=memory para
// desarrollo local y en los tests de concurrencia del motor de inventario:
// al serializar Run con el mismo mutex ofrece la misma atomicidad que la
// implementación PostgreSQL, sin base de datos.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

type itemKey struct {
	componentID string
	locationID  string
}

// Store estado compartido en memoria. Todas las vistas de repositorio que
// expone comparten este estado y este mutex.
type Store struct {
	mu sync.Mutex

	items        map[itemKey]entity.InventoryItem
	transactions []entity.InventoryTransaction
	components   map[string]entity.Component
	locations    map[string]entity.Location
	facilities   map[string]entity.Facility
	users        map[string]entity.User
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		items:      make(map[itemKey]entity.InventoryItem),
		components: make(map[string]entity.Component),
		locations:  make(map[string]entity.Location),
		facilities: make(map[string]entity.Facility),
		users:      make(map[string]entity.User),
	}
}

// ─────────────────────────────────────────────
// TxRunner
// ─────────────────────────────────────────────

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones del motor con el mutex del Store.
// Antes de ejecutar fn toma una copia del estado mutable; si fn falla,
// restaura la copia (rollback).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén compartido.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	txRepo repository.TransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	savedItems := make(map[itemKey]entity.InventoryItem, len(r.store.items))
	for k, v := range r.store.items {
		savedItems[k] = v
	}
	savedTxLen := len(r.store.transactions)

	itemRepo := &inventoryItemView{store: r.store}
	txRepo := &transactionView{store: r.store}
	if err := fn(itemRepo, txRepo); err != nil {
		r.store.items = savedItems
		r.store.transactions = r.store.transactions[:savedTxLen]
		return err
	}
	return nil
}

// ─────────────────────────────────────────────
// Ledger Store (inventory items)
// ─────────────────────────────────────────────

var _ repository.InventoryItemRepository = (*inventoryItemView)(nil)

// inventoryItemView vista del Ledger Store. Solo el TxRunner la construye,
// ya con el mutex tomado; no vuelve a bloquear.
type inventoryItemView struct {
	store *Store
}

func (v *inventoryItemView) Get(componentID, locationID string) (*entity.InventoryItem, error) {
	return v.store.getItemLocked(componentID, locationID), nil
}

func (v *inventoryItemView) GetForUpdate(componentID, locationID string) (*entity.InventoryItem, error) {
	// Con el mutex del Store tomado, toda lectura ya es exclusiva.
	return v.store.getItemLocked(componentID, locationID), nil
}

func (v *inventoryItemView) Upsert(item *entity.InventoryItem) error {
	key := itemKey{componentID: item.ComponentID, locationID: item.LocationID}
	existing, ok := v.store.items[key]
	stored := *item
	if ok {
		// En filas existentes el umbral es propiedad del par: no se toca.
		stored.MinStockLevel = existing.MinStockLevel
	}
	stored.UpdatedAt = time.Now().UTC()
	v.store.items[key] = stored
	return nil
}

func (v *inventoryItemView) UpdateMinStock(componentID, locationID string, minStock int64) error {
	v.store.updateMinStockLocked(componentID, locationID, minStock)
	return nil
}

func (v *inventoryItemView) ListByComponent(componentID string) ([]*entity.InventoryItem, error) {
	return v.store.listItemsLocked(func(it entity.InventoryItem) bool {
		return it.ComponentID == componentID
	}, 0, 0), nil
}

func (v *inventoryItemView) ListByLocation(locationID string, limit, offset int) ([]*entity.InventoryItem, error) {
	return v.store.listItemsLocked(func(it entity.InventoryItem) bool {
		return it.LocationID == locationID
	}, limit, offset), nil
}

func (v *inventoryItemView) ListAll() ([]*entity.InventoryItem, error) {
	return v.store.listItemsLocked(func(entity.InventoryItem) bool { return true }, 0, 0), nil
}

func (s *Store) getItemLocked(componentID, locationID string) *entity.InventoryItem {
	key := itemKey{componentID: componentID, locationID: locationID}
	if it, ok := s.items[key]; ok {
		copied := it
		return &copied
	}
	// Ausencia significa stock cero: fila con UpdatedAt cero.
	return &entity.InventoryItem{ComponentID: componentID, LocationID: locationID}
}

func (s *Store) updateMinStockLocked(componentID, locationID string, minStock int64) {
	key := itemKey{componentID: componentID, locationID: locationID}
	it, ok := s.items[key]
	if !ok {
		it = entity.InventoryItem{ComponentID: componentID, LocationID: locationID}
	}
	it.MinStockLevel = minStock
	it.UpdatedAt = time.Now().UTC()
	s.items[key] = it
}

func (s *Store) listItemsLocked(match func(entity.InventoryItem) bool, limit, offset int) []*entity.InventoryItem {
	var list []*entity.InventoryItem
	for _, it := range s.items {
		if match(it) {
			copied := it
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ComponentID != list[j].ComponentID {
			return list[i].ComponentID < list[j].ComponentID
		}
		return list[i].LocationID < list[j].LocationID
	})
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

// ─────────────────────────────────────────────
// Transaction Log (append-only)
// ─────────────────────────────────────────────

var _ repository.TransactionRepository = (*transactionView)(nil)

type transactionView struct {
	store *Store
}

func (v *transactionView) Create(tx *entity.InventoryTransaction) error {
	v.store.transactions = append(v.store.transactions, *tx)
	return nil
}

func (v *transactionView) GetByID(id string) (*entity.InventoryTransaction, error) {
	return v.store.getTransactionLocked(id), nil
}

func (v *transactionView) ListRecent(limit int) ([]*entity.InventoryTransaction, error) {
	return v.store.listRecentLocked(limit), nil
}

func (v *transactionView) ListByComponent(componentID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	return v.store.listByComponentLocked(componentID, from, to, limit, offset), nil
}

func (v *transactionView) ListAllAsc(ctx context.Context) ([]*entity.InventoryTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list := make([]*entity.InventoryTransaction, 0, len(v.store.transactions))
	for i := range v.store.transactions {
		copied := v.store.transactions[i]
		list = append(list, &copied)
	}
	return list, nil
}

func (s *Store) getTransactionLocked(id string) *entity.InventoryTransaction {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			copied := s.transactions[i]
			return &copied
		}
	}
	return nil
}

func (s *Store) listRecentLocked(limit int) []*entity.InventoryTransaction {
	n := len(s.transactions)
	if limit <= 0 || limit > n {
		limit = n
	}
	list := make([]*entity.InventoryTransaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		copied := s.transactions[i]
		list = append(list, &copied)
	}
	return list
}

func (s *Store) listByComponentLocked(componentID string, from, to *time.Time, limit, offset int) []*entity.InventoryTransaction {
	var list []*entity.InventoryTransaction
	for i := len(s.transactions) - 1; i >= 0; i-- {
		tx := s.transactions[i]
		if tx.ComponentID != componentID {
			continue
		}
		if from != nil && tx.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && tx.CreatedAt.After(*to) {
			continue
		}
		copied := tx
		list = append(list, &copied)
	}
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

// ─────────────────────────────────────────────
// Vistas fuera de transacción
// ─────────────────────────────────────────────

// Items devuelve una vista del Ledger Store que toma el mutex por operación.
// Para lecturas fuera del motor (handlers de consulta).
func (s *Store) Items() repository.InventoryItemRepository {
	return &lockedItemView{store: s}
}

// Transactions devuelve una vista del log que toma el mutex por operación.
func (s *Store) Transactions() repository.TransactionRepository {
	return &lockedTransactionView{store: s}
}

type lockedItemView struct {
	store *Store
}

var _ repository.InventoryItemRepository = (*lockedItemView)(nil)

func (v *lockedItemView) Get(componentID, locationID string) (*entity.InventoryItem, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.getItemLocked(componentID, locationID), nil
}

func (v *lockedItemView) GetForUpdate(componentID, locationID string) (*entity.InventoryItem, error) {
	return v.Get(componentID, locationID)
}

func (v *lockedItemView) Upsert(item *entity.InventoryItem) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	inner := &inventoryItemView{store: v.store}
	return inner.Upsert(item)
}

func (v *lockedItemView) UpdateMinStock(componentID, locationID string, minStock int64) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	v.store.updateMinStockLocked(componentID, locationID, minStock)
	return nil
}

func (v *lockedItemView) ListByComponent(componentID string) ([]*entity.InventoryItem, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.listItemsLocked(func(it entity.InventoryItem) bool {
		return it.ComponentID == componentID
	}, 0, 0), nil
}

func (v *lockedItemView) ListByLocation(locationID string, limit, offset int) ([]*entity.InventoryItem, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.listItemsLocked(func(it entity.InventoryItem) bool {
		return it.LocationID == locationID
	}, limit, offset), nil
}

func (v *lockedItemView) ListAll() ([]*entity.InventoryItem, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.listItemsLocked(func(entity.InventoryItem) bool { return true }, 0, 0), nil
}

type lockedTransactionView struct {
	store *Store
}

var _ repository.TransactionRepository = (*lockedTransactionView)(nil)

func (v *lockedTransactionView) Create(tx *entity.InventoryTransaction) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	v.store.transactions = append(v.store.transactions, *tx)
	return nil
}

func (v *lockedTransactionView) GetByID(id string) (*entity.InventoryTransaction, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.getTransactionLocked(id), nil
}

func (v *lockedTransactionView) ListRecent(limit int) ([]*entity.InventoryTransaction, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.listRecentLocked(limit), nil
}

func (v *lockedTransactionView) ListByComponent(componentID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.listByComponentLocked(componentID, from, to, limit, offset), nil
}

func (v *lockedTransactionView) ListAllAsc(ctx context.Context) ([]*entity.InventoryTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	list := make([]*entity.InventoryTransaction, 0, len(v.store.transactions))
	for i := range v.store.transactions {
		copied := v.store.transactions[i]
		list = append(list, &copied)
	}
	return list, nil
}
