package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Reports devuelve la vista de consultas del dashboard sobre el Store.
func (s *Store) Reports() repository.ReportRepository { return &reportView{store: s} }

type reportView struct {
	store *Store
}

var _ repository.ReportRepository = (*reportView)(nil)

func (v *reportView) CountActiveComponents(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	count := 0
	for _, c := range v.store.components {
		if c.Active {
			count++
		}
	}
	return count, nil
}

func (v *reportView) SumQuantityByLocationName(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	ids := make(map[string]bool)
	for id, l := range v.store.locations {
		if l.Name == name {
			ids[id] = true
		}
	}
	var total int64
	for _, it := range v.store.items {
		if ids[it.LocationID] {
			total += it.Quantity
		}
	}
	return total, nil
}

func (v *reportView) CountLowStock(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	count := 0
	for _, it := range v.store.items {
		if it.MinStockLevel > 0 && it.Quantity <= it.MinStockLevel {
			count++
		}
	}
	return count, nil
}

func (v *reportView) ListLowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	var list []repository.LowStockRow
	for _, it := range v.store.items {
		if it.MinStockLevel <= 0 || it.Quantity > it.MinStockLevel {
			continue
		}
		row := repository.LowStockRow{
			ComponentID:   it.ComponentID,
			LocationID:    it.LocationID,
			Quantity:      it.Quantity,
			MinStockLevel: it.MinStockLevel,
		}
		if c, ok := v.store.components[it.ComponentID]; ok {
			row.ComponentNumber = c.Number
			row.ComponentDescription = c.Description
		}
		if l, ok := v.store.locations[it.LocationID]; ok {
			row.LocationName = l.Name
		}
		list = append(list, row)
	}
	// Mayor déficit primero; empate por número de componente.
	sort.Slice(list, func(i, j int) bool {
		if list[i].Deficit() != list[j].Deficit() {
			return list[i].Deficit() > list[j].Deficit()
		}
		return list[i].ComponentNumber < list[j].ComponentNumber
	})
	return list, nil
}

func (v *reportView) ListRecentTransactions(ctx context.Context, limit int) ([]repository.RecentTransactionRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	n := len(v.store.transactions)
	if limit <= 0 || limit > n {
		limit = n
	}
	list := make([]repository.RecentTransactionRow, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		tx := v.store.transactions[i]
		row := repository.RecentTransactionRow{
			ID:             tx.ID,
			Type:           tx.Type,
			Quantity:       tx.Quantity,
			ComponentID:    tx.ComponentID,
			FromLocationID: tx.FromLocationID,
			ToLocationID:   tx.ToLocationID,
			Notes:          tx.Notes,
			CreatedAt:      tx.CreatedAt,
			CreatedBy:      tx.CreatedBy,
		}
		if c, ok := v.store.components[tx.ComponentID]; ok {
			row.ComponentNumber = c.Number
			row.ComponentDescription = c.Description
		}
		if l, ok := v.store.locations[tx.FromLocationID]; ok {
			row.FromLocationName = l.Name
		}
		if l, ok := v.store.locations[tx.ToLocationID]; ok {
			row.ToLocationName = l.Name
		}
		list = append(list, row)
	}
	return list, nil
}
