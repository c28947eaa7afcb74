// Package reports contiene el Aggregator: vistas derivadas de solo lectura
// (totales del dashboard, stock bajo, actividad reciente) calculadas en fresco
// desde el estado confirmado del ledger. Nada se cachea: una caché podría
// divergir del estado comprometido.
package reports

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Aggregator calcula las vistas derivadas del ledger.
//
// Fuente de datos: ReportRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type Aggregator struct {
	reportRepo repository.ReportRepository
	mainName   string // ubicación bien conocida de almacén central
	lineName   string // ubicación bien conocida de línea de producción
}

// NewAggregator construye el agregador. mainName/lineName identifican las dos
// ubicaciones del dashboard (por convención "Main" y "Line").
func NewAggregator(reportRepo repository.ReportRepository, mainName, lineName string) *Aggregator {
	if mainName == "" {
		mainName = "Main"
	}
	if lineName == "" {
		lineName = "Line"
	}
	return &Aggregator{reportRepo: reportRepo, mainName: mainName, lineName: lineName}
}

// DashboardStats construye el DashboardStatsDTO.
//
// Cuatro consultas en paralelo:
//  1. CountActiveComponents          → TotalComponents
//  2. SumQuantityByLocationName(Main) → MainInventoryTotal
//  3. SumQuantityByLocationName(Line) → LineInventoryTotal
//  4. CountLowStock                  → LowStockAlerts
func (a *Aggregator) DashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type sumResult struct {
		total int64
		err   error
	}

	componentsCh := make(chan countResult, 1)
	mainCh := make(chan sumResult, 1)
	lineCh := make(chan sumResult, 1)
	lowCh := make(chan countResult, 1)

	go func() {
		n, err := a.reportRepo.CountActiveComponents(ctx)
		componentsCh <- countResult{n, err}
	}()
	go func() {
		total, err := a.reportRepo.SumQuantityByLocationName(ctx, a.mainName)
		mainCh <- sumResult{total, err}
	}()
	go func() {
		total, err := a.reportRepo.SumQuantityByLocationName(ctx, a.lineName)
		lineCh <- sumResult{total, err}
	}()
	go func() {
		n, err := a.reportRepo.CountLowStock(ctx)
		lowCh <- countResult{n, err}
	}()

	components := <-componentsCh
	main := <-mainCh
	line := <-lineCh
	low := <-lowCh

	if components.err != nil {
		return nil, fmt.Errorf("dashboard: componentes activos: %w", components.err)
	}
	if main.err != nil {
		return nil, fmt.Errorf("dashboard: total %s: %w", a.mainName, main.err)
	}
	if line.err != nil {
		return nil, fmt.Errorf("dashboard: total %s: %w", a.lineName, line.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: alertas de stock bajo: %w", low.err)
	}

	return &dto.DashboardStatsDTO{
		TotalComponents:    components.n,
		MainInventoryTotal: main.total,
		LineInventoryTotal: line.total,
		LowStockAlerts:     low.n,
	}, nil
}

// LowStockItems devuelve los pares (componente, ubicación) en o bajo su mínimo,
// más agotados primero (mayor déficit), desempate por número de componente.
// El orden lo garantiza la consulta: estable entre llamadas para paginación.
func (a *Aggregator) LowStockItems(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	rows, err := a.reportRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}

	items := make([]dto.LowStockItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.LowStockItemDTO{
			ComponentID:          r.ComponentID,
			ComponentNumber:      r.ComponentNumber,
			ComponentDescription: r.ComponentDescription,
			LocationID:           r.LocationID,
			LocationName:         r.LocationName,
			Quantity:             r.Quantity,
			MinStockLevel:        r.MinStockLevel,
			Deficit:              r.Deficit(),
		})
	}
	return items, nil
}

// RecentTransactions devuelve las últimas transacciones, más reciente primero,
// con el contexto de componente y ubicaciones resuelto.
func (a *Aggregator) RecentTransactions(ctx context.Context, limit int) ([]dto.RecentTransactionDTO, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.reportRepo.ListRecentTransactions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("actividad reciente: %w", err)
	}

	out := make([]dto.RecentTransactionDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RecentTransactionDTO{
			ID:                   r.ID,
			Type:                 r.Type,
			Quantity:             r.Quantity,
			ComponentID:          r.ComponentID,
			ComponentNumber:      r.ComponentNumber,
			ComponentDescription: r.ComponentDescription,
			FromLocationName:     r.FromLocationName,
			ToLocationName:       r.ToLocationName,
			Notes:                r.Notes,
			CreatedAt:            r.CreatedAt,
			CreatedBy:            r.CreatedBy,
		})
	}
	return out, nil
}
