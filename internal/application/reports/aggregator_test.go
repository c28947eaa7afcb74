package reports_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// stubReportRepo implementación de ReportRepository con datos fijos.
type stubReportRepo struct {
	active   int
	byName   map[string]int64
	lowCount int
	lowRows  []repository.LowStockRow
	recent   []repository.RecentTransactionRow
	err      error
}

func (s *stubReportRepo) CountActiveComponents(context.Context) (int, error) {
	return s.active, s.err
}
func (s *stubReportRepo) SumQuantityByLocationName(_ context.Context, name string) (int64, error) {
	return s.byName[name], s.err
}
func (s *stubReportRepo) CountLowStock(context.Context) (int, error) {
	return s.lowCount, s.err
}
func (s *stubReportRepo) ListLowStock(context.Context) ([]repository.LowStockRow, error) {
	return s.lowRows, s.err
}
func (s *stubReportRepo) ListRecentTransactions(_ context.Context, limit int) ([]repository.RecentTransactionRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.recent) {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

// Los cuatro totales del dashboard salen de las cuatro consultas.
func TestDashboardStats(t *testing.T) {
	repo := &stubReportRepo{
		active:   12,
		byName:   map[string]int64{"Main": 340, "Line": 25},
		lowCount: 3,
	}
	agg := reports.NewAggregator(repo, "Main", "Line")

	out, err := agg.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, out.TotalComponents)
	assert.EqualValues(t, 340, out.MainInventoryTotal)
	assert.EqualValues(t, 25, out.LineInventoryTotal)
	assert.Equal(t, 3, out.LowStockAlerts)
}

// Una ubicación sin filas (o inexistente) aporta total cero, no error.
func TestDashboardStats_UbicacionSinFilas(t *testing.T) {
	repo := &stubReportRepo{byName: map[string]int64{"Main": 10}}
	agg := reports.NewAggregator(repo, "Main", "Line")

	out, err := agg.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, out.LineInventoryTotal)
}

// Un error de cualquier consulta tumba el dashboard completo.
func TestDashboardStats_PropagaError(t *testing.T) {
	repo := &stubReportRepo{err: errors.New("conexión perdida")}
	agg := reports.NewAggregator(repo, "", "")

	_, err := agg.DashboardStats(context.Background())
	assert.Error(t, err)
}

// El listado de stock bajo conserva el orden de la consulta y calcula el déficit.
func TestLowStockItems(t *testing.T) {
	repo := &stubReportRepo{
		lowRows: []repository.LowStockRow{
			{ComponentNumber: "C-2", LocationName: "Main", Quantity: 0, MinStockLevel: 20},
			{ComponentNumber: "C-1", LocationName: "Line", Quantity: 4, MinStockLevel: 5},
		},
	}
	agg := reports.NewAggregator(repo, "Main", "Line")

	items, err := agg.LowStockItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "C-2", items[0].ComponentNumber, "mayor déficit primero (orden de la consulta)")
	assert.EqualValues(t, 20, items[0].Deficit)
	assert.EqualValues(t, 1, items[1].Deficit)
}

// RecentTransactions aplica el límite por defecto.
func TestRecentTransactions_LimiteDefecto(t *testing.T) {
	rows := make([]repository.RecentTransactionRow, 30)
	for i := range rows {
		rows[i] = repository.RecentTransactionRow{ID: "t", Type: "add", Quantity: 1}
	}
	repo := &stubReportRepo{recent: rows}
	agg := reports.NewAggregator(repo, "Main", "Line")

	out, err := agg.RecentTransactions(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, out, 20, "límite por defecto 20")
}
