package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// dashboardEnv motor + agregador sobre el mismo store en memoria: las vistas
// del dashboard leen el estado real que el motor va mutando, sin stubs.
type dashboardEnv struct {
	engine      *ledger.Engine
	agg         *reports.Aggregator
	store       *memory.Store
	componentID string
	mainID      string
	lineID      string
}

func newDashboardEnv(t *testing.T) *dashboardEnv {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	facilityID := uuid.New().String()
	require.NoError(t, store.Facilities().Create(&entity.Facility{
		ID: facilityID, Name: "Planta Norte", CreatedAt: now, UpdatedAt: now,
	}))

	mainID := uuid.New().String()
	lineID := uuid.New().String()
	require.NoError(t, store.Locations().Create(&entity.Location{
		ID: mainID, FacilityID: facilityID, Name: "Main", Type: entity.LocationTypeStorage, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Locations().Create(&entity.Location{
		ID: lineID, FacilityID: facilityID, Name: "Line", Type: entity.LocationTypeProduction, CreatedAt: now, UpdatedAt: now,
	}))

	componentID := uuid.New().String()
	require.NoError(t, store.Components().Create(&entity.Component{
		ID: componentID, Number: "C-10042", Description: "Rodamiento 6204",
		Active: true, CreatedAt: now, UpdatedAt: now,
	}))

	engine := ledger.NewEngine(memory.NewTxRunner(store), store.Components(), store.Locations(), ledger.NopNotifier{})
	return &dashboardEnv{
		engine:      engine,
		agg:         reports.NewAggregator(store.Reports(), "Main", "Line"),
		store:       store,
		componentID: componentID,
		mainID:      mainID,
		lineID:      lineID,
	}
}

// lowStockNumbers devuelve los números de componente actualmente en alerta.
func (e *dashboardEnv) lowStockNumbers(t *testing.T) []string {
	t.Helper()
	items, err := e.agg.LowStockItems(context.Background())
	require.NoError(t, err)
	numbers := make([]string, 0, len(items))
	for _, it := range items {
		numbers = append(numbers, it.ComponentNumber)
	}
	return numbers
}

// Flujo completo carga → transfer → consumos: el consumo que cruza el umbral
// hace aparecer la fila en la vista de stock bajo, y los totales del dashboard
// reflejan el estado final del ledger.
func TestDashboard_ConsumoCruzaElUmbral(t *testing.T) {
	env := newDashboardEnv(t)
	ctx := context.Background()

	// Carga inicial en Main y transfer parcial a Line.
	_, err := env.engine.AddStock(ctx, ledger.AddInput{
		ComponentID: env.componentID, LocationID: env.mainID, Quantity: 50, Notes: "carga inicial",
	})
	require.NoError(t, err)
	_, err = env.engine.Transfer(ctx, ledger.TransferInput{
		ComponentID: env.componentID, FromLocationID: env.mainID, ToLocationID: env.lineID, Quantity: 20,
	})
	require.NoError(t, err)

	// Un retiro mayor al stock de Line no deja rastro.
	_, err = env.engine.RemoveStock(ctx, ledger.RemoveInput{
		ComponentID: env.componentID, LocationID: env.lineID, Quantity: 25,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	// Umbral de la fila (C, Line) en 10. Con 20 unidades no hay alerta.
	require.NoError(t, env.store.Items().UpdateMinStock(env.componentID, env.lineID, 10))
	assert.Empty(t, env.lowStockNumbers(t), "20 > 10: sin alerta")

	// Primer consumo: 20 → 15, sigue sobre el umbral.
	_, err = env.engine.Consume(ctx, ledger.ConsumeInput{
		ComponentID: env.componentID, LocationID: env.lineID, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, env.lowStockNumbers(t), "15 > 10: sin alerta todavía")

	// Segundo consumo: 15 → 5, cruza el umbral y la fila entra en la vista.
	_, err = env.engine.Consume(ctx, ledger.ConsumeInput{
		ComponentID: env.componentID, LocationID: env.lineID, Quantity: 10,
	})
	require.NoError(t, err)

	items, err := env.agg.LowStockItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "C-10042", items[0].ComponentNumber)
	assert.Equal(t, "Line", items[0].LocationName)
	assert.EqualValues(t, 5, items[0].Quantity)
	assert.EqualValues(t, 10, items[0].MinStockLevel)
	assert.EqualValues(t, 5, items[0].Deficit)

	// Totales del dashboard sobre el estado final: Main 30, Line 5, 1 alerta.
	stats, err := env.agg.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalComponents)
	assert.EqualValues(t, 30, stats.MainInventoryTotal)
	assert.EqualValues(t, 5, stats.LineInventoryTotal)
	assert.GreaterOrEqual(t, stats.LowStockAlerts, 1)
}

// La actividad reciente sale del log real, más reciente primero y con los
// nombres de componente y ubicaciones ya resueltos.
func TestDashboard_ActividadRecienteResuelta(t *testing.T) {
	env := newDashboardEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{
		ComponentID: env.componentID, LocationID: env.mainID, Quantity: 40,
	})
	require.NoError(t, err)
	_, err = env.engine.Transfer(ctx, ledger.TransferInput{
		ComponentID: env.componentID, FromLocationID: env.mainID, ToLocationID: env.lineID, Quantity: 15,
	})
	require.NoError(t, err)
	_, err = env.engine.Consume(ctx, ledger.ConsumeInput{
		ComponentID: env.componentID, LocationID: env.lineID, Quantity: 3,
	})
	require.NoError(t, err)

	recent, err := env.agg.RecentTransactions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2, "el límite recorta el listado")

	assert.Equal(t, entity.TransactionTypeConsume, recent[0].Type, "más reciente primero")
	assert.Equal(t, "C-10042", recent[0].ComponentNumber)
	assert.Equal(t, "Line", recent[0].FromLocationName)
	assert.Empty(t, recent[0].ToLocationName)

	assert.Equal(t, entity.TransactionTypeTransfer, recent[1].Type)
	assert.Equal(t, "Main", recent[1].FromLocationName)
	assert.Equal(t, "Line", recent[1].ToLocationName)
}
