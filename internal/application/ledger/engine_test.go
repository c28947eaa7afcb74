package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// testEnv motor sobre el store en memoria, con un componente y dos ubicaciones
// ya sembrados.
type testEnv struct {
	engine      *ledger.Engine
	store       *memory.Store
	notifier    *recordingNotifier
	componentID string
	mainID      string
	lineID      string
}

// recordingNotifier acumula los eventos publicados por el motor.
type recordingNotifier struct {
	mu     sync.Mutex
	events []ledger.StockEvent
}

func (n *recordingNotifier) StockChanged(evt ledger.StockEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

// newTestEnv siembra planta, ubicaciones Main/Line y un componente activo con
// mínimo configurado en 5.
func newTestEnv(t *testing.T) *testEnv {
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
		MinStockLevel: 5, Active: true, CreatedAt: now, UpdatedAt: now,
	}))

	notifier := &recordingNotifier{}
	engine := ledger.NewEngine(memory.NewTxRunner(store), store.Components(), store.Locations(), notifier)
	return &testEnv{
		engine:      engine,
		store:       store,
		notifier:    notifier,
		componentID: componentID,
		mainID:      mainID,
		lineID:      lineID,
	}
}

// quantityAt devuelve la cantidad actual del componente en la ubicación.
func (e *testEnv) quantityAt(t *testing.T, locationID string) int64 {
	t.Helper()
	item, err := e.store.Items().Get(e.componentID, locationID)
	require.NoError(t, err)
	return item.Quantity
}

// logLen devuelve el número de registros del log.
func (e *testEnv) logLen(t *testing.T) int {
	t.Helper()
	txs, err := e.store.Transactions().ListAllAsc(context.Background())
	require.NoError(t, err)
	return len(txs)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddStock
// ──────────────────────────────────────────────────────────────────────────────

// La primera entrada crea la fila perezosamente y hereda el mínimo del componente.
func TestAddStock_CreaFilaConMinimoHeredado(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tx, err := env.engine.AddStock(ctx, ledger.AddInput{
		ComponentID: env.componentID, LocationID: env.mainID, Quantity: 100,
	})
	require.NoError(t, err)
	require.NotNil(t, tx)

	assert.Equal(t, entity.TransactionTypeAdd, tx.Type)
	assert.Empty(t, tx.FromLocationID, "un add no tiene ubicación origen")
	assert.Equal(t, env.mainID, tx.ToLocationID)
	assert.EqualValues(t, 100, tx.Quantity)

	item, err := env.store.Items().Get(env.componentID, env.mainID)
	require.NoError(t, err)
	assert.EqualValues(t, 100, item.Quantity)
	assert.EqualValues(t, 5, item.MinStockLevel, "la fila nueva hereda el mínimo del componente")
	assert.Equal(t, 1, env.notifier.count(), "cada mutación confirmada publica un evento")
}

// Entradas sucesivas acumulan sin tocar el mínimo ya fijado.
func TestAddStock_AcumulaSinTocarMinimo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 10})
	require.NoError(t, err)
	require.NoError(t, env.store.Items().UpdateMinStock(env.componentID, env.mainID, 50))
	_, err = env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 7})
	require.NoError(t, err)

	item, err := env.store.Items().Get(env.componentID, env.mainID)
	require.NoError(t, err)
	assert.EqualValues(t, 17, item.Quantity)
	assert.EqualValues(t, 50, item.MinStockLevel, "el mínimo fijado a mano sobrevive a nuevas entradas")
	assert.Equal(t, 2, env.logLen(t), "un registro por operación exitosa")
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveStock / Consume
// ──────────────────────────────────────────────────────────────────────────────

// Retirar más de lo disponible falla sin efecto alguno.
func TestRemoveStock_InsuficienteNoDejaRastro(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 5})
	require.NoError(t, err)

	_, err = env.engine.RemoveStock(ctx, ledger.RemoveInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	assert.EqualValues(t, 5, env.quantityAt(t, env.mainID), "la cantidad queda intacta")
	assert.Equal(t, 1, env.logLen(t), "la operación fallida no deja registro")
	assert.Equal(t, 1, env.notifier.count(), "la operación fallida no publica evento")
}

// Retirar exactamente el stock disponible deja la fila en cero (la fila persiste).
func TestRemoveStock_HastaCero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 8})
	require.NoError(t, err)
	tx, err := env.engine.RemoveStock(ctx, ledger.RemoveInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 8})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeRemove, tx.Type)
	assert.Equal(t, env.mainID, tx.FromLocationID)
	assert.Empty(t, tx.ToLocationID, "un remove no tiene ubicación destino")
	assert.EqualValues(t, 0, env.quantityAt(t, env.mainID))
}

// Consume comparte mecánica con remove pero el registro queda tipado "consume".
func TestConsume_RegistraTipoConsume(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.lineID, Quantity: 10})
	require.NoError(t, err)
	tx, err := env.engine.Consume(ctx, ledger.ConsumeInput{ComponentID: env.componentID, LocationID: env.lineID, Quantity: 4})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeConsume, tx.Type)
	assert.EqualValues(t, 6, env.quantityAt(t, env.lineID))
}

// Una ubicación sin fila tiene stock cero: cualquier retiro falla.
func TestConsume_SinFilaEsStockCero(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.Consume(context.Background(), ledger.ConsumeInput{
		ComponentID: env.componentID, LocationID: env.lineID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

// Un transfer mueve la cantidad y deja UN registro con ambas ubicaciones.
func TestTransfer_UnRegistroConAmbasUbicaciones(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 100})
	require.NoError(t, err)

	tx, err := env.engine.Transfer(ctx, ledger.TransferInput{
		ComponentID: env.componentID, FromLocationID: env.mainID, ToLocationID: env.lineID, Quantity: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeTransfer, tx.Type)
	assert.Equal(t, env.mainID, tx.FromLocationID)
	assert.Equal(t, env.lineID, tx.ToLocationID)
	assert.EqualValues(t, 30, tx.Quantity)

	assert.EqualValues(t, 70, env.quantityAt(t, env.mainID))
	assert.EqualValues(t, 30, env.quantityAt(t, env.lineID))
	assert.Equal(t, 2, env.logLen(t), "add + transfer: un registro por operación, nunca dos por transfer")
}

// El destino creado perezosamente por un transfer hereda el mínimo del componente.
func TestTransfer_DestinoNuevoHeredaMinimo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 20})
	require.NoError(t, err)
	_, err = env.engine.Transfer(ctx, ledger.TransferInput{
		ComponentID: env.componentID, FromLocationID: env.mainID, ToLocationID: env.lineID, Quantity: 5,
	})
	require.NoError(t, err)

	item, err := env.store.Items().Get(env.componentID, env.lineID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, item.MinStockLevel)
}

// Transfer con origen == destino es inválido.
func TestTransfer_MismaUbicacionInvalida(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.Transfer(context.Background(), ledger.TransferInput{
		ComponentID: env.componentID, FromLocationID: env.mainID, ToLocationID: env.mainID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Transfer insuficiente no toca ni origen ni destino.
func TestTransfer_InsuficienteSinEfectoParcial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 10})
	require.NoError(t, err)
	_, err = env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.lineID, Quantity: 3})
	require.NoError(t, err)

	_, err = env.engine.Transfer(ctx, ledger.TransferInput{
		ComponentID: env.componentID, FromLocationID: env.mainID, ToLocationID: env.lineID, Quantity: 11,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	assert.EqualValues(t, 10, env.quantityAt(t, env.mainID))
	assert.EqualValues(t, 3, env.quantityAt(t, env.lineID))
	assert.Equal(t, 2, env.logLen(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones comunes
// ──────────────────────────────────────────────────────────────────────────────

func TestValidaciones(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Cantidad no positiva
	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Componente inexistente
	_, err = env.engine.AddStock(ctx, ledger.AddInput{ComponentID: uuid.New().String(), LocationID: env.mainID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Ubicación inexistente
	_, err = env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: uuid.New().String(), Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Componente inactivo
	require.NoError(t, env.store.Components().Deactivate(env.componentID))
	_, err = env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, env.logLen(t), "ninguna operación rechazada deja registro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// N retiros concurrentes de Q unidades sobre un stock S: exitos exactamente
// ⌊S/Q⌋, el resto con ErrInsufficientQuantity, y la cantidad final S mod Q.
// Nunca un estado negativo ni un éxito de más.
func TestConcurrencia_RetirosNoSobrevenden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const (
		stock   = 10
		perOp   = 3
		workers = 8
	)
	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: stock})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.engine.RemoveStock(ctx, ledger.RemoveInput{
				ComponentID: env.componentID, LocationID: env.mainID, Quantity: perOp,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case err == domain.ErrInsufficientQuantity:
			conflicts++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}

	assert.Equal(t, stock/perOp, successes, "solo caben ⌊S/Q⌋ retiros")
	assert.Equal(t, workers-stock/perOp, conflicts)
	assert.EqualValues(t, stock%perOp, env.quantityAt(t, env.mainID))
	assert.Equal(t, 1+successes, env.logLen(t), "un registro por operación exitosa, ninguno por las fallidas")
}

// Transfers concurrentes en ambos sentidos conservan la cantidad total.
func TestConcurrencia_TransfersConservanTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const total = 50
	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: total})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		from, to := env.mainID, env.lineID
		if i%2 == 1 {
			from, to = env.lineID, env.mainID
		}
		go func(from, to string) {
			defer wg.Done()
			// Los transfers sin stock en origen fallan con conflicto; es esperado.
			_, _ = env.engine.Transfer(ctx, ledger.TransferInput{
				ComponentID: env.componentID, FromLocationID: from, ToLocationID: to, Quantity: 7,
			})
		}(from, to)
	}
	wg.Wait()

	sum := env.quantityAt(t, env.mainID) + env.quantityAt(t, env.lineID)
	assert.EqualValues(t, total, sum, "un transfer nunca crea ni destruye unidades")
	assert.GreaterOrEqual(t, env.quantityAt(t, env.mainID), int64(0))
	assert.GreaterOrEqual(t, env.quantityAt(t, env.lineID), int64(0))
}
