package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ledger Store en memoria
// ──────────────────────────────────────────────────────────────────────────────

// Una clave ausente se lee como fila en cero, nunca como error.
func TestItems_AusenciaEsStockCero(t *testing.T) {
	store := memory.NewStore()

	item, err := store.Items().Get("c1", "l1")
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.EqualValues(t, 0, item.Quantity)
	assert.True(t, item.UpdatedAt.IsZero(), "fila nunca escrita: UpdatedAt cero")
}

// Upsert sobre una fila existente nunca pisa el umbral mínimo configurado.
func TestItems_UpsertPreservaMinimo(t *testing.T) {
	store := memory.NewStore()
	items := store.Items()

	require.NoError(t, items.Upsert(&entity.InventoryItem{
		ComponentID: "c1", LocationID: "l1", Quantity: 10, MinStockLevel: 5,
	}))
	require.NoError(t, items.UpdateMinStock("c1", "l1", 50))

	// Un upsert posterior (p. ej. del motor al acumular stock) trae otro valor
	// de MinStockLevel, pero la fila ya existe: el umbral no se toca.
	require.NoError(t, items.Upsert(&entity.InventoryItem{
		ComponentID: "c1", LocationID: "l1", Quantity: 30, MinStockLevel: 5,
	}))

	item, err := items.Get("c1", "l1")
	require.NoError(t, err)
	assert.EqualValues(t, 30, item.Quantity)
	assert.EqualValues(t, 50, item.MinStockLevel)
	assert.False(t, item.UpdatedAt.IsZero())
}

// ListByLocation ordena por (componente, ubicación) y pagina.
func TestItems_ListByLocationPaginado(t *testing.T) {
	store := memory.NewStore()
	items := store.Items()

	for _, cid := range []string{"c3", "c1", "c2"} {
		require.NoError(t, items.Upsert(&entity.InventoryItem{ComponentID: cid, LocationID: "l1", Quantity: 1}))
	}
	require.NoError(t, items.Upsert(&entity.InventoryItem{ComponentID: "c9", LocationID: "otra", Quantity: 1}))

	list, err := items.ListByLocation("l1", 2, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c2", list[0].ComponentID)
	assert.Equal(t, "c3", list[1].ComponentID)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// Si fn falla, tanto las filas como el log quedan como antes de Run.
func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	ctx := context.Background()

	require.NoError(t, store.Items().Upsert(&entity.InventoryItem{
		ComponentID: "c1", LocationID: "l1", Quantity: 10,
	}))

	boom := errors.New("boom")
	err := runner.Run(ctx, func(itemRepo repository.InventoryItemRepository, txRepo repository.TransactionRepository) error {
		require.NoError(t, itemRepo.Upsert(&entity.InventoryItem{
			ComponentID: "c1", LocationID: "l1", Quantity: 99,
		}))
		require.NoError(t, itemRepo.Upsert(&entity.InventoryItem{
			ComponentID: "c2", LocationID: "l1", Quantity: 7,
		}))
		require.NoError(t, txRepo.Create(&entity.InventoryTransaction{
			ID: "t1", Type: entity.TransactionTypeAdd, ComponentID: "c1", ToLocationID: "l1", Quantity: 99,
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	item, err := store.Items().Get("c1", "l1")
	require.NoError(t, err)
	assert.EqualValues(t, 10, item.Quantity, "la fila vuelve a su valor previo")

	created, err := store.Items().Get("c2", "l1")
	require.NoError(t, err)
	assert.True(t, created.UpdatedAt.IsZero(), "la fila creada dentro de fn desaparece")

	txs, err := store.Transactions().ListAllAsc(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs, "el log no conserva registros de la transacción fallida")
}

// Con fn exitosa los cambios persisten fuera de Run.
func TestTxRunner_CommitPersiste(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	ctx := context.Background()

	err := runner.Run(ctx, func(itemRepo repository.InventoryItemRepository, txRepo repository.TransactionRepository) error {
		if err := itemRepo.Upsert(&entity.InventoryItem{ComponentID: "c1", LocationID: "l1", Quantity: 42}); err != nil {
			return err
		}
		return txRepo.Create(&entity.InventoryTransaction{
			ID: "t1", Type: entity.TransactionTypeAdd, ComponentID: "c1", ToLocationID: "l1", Quantity: 42,
		})
	})
	require.NoError(t, err)

	item, err := store.Items().Get("c1", "l1")
	require.NoError(t, err)
	assert.EqualValues(t, 42, item.Quantity)

	txs, err := store.Transactions().ListAllAsc(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "t1", txs[0].ID)
}

// Un contexto ya cancelado corta antes de tomar el lock.
func TestTxRunner_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := runner.Run(ctx, func(repository.InventoryItemRepository, repository.TransactionRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
