package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func tx(id, txType, componentID, from, to string, qty int64) *entity.InventoryTransaction {
	return &entity.InventoryTransaction{
		ID: id, Type: txType, ComponentID: componentID,
		FromLocationID: from, ToLocationID: to, Quantity: qty,
	}
}

// Replay reconstruye las cantidades aplicando el log en orden sobre un ledger vacío.
func TestReplay_ReconstruyeSnapshot(t *testing.T) {
	log := []*entity.InventoryTransaction{
		tx("t1", entity.TransactionTypeAdd, "c1", "", "main", 100),
		tx("t2", entity.TransactionTypeTransfer, "c1", "main", "line", 30),
		tx("t3", entity.TransactionTypeConsume, "c1", "line", "", 10),
		tx("t4", entity.TransactionTypeRemove, "c1", "main", "", 20),
		tx("t5", entity.TransactionTypeAdd, "c2", "", "main", 7),
	}

	snapshot, err := ledger.Replay(log)
	require.NoError(t, err)

	assert.EqualValues(t, 50, snapshot[ledger.ItemKey{ComponentID: "c1", LocationID: "main"}])
	assert.EqualValues(t, 20, snapshot[ledger.ItemKey{ComponentID: "c1", LocationID: "line"}])
	assert.EqualValues(t, 7, snapshot[ledger.ItemKey{ComponentID: "c2", LocationID: "main"}])
}

// Un log vacío produce un snapshot vacío.
func TestReplay_LogVacio(t *testing.T) {
	snapshot, err := ledger.Replay(nil)
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

// Un log que deja una cantidad intermedia negativa está corrupto.
func TestReplay_NegativoIntermedioEsError(t *testing.T) {
	log := []*entity.InventoryTransaction{
		tx("t1", entity.TransactionTypeAdd, "c1", "", "main", 5),
		tx("t2", entity.TransactionTypeRemove, "c1", "main", "", 6),
	}
	_, err := ledger.Replay(log)
	assert.Error(t, err)
}

// Tipos desconocidos y cantidades no positivas son errores.
func TestReplay_RegistrosInvalidos(t *testing.T) {
	_, err := ledger.Replay([]*entity.InventoryTransaction{
		tx("t1", "adjust", "c1", "", "main", 5),
	})
	assert.Error(t, err, "tipo desconocido")

	_, err = ledger.Replay([]*entity.InventoryTransaction{
		tx("t1", entity.TransactionTypeAdd, "c1", "", "main", 0),
	})
	assert.Error(t, err, "cantidad no positiva")
}

// La verificación por replay sobre un ledger real debe salir consistente:
// cada mutación del motor deja exactamente un registro.
func TestVerify_LedgerConsistenteTrasOperaciones(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 40})
	require.NoError(t, err)
	_, err = env.engine.Transfer(ctx, ledger.TransferInput{
		ComponentID: env.componentID, FromLocationID: env.mainID, ToLocationID: env.lineID, Quantity: 15,
	})
	require.NoError(t, err)
	_, err = env.engine.Consume(ctx, ledger.ConsumeInput{ComponentID: env.componentID, LocationID: env.lineID, Quantity: 5})
	require.NoError(t, err)
	// Una operación rechazada no debe romper la verificación.
	_, err = env.engine.RemoveStock(ctx, ledger.RemoveInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 999})
	require.Error(t, err)

	verifier := ledger.NewVerifier(env.store.Items(), env.store.Transactions())
	result, err := verifier.Verify(ctx)
	require.NoError(t, err)

	assert.True(t, result.Consistent, "el snapshot reconstruido coincide con las filas actuales")
	assert.Equal(t, 3, result.Transactions)
	assert.Empty(t, result.Mismatches)
}

// Una escritura fuera del motor (sin registro en el log) se detecta como divergencia.
func TestVerify_DetectaMutacionSinRegistro(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.AddStock(ctx, ledger.AddInput{ComponentID: env.componentID, LocationID: env.mainID, Quantity: 10})
	require.NoError(t, err)

	// Escritura directa al store, saltándose el motor: rompe la completitud.
	item, err := env.store.Items().Get(env.componentID, env.mainID)
	require.NoError(t, err)
	item.Quantity = 25
	require.NoError(t, env.store.Items().Upsert(item))

	verifier := ledger.NewVerifier(env.store.Items(), env.store.Transactions())
	result, err := verifier.Verify(ctx)
	require.NoError(t, err)

	assert.False(t, result.Consistent)
	require.Len(t, result.Mismatches, 1)
	assert.EqualValues(t, 25, result.Mismatches[0].Current)
	assert.EqualValues(t, 10, result.Mismatches[0].Replayed)
}
