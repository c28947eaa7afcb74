package ws_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/interfaces/ws"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func newTestHub(bufferSize int) *ws.Hub {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return ws.NewHub("secreto-test", bufferSize, log)
}

// Run retorna al cancelarse el contexto (apagado ordenado del proceso).
func TestHub_RunTerminaConContextoCancelado(t *testing.T) {
	hub := newTestHub(4)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	// El hub sigue drenando eventos mientras el contexto vive.
	hub.StockChanged(ledger.StockEvent{TransactionID: "t1", Type: "add"})

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}

// StockChanged nunca bloquea al motor: con la cola llena el evento se descarta.
func TestHub_StockChangedNoBloqueaConColaLlena(t *testing.T) {
	// Sin Run consumiendo, la cola de tamaño 1 se llena con el primer evento.
	hub := newTestHub(1)

	done := make(chan struct{})
	go func() {
		hub.StockChanged(ledger.StockEvent{TransactionID: "t1", Type: "add"})
		hub.StockChanged(ledger.StockEvent{TransactionID: "t2", Type: "remove"})
		hub.StockChanged(ledger.StockEvent{TransactionID: "t3", Type: "transfer"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("StockChanged bloqueó con la cola llena")
	}
}

// El tamaño de buffer no positivo cae al valor por defecto sin fallar.
func TestHub_BufferPorDefecto(t *testing.T) {
	hub := newTestHub(0)
	require.NotNil(t, hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	hub.StockChanged(ledger.StockEvent{TransactionID: "t1", Type: "consume"})
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run no terminó")
	}
}
