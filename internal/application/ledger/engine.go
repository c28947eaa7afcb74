package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Engine es el motor de transacciones del ledger: expone las cuatro operaciones
// de mutación (Transfer, AddStock, RemoveStock, Consume), cada una como unidad
// atómica con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
//
// El motor no reintenta nada: una mutación no es idempotente y reintentarla a
// ciegas tras un timeout podría aplicarla dos veces. La política de retry es
// del caller.
type Engine struct {
	txRunner      TxRunner
	componentRepo repository.ComponentRepository
	locationRepo  repository.LocationRepository
	notifier      Notifier
}

// NewEngine construye el motor. notifier puede ser NopNotifier{}.
func NewEngine(
	txRunner TxRunner,
	componentRepo repository.ComponentRepository,
	locationRepo repository.LocationRepository,
	notifier Notifier,
) *Engine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Engine{
		txRunner:      txRunner,
		componentRepo: componentRepo,
		locationRepo:  locationRepo,
		notifier:      notifier,
	}
}

// ── Payloads por operación ────────────────────────────────────────────────────
// Una struct por variante: cada una lleva solo los campos relevantes a su
// operación (un Add no tiene ubicación origen, un Transfer lleva ambas).

// AddInput entrada para AddStock.
type AddInput struct {
	ComponentID string
	LocationID  string
	Quantity    int64
	Notes       string
	UserID      string
}

// RemoveInput entrada para RemoveStock.
type RemoveInput struct {
	ComponentID string
	LocationID  string
	Quantity    int64
	Notes       string
	UserID      string
}

// ConsumeInput entrada para Consume (uso en producción).
type ConsumeInput struct {
	ComponentID string
	LocationID  string
	Quantity    int64
	Notes       string
	UserID      string
}

// TransferInput entrada para Transfer.
type TransferInput struct {
	ComponentID    string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	Notes          string
	UserID         string
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// AddStock incrementa el stock del componente en la ubicación (creando la fila
// si no existe) y registra una transacción "add".
// Precondición: Quantity > 0.
func (e *Engine) AddStock(ctx context.Context, in AddInput) (*entity.InventoryTransaction, error) {
	component, err := e.validate(in.ComponentID, in.Quantity, in.LocationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := newTransaction(entity.TransactionTypeAdd, in.ComponentID, "", in.LocationID, in.Quantity, in.Notes, in.UserID, now)

	err = e.txRunner.Run(ctx, func(itemRepo repository.InventoryItemRepository, txRepo repository.TransactionRepository) error {
		item, err := itemRepo.GetForUpdate(in.ComponentID, in.LocationID)
		if err != nil {
			return err
		}
		applyDefaults(item, component)
		item.Quantity += in.Quantity
		item.UpdatedAt = now
		if err := itemRepo.Upsert(item); err != nil {
			return err
		}
		return txRepo.Create(record)
	})
	if err != nil {
		return nil, err
	}
	e.notifier.StockChanged(StockEvent{TransactionID: record.ID, Type: record.Type})
	return record, nil
}

// RemoveStock decrementa el stock del componente en la ubicación y registra una
// transacción "remove".
// Precondiciones: Quantity > 0; Quantity <= stock actual (si no,
// ErrInsufficientQuantity sin efecto alguno).
func (e *Engine) RemoveStock(ctx context.Context, in RemoveInput) (*entity.InventoryTransaction, error) {
	return e.withdraw(ctx, entity.TransactionTypeRemove, in.ComponentID, in.LocationID, in.Quantity, in.Notes, in.UserID)
}

// Consume decrementa el stock por uso en producción. Mecánica idéntica a
// RemoveStock pero el registro queda tipado "consume": los reportes separan
// lo consumido en línea de lo retirado genérico, y los dos tipos no se fusionan.
func (e *Engine) Consume(ctx context.Context, in ConsumeInput) (*entity.InventoryTransaction, error) {
	return e.withdraw(ctx, entity.TransactionTypeConsume, in.ComponentID, in.LocationID, in.Quantity, in.Notes, in.UserID)
}

// withdraw implementa la salida de stock compartida por RemoveStock y Consume.
// La verificación de stock ocurre dentro de la misma transacción que la
// escritura, sobre la fila ya bloqueada: el check y la mutación no compiten.
func (e *Engine) withdraw(ctx context.Context, txType, componentID, locationID string, quantity int64, notes, userID string) (*entity.InventoryTransaction, error) {
	if _, err := e.validate(componentID, quantity, locationID); err != nil {
		return nil, err
	}

	now := time.Now()
	record := newTransaction(txType, componentID, locationID, "", quantity, notes, userID, now)

	err := e.txRunner.Run(ctx, func(itemRepo repository.InventoryItemRepository, txRepo repository.TransactionRepository) error {
		item, err := itemRepo.GetForUpdate(componentID, locationID)
		if err != nil {
			return err
		}
		if item.Quantity < quantity {
			return domain.ErrInsufficientQuantity
		}
		item.Quantity -= quantity
		item.UpdatedAt = now
		if err := itemRepo.Upsert(item); err != nil {
			return err
		}
		return txRepo.Create(record)
	})
	if err != nil {
		return nil, err
	}
	e.notifier.StockChanged(StockEvent{TransactionID: record.ID, Type: record.Type})
	return record, nil
}

// Transfer mueve Quantity del componente de la ubicación origen a la destino
// en un solo paso atómico (conservación de la cantidad total del componente)
// y registra UNA transacción "transfer" con ambas ubicaciones.
// Precondiciones: Quantity > 0; origen != destino; Quantity <= stock en origen
// (si no, ErrInsufficientQuantity: origen y destino quedan intactos).
func (e *Engine) Transfer(ctx context.Context, in TransferInput) (*entity.InventoryTransaction, error) {
	if in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidInput
	}
	component, err := e.validate(in.ComponentID, in.Quantity, in.FromLocationID, in.ToLocationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := newTransaction(entity.TransactionTypeTransfer, in.ComponentID, in.FromLocationID, in.ToLocationID, in.Quantity, in.Notes, in.UserID, now)

	err = e.txRunner.Run(ctx, func(itemRepo repository.InventoryItemRepository, txRepo repository.TransactionRepository) error {
		// Bloquear ambas filas en orden ascendente de llave: dos transfers
		// cruzados sobre el mismo par no pueden interbloquearse.
		firstLoc, secondLoc := in.FromLocationID, in.ToLocationID
		if secondLoc < firstLoc {
			firstLoc, secondLoc = secondLoc, firstLoc
		}
		first, err := itemRepo.GetForUpdate(in.ComponentID, firstLoc)
		if err != nil {
			return err
		}
		second, err := itemRepo.GetForUpdate(in.ComponentID, secondLoc)
		if err != nil {
			return err
		}

		origin, dest := first, second
		if first.LocationID != in.FromLocationID {
			origin, dest = second, first
		}
		if origin.Quantity < in.Quantity {
			return domain.ErrInsufficientQuantity
		}

		applyDefaults(dest, component)
		origin.Quantity -= in.Quantity
		dest.Quantity += in.Quantity
		origin.UpdatedAt = now
		dest.UpdatedAt = now

		if err := itemRepo.Upsert(origin); err != nil {
			return err
		}
		if err := itemRepo.Upsert(dest); err != nil {
			return err
		}
		return txRepo.Create(record)
	})
	if err != nil {
		return nil, err
	}
	e.notifier.StockChanged(StockEvent{TransactionID: record.ID, Type: record.Type})
	return record, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// validate verifica las precondiciones comunes antes de tocar estado alguno:
// cantidad positiva, componente existente y activo, ubicaciones existentes.
func (e *Engine) validate(componentID string, quantity int64, locationIDs ...string) (*entity.Component, error) {
	if componentID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	component, err := e.componentRepo.GetByID(componentID)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	if !component.Active {
		return nil, domain.ErrInvalidInput
	}
	for _, locID := range locationIDs {
		if locID == "" {
			return nil, domain.ErrInvalidInput
		}
		loc, err := e.locationRepo.GetByID(locID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}
	return component, nil
}

// applyDefaults inicializa una fila creada perezosamente: hereda el mínimo
// configurado del componente. Una fila existente (UpdatedAt no cero) no se toca.
func applyDefaults(item *entity.InventoryItem, component *entity.Component) {
	if item.UpdatedAt.IsZero() {
		item.MinStockLevel = component.MinStockLevel
	}
}

func newTransaction(txType, componentID, fromLocationID, toLocationID string, quantity int64, notes, userID string, now time.Time) *entity.InventoryTransaction {
	return &entity.InventoryTransaction{
		ID:             uuid.New().String(),
		ComponentID:    componentID,
		FromLocationID: fromLocationID,
		ToLocationID:   toLocationID,
		Quantity:       quantity,
		Type:           txType,
		Notes:          notes,
		CreatedAt:      now,
		CreatedBy:      userID,
	}
}
