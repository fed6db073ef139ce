package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EngSivaldo/stock-master-uninter/internal/domain"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/repository"
)

// UseCase es el único camino por el que cambia Product.Quantity. Aplica
// movimientos IN/OUT de forma transaccional con bloqueo de fila
// (SELECT FOR UPDATE) sobre el producto, garantiza saldo no negativo y deja
// un registro inmutable por cada cambio.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, movementRepo: movementRepo}
}

// ApplyMovementInput entrada para aplicar un movimiento al ledger.
// El actor viene del token, nunca del body; la fecha la asigna el ledger.
type ApplyMovementInput struct {
	ProductID string
	Type      string // entity.MovementTypeIN | entity.MovementTypeOUT
	Quantity  int    // > 0
	ActorID   string
}

// ApplyMovement inicia una transacción, bloquea la fila del producto, valida
// el saldo (para OUT) y aplica el cambio junto con su movimiento de auditoría.
// Commit si todo ok, Rollback si algo falla: nunca queda saldo sin movimiento
// ni movimiento sin saldo.
//
// Funciona también sobre productos inactivos: el historial sigue siendo válido
// aunque el producto haya salido del catálogo.
func (uc *UseCase) ApplyMovement(ctx context.Context, input ApplyMovementInput) (*entity.Movement, error) {
	if input.Quantity <= 0 || input.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != entity.MovementTypeIN && input.Type != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := uc.ApplyInTx(movRepo, productRepo, input.ProductID, input.Type, input.Quantity, input.ActorID, time.Now())
		if err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ApplyInTx aplica un movimiento usando los repositorios proporcionados (misma
// transacción del caller). Lo usa la reconciliación de órdenes para emitir los
// movimientos de cada línea dentro de SU transacción, de modo que la orden
// completa se confirme o se revierta como un todo.
func (uc *UseCase) ApplyInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID, movType string,
	quantity int,
	actorID string,
	now time.Time,
) (*entity.Movement, error) {
	// Bloquea la fila del producto: dos OUT concurrentes no pueden validar
	// saldo contra una lectura obsoleta.
	product, err := productRepo.GetByIDForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	newQty := product.Quantity
	switch movType {
	case entity.MovementTypeIN:
		newQty += quantity
	case entity.MovementTypeOUT:
		if quantity > product.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		newQty -= quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := productRepo.UpdateQuantity(productID, newQty); err != nil {
		return nil, err
	}
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      movType,
		Quantity:  quantity,
		Date:      now,
		UserID:    actorID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// MovementsFor lista los movimientos de un producto del más nuevo al más viejo.
// since es opcional (nil = historial completo). Solo lectura, sin transacción.
func (uc *UseCase) MovementsFor(ctx context.Context, productID string, since *time.Time, limit, offset int) ([]*entity.Movement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.movementRepo.ListByProduct(productID, since, limit, offset)
}

// Report lista todos los movimientos del sistema, del más nuevo al más viejo.
func (uc *UseCase) Report(ctx context.Context, limit, offset int) ([]*entity.Movement, error) {
	return uc.movementRepo.ListAll(limit, offset)
}
