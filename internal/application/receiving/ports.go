package receiving

import (
	"context"
	"time"

	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita la recepción. La reconciliación actualiza líneas,
// emite movimientos y cambia el estado de la orden como una sola unidad:
// o entra todo, o no entra nada.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Ledger es el contrato mínimo que la recepción necesita del ledger: aplicar
// un movimiento dentro de la transacción del caller. Lo implementa
// *ledger.UseCase; el uso de interfaz evita acoplar los paquetes.
type Ledger interface {
	ApplyInTx(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		productID, movType string,
		quantity int,
		actorID string,
		now time.Time,
	) (*entity.Movement, error)
}
