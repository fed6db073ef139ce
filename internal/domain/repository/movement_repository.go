package repository

import (
	"time"

	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el ledger de movimientos.
// Solo inserta y lee: los movimientos nunca se actualizan ni se borran.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListByProduct movimientos de un producto, del más nuevo al más viejo
	// (date DESC con desempate por orden de inserción). since es opcional.
	ListByProduct(productID string, since *time.Time, limit, offset int) ([]*entity.Movement, error)
	// ListAll historial completo, del más nuevo al más viejo (reporte).
	ListAll(limit, offset int) ([]*entity.Movement, error)
}
