package ledger

import (
	"context"

	"github.com/EngSivaldo/stock-master-uninter/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger: la
// secuencia leer-saldo → validar → escribir-saldo → insertar-movimiento
// se confirma completa o se revierte completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
