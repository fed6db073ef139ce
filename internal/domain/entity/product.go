package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto (SKU) del inventario.
// Quantity es la única fuente de verdad del stock y SOLO la muta el ledger
// vía movimientos; nunca se edita desde formularios ni updates de catálogo.
// Active es soft-delete: los inactivos salen de listados y de nuevas líneas
// de orden, pero conservan historial y siguen siendo válidos para el ledger.
type Product struct {
	ID         string
	SKU        string // único, inmutable después de creado
	Name       string
	Quantity   int // saldo actual, siempre >= 0
	MinLevel   int // umbral de reposición
	Cost       decimal.Decimal
	Price      decimal.Decimal
	CategoryID *string
	SupplierID string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
