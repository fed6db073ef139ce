package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de compra.
const (
	OrderStatusPending   = "pending"   // creada, acepta líneas
	OrderStatusCompleted = "completed" // conferida y cargada al stock; terminal
)

// PurchaseOrder cabecera de una recepción: la nota fiscal de un proveedor.
// (SupplierID, InvoiceNumber) es único mientras la orden exista.
// Una vez completed la orden es inmutable y no puede eliminarse.
type PurchaseOrder struct {
	ID            string
	SupplierID    string
	InvoiceNumber string
	Status        string // pending | completed
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []*PurchaseOrderLine
}

// IsPending indica si la orden aún acepta líneas, reconciliación y borrado.
func (o *PurchaseOrder) IsPending() bool {
	return o.Status == OrderStatusPending
}

// PurchaseOrderLine una línea de la orden: producto esperado vs recibido.
// QuantityExpected lo digita quien crea la orden (según la nota fiscal);
// QuantityReceived lo cuenta el segundo actor durante la conferencia.
// Si el mismo producto se agrega dos veces, la cantidad esperada se acumula.
type PurchaseOrderLine struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	QuantityExpected int
	QuantityReceived int             // default 0; solo se escribe en la reconciliación
	UnitCost         decimal.Decimal // costo unitario de esta nota (puede diferir del catálogo)
}
