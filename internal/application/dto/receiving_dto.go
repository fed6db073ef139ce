package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	SupplierID    string `json:"supplier_id"`
	InvoiceNumber string `json:"invoice_number"`
}

// AddLineRequest body para POST /api/orders/:id/lines.
type AddLineRequest struct {
	ProductID        string           `json:"product_id"`
	QuantityExpected int              `json:"quantity_expected"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
}

// ReconcileRequest body para POST /api/orders/:id/reconcile.
// Líneas ausentes del mapa se reciben como 0.
type ReconcileRequest struct {
	Received map[string]int `json:"received"` // line_id -> cantidad contada
}

// OrderLineResponse línea de orden en respuestas. Se devuelven esperado y
// recibido lado a lado; la divergencia se acepta en silencio y queda a la
// vista para quien quiera compararla.
type OrderLineResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityExpected int             `json:"quantity_expected"`
	QuantityReceived int             `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// OrderResponse orden de compra en respuestas.
type OrderResponse struct {
	ID            string              `json:"id"`
	SupplierID    string              `json:"supplier_id"`
	InvoiceNumber string              `json:"invoice_number"`
	Status        string              `json:"status"`
	CreatedBy     string              `json:"created_by"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Lines         []OrderLineResponse `json:"lines,omitempty"`
}
