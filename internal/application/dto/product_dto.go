package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// No acepta cantidad inicial: el stock entra únicamente vía ledger
// (movimiento IN) o vía recepción de órdenes, para que el saldo siempre
// cuadre con el historial de movimientos.
type CreateProductRequest struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	MinLevel   int             `json:"min_level"`
	Cost       decimal.Decimal `json:"cost"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *string         `json:"category_id,omitempty"`
	SupplierID string          `json:"supplier_id"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// Sin SKU (inmutable) y sin cantidad (solo el ledger la muta).
type UpdateProductRequest struct {
	Name       string          `json:"name"`
	MinLevel   int             `json:"min_level"`
	Cost       decimal.Decimal `json:"cost"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *string         `json:"category_id,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	MinLevel   int             `json:"min_level"`
	Cost       decimal.Decimal `json:"cost"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *string         `json:"category_id,omitempty"`
	SupplierID string          `json:"supplier_id"`
	Active     bool            `json:"active"`
	LowStock   bool            `json:"low_stock"` // quantity <= min_level
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
