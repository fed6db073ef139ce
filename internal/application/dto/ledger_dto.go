package dto

import "time"

// ApplyMovementRequest body para POST /api/inventory/movements.
// El actor sale del token JWT, nunca del body.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // IN | OUT
	Quantity  int    `json:"quantity"`
}

// MovementResponse un asiento del ledger en respuestas.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"user_id"`
}
