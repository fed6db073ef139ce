package entity

import "time"

// Tipos de movimiento del ledger.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement representa un asiento del ledger de stock: un cambio firmado (IN/OUT)
// sobre el saldo de un producto. Es inmutable y append-only; nunca se actualiza
// ni se borra. La suma firmada de los movimientos de un producto debe ser
// siempre igual a Product.Quantity.
type Movement struct {
	ID        string
	Seq       int64 // orden de inserción, desempate estable en listados
	ProductID string
	Type      string // IN | OUT
	Quantity  int    // siempre positivo; el signo lo da Type
	Date      time.Time
	UserID    string // actor que ejecutó el movimiento
}

// Signed devuelve la cantidad con signo según el tipo (IN positivo, OUT negativo).
func (m *Movement) Signed() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
