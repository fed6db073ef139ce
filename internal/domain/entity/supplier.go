package entity

import "time"

// Supplier representa un proveedor del que se reciben órdenes de compra.
type Supplier struct {
	ID          string
	Name        string
	CNPJ        string // identificador fiscal, único
	ContactName string
	Email       string
	Phone       string
	Address     string
	City        string
	State       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
