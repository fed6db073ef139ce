package repository

import "github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Quantity solo se escribe vía UpdateQuantity, dentro de la transacción del ledger.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar la verificación de saldo frente a escritores concurrentes.
	GetByIDForUpdate(id string) (*entity.Product, error)
	// Update actualiza datos de catálogo. No toca Quantity (se maneja vía ledger).
	Update(product *entity.Product) error
	UpdateQuantity(productID string, quantity int) error
	SetActive(id string, active bool) error
	List(includeInactive bool, limit, offset int) ([]*entity.Product, error)
	// ListBelowMinLevel productos con saldo en o bajo su umbral de reposición.
	ListBelowMinLevel() ([]*entity.Product, error)
}
