package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/EngSivaldo/stock-master-uninter/internal/application/dto"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/repository"
)

// ProductUseCase casos de uso de catálogo para productos. La cantidad nunca se
// toca aquí: nace en 0 y solo la muta el ledger vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, supplierRepo repository.SupplierRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, supplierRepo: supplierRepo, categoryRepo: categoryRepo}
}

// Create crea un producto nuevo con cantidad 0. SKU único e inmutable.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinLevel < 0 || in.Cost.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		SKU:        in.SKU,
		Name:       in.Name,
		Quantity:   0,
		MinLevel:   in.MinLevel,
		Cost:       in.Cost,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		SupplierID: in.SupplierID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza datos de catálogo. No permite modificar SKU ni Quantity.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.MinLevel < 0 || in.Cost.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	product.Name = in.Name
	product.MinLevel = in.MinLevel
	product.Cost = in.Cost
	product.Price = in.Price
	product.CategoryID = in.CategoryID
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate soft-delete: saca el producto de listados y de nuevas líneas de
// orden, pero conserva su historial y su saldo para el ledger.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.SetActive(id, false)
}

// Activate reincorpora un producto desactivado al catálogo.
func (uc *ProductUseCase) Activate(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.SetActive(id, true)
}

// List lista productos. Por defecto solo activos; includeInactive los trae todos.
func (uc *ProductUseCase) List(includeInactive bool, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.List(includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// ListLowStock productos con saldo en o bajo su umbral de reposición.
func (uc *ProductUseCase) ListLowStock() ([]*dto.ProductResponse, error) {
	products, err := uc.repo.ListBelowMinLevel()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// EnsureBySKU upsert idempotente por clave natural: busca por SKU y crea solo
// si no existe. Lo usa el seeding; reemplaza los first-or-create ad hoc.
func (uc *ProductUseCase) EnsureBySKU(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return toProductResponse(existing), nil
	}
	return uc.Create(in)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		Quantity:   p.Quantity,
		MinLevel:   p.MinLevel,
		Cost:       p.Cost,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		SupplierID: p.SupplierID,
		Active:     p.Active,
		LowStock:   p.Quantity <= p.MinLevel,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
