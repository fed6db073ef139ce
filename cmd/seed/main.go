// seed puebla la base con datos de demostración: usuarios admin/operador,
// categorías, proveedores y productos con stock inicial.
//
// Es idempotente: corre sobre claves naturales (username, nombre, CNPJ, SKU)
// y solo inyecta stock inicial en productos que siguen en cero, vía
// movimientos IN del ledger para que el saldo cuadre con el historial.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/EngSivaldo/stock-master-uninter/internal/application/auth"
	"github.com/EngSivaldo/stock-master-uninter/internal/application/dto"
	"github.com/EngSivaldo/stock-master-uninter/internal/application/ledger"
	"github.com/EngSivaldo/stock-master-uninter/internal/application/usecase"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/repository"
	"github.com/EngSivaldo/stock-master-uninter/internal/infrastructure/postgres"
	"github.com/EngSivaldo/stock-master-uninter/pkg/config"
	"github.com/EngSivaldo/stock-master-uninter/pkg/logger"
)

type seedProduct struct {
	sku      string
	name     string
	category string
	supplier string
	minLevel int
	cost     string
	price    string
	stock    int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo, categoryRepo)
	ledgerUC := ledger.NewUseCase(txRunner, productRepo, movementRepo)

	// Usuarios
	adminID := ensureUser(log, authUC, userRepo, "admin", "admin123", entity.RoleAdmin)
	ensureUser(log, authUC, userRepo, "operador", "operador123", entity.RoleOperador)

	// Categorías
	categories := map[string]string{}
	for _, name := range []string{"Eletrônicos", "Periféricos", "Cabos", "Armazenamento"} {
		cat, err := categoryUC.EnsureByName(name)
		if err != nil {
			log.Fatal().Err(err).Str("category", name).Msg("seed categoría")
		}
		categories[name] = cat.ID
	}

	// Proveedores
	suppliers := map[string]string{}
	for _, s := range []dto.CreateSupplierRequest{
		{Name: "TechParts Distribuidora", CNPJ: "12.345.678/0001-90", Email: "vendas@techparts.com.br", City: "São Paulo", State: "SP"},
		{Name: "Conecta Suprimentos", CNPJ: "98.765.432/0001-10", Email: "contato@conecta.com.br", City: "Curitiba", State: "PR"},
	} {
		sup, err := supplierUC.EnsureByCNPJ(s)
		if err != nil {
			log.Fatal().Err(err).Str("supplier", s.Name).Msg("seed proveedor")
		}
		suppliers[s.Name] = sup.ID
	}

	// Productos con stock inicial
	products := []seedProduct{
		{"MON-24-LED", "Monitor LED 24\"", "Eletrônicos", "TechParts Distribuidora", 5, "450.00", "699.90", 12},
		{"TEC-MEC-RGB", "Teclado Mecânico RGB", "Periféricos", "TechParts Distribuidora", 10, "120.00", "249.90", 30},
		{"MOU-OPT-USB", "Mouse Óptico USB", "Periféricos", "Conecta Suprimentos", 15, "25.00", "59.90", 50},
		{"CAB-HDMI-2M", "Cabo HDMI 2m", "Cabos", "Conecta Suprimentos", 20, "12.00", "34.90", 80},
		{"SSD-480-SATA", "SSD 480GB SATA", "Armazenamento", "TechParts Distribuidora", 8, "180.00", "329.90", 0},
	}
	for _, p := range products {
		catID := categories[p.category]
		prod, err := productUC.EnsureBySKU(dto.CreateProductRequest{
			SKU:        p.sku,
			Name:       p.name,
			MinLevel:   p.minLevel,
			Cost:       decimal.RequireFromString(p.cost),
			Price:      decimal.RequireFromString(p.price),
			CategoryID: &catID,
			SupplierID: suppliers[p.supplier],
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("seed producto")
		}
		// Stock inicial solo si el producto sigue en cero
		if p.stock > 0 && prod.Quantity == 0 {
			if _, err := ledgerUC.ApplyMovement(ctx, ledger.ApplyMovementInput{
				ProductID: prod.ID,
				Type:      entity.MovementTypeIN,
				Quantity:  p.stock,
				ActorID:   adminID,
			}); err != nil {
				log.Fatal().Err(err).Str("sku", p.sku).Msg("seed stock inicial")
			}
		}
	}

	log.Info().Msg("seed completado")
}

// ensureUser registra el usuario si no existe y devuelve su ID.
func ensureUser(log *logger.Logger, authUC *auth.UseCase, userRepo repository.UserRepository, username, password, role string) string {
	out, err := authUC.Register(dto.RegisterRequest{Username: username, Password: password, Role: role})
	if err == nil {
		log.Info().Str("username", username).Str("role", role).Msg("usuario creado")
		return out.ID
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		log.Fatal().Err(err).Str("username", username).Msg("seed usuario")
	}
	existing, err := userRepo.FindByUsername(username)
	if err != nil || existing == nil {
		log.Fatal().Err(err).Str("username", username).Msg("buscar usuario existente")
	}
	return existing.ID
}
