package receiving

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EngSivaldo/stock-master-uninter/internal/domain"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/repository"
)

// UseCase implementa el flujo de recepción: una máquina de estados
// pending → completed por orden de compra. Un actor crea la orden con las
// cantidades esperadas de la nota fiscal; un segundo actor cuenta lo que llegó
// y la reconciliación carga el delta al ledger exactamente una vez por orden.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.PurchaseOrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	ledger       Ledger
}

// NewUseCase construye el caso de uso de recepción.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	ledger Ledger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		ledger:       ledger,
	}
}

// CreateOrder crea una orden pending sin líneas para (proveedor, factura).
// Devuelve domain.ErrDuplicateInvoice si el par ya existe en cualquier orden
// viva del proveedor, pending o completed.
func (uc *UseCase) CreateOrder(ctx context.Context, supplierID, invoiceNumber, creatorID string) (*entity.PurchaseOrder, error) {
	if supplierID == "" || invoiceNumber == "" || creatorID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.orderRepo.GetBySupplierAndInvoice(supplierID, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateInvoice
	}
	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:            uuid.New().String(),
		SupplierID:    supplierID,
		InvoiceNumber: invoiceNumber,
		Status:        entity.OrderStatusPending,
		CreatedBy:     creatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// El constraint único (supplier_id, invoice_number) cubre la carrera entre
	// el pre-chequeo y el insert; el repo lo traduce a ErrDuplicateInvoice.
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// AddLine agrega un producto esperado a una orden pending. Si el producto ya
// tiene línea, la cantidad esperada se acumula (merge, no reemplazo).
// Productos inactivos se rechazan aquí, en el borde del flujo: el ledger los
// sigue aceptando para movimientos directos, pero no entran en órdenes nuevas.
func (uc *UseCase) AddLine(ctx context.Context, orderID, productID string, expectedQty int, unitCost *decimal.Decimal) (*entity.PurchaseOrderLine, error) {
	if expectedQty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !order.IsPending() {
		return nil, domain.ErrInvalidState
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if !product.Active {
		return nil, domain.ErrProductInactive
	}
	cost := decimal.Zero
	if unitCost != nil {
		if unitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		cost = *unitCost
	}
	line := &entity.PurchaseOrderLine{
		ID:               uuid.New().String(),
		PurchaseOrderID:  orderID,
		ProductID:        productID,
		QuantityExpected: expectedQty,
		QuantityReceived: 0,
		UnitCost:         cost,
	}
	return uc.orderRepo.UpsertLine(line)
}

// Reconcile registra lo contado en el camión y completa la orden.
//
// Para TODAS las líneas de la orden (las que no aparecen en receivedByLine se
// tratan como 0): fija QuantityReceived y, si es > 0, emite un movimiento IN
// vía ledger dentro de la misma transacción. Líneas en cero no generan
// movimiento. Al final el estado pasa a completed, transición irreversible:
// un segundo intento devuelve ErrInvalidState sin tocar stock ni historial.
//
// La cantidad recibida NO se valida contra la esperada: el conteo físico manda
// sobre el papel; la divergencia queda registrada tal cual.
func (uc *UseCase) Reconcile(ctx context.Context, orderID string, receivedByLine map[string]int, actorID string) (*entity.PurchaseOrder, error) {
	if actorID == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, qty := range receivedByLine {
		if qty < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var result *entity.PurchaseOrder
	err := uc.txRunner.RunReceiving(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la cabecera: el chequeo de estado y la transición a
		// completed ocurren bajo el mismo lock, así un doble submit pierde.
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !order.IsPending() {
			return domain.ErrInvalidState
		}
		lines, err := orderRepo.ListLines(orderID)
		if err != nil {
			return err
		}
		lineByID := make(map[string]*entity.PurchaseOrderLine, len(lines))
		for _, l := range lines {
			lineByID[l.ID] = l
		}
		// Claves que no corresponden a líneas de esta orden: entrada corrupta.
		for lineID := range receivedByLine {
			if _, ok := lineByID[lineID]; !ok {
				return domain.ErrInvalidInput
			}
		}

		now := time.Now()
		for _, line := range lines {
			received := receivedByLine[line.ID] // ausente = 0
			if err := orderRepo.UpdateLineReceived(line.ID, received); err != nil {
				return err
			}
			line.QuantityReceived = received
			if received > 0 {
				if _, err := uc.ledger.ApplyInTx(movRepo, productRepo, line.ProductID, entity.MovementTypeIN, received, actorID, now); err != nil {
					return err
				}
			}
		}
		if err := orderRepo.UpdateStatus(orderID, entity.OrderStatusCompleted); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCompleted
		order.UpdatedAt = now
		order.Lines = lines
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteOrder elimina una orden pending con sus líneas (cascada). Las órdenes
// completed son inmutables y relevantes para auditoría: nunca se borran.
func (uc *UseCase) DeleteOrder(ctx context.Context, orderID string) error {
	return uc.txRunner.RunReceiving(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.MovementRepository,
		_ repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !order.IsPending() {
			return domain.ErrInvalidState
		}
		return orderRepo.Delete(orderID)
	})
}

// DiscardIfEmpty borra la orden solo si está pending y sin líneas; en
// cualquier otro caso la deja intacta. Es una salida de conveniencia para
// órdenes creadas por error, no una restricción dura. Devuelve true si borró.
func (uc *UseCase) DiscardIfEmpty(ctx context.Context, orderID string) (bool, error) {
	discarded := false
	err := uc.txRunner.RunReceiving(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.MovementRepository,
		_ repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !order.IsPending() {
			return nil
		}
		count, err := orderRepo.CountLines(orderID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := orderRepo.Delete(orderID); err != nil {
			return err
		}
		discarded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return discarded, nil
}

// GetOrder devuelve la cabecera con sus líneas.
func (uc *UseCase) GetOrder(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	lines, err := uc.orderRepo.ListLines(orderID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

// ListOrders lista órdenes, opcionalmente filtradas por estado.
func (uc *UseCase) ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if status != "" && status != entity.OrderStatusPending && status != entity.OrderStatusCompleted {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.List(status, limit, offset)
}
