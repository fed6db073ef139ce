package repository

import "github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra
// y sus líneas. Las líneas pertenecen exclusivamente a su orden: se borran con ella.
type PurchaseOrderRepository interface {
	// Create persiste la cabecera. Devuelve domain.ErrDuplicateInvoice si ya existe
	// una orden (pending o completed) con el mismo (supplier_id, invoice_number).
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE) para que un doble
	// submit de reconciliación pierda limpiamente contra el primero.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	GetBySupplierAndInvoice(supplierID, invoiceNumber string) (*entity.PurchaseOrder, error)
	UpdateStatus(orderID, status string) error
	// Delete elimina líneas y cabecera. Llamar dentro de una transacción.
	Delete(orderID string) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)

	// UpsertLine inserta la línea o, si el producto ya tiene línea en la orden,
	// acumula la cantidad esperada (merge, no reemplazo).
	UpsertLine(line *entity.PurchaseOrderLine) (*entity.PurchaseOrderLine, error)
	GetLine(lineID string) (*entity.PurchaseOrderLine, error)
	ListLines(orderID string) ([]*entity.PurchaseOrderLine, error)
	UpdateLineReceived(lineID string, received int) error
	CountLines(orderID string) (int, error)
}
