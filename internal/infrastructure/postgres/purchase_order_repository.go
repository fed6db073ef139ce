package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EngSivaldo/stock-master-uninter/internal/domain"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `id, supplier_id, invoice_number, status, created_by, created_at, updated_at`
const lineColumns = `id, purchase_order_id, product_id, quantity_expected, quantity_received, unit_cost`

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(&o.ID, &o.SupplierID, &o.InvoiceNumber, &o.Status, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanLine(row pgx.Row) (*entity.PurchaseOrderLine, error) {
	var l entity.PurchaseOrderLine
	err := row.Scan(&l.ID, &l.PurchaseOrderID, &l.ProductID, &l.QuantityExpected, &l.QuantityReceived, &l.UnitCost)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste la cabecera. El constraint único (supplier_id, invoice_number)
// se traduce a ErrDuplicateInvoice.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, invoice_number, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.InvoiceNumber, order.Status,
		order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return o, nil
}

// GetByIDForUpdate obtiene la cabecera y bloquea la fila (SELECT FOR UPDATE).
// El chequeo de estado y la transición a completed se hacen bajo este lock.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order for update: %w", err)
	}
	return o, nil
}

// GetBySupplierAndInvoice busca una orden por su clave de negocio.
func (r *PurchaseOrderRepo) GetBySupplierAndInvoice(supplierID, invoiceNumber string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE supplier_id = $1 AND invoice_number = $2`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, supplierID, invoiceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order by invoice: %w", err)
	}
	return o, nil
}

// UpdateStatus cambia el estado de la orden y refresca updated_at.
func (r *PurchaseOrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// Delete elimina líneas y cabecera. Llamar dentro de una transacción.
func (r *PurchaseOrderRepo) Delete(orderID string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_order_lines WHERE purchase_order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_orders WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}

// List lista órdenes, opcionalmente filtradas por estado, más recientes primero.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpsertLine inserta la línea o acumula la cantidad esperada si el producto ya
// tiene línea en la orden (merge). El unit_cost nuevo solo pisa al anterior
// cuando viene informado (> 0). Devuelve la línea resultante.
func (r *PurchaseOrderRepo) UpsertLine(line *entity.PurchaseOrderLine) (*entity.PurchaseOrderLine, error) {
	query := `
		INSERT INTO purchase_order_lines (id, purchase_order_id, product_id, quantity_expected, quantity_received, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (purchase_order_id, product_id)
		DO UPDATE SET
			quantity_expected = purchase_order_lines.quantity_expected + EXCLUDED.quantity_expected,
			unit_cost = CASE WHEN EXCLUDED.unit_cost > 0 THEN EXCLUDED.unit_cost ELSE purchase_order_lines.unit_cost END
		RETURNING ` + lineColumns
	l, err := scanLine(r.q.QueryRow(context.Background(), query,
		line.ID, line.PurchaseOrderID, line.ProductID,
		line.QuantityExpected, line.QuantityReceived, line.UnitCost,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert order line: %w", err)
	}
	return l, nil
}

// GetLine obtiene una línea por ID.
func (r *PurchaseOrderRepo) GetLine(lineID string) (*entity.PurchaseOrderLine, error) {
	query := `SELECT ` + lineColumns + ` FROM purchase_order_lines WHERE id = $1`
	l, err := scanLine(r.q.QueryRow(context.Background(), query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line: %w", err)
	}
	return l, nil
}

// ListLines líneas de una orden en orden de inserción estable.
func (r *PurchaseOrderRepo) ListLines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	query := `SELECT ` + lineColumns + ` FROM purchase_order_lines WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// UpdateLineReceived fija la cantidad recibida de una línea (reconciliación).
func (r *PurchaseOrderRepo) UpdateLineReceived(lineID string, received int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_lines SET quantity_received = $2 WHERE id = $1`,
		lineID, received,
	)
	if err != nil {
		return fmt.Errorf("update line received: %w", err)
	}
	return nil
}

// CountLines cantidad de líneas de una orden.
func (r *PurchaseOrderRepo) CountLines(orderID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM purchase_order_lines WHERE purchase_order_id = $1`, orderID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count order lines: %w", err)
	}
	return count, nil
}
