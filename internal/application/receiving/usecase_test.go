package receiving_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EngSivaldo/stock-master-uninter/internal/application/ledger"
	"github.com/EngSivaldo/stock-master-uninter/internal/application/receiving"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) UpdateQuantity(productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[productID]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *fakeProductRepo) SetActive(id string, active bool) error { return nil }

func (r *fakeProductRepo) List(includeInactive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListBelowMinLevel() ([]*entity.Product, error) { return nil, nil }

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.Seq = int64(len(r.movements) + 1)
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, since *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListAll(limit, offset int) ([]*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Movement, len(r.movements))
	copy(out, r.movements)
	return out, nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { return nil }

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSupplierRepo) GetByCNPJ(cnpj string) (*entity.Supplier, error) { return nil, nil }

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { return nil }

func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }

func (r *fakeSupplierRepo) Delete(id string) error { return nil }

// fakeOrderRepo guarda cabeceras y líneas con semántica de merge en UpsertLine.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.PurchaseOrder
	lines  map[string]*entity.PurchaseOrderLine
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[string]*entity.PurchaseOrder),
		lines:  make(map[string]*entity.PurchaseOrderLine),
	}
}

func (r *fakeOrderRepo) Create(order *entity.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.SupplierID == order.SupplierID && o.InvoiceNumber == order.InvoiceNumber {
			return domain.ErrDuplicateInvoice
		}
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) GetBySupplierAndInvoice(supplierID, invoiceNumber string) (*entity.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.SupplierID == supplierID && o.InvoiceNumber == invoiceNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) UpdateStatus(orderID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[orderID]; ok {
		o.Status = status
		o.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeOrderRepo) Delete(orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, orderID)
	for id, l := range r.lines {
		if l.PurchaseOrderID == orderID {
			delete(r.lines, id)
		}
	}
	return nil
}

func (r *fakeOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) UpsertLine(line *entity.PurchaseOrderLine) (*entity.PurchaseOrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if l.PurchaseOrderID == line.PurchaseOrderID && l.ProductID == line.ProductID {
			l.QuantityExpected += line.QuantityExpected
			if line.UnitCost.IsPositive() {
				l.UnitCost = line.UnitCost
			}
			cp := *l
			return &cp, nil
		}
	}
	cp := *line
	r.lines[line.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeOrderRepo) GetLine(lineID string) (*entity.PurchaseOrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[lineID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeOrderRepo) ListLines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.PurchaseOrderLine
	for _, l := range r.lines {
		if l.PurchaseOrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) UpdateLineReceived(lineID string, received int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.lines[lineID]; ok {
		l.QuantityReceived = received
	}
	return nil
}

func (r *fakeOrderRepo) CountLines(orderID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.lines {
		if l.PurchaseOrderID == orderID {
			n++
		}
	}
	return n, nil
}

// fakeTxRunner serializa las transacciones con un mutex, como lo haría el lock
// de fila sobre la cabecera de la orden.
type fakeTxRunner struct {
	mu          sync.Mutex
	orderRepo   *fakeOrderRepo
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
}

func (t *fakeTxRunner) RunReceiving(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.orderRepo, t.movRepo, t.productRepo)
}

type fixture struct {
	uc          *receiving.UseCase
	orderRepo   *fakeOrderRepo
	productRepo *fakeProductRepo
	movRepo     *fakeMovementRepo
}

func newFixture(products ...*entity.Product) *fixture {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo(products...)
	movRepo := &fakeMovementRepo{}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "TechParts", CNPJ: "12.345.678/0001-90"},
		"sup-2": {ID: "sup-2", Name: "Conecta", CNPJ: "98.765.432/0001-10"},
	}}
	tx := &fakeTxRunner{orderRepo: orderRepo, movRepo: movRepo, productRepo: productRepo}
	// Reconcile solo invoca ApplyInTx, que opera sobre los repos del caller;
	// el resto de dependencias del ledger no se tocan en este camino.
	ledgerUC := ledger.NewUseCase(nil, nil, nil)
	return &fixture{
		uc:          receiving.NewUseCase(tx, orderRepo, productRepo, supplierRepo, ledgerUC),
		orderRepo:   orderRepo,
		productRepo: productRepo,
		movRepo:     movRepo,
	}
}

func testProduct(id string, qty int) *entity.Product {
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id, Quantity: qty, Active: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_NacePendingSinLineas(t *testing.T) {
	f := newFixture()

	order, err := f.uc.CreateOrder(context.Background(), "sup-1", "NF-001", "u1")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "sup-1", order.SupplierID)
	assert.Equal(t, "NF-001", order.InvoiceNumber)
	assert.Equal(t, "u1", order.CreatedBy)
	assert.Empty(t, order.Lines)
}

func TestCreateOrder_FacturaDuplicadaMismoProveedor_Retorna409(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)

	_, err = f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u2")
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoice)
}

// La unicidad es por (proveedor, factura): otro proveedor puede repetir número.
func TestCreateOrder_MismaFacturaOtroProveedor_SePermite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)

	_, err = f.uc.CreateOrder(ctx, "sup-2", "NF-001", "u1")
	assert.NoError(t, err)
}

// La factura sigue ocupada aunque la orden ya esté completed.
func TestCreateOrder_FacturaDeOrdenCompletada_SigueOcupada(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	_, err = f.uc.Reconcile(ctx, order.ID, nil, "u2")
	require.NoError(t, err)

	_, err = f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoice)
}

func TestCreateOrder_ProveedorInexistente_Retorna404(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateOrder(context.Background(), "no-existe", "NF-001", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_CamposVacios_Retorna400(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateOrder(ctx, "", "NF-001", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.CreateOrder(ctx, "sup-1", "", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.CreateOrder(ctx, "sup-1", "NF-001", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddLine
// ──────────────────────────────────────────────────────────────────────────────

func TestAddLine_AgregaProductoEsperado(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)

	cost := decimal.RequireFromString("12.50")
	line, err := f.uc.AddLine(ctx, order.ID, "p1", 10, &cost)
	require.NoError(t, err)

	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, 10, line.QuantityExpected)
	assert.Equal(t, 0, line.QuantityReceived)
	assert.True(t, cost.Equal(line.UnitCost))
}

// Mismo producto dos veces: una sola línea con la cantidad acumulada.
func TestAddLine_MismoProducto_AcumulaEnUnaLinea(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)

	first, err := f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	require.NoError(t, err)
	second, err := f.uc.AddLine(ctx, order.ID, "p1", 5, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "debe ser la misma línea")
	assert.Equal(t, 15, second.QuantityExpected)

	lines, err := f.orderRepo.ListLines(order.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestAddLine_OrdenCompletada_Retorna409(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	_, err = f.uc.Reconcile(ctx, order.ID, nil, "u2")
	require.NoError(t, err)

	_, err = f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestAddLine_ProductoInactivo_Retorna409(t *testing.T) {
	p := testProduct("p1", 0)
	p.Active = false
	f := newFixture(p)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)

	_, err = f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	assert.ErrorIs(t, err, domain.ErrProductInactive)
}

func TestAddLine_Validaciones(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)

	_, err = f.uc.AddLine(ctx, order.ID, "p1", 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	negative := decimal.RequireFromString("-1")
	_, err = f.uc.AddLine(ctx, order.ID, "p1", 5, &negative)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")

	_, err = f.uc.AddLine(ctx, order.ID, "no-existe", 5, nil)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.uc.AddLine(ctx, "no-existe", "p1", 5, nil)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconcile
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_CargaStockYCompleta(t *testing.T) {
	f := newFixture(testProduct("p1", 3), testProduct("p2", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	l1, err := f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	require.NoError(t, err)
	l2, err := f.uc.AddLine(ctx, order.ID, "p2", 4, nil)
	require.NoError(t, err)

	// Lo contado difiere de lo esperado: manda el conteo físico.
	got, err := f.uc.Reconcile(ctx, order.ID, map[string]int{l1.ID: 8, l2.ID: 4}, "u2")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
	require.Len(t, got.Lines, 2)
	receivedByLine := map[string]int{}
	for _, l := range got.Lines {
		receivedByLine[l.ID] = l.QuantityReceived
	}
	assert.Equal(t, 8, receivedByLine[l1.ID])
	assert.Equal(t, 4, receivedByLine[l2.ID])

	p1, _ := f.productRepo.GetByID("p1")
	p2, _ := f.productRepo.GetByID("p2")
	assert.Equal(t, 11, p1.Quantity, "3 existentes + 8 recibidos")
	assert.Equal(t, 4, p2.Quantity)

	movs, _ := f.movRepo.ListAll(100, 0)
	require.Len(t, movs, 2, "un IN por línea con cantidad > 0")
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeIN, m.Type)
		assert.Equal(t, "u2", m.UserID, "el movimiento se atribuye a quien contó")
	}
}

// Línea ausente del mapa = 0 recibido: queda registrada pero sin movimiento.
func TestReconcile_LineaAusente_RecibeCeroSinMovimiento(t *testing.T) {
	f := newFixture(testProduct("p1", 0), testProduct("p2", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	l1, err := f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	require.NoError(t, err)
	_, err = f.uc.AddLine(ctx, order.ID, "p2", 4, nil)
	require.NoError(t, err)

	got, err := f.uc.Reconcile(ctx, order.ID, map[string]int{l1.ID: 10}, "u2")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)

	p2, _ := f.productRepo.GetByID("p2")
	assert.Equal(t, 0, p2.Quantity)
	movs, _ := f.movRepo.ListAll(100, 0)
	assert.Len(t, movs, 1, "la línea en cero no genera movimiento")
}

// Recibir más de lo esperado también se acepta sin protestar.
func TestReconcile_RecibidoMayorAlEsperado_SeAcepta(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	l1, err := f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	require.NoError(t, err)

	got, err := f.uc.Reconcile(ctx, order.ID, map[string]int{l1.ID: 13}, "u2")
	require.NoError(t, err)
	assert.Equal(t, 13, got.Lines[0].QuantityReceived)

	p1, _ := f.productRepo.GetByID("p1")
	assert.Equal(t, 13, p1.Quantity)
}

// La transición pending → completed es de una sola vía: el segundo intento
// falla sin tocar stock ni historial.
func TestReconcile_SegundoIntento_Retorna409SinEfectos(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	l1, err := f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	require.NoError(t, err)

	_, err = f.uc.Reconcile(ctx, order.ID, map[string]int{l1.ID: 10}, "u2")
	require.NoError(t, err)

	_, err = f.uc.Reconcile(ctx, order.ID, map[string]int{l1.ID: 10}, "u2")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	p1, _ := f.productRepo.GetByID("p1")
	assert.Equal(t, 10, p1.Quantity, "el stock no debe duplicarse")
	movs, _ := f.movRepo.ListAll(100, 0)
	assert.Len(t, movs, 1, "el historial no debe crecer")
}

// Orden sin líneas: completar es válido y no genera ningún movimiento.
func TestReconcile_OrdenSinLineas_CompletaSinMovimientos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)

	got, err := f.uc.Reconcile(ctx, order.ID, nil, "u2")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)

	movs, _ := f.movRepo.ListAll(100, 0)
	assert.Empty(t, movs)
}

func TestReconcile_ClaveDeLineaAjena_Retorna400(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	_, err = f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	require.NoError(t, err)

	_, err = f.uc.Reconcile(ctx, order.ID, map[string]int{"linea-ajena": 5}, "u2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status, "la orden sigue pendiente")
}

func TestReconcile_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Reconcile(ctx, "o1", map[string]int{"l1": -1}, "u2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = f.uc.Reconcile(ctx, "o1", nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin actor")

	_, err = f.uc.Reconcile(ctx, "no-existe", nil, "u2")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteOrder / DiscardIfEmpty
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteOrder_PendingSeBorraConLineas(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	_, err = f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteOrder(ctx, order.ID))

	_, err = f.uc.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	count, _ := f.orderRepo.CountLines(order.ID)
	assert.Zero(t, count, "las líneas se van con la orden")
}

func TestDeleteOrder_Completada_Retorna409(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	_, err = f.uc.Reconcile(ctx, order.ID, nil, "u2")
	require.NoError(t, err)

	err = f.uc.DeleteOrder(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDiscardIfEmpty_SoloBorraPendingVacia(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	empty, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	withLines, err := f.uc.CreateOrder(ctx, "sup-1", "NF-002", "u1")
	require.NoError(t, err)
	_, err = f.uc.AddLine(ctx, withLines.ID, "p1", 3, nil)
	require.NoError(t, err)

	discarded, err := f.uc.DiscardIfEmpty(ctx, empty.ID)
	require.NoError(t, err)
	assert.True(t, discarded)

	discarded, err = f.uc.DiscardIfEmpty(ctx, withLines.ID)
	require.NoError(t, err)
	assert.False(t, discarded, "con líneas no se descarta")

	got, err := f.uc.GetOrder(ctx, withLines.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrder_IncluyeLineas(t *testing.T) {
	f := newFixture(testProduct("p1", 0))
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	_, err = f.uc.AddLine(ctx, order.ID, "p1", 10, nil)
	require.NoError(t, err)

	got, err := f.uc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 1)
}

func TestListOrders_FiltraPorEstado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.uc.CreateOrder(ctx, "sup-1", "NF-001", "u1")
	require.NoError(t, err)
	_, err = f.uc.CreateOrder(ctx, "sup-1", "NF-002", "u1")
	require.NoError(t, err)
	_, err = f.uc.Reconcile(ctx, first.ID, nil, "u2")
	require.NoError(t, err)

	pending, err := f.uc.ListOrders(ctx, entity.OrderStatusPending, 10, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	completed, err := f.uc.ListOrders(ctx, entity.OrderStatusCompleted, 10, 0)
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	all, err := f.uc.ListOrders(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.uc.ListOrders(ctx, "cancelled", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
