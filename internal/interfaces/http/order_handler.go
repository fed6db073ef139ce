package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EngSivaldo/stock-master-uninter/internal/application/dto"
	"github.com/EngSivaldo/stock-master-uninter/internal/application/receiving"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
)

// OrderHandler maneja órdenes de compra y su recepción (protegido).
type OrderHandler struct {
	uc *receiving.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *receiving.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra pendiente
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Proveedor y factura"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreateOrder(c.Context(), in.SupplierID, in.InvoiceNumber, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// AddLine godoc
// @Summary      Agregar línea a una orden pendiente (mismo producto acumula)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AddLineRequest  true  "Línea"
// @Success      201   {object}  dto.OrderLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/lines [post]
func (h *OrderHandler) AddLine(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, err := h.uc.AddLine(c.Context(), id, in.ProductID, in.QuantityExpected, in.UnitCost)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderLineResponse(line))
}

// Reconcile godoc
// @Summary      Reconciliar orden: registra lo contado, emite movimientos IN y completa
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReconcileRequest  true  "Cantidades contadas por línea"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reconcile [post]
func (h *OrderHandler) Reconcile(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Reconcile(c.Context(), id, in.Received, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// GetByID godoc
// @Summary      Obtener orden con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	order, err := h.uc.GetOrder(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes (filtro opcional por status)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | completed"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	orders, err := h.uc.ListOrders(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden pendiente (las completadas son inmutables)
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteOrder(c.Context(), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Discard godoc
// @Summary      Descartar la orden solo si sigue pendiente y sin líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/discard [post]
func (h *OrderHandler) Discard(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	discarded, err := h.uc.DiscardIfEmpty(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"discarded": discarded})
}

func toOrderLineResponse(l *entity.PurchaseOrderLine) dto.OrderLineResponse {
	return dto.OrderLineResponse{
		ID:               l.ID,
		ProductID:        l.ProductID,
		QuantityExpected: l.QuantityExpected,
		QuantityReceived: l.QuantityReceived,
		UnitCost:         l.UnitCost,
	}
}

func toOrderResponse(o *entity.PurchaseOrder) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:            o.ID,
		SupplierID:    o.SupplierID,
		InvoiceNumber: o.InvoiceNumber,
		Status:        o.Status,
		CreatedBy:     o.CreatedBy,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, toOrderLineResponse(l))
	}
	return out
}
