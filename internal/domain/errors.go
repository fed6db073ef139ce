package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrProductNotFound = errors.New("producto no encontrado")
	ErrOrderNotFound   = errors.New("orden de compra no encontrada")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")

	// ErrInsufficientStock la salida solicitada supera el saldo actual del producto.
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrDuplicateInvoice ya existe una orden con ese número de factura para el proveedor.
	ErrDuplicateInvoice = errors.New("factura duplicada para el proveedor")
	// ErrInvalidState la operación no es válida en el estado actual de la orden
	// (ej. reconciliar o eliminar una orden ya completada).
	ErrInvalidState = errors.New("estado inválido para la operación")
	// ErrProductInactive el producto está desactivado; no admite nuevas líneas de orden.
	ErrProductInactive = errors.New("producto inactivo")
)
