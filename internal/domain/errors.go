package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrVariantNotFound    = errors.New("variante no encontrada para ese talle y color")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDiscountOutOfRange = errors.New("descuento fuera del rango 0-100")
	ErrSaleNotFound       = errors.New("venta no encontrada")
)
