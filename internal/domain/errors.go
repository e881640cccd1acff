package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrProductNotFound       = errors.New("producto no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrUsernameAlreadyExists = errors.New("el usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidQuantity       = errors.New("cantidad inválida")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrBarcodeExhausted      = errors.New("no se pudo generar un código de barras único")
	ErrInvalidDateRange      = errors.New("rango de fechas inválido")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
)
