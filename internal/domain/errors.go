package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidTransfer     = errors.New("origen y destino no pueden ser iguales")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrConflict            = errors.New("conflicto con el estado actual")
)
