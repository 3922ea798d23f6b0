package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrDataQuality     = errors.New("movimiento con datos inválidos")
	ErrConfiguration   = errors.New("configuración de política inválida")
	ErrInvalidCPF      = errors.New("CPF inválido")
	ErrInvalidPhone    = errors.New("teléfono inválido")
	ErrBelowMinPoints  = errors.New("puntos por debajo del mínimo para notificar")
	ErrMessagingFailed = errors.New("fallo en el proveedor de mensajería")
	ErrDeliveryUnknown = errors.New("entrega no confirmada por el proveedor")
)
