package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Facturación
	ErrNoActiveContracts = errors.New("no hay contratos activos")
	ErrAlreadyBilled     = errors.New("el faturamento ya fue emitido")
	ErrBillingNotPending = errors.New("el faturamento no está pendiente")
	ErrReceivableSettled = errors.New("el recebimento ya fue recibido")

	// Estoque / armamento
	ErrInsufficientStock      = errors.New("stock insuficiente en base")
	ErrInsufficientPossession = errors.New("el poseedor no tiene esa cantidad")
)
