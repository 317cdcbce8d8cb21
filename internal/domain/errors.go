package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a la taxonomía 401/403/404/400/500.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUnauthenticated    = errors.New("sesión ausente o inválida")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)
