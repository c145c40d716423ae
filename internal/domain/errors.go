package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Los errores de credenciales (ErrInvalidCredentials, ErrAccountNotActivated) se pueden
// mostrar tal cual al cliente: no revelan en qué colección se encontró el email.
// ErrTokenInvalid, ErrTokenExpired y ErrUnauthorized se presentan igual hacia afuera
// ("no autenticado"); la diferencia solo queda en los logs.
var (
	ErrDuplicateEmail      = errors.New("el email ya está registrado")
	ErrInvalidCredentials  = errors.New("email o contraseña incorrectos")
	ErrAccountNotActivated = errors.New("cuenta no activada, use su enlace de invitación")
	ErrInvalidInvite       = errors.New("token de invitación inválido")
	ErrInviteExpired       = errors.New("token de invitación expirado")
	ErrTokenInvalid        = errors.New("token inválido")
	ErrTokenExpired        = errors.New("token expirado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrStoreUnavailable    = errors.New("almacenamiento no disponible")

	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrUserLimitReached = errors.New("límite de usuarios alcanzado para este plan")
)
