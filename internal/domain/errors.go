package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso envuelven
// algunos con fmt.Errorf("%w: ...") para añadir contexto (minutos de bloqueo,
// intentos restantes); la capa HTTP resuelve el sentinel con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Autenticación y bloqueo de cuenta
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountLocked      = errors.New("cuenta bloqueada temporalmente")
	ErrAccountInactive    = errors.New("cuenta desactivada")

	// Ciclo de vida de la empresa
	ErrCompanyNotApproved = errors.New("la empresa aún no está aprobada")
	ErrCompanySuspended   = errors.New("la empresa está suspendida")
	ErrInvalidTransition  = errors.New("transición de estado inválida")

	// Inventario y ventas
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNegativeStock     = errors.New("el stock no puede quedar negativo")
	ErrEmptyInvoice      = errors.New("la factura debe tener al menos un ítem")
)
