package domain

import "errors"

// Errores de dominio (sin dependencias externas). Clasifican las fallas del
// CRM y las políticas locales; ninguno se reintenta, todos llegan al borde
// HTTP tal cual.
var (
	// ErrUpstreamUnavailable falla de red alcanzando el CRM (timeout, conexión).
	ErrUpstreamUnavailable = errors.New("CRM no disponible")
	// ErrUpstreamRejected el CRM respondió un estado no exitoso; el mensaje
	// del proveedor se adjunta al envolver.
	ErrUpstreamRejected = errors.New("el CRM rechazó la operación")
	// ErrMalformedUpstreamData una respuesta del CRM no pudo mapearse a la
	// forma local. En listados se descarta el registro; en operaciones de
	// entidad única falla la llamada completa.
	ErrMalformedUpstreamData = errors.New("datos del CRM con forma inesperada")
	// ErrConflict la política local detectó un duplicado antes de escribir.
	ErrConflict = errors.New("recurso duplicado")
	// ErrInvalidInput entrada inválida en la petición local.
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrNoPaymentTypes el CRM no tiene tipos de pago configurados.
	ErrNoPaymentTypes = errors.New("no hay tipos de pago configurados en el CRM")
	// ErrPaymentVanished el pago recién creado no aparece en la orden al releerla.
	ErrPaymentVanished = errors.New("el pago no aparece en la orden después de crearlo")
)
