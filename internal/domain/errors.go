package domain

import "errors"

// Errores de dominio del cliente (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Taxonomía de fallos del gateway HTTP.
	ErrAuthenticationExpired = errors.New("autenticación expirada o inválida")
	ErrPermissionDenied      = errors.New("permiso denegado")
	ErrRateLimited           = errors.New("demasiadas peticiones")
	ErrServerFault           = errors.New("error del servidor")
	ErrValidationFailed      = errors.New("validación rechazada por el servidor")
	ErrNetworkUnavailable    = errors.New("red no disponible")
	ErrUnrecognized          = errors.New("error no reconocido")

	// ErrAuthRejected el servidor respondió success:false a login/register.
	ErrAuthRejected = errors.New("autenticación rechazada")
)
