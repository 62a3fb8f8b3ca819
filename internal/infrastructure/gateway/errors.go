package gateway

import (
	"errors"
	"fmt"

	"github.com/jhoicas/invorya-dashboard/internal/domain"
)

// Kind clasificación de un fallo del gateway.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindAuthenticationExpired
	KindPermissionDenied
	KindRateLimited
	KindServerFault
	KindValidationFailed
	KindNetworkUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindAuthenticationExpired:
		return "authentication_expired"
	case KindPermissionDenied:
		return "permission_denied"
	case KindRateLimited:
		return "rate_limited"
	case KindServerFault:
		return "server_fault"
	case KindValidationFailed:
		return "validation_failed"
	case KindNetworkUnavailable:
		return "network_unavailable"
	default:
		return "unrecognized"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindAuthenticationExpired:
		return domain.ErrAuthenticationExpired
	case KindPermissionDenied:
		return domain.ErrPermissionDenied
	case KindRateLimited:
		return domain.ErrRateLimited
	case KindServerFault:
		return domain.ErrServerFault
	case KindValidationFailed:
		return domain.ErrValidationFailed
	case KindNetworkUnavailable:
		return domain.ErrNetworkUnavailable
	default:
		return domain.ErrUnrecognized
	}
}

// Error fallo normalizado de una petición al backend.
// Notified indica que el gateway ya mostró una notificación al usuario;
// el llamador puede manejarlo localmente pero no debe volver a notificar.
type Error struct {
	Kind      Kind
	Status    int    // 0 si no hubo respuesta
	Code      string // campo "error"/"code" del cuerpo, si vino
	Message   string // campo "message" del cuerpo, o texto genérico
	Method    string
	Path      string
	RequestID string
	Notified  bool
	Err       error // causa de transporte o decodificación
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s %s: %s (HTTP %d): %s", e.Method, e.Path, e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
}

// Unwrap expone el sentinel de dominio del Kind y la causa original.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.sentinel(), e.Err}
	}
	return []error{e.Kind.sentinel()}
}

// AsError extrae el *Error de una cadena de errores.
func AsError(err error) (*Error, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr, true
	}
	return nil, false
}

// KindOf devuelve el Kind de err, o KindUnrecognized si no viene del gateway.
func KindOf(err error) Kind {
	if gerr, ok := AsError(err); ok {
		return gerr.Kind
	}
	return KindUnrecognized
}

// WasNotified indica si el usuario ya fue notificado de err.
func WasNotified(err error) bool {
	gerr, ok := AsError(err)
	return ok && gerr.Notified
}
