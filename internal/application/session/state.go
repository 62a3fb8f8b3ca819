package session

import "github.com/jhoicas/invorya-dashboard/internal/domain/entity"

// State fase de la sesión.
type State int

const (
	// StateUnknown antes de terminar el bootstrap; la UI muestra "cargando".
	StateUnknown State = iota
	StateAuthenticating
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot vista inmutable de la sesión en un instante.
type Snapshot struct {
	State        State
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// IsAuthenticated hay usuario y token de acceso.
func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil && s.AccessToken != ""
}

// Loading la sesión aún no resolvió si hay usuario.
func (s Snapshot) Loading() bool {
	return s.State == StateUnknown || s.State == StateAuthenticating
}
