package notify

import (
	"sync"

	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

// Navigator recuerda la última ruta pedida por la sesión y la registra en el log.
// El servidor HTTP la usa para decidir a dónde redirigir tras login/logout.
type Navigator struct {
	mu   sync.Mutex
	last string
	log  *logger.Logger
}

func NewNavigator(log *logger.Logger) *Navigator {
	if log == nil {
		log = logger.Nop()
	}
	return &Navigator{log: log.Component("navigator")}
}

func (n *Navigator) Navigate(target string) {
	n.mu.Lock()
	n.last = target
	n.mu.Unlock()
	n.log.Debug().Str("target", target).Msg("navegación solicitada")
}

// Last última ruta solicitada, "" si ninguna.
func (n *Navigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
