// Package notify implementa los puertos Notifier y Navigator para los runtimes
// sin interfaz gráfica: bandeja en memoria, log estructurado y abanico.
package notify

import (
	"sync"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

// DefaultCapacity notificaciones retenidas antes de descartar las más viejas.
const DefaultCapacity = 50

// Inbox bandeja de notificaciones pendientes; la vista la vacía con Drain.
type Inbox struct {
	mu    sync.Mutex
	items []ports.Notification
	cap   int
}

// NewInbox capacity <= 0 usa DefaultCapacity.
func NewInbox(capacity int) *Inbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inbox{cap: capacity}
}

func (b *Inbox) Notify(n ports.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == b.cap {
		b.items = b.items[1:]
	}
	b.items = append(b.items, n)
}

// Drain devuelve las pendientes en orden de llegada y vacía la bandeja.
func (b *Inbox) Drain() []ports.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	if out == nil {
		out = []ports.Notification{}
	}
	return out
}

// Len pendientes sin consumir.
func (b *Inbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Log escribe cada notificación en el log.
type Log struct {
	log *logger.Logger
}

func NewLog(log *logger.Logger) *Log {
	return &Log{log: log.Component("notify")}
}

func (l *Log) Notify(n ports.Notification) {
	ev := l.log.Info()
	if n.Level == ports.LevelError {
		ev = l.log.Warn()
	}
	ev.Str("notification", string(n.Level)).Time("at", n.At).Msg(n.Message)
}

// Fanout reenvía a varios notifiers en orden.
type Fanout []ports.Notifier

func (f Fanout) Notify(n ports.Notification) {
	for _, t := range f {
		t.Notify(n)
	}
}
