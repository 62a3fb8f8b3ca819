package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

func note(msg string) ports.Notification {
	return ports.Notification{Level: ports.LevelInfo, Message: msg, At: time.Now()}
}

func TestInbox_DrainVaciaEnOrden(t *testing.T) {
	b := NewInbox(0)
	b.Notify(note("uno"))
	b.Notify(note("dos"))
	assert.Equal(t, 2, b.Len())

	got := b.Drain()
	assert.Equal(t, "uno", got[0].Message)
	assert.Equal(t, "dos", got[1].Message)
	assert.Equal(t, 0, b.Len())
	assert.NotNil(t, b.Drain(), "bandeja vacía serializa como []")
}

func TestInbox_DescartaLasMasViejas(t *testing.T) {
	b := NewInbox(2)
	b.Notify(note("a"))
	b.Notify(note("b"))
	b.Notify(note("c"))

	got := b.Drain()
	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Message)
	assert.Equal(t, "c", got[1].Message)
}

func TestLogYFanout(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})
	inbox := NewInbox(0)

	Fanout{NewLog(log), inbox}.Notify(ports.Notification{Level: ports.LevelError, Message: "Acceso denegado", At: time.Now()})

	assert.Contains(t, buf.String(), "Acceso denegado")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Equal(t, 1, inbox.Len())
}

func TestNavigator_RecuerdaUltimaRuta(t *testing.T) {
	n := NewNavigator(logger.Nop())
	assert.Empty(t, n.Last())
	n.Navigate(ports.RouteDashboard)
	n.Navigate(ports.RouteLogin)
	assert.Equal(t, ports.RouteLogin, n.Last())
}
