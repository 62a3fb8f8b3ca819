package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
)

type notificationDrainer interface {
	Drain() []ports.Notification
}

// NotificationHandler expone la bandeja de notificaciones pendientes.
type NotificationHandler struct {
	inbox notificationDrainer
}

func NewNotificationHandler(inbox notificationDrainer) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// Drain godoc
// @Summary      Notificaciones pendientes (se consumen al leerlas)
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  ports.Notification
// @Router       /notifications [get]
func (h *NotificationHandler) Drain(c *fiber.Ctx) error {
	return c.JSON(h.inbox.Drain())
}
