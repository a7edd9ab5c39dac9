package ws

import (
	"encoding/json"

	"skillswap/internal/domain/user"

	"go.uber.org/zap"
)

const EventNotification = "notification"

type NotificationEvent struct {
	Type         string            `json:"type"`
	Notification user.Notification `json:"notification"`
}

// Notify pushes n to userID's open connections. It satisfies the user
// service's Notifier.
func (h *Hub) Notify(userID string, n user.Notification) {
	if h == nil {
		return
	}
	b, err := json.Marshal(NotificationEvent{Type: EventNotification, Notification: n})
	if err != nil {
		h.logger.Error("ws encode notification", zap.Error(err))
		return
	}
	h.Send(userID, b)
}
