package http

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/user-gateway/adapters/event"
	"github.com/khoahotran/user-gateway/pkg/logger"
)

type SubscriptionHandler struct {
	notifier *event.Notifier
	logger   logger.Logger
}

func NewSubscriptionHandler(notifier *event.Notifier, log logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		notifier: notifier,
		logger:   log,
	}
}

// StreamUserEvents handles GET /users/events as a server-sent event stream.
// `userAdded` fires on every create or update, `userDeleted` on every
// delete. The stream only ends when the client disconnects; events
// published before the connection are never replayed.
func (h *SubscriptionHandler) StreamUserEvents(c *gin.Context) {
	upserts, cancelUpserts := h.notifier.SubscribeUpserted()
	defer cancelUpserts()
	deletes, cancelDeletes := h.notifier.SubscribeDeleted()
	defer cancelDeletes()

	h.logger.Debug("Subscriber connected", zap.String("remote", c.ClientIP()))

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case u, ok := <-upserts:
			if !ok {
				return false
			}
			c.SSEvent("userAdded", ToUserDTO(u))
			return true
		case id, ok := <-deletes:
			if !ok {
				return false
			}
			c.SSEvent("userDeleted", id.String())
			return true
		case <-clientGone:
			h.logger.Debug("Subscriber disconnected", zap.String("remote", c.ClientIP()))
			return false
		}
	})
}
