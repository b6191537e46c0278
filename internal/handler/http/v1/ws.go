package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shenikar/emergency_triage_system/internal/eventbus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Переподключение и его политика - забота транспорта на стороне клиента
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Event stream websocket
// @Description Upgrade to a websocket carrying identify/subscribe/unsubscribe control messages and typed queue events.
// @Tags System
// @Router /ws [get]
func (h *Handler) serveWebsocket(c *gin.Context) {
	log := h.logger.WithField("method", "serveWebsocket")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	client := eventbus.NewClient(conn)
	h.bus.Register(client)
	go client.Serve(h.bus, h.logger)
}
