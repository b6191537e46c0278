package eventbus

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Действия управляющих сообщений клиента
const (
	ActionIdentify    = "identify"
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// ControlMessage - управляющее сообщение от клиента по веб-сокету
type ControlMessage struct {
	Action   string `json:"action"`
	Topic    string `json:"topic,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	Role     string `json:"role,omitempty"`
	ReportID string `json:"report_id,omitempty"`
}

// Client представляет одно веб-сокет соединение с его подписками
type Client struct {
	ID       uuid.UUID
	UserID   string
	Role     string
	ReportID string

	conn   *websocket.Conn
	send   chan []byte
	topics map[string]struct{}

	closeOnce sync.Once
}

// NewClient создает клиента поверх установленного соединения
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New(),
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		topics: make(map[string]struct{}),
	}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// Serve запускает насосы чтения и записи и блокируется до разрыва соединения
func (c *Client) Serve(bus *Bus, logger *logrus.Logger) {
	go c.writePump(logger)
	c.readPump(bus, logger)
}

// readPump читает управляющие сообщения до разрыва соединения.
// Разрыв снимает все подписки соединения.
func (c *Client) readPump(bus *Bus, logger *logrus.Logger) {
	defer func() {
		bus.Unregister(c.ID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).WithField("client_id", c.ID).Warn("Unexpected websocket close")
			}
			return
		}

		var msg ControlMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.WithError(err).WithField("client_id", c.ID).Warn("Failed to parse control message")
			continue
		}

		switch msg.Action {
		case ActionIdentify:
			if err := bus.Identify(c.ID, msg.UserID, msg.Role, msg.ReportID); err != nil {
				logger.WithError(err).Warn("Identify failed")
			}
		case ActionSubscribe:
			if err := bus.Subscribe(c.ID, msg.Topic); err != nil {
				logger.WithError(err).Warn("Subscribe failed")
			}
		case ActionUnsubscribe:
			if err := bus.Unsubscribe(c.ID, msg.Topic); err != nil {
				logger.WithError(err).Warn("Unsubscribe failed")
			}
		default:
			logger.WithField("action", msg.Action).Warn("Unknown control action")
		}
	}
}

// writePump передает события из буфера клиента в соединение
func (c *Client) writePump(logger *logrus.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				logger.WithError(err).WithField("client_id", c.ID).Debug("Websocket write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
