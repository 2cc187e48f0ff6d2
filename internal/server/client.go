package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mkoeppel/Markov-Market/internal/engine"
	"github.com/mkoeppel/Markov-Market/pkg/api"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и Broadcaster. Только смотрит: управлять
// симуляцией через сокет нельзя.
type Client struct {
	srv  *Server
	Conn *websocket.Conn
	Send chan api.ServerResponse
	ID   string

	log *logrus.Entry
}

func NewClient(srv *Server, conn *websocket.Conn) *Client {
	id := utils.NewRunID()
	return &Client{
		srv:  srv,
		Conn: conn,
		ID:   id,
		log:  srv.log.WithField("client_id", utils.ShortID(id)),
	}
}

// Start подписывает клиента, отправляет INIT и запускает пампы
func (c *Client) Start() {
	c.Send = c.srv.Hub.Register(c.ID)
	c.log.WithField("remote", c.Conn.RemoteAddr().String()).Info("Client connected")
	c.sendInit()

	go c.writePump()
	go c.readPump()
}

// sendInit - карта + последнее известное состояние
func (c *Client) sendInit() {
	state, _ := c.srv.Latest.Get()
	c.srv.Hub.SendTo(c.ID, engine.BuildInit(c.srv.RunID, c.srv.Market, state))
}

// readPump читает команды клиента. Разрыв соединения - отписка.
func (c *Client) readPump() {
	defer func() {
		c.srv.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS Error")
			}
			break
		}

		if err := cmd.Validate(); err != nil {
			c.log.WithError(err).Warn("Invalid command ignored")
			continue
		}

		switch cmd.Action {
		case api.ActionInit:
			c.sendInit()
		case api.ActionPing:
			// Только продлевает дедлайн чтения
			if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
				c.log.WithError(err).Warn("failed to extend read deadline")
			}
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// Hub закрыл канал
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
