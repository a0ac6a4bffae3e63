package v1

import (
	"net/http"
	"time"

	"go-talent-marketplace/internal/domain"
	"go-talent-marketplace/internal/realtime"
	"go-talent-marketplace/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type ChatHandler struct {
	messageUC  domain.MessageUsecase
	dispatcher *realtime.Dispatcher
	upgrader   websocket.Upgrader
}

// NewChatHandler registers the live messaging channel
func NewChatHandler(r *gin.RouterGroup, messageUC domain.MessageUsecase, dispatcher *realtime.Dispatcher) {
	handler := &ChatHandler{
		messageUC:  messageUC,
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers are gated by the auth token; origin checks add
			// nothing for non-browser clients
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	r.GET("/ws", handler.Serve)
}

// inboundFrame is one client-to-server chat frame
type inboundFrame struct {
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
}

// Serve upgrades the connection and binds it to the caller's user id. The
// session receives every message stored for that user while connected;
// messages arriving while disconnected are only discoverable through the
// unread and conversation queries.
func (h *ChatHandler) Serve(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		logger.Log.Warn("websocket upgrade failed", "error", err, "user_id", userID)
		return
	}

	sess := h.dispatcher.Subscribe(userID)
	go h.writeLoop(conn, sess)
	h.readLoop(c, conn, sess)
}

// readLoop consumes inbound frames until the client disconnects. Each frame
// goes through the full send path: identity checks, durable insert, then
// best-effort push to the receiver.
func (h *ChatHandler) readLoop(c *gin.Context, conn *websocket.Conn, sess *realtime.Session) {
	defer func() {
		h.dispatcher.Unsubscribe(sess)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Debug("websocket closed unexpectedly", "error", err, "user_id", sess.UserID)
			}
			return
		}

		// the write loop is the only goroutine allowed to write to the
		// conn, so a failed send is logged rather than reported in-band
		if _, err := h.messageUC.Send(c.Request.Context(), frame.SenderID, frame.ReceiverID, frame.Content); err != nil {
			logger.Log.Warn("inbound chat frame rejected",
				"error", err, "sender_id", frame.SenderID, "receiver_id", frame.ReceiverID)
		}
	}
}

// writeLoop drains the session's outbound channel onto the socket and keeps
// the connection alive with pings. It exits when the session is closed
// (unsubscribe or a newer subscription for the same user).
func (h *ChatHandler) writeLoop(conn *websocket.Conn, sess *realtime.Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sess.Outbound():
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
