package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/anpep/rzchroma/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed between messages from the peer before the stream is
	// considered idle and closed
	readWait = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  256,
	WriteBufferSize: 256,
	// The server binds to localhost; cross-origin browser clients are
	// expected for local control panels.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStream upgrades the connection to a WebSocket and writes each
// binary message it receives to the attribute named by the ?attribute=
// query parameter. A message that cannot be written closes the stream
// with a close frame describing the failure.
func handleStream(registry *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		attribute := r.URL.Query().Get("attribute")
		if attribute == "" {
			http.Error(w, "missing attribute query parameter", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Error("WebSocket upgrade failed",
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err))
			return
		}
		defer conn.Close()

		logging.LogConnection(r.RemoteAddr, "stream_opened")
		defer logging.LogConnection(r.RemoteAddr, "stream_closed")

		messageNum := 0
		for {
			if err := conn.SetReadDeadline(time.Now().Add(readWait)); err != nil {
				return
			}

			messageType, payload, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logging.Info("Stream closed unexpectedly",
						zap.String("remote_addr", r.RemoteAddr),
						zap.Error(err))
				}
				return
			}
			if messageType != websocket.BinaryMessage {
				closeStream(conn, websocket.CloseUnsupportedData, "expected binary message")
				return
			}

			messageNum++
			if _, err := registry.Write(id, attribute, payload); err != nil {
				logging.Info("Stream write failed",
					zap.String("remote_addr", r.RemoteAddr),
					zap.String("device", id),
					zap.String("attribute", attribute),
					zap.Int("message_num", messageNum),
					zap.Error(err))
				closeStream(conn, closeCodeFor(err), err.Error())
				return
			}
		}
	}
}

func closeCodeFor(err error) int {
	if errors.Is(err, ErrUnknownDevice) || errors.Is(err, ErrUnknownAttribute) {
		return websocket.ClosePolicyViolation
	}
	return websocket.CloseInternalServerErr
}

func closeStream(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(writeWait)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), deadline)
}
