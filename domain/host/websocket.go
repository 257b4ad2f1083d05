package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"camconsole/entity"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var ErrNotConnected = errors.New("host: not connected")

// WebsocketHost talks to a host that pushes snapshots over a websocket.
// Intents and style queries travel back over the same connection.
type WebsocketHost struct {
	url string

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]pendingReply

	writeMu sync.Mutex
}

// pendingReply is a style query waiting for its answer on conn.
type pendingReply struct {
	conn  *websocket.Conn
	reply chan string
}

func NewWebsocketHost(url string) *WebsocketHost {
	return &WebsocketHost{
		url:     url,
		pending: make(map[string]pendingReply),
	}
}

func (h *WebsocketHost) Subscribe(ctx context.Context) (<-chan entity.Snapshot, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial host %s: %w", h.url, err)
	}

	h.mu.Lock()
	if h.conn != nil {
		h.conn.Close()
	}
	h.conn = conn
	h.mu.Unlock()

	out := make(chan entity.Snapshot)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	go h.readLoop(ctx, conn, out, done)
	return out, nil
}

func (h *WebsocketHost) readLoop(ctx context.Context, conn *websocket.Conn, out chan<- entity.Snapshot, done chan<- struct{}) {
	defer close(out)
	defer close(done)
	defer h.dropConn(conn)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() == nil {
				slog.Warn("host: websocket read failed", "error", err)
			}
			return
		}

		switch msg.Type {
		case MessageUpdate:
			if msg.Data == nil {
				continue
			}
			select {
			case out <- *msg.Data:
			case <-ctx.Done():
				return
			}
		case MessageWinget:
			h.resolve(msg.ID, msg.Value)
		default:
			slog.Debug("host: ignoring message", "type", msg.Type)
		}
	}
}

// dropConn closes conn and fails the style queries sent over it.
// Queries on a newer connection stay pending.
func (h *WebsocketHost) dropConn(conn *websocket.Conn) {
	conn.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == conn {
		h.conn = nil
	}
	for id, p := range h.pending {
		if p.conn == conn {
			close(p.reply)
			delete(h.pending, id)
		}
	}
}

func (h *WebsocketHost) resolve(id, value string) {
	h.mu.Lock()
	p, ok := h.pending[id]
	delete(h.pending, id)
	h.mu.Unlock()
	if ok {
		p.reply <- value
	}
}

func (h *WebsocketHost) current() *websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn
}

func (h *WebsocketHost) write(conn *websocket.Conn, msg Message) error {
	if conn == nil {
		return ErrNotConnected
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

func (h *WebsocketHost) Act(_ context.Context, action string, payload any) error {
	raw, err := encodePayload(payload)
	if err != nil {
		return err
	}
	return h.write(h.current(), Message{Type: MessageAct, Action: action, Payload: raw})
}

func (h *WebsocketHost) Style(ctx context.Context) (string, error) {
	id := uuid.NewString()
	reply := make(chan string, 1)

	h.mu.Lock()
	conn := h.conn
	if conn == nil {
		h.mu.Unlock()
		return "", ErrNotConnected
	}
	h.pending[id] = pendingReply{conn: conn, reply: reply}
	h.mu.Unlock()

	forget := func() {
		h.mu.Lock()
		delete(h.pending, id)
		h.mu.Unlock()
	}

	if err := h.write(conn, Message{Type: MessageWinget, ID: id, Key: "style"}); err != nil {
		forget()
		return "", err
	}

	select {
	case value, ok := <-reply:
		if !ok {
			return "", ErrNotConnected
		}
		return value, nil
	case <-ctx.Done():
		forget()
		return "", ctx.Err()
	}
}

func (h *WebsocketHost) Close() error {
	h.mu.Lock()
	conn := h.conn
	h.conn = nil
	h.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}
