package simhost

import (
	"log/slog"
	"sync"

	"camconsole/domain/host"
	"camconsole/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// handleWebsocket pushes the snapshot on connect and after every change, and
// accepts act and winget messages from the console.
func (s *Server) handleWebsocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("simhost: upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.wsClients.Inc()
	defer s.wsClients.Dec()

	var writeMu sync.Mutex
	write := func(msg host.Message) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	changes, cancel := s.network.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.readClient(conn, write)
	}()

	push := func(snapshot entity.Snapshot) bool {
		if err := write(host.Message{Type: host.MessageUpdate, Data: &snapshot}); err != nil {
			slog.Debug("simhost: push failed", "error", err)
			return false
		}
		return true
	}

	if !push(s.network.Snapshot()) {
		return
	}
	for {
		select {
		case snapshot, ok := <-changes:
			if !ok || !push(snapshot) {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) readClient(conn *websocket.Conn, write func(host.Message) error) {
	for {
		var msg host.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case host.MessageAct:
			_, _ = s.apply(msg.Action, msg.Payload)
		case host.MessageWinget:
			value := ""
			if msg.Key == "style" {
				value = s.network.Style()
			}
			if err := write(host.Message{Type: host.MessageWinget, ID: msg.ID, Value: value}); err != nil {
				return
			}
		default:
			slog.Debug("simhost: ignoring message", "type", msg.Type)
		}
	}
}
