// Package camnet holds an in-memory camera network that behaves like a host
// simulation: it owns the cameras and the active camera and reacts to intents.
package camnet

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"camconsole/entity"

	"github.com/samber/lo"
)

const ActionSwitchCamera = "switch_camera"

type SwitchCameraPayload struct {
	Name string `json:"name"`
}

// Network is safe for concurrent use.
type Network struct {
	mu        sync.Mutex
	snapshot  entity.Snapshot
	style     string
	listeners map[int]chan entity.Snapshot
	nextID    int
}

func New(snapshot entity.Snapshot, style string) *Network {
	return &Network{
		snapshot:  snapshot.Clone(),
		style:     style,
		listeners: make(map[int]chan entity.Snapshot),
	}
}

func (n *Network) Snapshot() entity.Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshot.Clone()
}

func (n *Network) Style() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style
}

// Switch makes the named camera active. Unknown and offline cameras leave the
// active camera unchanged and report false.
func (n *Network) Switch(name string) bool {
	n.mu.Lock()
	camera, found := lo.Find(n.snapshot.Cameras, func(c entity.Camera) bool {
		return name != "" && c.Name == name
	})
	if !found || !camera.IsOnline() {
		n.mu.Unlock()
		slog.Debug("camnet: switch ignored", "name", name, "found", found)
		return false
	}
	n.snapshot.ActiveCamera = &camera
	n.mu.Unlock()

	n.broadcast()
	return true
}

// Apply dispatches an intent by action name. The payload is the raw JSON body of the intent.
func (n *Network) Apply(action string, payload json.RawMessage) (bool, error) {
	switch action {
	case ActionSwitchCamera:
		var p SwitchCameraPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return false, fmt.Errorf("decode %s payload: %w", action, err)
		}
		return n.Switch(p.Name), nil
	default:
		return false, fmt.Errorf("unknown action %q", action)
	}
}

// Subscribe registers for change notification. The channel holds at most the
// latest snapshot; slow readers skip intermediate ones. Call cancel to stop.
func (n *Network) Subscribe() (<-chan entity.Snapshot, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan entity.Snapshot, 1)
	n.listeners[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if l, ok := n.listeners[id]; ok {
			delete(n.listeners, id)
			close(l)
		}
	}
	return ch, cancel
}

func (n *Network) broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.listeners {
		snapshot := n.snapshot.Clone()
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}
