// Package host is the console's bridge to the simulation that owns the
// cameras: a stream of snapshots in, fire-and-forget intents out.
package host

import (
	"context"
	"encoding/json"
	"fmt"

	"camconsole/domain/camnet"
	"camconsole/entity"
	"camconsole/internal/config"
)

const ActionSwitchCamera = camnet.ActionSwitchCamera

type SwitchCameraPayload = camnet.SwitchCameraPayload

type Host interface {
	// Subscribe streams host snapshots until ctx is done or the host goes
	// away, at which point the channel is closed.
	Subscribe(ctx context.Context) (<-chan entity.Snapshot, error)
	// Act sends an intent. A nil error only means the host received it.
	Act(ctx context.Context, action string, payload any) error
	// Style asks the host for its display style.
	Style(ctx context.Context) (string, error)
	Close() error
}

// SwitchCamera sends the switch_camera intent for name.
func SwitchCamera(ctx context.Context, h Host, name string) error {
	return h.Act(ctx, ActionSwitchCamera, SwitchCameraPayload{Name: name})
}

// New builds the host bridge for the configured transport.
func New(cfg config.HostConfig) (Host, error) {
	switch cfg.Transport {
	case config.TransportWebsocket:
		return NewWebsocketHost(cfg.URL), nil
	case config.TransportHTTP:
		return NewHTTPHost(cfg.URL, cfg.PollInterval, cfg.Timeout), nil
	case config.TransportLocal:
		fixture, err := camnet.LoadFixture(cfg.Fixture)
		if err != nil {
			return nil, err
		}
		return NewLocalHost(fixture.Network()), nil
	default:
		return nil, fmt.Errorf("unknown host transport %q", cfg.Transport)
	}
}

// Message is the envelope exchanged over the websocket transport.
type Message struct {
	Type    string           `json:"type"`
	Data    *entity.Snapshot `json:"data,omitempty"`
	Action  string           `json:"action,omitempty"`
	Payload json.RawMessage  `json:"payload,omitempty"`
	ID      string           `json:"id,omitempty"`
	Key     string           `json:"key,omitempty"`
	Value   string           `json:"value,omitempty"`
}

const (
	MessageUpdate = "update"
	MessageAct    = "act"
	MessageWinget = "winget"
)

// ActRequest is the HTTP body of an intent.
type ActRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

type StyleResponse struct {
	Style string `json:"style"`
}

func encodePayload(payload any) (json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return raw, nil
}
