package host_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"camconsole/domain/camnet"
	"camconsole/domain/host"
	"camconsole/entity"
	"camconsole/internal/config"
	"camconsole/internal/simhost"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNetwork() *camnet.Network {
	return camnet.Fixture{
		MapRef: "map_1",
		Style:  "#aa0000",
		Active: "Bridge",
		Cameras: []entity.Camera{
			{Name: "Bridge", Z: 1, X: 10, Y: 10, Status: entity.StatusOnline},
			{Name: "Brig", Z: 1, X: 20, Y: 5, Status: entity.StatusOnline},
			{Name: "Vault", Z: 1, X: 3, Y: 3, Status: entity.StatusOffline},
		},
	}.Network()
}

func startSimhost(t *testing.T) (*httptest.Server, *camnet.Network) {
	t.Helper()
	network := testNetwork()
	ts := httptest.NewServer(simhost.New("", network).Handler())
	t.Cleanup(ts.Close)
	return ts, network
}

func receive(t *testing.T, updates <-chan entity.Snapshot) entity.Snapshot {
	t.Helper()
	select {
	case s, ok := <-updates:
		require.True(t, ok, "update channel closed")
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return entity.Snapshot{}
	}
}

func receiveActive(t *testing.T, updates <-chan entity.Snapshot, name string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case s, ok := <-updates:
			require.True(t, ok, "update channel closed")
			if s.ActiveName() == name {
				return
			}
		case <-deadline:
			t.Fatalf("active camera never became %q", name)
		}
	}
}

func TestWebsocketHost(t *testing.T) {
	ts, network := startSimhost(t)
	h := host.NewWebsocketHost("ws" + strings.TrimPrefix(ts.URL, "http") + "/ws")
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := h.Subscribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bridge", receive(t, updates).ActiveName())

	require.NoError(t, host.SwitchCamera(ctx, h, "Brig"))
	receiveActive(t, updates, "Brig")
	assert.Equal(t, "Brig", network.Snapshot().ActiveName())

	styleCtx, styleCancel := context.WithTimeout(ctx, 5*time.Second)
	defer styleCancel()
	style, err := h.Style(styleCtx)
	require.NoError(t, err)
	assert.Equal(t, "#aa0000", style)

	cancel()
	for range updates {
	}
}

func TestWebsocketHost_NotConnected(t *testing.T) {
	h := host.NewWebsocketHost("ws://127.0.0.1:1/ws")

	assert.ErrorIs(t, host.SwitchCamera(context.Background(), h, "Brig"), host.ErrNotConnected)
	_, err := h.Style(context.Background())
	assert.ErrorIs(t, err, host.ErrNotConnected)
	assert.NoError(t, h.Close())
}

func TestWebsocketHost_DialFailure(t *testing.T) {
	h := host.NewWebsocketHost("ws://127.0.0.1:1/ws")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := h.Subscribe(ctx)
	assert.Error(t, err)
}

func TestHTTPHost(t *testing.T) {
	ts, network := startSimhost(t)
	h := host.NewHTTPHost(ts.URL, 20*time.Millisecond, time.Second)
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := h.Subscribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bridge", receive(t, updates).ActiveName())

	require.NoError(t, host.SwitchCamera(ctx, h, "Brig"))
	receiveActive(t, updates, "Brig")
	assert.Equal(t, "Brig", network.Snapshot().ActiveName())

	style, err := h.Style(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#aa0000", style)
}

func TestHTTPHost_OfflineSwitchIsAcceptedWithoutEffect(t *testing.T) {
	ts, network := startSimhost(t)
	h := host.NewHTTPHost(ts.URL, time.Second, time.Second)

	require.NoError(t, host.SwitchCamera(context.Background(), h, "Vault"))
	assert.Equal(t, "Bridge", network.Snapshot().ActiveName())
}

func TestHTTPHost_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	h := host.NewHTTPHost(ts.URL, time.Second, time.Second)

	_, err := h.Subscribe(context.Background())
	assert.Error(t, err)
	assert.Error(t, h.Act(context.Background(), host.ActionSwitchCamera, host.SwitchCameraPayload{Name: "Brig"}))
	_, err = h.Style(context.Background())
	assert.Error(t, err)
}

func TestLocalHost(t *testing.T) {
	network := testNetwork()
	h := host.NewLocalHost(network)
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := h.Subscribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bridge", receive(t, updates).ActiveName())

	require.NoError(t, host.SwitchCamera(ctx, h, "Brig"))
	assert.Equal(t, "Brig", receive(t, updates).ActiveName())

	assert.Error(t, h.Act(ctx, "eject_core", nil))

	style, err := h.Style(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#aa0000", style)

	cancel()
	for range updates {
	}
}

func TestNew(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "station.yaml")
	require.NoError(t, os.WriteFile(fixture, []byte("cameras:\n  - {name: Bridge, z: 1, status: online}\n"), 0o644))

	tests := []struct {
		name    string
		cfg     config.HostConfig
		want    any
		wantErr bool
	}{
		{"websocket", config.HostConfig{Transport: config.TransportWebsocket, URL: "ws://x/ws"}, &host.WebsocketHost{}, false},
		{"http", config.HostConfig{Transport: config.TransportHTTP, URL: "http://x", PollInterval: time.Second, Timeout: time.Second}, &host.HTTPHost{}, false},
		{"local", config.HostConfig{Transport: config.TransportLocal, Fixture: fixture}, &host.LocalHost{}, false},
		{"local missing fixture", config.HostConfig{Transport: config.TransportLocal, Fixture: fixture + ".missing"}, nil, true},
		{"unknown", config.HostConfig{Transport: "pigeon"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := host.New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, h)
		})
	}
}
