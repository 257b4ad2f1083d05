package camnet

import (
	"encoding/json"
	"testing"
	"time"

	"camconsole/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
map_ref: camera_console_map
style: "#4a7ab5"
active: Bridge
cameras:
  - {name: Bridge, z: 1, x: 120, y: 140, status: online, ref: "0x01"}
  - {name: Brig, z: 1, x: 60, y: 180, status: online, ref: "0x02"}
  - {name: Vault, z: 1, x: 90, y: 40, status: offline, ref: "0x03"}
  - {name: "", z: 1, x: 0, y: 0, status: online, ref: "0x04"}
  - {name: Mining Outpost, z: 5, x: 30, y: 30, status: online, ref: "0x05"}
`

func testNetwork(t *testing.T) *Network {
	t.Helper()
	f, err := ParseFixture([]byte(fixtureYAML))
	require.NoError(t, err)
	return f.Network()
}

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture([]byte(fixtureYAML))
	require.NoError(t, err)

	assert.Equal(t, "camera_console_map", f.MapRef)
	assert.Equal(t, "#4a7ab5", f.Style)
	assert.Len(t, f.Cameras, 5)
	assert.Equal(t, entity.Camera{Name: "Vault", Z: 1, X: 90, Y: 40, Status: entity.StatusOffline, Ref: "0x03"}, f.Cameras[2])
}

func TestParseFixture_Invalid(t *testing.T) {
	_, err := ParseFixture([]byte("cameras: [\n"))
	assert.Error(t, err)
}

func TestLoadFixture_Missing(t *testing.T) {
	_, err := LoadFixture(t.TempDir() + "/missing.yaml")
	assert.Error(t, err)
}

func TestFixtureNetwork_ActivatesConfiguredCamera(t *testing.T) {
	n := testNetwork(t)

	assert.Equal(t, "Bridge", n.Snapshot().ActiveName())
	assert.Equal(t, "#4a7ab5", n.Style())
}

func TestSwitch(t *testing.T) {
	n := testNetwork(t)

	assert.True(t, n.Switch("Brig"))
	assert.Equal(t, "Brig", n.Snapshot().ActiveName())

	assert.False(t, n.Switch("Vault"), "offline camera")
	assert.False(t, n.Switch("Nowhere"), "unknown camera")
	assert.False(t, n.Switch(""), "placeholder camera")
	assert.Equal(t, "Brig", n.Snapshot().ActiveName())
}

func TestSnapshot_IsACopy(t *testing.T) {
	n := testNetwork(t)

	s := n.Snapshot()
	s.Cameras[0].Name = "changed"
	s.ActiveCamera.Name = "changed"

	fresh := n.Snapshot()
	assert.Equal(t, "Bridge", fresh.Cameras[0].Name)
	assert.Equal(t, "Bridge", fresh.ActiveName())
}

func TestApply(t *testing.T) {
	n := testNetwork(t)

	ok, err := n.Apply(ActionSwitchCamera, json.RawMessage(`{"name":"Brig"}`))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = n.Apply("eject_core", json.RawMessage(`{}`))
	assert.Error(t, err)

	_, err = n.Apply(ActionSwitchCamera, json.RawMessage(`"Brig"`))
	assert.Error(t, err)
}

func TestSubscribe_ReceivesLatest(t *testing.T) {
	n := testNetwork(t)
	updates, cancel := n.Subscribe()
	defer cancel()

	n.Switch("Brig")
	n.Switch("Mining Outpost")

	select {
	case s := <-updates:
		assert.Equal(t, "Mining Outpost", s.ActiveName())
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	n := testNetwork(t)
	updates, cancel := n.Subscribe()

	cancel()
	cancel()

	_, open := <-updates
	assert.False(t, open)
	assert.True(t, n.Switch("Brig"))
}
