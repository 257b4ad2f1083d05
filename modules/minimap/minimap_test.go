package minimap

import (
	"strings"
	"testing"

	"camconsole/entity"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{ZLevel: 1, Width: 11, Height: 11, MaxZoom: 3}
}

func testSnapshot() entity.Snapshot {
	return entity.Snapshot{
		Cameras: []entity.Camera{
			{Name: "South West", Z: 1, X: 0, Y: 0, Status: entity.StatusOnline},
			{Name: "North East", Z: 1, X: 10, Y: 10, Status: entity.StatusOnline},
			{Name: "Centre", Z: 1, X: 5, Y: 5, Status: entity.StatusOffline},
			{Name: "", Z: 1, X: 1, Y: 1, Status: entity.StatusOnline},
			{Name: "Asteroid", Z: 5, X: 2, Y: 2, Status: entity.StatusOnline},
		},
		ActiveCamera: &entity.Camera{Name: "North East"},
	}
}

func runes(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestSetSnapshot_KeepsLayerInNameOrder(t *testing.T) {
	m := Init(testOptions()).SetSnapshot(testSnapshot())

	names := lo.Map(m.Cameras(), func(c entity.Camera, _ int) string { return c.Name })
	assert.Equal(t, []string{"Centre", "North East", "South West"}, names)

	focused, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, "North East", focused.Name, "focus starts on the active camera")
}

func TestZoomStaysInRange(t *testing.T) {
	m := Init(testOptions())
	assert.Equal(t, 1, m.Zoom())

	m, _, _ = m.UpdateMinimap(runes("-"))
	assert.Equal(t, 1, m.Zoom())

	for i := 0; i < 5; i++ {
		m, _, _ = m.UpdateMinimap(runes("+"))
	}
	assert.Equal(t, 3, m.Zoom())
}

func TestNavigateAndSelect(t *testing.T) {
	m := Init(testOptions()).SetSnapshot(testSnapshot())

	m, _, _ = m.UpdateMinimap(tea.KeyMsg{Type: tea.KeyDown})
	_, _, out := m.UpdateMinimap(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "South West", out)
}

func TestSelect_EmptyLayer(t *testing.T) {
	opts := testOptions()
	opts.ZLevel = 9
	m := Init(opts).SetSnapshot(testSnapshot())

	_, _, out := m.UpdateMinimap(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "", out)
	assert.Contains(t, m.ViewMinimap(), "No cameras on this layer")
}

func TestViewport_ZoomOneFramesLayer(t *testing.T) {
	cams := testSnapshot().Cameras[:3]
	v := NewViewport(Bounds(cams), orb.Point{10, 10}, 1, 11, 11)

	markers := v.Project(cams)

	require.Len(t, markers, 3)
	cells := lo.Map(markers, func(m Marker, _ int) [2]int { return [2]int{m.Col, m.Row} })
	assert.Equal(t, [][2]int{{0, 10}, {10, 0}, {5, 5}}, cells)
}

func TestViewport_ZoomedAroundCenter(t *testing.T) {
	cams := testSnapshot().Cameras[:3]
	v := NewViewport(Bounds(cams), orb.Point{7.5, 7.5}, 2, 11, 11)

	markers := v.Project(cams)

	names := lo.Map(markers, func(m Marker, _ int) string { return m.Camera.Name })
	assert.Equal(t, []string{"North East", "Centre"}, names)
}

func TestViewport_SingleCamera(t *testing.T) {
	cams := []entity.Camera{{Name: "Solo", X: 42, Y: 7}}
	v := NewViewport(Bounds(cams), orb.Point{42, 7}, 1, 9, 5)

	col, row, ok := v.Cell(42, 7)

	assert.True(t, ok)
	assert.Equal(t, 4, col)
	assert.Equal(t, 2, row)
}

func TestViewMinimap(t *testing.T) {
	m := Init(testOptions()).SetSnapshot(testSnapshot())

	view := m.ViewMinimap()
	lines := strings.Split(view, "\n")

	assert.Contains(t, view, "Layer 1")
	assert.Contains(t, view, "zoom x1")
	assert.Contains(t, view, "> North East  (10, 10)  online")
	assert.Equal(t, "..........@", lines[2], "active camera in the north east corner")
	assert.Equal(t, "o..........", lines[12], "online camera in the south west corner")
	assert.Equal(t, ".....x.....", lines[7])
}

func TestRenderGrid_StackedCameras(t *testing.T) {
	s := entity.Snapshot{Cameras: []entity.Camera{
		{Name: "A", Z: 1, X: 0, Y: 0, Status: entity.StatusOnline},
		{Name: "B", Z: 1, X: 0, Y: 0, Status: entity.StatusOnline},
		{Name: "C", Z: 1, X: 10, Y: 10, Status: entity.StatusOnline},
	}}
	m := Init(testOptions()).SetSnapshot(s)

	assert.Contains(t, m.ViewMinimap(), "+..........")
}
