package minimap

import (
	"fmt"
	"strings"

	"camconsole/domain/selection"
	"camconsole/entity"
	"camconsole/modules/shared/styles"
	"camconsole/utils/selectable_list"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

// MODEL

const (
	markerActive  = '@'
	markerOnline  = 'o'
	markerOffline = 'x'
	markerStacked = '+'
	markerEmpty   = '.'
)

type Options struct {
	ZLevel  int
	Width   int
	Height  int
	MaxZoom int
}

type MinimapModule struct {
	opts     Options
	zoom     int
	cameras  *selectable_list.SelectableList[entity.Camera]
	snapshot entity.Snapshot
}

func Init(opts Options) MinimapModule {
	return MinimapModule{
		opts:    opts,
		zoom:    1,
		cameras: selectable_list.NewSelectableList([]entity.Camera{}),
	}
}

func (m MinimapModule) Zoom() int {
	return m.zoom
}

func (m MinimapModule) Cameras() []entity.Camera {
	return m.cameras.Items
}

func (m MinimapModule) Focused() (entity.Camera, bool) {
	return m.cameras.Selected()
}

// SetSnapshot keeps the cameras on the minimap's layer, in name order.
func (m MinimapModule) SetSnapshot(s entity.Snapshot) MinimapModule {
	previous, hadPrevious := m.cameras.Selected()
	onLayer := lo.Filter(selection.SelectCameras(s.Cameras, ""), func(c entity.Camera, _ int) bool {
		return c.Z == m.opts.ZLevel
	})

	list := selectable_list.NewSelectableList(onLayer)
	byName := func(name string) func(entity.Camera) bool {
		return func(c entity.Camera) bool { return c.Name == name }
	}
	if !(hadPrevious && list.Focus(byName(previous.Name))) {
		list.Focus(byName(s.ActiveName()))
	}

	m.snapshot = s
	m.cameras = list
	return m
}

// UPDATE

// MinimapOutMsg names the camera the user picked; empty when nothing was picked.
type MinimapOutMsg = string

func (m MinimapModule) UpdateMinimap(msg tea.Msg) (MinimapModule, tea.Cmd, MinimapOutMsg) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "+", "=":
			m.zoom = min(m.zoom+1, m.opts.MaxZoom)
		case "-", "_":
			m.zoom = max(m.zoom-1, 1)
		case "up", "left", "k", "h":
			m.cameras.Prev()
		case "down", "right", "j", "l":
			m.cameras.Next()
		case "enter":
			if camera, ok := m.cameras.Selected(); ok {
				return m, nil, camera.Name
			}
		}
	}
	return m, nil, ""
}

// VIEW

func (m MinimapModule) viewport() Viewport {
	center := Bounds(m.cameras.Items).Center()
	if focused, ok := m.cameras.Selected(); ok {
		center = orb.Point{float64(focused.X), float64(focused.Y)}
	}
	return NewViewport(Bounds(m.cameras.Items), center, m.zoom, m.opts.Width, m.opts.Height)
}

func (m MinimapModule) ViewMinimap() string {
	header := styles.Title.Render(fmt.Sprintf("Layer %d", m.opts.ZLevel)) +
		styles.Help.Render(fmt.Sprintf("  zoom x%d", m.zoom))

	if m.cameras.IsEmpty() {
		return header + "\n\n" + styles.Dim.Render("No cameras on this layer")
	}

	grid := m.renderGrid(m.viewport().Project(m.cameras.Items))

	lines := []string{header, "", grid, ""}
	if focused, ok := m.cameras.Selected(); ok {
		lines = append(lines, fmt.Sprintf("> %s  (%d, %d)  %s", focused.Name, focused.X, focused.Y, focused.Status))
	}
	lines = append(lines, styles.Help.Render("@ active  o online  x offline  + several"))
	return strings.Join(lines, "\n")
}

func (m MinimapModule) renderGrid(markers []Marker) string {
	type cell struct {
		count   int
		camera  entity.Camera
		focused bool
	}
	cells := make([][]cell, m.opts.Height)
	for row := range cells {
		cells[row] = make([]cell, m.opts.Width)
	}

	focused, hasFocus := m.cameras.Selected()
	for _, marker := range markers {
		c := &cells[marker.Row][marker.Col]
		c.count++
		c.camera = marker.Camera
		if hasFocus && marker.Camera.Name == focused.Name {
			c.focused = true
		}
	}

	var b strings.Builder
	for row, line := range cells {
		for _, c := range line {
			symbol := string(m.symbol(c.count, c.camera))
			if c.focused {
				symbol = styles.Focused.Render(symbol)
			}
			b.WriteString(symbol)
		}
		if row < len(cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m MinimapModule) symbol(count int, camera entity.Camera) rune {
	switch {
	case count == 0:
		return markerEmpty
	case count > 1:
		return markerStacked
	case m.snapshot.IsActive(camera):
		return markerActive
	case camera.IsOnline():
		return markerOnline
	default:
		return markerOffline
	}
}
