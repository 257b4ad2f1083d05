package cameralist

import (
	"fmt"
	"strings"

	"camconsole/domain/selection"
	"camconsole/entity"
	"camconsole/modules/shared/styles"
	"camconsole/utils/selectable_list"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

// MODEL

const defaultVisibleRows = 15

type CameraListModule struct {
	search      textinput.Model
	searchMode  selection.SearchMode
	cameras     *selectable_list.SelectableList[entity.Camera]
	snapshot    entity.Snapshot
	visibleRows int
}

func Init(mode selection.SearchMode) CameraListModule {
	search := textinput.New()
	search.Placeholder = "Search for a camera"
	search.Prompt = "/ "
	search.Width = 32
	search.Focus()

	return CameraListModule{
		search:      search,
		searchMode:  mode,
		cameras:     selectable_list.NewSelectableList([]entity.Camera{}),
		visibleRows: defaultVisibleRows,
	}
}

func (m CameraListModule) SearchText() string {
	return m.search.Value()
}

func (m CameraListModule) Cameras() []entity.Camera {
	return m.cameras.Items
}

// Focused returns the camera under the cursor.
func (m CameraListModule) Focused() (entity.Camera, bool) {
	return m.cameras.Selected()
}

func (m CameraListModule) SetVisibleRows(rows int) CameraListModule {
	m.visibleRows = max(rows, 1)
	return m
}

// SetSnapshot replaces the host data and re-applies the search.
func (m CameraListModule) SetSnapshot(s entity.Snapshot) CameraListModule {
	m.snapshot = s
	return m.refilter()
}

func (m CameraListModule) ClearSearch() CameraListModule {
	m.search.SetValue("")
	return m.refilter()
}

// refilter keeps the cursor on the same camera when it survives the new
// selection, otherwise on the active camera, otherwise on the first row.
func (m CameraListModule) refilter() CameraListModule {
	previous, hadPrevious := m.cameras.Selected()
	filtered := selection.SelectCamerasWith(m.snapshot.Cameras, selection.NewSearch(m.searchMode, m.search.Value()))

	list := selectable_list.NewSelectableList(filtered)
	byName := func(name string) func(entity.Camera) bool {
		return func(c entity.Camera) bool { return c.Name == name }
	}
	switch {
	case hadPrevious && list.Focus(byName(previous.Name)):
	case list.Focus(byName(m.snapshot.ActiveName())):
	default:
		list.FocusFirst()
	}
	m.cameras = list
	return m
}

// UPDATE

// CameraListOutMsg names the camera the user picked; empty when nothing was picked.
type CameraListOutMsg = string

func (m CameraListModule) UpdateCameraList(msg tea.Msg) (CameraListModule, tea.Cmd, CameraListOutMsg) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up":
			m.cameras.Prev()
			return m, nil, ""
		case "down":
			m.cameras.Next()
			return m, nil, ""
		case "enter":
			if camera, ok := m.cameras.Selected(); ok {
				return m, nil, camera.Name
			}
			return m, nil, ""
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m = m.refilter()
	}
	return m, cmd, ""
}

// VIEW

func (m CameraListModule) ViewCameraList() string {
	lines := []string{m.search.View(), ""}

	if m.cameras.IsEmpty() {
		lines = append(lines, styles.Dim.Render("No cameras found"))
		return strings.Join(lines, "\n")
	}

	start, end := window(len(m.cameras.Items), m.cameras.Current, m.visibleRows)
	m.cameras.ForEach(func(camera entity.Camera, i int, isSelected bool) {
		if i < start || i >= end {
			return
		}
		prefix := lo.Ternary(isSelected, ">", " ")
		label := camera.Name
		switch {
		case m.snapshot.IsActive(camera):
			label = styles.Selected.Render(label)
		case !camera.IsOnline():
			label = styles.Dim.Render(label + " (offline)")
		}
		lines = append(lines, fmt.Sprintf("%s %s", prefix, label))
	})
	if end-start < len(m.cameras.Items) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("  %d/%d", m.cameras.Current+1, len(m.cameras.Items))))
	}

	return strings.Join(lines, "\n")
}

// window returns the [start, end) rows to draw so that cursor stays visible.
func window(total, cursor, rows int) (int, int) {
	if total <= rows {
		return 0, total
	}
	start := cursor - rows/2
	start = max(0, min(start, total-rows))
	return start, start + rows
}
