package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"camconsole/domain/host"
	"camconsole/domain/notification"
	"camconsole/domain/selection"
	"camconsole/entity"
	"camconsole/modules/cameralist"
	"camconsole/modules/minimap"
	"camconsole/modules/shared/styles"
	"camconsole/utils/result"
	"camconsole/utils/teacmd"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// MODEL

type Options struct {
	SearchMode     selection.SearchMode
	Minimap        minimap.Options
	Timeout        time.Duration
	ReconnectDelay time.Duration
}

type ConsoleModule struct {
	ctx  context.Context
	host host.Host
	opts Options

	view     viewState
	snapshot entity.Snapshot
	list     cameralist.CameraListModule
	minimap  minimap.MinimapModule

	updates   <-chan entity.Snapshot
	connected bool
	accent    lipgloss.Color
	status    notification.NotificationReceivedMsg
	height    int
}

// New builds the console. ctx bounds the host subscription; cancel it when the program exits.
func New(ctx context.Context, h host.Host, opts Options) ConsoleModule {
	return ConsoleModule{
		ctx:     ctx,
		host:    h,
		opts:    opts,
		view:    viewStateList,
		list:    cameralist.Init(opts.SearchMode),
		minimap: minimap.Init(opts.Minimap),
		accent:  styles.DefaultAccent,
	}
}

// Init only connects; the host style is fetched after each successful connect.
func (m ConsoleModule) Init() tea.Cmd {
	return m.connect()
}

// MESSAGES

// SnapshotMsg is a host data update; it replaces the previous snapshot entirely.
type SnapshotMsg struct {
	Snapshot entity.Snapshot
}

type hostConnectedMsg struct {
	updates <-chan entity.Snapshot
	err     error
}

type hostDisconnectedMsg struct{}

type reconnectMsg struct{}

// IntentSentMsg reports the outcome of delivering a switch_camera intent.
type IntentSentMsg struct {
	Name string
	Err  error
}

// StyleFetchedMsg carries the host display style, or why it could not be read.
type StyleFetchedMsg struct {
	Style result.Result[string]
}

// COMMANDS

func (m ConsoleModule) connect() tea.Cmd {
	ctx, h := m.ctx, m.host
	return func() tea.Msg {
		updates, err := h.Subscribe(ctx)
		return hostConnectedMsg{updates: updates, err: err}
	}
}

func (m ConsoleModule) listen() tea.Cmd {
	return teacmd.ListenChannel(m.updates, func(s entity.Snapshot) tea.Msg {
		return SnapshotMsg{Snapshot: s}
	}, hostDisconnectedMsg{})
}

func (m ConsoleModule) reconnectLater() tea.Cmd {
	return tea.Tick(m.opts.ReconnectDelay, func(time.Time) tea.Msg { return reconnectMsg{} })
}

func (m ConsoleModule) fetchStyle() tea.Cmd {
	return teacmd.RunWithTimeout(m.opts.Timeout, m.host.Style, func(r result.Result[string]) tea.Msg {
		return StyleFetchedMsg{Style: r}
	})
}

// switchCamera fires the switch_camera intent. The host decides whether it
// takes effect; the next snapshot shows the outcome.
func (m ConsoleModule) switchCamera(name string) tea.Cmd {
	if name == "" {
		return nil
	}
	h := m.host
	return teacmd.RunWithTimeout(m.opts.Timeout, func(ctx context.Context) (string, error) {
		return name, host.SwitchCamera(ctx, h, name)
	}, func(r result.Result[string]) tea.Msg {
		return IntentSentMsg{Name: name, Err: r.Err()}
	})
}

// navigation is computed over every named camera, independent of the list's search.
func (m ConsoleModule) navigation() (prev, next string) {
	return selection.PrevNextCamera(selection.SelectCameras(m.snapshot.Cameras, ""), m.snapshot.ActiveCamera)
}

func (m ConsoleModule) notify(n notification.NotificationReceivedMsg) (ConsoleModule, tea.Cmd) {
	m.status = n
	return m, notification.ExpireAfter(5*time.Second, n)
}

// UPDATE

func (m ConsoleModule) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.list = m.list.SetVisibleRows(msg.Height - 12)
		return m, nil

	case hostConnectedMsg:
		if msg.err != nil {
			slog.Warn("console: host connection failed", "error", msg.err)
			return m, tea.Batch(notification.Warn("Host unreachable, retrying"), m.reconnectLater())
		}
		slog.Info("console: connected to host")
		m.updates = msg.updates
		m.connected = true
		return m, tea.Batch(m.listen(), m.fetchStyle(), notification.Info("Connected to host"))

	case hostDisconnectedMsg:
		m.connected = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		slog.Warn("console: host connection lost")
		return m, tea.Batch(notification.Warn("Host connection lost, reconnecting"), m.reconnectLater())

	case reconnectMsg:
		return m, m.connect()

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.list = m.list.SetSnapshot(msg.Snapshot)
		m.minimap = m.minimap.SetSnapshot(msg.Snapshot)
		return m, m.listen()

	case IntentSentMsg:
		if msg.Err != nil {
			slog.Warn("console: switch_camera not delivered", "name", msg.Name, "error", msg.Err)
		} else {
			slog.Debug("console: switch_camera sent", "name", msg.Name)
		}
		return m, nil

	case StyleFetchedMsg:
		if !msg.Style.IsOk() {
			slog.Debug("console: host style unavailable", "error", msg.Style.Err())
			return m, nil
		}
		if style := msg.Style.Unwrap(); style != "" {
			m.accent = lipgloss.Color(style)
		}
		return m, nil

	case notification.NotificationReceivedMsg:
		return m.notify(msg)

	case notification.NotificationExpiredMsg:
		if m.status.Seq == msg.Seq {
			m.status = notification.NotificationReceivedMsg{}
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.delegate(msg)
}

func (m ConsoleModule) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev, next := m.navigation()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.view.isListView() && m.list.SearchText() != "" {
			m.list = m.list.ClearSearch()
			return m, nil
		}
		return m, tea.Quit
	case "tab":
		m.view = m.view.toggled()
		return m, nil
	case "pgup", "ctrl+p":
		return m, m.switchCamera(prev)
	case "pgdown", "ctrl+n":
		return m, m.switchCamera(next)
	case "[", "]":
		if m.view.isMinimapView() {
			return m, m.switchCamera(lo.Ternary(msg.String() == "[", prev, next))
		}
	}

	return m.delegate(msg)
}

// delegate hands the message to the sub-view that is showing.
func (m ConsoleModule) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch true {
	case m.view.isListView():
		list, cmd, picked := m.list.UpdateCameraList(msg)
		m.list = list
		return m, tea.Batch(cmd, m.switchCamera(picked))
	case m.view.isMinimapView():
		mm, cmd, picked := m.minimap.UpdateMinimap(msg)
		m.minimap = mm
		return m, tea.Batch(cmd, m.switchCamera(picked))
	}
	return m, nil
}

// VIEW

func (m ConsoleModule) View() string {
	left := m.viewLeft()
	right := m.viewRight()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	return body + "\n" + m.viewStatus()
}

func (m ConsoleModule) viewLeft() string {
	toggle := lo.Ternary(m.view.isMinimapView(), "Switch to List", "Switch to Minimap")
	lines := []string{styles.Button(toggle+" (tab)", true), ""}

	switch true {
	case m.view.isListView():
		lines = append(lines, m.list.ViewCameraList())
	case m.view.isMinimapView():
		lines = append(lines, m.minimap.ViewMinimap())
	}
	return strings.Join(lines, "\n")
}

func (m ConsoleModule) viewRight() string {
	prev, next := m.navigation()

	activeName := lo.Ternary(m.snapshot.ActiveCamera != nil && m.snapshot.ActiveName() != "", m.snapshot.ActiveName(), "—")
	toolbar := styles.Title.Render("Camera: ") + activeName + "   " +
		styles.Button("< prev", prev != "") + " " + styles.Button("next >", next != "")

	mapLines := []string{
		styles.Dim.Render("live map: " + lo.Ternary(m.snapshot.MapRef != "", m.snapshot.MapRef, "none")),
	}
	if active := m.snapshot.ActiveCamera; active != nil {
		mapLines = append(mapLines,
			fmt.Sprintf("%s  z%d (%d, %d)", active.Name, active.Z, active.X, active.Y),
		)
	} else {
		mapLines = append(mapLines, "No camera selected")
	}

	return toolbar + "\n" + styles.Panel(m.accent).Render(strings.Join(mapLines, "\n"))
}

func (m ConsoleModule) viewStatus() string {
	var status string
	switch {
	case m.status.Text != "" && m.status.Level == notification.LevelWarn:
		status = styles.Warn.Render(m.status.Text)
	case m.status.Text != "":
		status = m.status.Text
	case !m.connected:
		status = styles.Dim.Render("Connecting to host...")
	}

	help := "↑↓ move • enter view • pgup/pgdn prev/next • tab list/minimap • esc quit"
	if m.view.isMinimapView() {
		help = "←→ move • +/- zoom • enter view • [ ] prev/next • tab list/minimap • esc quit"
	}
	return status + "\n" + styles.Help.Render(help)
}
