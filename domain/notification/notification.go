package notification

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarn
)

// NotificationReceivedMsg puts a line of text in the console's status bar.
type NotificationReceivedMsg struct {
	Text  string
	Level Level
	// Seq identifies the notification so an expiry only clears its own text.
	Seq int
}

// NotificationExpiredMsg clears the status bar if it still shows notification Seq.
type NotificationExpiredMsg struct {
	Seq int
}

var seq int

func next() int {
	seq++
	return seq
}

func Info(text string) tea.Cmd {
	return create(text, LevelInfo)
}

func Warn(text string) tea.Cmd {
	return create(text, LevelWarn)
}

func create(text string, level Level) tea.Cmd {
	n := NotificationReceivedMsg{Text: text, Level: level, Seq: next()}
	return func() tea.Msg {
		return n
	}
}

// ExpireAfter schedules the expiry of a received notification.
func ExpireAfter(d time.Duration, n NotificationReceivedMsg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{Seq: n.Seq}
	})
}
