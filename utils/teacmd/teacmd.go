package teacmd

import (
	"context"
	"time"

	"camconsole/utils/result"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWithTimeout runs call off the UI loop and turns its outcome into a message.
func RunWithTimeout[T any](timeout time.Duration, call func(context.Context) (T, error), resultMsg func(result.Result[T]) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return resultMsg(result.From[T](call(ctx)))
	}
}

// ListenChannel waits for the next value on ch. closedMsg is returned once ch is closed.
func ListenChannel[T any](ch <-chan T, valueMsg func(T) tea.Msg, closedMsg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		value, ok := <-ch
		if !ok {
			return closedMsg
		}
		return valueMsg(value)
	}
}
