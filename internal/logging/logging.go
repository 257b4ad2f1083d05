package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"camconsole/internal/config"
)

// Setup installs the default slog logger. The TUI owns the terminal, so it
// logs to the configured file; other commands log to stderr.
func Setup(cfg config.LogConfig, toFile bool) (io.Closer, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	var out io.WriteCloser = nopCloser{os.Stderr}
	if toFile && cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return out, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
