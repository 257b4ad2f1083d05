package host

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"camconsole/entity"

	"github.com/go-resty/resty/v2"
)

// HTTPHost polls a host's snapshot endpoint. Every poll is delivered as a
// full update, matching a host that re-sends its whole state each tick.
type HTTPHost struct {
	HTTP         *resty.Client
	pollInterval time.Duration
}

func NewHTTPHost(baseURL string, pollInterval, timeout time.Duration) *HTTPHost {
	r := resty.New()
	r.SetBaseURL(baseURL)
	r.SetTimeout(timeout)
	r.SetHeader("Accept", "application/json")

	return &HTTPHost{
		HTTP:         r,
		pollInterval: pollInterval,
	}
}

func (h *HTTPHost) fetch(ctx context.Context) (entity.Snapshot, error) {
	var snapshot entity.Snapshot
	resp, err := h.HTTP.R().
		SetContext(ctx).
		SetResult(&snapshot).
		Get("/api/snapshot")
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	if resp.IsError() {
		return entity.Snapshot{}, fmt.Errorf("fetch snapshot: %s", resp.Status())
	}
	return snapshot, nil
}

// Subscribe fails if the first poll fails; later poll errors are logged and retried on the next tick.
func (h *HTTPHost) Subscribe(ctx context.Context) (<-chan entity.Snapshot, error) {
	first, err := h.fetch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan entity.Snapshot)
	go func() {
		defer close(out)
		ticker := time.NewTicker(h.pollInterval)
		defer ticker.Stop()

		next := first
		for {
			select {
			case out <- next:
			case <-ctx.Done():
				return
			}

			for {
				select {
				case <-ticker.C:
				case <-ctx.Done():
					return
				}
				s, err := h.fetch(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					slog.Warn("host: poll failed", "error", err)
					continue
				}
				next = s
				break
			}
		}
	}()
	return out, nil
}

func (h *HTTPHost) Act(ctx context.Context, action string, payload any) error {
	raw, err := encodePayload(payload)
	if err != nil {
		return err
	}
	resp, err := h.HTTP.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ActRequest{Action: action, Payload: raw}).
		Post("/api/act")
	if err != nil {
		return fmt.Errorf("send %s: %w", action, err)
	}
	if resp.IsError() {
		return fmt.Errorf("send %s: %s", action, resp.Status())
	}
	return nil
}

func (h *HTTPHost) Style(ctx context.Context) (string, error) {
	var style StyleResponse
	resp, err := h.HTTP.R().
		SetContext(ctx).
		SetResult(&style).
		Get("/api/style")
	if err != nil {
		return "", fmt.Errorf("fetch style: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch style: %s", resp.Status())
	}
	return style.Style, nil
}

func (h *HTTPHost) Close() error {
	return nil
}
