package host

import (
	"context"
	"sync"

	"camconsole/domain/camnet"
	"camconsole/entity"
)

// LocalHost runs the host simulation in-process.
type LocalHost struct {
	network *camnet.Network

	mu      sync.Mutex
	cancels []func()
}

func NewLocalHost(network *camnet.Network) *LocalHost {
	return &LocalHost{network: network}
}

func (h *LocalHost) Subscribe(ctx context.Context) (<-chan entity.Snapshot, error) {
	changes, cancel := h.network.Subscribe()
	h.mu.Lock()
	h.cancels = append(h.cancels, cancel)
	h.mu.Unlock()

	out := make(chan entity.Snapshot)
	go func() {
		defer close(out)
		defer cancel()

		next := h.network.Snapshot()
		for {
			select {
			case out <- next:
			case <-ctx.Done():
				return
			}
			select {
			case s, ok := <-changes:
				if !ok {
					return
				}
				next = s
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (h *LocalHost) Act(_ context.Context, action string, payload any) error {
	raw, err := encodePayload(payload)
	if err != nil {
		return err
	}
	_, err = h.network.Apply(action, raw)
	return err
}

func (h *LocalHost) Style(context.Context) (string, error) {
	return h.network.Style(), nil
}

func (h *LocalHost) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cancel := range h.cancels {
		cancel()
	}
	h.cancels = nil
	return nil
}
