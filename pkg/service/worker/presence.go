package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/secmon-lab/herald/pkg/service/discord"
	"github.com/secmon-lab/herald/pkg/utils/logging"
)

// PresenceUpdater is the part of discord.Service the presence worker needs
type PresenceUpdater interface {
	UpdatePresence(ctx context.Context, text string) error
}

// PresenceWorker rotates the bot's "Playing ..." status through a fixed list
// of messages
type PresenceWorker struct {
	updater  PresenceUpdater
	messages []string
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	next     int
}

// NewPresenceWorker creates a worker. Empty messages are dropped.
func NewPresenceWorker(updater PresenceUpdater, messages []string, interval time.Duration) *PresenceWorker {
	var filtered []string
	for _, m := range messages {
		if m != "" {
			filtered = append(filtered, m)
		}
	}

	return &PresenceWorker{
		updater:  updater,
		messages: filtered,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins rotating in a background goroutine. It does nothing when
// there are no messages or the interval is not positive.
func (w *PresenceWorker) Start(ctx context.Context) error {
	if len(w.messages) == 0 || w.interval <= 0 {
		logging.Default().Info("Presence worker disabled",
			"messages", len(w.messages),
			"interval", w.interval.String())
		close(w.doneCh)
		return nil
	}

	logging.Default().Info("Presence worker starting",
		"interval", w.interval.String(),
		"messages", len(w.messages))

	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *PresenceWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.doneCh
	logging.Default().Info("Presence worker stopped")
}

func (w *PresenceWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.rotate(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.rotate(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

// rotate sets the next message. The index advances even on failure so a
// rejected message does not pin the rotation.
func (w *PresenceWorker) rotate(ctx context.Context) {
	text := w.messages[w.next%len(w.messages)]
	w.next++

	if err := w.updater.UpdatePresence(ctx, text); err != nil {
		if errors.Is(err, discord.ErrGatewayUnavailable) {
			logging.Default().Debug("Skipping presence update while disconnected")
			return
		}
		logging.Default().Warn("Presence update failed (will retry next interval)",
			"text", text,
			"error", err.Error())
	}
}
