package connector

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zostay/slackchat/internal/logger"
)

// ReadMarker throttles mark-read calls against the directory API to at most
// one per interval. Marking is a side channel: it never gates message
// processing, and a failed remote call is logged and forgotten.
type ReadMarker struct {
	client   DirectoryClient
	interval time.Duration
	now      Clock

	mu       sync.Mutex
	lastMark time.Time
}

// NewReadMarker creates a ReadMarker with the given throttle interval.
func NewReadMarker(client DirectoryClient, interval time.Duration) *ReadMarker {
	return newReadMarkerWithClock(client, interval, time.Now)
}

func newReadMarkerWithClock(client DirectoryClient, interval time.Duration, now Clock) *ReadMarker {
	return &ReadMarker{
		client:   client,
		interval: interval,
		now:      now,
	}
}

// MaybeMarkRead marks the event's channel as read unless a mark was
// attempted within the throttle interval. The timestamp advances when the
// attempt is made, not when the remote call succeeds (fire-and-forget).
func (m *ReadMarker) MaybeMarkRead(ctx context.Context, ev InboundEvent) {
	m.mu.Lock()
	now := m.now()
	if now.Sub(m.lastMark) < m.interval {
		m.mu.Unlock()
		return
	}
	m.lastMark = now
	m.mu.Unlock()

	kind := KindOf(ev.Channel)
	if err := m.client.MarkRead(ctx, kind, ev.Channel, ev.Timestamp); err != nil {
		logger.WithFields(logrus.Fields{
			"channel": ev.Channel,
			"kind":    kind.String(),
			"error":   err,
		}).Warn("failed-to-mark-channel-read")
	}
}
