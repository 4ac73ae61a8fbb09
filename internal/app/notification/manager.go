// Package notification fans playback events out to subscribers.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/barplayer/internal/app/playback"
)

// sendTimeout bounds one subscriber send.
const sendTimeout = 500 * time.Millisecond

// Notification is a sequenced playback event.
type Notification struct {
	SequenceNo uint64
	Time       time.Time
	Event      playback.Event
}

// Stream receives notifications for one subscriber.
type Stream interface {
	Send(n Notification) error
}

// StreamFunc adapts a function to a Stream.
type StreamFunc func(n Notification) error

// Send calls f(n).
func (f StreamFunc) Send(n Notification) error {
	return f(n)
}

// subscription represents a subscriber's subscription.
type subscription struct {
	id     string
	stream Stream
}

// Manager manages notification subscriptions and broadcasting.
type Manager struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	sequenceNo    uint64
	sequenceNoMu  sync.Mutex
}

// NewManager creates a new notification manager.
func NewManager() *Manager {
	return &Manager{
		subscriptions: make(map[string]*subscription),
	}
}

// Subscribe adds a new subscription and returns the subscription ID.
func (m *Manager) Subscribe(stream Stream) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions[id] = &subscription{
		id:     id,
		stream: stream,
	}
	return id
}

// Unsubscribe removes a subscription.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscriptions, subscriptionID)
}

// Broadcast sends an event to all subscribers and returns the notification.
// Sends run in parallel, each bounded by a timeout.
func (m *Manager) Broadcast(e playback.Event) Notification {
	m.sequenceNoMu.Lock()
	m.sequenceNo++
	n := Notification{SequenceNo: m.sequenceNo, Time: time.Now(), Event: e}
	m.sequenceNoMu.Unlock()

	m.mu.RLock()
	// Copy subscriptions to avoid holding lock during sends
	subs := make([]*subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		subs = append(subs, sub)
	}
	m.mu.RUnlock()

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(s *subscription) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			defer cancel()

			done := make(chan error, 1)
			go func() {
				done <- s.stream.Send(n)
			}()

			select {
			case err := <-done:
				if err != nil {
					zlog.Warn().Msgf("notification: send failed: subscription=%s seq=%d error=%v", s.id, n.SequenceNo, err)
				}
			case <-ctx.Done():
				zlog.Warn().Msgf("notification: send timed out: subscription=%s seq=%d", s.id, n.SequenceNo)
			}
		}(sub)
	}

	// Wait for all sends to complete or timeout
	wg.Wait()
	return n
}

// Forward broadcasts every event from events until the channel is closed.
func (m *Manager) Forward(events <-chan playback.Event) {
	for e := range events {
		m.Broadcast(e)
	}
}

// Close removes all subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = make(map[string]*subscription)
}

// LogStream logs every notification.
var LogStream = StreamFunc(func(n Notification) error {
	e := n.Event
	title := ""
	if e.Track != nil {
		title = e.Track.Title
	}
	zlog.Info().Msgf("Playback event: seq=%d type=%s session=%s index=%d track=%q state=%s",
		n.SequenceNo, e.Type, e.SessionID, e.Index, title, e.State)
	return nil
})
