package poll

import (
	"context"
	"errors"
	"sync"
	"time"

	"campusbooks/backend/pkg/logger"
)

// DefaultInterval is the period between history re-fetches.
const DefaultInterval = 3 * time.Second

// ErrSendInFlight is returned when Send is called while a previous send has
// not completed.
var ErrSendInFlight = errors.New("a send is already in flight")

// SessionConfig configures a polling session.
type SessionConfig struct {
	// Interval between polls; DefaultInterval when zero.
	Interval time.Duration
	// OnUpdate is invoked with a snapshot whenever local state changes.
	OnUpdate func([]Message)
}

// Session keeps a local view of one room's messages via periodic polling.
//
// The poll only replaces local state when the fetched history is longer
// than the local one. A server-side change that keeps the count equal (not
// possible through this API, which has no edit or delete) would therefore
// never be observed; this is an accepted limitation of the protocol, traded
// for cheap change detection.
type Session struct {
	client *Client
	roomID uint

	interval time.Duration
	onUpdate func([]Message)
	log      *logger.Logger

	mu       sync.Mutex
	messages []Message
	sending  bool
}

// NewSession creates a session for the given room. Run must be called to
// start polling.
func NewSession(client *Client, roomID uint, config SessionConfig, log *logger.Logger) *Session {
	interval := config.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.GetGlobal()
	}
	return &Session{
		client:   client,
		roomID:   roomID,
		interval: interval,
		onUpdate: config.OnUpdate,
		log:      log,
	}
}

// Run performs one synchronous initial fetch and then polls on the
// configured interval until ctx is cancelled. The initial fetch failing is
// returned as an error; a failed poll keeps the previous state and retries
// on the next tick.
func (s *Session) Run(ctx context.Context) error {
	initial, err := s.client.ListMessages(ctx, s.roomID)
	if err != nil {
		return err
	}
	s.replace(initial)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *Session) poll(ctx context.Context) {
	fetched, err := s.client.ListMessages(ctx, s.roomID)
	if err != nil {
		s.log.Warn("poll failed, keeping previous state", "room_id", s.roomID, "error", err.Error())
		return
	}

	s.mu.Lock()
	grown := len(fetched) > len(s.messages)
	if grown {
		s.messages = fetched
	}
	s.mu.Unlock()

	if grown {
		s.notify()
	}
}

// Send submits a message. The session accepts one send at a time; the
// in-flight flag is released whether the send succeeds or fails. On success
// the stored message is merged into local state immediately rather than
// waiting for the next poll. On failure the error is returned so the caller
// can restore the typed text.
func (s *Session) Send(ctx context.Context, content string) error {
	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return ErrSendInFlight
	}
	s.sending = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	message, err := s.client.SendMessage(ctx, s.roomID, content)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Messages returns a snapshot of the current local state.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Message, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

func (s *Session) replace(messages []Message) {
	s.mu.Lock()
	s.messages = messages
	s.mu.Unlock()
	s.notify()
}

func (s *Session) notify() {
	if s.onUpdate != nil {
		s.onUpdate(s.Messages())
	}
}
