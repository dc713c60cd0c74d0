package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Fixed bot-side texts. The farewell mirrors the server's own goodbye
// wording so the conversation reads consistently.
const (
	TypingText   = "Typing..."
	OfflineText  = "I can't reach the Industrial Training assistant right now. Please check your connection and send your question again."
	FarewellText = "Thanks for chatting! If you have more questions, just ask anytime."
	OnlineNotice = "Connection restored."
	LostNotice   = "Connection lost. Messages can't be sent until it comes back."
)

// ErrBusy is returned when a send is attempted while another one is
// still in flight. The UI disables input during a send, so hitting this
// means the caller bypassed that guard.
var ErrBusy = errors.New("a message is already in flight")

// ErrClosed is returned from Send after the session has been disposed.
var ErrClosed = errors.New("session is closed")

// EventKind tags session events consumed by the UI.
type EventKind int

const (
	// EventTimeline: the message log changed; re-render and follow the tail.
	EventTimeline EventKind = iota
	// EventSuggestions: show the carried batch, or hide the panel when nil.
	EventSuggestions
	// EventLiveness: the online/offline state flipped.
	EventLiveness
)

type Event struct {
	Kind        EventKind
	TopicID     string
	Suggestions []string
	Online      bool
}

// SessionConfig carries the timing and sizing knobs of the conversation
// pipeline. Tests shrink the durations; production uses the defaults.
type SessionConfig struct {
	SuggestCount  int
	MaxAttempts   int
	RetryDelay    time.Duration
	RedrawDelay   time.Duration
	IdleTimeout   time.Duration
	ProbeInterval time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		SuggestCount:  3,
		MaxAttempts:   3,
		RetryDelay:    time.Second,
		RedrawDelay:   400 * time.Millisecond,
		IdleTimeout:   5 * time.Minute,
		ProbeInterval: 10 * time.Second,
	}
}

// Session owns one conversation: the message timeline, the suggestion
// rotation, the liveness monitor, and the send pipeline with its retry
// policy and idle re-engagement timer. Construct with NewSession, call
// Start, and Close when the conversation ends; Close deterministically
// stops the polling loop and the idle timer.
type Session struct {
	cfg     SessionConfig
	backend Backend
	log     *zap.Logger

	timeline *Timeline
	pool     *SuggestionPool
	monitor  *Monitor

	mu           sync.Mutex
	pendingTopic string
	inFlight     bool
	idleTimer    *time.Timer
	closed       bool

	events   chan Event
	closedCh chan struct{}
}

func NewSession(cfg SessionConfig, backend Backend, topics []Topic, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultSessionConfig()
	if cfg.SuggestCount <= 0 {
		cfg.SuggestCount = def.SuggestCount
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.RedrawDelay < 0 {
		cfg.RedrawDelay = def.RedrawDelay
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.ProbeInterval <= 0 {
		cfg.ProbeInterval = def.ProbeInterval
	}

	s := &Session{
		cfg:      cfg,
		backend:  backend,
		log:      logger,
		timeline: NewTimeline(),
		pool:     NewSuggestionPool(topics),
		events:   make(chan Event, 64),
		closedCh: make(chan struct{}),
	}
	s.monitor = NewMonitor(backend.Health, cfg.ProbeInterval, s.onLivenessEdge)
	s.timeline.OnChange(func() { s.emit(Event{Kind: EventTimeline}) })
	return s
}

// Timeline exposes the conversation log for rendering.
func (s *Session) Timeline() *Timeline { return s.timeline }

// Pool exposes the suggestion rotation, mainly so the UI can list topics
// and draw an initial batch.
func (s *Session) Pool() *SuggestionPool { return s.pool }

// Online reports the monitor's last known state.
func (s *Session) Online() bool { return s.monitor.IsOnline() }

// Events is the stream the UI drains. Events are dropped rather than
// blocking the pipeline if the consumer falls behind.
func (s *Session) Events() <-chan Event { return s.events }

// PendingTopic returns the current topic context, empty when the user is
// at the top-level menu.
func (s *Session) PendingTopic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingTopic
}

// EnterTopic sets the topic context explicitly (the user picked a topic
// from the menu) and returns a fresh suggestion batch for it.
func (s *Session) EnterTopic(topicID string) []string {
	if _, ok := s.pool.Topic(topicID); !ok {
		return nil
	}
	s.mu.Lock()
	s.pendingTopic = topicID
	s.mu.Unlock()
	batch := s.pool.NextBatch(topicID, s.cfg.SuggestCount, nil)
	s.emit(Event{Kind: EventSuggestions, TopicID: topicID, Suggestions: batch})
	return batch
}

// LeaveTopic clears the topic context, backing out to the top-level menu.
func (s *Session) LeaveTopic() {
	s.mu.Lock()
	s.pendingTopic = ""
	s.mu.Unlock()
	s.emit(Event{Kind: EventSuggestions})
}

// Start begins liveness polling and arms the idle timer.
func (s *Session) Start() {
	s.monitor.Start()
	s.mu.Lock()
	s.armIdleLocked()
	s.mu.Unlock()
}

// Close stops the polling loop and the idle timer and unblocks any
// pipeline waits. Subsequent sends fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
	s.mu.Unlock()
	close(s.closedCh)
	s.monitor.Stop()
}

// Send runs the full pipeline for one user message. forcedTopic is set
// when the text came from a suggestion button rather than free typing
// and overrides keyword detection. At most one send may be in flight;
// concurrent calls fail with ErrBusy.
func (s *Session) Send(ctx context.Context, text string, forcedTopic string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	s.inFlight = true
	// Any send counts as activity: the idle timer rearms when the
	// pipeline finishes, whatever the outcome.
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
	topic := s.resolveTopicLocked(text, forcedTopic)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		if !s.closed {
			s.armIdleLocked()
		}
		s.mu.Unlock()
	}()

	// The suggestion panel hides while the exchange is in progress.
	s.emit(Event{Kind: EventSuggestions})
	s.timeline.Append(RoleUser, text)

	if !s.monitor.Probe(ctx) {
		// No retry budget is spent while the backend is known dead; the
		// user retries manually, so suggestions are not re-shown either.
		s.timeline.Append(RoleBot, OfflineText)
		return nil
	}

	placeholderID := s.timeline.AppendPlaceholder(RoleBot, TypingText)

	reply, lastErr := s.askWithRetry(ctx, text)
	s.timeline.RemovePlaceholder(placeholderID)

	if lastErr != nil {
		s.monitor.MarkOnline(false)
		s.timeline.Append(RoleBot, fmt.Sprintf("Sorry, I couldn't reach the assistant (%v). Please try again in a moment.", lastErr))
		s.log.Warn("chat request failed", zap.String("topic", topic), zap.Error(lastErr))
	} else {
		s.monitor.MarkOnline(true)
		s.timeline.Append(RoleBot, reply)
	}

	// Let the reply render before the panel redraws. The just-asked
	// question is excluded so it is not immediately offered back.
	if !s.sleep(ctx, s.cfg.RedrawDelay) {
		return nil
	}
	if topic != "" {
		batch := s.pool.NextBatch(topic, s.cfg.SuggestCount, []string{text})
		s.emit(Event{Kind: EventSuggestions, TopicID: topic, Suggestions: batch})
	}
	return nil
}

// askWithRetry performs up to MaxAttempts chat attempts with a fixed
// pause between them. Every failure kind spends one attempt; the overall
// budget stays bounded (3 x 10s attempts + 2 x 1s pauses by default).
func (s *Session) askWithRetry(ctx context.Context, text string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		reply, err := s.backend.Ask(ctx, text)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		s.log.Info("chat attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.cfg.MaxAttempts),
			zap.Error(err))
		if attempt < s.cfg.MaxAttempts {
			if !s.sleep(ctx, s.cfg.RetryDelay) {
				return "", lastErr
			}
		}
	}
	return "", lastErr
}

// resolveTopicLocked applies the sticky-topic rule: a forced topic wins,
// then keyword detection, then whatever topic the user was already in.
func (s *Session) resolveTopicLocked(text, forcedTopic string) string {
	if _, ok := s.pool.Topic(forcedTopic); ok {
		s.pendingTopic = forcedTopic
		return forcedTopic
	}
	if id, ok := s.pool.Detect(text); ok {
		s.pendingTopic = id
		return id
	}
	return s.pendingTopic
}

func (s *Session) armIdleLocked() {
	s.idleTimer = time.AfterFunc(s.cfg.IdleTimeout, s.idleFire)
}

// idleFire appends the farewell exactly once per idle period. It does
// not rearm itself: only a user send does, which keeps an unattended
// session from repeating goodbyes forever.
func (s *Session) idleFire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.idleTimer = nil
	s.mu.Unlock()
	s.timeline.Append(RoleBot, FarewellText)
}

func (s *Session) onLivenessEdge(online bool) {
	if online {
		s.timeline.Append(RoleBot, OnlineNotice)
	} else {
		s.timeline.Append(RoleBot, LostNotice)
	}
	s.emit(Event{Kind: EventLiveness, Online: online})
}

// sleep waits for d unless the context is done or the session closes
// first; it reports whether the full wait elapsed.
func (s *Session) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	case <-s.closedCh:
		return false
	}
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		// The UI drains this channel; dropping under backpressure beats
		// stalling the pipeline.
	}
}
