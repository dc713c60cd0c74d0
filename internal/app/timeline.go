package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is a single timeline entry. ID is set only on transient
// placeholder messages so they can be removed once real content arrives;
// ordinary messages are immutable once appended.
type Message struct {
	Role      Role
	Text      string
	ID        string
	Timestamp time.Time
}

// Timeline is the ordered conversation log. Entries are append-only; the
// only removal permitted is a placeholder, located by id. A change hook
// lets the view follow the newest entry.
type Timeline struct {
	mu       sync.Mutex
	msgs     []Message
	onChange func()
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// OnChange registers a hook invoked after every append or removal. The
// hook runs outside the timeline lock.
func (t *Timeline) OnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Append adds an ordinary message to the end of the timeline.
func (t *Timeline) Append(role Role, text string) {
	t.mu.Lock()
	t.msgs = append(t.msgs, Message{Role: role, Text: text, Timestamp: time.Now()})
	fn := t.onChange
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// AppendPlaceholder adds a transient message and returns the generated id
// used to remove it later.
func (t *Timeline) AppendPlaceholder(role Role, text string) string {
	id := uuid.NewString()
	t.mu.Lock()
	t.msgs = append(t.msgs, Message{Role: role, Text: text, ID: id, Timestamp: time.Now()})
	fn := t.onChange
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
	return id
}

// RemovePlaceholder deletes the message with the given id. A missing id is
// a no-op: the placeholder may have been cleared already.
func (t *Timeline) RemovePlaceholder(id string) {
	if id == "" {
		return
	}
	t.mu.Lock()
	var fn func()
	for i, m := range t.msgs {
		if m.ID == id {
			t.msgs = append(t.msgs[:i], t.msgs[i+1:]...)
			fn = t.onChange
			break
		}
	}
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Messages returns a copy of the timeline in append order.
func (t *Timeline) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}

func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.msgs)
}
