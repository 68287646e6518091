// Package notice is the portal's transient notification center. Every
// controller surfaces user-visible outcomes through it; notices dismiss
// themselves after their TTL so a stale banner never lingers.
package notice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

type Notice struct {
	ID   string    `json:"id"`
	Kind Kind      `json:"kind"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// DefaultTTL matches the auto-dismiss delay of the portal's toast banners.
const DefaultTTL = 4 * time.Second

type Center struct {
	mu         sync.Mutex
	defaultTTL time.Duration
	notices    []Notice
	timers     map[string]*time.Timer
	now        func() time.Time
}

// NewCenter builds a center whose Push falls back to defaultTTL when the
// caller passes none; zero or negative selects DefaultTTL.
func NewCenter(defaultTTL time.Duration) *Center {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Center{
		defaultTTL: defaultTTL,
		timers:     make(map[string]*time.Timer),
		now:        time.Now,
	}
}

// Push adds a notice that auto-dismisses after ttl (the center's default
// when ttl is zero or negative) and returns its id.
func (c *Center) Push(kind Kind, text string, ttl time.Duration) string {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	n := Notice{
		ID:   uuid.NewString(),
		Kind: kind,
		Text: text,
		At:   c.now(),
	}
	c.notices = append(c.notices, n)
	c.timers[n.ID] = time.AfterFunc(ttl, func() { c.Dismiss(n.ID) })
	return n.ID
}

// Dismiss removes a notice ahead of its TTL. Unknown ids are a no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.notices {
		if n.ID == id {
			c.notices = append(c.notices[:i], c.notices[i+1:]...)
			return
		}
	}
}

// Active returns the live notices, oldest first.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}
