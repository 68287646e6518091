package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/controller/appointment"
	"github.com/jwalitptl/clinic-portal/internal/controller/booking"
	"github.com/jwalitptl/clinic-portal/internal/controller/chat"
	"github.com/jwalitptl/clinic-portal/internal/controller/schedule"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/internal/session"
)

const (
	sessionCookie = "portal_sid"
	contextState  = "ui_state"
)

// UIState is everything one browser session's views hold: form buffers,
// pagination cursors, edit buffers, notices, chat transcript. It mirrors
// what a single-page client keeps in memory; the backend remains the only
// durable store.
type UIState struct {
	mu sync.Mutex

	// Client is this browser session's own backend client. It carries a
	// private cookie jar; backend credentials never cross sessions.
	Client       *apiclient.Client
	Session      session.Session
	Notices      *notice.Center
	Booking      *booking.Form
	Schedule     *schedule.View
	Appointments *appointment.Table
	Chat         *chat.Widget
}

// SetSession swaps the immutable session value in or out.
func (s *UIState) SetSession(sess session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Session = sess
}

func (s *UIState) CurrentSession() session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Session
}

// Registry keeps per-browser-session UI state with idle expiry, so an
// abandoned tab's buffers do not pile up for the life of the process.
type Registry struct {
	states   *cache.Cache
	newState func() *UIState
}

func NewRegistry(ttl time.Duration, newState func() *UIState) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Registry{
		states:   cache.New(ttl, 10*time.Minute),
		newState: newState,
	}
}

// Middleware binds the request to its UI state, minting the session cookie
// on first contact.
func (r *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, 0, "/", "", false, true)
		}

		state, ok := r.states.Get(sid)
		if !ok {
			state = r.newState()
		}
		// Sliding expiry: every touch restarts the idle clock.
		r.states.SetDefault(sid, state)

		c.Set(contextState, state)
		c.Next()
	}
}

// Drop discards a session's UI state entirely (used by logout).
func (r *Registry) Drop(c *gin.Context) {
	if sid, err := c.Cookie(sessionCookie); err == nil && sid != "" {
		r.states.Delete(sid)
	}
}

func stateFrom(c *gin.Context) *UIState {
	v, ok := c.Get(contextState)
	if !ok {
		// The registry middleware is mounted ahead of every route; a miss
		// here is a programming error.
		c.AbortWithStatusJSON(http.StatusInternalServerError, NewErrorResponse("session state missing"))
		return nil
	}
	return v.(*UIState)
}
