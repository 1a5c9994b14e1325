package results

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/service/search"
)

// View is the result set a session is currently looking at. Form is the
// search form that produced it and is nil for the plain listing.
type View struct {
	Page   domain.FlightPage
	Search *domain.SearchParams
	Form   *search.Form
	Sort   SortKey
}

// Sorted returns the flights of the view in its sort order.
func (v View) Sorted() []domain.Flight {
	return Sort(v.Page.Flights, v.Sort)
}

// Ticket identifies one fetch started with Views.Begin.
type Ticket struct {
	sid    string
	seq    uint64
	cancel context.CancelFunc
}

type sessionView struct {
	seq       uint64
	cancel    context.CancelFunc
	view      View
	committed bool
	touched   time.Time
}

// Views keeps per-session result state. Each new fetch supersedes the one
// before it: Begin cancels the older call and Commit ignores results whose
// ticket is no longer the latest.
type Views struct {
	mu       sync.Mutex
	sessions map[string]*sessionView
	idleTTL  time.Duration
	now      func() time.Time
}

type ViewsOption func(*Views)

// WithIdleTTL evicts a session's view once it has not been used for d.
// Zero keeps views until they are dropped.
func WithIdleTTL(d time.Duration) ViewsOption {
	return func(v *Views) {
		v.idleTTL = d
	}
}

func NewViews(opts ...ViewsOption) *Views {
	v := &Views{sessions: make(map[string]*sessionView), now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Views) get(sid string) *sessionView {
	s, ok := v.sessions[sid]
	if !ok {
		s = &sessionView{}
		v.sessions[sid] = s
	}
	s.touched = v.now()
	return s
}

// lookup returns the live entry for sid, evicting it when idle too long.
func (v *Views) lookup(sid string) (*sessionView, bool) {
	s, ok := v.sessions[sid]
	if !ok {
		return nil, false
	}
	now := v.now()
	if v.expired(s, now) {
		v.evict(sid, s)
		return nil, false
	}
	s.touched = now
	return s, true
}

func (v *Views) expired(s *sessionView, now time.Time) bool {
	return v.idleTTL > 0 && now.Sub(s.touched) > v.idleTTL
}

func (v *Views) evict(sid string, s *sessionView) {
	if s.cancel != nil {
		s.cancel()
	}
	delete(v.sessions, sid)
}

// sweep evicts every idle entry. Called with mu held.
func (v *Views) sweep() {
	if v.idleTTL <= 0 {
		return
	}
	now := v.now()
	for sid, s := range v.sessions {
		if v.expired(s, now) {
			v.evict(sid, s)
		}
	}
}

// Len is the number of sessions with view state.
func (v *Views) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.sessions)
}

// Begin starts a fetch for sid and returns the context it must run under.
func (v *Views) Begin(ctx context.Context, sid string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.sweep()
	s := v.get(sid)
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	s.cancel = cancel
	return ctx, Ticket{sid: sid, seq: s.seq, cancel: cancel}
}

// Commit stores view if t is still the latest ticket for its session.
func (v *Views) Commit(t Ticket, view View) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.lookup(t.sid)
	if !ok || s.seq != t.seq {
		return false
	}
	s.view = view
	s.committed = true
	return true
}

// Release ends the fetch of t. It must be called once the fetch returns.
func (v *Views) Release(t Ticket) {
	t.cancel()
	v.mu.Lock()
	defer v.mu.Unlock()
	if s, ok := v.sessions[t.sid]; ok && s.seq == t.seq {
		s.cancel = nil
	}
}

func (v *Views) Current(sid string) (View, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.lookup(sid)
	if !ok || !s.committed {
		return View{}, false
	}
	return s.view, true
}

// Resort changes the sort key of the committed view without refetching.
func (v *Views) Resort(sid string, key SortKey) (View, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.lookup(sid)
	if !ok || !s.committed {
		return View{}, false
	}
	s.view.Sort = key
	return s.view, true
}

// Drop forgets sid and cancels its in-flight fetch, if any.
func (v *Views) Drop(sid string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s, ok := v.sessions[sid]; ok {
		v.evict(sid, s)
	}
}
