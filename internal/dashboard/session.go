package dashboard

import (
	"math"
	"time"

	cmap "github.com/orcaman/concurrent-map"
)

// Session is the refresh state of one browser session.
type Session struct {
	ID          string
	CreatedAt   time.Time
	LastSeen    time.Time
	LastRefresh time.Time
	Refreshes   int
}

type RefreshState struct {
	Session Session
	// Refreshed is true when this render is the first one past the
	// refresh interval.
	Refreshed   bool
	ReloadAfter time.Duration
}

// SessionStore keeps per-session refresh state. Sessions never share state.
type SessionStore struct {
	sessions cmap.ConcurrentMap
	interval time.Duration
}

func NewSessionStore(interval time.Duration) *SessionStore {
	return &SessionStore{
		sessions: cmap.New(),
		interval: interval,
	}
}

// Touch records a render for the session and reports whether the refresh
// interval has elapsed since its last refresh. The refresh check happens only
// here, once per render, so the effective cadence is at least the interval.
func (s *SessionStore) Touch(id string, now time.Time) RefreshState {
	refreshed := false

	res := s.sessions.Upsert(id, nil, func(exist bool, inMap interface{}, _ interface{}) interface{} {
		if !exist {
			return Session{ID: id, CreatedAt: now, LastSeen: now, LastRefresh: now}
		}
		sess := inMap.(Session)
		sess.LastSeen = now
		if now.Sub(sess.LastRefresh) > s.interval {
			sess.LastRefresh = now
			sess.Refreshes++
			refreshed = true
		}
		return sess
	})

	sess := res.(Session)
	return RefreshState{
		Session:     sess,
		Refreshed:   refreshed,
		ReloadAfter: reloadAfter(s.interval - now.Sub(sess.LastRefresh)),
	}
}

// Get returns a copy of the session state.
func (s *SessionStore) Get(id string) (Session, bool) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return Session{}, false
	}
	return v.(Session), true
}

func (s *SessionStore) Count() int {
	return s.sessions.Count()
}

// Sweep drops sessions not seen for longer than idle and returns how many
// were removed.
func (s *SessionStore) Sweep(now time.Time, idle time.Duration) int {
	var stale []string
	s.sessions.IterCb(func(key string, v interface{}) {
		if now.Sub(v.(Session).LastSeen) > idle {
			stale = append(stale, key)
		}
	})
	for _, id := range stale {
		s.sessions.Remove(id)
	}
	return len(stale)
}

// reloadAfter rounds d up to whole seconds, at least one.
func reloadAfter(d time.Duration) time.Duration {
	secs := math.Ceil(d.Seconds())
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}
