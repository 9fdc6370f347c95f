package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/store"

	"estimatebuilder/services"
)

const (
	SessionCookie = "estimate_session"
	maxSessions   = 10000

	// Sessions untouched for this long are dropped to make room for new ones.
	sessionIdleTimeout = 12 * time.Hour
)

const SessionKey contextKey = "estimateSession"

type contextKey string

var errTooManySessions = errors.New("session limit reached")

// Session owns one browser's estimate. Requests of the same browser may
// arrive concurrently, so every access goes through With.
type Session struct {
	ID string

	lastSeen atomic.Int64 // unix nanoseconds

	mu           sync.Mutex
	estimate     *services.Estimate
	importErrors []services.ImportError
}

// With runs fn while holding the session lock.
func (s *Session) With(fn func(est *services.Estimate) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.estimate)
}

// Replace swaps in a fresh estimate.
func (s *Session) Replace(est *services.Estimate) {
	s.mu.Lock()
	s.estimate = est
	s.importErrors = nil
	s.mu.Unlock()
}

// SetImportErrors remembers the rows skipped by the last import.
func (s *Session) SetImportErrors(errs []services.ImportError) {
	s.mu.Lock()
	s.importErrors = append([]services.ImportError(nil), errs...)
	s.mu.Unlock()
}

// ImportErrors returns the rows skipped by the last import.
func (s *Session) ImportErrors() []services.ImportError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]services.ImportError(nil), s.importErrors...)
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// SessionStore keeps every live session in memory. Nothing is persisted.
// When the store is full, idle sessions are evicted first, then the least
// recently used one.
type SessionStore struct {
	sessions *store.Store[string, *Session]
	now      func() time.Time
	limit    int
	idle     time.Duration
}

func NewSessionStore(now func() time.Time) *SessionStore {
	return &SessionStore{
		sessions: store.New[string, *Session](nil),
		now:      now,
		limit:    maxSessions,
		idle:     sessionIdleTimeout,
	}
}

// Get returns the session with id and marks it as used. Sessions idle for
// longer than the timeout are dropped and reported as missing.
func (s *SessionStore) Get(id string) (*Session, bool) {
	sess, ok := s.sessions.GetOk(id)
	if !ok {
		return nil, false
	}
	now := s.now()
	if sess.idleSince(now) > s.idle {
		s.sessions.Remove(id)
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

// Create registers a new session around est.
func (s *SessionStore) Create(est *services.Estimate) (*Session, error) {
	sess := &Session{ID: uuid.NewString(), estimate: est}
	sess.touch(s.now())

	if s.sessions.SetIfLessThanLimit(sess.ID, sess, s.limit) {
		return sess, nil
	}
	if s.evict() > 0 && s.sessions.SetIfLessThanLimit(sess.ID, sess, s.limit) {
		return sess, nil
	}
	return nil, errTooManySessions
}

// evict removes every idle session or, when none is idle, the least
// recently used one. It returns the number of sessions removed.
func (s *SessionStore) evict() int {
	now := s.now()

	var removed int
	var oldest *Session
	for id, sess := range s.sessions.GetAll() {
		if sess.idleSince(now) > s.idle {
			s.sessions.Remove(id)
			removed++
			continue
		}
		if oldest == nil || sess.lastSeen.Load() < oldest.lastSeen.Load() {
			oldest = sess
		}
	}
	if removed == 0 && oldest != nil {
		log.Printf("session: evict: store full, dropping least recently used session %s", oldest.ID)
		s.sessions.Remove(oldest.ID)
		removed++
	}
	return removed
}

// Remove drops the session with id.
func (s *SessionStore) Remove(id string) {
	s.sessions.Remove(id)
}

// Len is the number of live sessions.
func (s *SessionStore) Len() int {
	return s.sessions.Length()
}

// resolveSession finds the session named by the request cookie or starts a
// new one and sets the cookie.
func resolveSession(env *Env, e *core.RequestEvent) (*Session, error) {
	if cookie, err := e.Request.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if sess, ok := env.Sessions.Get(cookie.Value); ok {
			return sess, nil
		}
		log.Printf("session: session %s not found, starting a new one", cookie.Value)
	}

	est, err := env.newEstimate()
	if err != nil {
		return nil, err
	}
	sess, err := env.Sessions.Create(est)
	if err != nil {
		return nil, err
	}

	http.SetCookie(e.Response, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// SessionMiddleware attaches the browser's session to the request context.
func SessionMiddleware(env *Env) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := resolveSession(env, e)
		if err != nil {
			log.Printf("session: SessionMiddleware: %v", err)
			return e.String(http.StatusServiceUnavailable, "Could not start an estimate session")
		}
		ctx := context.WithValue(e.Request.Context(), SessionKey, sess)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// GetSession extracts the session from the request context.
func GetSession(r *http.Request) *Session {
	if val, ok := r.Context().Value(SessionKey).(*Session); ok {
		return val
	}
	return nil
}

// currentSession returns the session set by SessionMiddleware, resolving it
// from the cookie when the middleware did not run.
func currentSession(env *Env, e *core.RequestEvent) (*Session, error) {
	if sess := GetSession(e.Request); sess != nil {
		return sess, nil
	}
	return resolveSession(env, e)
}
