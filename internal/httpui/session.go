package httpui

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-surveyform/pkg/session"
	"github.com/goliatone/go-surveyform/pkg/submit"
)

const sessionCookie = "surveyform_session"

// Session is one respondent's state: their answer store, consent and
// declaration flags, the dev mode switch, and any artifacts produced by a
// submission attempt. Artifacts survive a failed email dispatch so the
// downloads stay available.
type Session struct {
	ID    string
	Store *session.Store

	mu                  sync.Mutex
	DevMode             bool
	ConsentName         string
	ConsentAccepted     bool
	DeclarationAccepted bool
	Artifacts           *submit.Artifacts
	Analytics           []byte
	AnalyticsName       string
	DispatchError       string
}

// Update runs fn while holding the session lock.
func (s *Session) Update(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// Snapshot returns a copy of the mutable fields for safe reads.
func (s *Session) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Session{
		ID:                  s.ID,
		Store:               s.Store,
		DevMode:             s.DevMode,
		ConsentName:         s.ConsentName,
		ConsentAccepted:     s.ConsentAccepted,
		DeclarationAccepted: s.DeclarationAccepted,
		Artifacts:           s.Artifacts,
		Analytics:           s.Analytics,
		AnalyticsName:       s.AnalyticsName,
		DispatchError:       s.DispatchError,
	}
}

// Manager tracks sessions by cookie id. Sessions live in memory for the
// duration of the process, matching the single-sitting survey flow.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: map[string]*Session{}}
}

// Get returns the session for the request cookie, creating one (and setting
// the cookie) when none exists.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		m.mu.RLock()
		sess, ok := m.sessions[c.Value]
		m.mu.RUnlock()
		if ok {
			return sess
		}
	}

	sess := &Session{
		ID:    uuid.NewString(),
		Store: session.NewStore(),
	}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Reset clears a session's answers and flags but keeps its id, so the
// respondent can start over without losing their cookie.
func (m *Manager) Reset(sess *Session) {
	sess.Update(func(s *Session) {
		s.Store = session.NewStore()
		s.ConsentName = ""
		s.ConsentAccepted = false
		s.DeclarationAccepted = false
		s.Artifacts = nil
		s.Analytics = nil
		s.AnalyticsName = ""
		s.DispatchError = ""
	})
}
