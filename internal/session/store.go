package session

import (
	"errors"
	"sync"
	"time"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/google/uuid"
)

// ErrTurnInProgress is returned when a second turn arrives for a session
// whose previous turn has not finished yet.
var ErrTurnInProgress = errors.New("a turn for this session is already being processed")

type entry struct {
	session  domain.Session
	inFlight bool
}

// Store keeps one booking state machine per session id, in memory. All methods
// are safe for concurrent use; turns for a single id are serialized through
// BeginTurn/EndTurn.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	window   int
	now      func() time.Time
}

func NewStore(historyWindow int) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		window:   historyWindow,
		now:      time.Now,
	}
}

func (s *Store) HistoryWindow() int {
	return s.window
}

// Get returns a copy of the session for id, creating it with default state on
// first reference.
func (s *Store) Get(id string) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id).session
}

// BeginTurn marks the session as having an in-flight turn and returns a copy
// of its current state. A second concurrent turn for the same id is rejected
// with ErrTurnInProgress rather than interleaved.
func (s *Store) BeginTurn(id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.getLocked(id)
	if e.inFlight {
		return domain.Session{}, ErrTurnInProgress
	}
	e.inFlight = true
	return e.session, nil
}

// EndTurn releases the in-flight marker set by BeginTurn.
func (s *Store) EndTurn(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[id]; ok {
		e.inFlight = false
	}
}

// Update atomically replaces the booking state and turn history for id.
// An id with no entry is left absent: writing it back would resurrect a
// session that Reset already discarded.
func (s *Store) Update(id string, session domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return
	}
	session.ID = id
	session.LastActivity = s.now()
	e.session = session
}

// Reset discards the session for id and issues a fresh identifier with
// default state. A reset is a turn like any other: while a turn for id is
// in flight it is rejected with ErrTurnInProgress.
func (s *Store) Reset(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok && e.inFlight {
		return "", ErrTurnInProgress
	}
	delete(s.sessions, id)
	fresh := uuid.NewString()
	s.sessions[fresh] = &entry{session: s.newSession(fresh)}
	return fresh, nil
}

func (s *Store) getLocked(id string) *entry {
	e, ok := s.sessions[id]
	if !ok {
		e = &entry{session: s.newSession(id)}
		s.sessions[id] = e
	}
	return e
}

func (s *Store) newSession(id string) domain.Session {
	return domain.Session{
		ID:           id,
		State:        domain.NewBookingState(),
		LastActivity: s.now(),
	}
}
