package session

import (
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

var (
	ErrUnknownRequest   = crerr.New("unknown login request")
	ErrDuplicateRequest = crerr.New("login request id already exists")
	ErrAlreadyCompleted = crerr.New("login request already completed")
)

func IsDuplicate(err error) bool {
	return crerr.Is(err, ErrDuplicateRequest)
}

// LoginRequest is the observable state of one login attempt. SessionID is
// set only on success, Error only on failure.
type LoginRequest struct {
	ID        string
	Status    Status
	CreatedAt time.Time
	SessionID string
	Error     string
}

// Store tracks pending login requests and the active sessions they produce.
// C is the authenticated client handle an active session resolves to.
//
// A request transitions exactly once, pending to success or failed; a second
// completion is rejected rather than overwriting the terminal state. Active
// sessions live for the process lifetime, so there is no removal path.
type Store[C any] struct {
	mu       sync.RWMutex
	requests map[string]*LoginRequest
	sessions map[string]C
	now      func() time.Time
}

func NewStore[C any]() *Store[C] {
	return &Store[C]{
		requests: make(map[string]*LoginRequest),
		sessions: make(map[string]C),
		now:      time.Now,
	}
}

// CreateLoginRequest registers a new pending request under the given id.
func (s *Store[C]) CreateLoginRequest(requestID string) error {
	if requestID == "" {
		return crerr.New("login request id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[requestID]; exists {
		return crerr.Wrapf(ErrDuplicateRequest, "request %s", requestID)
	}

	s.requests[requestID] = &LoginRequest{
		ID:        requestID,
		Status:    StatusPending,
		CreatedAt: s.now(),
	}

	return nil
}

// CompleteSuccess transitions a pending request to success, binding the
// session id to the authenticated client handle.
func (s *Store[C]) CompleteSuccess(requestID, sessionID string, client C) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.pendingLocked(requestID)
	if err != nil {
		return err
	}

	req.Status = StatusSuccess
	req.SessionID = sessionID
	s.sessions[sessionID] = client

	return nil
}

// CompleteFailure transitions a pending request to failed with a
// human-readable reason.
func (s *Store[C]) CompleteFailure(requestID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.pendingLocked(requestID)
	if err != nil {
		return err
	}

	req.Status = StatusFailed
	req.Error = reason

	return nil
}

func (s *Store[C]) pendingLocked(requestID string) (*LoginRequest, error) {
	req, ok := s.requests[requestID]
	if !ok {
		return nil, crerr.Wrapf(ErrUnknownRequest, "request %s", requestID)
	}
	if req.Status != StatusPending {
		return nil, crerr.Wrapf(ErrAlreadyCompleted, "request %s is %s", requestID, req.Status)
	}

	return req, nil
}

// Lookup returns the state of a login request. An unknown id is an error,
// distinct from a request that is still pending.
func (s *Store[C]) Lookup(requestID string) (LoginRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[requestID]
	if !ok {
		return LoginRequest{}, crerr.Wrapf(ErrUnknownRequest, "request %s", requestID)
	}

	return *req, nil
}

// Client resolves an active session id to its client handle.
func (s *Store[C]) Client(sessionID string) (C, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.sessions[sessionID]
	return client, ok
}

// SessionCount reports how many sessions are active, for diagnostics.
func (s *Store[C]) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
