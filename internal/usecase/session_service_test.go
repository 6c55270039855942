package usecase

import (
	stderrors "errors"
	"testing"

	"github.com/riskibarqy/fpl-assistant/internal/domain/session"
	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

func newTestSessions(auth Authenticator, ids *staticIDGenerator) *SessionService {
	return NewSessionService(
		session.NewStore[Session](),
		auth,
		&fakeGateway{},
		ids,
		logging.NewNop(),
		"http://localhost:8000/",
	)
}

func TestBeginLogin_ReturnsRequestIDAndURL(t *testing.T) {
	service := newTestSessions(stubAuthenticator{token: "tok"}, &staticIDGenerator{ids: []string{"req-1"}})

	requestID, url, err := service.BeginLogin(t.Context())
	if err != nil {
		t.Fatalf("begin login: %v", err)
	}
	if requestID != "req-1" {
		t.Fatalf("expected req-1, got %s", requestID)
	}
	if url != "http://localhost:8000/login/req-1" {
		t.Fatalf("unexpected login url %s", url)
	}

	status, err := service.Status(requestID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != session.StatusPending {
		t.Fatalf("expected pending, got %s", status.Status)
	}
}

func TestCompleteLogin_BindsSession(t *testing.T) {
	service := newTestSessions(stubAuthenticator{token: "tok"}, &staticIDGenerator{ids: []string{"req-1", "sess-1"}})

	requestID, _, err := service.BeginLogin(t.Context())
	if err != nil {
		t.Fatalf("begin login: %v", err)
	}

	if err := service.CompleteLogin(t.Context(), requestID, "user@example.test", "hunter2", 42); err != nil {
		t.Fatalf("complete login: %v", err)
	}

	status, err := service.Status(requestID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != session.StatusSuccess || status.SessionID != "sess-1" {
		t.Fatalf("expected bound success, got %+v", status)
	}

	handle, err := service.SessionFor("sess-1")
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if handle.EntryID != 42 || handle.Gateway == nil {
		t.Fatalf("unexpected session handle %+v", handle)
	}
}

func TestCompleteLogin_RecordsFailedExchange(t *testing.T) {
	authErr := stderrors.New("invalid email or password")
	service := newTestSessions(stubAuthenticator{err: authErr}, &staticIDGenerator{ids: []string{"req-1"}})

	requestID, _, err := service.BeginLogin(t.Context())
	if err != nil {
		t.Fatalf("begin login: %v", err)
	}

	if err := service.CompleteLogin(t.Context(), requestID, "user@example.test", "wrong", 42); !stderrors.Is(err, authErr) {
		t.Fatalf("expected auth error back, got %v", err)
	}

	status, err := service.Status(requestID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != session.StatusFailed || status.Error == "" {
		t.Fatalf("expected recorded failure, got %+v", status)
	}
}

func TestCompleteLogin_RejectsSecondAttempt(t *testing.T) {
	service := newTestSessions(stubAuthenticator{token: "tok"}, &staticIDGenerator{ids: []string{"req-1", "sess-1", "sess-2"}})

	requestID, _, err := service.BeginLogin(t.Context())
	if err != nil {
		t.Fatalf("begin login: %v", err)
	}
	if err := service.CompleteLogin(t.Context(), requestID, "user@example.test", "hunter2", 42); err != nil {
		t.Fatalf("first complete: %v", err)
	}

	err = service.CompleteLogin(t.Context(), requestID, "user@example.test", "hunter2", 42)
	if !stderrors.Is(err, session.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestCompleteLogin_RejectsNonPositiveEntryID(t *testing.T) {
	service := newTestSessions(stubAuthenticator{token: "tok"}, &staticIDGenerator{ids: []string{"req-1"}})

	requestID, _, err := service.BeginLogin(t.Context())
	if err != nil {
		t.Fatalf("begin login: %v", err)
	}

	if err := service.CompleteLogin(t.Context(), requestID, "user@example.test", "hunter2", 0); !stderrors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSessionFor_UnknownIDIsUnauthorized(t *testing.T) {
	service := newTestSessions(stubAuthenticator{token: "tok"}, &staticIDGenerator{ids: []string{"req-1"}})

	if _, err := service.SessionFor("missing"); !stderrors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestEnsureLoginRequest_IsIdempotent(t *testing.T) {
	service := newTestSessions(stubAuthenticator{token: "tok"}, &staticIDGenerator{ids: []string{"req-1"}})

	if err := service.EnsureLoginRequest("direct-link"); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := service.EnsureLoginRequest("direct-link"); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
}
