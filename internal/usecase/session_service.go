package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fpl-assistant/internal/domain/session"
	"github.com/riskibarqy/fpl-assistant/internal/platform/id"
	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

// SessionService drives the login lifecycle: mint a request id, hand the
// user a login URL, exchange submitted credentials for a token, and bind
// the resulting authenticated gateway to a session.
type SessionService struct {
	store         *session.Store[Session]
	auth          Authenticator
	gateway       Gateway
	ids           id.Generator
	logger        *logging.Logger
	publicBaseURL string
}

func NewSessionService(
	store *session.Store[Session],
	auth Authenticator,
	gateway Gateway,
	ids id.Generator,
	logger *logging.Logger,
	publicBaseURL string,
) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SessionService{
		store:         store,
		auth:          auth,
		gateway:       gateway,
		ids:           ids,
		logger:        logger,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// BeginLogin creates a pending login request and returns its id plus the
// URL the user must open to enter credentials.
func (s *SessionService) BeginLogin(ctx context.Context) (string, string, error) {
	_, span := startUsecaseSpan(ctx, "usecase.SessionService.BeginLogin")
	defer span.End()

	requestID, err := s.ids.NewID()
	if err != nil {
		return "", "", fmt.Errorf("generate login request id: %w", err)
	}
	if err := s.store.CreateLoginRequest(requestID); err != nil {
		return "", "", fmt.Errorf("create login request: %w", err)
	}

	return requestID, fmt.Sprintf("%s/login/%s", s.publicBaseURL, requestID), nil
}

// EnsureLoginRequest registers a request id if it is not known yet. The
// login page calls this so a directly opened link still works.
func (s *SessionService) EnsureLoginRequest(requestID string) error {
	err := s.store.CreateLoginRequest(requestID)
	if err != nil && !session.IsDuplicate(err) {
		return err
	}
	return nil
}

// CompleteLogin exchanges the submitted credentials for a token and
// transitions the request. The transition is one-shot either way: a failed
// exchange records the failure, a second submit for the same request id is
// rejected by the store.
func (s *SessionService) CompleteLogin(ctx context.Context, requestID, email, password string, entryID int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.CompleteLogin")
	defer span.End()

	if entryID <= 0 {
		return fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.logger.WarnContext(ctx, "login token exchange failed", "request_id", requestID, "error", err)
		if failErr := s.store.CompleteFailure(requestID, loginFailureReason(err)); failErr != nil {
			return failErr
		}
		return err
	}

	sessionID, err := s.ids.NewID()
	if err != nil {
		return fmt.Errorf("generate session id: %w", err)
	}

	handle := Session{
		Gateway: s.gateway.Authenticated(token),
		EntryID: entryID,
	}
	if err := s.store.CompleteSuccess(requestID, sessionID, handle); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "login completed", "request_id", requestID, "entry_id", entryID)
	return nil
}

// Status reports a login request's state. Unknown ids surface as not found.
func (s *SessionService) Status(requestID string) (session.LoginRequest, error) {
	req, err := s.store.Lookup(requestID)
	if err != nil {
		return session.LoginRequest{}, fmt.Errorf("%w: login request %s", ErrNotFound, requestID)
	}
	return req, nil
}

// SessionFor resolves an active session id to its authenticated handle.
func (s *SessionService) SessionFor(sessionID string) (Session, error) {
	handle, ok := s.store.Client(sessionID)
	if !ok {
		return Session{}, ErrUnauthorized
	}
	return handle, nil
}

// loginFailureReason keeps the stored failure message human-readable
// without leaking transport detail to the login page.
func loginFailureReason(err error) string {
	msg := err.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
