package webauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-assistant/internal/domain/session"
	"github.com/riskibarqy/fpl-assistant/internal/platform/id"
	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
	"github.com/riskibarqy/fpl-assistant/internal/usecase"
)

type stubAuth struct {
	token string
	err   error
}

func (a stubAuth) Login(context.Context, string, string) (string, error) {
	return a.token, a.err
}

type stubGateway struct{}

func (stubGateway) FetchBootstrap(context.Context) ([]byte, error) { return nil, nil }
func (stubGateway) FetchFixtures(context.Context) ([]byte, error)  { return nil, nil }
func (stubGateway) AccountInfo(context.Context) (usecase.AccountInfo, error) {
	return usecase.AccountInfo{}, nil
}
func (stubGateway) MyTeam(context.Context, int) (usecase.MyTeam, error) {
	return usecase.MyTeam{}, nil
}
func (stubGateway) ManagerEntry(context.Context, int) (usecase.ManagerEntry, error) {
	return usecase.ManagerEntry{}, nil
}
func (stubGateway) LeagueStandings(context.Context, int, int) (usecase.LeagueStandings, error) {
	return usecase.LeagueStandings{}, nil
}
func (stubGateway) ManagerPicks(context.Context, int, int) (usecase.ManagerPicks, error) {
	return usecase.ManagerPicks{}, nil
}
func (stubGateway) ElementSummary(context.Context, int) (usecase.ElementSummary, error) {
	return usecase.ElementSummary{}, nil
}
func (stubGateway) ExecuteTransfers(context.Context, usecase.TransferPayload) (string, error) {
	return "", nil
}
func (g stubGateway) Authenticated(string) usecase.Gateway { return g }

func newTestServer(t *testing.T, auth usecase.Authenticator) (*usecase.SessionService, http.Handler) {
	t.Helper()

	sessions := usecase.NewSessionService(
		session.NewStore[usecase.Session](),
		auth,
		stubGateway{},
		id.NewRandomGenerator(),
		logging.NewNop(),
		"http://localhost:8000",
	)
	return sessions, NewRouter(NewHandler(sessions, logging.NewNop()), logging.NewNop())
}

func TestLoginForm_RegistersRequestAndRendersForm(t *testing.T) {
	sessions, router := newTestServer(t, stubAuth{token: "tok"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login/req-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`action="/auth/submit/req-1"`, `name="team_id"`, `name="email"`, `name="password"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("form missing %s:\n%s", want, body)
		}
	}

	// The directly opened link must now be a known pending request.
	req, err := sessions.Status("req-1")
	if err != nil {
		t.Fatalf("request not registered: %v", err)
	}
	if req.Status != session.StatusPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}
}

func TestSubmit_SuccessActivatesSession(t *testing.T) {
	sessions, router := newTestServer(t, stubAuth{token: "tok"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login/req-1", nil))

	form := url.Values{"team_id": {"42"}, "email": {"user@example.test"}, "password": {"hunter2"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/submit/req-1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Login successful") {
		t.Fatalf("expected success page:\n%s", rec.Body.String())
	}

	status, err := sessions.Status("req-1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != session.StatusSuccess || status.SessionID == "" {
		t.Fatalf("expected bound success, got %+v", status)
	}
	if _, err := sessions.SessionFor(status.SessionID); err != nil {
		t.Fatalf("session not resolvable: %v", err)
	}
}

func TestSubmit_BadCredentialsRendersFailure(t *testing.T) {
	sessions, router := newTestServer(t, stubAuth{err: crerr.New("invalid email or password")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login/req-1", nil))

	form := url.Values{"team_id": {"42"}, "email": {"user@example.test"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/submit/req-1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Login failed") {
		t.Fatalf("expected failure page:\n%s", rec.Body.String())
	}

	status, err := sessions.Status("req-1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != session.StatusFailed || status.Error == "" {
		t.Fatalf("expected recorded failure, got %+v", status)
	}
}

func TestSubmit_SecondAttemptConflicts(t *testing.T) {
	_, router := newTestServer(t, stubAuth{token: "tok"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login/req-1", nil))

	form := url.Values{"team_id": {"42"}, "email": {"user@example.test"}, "password": {"hunter2"}}
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/submit/req-1", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
	}

	if rec.Code != http.StatusConflict {
		t.Fatalf("second submit should conflict, got %d", rec.Code)
	}
}

func TestSubmit_MissingFieldsRejected(t *testing.T) {
	_, router := newTestServer(t, stubAuth{token: "tok"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login/req-1", nil))

	form := url.Values{"email": {"user@example.test"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/submit/req-1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
