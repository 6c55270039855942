// Package webauth serves the browser-side half of the login flow: the
// credential form a login URL points at, and the submit endpoint behind it.
package webauth

import (
	"context"
	stderrors "errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fpl-assistant/internal/domain/session"
	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
	"github.com/riskibarqy/fpl-assistant/internal/usecase"
)

type Handler struct {
	sessions *usecase.SessionService
	validate *validator.Validate
	logger   *logging.Logger
}

func NewHandler(sessions *usecase.SessionService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sessions: sessions,
		validate: validator.New(),
		logger:   logger,
	}
}

func NewRouter(handler *Handler, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /login/{requestID}", handler.LoginForm)
	mux.HandleFunc("POST /auth/submit/{requestID}", handler.SubmitCredentials)

	return recoverPanic(logger, mux)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// LoginForm renders the credential form. The request id is registered on
// the fly so a login URL shared out-of-band still works.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	requestID := strings.TrimSpace(r.PathValue("requestID"))
	if requestID == "" {
		http.NotFound(w, r)
		return
	}

	if err := h.sessions.EnsureLoginRequest(requestID); err != nil {
		h.logger.WarnContext(r.Context(), "login request registration failed", "request_id", requestID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, r.Context(), http.StatusOK, loginPage, map[string]string{
		"Title":     "Sign in to FPL",
		"RequestID": requestID,
	})
}

type credentialsForm struct {
	EntryID  int    `validate:"required,gt=0"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SubmitCredentials completes the login request one way or the other. The
// transition is one-shot: a second submit for the same request id gets a
// conflict page instead of a retry.
func (h *Handler) SubmitCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := strings.TrimSpace(r.PathValue("requestID"))
	if requestID == "" {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderFailure(w, ctx, http.StatusBadRequest, "The form could not be read. Start a new login and try again.")
		return
	}

	entryID, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("team_id")))
	form := credentialsForm{
		EntryID:  entryID,
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		h.renderFailure(w, ctx, http.StatusBadRequest, "Team ID, email, and password are all required. Go back and fill in every field.")
		return
	}

	err := h.sessions.CompleteLogin(ctx, requestID, form.Email, form.Password, form.EntryID)
	switch {
	case err == nil:
		h.render(w, ctx, http.StatusOK, successPage, map[string]string{"Title": "Login successful"})
	case stderrors.Is(err, session.ErrUnknownRequest):
		http.NotFound(w, r)
	case stderrors.Is(err, session.ErrAlreadyCompleted):
		h.renderFailure(w, ctx, http.StatusConflict, "This login link was already used. Start a new login from your assistant.")
	default:
		h.renderFailure(w, ctx, http.StatusUnauthorized, fmt.Sprintf("Sign-in was rejected: %v", err))
	}
}

func (h *Handler) renderFailure(w http.ResponseWriter, ctx context.Context, status int, reason string) {
	h.render(w, ctx, status, failurePage, map[string]string{
		"Title":  "Login failed",
		"Reason": reason,
	})
}

func (h *Handler) render(w http.ResponseWriter, ctx context.Context, status int, page *template.Template, data map[string]string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Execute(w, data); err != nil {
		h.logger.ErrorContext(ctx, "page render failed", "error", err)
	}
}
