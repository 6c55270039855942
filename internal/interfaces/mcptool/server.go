// Package mcptool exposes the assistant's operations as MCP tools.
package mcptool

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
	"github.com/riskibarqy/fpl-assistant/internal/usecase"
)

// Services is the full usecase surface the tool handlers call into.
type Services struct {
	RefData   *usecase.RefDataService
	Sessions  *usecase.SessionService
	Players   *usecase.PlayerService
	Teams     *usecase.TeamService
	Gameweeks *usecase.GameweekService
	Fixtures  *usecase.FixtureService
	Squad     *usecase.SquadService
	Transfers *usecase.TransferService
	Leagues   *usecase.LeagueService
	Chips     *usecase.ChipService
	Refresh   *usecase.RefreshService
}

// Server registers the tool set on an MCP server and tracks which login
// session is active. One session at a time: completing a new login replaces
// the previous active session.
type Server struct {
	mcp      *mcp.Server
	services Services
	logger   *logging.Logger

	// public serves the endpoints that need a gateway but no login.
	public usecase.Session

	mu               sync.Mutex
	pendingRequestID string
	activeSessionID  string
}

func NewServer(name, version string, services Services, public usecase.Session, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}

	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{Name: name, Version: version},
			nil,
		),
		services: services,
		logger:   logger,
		public:   public,
	}

	s.registerAuthTools()
	s.registerPlayerTools()
	s.registerTeamTools()
	s.registerGameweekTools()
	s.registerFixtureTools()
	s.registerSquadTools()
	s.registerTransferTools()
	s.registerLeagueTools()
	s.registerCacheTools()

	return s
}

// RunStdio serves the tool set over stdin/stdout until the context ends.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves the tool set over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, T) (string, error)) {
	mcp.AddTool(s.mcp, tool, func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		out, err := handler(ctx, args)
		if err != nil {
			s.logger.DebugContext(ctx, "tool returned error", "tool", tool.Name, "error", err)
			return failure(err), nil, nil
		}
		return text(out), nil, nil
	})
}

func text(out string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: out}},
	}
}

// failure maps service errors onto messages the model can act on. Tool
// errors are reported in-band; the protocol error slot stays for transport
// faults only.
func failure(err error) *mcp.CallToolResult {
	msg := err.Error()
	switch {
	case stderrors.Is(err, usecase.ErrUnauthorized):
		msg = "Authentication required. Use the login_to_fpl tool to sign in first."
	case stderrors.Is(err, usecase.ErrDependencyUnavailable):
		msg = "The fantasy API is temporarily unavailable. Try again shortly."
	}

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// session resolves the active login to its authenticated handle.
func (s *Server) session() (usecase.Session, error) {
	s.mu.Lock()
	sessionID := s.activeSessionID
	s.mu.Unlock()

	if sessionID == "" {
		return usecase.Session{}, usecase.ErrUnauthorized
	}
	return s.services.Sessions.SessionFor(sessionID)
}

func (s *Server) setPendingRequest(requestID string) {
	s.mu.Lock()
	s.pendingRequestID = requestID
	s.mu.Unlock()
}

func (s *Server) pendingRequest() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingRequestID
}

func (s *Server) activateSession(sessionID string) {
	s.mu.Lock()
	s.activeSessionID = sessionID
	s.mu.Unlock()
}
