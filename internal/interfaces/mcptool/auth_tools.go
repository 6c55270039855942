package mcptool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/riskibarqy/fpl-assistant/internal/domain/session"
)

type emptyArgs struct{}

type loginStatusArgs struct {
	RequestID string `json:"request_id,omitempty" jsonschema:"Login request id (defaults to the most recent login_to_fpl call)"`
}

func (s *Server) registerAuthTools() {
	addTool(s, &mcp.Tool{
		Name:        "login_to_fpl",
		Description: "Start a login: returns a URL where the user enters their FPL credentials",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		requestID, loginURL, err := s.services.Sessions.BeginLogin(ctx)
		if err != nil {
			return "", err
		}
		s.setPendingRequest(requestID)

		r := newReport().heading("Login started")
		r.linef("Open this URL in a browser and enter your credentials: %s", loginURL)
		r.blank()
		r.linef("Request id: `%s`. Call check_login_status once the form is submitted.", requestID)
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "check_login_status",
		Description: "Check whether a started login has completed; activates the session on success",
	}, func(ctx context.Context, args loginStatusArgs) (string, error) {
		requestID := args.RequestID
		if requestID == "" {
			requestID = s.pendingRequest()
		}
		if requestID == "" {
			return "No login in progress. Call login_to_fpl first.", nil
		}

		req, err := s.services.Sessions.Status(requestID)
		if err != nil {
			return "", err
		}

		switch req.Status {
		case session.StatusSuccess:
			s.activateSession(req.SessionID)
			return "Login successful. Your session is active; authenticated tools are available now.", nil
		case session.StatusFailed:
			return fmt.Sprintf("Login failed: %s. Call login_to_fpl to try again.", req.Error), nil
		default:
			return "Login still pending. Ask the user to finish the form, then check again.", nil
		}
	})

	addTool(s, &mcp.Tool{
		Name:        "get_my_info",
		Description: "The logged-in manager's account overview: ranks, team value, and leagues",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		sess, err := s.session()
		if err != nil {
			return "", err
		}

		entry, err := s.services.Squad.Performance(ctx, sess)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("%s (%s %s)", entry.Name, entry.PlayerFirstName, entry.PlayerLastName))
		r.bulletf("Entry id: %d", sess.EntryID)
		r.bulletf("Region: %s (%s)", entry.RegionName, entry.RegionCode)
		r.bulletf("Overall: %d pts, rank %d", entry.OverallPoints, entry.OverallRank)
		r.bulletf("Gameweek %d: %d pts, rank %d", entry.CurrentEvent, entry.EventPoints, entry.EventRank)
		r.bulletf("Team value: %s, bank: %s", price(entry.LastDeadlineValue), price(entry.LastDeadlineBank))
		if len(entry.ClassicLeagues) > 0 {
			r.blank().line("Classic leagues:")
			for _, league := range entry.ClassicLeagues {
				r.bulletf("%s — rank %d of %d", league.Name, league.EntryRank, league.RankCount)
			}
		}
		return r.String(), nil
	})
}
