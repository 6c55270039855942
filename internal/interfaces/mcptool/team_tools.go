package mcptool

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/riskibarqy/fpl-assistant/internal/usecase"
)

type teamNameArgs struct {
	Name string `json:"name" jsonschema:"Club name, full or partial (required)"`
}

func (s *Server) registerTeamTools() {
	addTool(s, &mcp.Tool{
		Name:        "list_all_teams",
		Description: "Every Premier League club with its strength ratings",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		teams, err := s.services.Teams.List(ctx)
		if err != nil {
			return "", err
		}

		r := newReport().heading("Clubs")
		for _, t := range teams {
			r.bulletf("%s (%s) — strength %d, home %d, away %d",
				t.Name, t.ShortName, t.Strength, t.StrengthOverallHome, t.StrengthOverallAway)
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_team_info",
		Description: "One club's strength profile, matched by name",
	}, func(ctx context.Context, args teamNameArgs) (string, error) {
		team, candidates, err := s.services.Teams.Match(ctx, args.Name)
		if err != nil {
			if stderrors.Is(err, usecase.ErrAmbiguous) {
				r := newReport().heading(fmt.Sprintf("%q matches several clubs", args.Name))
				for _, t := range candidates {
					r.bulletf("%s (%s)", t.Name, t.ShortName)
				}
				return r.String(), nil
			}
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("%s (%s)", team.Name, team.ShortName))
		r.bulletf("Overall strength: %d", team.Strength)
		r.bulletf("Overall: home %d, away %d", team.StrengthOverallHome, team.StrengthOverallAway)
		r.bulletf("Attack: home %d, away %d", team.StrengthAttackHome, team.StrengthAttackAway)
		r.bulletf("Defence: home %d, away %d", team.StrengthDefenceHome, team.StrengthDefenceAway)
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "search_players_by_team",
		Description: "A club's full squad, grouped by position and priced high to low",
	}, func(ctx context.Context, args teamNameArgs) (string, error) {
		team, candidates, err := s.services.Teams.Match(ctx, args.Name)
		if err != nil {
			if stderrors.Is(err, usecase.ErrAmbiguous) {
				r := newReport().heading(fmt.Sprintf("%q matches several clubs", args.Name))
				for _, t := range candidates {
					r.bulletf("%s (%s)", t.Name, t.ShortName)
				}
				return r.String(), nil
			}
			return "", err
		}

		players, err := s.services.Players.ByTeam(ctx, team)
		if err != nil {
			return "", err
		}

		r := newReport().heading(team.Name + " squad")
		position := ""
		for _, p := range players {
			if p.Position != position {
				if position != "" {
					r.blank()
				}
				position = p.Position
				r.line("**" + position + "**")
			}
			r.bulletf("%s %s — %d pts, form %s", p.WebName, price(p.NowCost), p.TotalPoints, p.Form)
		}
		return r.String(), nil
	})
}
