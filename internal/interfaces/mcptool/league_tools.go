package mcptool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type leagueStandingsArgs struct {
	League string `json:"league" jsonschema:"League name, full or partial (required)"`
	Page   int    `json:"page,omitempty" jsonschema:"Standings page (default 1)"`
}

type managerTeamArgs struct {
	Manager  string `json:"manager" jsonschema:"Manager or team name within the league (required)"`
	League   string `json:"league" jsonschema:"League name, full or partial (required)"`
	Gameweek int    `json:"gameweek" jsonschema:"Gameweek number 1-38 (required)"`
}

type compareManagersArgs struct {
	Managers []string `json:"managers" jsonschema:"Two to four manager names within the league (required)"`
	League   string   `json:"league" jsonschema:"League name, full or partial (required)"`
	Gameweek int      `json:"gameweek" jsonschema:"Gameweek number 1-38 (required)"`
}

func (s *Server) registerLeagueTools() {
	addTool(s, &mcp.Tool{
		Name:        "get_league_standings",
		Description: "A classic league table, matched by league name among the manager's leagues",
	}, func(ctx context.Context, args leagueStandingsArgs) (string, error) {
		sess, err := s.session()
		if err != nil {
			return "", err
		}

		standings, err := s.services.Leagues.Standings(ctx, sess, args.League, args.Page)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("%s — page %d", standings.Name, standings.Page))
		for _, row := range standings.Results {
			arrow := ""
			switch {
			case row.LastRank > 0 && row.Rank < row.LastRank:
				arrow = " ↑"
			case row.LastRank > 0 && row.Rank > row.LastRank:
				arrow = " ↓"
			}
			r.bulletf("%d.%s %s (%s) — %d pts (+%d this gameweek)",
				row.Rank, arrow, row.EntryName, row.PlayerName, row.Total, row.EventTotal)
		}
		if standings.HasNext {
			r.blank().linef("More entries on page %d.", standings.Page+1)
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_manager_gameweek_team",
		Description: "Another manager's team selection for a gameweek, looked up by name within a league",
	}, func(ctx context.Context, args managerTeamArgs) (string, error) {
		sess, err := s.session()
		if err != nil {
			return "", err
		}

		team, err := s.services.Leagues.ManagerGameweekTeam(ctx, sess, args.Manager, args.League, args.Gameweek)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("%s (%s) — gameweek %d",
			team.Manager.EntryName, team.Manager.PlayerName, args.Gameweek))
		r.bulletf("Points: %d (total %d, overall rank %d)",
			team.Picks.EntryHistory.Points, team.Picks.EntryHistory.TotalPoints, team.Picks.EntryHistory.OverallRank)
		if team.Picks.ActiveChip != "" {
			r.bulletf("Chip played: %s", team.Picks.ActiveChip)
		}
		r.blank().line("**Starting XI**")
		for _, pick := range team.Picks.Picks {
			if pick.Position == 12 {
				r.blank().line("**Bench**")
			}
			role := ""
			if pick.IsCaptain {
				role = " (C)"
			} else if pick.IsViceCaptain {
				role = " (VC)"
			}
			r.bulletf("%s%s", team.PlayerName[pick.Element], role)
		}
		for _, sub := range team.Picks.AutomaticSubs {
			r.bulletf("Auto-sub: %s on for %s", team.PlayerName[sub.ElementIn], team.PlayerName[sub.ElementOut])
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "compare_managers",
		Description: "Side-by-side gameweek comparison of two to four managers in a league",
	}, func(ctx context.Context, args compareManagersArgs) (string, error) {
		sess, err := s.session()
		if err != nil {
			return "", err
		}

		comparison, err := s.services.Leagues.CompareManagers(ctx, sess, args.Managers, args.League, args.Gameweek)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("%s — gameweek %d comparison", comparison.League.Name, comparison.Gameweek))
		for _, entry := range comparison.Entries {
			r.linef("**%s** (%s)", entry.Manager.EntryName, entry.Manager.PlayerName)
			r.bulletf("%d pts this gameweek, %d total, %d on the bench",
				entry.History.Points, entry.History.TotalPoints, entry.History.PointsOnBench)
			r.bulletf("Captain: %s", entry.Captain)
			if len(entry.UniqueXI) > 0 {
				r.bulletf("Unique starters: %s", strings.Join(entry.UniqueXI, ", "))
			}
			r.blank()
		}
		if len(comparison.CommonXI) > 0 {
			r.linef("Shared starters: %s", strings.Join(comparison.CommonXI, ", "))
		}
		return r.String(), nil
	})
}
