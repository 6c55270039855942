package mcptool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type teamFixturesArgs struct {
	Team      string `json:"team" jsonschema:"Club name, full or partial (required)"`
	Gameweeks int    `json:"gameweeks,omitempty" jsonschema:"How many gameweeks ahead to analyze (default 5)"`
}

func (s *Server) registerFixtureTools() {
	addTool(s, &mcp.Tool{
		Name:        "get_fixtures_for_gameweek",
		Description: "Every fixture in a gameweek, kickoff order, with difficulty ratings",
	}, func(ctx context.Context, args gameweekArgs) (string, error) {
		fixtures, err := s.services.Fixtures.ForGameweek(ctx, args.Gameweek)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("Gameweek %d fixtures", args.Gameweek))
		for _, f := range fixtures {
			if f.Fixture.Finished && f.Fixture.TeamHScore != nil && f.Fixture.TeamAScore != nil {
				r.bulletf("%s %d-%d %s", f.HomeShort, *f.Fixture.TeamHScore, *f.Fixture.TeamAScore, f.AwayShort)
				continue
			}
			kickoff := "TBC"
			if f.Fixture.KickoffTime != nil {
				kickoff = *f.Fixture.KickoffTime
			}
			r.bulletf("%s vs %s — %s (difficulty H%d/A%d)",
				f.HomeShort, f.AwayShort, kickoff, f.Fixture.TeamHDifficulty, f.Fixture.TeamADifficulty)
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "analyze_team_fixtures",
		Description: "A club's upcoming fixture run graded by average difficulty",
	}, func(ctx context.Context, args teamFixturesArgs) (string, error) {
		run, err := s.services.Fixtures.TeamRun(ctx, args.Team, args.Gameweeks)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("%s fixture run — %s (avg difficulty %.1f)",
			run.Team.Name, run.Assessment, run.AverageDifficulty))
		for _, f := range run.Fixtures {
			venue := "A"
			if f.IsHome {
				venue = "H"
			}
			gw := "-"
			if f.Fixture.Event != nil {
				gw = fmt.Sprintf("GW%d", *f.Fixture.Event)
			}
			r.bulletf("%s vs %s (%s), difficulty %d", gw, f.Opponent, venue, f.Difficulty)
		}
		return r.String(), nil
	})
}
