package mcptool

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/riskibarqy/fpl-assistant/internal/usecase"
)

type playerNameArgs struct {
	Name string `json:"name" jsonschema:"Player name, full or partial (required)"`
}

type comparePlayersArgs struct {
	Names []string `json:"names" jsonschema:"Two to five player names to compare (required)"`
}

func (s *Server) registerPlayerTools() {
	addTool(s, &mcp.Tool{
		Name:        "find_player",
		Description: "Resolve a player name, fuzzy matching included; lists candidates when ambiguous",
	}, func(ctx context.Context, args playerNameArgs) (string, error) {
		result, err := s.services.Players.Resolve(ctx, args.Name)
		if err != nil {
			return "", err
		}

		r := newReport()
		if result.Resolved {
			r.heading("Match found").bullet(playerLine(result.Player))
			return r.String(), nil
		}
		r.heading(fmt.Sprintf("%q is ambiguous", args.Name))
		r.line("Candidates, best first:")
		writeCandidates(r, result.Candidates)
		r.blank().line("Repeat the request with a more specific name.")
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "search_players",
		Description: "Substring search over player display names (max 10 results)",
	}, func(ctx context.Context, args playerNameArgs) (string, error) {
		players, err := s.services.Players.Search(ctx, args.Name)
		if err != nil {
			return "", err
		}
		if len(players) == 0 {
			return fmt.Sprintf("No players matching %q.", args.Name), nil
		}

		r := newReport().heading(fmt.Sprintf("Players matching %q", args.Name))
		for _, p := range players {
			r.bullet(playerLine(p))
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_player_details",
		Description: "Season statistics for one player from the reference snapshot",
	}, func(ctx context.Context, args playerNameArgs) (string, error) {
		p, err := s.services.Players.MustResolve(ctx, args.Name)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("%s — %s, %s", p.WebName, p.TeamName, p.Position))
		r.bulletf("Price: %s (season change %+.1f)", price(p.NowCost), float64(p.CostChangeStart)/10.0)
		r.bulletf("Total points: %d (%s per game), gameweek points: %d", p.TotalPoints, p.PointsPerGame, p.EventPoints)
		r.bulletf("Form: %s, ICT index: %s", p.Form, p.ICTIndex)
		r.bulletf("Minutes: %d, goals: %d, assists: %d, clean sheets: %d", p.Minutes, p.GoalsScored, p.Assists, p.CleanSheets)
		r.bulletf("Expected goal involvements: %s", p.ExpectedGoalsAssists)
		r.bulletf("Ownership: %s%%, transfers this gameweek: +%d/-%d", p.SelectedByPercent, p.TransfersInEvent, p.TransfersOutEvent)
		if p.News != "" {
			r.bulletf("News: %s", p.News)
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_player_summary",
		Description: "A player's recent gameweek history and upcoming fixtures",
	}, func(ctx context.Context, args playerNameArgs) (string, error) {
		summary, err := s.services.Players.Summary(ctx, s.public, args.Name)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("%s — recent history and fixtures", summary.Player.WebName))
		if len(summary.Summary.History) > 0 {
			r.line("Recent gameweeks:")
			history := summary.Summary.History
			opponents := summary.HistoryOpponents
			if len(history) > 5 {
				opponents = opponents[len(history)-5:]
				history = history[len(history)-5:]
			}
			for i, gw := range history {
				venue := "A"
				if gw.WasHome {
					venue = "H"
				}
				r.bulletf("GW%d vs %s (%s): %d pts, %d mins, %dG %dA",
					gw.Round, opponents[i], venue, gw.TotalPoints, gw.Minutes, gw.GoalsScored, gw.Assists)
			}
			r.blank()
		}
		if len(summary.Summary.Fixtures) > 0 {
			r.line("Upcoming fixtures:")
			fixtures := summary.Summary.Fixtures
			opponents := summary.FixtureOpponents
			if len(fixtures) > 5 {
				fixtures = fixtures[:5]
				opponents = opponents[:5]
			}
			for i, f := range fixtures {
				venue := "A"
				if f.IsHome {
					venue = "H"
				}
				gw := "-"
				if f.Event != nil {
					gw = fmt.Sprintf("GW%d", *f.Event)
				}
				r.bulletf("%s vs %s (%s), difficulty %d", gw, opponents[i], venue, f.Difficulty)
			}
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "compare_players",
		Description: "Side-by-side season statistics for two to five players",
	}, func(ctx context.Context, args comparePlayersArgs) (string, error) {
		players, ambiguous, err := s.services.Players.Compare(ctx, args.Names)
		if err != nil {
			if stderrors.Is(err, usecase.ErrAmbiguous) {
				r := newReport().heading("Some names need disambiguation")
				for _, a := range ambiguous {
					r.linef("%q could be:", a.Query)
					writeCandidates(r, a.Candidates)
					r.blank()
				}
				return r.String(), nil
			}
			return "", err
		}

		r := newReport().heading("Player comparison")
		for _, p := range players {
			r.line("**" + p.WebName + "** (" + p.TeamName + ", " + p.Position + ")")
			r.bulletf("Price %s, total %d pts, %s per game, form %s",
				price(p.NowCost), p.TotalPoints, p.PointsPerGame, p.Form)
			r.bulletf("%d mins, %dG %dA, %d clean sheets, xGI %s",
				p.Minutes, p.GoalsScored, p.Assists, p.CleanSheets, p.ExpectedGoalsAssists)
			r.bulletf("Ownership %s%%", p.SelectedByPercent)
			r.blank()
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_top_players",
		Description: "Top performers by points per game for every position",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		rankings, err := s.services.Players.TopByPosition(ctx)
		if err != nil {
			return "", err
		}

		r := newReport().heading("Top players by position")
		for _, ranking := range rankings {
			r.line("**" + ranking.Position + "**")
			for _, p := range ranking.Players {
				r.bulletf("%s (%s) %s — %s pts/game, %d total",
					p.WebName, p.TeamName, price(p.NowCost), p.PointsPerGame, p.TotalPoints)
			}
			r.blank()
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "check_player_availability",
		Description: "Injury/suspension verdict for a player: OUT, DOUBTFUL, or AVAILABLE",
	}, func(ctx context.Context, args playerNameArgs) (string, error) {
		verdicts, err := s.services.Players.Availability(ctx, args.Name)
		if err != nil {
			return "", err
		}

		r := newReport().heading("Availability")
		for _, v := range verdicts {
			r.bulletf("%s (%s): **%s** — %s", v.Player.WebName, v.Player.TeamName, v.Verdict, v.Reason)
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_players_to_avoid",
		Description: "Every player currently flagged out or doubtful, worst first",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		verdicts, err := s.services.Players.PlayersToAvoid(ctx)
		if err != nil {
			return "", err
		}
		if len(verdicts) == 0 {
			return "No players are flagged right now.", nil
		}

		r := newReport().heading("Players to avoid")
		for _, v := range verdicts {
			r.bulletf("%s (%s, %s) %s: **%s** — %s",
				v.Player.WebName, v.Player.TeamName, v.Player.Position, price(v.Player.NowCost), v.Verdict, v.Reason)
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_injury_and_lineup_predictions",
		Description: "Injury flags and expected availability for the next gameweek",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		verdicts, err := s.services.Players.PlayersToAvoid(ctx)
		if err != nil {
			return "", err
		}

		var out, doubtful []string
		for _, v := range verdicts {
			entry := fmt.Sprintf("%s (%s) — %s", v.Player.WebName, v.Player.TeamName, v.Reason)
			if v.Verdict == usecase.AvailabilityOut {
				out = append(out, entry)
			} else {
				doubtful = append(doubtful, entry)
			}
		}

		r := newReport().heading("Injury and lineup outlook")
		r.linef("**Ruled out (%d):**", len(out))
		for _, line := range out {
			r.bullet(line)
		}
		r.blank().linef("**Doubtful (%d):**", len(doubtful))
		for _, line := range doubtful {
			r.bullet(line)
		}
		r.blank().line("Verdicts come from the official status flags and chance-of-playing figures; check club news close to the deadline.")
		return r.String(), nil
	})
}
