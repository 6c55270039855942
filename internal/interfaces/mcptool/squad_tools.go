package mcptool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type recentFormArgs struct {
	Gameweeks int `json:"gameweeks,omitempty" jsonschema:"How many recent gameweeks to analyze (default 5)"`
}

func (s *Server) registerSquadTools() {
	addTool(s, &mcp.Tool{
		Name:        "get_my_squad",
		Description: "The logged-in manager's current squad with selling prices and chips",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		sess, err := s.session()
		if err != nil {
			return "", err
		}

		squad, err := s.services.Squad.MySquad(ctx, sess)
		if err != nil {
			return "", err
		}

		r := newReport().heading("My squad")
		r.linef("Bank: %s, team value: %s", price(squad.Bank), price(squad.Value))
		r.blank().line("**Starting XI**")
		for _, member := range squad.Picks {
			if member.Pick.Position == 12 {
				r.blank().line("**Bench**")
			}
			role := ""
			if member.Pick.IsCaptain {
				role = " (C)"
			} else if member.Pick.IsViceCaptain {
				role = " (VC)"
			}
			r.bulletf("%s%s (%s, %s) — sells for %s",
				member.Player.WebName, role, member.Player.TeamName, member.Player.Position,
				price(member.Pick.SellingPrice))
		}
		if len(squad.Chips) > 0 {
			r.blank().line("Chips:")
			for _, chip := range squad.Chips {
				state := chip.StatusForEntry
				if chip.PlayedByEntry {
					state = "played"
				}
				r.bulletf("%s: %s", chip.Name, state)
			}
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_my_performance",
		Description: "The logged-in manager's season performance: points, ranks, and leagues",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		sess, err := s.session()
		if err != nil {
			return "", err
		}

		entry, err := s.services.Squad.Performance(ctx, sess)
		if err != nil {
			return "", err
		}

		r := newReport().heading(entry.Name)
		r.bulletf("Overall: %d pts, rank %d", entry.OverallPoints, entry.OverallRank)
		r.bulletf("Gameweek %d: %d pts, rank %d", entry.CurrentEvent, entry.EventPoints, entry.EventRank)
		r.bulletf("Team value %s, bank %s, total transfers %d",
			price(entry.LastDeadlineValue), price(entry.LastDeadlineBank), entry.TotalTransfers)
		if entry.CupQualificationState != "" {
			r.bulletf("Cup: %s", entry.CupQualificationState)
		}
		if len(entry.ClassicLeagues) > 0 {
			r.blank().line("Classic leagues:")
			for _, league := range entry.ClassicLeagues {
				r.bulletf("%s — rank %d of %d", league.Name, league.EntryRank, league.RankCount)
			}
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "analyze_squad_recent_performance",
		Description: "Recent form for every squad member: averages, trend, and transfer sentiment, worst first",
	}, func(ctx context.Context, args recentFormArgs) (string, error) {
		sess, err := s.session()
		if err != nil {
			return "", err
		}

		analysis, err := s.services.Squad.RecentForm(ctx, sess, args.Gameweeks)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("Squad form over the last %d gameweeks", analysis.Gameweeks))
		r.linef("Bank: %s", price(analysis.Bank))
		r.blank()
		for _, m := range analysis.Members {
			r.linef("**%s** (%s, %s) — %s", m.Player.WebName, m.Player.TeamName, m.Player.Position, m.Category)
			r.bulletf("%.1f pts/gw, %.0f mins/gw over %d appearances", m.AvgPoints, m.AvgMinutes, m.GamesPlayed)
			r.bulletf("Trend: %s, crowd: %s (net %+d transfers)", m.Trend, m.Sentiment, m.TransfersBalance)
			r.blank()
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_chip_recommendations",
		Description: "When to play remaining chips, based on upcoming doubles, blanks, and squad state",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		sess, err := s.session()
		if err != nil {
			return "", err
		}

		plan, err := s.services.Chips.Plan(ctx, sess)
		if err != nil {
			return "", err
		}
		if len(plan.Available) == 0 {
			return "No chips left to play this season.", nil
		}

		r := newReport().heading("Chip strategy")
		for _, advice := range plan.Advice {
			r.bulletf("**%s** [%s]: %s", advice.Chip, advice.Priority, advice.Reason)
		}

		var notable []string
		for _, shape := range plan.Shapes {
			if shape.IsDouble {
				notable = append(notable, fmt.Sprintf("GW%d double (%d teams twice)", shape.Gameweek, len(shape.DoubleTeams)))
			}
			if shape.IsBlank {
				notable = append(notable, fmt.Sprintf("GW%d blank (%d teams playing)", shape.Gameweek, shape.TeamsPlaying))
			}
		}
		if len(notable) > 0 {
			r.blank().line("Upcoming calendar quirks:")
			for _, note := range notable {
				r.bullet(note)
			}
		}
		return r.String(), nil
	})
}
