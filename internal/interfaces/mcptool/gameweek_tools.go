package mcptool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
)

type gameweekArgs struct {
	Gameweek int `json:"gameweek" jsonschema:"Gameweek number 1-38 (required)"`
}

func (s *Server) registerGameweekTools() {
	addTool(s, &mcp.Tool{
		Name:        "get_current_gameweek",
		Description: "The gameweek to plan against: active while its deadline is ahead, otherwise next",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		current, err := s.services.Gameweeks.Current(ctx)
		if err != nil {
			return "", err
		}

		r := newReport().heading(fmt.Sprintf("%s (%s)", current.Event.Name, current.Standing))
		writeEvent(r, current.Event)
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_gameweek_info",
		Description: "One gameweek's deadline, scores, and crowd-favourite picks",
	}, func(ctx context.Context, args gameweekArgs) (string, error) {
		detail, err := s.services.Gameweeks.Info(ctx, args.Gameweek)
		if err != nil {
			return "", err
		}

		r := newReport().heading(detail.Event.Name)
		writeEvent(r, detail.Event)
		if detail.Popular != nil {
			r.blank().line("Popular picks:")
			r.bulletf("Most captained: %s", detail.Popular.MostCaptained)
			r.bulletf("Most vice-captained: %s", detail.Popular.MostViceCaptained)
			r.bulletf("Most selected: %s", detail.Popular.MostSelected)
			r.bulletf("Most transferred in: %s", detail.Popular.MostTransferredIn)
		}
		if len(detail.Event.ChipPlays) > 0 {
			r.blank().line("Chips played:")
			for _, chip := range detail.Event.ChipPlays {
				r.bulletf("%s: %d", chip.ChipName, chip.NumPlayed)
			}
		}
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "list_all_gameweeks",
		Description: "The season calendar: every gameweek with deadline and state",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		events, err := s.services.Gameweeks.List(ctx)
		if err != nil {
			return "", err
		}

		r := newReport().heading("Season calendar")
		for _, ev := range events {
			state := "upcoming"
			switch {
			case ev.Finished:
				state = "finished"
			case ev.IsCurrent:
				state = "current"
			case ev.IsNext:
				state = "next"
			}
			r.bulletf("%s — deadline %s (%s)", ev.Name, ev.DeadlineTime, state)
		}
		return r.String(), nil
	})
}

func writeEvent(r *report, ev refdata.Event) {
	r.bulletf("Deadline: %s", ev.DeadlineTime)
	r.bulletf("Finished: %t", ev.Finished)
	if ev.AverageEntryScore > 0 {
		r.bulletf("Average score: %d", ev.AverageEntryScore)
	}
	if ev.HighestScore != nil {
		r.bulletf("Highest score: %d", *ev.HighestScore)
	}
	if ev.TransfersMade > 0 {
		r.bulletf("Transfers made: %d", ev.TransfersMade)
	}
}
