package fpl

import "github.com/riskibarqy/fpl-assistant/internal/usecase"

// Wire shapes mirror the upstream JSON exactly; mapping into the service
// types happens in the map* helpers below.

type mePayload struct {
	Player struct {
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		Region          string `json:"region_name"`
		RegionCodeShort string `json:"region_code_short"`
		Entry           int    `json:"entry"`
	} `json:"player"`
	Leagues struct {
		Classic []leagueRefPayload `json:"classic"`
	} `json:"leagues"`
}

type leagueRefPayload struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	LeagueType     string `json:"league_type"`
	EntryRank      int    `json:"entry_rank"`
	RankCount      int    `json:"rank_count"`
	PercentileRank int    `json:"entry_percentile_rank"`
}

type pickPayload struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	SellingPrice  int  `json:"selling_price"`
	PurchasePrice int  `json:"purchase_price"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

type chipPayload struct {
	Name           string `json:"name"`
	StatusForEntry string `json:"status_for_entry"`
	PlayedByEntry  []int  `json:"played_by_entry"`
}

type myTeamPayload struct {
	Picks     []pickPayload `json:"picks"`
	Chips     []chipPayload `json:"chips"`
	Transfers struct {
		Bank  int `json:"bank"`
		Value int `json:"value"`
	} `json:"transfers"`
}

type entryPayload struct {
	Name                       string `json:"name"`
	PlayerFirstName            string `json:"player_first_name"`
	PlayerLastName             string `json:"player_last_name"`
	PlayerRegionName           string `json:"player_region_name"`
	PlayerRegionISOCodeShort   string `json:"player_region_iso_code_short"`
	YearsActive                int    `json:"years_active"`
	CurrentEvent               int    `json:"current_event"`
	SummaryOverallPoints       int    `json:"summary_overall_points"`
	SummaryOverallRank         int    `json:"summary_overall_rank"`
	SummaryEventPoints         int    `json:"summary_event_points"`
	SummaryEventRank           int    `json:"summary_event_rank"`
	LastDeadlineValue          int    `json:"last_deadline_value"`
	LastDeadlineBank           int    `json:"last_deadline_bank"`
	LastDeadlineTotalTransfers int    `json:"last_deadline_total_transfers"`
	Leagues                    struct {
		Classic []leagueRefPayload `json:"classic"`
		Cup     struct {
			Status struct {
				QualificationState string `json:"qualification_state"`
			} `json:"status"`
		} `json:"cup"`
	} `json:"leagues"`
}

type standingsPayload struct {
	League struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Standings struct {
		HasNext bool `json:"has_next"`
		Page    int  `json:"page"`
		Results []struct {
			Rank       int    `json:"rank"`
			LastRank   int    `json:"last_rank"`
			Entry      int    `json:"entry"`
			EntryName  string `json:"entry_name"`
			PlayerName string `json:"player_name"`
			EventTotal int    `json:"event_total"`
			Total      int    `json:"total"`
		} `json:"results"`
	} `json:"standings"`
}

type picksPayload struct {
	ActiveChip    string `json:"active_chip"`
	AutomaticSubs []struct {
		ElementIn  int `json:"element_in"`
		ElementOut int `json:"element_out"`
	} `json:"automatic_subs"`
	EntryHistory struct {
		Points             int `json:"points"`
		TotalPoints        int `json:"total_points"`
		OverallRank        int `json:"overall_rank"`
		Value              int `json:"value"`
		Bank               int `json:"bank"`
		EventTransfers     int `json:"event_transfers"`
		EventTransfersCost int `json:"event_transfers_cost"`
		PointsOnBench      int `json:"points_on_bench"`
	} `json:"entry_history"`
	Picks []pickPayload `json:"picks"`
}

type elementSummaryPayload struct {
	Fixtures []struct {
		Event       *int   `json:"event"`
		TeamH       int    `json:"team_h"`
		TeamA       int    `json:"team_a"`
		IsHome      bool   `json:"is_home"`
		Difficulty  int    `json:"difficulty"`
		KickoffTime string `json:"kickoff_time"`
	} `json:"fixtures"`
	History []struct {
		Round            int  `json:"round"`
		OpponentTeam     int  `json:"opponent_team"`
		WasHome          bool `json:"was_home"`
		TotalPoints      int  `json:"total_points"`
		Minutes          int  `json:"minutes"`
		GoalsScored      int  `json:"goals_scored"`
		Assists          int  `json:"assists"`
		CleanSheets      int  `json:"clean_sheets"`
		Bonus            int  `json:"bonus"`
		TransfersBalance int  `json:"transfers_balance"`
	} `json:"history"`
	HistoryPast []struct {
		SeasonName  string `json:"season_name"`
		StartCost   int    `json:"start_cost"`
		EndCost     int    `json:"end_cost"`
		TotalPoints int    `json:"total_points"`
		Minutes     int    `json:"minutes"`
		GoalsScored int    `json:"goals_scored"`
		Assists     int    `json:"assists"`
	} `json:"history_past"`
}

func mapAccountInfo(payload mePayload) usecase.AccountInfo {
	return usecase.AccountInfo{
		FirstName:      payload.Player.FirstName,
		LastName:       payload.Player.LastName,
		Region:         payload.Player.Region,
		RegionCode:     payload.Player.RegionCodeShort,
		EntryID:        payload.Player.Entry,
		ClassicLeagues: mapLeagueRefs(payload.Leagues.Classic),
	}
}

func mapLeagueRefs(payloads []leagueRefPayload) []usecase.LeagueRef {
	if len(payloads) == 0 {
		return nil
	}
	out := make([]usecase.LeagueRef, 0, len(payloads))
	for _, l := range payloads {
		out = append(out, usecase.LeagueRef{
			ID:             l.ID,
			Name:           l.Name,
			LeagueType:     l.LeagueType,
			EntryRank:      l.EntryRank,
			RankCount:      l.RankCount,
			PercentileRank: l.PercentileRank,
		})
	}
	return out
}

func mapPicks(payloads []pickPayload) []usecase.Pick {
	out := make([]usecase.Pick, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, usecase.Pick{
			Element:       p.Element,
			Position:      p.Position,
			SellingPrice:  p.SellingPrice,
			PurchasePrice: p.PurchasePrice,
			Multiplier:    p.Multiplier,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
		})
	}
	return out
}

func mapMyTeam(payload myTeamPayload) usecase.MyTeam {
	team := usecase.MyTeam{
		Picks: mapPicks(payload.Picks),
		Bank:  payload.Transfers.Bank,
		Value: payload.Transfers.Value,
	}
	for _, chip := range payload.Chips {
		team.Chips = append(team.Chips, usecase.ChipStatus{
			Name:           chip.Name,
			StatusForEntry: chip.StatusForEntry,
			PlayedByEntry:  len(chip.PlayedByEntry) > 0,
		})
	}
	return team
}

func mapManagerEntry(payload entryPayload) usecase.ManagerEntry {
	return usecase.ManagerEntry{
		Name:                  payload.Name,
		PlayerFirstName:       payload.PlayerFirstName,
		PlayerLastName:        payload.PlayerLastName,
		RegionName:            payload.PlayerRegionName,
		RegionCode:            payload.PlayerRegionISOCodeShort,
		YearsActive:           payload.YearsActive,
		CurrentEvent:          payload.CurrentEvent,
		OverallPoints:         payload.SummaryOverallPoints,
		OverallRank:           payload.SummaryOverallRank,
		EventPoints:           payload.SummaryEventPoints,
		EventRank:             payload.SummaryEventRank,
		LastDeadlineValue:     payload.LastDeadlineValue,
		LastDeadlineBank:      payload.LastDeadlineBank,
		TotalTransfers:        payload.LastDeadlineTotalTransfers,
		ClassicLeagues:        mapLeagueRefs(payload.Leagues.Classic),
		CupQualificationState: payload.Leagues.Cup.Status.QualificationState,
	}
}

func mapLeagueStandings(payload standingsPayload, page int) usecase.LeagueStandings {
	standings := usecase.LeagueStandings{
		LeagueID: payload.League.ID,
		Name:     payload.League.Name,
		Page:     page,
		HasNext:  payload.Standings.HasNext,
	}
	if payload.Standings.Page > 0 {
		standings.Page = payload.Standings.Page
	}
	for _, row := range payload.Standings.Results {
		standings.Results = append(standings.Results, usecase.StandingRow{
			Rank:       row.Rank,
			LastRank:   row.LastRank,
			EntryID:    row.Entry,
			EntryName:  row.EntryName,
			PlayerName: row.PlayerName,
			EventTotal: row.EventTotal,
			Total:      row.Total,
		})
	}
	return standings
}

func mapManagerPicks(payload picksPayload) usecase.ManagerPicks {
	picks := usecase.ManagerPicks{
		ActiveChip: payload.ActiveChip,
		Picks:      mapPicks(payload.Picks),
		EntryHistory: usecase.GameweekHistory{
			Points:             payload.EntryHistory.Points,
			TotalPoints:        payload.EntryHistory.TotalPoints,
			OverallRank:        payload.EntryHistory.OverallRank,
			Value:              payload.EntryHistory.Value,
			Bank:               payload.EntryHistory.Bank,
			EventTransfers:     payload.EntryHistory.EventTransfers,
			EventTransfersCost: payload.EntryHistory.EventTransfersCost,
			PointsOnBench:      payload.EntryHistory.PointsOnBench,
		},
	}
	for _, sub := range payload.AutomaticSubs {
		picks.AutomaticSubs = append(picks.AutomaticSubs, usecase.AutoSub{
			ElementIn:  sub.ElementIn,
			ElementOut: sub.ElementOut,
		})
	}
	return picks
}

func mapElementSummary(payload elementSummaryPayload) usecase.ElementSummary {
	var summary usecase.ElementSummary
	for _, f := range payload.Fixtures {
		summary.Fixtures = append(summary.Fixtures, usecase.ElementFixture{
			Event:       f.Event,
			TeamH:       f.TeamH,
			TeamA:       f.TeamA,
			IsHome:      f.IsHome,
			Difficulty:  f.Difficulty,
			KickoffTime: f.KickoffTime,
		})
	}
	for _, h := range payload.History {
		summary.History = append(summary.History, usecase.ElementGameweek{
			Round:            h.Round,
			OpponentTeam:     h.OpponentTeam,
			WasHome:          h.WasHome,
			TotalPoints:      h.TotalPoints,
			Minutes:          h.Minutes,
			GoalsScored:      h.GoalsScored,
			Assists:          h.Assists,
			CleanSheets:      h.CleanSheets,
			Bonus:            h.Bonus,
			TransfersBalance: h.TransfersBalance,
		})
	}
	for _, s := range payload.HistoryPast {
		summary.HistoryPast = append(summary.HistoryPast, usecase.ElementSeason{
			SeasonName:  s.SeasonName,
			StartCost:   s.StartCost,
			EndCost:     s.EndCost,
			TotalPoints: s.TotalPoints,
			Minutes:     s.Minutes,
			GoalsScored: s.GoalsScored,
			Assists:     s.Assists,
		})
	}
	return summary
}
