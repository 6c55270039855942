package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

// Form trend over a squad member's recent gameweeks.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// Transfer-market sentiment buckets derived from net transfer balance.
const (
	SentimentHeavySelling    = "heavy selling"
	SentimentModerateSelling = "moderate selling"
	SentimentLightSelling    = "light selling"
	SentimentHeavyBuying     = "heavy buying"
	SentimentModerateBuying  = "moderate buying"
	SentimentLightBuying     = "light buying"
	SentimentStable          = "stable"
)

// Performance buckets on recent average points per gameweek.
const (
	FormUnderperformer = "underperformer"
	FormSolid          = "solid"
	FormStar           = "star"
)

// SquadPick joins one squad slot with the player's reference record.
type SquadPick struct {
	Pick   Pick
	Player refdata.Player
}

// Squad is the authenticated squad view.
type Squad struct {
	Picks []SquadPick
	Chips []ChipStatus
	Bank  int
	Value int
}

// MemberForm is the recent-gameweek analysis for one squad member.
type MemberForm struct {
	Player           refdata.Player
	Pick             Pick
	Recent           []ElementGameweek
	TotalPoints      int
	GamesPlayed      int
	AvgPoints        float64
	AvgMinutes       float64
	Trend            string
	TransfersBalance int
	Sentiment        string
	Category         string
}

// SquadAnalysis is the full recent-form breakdown, worst performers first.
type SquadAnalysis struct {
	Gameweeks int
	Bank      int
	Members   []MemberForm
}

// SquadService reads the authenticated user's squad and performance.
type SquadService struct {
	refData *RefDataService
	logger  *logging.Logger
}

func NewSquadService(refData *RefDataService, logger *logging.Logger) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SquadService{refData: refData, logger: logger}
}

// MySquad returns the current squad with player records joined on.
func (s *SquadService) MySquad(ctx context.Context, sess Session) (Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.MySquad")
	defer span.End()

	team, err := sess.Gateway.MyTeam(ctx, sess.EntryID)
	if err != nil {
		return Squad{}, fmt.Errorf("fetch squad: %w", err)
	}
	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return Squad{}, err
	}

	squad := Squad{Chips: team.Chips, Bank: team.Bank, Value: team.Value}
	for _, pick := range team.Picks {
		player, ok := bootstrap.PlayerByID(pick.Element)
		if !ok {
			s.logger.WarnContext(ctx, "squad pick missing from reference data", "element", pick.Element)
			player = refdata.Player{ID: pick.Element, WebName: fmt.Sprintf("player %d", pick.Element)}
		}
		squad.Picks = append(squad.Picks, SquadPick{Pick: pick, Player: player})
	}

	return squad, nil
}

// Performance returns the manager's entry page: ranks, value, leagues, cup.
func (s *SquadService) Performance(ctx context.Context, sess Session) (ManagerEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Performance")
	defer span.End()

	entry, err := sess.Gateway.ManagerEntry(ctx, sess.EntryID)
	if err != nil {
		return ManagerEntry{}, fmt.Errorf("fetch manager entry: %w", err)
	}
	return entry, nil
}

// RecentForm analyzes every squad member over the last N gameweeks:
// averages, trend, and the crowd's transfer sentiment. Members come back
// sorted worst average first so transfer candidates lead the output.
func (s *SquadService) RecentForm(ctx context.Context, sess Session, gameweeks int) (SquadAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.RecentForm")
	defer span.End()

	if gameweeks < 1 {
		gameweeks = 5
	}

	squad, err := s.MySquad(ctx, sess)
	if err != nil {
		return SquadAnalysis{}, err
	}

	analysis := SquadAnalysis{Gameweeks: gameweeks, Bank: squad.Bank}
	for _, member := range squad.Picks {
		summary, err := sess.Gateway.ElementSummary(ctx, member.Player.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "element summary fetch failed", "element", member.Player.ID, "error", err)
			continue
		}

		history := summary.History
		if len(history) > gameweeks {
			history = history[len(history)-gameweeks:]
		}
		analysis.Members = append(analysis.Members, analyzeMember(member, history))
	}

	// Worst performers first.
	sort.SliceStable(analysis.Members, func(i, j int) bool {
		return analysis.Members[i].AvgPoints < analysis.Members[j].AvgPoints
	})

	return analysis, nil
}

func analyzeMember(member SquadPick, recent []ElementGameweek) MemberForm {
	form := MemberForm{
		Player: member.Player,
		Pick:   member.Pick,
		Recent: recent,
		Trend:  TrendStable,
	}
	if len(recent) == 0 {
		form.Category = FormUnderperformer
		form.Sentiment = SentimentStable
		return form
	}

	minutes := 0
	for _, gw := range recent {
		form.TotalPoints += gw.TotalPoints
		minutes += gw.Minutes
		if gw.Minutes > 0 {
			form.GamesPlayed++
		}
		form.TransfersBalance += gw.TransfersBalance
	}
	form.AvgPoints = float64(form.TotalPoints) / float64(len(recent))
	form.AvgMinutes = float64(minutes) / float64(len(recent))

	// Trend compares the last three gameweeks against what came before.
	if len(recent) >= 3 {
		last3 := recent[len(recent)-3:]
		last3Total := 0
		for _, gw := range last3 {
			last3Total += gw.TotalPoints
		}
		last3Avg := float64(last3Total) / 3

		prevAvg := last3Avg
		if prev := recent[:len(recent)-3]; len(prev) > 0 {
			prevTotal := 0
			for _, gw := range prev {
				prevTotal += gw.TotalPoints
			}
			prevAvg = float64(prevTotal) / float64(len(prev))
		}

		switch {
		case last3Avg > prevAvg*1.2:
			form.Trend = TrendImproving
		case last3Avg < prevAvg*0.8:
			form.Trend = TrendDeclining
		}
	}

	form.Sentiment = transferSentiment(form.TransfersBalance)

	switch {
	case form.AvgPoints < 2.5:
		form.Category = FormUnderperformer
	case form.AvgPoints < 5:
		form.Category = FormSolid
	default:
		form.Category = FormStar
	}

	return form
}

func transferSentiment(balance int) string {
	switch {
	case balance < -100000:
		return SentimentHeavySelling
	case balance < -50000:
		return SentimentModerateSelling
	case balance < -10000:
		return SentimentLightSelling
	case balance > 100000:
		return SentimentHeavyBuying
	case balance > 50000:
		return SentimentModerateBuying
	case balance > 10000:
		return SentimentLightBuying
	default:
		return SentimentStable
	}
}
