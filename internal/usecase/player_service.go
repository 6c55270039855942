package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-assistant/internal/domain/nameindex"
	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
)

// Availability classification derived from a player's status flag.
const (
	AvailabilityOut      = "OUT"
	AvailabilityDoubtful = "DOUBTFUL"
	AvailabilityOK       = "AVAILABLE"
)

// ResolveResult carries either a confident single match or the ranked
// candidate list the caller must surface for disambiguation.
type ResolveResult struct {
	Player     refdata.Player
	Resolved   bool
	Candidates []nameindex.Match
}

// AmbiguousName is one query that could not be auto-resolved.
type AmbiguousName struct {
	Query      string
	Candidates []nameindex.Match
}

// PositionRanking is the top performers for one position.
type PositionRanking struct {
	Position string
	Players  []refdata.Player
}

// PlayerSummary bundles a player with their detail page, fixtures and
// history enriched with club short names.
type PlayerSummary struct {
	Player  refdata.Player
	Summary ElementSummary

	FixtureOpponents []string
	HistoryOpponents []string
}

// PlayerAvailability is the status verdict for one player.
type PlayerAvailability struct {
	Player  refdata.Player
	Verdict string
	Reason  string
}

// PlayerService answers every name-driven player question: resolution,
// search, comparison, rankings, availability, and the detail summary.
type PlayerService struct {
	refData *RefDataService
}

func NewPlayerService(refData *RefDataService) *PlayerService {
	return &PlayerService{refData: refData}
}

// Resolve maps a free-text name to ranked candidates and applies the
// disambiguation contract: the result is resolved only when a single
// candidate remains or the leader is both confident and clear of the field.
func (s *PlayerService) Resolve(ctx context.Context, query string) (ResolveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Resolve")
	defer span.End()

	index, err := s.refData.Index(ctx)
	if err != nil {
		return ResolveResult{}, err
	}

	matches, err := index.Resolve(query)
	if err != nil {
		return ResolveResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(matches) == 0 {
		return ResolveResult{}, fmt.Errorf("%w: no player matching %q", ErrNotFound, query)
	}
	if len(matches) > nameindex.MaxCandidates {
		matches = matches[:nameindex.MaxCandidates]
	}

	if nameindex.Unambiguous(matches) {
		return ResolveResult{Player: matches[0].Player, Resolved: true, Candidates: matches}, nil
	}
	return ResolveResult{Candidates: matches}, nil
}

// MustResolve is Resolve with the ambiguous outcome turned into ErrAmbiguous,
// for operations that cannot proceed on a candidate list (transfers,
// comparisons, detail lookups).
func (s *PlayerService) MustResolve(ctx context.Context, query string) (refdata.Player, error) {
	result, err := s.Resolve(ctx, query)
	if err != nil {
		return refdata.Player{}, err
	}
	if !result.Resolved {
		return refdata.Player{}, fmt.Errorf("%w: %q matches %d players", ErrAmbiguous, query, len(result.Candidates))
	}
	return result.Player, nil
}

// Search is the loose variant: case-insensitive substring over display
// names, capped at ten rows.
func (s *PlayerService) Search(ctx context.Context, query string) ([]refdata.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Search")
	defer span.End()

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]refdata.Player, 0, nameindex.MaxCandidates)
	for _, p := range bootstrap.Players {
		if strings.Contains(strings.ToLower(p.WebName), needle) {
			out = append(out, p)
			if len(out) == nameindex.MaxCandidates {
				break
			}
		}
	}

	return out, nil
}

// Compare resolves two to five names all-or-nothing: any ambiguous name
// aborts the comparison with the full candidate breakdown.
func (s *PlayerService) Compare(ctx context.Context, queries []string) ([]refdata.Player, []AmbiguousName, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Compare")
	defer span.End()

	if len(queries) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 player names to compare", ErrInvalidInput)
	}
	if len(queries) > 5 {
		return nil, nil, fmt.Errorf("%w: at most 5 players can be compared at once", ErrInvalidInput)
	}

	players := make([]refdata.Player, 0, len(queries))
	var ambiguous []AmbiguousName
	for _, query := range queries {
		result, err := s.Resolve(ctx, query)
		if err != nil {
			return nil, nil, err
		}
		if !result.Resolved {
			candidates := result.Candidates
			if len(candidates) > 3 {
				candidates = candidates[:3]
			}
			ambiguous = append(ambiguous, AmbiguousName{Query: query, Candidates: candidates})
			continue
		}
		players = append(players, result.Player)
	}

	if len(ambiguous) > 0 {
		return nil, ambiguous, fmt.Errorf("%w: %d of %d names need disambiguation", ErrAmbiguous, len(ambiguous), len(queries))
	}
	return players, nil, nil
}

// TopByPosition ranks players on points per game: top three goalkeepers,
// top ten for each outfield position.
func (s *PlayerService) TopByPosition(ctx context.Context) ([]PositionRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.TopByPosition")
	defer span.End()

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}

	byPosition := make(map[string][]refdata.Player, 4)
	for _, p := range bootstrap.Players {
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}

	order := []string{refdata.PositionGoalkeeper, refdata.PositionDefender, refdata.PositionMidfielder, refdata.PositionForward}
	out := make([]PositionRanking, 0, len(order))
	for _, position := range order {
		players := byPosition[position]
		sort.SliceStable(players, func(i, j int) bool {
			return pointsPerGame(players[i]) > pointsPerGame(players[j])
		})

		limit := 10
		if position == refdata.PositionGoalkeeper {
			limit = 3
		}
		if len(players) > limit {
			players = players[:limit]
		}
		out = append(out, PositionRanking{Position: position, Players: players})
	}

	return out, nil
}

// ByTeam lists a club's squad, grouped by position then priced high to low.
func (s *PlayerService) ByTeam(ctx context.Context, team refdata.Team) ([]refdata.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ByTeam")
	defer span.End()

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}

	players := make([]refdata.Player, 0, 25)
	for _, p := range bootstrap.Players {
		if p.TeamID == team.ID {
			players = append(players, p)
		}
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no players for team %s", ErrNotFound, team.Name)
	}

	rank := map[string]int{
		refdata.PositionGoalkeeper: 1,
		refdata.PositionDefender:   2,
		refdata.PositionMidfielder: 3,
		refdata.PositionForward:    4,
	}
	sort.SliceStable(players, func(i, j int) bool {
		ri, rj := rank[players[i].Position], rank[players[j].Position]
		if ri != rj {
			return ri < rj
		}
		return players[i].NowCost > players[j].NowCost
	})

	return players, nil
}

// Summary fetches a player's detail page and joins club short names onto
// the upcoming fixtures and recent history.
func (s *PlayerService) Summary(ctx context.Context, sess Session, query string) (PlayerSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Summary")
	defer span.End()

	player, err := s.MustResolve(ctx, query)
	if err != nil {
		return PlayerSummary{}, err
	}

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return PlayerSummary{}, err
	}

	summary, err := sess.Gateway.ElementSummary(ctx, player.ID)
	if err != nil {
		return PlayerSummary{}, fmt.Errorf("fetch player summary: %w", err)
	}

	out := PlayerSummary{
		Player:           player,
		Summary:          summary,
		FixtureOpponents: make([]string, len(summary.Fixtures)),
		HistoryOpponents: make([]string, len(summary.History)),
	}
	for i, f := range summary.Fixtures {
		opponent := f.TeamH
		if f.IsHome {
			opponent = f.TeamA
		}
		out.FixtureOpponents[i] = bootstrap.TeamShortName(opponent)
	}
	for i, h := range summary.History {
		out.HistoryOpponents[i] = bootstrap.TeamShortName(h.OpponentTeam)
	}

	return out, nil
}

// Availability classifies a player's fitness from the status flag and news.
func (s *PlayerService) Availability(ctx context.Context, query string) ([]PlayerAvailability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Availability")
	defer span.End()

	result, err := s.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	matches := result.Candidates
	if result.Resolved {
		matches = matches[:1]
	}

	out := make([]PlayerAvailability, 0, len(matches))
	for _, m := range matches {
		out = append(out, classifyAvailability(m.Player))
	}
	return out, nil
}

// PlayersToAvoid lists every player flagged out or doubtful, worst first.
func (s *PlayerService) PlayersToAvoid(ctx context.Context) ([]PlayerAvailability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.PlayersToAvoid")
	defer span.End()

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerAvailability, 0, 32)
	for _, p := range bootstrap.Players {
		verdict := classifyAvailability(p)
		if verdict.Verdict == AvailabilityOK {
			continue
		}
		out = append(out, verdict)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Verdict != out[j].Verdict {
			return out[i].Verdict == AvailabilityOut
		}
		return out[i].Player.NowCost > out[j].Player.NowCost
	})

	return out, nil
}

// Status flags per the bootstrap: a=available, d=doubtful, i=injured,
// s=suspended, u=unavailable, n=not in squad.
func classifyAvailability(p refdata.Player) PlayerAvailability {
	out := PlayerAvailability{Player: p, Verdict: AvailabilityOK, Reason: "No flags reported"}

	switch p.Status {
	case "i", "s", "u", "n":
		out.Verdict = AvailabilityOut
	case "d":
		out.Verdict = AvailabilityDoubtful
	}
	if p.News != "" {
		out.Reason = p.News
	} else if out.Verdict != AvailabilityOK {
		out.Reason = "Flagged by status " + p.Status
	}
	if p.ChanceOfPlayingNext != nil && out.Verdict != AvailabilityOut {
		if *p.ChanceOfPlayingNext == 0 {
			out.Verdict = AvailabilityOut
		} else if *p.ChanceOfPlayingNext <= 50 {
			out.Verdict = AvailabilityDoubtful
		}
	}

	return out
}

func pointsPerGame(p refdata.Player) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(p.PointsPerGame), 64)
	if err != nil {
		return 0
	}
	return value
}
