package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ManagerGameweek is one manager's team selection with names joined on.
type ManagerGameweek struct {
	League     LeagueRef
	Manager    StandingRow
	Picks      ManagerPicks
	PlayerName map[int]string
}

// ManagerComparison puts two to four managers' gameweek selections side by
// side: totals, captains, and the shared vs unique starters.
type ManagerComparison struct {
	Gameweek   int
	League     LeagueRef
	Entries    []ComparedManager
	CommonXI   []string
	PlayerName map[int]string
}

// ComparedManager is one manager's slice of the comparison.
type ComparedManager struct {
	Manager  StandingRow
	History  GameweekHistory
	Captain  string
	UniqueXI []string
}

// LeagueService answers classic-league questions: standings by league name
// and manager lookups inside a league.
type LeagueService struct {
	refData *RefDataService
}

func NewLeagueService(refData *RefDataService) *LeagueService {
	return &LeagueService{refData: refData}
}

// FindLeague resolves a league by name among the user's classic leagues.
func (s *LeagueService) FindLeague(ctx context.Context, sess Session, name string) (LeagueRef, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.FindLeague")
	defer span.End()

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return LeagueRef{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	entry, err := sess.Gateway.ManagerEntry(ctx, sess.EntryID)
	if err != nil {
		return LeagueRef{}, fmt.Errorf("fetch manager entry: %w", err)
	}

	for _, league := range entry.ClassicLeagues {
		if strings.ToLower(league.Name) == needle {
			return league, nil
		}
	}
	for _, league := range entry.ClassicLeagues {
		if strings.Contains(strings.ToLower(league.Name), needle) {
			return league, nil
		}
	}

	return LeagueRef{}, fmt.Errorf("%w: no league named %q among your leagues", ErrNotFound, name)
}

// Standings returns one page of a league table, resolved by league name.
func (s *LeagueService) Standings(ctx context.Context, sess Session, leagueName string, page int) (LeagueStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Standings")
	defer span.End()

	if page < 1 {
		page = 1
	}

	league, err := s.FindLeague(ctx, sess, leagueName)
	if err != nil {
		return LeagueStandings{}, err
	}

	standings, err := sess.Gateway.LeagueStandings(ctx, league.ID, page)
	if err != nil {
		return LeagueStandings{}, fmt.Errorf("fetch league standings: %w", err)
	}
	if len(standings.Results) == 0 {
		return LeagueStandings{}, fmt.Errorf("%w: no standings for league %q page %d", ErrNotFound, leagueName, page)
	}

	return standings, nil
}

// findManager scans the league table for a manager by player or team name.
func (s *LeagueService) findManager(ctx context.Context, sess Session, leagueID int, name string) (StandingRow, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return StandingRow{}, fmt.Errorf("%w: manager name is required", ErrInvalidInput)
	}

	for page := 1; page <= 5; page++ {
		standings, err := sess.Gateway.LeagueStandings(ctx, leagueID, page)
		if err != nil {
			return StandingRow{}, fmt.Errorf("fetch league standings: %w", err)
		}
		for _, row := range standings.Results {
			if strings.Contains(strings.ToLower(row.PlayerName), needle) ||
				strings.Contains(strings.ToLower(row.EntryName), needle) {
				return row, nil
			}
		}
		if !standings.HasNext {
			break
		}
	}

	return StandingRow{}, fmt.Errorf("%w: no manager matching %q in league", ErrNotFound, name)
}

// ManagerGameweekTeam fetches a named manager's picks for one gameweek.
func (s *LeagueService) ManagerGameweekTeam(ctx context.Context, sess Session, managerName, leagueName string, gameweek int) (ManagerGameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ManagerGameweekTeam")
	defer span.End()

	if gameweek < 1 || gameweek > 38 {
		return ManagerGameweek{}, fmt.Errorf("%w: gameweek must be 1-38, got %d", ErrInvalidInput, gameweek)
	}

	league, err := s.FindLeague(ctx, sess, leagueName)
	if err != nil {
		return ManagerGameweek{}, err
	}
	manager, err := s.findManager(ctx, sess, league.ID, managerName)
	if err != nil {
		return ManagerGameweek{}, err
	}

	picks, err := sess.Gateway.ManagerPicks(ctx, manager.EntryID, gameweek)
	if err != nil {
		return ManagerGameweek{}, fmt.Errorf("fetch manager picks: %w", err)
	}
	if len(picks.Picks) == 0 {
		return ManagerGameweek{}, fmt.Errorf("%w: no team data for %s in gameweek %d", ErrNotFound, manager.PlayerName, gameweek)
	}

	names, err := s.rehydrate(ctx, picks)
	if err != nil {
		return ManagerGameweek{}, err
	}

	return ManagerGameweek{League: league, Manager: manager, Picks: picks, PlayerName: names}, nil
}

// CompareManagers fetches each named manager's picks for the gameweek and
// computes captains plus the common/unique starting elevens.
func (s *LeagueService) CompareManagers(ctx context.Context, sess Session, managerNames []string, leagueName string, gameweek int) (ManagerComparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CompareManagers")
	defer span.End()

	if len(managerNames) < 2 {
		return ManagerComparison{}, fmt.Errorf("%w: need at least 2 managers to compare", ErrInvalidInput)
	}
	if len(managerNames) > 4 {
		return ManagerComparison{}, fmt.Errorf("%w: at most 4 managers can be compared at once", ErrInvalidInput)
	}

	league, err := s.FindLeague(ctx, sess, leagueName)
	if err != nil {
		return ManagerComparison{}, err
	}

	comparison := ManagerComparison{Gameweek: gameweek, League: league, PlayerName: map[int]string{}}
	startingXIs := make([]map[int]struct{}, 0, len(managerNames))

	for _, name := range managerNames {
		manager, err := s.findManager(ctx, sess, league.ID, name)
		if err != nil {
			return ManagerComparison{}, err
		}
		picks, err := sess.Gateway.ManagerPicks(ctx, manager.EntryID, gameweek)
		if err != nil {
			return ManagerComparison{}, fmt.Errorf("fetch picks for %s: %w", manager.PlayerName, err)
		}

		names, err := s.rehydrate(ctx, picks)
		if err != nil {
			return ManagerComparison{}, err
		}
		for id, n := range names {
			comparison.PlayerName[id] = n
		}

		xi := make(map[int]struct{}, 11)
		captain := ""
		for _, pick := range picks.Picks {
			if pick.Position <= 11 {
				xi[pick.Element] = struct{}{}
			}
			if pick.IsCaptain {
				captain = names[pick.Element]
			}
		}
		startingXIs = append(startingXIs, xi)

		comparison.Entries = append(comparison.Entries, ComparedManager{
			Manager: manager,
			History: picks.EntryHistory,
			Captain: captain,
		})
	}

	// Intersection of every starting XI.
	for element := range startingXIs[0] {
		shared := true
		for _, xi := range startingXIs[1:] {
			if _, ok := xi[element]; !ok {
				shared = false
				break
			}
		}
		if shared {
			comparison.CommonXI = append(comparison.CommonXI, comparison.PlayerName[element])
		}
	}
	sort.Strings(comparison.CommonXI)

	for i := range comparison.Entries {
		var unique []string
		for element := range startingXIs[i] {
			elsewhere := false
			for j, other := range startingXIs {
				if j == i {
					continue
				}
				if _, ok := other[element]; ok {
					elsewhere = true
					break
				}
			}
			if !elsewhere {
				unique = append(unique, comparison.PlayerName[element])
			}
		}
		sort.Strings(unique)
		comparison.Entries[i].UniqueXI = unique
	}

	return comparison, nil
}

// rehydrate maps pick element ids to display names via the reference data.
func (s *LeagueService) rehydrate(ctx context.Context, picks ManagerPicks) (map[int]string, error) {
	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(picks.Picks)+2*len(picks.AutomaticSubs))
	add := func(element int) {
		if _, ok := names[element]; ok {
			return
		}
		if p, ok := bootstrap.PlayerByID(element); ok {
			names[element] = p.WebName
		} else {
			names[element] = fmt.Sprintf("player %d", element)
		}
	}
	for _, pick := range picks.Picks {
		add(pick.Element)
	}
	for _, sub := range picks.AutomaticSubs {
		add(sub.ElementIn)
		add(sub.ElementOut)
	}

	return names, nil
}
