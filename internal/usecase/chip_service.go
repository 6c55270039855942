package usecase

import (
	"context"
	"fmt"
	"sort"
)

// Chip names as the upstream reports them.
const (
	ChipWildcard      = "wildcard"
	ChipFreeHit       = "freehit"
	ChipTripleCaptain = "3xc"
	ChipBenchBoost    = "bboost"
)

// Recommendation priority levels.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// premiumCostTenths marks the price point where triple captain pays off.
const premiumCostTenths = 90

// chipScanWindow is how many upcoming gameweeks the heuristics scan for
// doubles and blanks.
const chipScanWindow = 10

// GameweekShape describes one upcoming gameweek's fixture load.
type GameweekShape struct {
	Gameweek     int
	TeamsPlaying int
	DoubleTeams  []int
	IsDouble     bool
	IsBlank      bool
}

// ChipAdvice is one chip's timing recommendation.
type ChipAdvice struct {
	Chip     string
	Priority string
	Reason   string
}

// ChipPlan is the full chip report for the authenticated user.
type ChipPlan struct {
	Available []ChipStatus
	Shapes    []GameweekShape
	Advice    []ChipAdvice
}

// ChipService turns the fixture calendar and the user's squad into chip
// timing advice: wildcard ahead of doubles, free hit for blanks, triple
// captain for premiums in doubles, bench boost for a doubled bench.
type ChipService struct {
	refData  *RefDataService
	squad    *SquadService
	gameweek *GameweekService
}

func NewChipService(refData *RefDataService, squad *SquadService, gameweek *GameweekService) *ChipService {
	return &ChipService{refData: refData, squad: squad, gameweek: gameweek}
}

// Plan builds the chip report. An entry with no chips left still gets a
// plan: the available list is explicitly empty rather than an error.
func (s *ChipService) Plan(ctx context.Context, sess Session) (ChipPlan, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChipService.Plan")
	defer span.End()

	squad, err := s.squad.MySquad(ctx, sess)
	if err != nil {
		return ChipPlan{}, err
	}

	plan := ChipPlan{Available: make([]ChipStatus, 0, 4)}
	for _, chip := range squad.Chips {
		if chip.StatusForEntry == "available" && !chip.PlayedByEntry {
			plan.Available = append(plan.Available, chip)
		}
	}

	shapes, err := s.upcomingShapes(ctx)
	if err != nil {
		return ChipPlan{}, err
	}
	plan.Shapes = shapes

	for _, chip := range plan.Available {
		plan.Advice = append(plan.Advice, s.advise(chip.Name, shapes, squad))
	}
	sort.SliceStable(plan.Advice, func(i, j int) bool {
		return priorityRank(plan.Advice[i].Priority) < priorityRank(plan.Advice[j].Priority)
	})

	return plan, nil
}

// upcomingShapes counts fixtures per team for the next scan window and
// flags doubles (any team playing twice) and blanks (under 60% of teams
// with a fixture).
func (s *ChipService) upcomingShapes(ctx context.Context) ([]GameweekShape, error) {
	current, err := s.gameweek.Current(ctx)
	if err != nil {
		return nil, err
	}
	fixtures, err := s.refData.Fixtures(ctx)
	if err != nil {
		return nil, err
	}
	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	teamCount := len(bootstrap.Teams)
	if teamCount == 0 {
		return nil, fmt.Errorf("%w: no teams in reference data", ErrDataUnavailable)
	}

	startGW := current.Event.ID
	endGW := startGW + chipScanWindow

	perGW := make(map[int]map[int]int, chipScanWindow)
	for _, f := range fixtures {
		if f.Finished || f.Event == nil || *f.Event < startGW || *f.Event >= endGW {
			continue
		}
		if perGW[*f.Event] == nil {
			perGW[*f.Event] = make(map[int]int, teamCount)
		}
		perGW[*f.Event][f.TeamH]++
		perGW[*f.Event][f.TeamA]++
	}

	shapes := make([]GameweekShape, 0, chipScanWindow)
	for gw := startGW; gw < endGW; gw++ {
		counts, ok := perGW[gw]
		if !ok {
			continue
		}

		shape := GameweekShape{Gameweek: gw, TeamsPlaying: len(counts)}
		for teamID, n := range counts {
			if n >= 2 {
				shape.DoubleTeams = append(shape.DoubleTeams, teamID)
			}
		}
		sort.Ints(shape.DoubleTeams)
		shape.IsDouble = len(shape.DoubleTeams) > 0
		shape.IsBlank = float64(len(counts)) < 0.6*float64(teamCount)
		shapes = append(shapes, shape)
	}

	return shapes, nil
}

func (s *ChipService) advise(chip string, shapes []GameweekShape, squad Squad) ChipAdvice {
	switch chip {
	case ChipWildcard:
		return adviseWildcard(shapes, squad)
	case ChipFreeHit:
		return adviseFreeHit(shapes)
	case ChipTripleCaptain:
		return adviseTripleCaptain(shapes, squad)
	case ChipBenchBoost:
		return adviseBenchBoost(shapes, squad)
	default:
		return ChipAdvice{Chip: chip, Priority: PriorityLow, Reason: "No timing heuristic for this chip"}
	}
}

// adviseWildcard fires ahead of doubles or when the squad is falling apart.
func adviseWildcard(shapes []GameweekShape, squad Squad) ChipAdvice {
	advice := ChipAdvice{Chip: ChipWildcard, Priority: PriorityLow, Reason: "No double gameweek in sight; hold"}

	unavailable := 0
	for _, pick := range squad.Picks {
		if pick.Player.Status != "" && pick.Player.Status != "a" {
			unavailable++
		}
	}
	if unavailable >= 3 {
		return ChipAdvice{
			Chip:     ChipWildcard,
			Priority: PriorityHigh,
			Reason:   fmt.Sprintf("%d squad players flagged unavailable; rebuild now", unavailable),
		}
	}

	for i, shape := range shapes {
		if shape.IsDouble && i < 5 {
			return ChipAdvice{
				Chip:     ChipWildcard,
				Priority: PriorityHigh,
				Reason:   fmt.Sprintf("Double in GW%d; wildcard one gameweek before to load up", shape.Gameweek),
			}
		}
	}

	return advice
}

// adviseFreeHit saves the chip for blanks.
func adviseFreeHit(shapes []GameweekShape) ChipAdvice {
	for i, shape := range shapes {
		if !shape.IsBlank {
			continue
		}
		priority := PriorityMedium
		if i < 3 {
			priority = PriorityHigh
		}
		return ChipAdvice{
			Chip:     ChipFreeHit,
			Priority: priority,
			Reason:   fmt.Sprintf("Blank in GW%d with only %d teams playing", shape.Gameweek, shape.TeamsPlaying),
		}
	}

	for _, shape := range shapes {
		if shape.IsDouble {
			return ChipAdvice{
				Chip:     ChipFreeHit,
				Priority: PriorityLow,
				Reason:   fmt.Sprintf("No blank coming; GW%d double is a backup target", shape.Gameweek),
			}
		}
	}
	return ChipAdvice{Chip: ChipFreeHit, Priority: PriorityLow, Reason: "No blank gameweek in sight; hold"}
}

// adviseTripleCaptain wants a premium with a double.
func adviseTripleCaptain(shapes []GameweekShape, squad Squad) ChipAdvice {
	premiums := make(map[int]string)
	for _, pick := range squad.Picks {
		if pick.Player.NowCost >= premiumCostTenths {
			premiums[pick.Player.TeamID] = pick.Player.WebName
		}
	}
	if len(premiums) == 0 {
		return ChipAdvice{Chip: ChipTripleCaptain, Priority: PriorityLow, Reason: "No premium player in squad; hold"}
	}

	for _, shape := range shapes {
		for _, teamID := range shape.DoubleTeams {
			if name, ok := premiums[teamID]; ok {
				return ChipAdvice{
					Chip:     ChipTripleCaptain,
					Priority: PriorityHigh,
					Reason:   fmt.Sprintf("%s doubles in GW%d", name, shape.Gameweek),
				}
			}
		}
	}

	return ChipAdvice{Chip: ChipTripleCaptain, Priority: PriorityMedium, Reason: "Premiums in squad but no double for them yet"}
}

// adviseBenchBoost wants the bench doubled up.
func adviseBenchBoost(shapes []GameweekShape, squad Squad) ChipAdvice {
	benchTeams := make(map[int]struct{}, 4)
	for _, pick := range squad.Picks {
		if pick.Pick.Position > 11 {
			benchTeams[pick.Player.TeamID] = struct{}{}
		}
	}

	for _, shape := range shapes {
		doubled := 0
		for _, teamID := range shape.DoubleTeams {
			if _, ok := benchTeams[teamID]; ok {
				doubled++
			}
		}
		if doubled >= 2 {
			return ChipAdvice{
				Chip:     ChipBenchBoost,
				Priority: PriorityHigh,
				Reason:   fmt.Sprintf("%d bench players double in GW%d", doubled, shape.Gameweek),
			}
		}
		if doubled == 1 {
			return ChipAdvice{
				Chip:     ChipBenchBoost,
				Priority: PriorityMedium,
				Reason:   fmt.Sprintf("One bench player doubles in GW%d; improve the bench first", shape.Gameweek),
			}
		}
	}

	return ChipAdvice{Chip: ChipBenchBoost, Priority: PriorityLow, Reason: "No bench double gameweek in sight; hold"}
}

func priorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
