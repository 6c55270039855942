package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
)

// EnrichedFixture is a fixture with club short names joined on.
type EnrichedFixture struct {
	Fixture   refdata.Fixture
	HomeShort string
	AwayShort string
}

// TeamFixture is one upcoming match from a single club's point of view.
type TeamFixture struct {
	Fixture    refdata.Fixture
	Opponent   string
	IsHome     bool
	Difficulty int
}

// FixtureRun is a club's next stretch of matches with a difficulty verdict.
type FixtureRun struct {
	Team              refdata.Team
	Fixtures          []TeamFixture
	AverageDifficulty float64
	Assessment        string
}

// FixtureService reads the fixture list out of the reference snapshot.
type FixtureService struct {
	refData  *RefDataService
	gameweek *GameweekService
	teams    *TeamService
}

func NewFixtureService(refData *RefDataService, gameweek *GameweekService, teams *TeamService) *FixtureService {
	return &FixtureService{refData: refData, gameweek: gameweek, teams: teams}
}

// ForGameweek lists a gameweek's fixtures in kickoff order with club names.
func (s *FixtureService) ForGameweek(ctx context.Context, number int) ([]EnrichedFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ForGameweek")
	defer span.End()

	fixtures, err := s.refData.Fixtures(ctx)
	if err != nil {
		return nil, err
	}
	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]EnrichedFixture, 0, 10)
	for _, f := range fixtures {
		if f.Event == nil || *f.Event != number {
			continue
		}
		out = append(out, EnrichedFixture{
			Fixture:   f,
			HomeShort: bootstrap.TeamShortName(f.TeamH),
			AwayShort: bootstrap.TeamShortName(f.TeamA),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no fixtures for gameweek %d", ErrNotFound, number)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return kickoff(out[i].Fixture) < kickoff(out[j].Fixture)
	})

	return out, nil
}

// TeamRun analyzes a club's next stretch of unfinished fixtures, starting
// at the current gameweek, and grades the average difficulty.
func (s *FixtureService) TeamRun(ctx context.Context, teamQuery string, gameweeks int) (FixtureRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.TeamRun")
	defer span.End()

	if gameweeks < 1 {
		gameweeks = 5
	}

	team, _, err := s.teams.Match(ctx, teamQuery)
	if err != nil {
		return FixtureRun{}, err
	}

	current, err := s.gameweek.Current(ctx)
	if err != nil {
		return FixtureRun{}, err
	}
	startGW := current.Event.ID
	endGW := startGW + gameweeks

	fixtures, err := s.refData.Fixtures(ctx)
	if err != nil {
		return FixtureRun{}, err
	}
	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return FixtureRun{}, err
	}

	run := FixtureRun{Team: team}
	total := 0
	for _, f := range fixtures {
		if f.Finished || f.Event == nil || *f.Event < startGW || *f.Event >= endGW {
			continue
		}
		if f.TeamH != team.ID && f.TeamA != team.ID {
			continue
		}

		isHome := f.TeamH == team.ID
		opponent, difficulty := f.TeamA, f.TeamHDifficulty
		if !isHome {
			opponent, difficulty = f.TeamH, f.TeamADifficulty
		}

		run.Fixtures = append(run.Fixtures, TeamFixture{
			Fixture:    f,
			Opponent:   bootstrap.TeamName(opponent),
			IsHome:     isHome,
			Difficulty: difficulty,
		})
		total += difficulty
	}
	if len(run.Fixtures) == 0 {
		return FixtureRun{}, fmt.Errorf("%w: no upcoming fixtures for %s", ErrNotFound, team.Name)
	}

	sort.SliceStable(run.Fixtures, func(i, j int) bool {
		return *run.Fixtures[i].Fixture.Event < *run.Fixtures[j].Fixture.Event
	})

	run.AverageDifficulty = float64(total) / float64(len(run.Fixtures))
	switch {
	case run.AverageDifficulty < 3:
		run.Assessment = "Favorable"
	case run.AverageDifficulty < 3.5:
		run.Assessment = "Moderate"
	default:
		run.Assessment = "Difficult"
	}

	return run, nil
}

func kickoff(f refdata.Fixture) string {
	if f.KickoffTime == nil {
		return ""
	}
	return *f.KickoffTime
}
