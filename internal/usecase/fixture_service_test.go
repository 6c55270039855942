package usecase

import (
	stderrors "errors"
	"testing"
	"time"
)

func newTestFixtures(t *testing.T, fixtures []map[string]any) *FixtureService {
	t.Helper()

	gw := &fakeGateway{
		bootstrapRaw: sampleBootstrapJSON(t),
		fixturesRaw:  sampleFixturesJSON(t, fixtures),
	}
	refData := newTestRefData(t, gw)
	gameweeks := NewGameweekService(refData)
	gameweeks.now = func() time.Time {
		return time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)
	}
	return NewFixtureService(refData, gameweeks, NewTeamService(refData))
}

func TestForGameweek_SortsByKickoff(t *testing.T) {
	service := newTestFixtures(t, []map[string]any{
		{"id": 1, "event": 7, "team_h": 1, "team_a": 2, "kickoff_time": "2026-10-04T16:30:00Z"},
		{"id": 2, "event": 7, "team_h": 2, "team_a": 1, "kickoff_time": "2026-10-04T11:30:00Z"},
		{"id": 3, "event": 8, "team_h": 1, "team_a": 2, "kickoff_time": "2026-10-11T14:00:00Z"},
	})

	fixtures, err := service.ForGameweek(t.Context(), 7)
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}
	if fixtures[0].Fixture.ID != 2 || fixtures[1].Fixture.ID != 1 {
		t.Fatalf("not in kickoff order: %+v", fixtures)
	}
	if fixtures[0].HomeShort != "MCI" || fixtures[0].AwayShort != "LIV" {
		t.Fatalf("club codes not joined: %+v", fixtures[0])
	}
}

func TestForGameweek_NoFixturesIsNotFound(t *testing.T) {
	service := newTestFixtures(t, []map[string]any{
		{"id": 1, "event": 7, "team_h": 1, "team_a": 2},
	})

	if _, err := service.ForGameweek(t.Context(), 20); !stderrors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamRun_GradesDifficulty(t *testing.T) {
	service := newTestFixtures(t, []map[string]any{
		{"id": 1, "event": 7, "team_h": 1, "team_a": 2, "team_h_difficulty": 2, "team_a_difficulty": 4},
		{"id": 2, "event": 8, "team_h": 2, "team_a": 1, "team_h_difficulty": 3, "team_a_difficulty": 2},
		// Already played; must not count.
		{"id": 3, "event": 6, "team_h": 1, "team_a": 2, "team_h_difficulty": 5, "team_a_difficulty": 5, "finished": true},
	})

	run, err := service.TeamRun(t.Context(), "liverpool", 5)
	if err != nil {
		t.Fatalf("team run: %v", err)
	}
	if run.Team.ID != 1 || len(run.Fixtures) != 2 {
		t.Fatalf("unexpected run %+v", run)
	}

	first := run.Fixtures[0]
	if !first.IsHome || first.Difficulty != 2 || first.Opponent != "Manchester City" {
		t.Fatalf("unexpected first fixture %+v", first)
	}
	second := run.Fixtures[1]
	if second.IsHome || second.Difficulty != 2 {
		t.Fatalf("unexpected second fixture %+v", second)
	}

	if run.AverageDifficulty != 2 || run.Assessment != "Favorable" {
		t.Fatalf("unexpected grading %+v", run)
	}
}

func TestTeamRun_LimitsWindow(t *testing.T) {
	service := newTestFixtures(t, []map[string]any{
		{"id": 1, "event": 7, "team_h": 1, "team_a": 2, "team_h_difficulty": 4},
		{"id": 2, "event": 9, "team_h": 1, "team_a": 2, "team_h_difficulty": 4},
	})

	run, err := service.TeamRun(t.Context(), "liverpool", 2)
	if err != nil {
		t.Fatalf("team run: %v", err)
	}
	if len(run.Fixtures) != 1 || *run.Fixtures[0].Fixture.Event != 7 {
		t.Fatalf("window not applied: %+v", run.Fixtures)
	}
}

func TestTeamRun_NoUpcomingFixturesIsNotFound(t *testing.T) {
	service := newTestFixtures(t, []map[string]any{
		{"id": 1, "event": 6, "team_h": 1, "team_a": 2, "finished": true},
	})

	if _, err := service.TeamRun(t.Context(), "liverpool", 5); !stderrors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
