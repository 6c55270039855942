package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

func newTestChips(t *testing.T, gw *fakeGateway) (*ChipService, Session) {
	t.Helper()

	gw.bootstrapRaw = sampleBootstrapJSON(t)
	refData := newTestRefData(t, gw)
	squad := NewSquadService(refData, logging.NewNop())
	gameweeks := NewGameweekService(refData)
	gameweeks.now = func() time.Time {
		return time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)
	}
	return NewChipService(refData, squad, gameweeks), Session{Gateway: gw, EntryID: 42}
}

func allChipsAvailable() []ChipStatus {
	return []ChipStatus{
		{Name: ChipWildcard, StatusForEntry: "available"},
		{Name: ChipFreeHit, StatusForEntry: "available"},
		{Name: ChipTripleCaptain, StatusForEntry: "available"},
		{Name: ChipBenchBoost, StatusForEntry: "available"},
	}
}

func TestPlan_DoubleGameweekDrivesAdvice(t *testing.T) {
	gw := &fakeGateway{
		myTeam: MyTeam{
			Picks: []Pick{
				{Element: 301, Position: 7},
				{Element: 705, Position: 12},
			},
			Chips: allChipsAvailable(),
		},
	}
	chips, sess := newTestChips(t, gw)
	// GW7 doubles both clubs; GW8 is a normal round.
	gw.fixturesRaw = sampleFixturesJSON(t, []map[string]any{
		{"id": 1, "event": 7, "team_h": 1, "team_a": 2},
		{"id": 2, "event": 7, "team_h": 2, "team_a": 1},
		{"id": 3, "event": 8, "team_h": 1, "team_a": 2},
	})

	plan, err := chips.Plan(t.Context(), sess)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Available) != 4 {
		t.Fatalf("expected 4 available chips, got %d", len(plan.Available))
	}

	if len(plan.Shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %+v", plan.Shapes)
	}
	double := plan.Shapes[0]
	if double.Gameweek != 7 || !double.IsDouble || len(double.DoubleTeams) != 2 {
		t.Fatalf("GW7 should be a full double, got %+v", double)
	}
	if plan.Shapes[1].IsDouble || plan.Shapes[1].IsBlank {
		t.Fatalf("GW8 should be a normal round, got %+v", plan.Shapes[1])
	}

	byChip := make(map[string]ChipAdvice, len(plan.Advice))
	for _, advice := range plan.Advice {
		byChip[advice.Chip] = advice
	}
	if byChip[ChipWildcard].Priority != PriorityHigh {
		t.Fatalf("wildcard should be high ahead of a double, got %+v", byChip[ChipWildcard])
	}
	if byChip[ChipTripleCaptain].Priority != PriorityHigh {
		t.Fatalf("triple captain should be high with a doubling premium, got %+v", byChip[ChipTripleCaptain])
	}
	if byChip[ChipBenchBoost].Priority != PriorityMedium {
		t.Fatalf("one doubled bench player should be medium, got %+v", byChip[ChipBenchBoost])
	}
	if byChip[ChipFreeHit].Priority != PriorityLow {
		t.Fatalf("free hit has no blank to target, got %+v", byChip[ChipFreeHit])
	}

	// High priorities lead the report.
	if plan.Advice[0].Priority != PriorityHigh || plan.Advice[len(plan.Advice)-1].Priority != PriorityLow {
		t.Fatalf("advice not sorted by priority: %+v", plan.Advice)
	}
}

func TestPlan_NoChipsLeftIsStillAPlan(t *testing.T) {
	gw := &fakeGateway{
		myTeam: MyTeam{
			Picks: []Pick{{Element: 301, Position: 7}},
			Chips: []ChipStatus{
				{Name: ChipWildcard, StatusForEntry: "played", PlayedByEntry: true},
			},
		},
	}
	chips, sess := newTestChips(t, gw)
	gw.fixturesRaw = sampleFixturesJSON(t, []map[string]any{
		{"id": 1, "event": 7, "team_h": 1, "team_a": 2},
	})

	plan, err := chips.Plan(t.Context(), sess)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Available) != 0 || len(plan.Advice) != 0 {
		t.Fatalf("played chips must not produce advice: %+v", plan)
	}
}

func TestPlan_UnavailableSquadTriggersWildcard(t *testing.T) {
	gw := &fakeGateway{
		myTeam: MyTeam{
			// Three flagged players and no doubles: the wildcard case is
			// the squad falling apart, not the calendar.
			Picks: []Pick{
				{Element: 604, Position: 1},
				{Element: 705, Position: 2},
				{Element: 604, Position: 12},
			},
			Chips: []ChipStatus{{Name: ChipWildcard, StatusForEntry: "available"}},
		},
	}
	chips, sess := newTestChips(t, gw)
	gw.fixturesRaw = sampleFixturesJSON(t, []map[string]any{
		{"id": 1, "event": 7, "team_h": 1, "team_a": 2},
	})

	plan, err := chips.Plan(t.Context(), sess)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Advice) != 1 || plan.Advice[0].Priority != PriorityHigh {
		t.Fatalf("expected high wildcard advice, got %+v", plan.Advice)
	}
}
