package usecase

import (
	"context"
	"fmt"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fpl-assistant/internal/platform/diskcache"
	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

// fakeGateway is the in-memory stand-in for the remote API, shared by the
// service tests. Zero values behave like an empty but healthy upstream.
type fakeGateway struct {
	bootstrapRaw   []byte
	bootstrapErr   error
	bootstrapCalls int
	fixturesRaw    []byte
	fixturesErr    error
	fixturesCalls  int

	account      AccountInfo
	myTeam       MyTeam
	myTeamErr    error
	entry        ManagerEntry
	entryErr     error
	standings    map[int]LeagueStandings
	picks        map[string]ManagerPicks
	summaries    map[int]ElementSummary
	transferResp string
	transferErr  error
	lastTransfer TransferPayload
}

func (g *fakeGateway) FetchBootstrap(context.Context) ([]byte, error) {
	g.bootstrapCalls++
	return g.bootstrapRaw, g.bootstrapErr
}

func (g *fakeGateway) FetchFixtures(context.Context) ([]byte, error) {
	g.fixturesCalls++
	return g.fixturesRaw, g.fixturesErr
}

func (g *fakeGateway) AccountInfo(context.Context) (AccountInfo, error) {
	return g.account, nil
}

func (g *fakeGateway) MyTeam(context.Context, int) (MyTeam, error) {
	return g.myTeam, g.myTeamErr
}

func (g *fakeGateway) ManagerEntry(context.Context, int) (ManagerEntry, error) {
	return g.entry, g.entryErr
}

func (g *fakeGateway) LeagueStandings(_ context.Context, _ int, page int) (LeagueStandings, error) {
	return g.standings[page], nil
}

func (g *fakeGateway) ManagerPicks(_ context.Context, entryID, gameweek int) (ManagerPicks, error) {
	return g.picks[fmt.Sprintf("%d/%d", entryID, gameweek)], nil
}

func (g *fakeGateway) ElementSummary(_ context.Context, playerID int) (ElementSummary, error) {
	summary, ok := g.summaries[playerID]
	if !ok {
		return ElementSummary{}, fmt.Errorf("no summary for element %d", playerID)
	}
	return summary, nil
}

func (g *fakeGateway) ExecuteTransfers(_ context.Context, payload TransferPayload) (string, error) {
	g.lastTransfer = payload
	return g.transferResp, g.transferErr
}

func (g *fakeGateway) Authenticated(string) Gateway { return g }

type staticIDGenerator struct {
	ids  []string
	next int
}

func (g *staticIDGenerator) NewID() (string, error) {
	if g.next >= len(g.ids) {
		return "", fmt.Errorf("id generator exhausted")
	}
	id := g.ids[g.next]
	g.next++
	return id, nil
}

type stubAuthenticator struct {
	token string
	err   error
}

func (a stubAuthenticator) Login(context.Context, string, string) (string, error) {
	return a.token, a.err
}

// samplePlayer builds one bootstrap element row as the upstream serializes it.
func samplePlayer(id int, webName, first, second string, team, elementType, nowCost int, extra map[string]any) map[string]any {
	row := map[string]any{
		"id":                           id,
		"web_name":                     webName,
		"first_name":                   first,
		"second_name":                  second,
		"team":                         team,
		"element_type":                 elementType,
		"now_cost":                     nowCost,
		"form":                         "5.0",
		"points_per_game":              "4.0",
		"total_points":                 80,
		"selected_by_percent":          "20.0",
		"news":                         "",
		"status":                       "a",
		"chance_of_playing_next_round": nil,
		"expected_goal_involvements":   "0.5",
		"transfers_in_event":           0,
		"transfers_out_event":          0,
		"event_points":                 5,
		"cost_change_start":            0,
		"ict_index":                    "100.0",
		"minutes":                      900,
		"goals_scored":                 5,
		"assists":                      3,
		"clean_sheets":                 2,
	}
	for k, v := range extra {
		row[k] = v
	}
	return row
}

// sampleBootstrapJSON is the reference snapshot most service tests load:
// two clubs, four positions, two gameweeks, and a handful of players.
func sampleBootstrapJSON(t *testing.T, overrides ...func(doc map[string]any)) []byte {
	t.Helper()

	doc := map[string]any{
		"teams": []map[string]any{
			{"id": 1, "name": "Liverpool", "short_name": "LIV", "strength": 5,
				"strength_overall_home": 1350, "strength_overall_away": 1330,
				"strength_attack_home": 1360, "strength_attack_away": 1340,
				"strength_defence_home": 1330, "strength_defence_away": 1320},
			{"id": 2, "name": "Manchester City", "short_name": "MCI", "strength": 5,
				"strength_overall_home": 1360, "strength_overall_away": 1340,
				"strength_attack_home": 1370, "strength_attack_away": 1350,
				"strength_defence_home": 1340, "strength_defence_away": 1330},
		},
		"element_types": []map[string]any{
			{"id": 1, "singular_name": "Goalkeeper", "singular_name_short": "GKP", "squad_select": 2, "squad_min_play": 1, "squad_max_play": 1},
			{"id": 2, "singular_name": "Defender", "singular_name_short": "DEF", "squad_select": 5, "squad_min_play": 3, "squad_max_play": 5},
			{"id": 3, "singular_name": "Midfielder", "singular_name_short": "MID", "squad_select": 5, "squad_min_play": 2, "squad_max_play": 5},
			{"id": 4, "singular_name": "Forward", "singular_name_short": "FWD", "squad_select": 3, "squad_min_play": 1, "squad_max_play": 3},
		},
		"events": []map[string]any{
			{"id": 7, "name": "Gameweek 7", "deadline_time": "2026-10-03T10:00:00Z",
				"is_current": true, "is_previous": false, "is_next": false, "finished": false,
				"average_entry_score": 52, "most_captained": 301, "most_selected": 301},
			{"id": 8, "name": "Gameweek 8", "deadline_time": "2026-10-10T10:00:00Z",
				"is_current": false, "is_previous": false, "is_next": true, "finished": false},
		},
		"elements": []map[string]any{
			samplePlayer(301, "Salah", "Mohamed", "Salah", 1, 3, 130,
				map[string]any{"points_per_game": "7.5", "total_points": 150}),
			samplePlayer(402, "B.Silva", "Bernardo", "Silva", 2, 3, 65, nil),
			samplePlayer(503, "Haaland", "Erling", "Haaland", 2, 4, 145,
				map[string]any{"points_per_game": "8.2", "total_points": 160}),
			samplePlayer(604, "Alisson", "Alisson", "Becker", 1, 1, 55,
				map[string]any{"status": "i", "news": "Hamstring injury - expected back 15 Nov"}),
			samplePlayer(705, "Gomez", "Joe", "Gomez", 1, 2, 45,
				map[string]any{"status": "d", "chance_of_playing_next_round": 50}),
		},
	}
	for _, override := range overrides {
		override(doc)
	}

	raw, err := sonic.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal bootstrap: %v", err)
	}
	return raw
}

func sampleFixturesJSON(t *testing.T, fixtures []map[string]any) []byte {
	t.Helper()

	raw, err := sonic.Marshal(fixtures)
	if err != nil {
		t.Fatalf("marshal fixtures: %v", err)
	}
	return raw
}

func newTestRefData(t *testing.T, gw Gateway) *RefDataService {
	t.Helper()

	cache, err := diskcache.NewStore(t.TempDir(), 4)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	return NewRefDataService(cache, gw, logging.NewNop())
}
