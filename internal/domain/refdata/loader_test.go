package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBootstrap = `{
  "elements": [
    {
      "id": 301,
      "web_name": "Salah",
      "first_name": "Mohamed",
      "second_name": "Salah",
      "team": 11,
      "element_type": 3,
      "now_cost": 129,
      "form": "8.5",
      "points_per_game": "7.1",
      "total_points": 211,
      "selected_by_percent": "54.3",
      "news": "",
      "status": "a",
      "opta_code": "p118748"
    },
    {
      "id": 402,
      "web_name": "B.Silva",
      "first_name": "Bernardo",
      "second_name": "Silva",
      "team": 13,
      "element_type": 3,
      "now_cost": 64,
      "form": "4.2",
      "points_per_game": "4.0",
      "total_points": 120,
      "selected_by_percent": "12.0",
      "news": "",
      "status": "a"
    }
  ],
  "teams": [
    {"id": 11, "name": "Liverpool", "short_name": "LIV", "strength": 5},
    {"id": 13, "name": "Man City", "short_name": "MCI", "strength": 5}
  ],
  "element_types": [
    {"id": 3, "singular_name": "Midfielder", "singular_name_short": "MID"}
  ],
  "events": [
    {"id": 1, "name": "Gameweek 1", "deadline_time": "2026-08-15T17:30:00Z", "is_current": true, "finished": false},
    {"id": 2, "name": "Gameweek 2", "deadline_time": "2026-08-22T17:30:00Z", "is_next": true, "finished": false}
  ]
}`

func TestParseBootstrap_JoinsTeamAndPosition(t *testing.T) {
	t.Parallel()

	b, err := ParseBootstrap([]byte(sampleBootstrap))
	require.NoError(t, err)
	require.Len(t, b.Players, 2)

	salah, ok := b.PlayerByID(301)
	require.True(t, ok)
	assert.Equal(t, "Liverpool", salah.TeamName)
	assert.Equal(t, "MID", salah.Position)
	assert.InDelta(t, 12.9, salah.Price(), 0.001)
	assert.Equal(t, "Mohamed Salah", salah.FullName())
}

func TestParseBootstrap_UnknownFieldsLandInExtra(t *testing.T) {
	t.Parallel()

	b, err := ParseBootstrap([]byte(sampleBootstrap))
	require.NoError(t, err)

	salah, _ := b.PlayerByID(301)
	assert.Equal(t, "p118748", salah.Extra["opta_code"])

	silva, _ := b.PlayerByID(402)
	assert.Empty(t, silva.Extra)
}

func TestParseBootstrap_CalendarFlags(t *testing.T) {
	t.Parallel()

	b, err := ParseBootstrap([]byte(sampleBootstrap))
	require.NoError(t, err)

	current, ok := b.CurrentEvent()
	require.True(t, ok)
	assert.Equal(t, 1, current.ID)

	next, ok := b.NextEvent()
	require.True(t, ok)
	assert.Equal(t, 2, next.ID)
}

func TestParseBootstrap_RejectsDuplicateCurrent(t *testing.T) {
	t.Parallel()

	raw := `{
	  "elements": [{"id": 1, "web_name": "A", "first_name": "A", "second_name": "B", "team": 1, "element_type": 1}],
	  "teams": [{"id": 1, "name": "T", "short_name": "T", "strength": 3}],
	  "element_types": [{"id": 1, "singular_name": "Goalkeeper", "singular_name_short": "GKP"}],
	  "events": [
	    {"id": 1, "name": "Gameweek 1", "is_current": true},
	    {"id": 2, "name": "Gameweek 2", "is_current": true}
	  ]
	}`

	_, err := ParseBootstrap([]byte(raw))
	require.Error(t, err)
}

func TestParseBootstrap_RejectsEmptyAndCorrupt(t *testing.T) {
	t.Parallel()

	_, err := ParseBootstrap([]byte(`{"elements": [], "teams": [], "element_types": [], "events": []}`))
	require.Error(t, err)

	_, err = ParseBootstrap([]byte(`{not json`))
	require.Error(t, err)
}

func TestParseFixtures(t *testing.T) {
	t.Parallel()

	raw := `[
	  {"id": 7, "event": 2, "team_h": 11, "team_a": 13, "team_h_difficulty": 4, "team_a_difficulty": 5, "finished": false},
	  {"id": 8, "event": null, "team_h": 13, "team_a": 11, "team_h_difficulty": 2, "team_a_difficulty": 3, "team_h_score": null, "team_a_score": null, "finished": false}
	]`

	fixtures, err := ParseFixtures([]byte(raw))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	require.NotNil(t, fixtures[0].Event)
	assert.Equal(t, 2, *fixtures[0].Event)
	assert.Nil(t, fixtures[1].Event)
	assert.Nil(t, fixtures[1].TeamHScore)
}
