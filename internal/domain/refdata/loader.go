package refdata

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

type rawBootstrap struct {
	Elements     []Player      `json:"elements"`
	Teams        []Team        `json:"teams"`
	ElementTypes []ElementType `json:"element_types"`
	Events       []Event       `json:"events"`
}

// knownPlayerKeys are the bootstrap element fields modeled explicitly on
// Player. Anything else the upstream adds lands in Extra.
var knownPlayerKeys = []string{
	"id", "web_name", "first_name", "second_name", "team", "element_type",
	"now_cost", "form", "points_per_game", "total_points",
	"selected_by_percent", "news", "status", "chance_of_playing_next_round",
	"expected_goal_involvements", "transfers_in_event", "transfers_out_event",
	"event_points", "cost_change_start", "ict_index", "minutes",
	"goals_scored", "assists", "clean_sheets",
}

func (p *Player) UnmarshalJSON(data []byte) error {
	type alias Player
	var decoded alias
	if err := sonic.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var fields map[string]any
	if err := sonic.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, key := range knownPlayerKeys {
		delete(fields, key)
	}
	if len(fields) > 0 {
		decoded.Extra = fields
	}

	*p = Player(decoded)
	return nil
}

// ParseBootstrap decodes a bootstrap payload, joins team names and position
// short names onto every player, and checks the calendar flags. The join
// runs before anyone indexes players, so disambiguation output can always
// show club and position.
func ParseBootstrap(raw []byte) (*Bootstrap, error) {
	var payload rawBootstrap
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode bootstrap payload")
	}
	if len(payload.Elements) == 0 {
		return nil, crerr.New("bootstrap payload has no players")
	}

	b := &Bootstrap{
		Players:       payload.Elements,
		Teams:         payload.Teams,
		ElementTypes:  payload.ElementTypes,
		Events:        payload.Events,
		teamsByID:     make(map[int]Team, len(payload.Teams)),
		playersByID:   make(map[int]int, len(payload.Elements)),
		positionsByID: make(map[int]string, len(payload.ElementTypes)),
	}

	for _, t := range payload.Teams {
		b.teamsByID[t.ID] = t
	}
	for _, et := range payload.ElementTypes {
		b.positionsByID[et.ID] = et.SingularNameShort
	}

	for i := range b.Players {
		p := &b.Players[i]
		p.TeamName = b.teamsByID[p.TeamID].Name
		p.Position = b.positionsByID[p.ElementType]
		b.playersByID[p.ID] = i
	}

	if err := validateCalendar(b.Events); err != nil {
		return nil, err
	}

	return b, nil
}

// validateCalendar enforces that at most one gameweek is flagged current and
// at most one next. The flags come straight from the upstream payload; a
// duplicate means the snapshot is corrupt, not that we should pick one.
func validateCalendar(events []Event) error {
	var current, next int
	for _, ev := range events {
		if ev.IsCurrent {
			current++
		}
		if ev.IsNext {
			next++
		}
	}
	if current > 1 {
		return fmt.Errorf("bootstrap calendar flags %d gameweeks as current", current)
	}
	if next > 1 {
		return fmt.Errorf("bootstrap calendar flags %d gameweeks as next", next)
	}

	return nil
}

// ParseFixtures decodes the flat fixtures payload.
func ParseFixtures(raw []byte) ([]Fixture, error) {
	var fixtures []Fixture
	if err := sonic.Unmarshal(raw, &fixtures); err != nil {
		return nil, crerr.Wrap(err, "decode fixtures payload")
	}

	return fixtures, nil
}
