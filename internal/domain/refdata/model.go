package refdata

// Position short names as published in the bootstrap element_types block.
const (
	PositionGoalkeeper = "GKP"
	PositionDefender   = "DEF"
	PositionMidfielder = "MID"
	PositionForward    = "FWD"
)

// Player is one selectable athlete from the bootstrap elements block.
// TeamName and Position are joined on by the loader; Extra keeps any
// upstream fields we do not model so downstream formatting can still
// surface them.
type Player struct {
	ID                   int    `json:"id"`
	WebName              string `json:"web_name"`
	FirstName            string `json:"first_name"`
	SecondName           string `json:"second_name"`
	TeamID               int    `json:"team"`
	ElementType          int    `json:"element_type"`
	NowCost              int    `json:"now_cost"`
	Form                 string `json:"form"`
	PointsPerGame        string `json:"points_per_game"`
	TotalPoints          int    `json:"total_points"`
	SelectedByPercent    string `json:"selected_by_percent"`
	News                 string `json:"news"`
	Status               string `json:"status"`
	ChanceOfPlayingNext  *int   `json:"chance_of_playing_next_round"`
	ExpectedGoalsAssists string `json:"expected_goal_involvements"`
	TransfersInEvent     int    `json:"transfers_in_event"`
	TransfersOutEvent    int    `json:"transfers_out_event"`
	EventPoints          int    `json:"event_points"`
	CostChangeStart      int    `json:"cost_change_start"`
	ICTIndex             string `json:"ict_index"`
	Minutes              int    `json:"minutes"`
	GoalsScored          int    `json:"goals_scored"`
	Assists              int    `json:"assists"`
	CleanSheets          int    `json:"clean_sheets"`

	TeamName string `json:"-"`
	Position string `json:"-"`

	Extra map[string]any `json:"-"`
}

// FullName is the canonical "First Second" form used by the name index.
func (p Player) FullName() string {
	return p.FirstName + " " + p.SecondName
}

// Price renders NowCost (tenths of a million) as the familiar £X.Xm value.
func (p Player) Price() float64 {
	return float64(p.NowCost) / 10.0
}

// Team is one club from the bootstrap teams block.
type Team struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	Strength            int    `json:"strength"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
	StrengthAttackHome  int    `json:"strength_attack_home"`
	StrengthAttackAway  int    `json:"strength_attack_away"`
	StrengthDefenceHome int    `json:"strength_defence_home"`
	StrengthDefenceAway int    `json:"strength_defence_away"`
}

// ElementType is a position category (GKP/DEF/MID/FWD).
type ElementType struct {
	ID                int    `json:"id"`
	SingularName      string `json:"singular_name"`
	SingularNameShort string `json:"singular_name_short"`
	SquadSelect       int    `json:"squad_select"`
	SquadMinPlay      int    `json:"squad_min_play"`
	SquadMaxPlay      int    `json:"squad_max_play"`
}

// Event is one gameweek in the season calendar.
type Event struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	DeadlineTime      string     `json:"deadline_time"`
	IsCurrent         bool       `json:"is_current"`
	IsPrevious        bool       `json:"is_previous"`
	IsNext            bool       `json:"is_next"`
	Finished          bool       `json:"finished"`
	DataChecked       bool       `json:"data_checked"`
	AverageEntryScore int        `json:"average_entry_score"`
	HighestScore      *int       `json:"highest_score"`
	MostSelected      *int       `json:"most_selected"`
	MostCaptained     *int       `json:"most_captained"`
	MostTransferredIn *int       `json:"most_transferred_in"`
	MostViceCaptained *int       `json:"most_vice_captained"`
	TransfersMade     int        `json:"transfers_made"`
	ChipPlays         []ChipPlay `json:"chip_plays"`
}

// ChipPlay is the per-gameweek usage count for one chip.
type ChipPlay struct {
	ChipName  string `json:"chip_name"`
	NumPlayed int    `json:"num_played"`
}

// Fixture is one scheduled match. Event and the scores stay nil until the
// match is scheduled respectively played.
type Fixture struct {
	ID              int     `json:"id"`
	Event           *int    `json:"event"`
	TeamH           int     `json:"team_h"`
	TeamA           int     `json:"team_a"`
	TeamHDifficulty int     `json:"team_h_difficulty"`
	TeamADifficulty int     `json:"team_a_difficulty"`
	TeamHScore      *int    `json:"team_h_score"`
	TeamAScore      *int    `json:"team_a_score"`
	Finished        bool    `json:"finished"`
	Started         bool    `json:"started"`
	KickoffTime     *string `json:"kickoff_time"`
}

// Bootstrap is the loaded, joined reference snapshot for the season.
type Bootstrap struct {
	Players      []Player
	Teams        []Team
	ElementTypes []ElementType
	Events       []Event

	teamsByID     map[int]Team
	playersByID   map[int]int
	positionsByID map[int]string
}

// TeamByID returns the team for an id, or false when the id is unknown.
func (b *Bootstrap) TeamByID(id int) (Team, bool) {
	t, ok := b.teamsByID[id]
	return t, ok
}

// TeamName returns the club name for an id, or a blank string.
func (b *Bootstrap) TeamName(id int) string {
	return b.teamsByID[id].Name
}

// TeamShortName returns the three-letter club code for an id.
func (b *Bootstrap) TeamShortName(id int) string {
	return b.teamsByID[id].ShortName
}

// PlayerByID returns the player for an element id, or false when unknown.
func (b *Bootstrap) PlayerByID(id int) (Player, bool) {
	idx, ok := b.playersByID[id]
	if !ok {
		return Player{}, false
	}
	return b.Players[idx], true
}

// CurrentEvent returns the gameweek flagged is_current, or false when the
// season has not started.
func (b *Bootstrap) CurrentEvent() (Event, bool) {
	for _, ev := range b.Events {
		if ev.IsCurrent {
			return ev, true
		}
	}
	return Event{}, false
}

// NextEvent returns the gameweek flagged is_next, or false at season end.
func (b *Bootstrap) NextEvent() (Event, bool) {
	for _, ev := range b.Events {
		if ev.IsNext {
			return ev, true
		}
	}
	return Event{}, false
}
