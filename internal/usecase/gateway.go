package usecase

import "context"

// Gateway is the remote fantasy API surface the services depend on.
// Bootstrap and fixtures come back raw so the cache can persist them
// byte-for-shape; everything else is decoded into the types below.
type Gateway interface {
	FetchBootstrap(ctx context.Context) ([]byte, error)
	FetchFixtures(ctx context.Context) ([]byte, error)

	AccountInfo(ctx context.Context) (AccountInfo, error)
	MyTeam(ctx context.Context, entryID int) (MyTeam, error)
	ManagerEntry(ctx context.Context, entryID int) (ManagerEntry, error)
	LeagueStandings(ctx context.Context, leagueID, page int) (LeagueStandings, error)
	ManagerPicks(ctx context.Context, entryID, gameweek int) (ManagerPicks, error)
	ElementSummary(ctx context.Context, playerID int) (ElementSummary, error)
	ExecuteTransfers(ctx context.Context, payload TransferPayload) (string, error)

	// Authenticated derives a gateway carrying the user's bearer token.
	// The derived gateway shares transport and breaker state with the base.
	Authenticated(token string) Gateway
}

// Authenticator exchanges user credentials for an API bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Session is the authenticated handle an active session resolves to.
type Session struct {
	Gateway Gateway
	EntryID int
}

// AccountInfo is the logged-in user's account snapshot.
type AccountInfo struct {
	FirstName      string
	LastName       string
	Region         string
	RegionCode     string
	EntryID        int
	ClassicLeagues []LeagueRef
}

// LeagueRef is one classic league the user belongs to.
type LeagueRef struct {
	ID             int
	Name           string
	LeagueType     string
	EntryRank      int
	RankCount      int
	PercentileRank int
}

// Pick is one squad slot in a team selection. Prices are in tenths.
type Pick struct {
	Element       int
	Position      int
	SellingPrice  int
	PurchasePrice int
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
}

// ChipStatus is one chip's availability for the entry.
type ChipStatus struct {
	Name           string
	StatusForEntry string
	PlayedByEntry  bool
}

// MyTeam is the authenticated squad view, selling prices included.
type MyTeam struct {
	Picks []Pick
	Chips []ChipStatus
	Bank  int
	Value int
}

// ManagerEntry is a manager's public entry page.
type ManagerEntry struct {
	Name                  string
	PlayerFirstName       string
	PlayerLastName        string
	RegionName            string
	RegionCode            string
	YearsActive           int
	CurrentEvent          int
	OverallPoints         int
	OverallRank           int
	EventPoints           int
	EventRank             int
	LastDeadlineValue     int
	LastDeadlineBank      int
	TotalTransfers        int
	ClassicLeagues        []LeagueRef
	CupQualificationState string
}

// StandingRow is one manager's row in a classic league table.
type StandingRow struct {
	Rank       int
	LastRank   int
	EntryID    int
	EntryName  string
	PlayerName string
	EventTotal int
	Total      int
}

// LeagueStandings is one page of a classic league table.
type LeagueStandings struct {
	LeagueID int
	Name     string
	Page     int
	HasNext  bool
	Results  []StandingRow
}

// GameweekHistory is a manager's scoring summary for one gameweek.
type GameweekHistory struct {
	Points             int
	TotalPoints        int
	OverallRank        int
	Value              int
	Bank               int
	EventTransfers     int
	EventTransfersCost int
	PointsOnBench      int
}

// AutoSub is one automatic substitution applied after a gameweek.
type AutoSub struct {
	ElementIn  int
	ElementOut int
}

// ManagerPicks is a manager's full team selection for one gameweek.
type ManagerPicks struct {
	ActiveChip    string
	Picks         []Pick
	EntryHistory  GameweekHistory
	AutomaticSubs []AutoSub
}

// ElementFixture is one upcoming match from a player's summary page.
type ElementFixture struct {
	Event       *int
	TeamH       int
	TeamA       int
	IsHome      bool
	Difficulty  int
	KickoffTime string
}

// ElementGameweek is one played gameweek from a player's history.
type ElementGameweek struct {
	Round            int
	OpponentTeam     int
	WasHome          bool
	TotalPoints      int
	Minutes          int
	GoalsScored      int
	Assists          int
	CleanSheets      int
	Bonus            int
	TransfersBalance int
}

// ElementSeason is one past-season line from a player's summary.
type ElementSeason struct {
	SeasonName  string
	StartCost   int
	EndCost     int
	TotalPoints int
	Minutes     int
	GoalsScored int
	Assists     int
}

// ElementSummary is the per-player detail payload.
type ElementSummary struct {
	Fixtures    []ElementFixture
	History     []ElementGameweek
	HistoryPast []ElementSeason
}

// TransferItem moves one player out for another. Prices are in tenths and
// must match the upstream's selling/purchase expectations exactly.
type TransferItem struct {
	ElementIn     int `json:"element_in"`
	ElementOut    int `json:"element_out"`
	PurchasePrice int `json:"purchase_price"`
	SellingPrice  int `json:"selling_price"`
}

// TransferPayload is the wire body for the transfers endpoint.
type TransferPayload struct {
	Chip      *string        `json:"chip"`
	Entry     int            `json:"entry"`
	Event     int            `json:"event"`
	Transfers []TransferItem `json:"transfers"`
	Wildcard  bool           `json:"wildcard"`
	Freehit   bool           `json:"freehit"`
}
