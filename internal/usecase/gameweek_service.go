package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
)

// GameweekStanding describes where a gameweek sits relative to now.
const (
	GameweekActive   = "active"
	GameweekNext     = "next"
	GameweekUpcoming = "upcoming"
)

// CurrentGameweek is the planning target: the active gameweek while its
// deadline has not passed, otherwise the next one.
type CurrentGameweek struct {
	Event    refdata.Event
	Standing string
}

// PopularPicks carries the crowd-favourite names for a finished gameweek.
type PopularPicks struct {
	MostCaptained     string
	MostViceCaptained string
	MostSelected      string
	MostTransferredIn string
}

// GameweekDetail is one gameweek with its popular picks rehydrated to
// player names.
type GameweekDetail struct {
	Event   refdata.Event
	Popular *PopularPicks
}

// GameweekService reads the season calendar out of the reference snapshot.
type GameweekService struct {
	refData *RefDataService
	now     func() time.Time
}

func NewGameweekService(refData *RefDataService) *GameweekService {
	return &GameweekService{refData: refData, now: time.Now}
}

// Current picks the gameweek to plan transfers against. The current
// gameweek only counts while its deadline is still ahead; after that the
// next gameweek takes over, falling back to the first unfinished one at
// the season edges.
func (s *GameweekService) Current(ctx context.Context) (CurrentGameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Current")
	defer span.End()

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return CurrentGameweek{}, err
	}
	if len(bootstrap.Events) == 0 {
		return CurrentGameweek{}, fmt.Errorf("%w: no gameweek calendar", ErrDataUnavailable)
	}

	now := s.now()
	if current, ok := bootstrap.CurrentEvent(); ok {
		deadline, err := time.Parse(time.RFC3339, current.DeadlineTime)
		if err == nil && now.Before(deadline) {
			return CurrentGameweek{Event: current, Standing: GameweekActive}, nil
		}
	}
	if next, ok := bootstrap.NextEvent(); ok {
		return CurrentGameweek{Event: next, Standing: GameweekNext}, nil
	}
	for _, ev := range bootstrap.Events {
		if !ev.Finished {
			return CurrentGameweek{Event: ev, Standing: GameweekUpcoming}, nil
		}
	}

	return CurrentGameweek{}, fmt.Errorf("%w: no active or upcoming gameweek", ErrNotFound)
}

// Info returns one gameweek by number with popular picks rehydrated.
func (s *GameweekService) Info(ctx context.Context, number int) (GameweekDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Info")
	defer span.End()

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return GameweekDetail{}, err
	}

	for _, ev := range bootstrap.Events {
		if ev.ID != number {
			continue
		}

		detail := GameweekDetail{Event: ev}
		if ev.MostCaptained != nil || ev.MostSelected != nil {
			detail.Popular = &PopularPicks{
				MostCaptained:     playerName(bootstrap, ev.MostCaptained),
				MostViceCaptained: playerName(bootstrap, ev.MostViceCaptained),
				MostSelected:      playerName(bootstrap, ev.MostSelected),
				MostTransferredIn: playerName(bootstrap, ev.MostTransferredIn),
			}
		}
		return detail, nil
	}

	return GameweekDetail{}, fmt.Errorf("%w: gameweek %d", ErrNotFound, number)
}

// List returns the full season calendar in order.
func (s *GameweekService) List(ctx context.Context) ([]refdata.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.List")
	defer span.End()

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	if len(bootstrap.Events) == 0 {
		return nil, fmt.Errorf("%w: no gameweek calendar", ErrDataUnavailable)
	}

	return bootstrap.Events, nil
}

func playerName(b *refdata.Bootstrap, id *int) string {
	if id == nil {
		return ""
	}
	if p, ok := b.PlayerByID(*id); ok {
		return p.WebName
	}
	return fmt.Sprintf("player %d", *id)
}
