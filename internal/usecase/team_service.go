package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
)

// TeamService answers club-level questions against the reference snapshot.
type TeamService struct {
	refData *RefDataService
}

func NewTeamService(refData *RefDataService) *TeamService {
	return &TeamService{refData: refData}
}

// Match resolves a club by substring against full and short names. More
// than one hit is returned as a list for the caller to surface, mirroring
// the player ambiguity contract.
func (s *TeamService) Match(ctx context.Context, query string) (refdata.Team, []refdata.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Match")
	defer span.End()

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return refdata.Team{}, nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return refdata.Team{}, nil, err
	}

	var matches []refdata.Team
	for _, t := range bootstrap.Teams {
		if strings.Contains(strings.ToLower(t.Name), needle) || strings.Contains(strings.ToLower(t.ShortName), needle) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return refdata.Team{}, nil, fmt.Errorf("%w: no team matching %q", ErrNotFound, query)
	case 1:
		return matches[0], nil, nil
	default:
		return refdata.Team{}, matches, fmt.Errorf("%w: %q matches %d teams", ErrAmbiguous, query, len(matches))
	}
}

// List returns every club sorted by name.
func (s *TeamService) List(ctx context.Context) ([]refdata.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	bootstrap, err := s.refData.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}

	teams := make([]refdata.Team, len(bootstrap.Teams))
	copy(teams, bootstrap.Teams)
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	return teams, nil
}
