package usecase

import (
	stderrors "errors"
	"testing"
)

func newTestTeams(t *testing.T) *TeamService {
	t.Helper()
	return NewTeamService(newTestRefData(t, &fakeGateway{bootstrapRaw: sampleBootstrapJSON(t)}))
}

func TestMatch_SingleHitResolves(t *testing.T) {
	teams := newTestTeams(t)

	team, candidates, err := teams.Match(t.Context(), "liverpool")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if team.ID != 1 || len(candidates) != 0 {
		t.Fatalf("expected Liverpool, got %+v candidates %+v", team, candidates)
	}
}

func TestMatch_ShortNameResolves(t *testing.T) {
	teams := newTestTeams(t)

	team, _, err := teams.Match(t.Context(), "MCI")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if team.Name != "Manchester City" {
		t.Fatalf("expected Manchester City, got %+v", team)
	}
}

func TestMatch_MultipleHitsReturnCandidates(t *testing.T) {
	teams := newTestTeams(t)

	_, candidates, err := teams.Match(t.Context(), "er")
	if !stderrors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected both clubs as candidates, got %+v", candidates)
	}
}

func TestMatch_UnknownTeamIsNotFound(t *testing.T) {
	teams := newTestTeams(t)

	if _, _, err := teams.Match(t.Context(), "real madrid"); !stderrors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatch_EmptyQueryIsInvalid(t *testing.T) {
	teams := newTestTeams(t)

	if _, _, err := teams.Match(t.Context(), "  "); !stderrors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestList_SortsByName(t *testing.T) {
	teams := newTestTeams(t)

	all, err := teams.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Liverpool" || all[1].Name != "Manchester City" {
		t.Fatalf("unexpected order %+v", all)
	}
}
