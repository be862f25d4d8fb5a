package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/domain/identity"
	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/logging"
)

func newMatchService() *MatchService {
	return NewMatchService(logging.NewNop(), 4)
}

func TestMatchService_FindPotentialMatches(t *testing.T) {
	t.Parallel()

	service := newMatchService()
	target := identity.LeaguePlayer{LeagueID: "wrexham", PlayerID: "John Smith"}
	candidates := []identity.LeaguePlayer{
		{LeagueID: "wrexham", PlayerID: "John Smith"},  // same league, excluded
		{LeagueID: "chester", PlayerID: "John Smith"},  // exact
		{LeagueID: "liverpool", PlayerID: "Jon Smith"}, // fuzzy
		{LeagueID: "chester", PlayerID: "Jane Doe"},    // below threshold
	}

	matches, err := service.FindPotentialMatches(context.Background(), target, candidates, DefaultMatchOptions())
	if err != nil {
		t.Fatalf("find potential matches: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}
	for _, m := range matches {
		if m.Player2.LeagueID == target.LeagueID {
			t.Fatalf("same-league candidate leaked into results: %+v", m)
		}
	}
	if matches[0].Confidence != 1.0 || matches[0].Reason != identity.ReasonExactName {
		t.Fatalf("expected exact match first, got %+v", matches[0])
	}
	if matches[1].Confidence >= matches[0].Confidence {
		t.Fatalf("expected non-increasing confidence, got %+v", matches)
	}
	if matches[1].Reason != identity.ReasonFuzzyName {
		t.Fatalf("expected fuzzy reason on second match, got %+v", matches[1])
	}
}

func TestMatchService_FindPotentialMatches_InvalidOptions(t *testing.T) {
	t.Parallel()

	service := newMatchService()
	target := identity.LeaguePlayer{LeagueID: "wrexham", PlayerID: "John Smith"}

	opts := DefaultMatchOptions()
	opts.MinConfidence = 1.5
	if _, err := service.FindPotentialMatches(context.Background(), target, nil, opts); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-range threshold, got %v", err)
	}

	if _, err := service.FindPotentialMatches(context.Background(), identity.LeaguePlayer{}, nil, DefaultMatchOptions()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty target, got %v", err)
	}
}

func TestMatchService_FindAllPotentialMatches_EndToEnd(t *testing.T) {
	t.Parallel()

	service := newMatchService()
	allPlayers := []identity.LeaguePlayer{
		{LeagueID: "wrexham", PlayerID: "John Smith"},
		{LeagueID: "chester", PlayerID: "John Smith"},
		{LeagueID: "liverpool", PlayerID: "Jon Smith"},
		{LeagueID: "wrexham", PlayerID: "Jane Doe"},
		{LeagueID: "chester", PlayerID: "Jane Doe"},
		{LeagueID: "manchester", PlayerID: "Bob Jones"},
	}

	matches, err := service.FindAllPotentialMatches(context.Background(), allPlayers, DefaultMatchOptions())
	if err != nil {
		t.Fatalf("find all potential matches: %v", err)
	}

	type pairKey struct {
		a identity.LeaguePlayer
		b identity.LeaguePlayer
	}
	seen := make(map[pairKey]identity.PlayerMatch, len(matches))
	for _, m := range matches {
		if m.Player1.LeagueID == m.Player2.LeagueID {
			t.Fatalf("same-league pair in results: %+v", m)
		}
		key := pairKey{a: m.Player1, b: m.Player2}
		reversed := pairKey{a: m.Player2, b: m.Player1}
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate pair: %+v", m)
		}
		if _, dup := seen[reversed]; dup {
			t.Fatalf("pair reported in both orientations: %+v", m)
		}
		seen[key] = m
		if m.Player1.PlayerID == "Bob Jones" || m.Player2.PlayerID == "Bob Jones" {
			t.Fatalf("Bob Jones must not pair with anyone: %+v", m)
		}
	}

	for i := 1; i < len(matches); i++ {
		if matches[i].Confidence > matches[i-1].Confidence {
			t.Fatalf("confidence not non-increasing at %d: %+v", i, matches)
		}
	}

	findPair := func(name1, name2 string) (identity.PlayerMatch, bool) {
		for _, m := range matches {
			if (m.Player1.PlayerID == name1 && m.Player2.PlayerID == name2) ||
				(m.Player1.PlayerID == name2 && m.Player2.PlayerID == name1) {
				return m, true
			}
		}
		return identity.PlayerMatch{}, false
	}

	johnExact, ok := findPair("John Smith", "John Smith")
	if !ok || johnExact.Confidence != 1.0 {
		t.Fatalf("expected 1.0 pair for the two John Smith records, got %+v (found=%v)", johnExact, ok)
	}
	janeExact, ok := findPair("Jane Doe", "Jane Doe")
	if !ok || janeExact.Confidence != 1.0 {
		t.Fatalf("expected 1.0 pair for the two Jane Doe records, got %+v (found=%v)", janeExact, ok)
	}
	fuzzy, ok := findPair("John Smith", "Jon Smith")
	if !ok {
		t.Fatal("expected fuzzy John Smith / Jon Smith pair above threshold")
	}
	if fuzzy.Confidence <= 0.7 || fuzzy.Confidence >= 1.0 {
		t.Fatalf("expected fuzzy confidence in (0.7, 1.0), got %v", fuzzy.Confidence)
	}
	if fuzzy.Reason != identity.ReasonFuzzyName {
		t.Fatalf("expected fuzzy reason, got %q", fuzzy.Reason)
	}
}

func TestMatchService_FindAllPotentialMatches_DuplicateRecordsCollapse(t *testing.T) {
	t.Parallel()

	service := newMatchService()
	allPlayers := []identity.LeaguePlayer{
		{LeagueID: "wrexham", PlayerID: "John Smith"},
		{LeagueID: "wrexham", PlayerID: "John Smith"},
		{LeagueID: "chester", PlayerID: "John Smith"},
	}

	matches, err := service.FindAllPotentialMatches(context.Background(), allPlayers, DefaultMatchOptions())
	if err != nil {
		t.Fatalf("find all potential matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected duplicate input records to produce a single pair, got %d: %+v", len(matches), matches)
	}
}

func TestMatchService_FindAllPotentialMatches_EmptyInput(t *testing.T) {
	t.Parallel()

	service := newMatchService()
	matches, err := service.FindAllPotentialMatches(context.Background(), nil, DefaultMatchOptions())
	if err != nil {
		t.Fatalf("find all potential matches: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches for empty input, got %d", len(matches))
	}
}

func TestMatchService_EqualConfidenceOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	service := newMatchService()
	allPlayers := []identity.LeaguePlayer{
		{LeagueID: "wrexham", PlayerID: "Jane Doe"},
		{LeagueID: "chester", PlayerID: "Jane Doe"},
		{LeagueID: "wrexham", PlayerID: "John Smith"},
		{LeagueID: "chester", PlayerID: "John Smith"},
	}

	first, err := service.FindAllPotentialMatches(context.Background(), allPlayers, DefaultMatchOptions())
	if err != nil {
		t.Fatalf("find all potential matches: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := service.FindAllPotentialMatches(context.Background(), allPlayers, DefaultMatchOptions())
		if err != nil {
			t.Fatalf("find all potential matches: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("result count changed between runs: %d vs %d", len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("result order changed between runs at %d: %+v vs %+v", j, again[j], first[j])
			}
		}
	}
}
