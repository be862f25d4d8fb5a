package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/domain/identity"
	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/logging"
	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/textmetric"
)

// MatchOptions controls a candidate search.
type MatchOptions struct {
	// MinConfidence is the inclusive threshold below which candidate pairs are
	// discarded.
	MinConfidence float64 `validate:"gte=0,lte=1"`
	// Normalize configures name canonicalization before scoring.
	Normalize textmetric.NormalizeOptions
}

// DefaultMatchOptions returns the threshold and normalization used when a
// caller has no specific configuration.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		MinConfidence: 0.7,
		Normalize:     textmetric.DefaultNormalizeOptions(),
	}
}

// MatchService searches candidate pools for potential identity matches.
type MatchService struct {
	logger     *logging.Logger
	validator  *validator.Validate
	maxWorkers int
}

func NewMatchService(logger *logging.Logger, maxWorkers int) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	return &MatchService{
		logger:     logger,
		validator:  validator.New(),
		maxWorkers: maxWorkers,
	}
}

// FindPotentialMatches scores target against every candidate from another
// league and returns the matches at or above the threshold, sorted by
// confidence descending with a lexicographic tie-break for reproducibility.
func (s *MatchService) FindPotentialMatches(
	ctx context.Context,
	target identity.LeaguePlayer,
	candidates []identity.LeaguePlayer,
	opts MatchOptions,
) ([]identity.PlayerMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FindPotentialMatches")
	defer span.End()

	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("%w: target: %v", ErrInvalidInput, err)
	}
	if err := s.validator.StructCtx(ctx, opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	matches := make([]identity.PlayerMatch, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.LeagueID == target.LeagueID {
			continue
		}

		confidence := identity.MatchConfidence(target, candidate, opts.Normalize)
		if confidence < opts.MinConfidence {
			continue
		}

		matches = append(matches, identity.PlayerMatch{
			Player1:    target,
			Player2:    candidate,
			Confidence: confidence,
			Reason:     identity.MatchReason(confidence),
		})
	}

	sortMatches(matches)

	s.logger.DebugContext(ctx, "candidate search complete",
		"league", target.LeagueID,
		"player", target.PlayerID,
		"candidates", len(candidates),
		"matches", len(matches),
	)

	return matches, nil
}

// FindAllPotentialMatches scores every cross-league unordered pair in
// allPlayers exactly once and returns the matches at or above the threshold,
// sorted by confidence descending. The pair scan fans out over a worker pool;
// the result set is identical to a sequential scan.
func (s *MatchService) FindAllPotentialMatches(
	ctx context.Context,
	allPlayers []identity.LeaguePlayer,
	opts MatchOptions,
) ([]identity.PlayerMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FindAllPotentialMatches")
	defer span.End()

	if err := s.validator.StructCtx(ctx, opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	pairs := collectCandidatePairs(allPlayers)
	if len(pairs) == 0 {
		return []identity.PlayerMatch{}, nil
	}

	workerCount := s.maxWorkers
	if workerCount > len(pairs) {
		workerCount = len(pairs)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan identity.PlayerMatch, len(pairs))

	var workers sync.WaitGroup
	for _, pair := range pairs {
		pair := pair
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			confidence := identity.MatchConfidence(pair.a, pair.b, opts.Normalize)
			if confidence < opts.MinConfidence {
				return
			}

			results <- identity.PlayerMatch{
				Player1:    pair.a,
				Player2:    pair.b,
				Confidence: confidence,
				Reason:     identity.MatchReason(confidence),
			}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit pair to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	matches := make([]identity.PlayerMatch, 0, len(pairs))
	for match := range results {
		matches = append(matches, match)
	}

	sortMatches(matches)

	s.logger.DebugContext(ctx, "all-pairs search complete",
		"players", len(allPlayers),
		"pairs", len(pairs),
		"matches", len(matches),
		"workers", workerCount,
	)

	return matches, nil
}

type candidatePair struct {
	a identity.LeaguePlayer
	b identity.LeaguePlayer
}

// collectCandidatePairs enumerates every cross-league unordered pair exactly
// once. Pair members are oriented by their league:player key so duplicate
// input records cannot yield the same pair twice in either orientation.
func collectCandidatePairs(players []identity.LeaguePlayer) []candidatePair {
	seen := make(map[string]struct{})
	pairs := make([]candidatePair, 0, len(players)*(len(players)-1)/2)

	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			a, b := players[i], players[j]
			if a.LeagueID == b.LeagueID {
				continue
			}
			if pairKey(b) < pairKey(a) {
				a, b = b, a
			}

			key := pairKey(a) + "|" + pairKey(b)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			pairs = append(pairs, candidatePair{a: a, b: b})
		}
	}

	return pairs
}

func pairKey(p identity.LeaguePlayer) string {
	return p.LeagueID + ":" + p.PlayerID
}

// sortMatches orders by confidence descending, then lexicographically by the
// pair identities so equal-confidence matches come out in a stable order.
func sortMatches(matches []identity.PlayerMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		if matches[i].Player1.LeagueID != matches[j].Player1.LeagueID {
			return matches[i].Player1.LeagueID < matches[j].Player1.LeagueID
		}
		if matches[i].Player1.PlayerID != matches[j].Player1.PlayerID {
			return matches[i].Player1.PlayerID < matches[j].Player1.PlayerID
		}
		if matches[i].Player2.LeagueID != matches[j].Player2.LeagueID {
			return matches[i].Player2.LeagueID < matches[j].Player2.LeagueID
		}
		return matches[i].Player2.PlayerID < matches[j].Player2.PlayerID
	})
}
