package identity

import (
	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/textmetric"
)

// Match reasons attached to candidate matches for admin review.
const (
	ReasonExactName = "Exact name match"
	ReasonFuzzyName = "Fuzzy name match"
)

// MatchConfidence scores how likely two league-scoped records denote the same
// person. Records from the same league never match: a league's own roster
// management already distinguishes its players, so same-league pairs score 0.
// Equal normalized names score exactly 1; anything else scores by edit-distance
// similarity of the normalized names.
func MatchConfidence(p1, p2 LeaguePlayer, opts textmetric.NormalizeOptions) float64 {
	if p1.LeagueID == p2.LeagueID {
		return 0.0
	}

	name1 := textmetric.Normalize(p1.PlayerID, opts)
	name2 := textmetric.Normalize(p2.PlayerID, opts)
	if name1 == name2 && name1 != "" {
		return 1.0
	}

	return textmetric.Similarity(name1, name2)
}

// MatchReason labels a confidence score with the reason text carried on a
// PlayerMatch.
func MatchReason(confidence float64) string {
	if confidence == 1.0 {
		return ReasonExactName
	}

	return ReasonFuzzyName
}
