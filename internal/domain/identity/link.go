package identity

import (
	"errors"
	"fmt"

	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/clock"
)

// ErrNoLinksToMerge is the engine's one hard failure: merging an empty set of
// links is a caller logic error with no sensible default.
var ErrNoLinksToMerge = errors.New("no links to merge")

// NewPlayerLink builds a link with the given canonical id and members. Both
// timestamps are set to the clock's current time; the entries slice is copied,
// never retained.
func NewPlayerLink(canonicalID string, entries []LinkedPlayerEntry, clk clock.Clock) PlayerLink {
	now := clk.Now().UnixMilli()

	return PlayerLink{
		ID:            canonicalID,
		LinkedPlayers: append([]LinkedPlayerEntry(nil), entries...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MergeLinks consolidates several links into one identity. The merged link
// keeps the id and CreatedAt of the earliest-created input (ties broken by
// input order) so external references to the oldest identity stay valid.
// Members are united by (league, player) key with the highest confidence
// winning; first-seen order across the inputs is preserved. A single input
// link is returned unchanged, timestamps included.
func MergeLinks(links []PlayerLink, clk clock.Clock) (PlayerLink, error) {
	if len(links) == 0 {
		return PlayerLink{}, fmt.Errorf("%w: empty link set", ErrNoLinksToMerge)
	}
	if len(links) == 1 {
		return links[0], nil
	}

	oldest := links[0]
	for _, link := range links[1:] {
		if link.CreatedAt < oldest.CreatedAt {
			oldest = link
		}
	}

	indexByKey := make(map[LeaguePlayer]int)
	merged := make([]LinkedPlayerEntry, 0, len(links[0].LinkedPlayers))
	for _, link := range links {
		for _, entry := range link.LinkedPlayers {
			key := LeaguePlayer{LeagueID: entry.LeagueID, PlayerID: entry.PlayerID}
			at, exists := indexByKey[key]
			if !exists {
				indexByKey[key] = len(merged)
				merged = append(merged, entry)
				continue
			}
			if entry.Confidence > merged[at].Confidence {
				merged[at].Confidence = entry.Confidence
			}
		}
	}

	return PlayerLink{
		ID:            oldest.ID,
		LinkedPlayers: merged,
		CreatedAt:     oldest.CreatedAt,
		UpdatedAt:     clk.Now().UnixMilli(),
	}, nil
}

// AddPlayer returns a copy of link with entry appended, or with the stored
// confidence raised when the member already exists. Confidence never drops on
// a re-add; UpdatedAt advances either way.
func AddPlayer(link PlayerLink, entry LinkedPlayerEntry, clk clock.Clock) PlayerLink {
	out := link
	out.LinkedPlayers = append([]LinkedPlayerEntry(nil), link.LinkedPlayers...)
	out.UpdatedAt = clk.Now().UnixMilli()

	for i, existing := range out.LinkedPlayers {
		if existing.LeagueID == entry.LeagueID && existing.PlayerID == entry.PlayerID {
			if entry.Confidence > existing.Confidence {
				out.LinkedPlayers[i].Confidence = entry.Confidence
			}
			return out
		}
	}

	out.LinkedPlayers = append(out.LinkedPlayers, entry)
	return out
}

// RemovePlayer returns a copy of link without the matching member. Removing an
// absent member is a no-op apart from UpdatedAt advancing.
func RemovePlayer(link PlayerLink, leagueID, playerID string, clk clock.Clock) PlayerLink {
	out := link
	out.LinkedPlayers = make([]LinkedPlayerEntry, 0, len(link.LinkedPlayers))
	out.UpdatedAt = clk.Now().UnixMilli()

	for _, entry := range link.LinkedPlayers {
		if entry.LeagueID == leagueID && entry.PlayerID == playerID {
			continue
		}
		out.LinkedPlayers = append(out.LinkedPlayers, entry)
	}

	return out
}

// ResolveCanonicalID returns the id of the first link in input order that
// contains the given record. Callers keep each record in at most one link;
// when that holds the result is unambiguous.
func ResolveCanonicalID(leagueID, playerID string, links []PlayerLink) (string, bool) {
	for _, link := range links {
		if link.Contains(leagueID, playerID) {
			return link.ID, true
		}
	}

	return "", false
}

// LinkedPlayers returns a copy of the members of the link with the given
// canonical id, or an empty slice when no such link exists.
func LinkedPlayers(canonicalID string, links []PlayerLink) []LinkedPlayerEntry {
	for _, link := range links {
		if link.ID == canonicalID {
			return append([]LinkedPlayerEntry(nil), link.LinkedPlayers...)
		}
	}

	return []LinkedPlayerEntry{}
}
