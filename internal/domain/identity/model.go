// Package identity resolves whether league-scoped player records denote the
// same real person and maintains the links mapping those records onto one
// canonical identity.
package identity

import "fmt"

// LeaguePlayer is one player record scoped to exactly one league. PlayerID is
// usually the display name as recorded by that league.
type LeaguePlayer struct {
	LeagueID string `json:"league_id"`
	PlayerID string `json:"player_id"`
}

func (p LeaguePlayer) Validate() error {
	if p.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if p.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}

	return nil
}

// PlayerMatch is a candidate pairing of two cross-league records with a
// confidence score and a short human-readable reason.
type PlayerMatch struct {
	Player1    LeaguePlayer `json:"player1"`
	Player2    LeaguePlayer `json:"player2"`
	Confidence float64      `json:"confidence"`
	Reason     string       `json:"reason"`
}

func (m PlayerMatch) Validate() error {
	if err := m.Player1.Validate(); err != nil {
		return fmt.Errorf("player1: %w", err)
	}
	if err := m.Player2.Validate(); err != nil {
		return fmt.Errorf("player2: %w", err)
	}
	if m.Confidence < 0 || m.Confidence > 1 {
		return fmt.Errorf("confidence out of range: %v", m.Confidence)
	}

	return nil
}

// LinkedPlayerEntry is one member of a PlayerLink. Confidence records how
// strongly this league record was believed to belong to the link's identity
// when it was added or last updated.
type LinkedPlayerEntry struct {
	LeagueID   string  `json:"league_id"`
	PlayerID   string  `json:"player_id"`
	Confidence float64 `json:"confidence"`
}

func (e LinkedPlayerEntry) Validate() error {
	if e.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("confidence out of range: %v", e.Confidence)
	}

	return nil
}

// PlayerLink is one resolved real-world identity. ID is the canonical
// identifier the rest of the system refers to; timestamps are epoch
// milliseconds.
type PlayerLink struct {
	ID            string              `json:"id"`
	LinkedPlayers []LinkedPlayerEntry `json:"linked_players"`
	CreatedAt     int64               `json:"created_at"`
	UpdatedAt     int64               `json:"updated_at"`
}

func (l PlayerLink) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("link id is required")
	}
	if l.UpdatedAt < l.CreatedAt {
		return fmt.Errorf("updated_at precedes created_at: %d < %d", l.UpdatedAt, l.CreatedAt)
	}

	seen := make(map[LeaguePlayer]struct{}, len(l.LinkedPlayers))
	for _, entry := range l.LinkedPlayers {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("entry league=%s player=%s: %w", entry.LeagueID, entry.PlayerID, err)
		}
		key := LeaguePlayer{LeagueID: entry.LeagueID, PlayerID: entry.PlayerID}
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate entry league=%s player=%s", entry.LeagueID, entry.PlayerID)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// Contains reports whether the link holds an entry for the given record.
func (l PlayerLink) Contains(leagueID, playerID string) bool {
	for _, entry := range l.LinkedPlayers {
		if entry.LeagueID == leagueID && entry.PlayerID == playerID {
			return true
		}
	}

	return false
}
