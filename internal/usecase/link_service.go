package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/iter"

	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/domain/identity"
	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/clock"
	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/id"
	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/logging"
)

// CreateLinkInput describes a new identity link. When CanonicalID is empty an
// id is minted from DisplayName.
type CreateLinkInput struct {
	CanonicalID string           `validate:"omitempty"`
	DisplayName string           `validate:"required_without=CanonicalID"`
	Players     []LinkEntryInput `validate:"min=1,dive"`
}

// LinkEntryInput is one member of a link being created.
type LinkEntryInput struct {
	LeagueID   string  `validate:"required"`
	PlayerID   string  `validate:"required"`
	Confidence float64 `validate:"gte=0,lte=1"`
}

// Resolution is the outcome of one canonical-id lookup in a batch resolve.
type Resolution struct {
	Player      identity.LeaguePlayer `json:"player"`
	CanonicalID string                `json:"canonical_id,omitempty"`
	Linked      bool                  `json:"linked"`
}

// LinkService owns link creation and mutation around the pure registry
// operations: id minting, input validation, and logging. The evolving link
// collection stays with the caller.
type LinkService struct {
	generator id.Generator
	clock     clock.Clock
	logger    *logging.Logger
	validator *validator.Validate
}

func NewLinkService(generator id.Generator, clk clock.Clock, logger *logging.Logger) *LinkService {
	if clk == nil {
		clk = clock.System()
	}
	if generator == nil {
		generator = id.NewCanonicalGenerator(clk)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LinkService{
		generator: generator,
		clock:     clk,
		logger:    logger,
		validator: validator.New(),
	}
}

// CreateLink builds a new identity link from validated input, minting a
// canonical id when none is supplied.
func (s *LinkService) CreateLink(ctx context.Context, input CreateLinkInput) (identity.PlayerLink, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkService.CreateLink")
	defer span.End()

	if err := s.validator.StructCtx(ctx, input); err != nil {
		return identity.PlayerLink{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	canonicalID := input.CanonicalID
	if canonicalID == "" {
		minted, err := s.generator.NewCanonicalID(input.DisplayName)
		if err != nil {
			return identity.PlayerLink{}, fmt.Errorf("mint canonical id: %w", err)
		}
		canonicalID = minted
	}

	entries := make([]identity.LinkedPlayerEntry, 0, len(input.Players))
	for _, p := range input.Players {
		entries = append(entries, identity.LinkedPlayerEntry{
			LeagueID:   p.LeagueID,
			PlayerID:   p.PlayerID,
			Confidence: p.Confidence,
		})
	}

	link := identity.NewPlayerLink(canonicalID, entries, s.clock)
	if err := link.Validate(); err != nil {
		return identity.PlayerLink{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.InfoContext(ctx, "created player link",
		"canonical_id", link.ID,
		"members", len(link.LinkedPlayers),
	)

	return link, nil
}

// CreateLinkFromMatch turns an accepted candidate match into a two-member
// link. Both members carry the match's confidence; the canonical id is minted
// from the first record's name.
func (s *LinkService) CreateLinkFromMatch(ctx context.Context, match identity.PlayerMatch) (identity.PlayerLink, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkService.CreateLinkFromMatch")
	defer span.End()

	if err := match.Validate(); err != nil {
		return identity.PlayerLink{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if match.Player1.LeagueID == match.Player2.LeagueID {
		return identity.PlayerLink{}, fmt.Errorf("%w: cannot link two records from league %s", ErrInvalidInput, match.Player1.LeagueID)
	}

	return s.CreateLink(ctx, CreateLinkInput{
		DisplayName: match.Player1.PlayerID,
		Players: []LinkEntryInput{
			{LeagueID: match.Player1.LeagueID, PlayerID: match.Player1.PlayerID, Confidence: match.Confidence},
			{LeagueID: match.Player2.LeagueID, PlayerID: match.Player2.PlayerID, Confidence: match.Confidence},
		},
	})
}

// MergeLinks consolidates links into the oldest identity. An empty set is an
// invalid-argument failure.
func (s *LinkService) MergeLinks(ctx context.Context, links []identity.PlayerLink) (identity.PlayerLink, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkService.MergeLinks")
	defer span.End()

	merged, err := identity.MergeLinks(links, s.clock)
	if err != nil {
		return identity.PlayerLink{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.logger.InfoContext(ctx, "merged player links",
		"canonical_id", merged.ID,
		"source_links", len(links),
		"members", len(merged.LinkedPlayers),
	)

	return merged, nil
}

// AddPlayerToLink adds or upgrades a member of link.
func (s *LinkService) AddPlayerToLink(ctx context.Context, link identity.PlayerLink, entry LinkEntryInput) (identity.PlayerLink, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkService.AddPlayerToLink")
	defer span.End()

	if err := s.validator.StructCtx(ctx, entry); err != nil {
		return identity.PlayerLink{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return identity.AddPlayer(link, identity.LinkedPlayerEntry{
		LeagueID:   entry.LeagueID,
		PlayerID:   entry.PlayerID,
		Confidence: entry.Confidence,
	}, s.clock), nil
}

// RemovePlayerFromLink removes a member of link; removing an absent member is
// a defined no-op.
func (s *LinkService) RemovePlayerFromLink(ctx context.Context, link identity.PlayerLink, leagueID, playerID string) identity.PlayerLink {
	_, span := startUsecaseSpan(ctx, "usecase.LinkService.RemovePlayerFromLink")
	defer span.End()

	return identity.RemovePlayer(link, leagueID, playerID, s.clock)
}

// ResolveCanonicalID finds the canonical id for one league-scoped record.
// A record in no link is a normal outcome, reported via ok=false.
func (s *LinkService) ResolveCanonicalID(ctx context.Context, leagueID, playerID string, links []identity.PlayerLink) (string, bool) {
	_, span := startUsecaseSpan(ctx, "usecase.LinkService.ResolveCanonicalID")
	defer span.End()

	return identity.ResolveCanonicalID(leagueID, playerID, links)
}

// ResolveCanonicalIDs resolves a whole roster at once, fanning the lookups out
// across goroutines. Results come back in input order.
func (s *LinkService) ResolveCanonicalIDs(ctx context.Context, players []identity.LeaguePlayer, links []identity.PlayerLink) []Resolution {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkService.ResolveCanonicalIDs")
	defer span.End()

	resolutions := iter.Map(players, func(p *identity.LeaguePlayer) Resolution {
		canonicalID, ok := identity.ResolveCanonicalID(p.LeagueID, p.PlayerID, links)
		return Resolution{
			Player:      *p,
			CanonicalID: canonicalID,
			Linked:      ok,
		}
	})

	s.logger.DebugContext(ctx, "batch canonical resolution complete",
		"players", len(players),
		"links", len(links),
	)

	return resolutions
}

// LinkedPlayers returns the members of the link with the given canonical id;
// an unknown id yields an empty slice.
func (s *LinkService) LinkedPlayers(ctx context.Context, canonicalID string, links []identity.PlayerLink) []identity.LinkedPlayerEntry {
	_, span := startUsecaseSpan(ctx, "usecase.LinkService.LinkedPlayers")
	defer span.End()

	return identity.LinkedPlayers(canonicalID, links)
}
