// Package id mints canonical identity identifiers: a human-legible slug derived
// from a player name plus a uniqueness suffix.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"

	crerr "github.com/cockroachdb/errors"

	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/clock"
)

const entropyBytes = 4

// Generator creates canonical identity IDs suitable for external references.
type Generator interface {
	NewCanonicalID(name string) (string, error)
}

// CanonicalGenerator builds ids of the form <slug>-<epochms base36>-<hex>.
// The slug is deterministic for a given name regardless of case and spacing;
// the suffix makes every call produce a distinct id.
type CanonicalGenerator struct {
	clock clock.Clock
}

func NewCanonicalGenerator(clk clock.Clock) *CanonicalGenerator {
	if clk == nil {
		clk = clock.System()
	}
	return &CanonicalGenerator{clock: clk}
}

func (g *CanonicalGenerator) NewCanonicalID(name string) (string, error) {
	buf := make([]byte, entropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", crerr.Wrap(err, "read random bytes")
	}

	suffix := strconv.FormatInt(g.clock.Now().UnixMilli(), 36) + "-" + hex.EncodeToString(buf)

	slug := Slug(name)
	if slug == "" {
		return suffix, nil
	}

	return slug + "-" + suffix, nil
}

// Slug lower-cases name, strips everything that is not a letter or digit, and
// renders internal word breaks as single hyphens. An all-punctuation name
// slugs to the empty string.
func Slug(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingHyphen = true
		}
	}

	return b.String()
}
