package textmetric

import "strings"

// NormalizeOptions controls how player names are canonicalized before
// comparison.
type NormalizeOptions struct {
	// CaseSensitive keeps the original casing when true.
	CaseSensitive bool
	// IgnoreWhitespace trims the ends and collapses internal whitespace runs
	// to a single space when true.
	IgnoreWhitespace bool
}

// DefaultNormalizeOptions returns the case-insensitive, whitespace-tolerant
// defaults used everywhere matching is not explicitly configured.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{
		CaseSensitive:    false,
		IgnoreWhitespace: true,
	}
}

// Normalize canonicalizes a name according to opts. Both options are
// independent and may be combined.
func Normalize(name string, opts NormalizeOptions) string {
	if !opts.CaseSensitive {
		name = strings.ToLower(name)
	}
	if opts.IgnoreWhitespace {
		name = strings.Join(strings.Fields(name), " ")
	}

	return name
}
