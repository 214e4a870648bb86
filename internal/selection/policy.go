package selection

import (
	"fmt"
	"strings"

	"sublift/internal/language"
)

// Policy is the immutable per-run selection configuration.
type Policy struct {
	// Languages holds the requested canonical codes, order-preserving and
	// deduplicated. Never empty for a valid policy.
	Languages []language.Code

	IncludeForced     bool
	IncludeSDH        bool
	ExcludeCommentary bool
	// TitleSubstring, when non-empty, restricts selection to tracks whose
	// title contains it (case-insensitive).
	TitleSubstring string
}

// NewPolicy normalizes the requested language tokens into a Policy. Unknown
// tokens are a configuration error, surfaced before any file is touched.
func NewPolicy(languageTokens []string, includeForced, includeSDH, excludeCommentary bool, titleSubstring string) (Policy, error) {
	codes, err := language.NormalizeSet(languageTokens)
	if err != nil {
		return Policy{}, err
	}
	if len(codes) == 0 {
		return Policy{}, fmt.Errorf("no languages requested")
	}
	return Policy{
		Languages:         codes,
		IncludeForced:     includeForced,
		IncludeSDH:        includeSDH,
		ExcludeCommentary: excludeCommentary,
		TitleSubstring:    strings.TrimSpace(titleSubstring),
	}, nil
}

// Wants reports whether the policy requests the given canonical code.
func (p Policy) Wants(code language.Code) bool {
	for _, c := range p.Languages {
		if c == code {
			return true
		}
	}
	return false
}
