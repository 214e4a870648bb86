package selection

import (
	"strings"

	"sublift/internal/language"
	"sublift/internal/media"
)

// Selection is the result of filtering one file's tracks against a policy.
// Languages lists the groups in policy order; Groups preserves container
// order within each language.
type Selection struct {
	Languages []language.Code
	Groups    map[language.Code][]media.Track

	// Filtered counts tracks that matched a requested language but were
	// rejected by the forced/SDH/commentary/title rules. Lets reports
	// distinguish "nothing in this language" from "everything filtered out".
	Filtered int
	// Unresolved counts tracks whose language tag the catalog could not
	// resolve. Never fatal.
	Unresolved int
}

// Empty reports whether no track survived selection.
func (s Selection) Empty() bool {
	return len(s.Languages) == 0
}

// TrackCount returns the number of surviving tracks across all groups.
func (s Selection) TrackCount() int {
	n := 0
	for _, tracks := range s.Groups {
		n += len(tracks)
	}
	return n
}

// Select filters tracks against the policy and groups survivors by canonical
// language. Deterministic: identical inputs always produce identical group
// contents and ordering.
func Select(tracks []media.Track, policy Policy) Selection {
	sel := Selection{Groups: make(map[language.Code][]media.Track)}

	for _, track := range tracks {
		code, ok := language.Resolve(track.LanguageTag)
		if !ok {
			sel.Unresolved++
			continue
		}
		if !policy.Wants(code) {
			continue
		}
		if !keep(track, policy) {
			sel.Filtered++
			continue
		}
		sel.Groups[code] = append(sel.Groups[code], track)
	}

	for _, code := range policy.Languages {
		if len(sel.Groups[code]) > 0 {
			sel.Languages = append(sel.Languages, code)
		}
	}
	return sel
}

func keep(track media.Track, policy Policy) bool {
	if track.Forced && !policy.IncludeForced {
		return false
	}
	if track.SDH && !policy.IncludeSDH {
		return false
	}
	if track.Commentary && policy.ExcludeCommentary {
		return false
	}
	if policy.TitleSubstring != "" &&
		!strings.Contains(strings.ToLower(track.Title), strings.ToLower(policy.TitleSubstring)) {
		return false
	}
	return true
}
