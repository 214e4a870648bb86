package language

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a canonical ISO 639-1 language identifier.
type Code string

// ErrUnknown reports a token that matches no catalog entry. Callers treat it
// as a user-input error, not a processing error.
var ErrUnknown = errors.New("unknown language")

type entry struct {
	code2   Code     // ISO 639-1 (2-letter), the canonical form
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
	{"tr", "tur", "", "Turkish", []string{"turkish"}},
	{"el", "ell", "gre", "Greek", []string{"greek"}},
	{"he", "heb", "", "Hebrew", []string{"hebrew"}},
	{"cs", "ces", "cze", "Czech", []string{"czech"}},
	{"hu", "hun", "", "Hungarian", []string{"hungarian"}},
	{"ro", "ron", "rum", "Romanian", []string{"romanian"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ukrainian"}},
	{"id", "ind", "", "Indonesian", []string{"indonesian"}},
}

// Index maps built at init time. Lookup order is 2-letter, then 3-letter,
// then full name; every alias maps to exactly one entry.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[string(e.code2)] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(token string) *entry {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil
	}
	if e, ok := byCode2[token]; ok {
		return e
	}
	if e, ok := byCode3[token]; ok {
		return e
	}
	if e, ok := byWord[token]; ok {
		return e
	}
	return nil
}

// Normalize converts a user-supplied token (2-letter code, 3-letter code, or
// full English name, any case) to its canonical code. Unknown tokens return
// ErrUnknown.
func Normalize(token string) (Code, error) {
	e := lookup(token)
	if e == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknown, strings.TrimSpace(token))
	}
	return e.code2, nil
}

// Resolve converts a raw container language tag to its canonical code.
// Unlike Normalize it reports a miss through the boolean instead of an error;
// tracks with unresolvable tags are simply not candidates.
func Resolve(tag string) (Code, bool) {
	e := lookup(tag)
	if e == nil {
		return "", false
	}
	return e.code2, true
}

// DisplayName returns a human-readable name for any recognized token.
// Returns "Unknown" for empty input and the uppercased token otherwise.
func DisplayName(token string) string {
	if strings.TrimSpace(token) == "" {
		return "Unknown"
	}
	if e := lookup(token); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(token))
}

// NormalizeSet normalizes a list of user tokens to canonical codes,
// preserving first-seen order and dropping duplicates. The first unknown
// token aborts with ErrUnknown.
func NormalizeSet(tokens []string) ([]Code, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	codes := make([]Code, 0, len(tokens))
	seen := make(map[Code]struct{}, len(tokens))
	for _, token := range tokens {
		if strings.TrimSpace(token) == "" {
			continue
		}
		code, err := Normalize(token)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}
