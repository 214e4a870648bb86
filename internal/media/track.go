package media

import "strings"

// Track describes one subtitle stream inside a media container. Instances are
// produced fresh per file by a prober and never persisted.
type Track struct {
	// Index is the container-relative ordinal the extraction tool expects.
	Index int
	// LanguageTag is the raw tag from the container; may be empty or "und".
	LanguageTag string
	Codec       Codec
	Title       string
	Forced      bool
	SDH         bool
	Commentary  bool
}

// ClassifyTitle fills in flags that containers often leave unset but encode
// in the track title instead. Flags already set by container disposition are
// never cleared.
func (t *Track) ClassifyTitle() {
	title := strings.ToLower(t.Title)
	if title == "" {
		return
	}
	if strings.Contains(title, "forced") {
		t.Forced = true
	}
	if strings.Contains(title, "sdh") || strings.Contains(title, "hearing impaired") || strings.Contains(title, "cc") {
		t.SDH = true
	}
	if strings.Contains(title, "commentary") || strings.Contains(title, "comment") {
		t.Commentary = true
	}
}
