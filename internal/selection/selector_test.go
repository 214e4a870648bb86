package selection

import (
	"reflect"
	"testing"

	"sublift/internal/language"
	"sublift/internal/media"
)

func mustPolicy(t *testing.T, langs []string, forced, sdh, noCommentary bool, title string) Policy {
	t.Helper()
	policy, err := NewPolicy(langs, forced, sdh, noCommentary, title)
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	return policy
}

func TestNewPolicyUnknownLanguage(t *testing.T) {
	if _, err := NewPolicy([]string{"en", "zz"}, false, false, false, ""); err == nil {
		t.Fatal("expected error for unknown language token")
	}
}

func TestNewPolicyEmpty(t *testing.T) {
	if _, err := NewPolicy(nil, false, false, false, ""); err == nil {
		t.Fatal("expected error for empty language set")
	}
}

func TestSelectGroupsByLanguageInContainerOrder(t *testing.T) {
	tracks := []media.Track{
		{Index: 2, LanguageTag: "spa", Codec: media.CodecSubRip},
		{Index: 3, LanguageTag: "eng", Codec: media.CodecSubRip, Title: "Full"},
		{Index: 5, LanguageTag: "eng", Codec: media.CodecASS, Title: "Signs"},
		{Index: 7, LanguageTag: "und"},
	}
	policy := mustPolicy(t, []string{"en", "es"}, false, false, false, "")

	sel := Select(tracks, policy)

	if got, want := sel.Languages, []language.Code{"en", "es"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Languages = %v, want %v (policy order)", got, want)
	}
	en := sel.Groups["en"]
	if len(en) != 2 || en[0].Index != 3 || en[1].Index != 5 {
		t.Errorf("en group = %+v, want container order [3 5]", en)
	}
	if sel.Unresolved != 1 {
		t.Errorf("Unresolved = %d, want 1", sel.Unresolved)
	}
}

func TestSelectFlagRules(t *testing.T) {
	tracks := []media.Track{
		{Index: 0, LanguageTag: "en"},
		{Index: 1, LanguageTag: "en", Forced: true},
		{Index: 2, LanguageTag: "en", SDH: true},
		{Index: 3, LanguageTag: "en", Commentary: true},
	}

	tests := []struct {
		name     string
		policy   Policy
		indices  []int
		filtered int
	}{
		{
			name:     "defaults drop forced and sdh",
			policy:   mustPolicy(t, []string{"en"}, false, false, false, ""),
			indices:  []int{0, 3},
			filtered: 2,
		},
		{
			name:     "include forced",
			policy:   mustPolicy(t, []string{"en"}, true, false, false, ""),
			indices:  []int{0, 1, 3},
			filtered: 1,
		},
		{
			name:     "include sdh",
			policy:   mustPolicy(t, []string{"en"}, false, true, false, ""),
			indices:  []int{0, 2, 3},
			filtered: 1,
		},
		{
			name:     "exclude commentary",
			policy:   mustPolicy(t, []string{"en"}, true, true, true, ""),
			indices:  []int{0, 1, 2},
			filtered: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Select(tracks, tt.policy)
			var got []int
			for _, track := range sel.Groups["en"] {
				got = append(got, track.Index)
			}
			if !reflect.DeepEqual(got, tt.indices) {
				t.Errorf("kept indices = %v, want %v", got, tt.indices)
			}
			if sel.Filtered != tt.filtered {
				t.Errorf("Filtered = %d, want %d", sel.Filtered, tt.filtered)
			}
		})
	}
}

func TestSelectTitleSubstring(t *testing.T) {
	tracks := []media.Track{
		{Index: 0, LanguageTag: "en", Title: "Signs & Songs"},
		{Index: 1, LanguageTag: "en", Title: "Full Dialogue"},
		{Index: 2, LanguageTag: "en"},
	}
	policy := mustPolicy(t, []string{"en"}, false, false, false, "signs")

	sel := Select(tracks, policy)
	en := sel.Groups["en"]
	if len(en) != 1 || en[0].Index != 0 {
		t.Fatalf("title filter kept %+v, want only index 0", en)
	}
	if sel.Filtered != 2 {
		t.Errorf("Filtered = %d, want 2", sel.Filtered)
	}
}

func TestSelectEmptyResult(t *testing.T) {
	tracks := []media.Track{
		{Index: 0, LanguageTag: "fra"},
	}
	policy := mustPolicy(t, []string{"en"}, false, false, false, "")

	sel := Select(tracks, policy)
	if !sel.Empty() {
		t.Fatalf("expected empty selection, got %+v", sel)
	}
	if sel.TrackCount() != 0 {
		t.Errorf("TrackCount = %d, want 0", sel.TrackCount())
	}
}

func TestSelectDeterministic(t *testing.T) {
	tracks := []media.Track{
		{Index: 1, LanguageTag: "eng"},
		{Index: 2, LanguageTag: "spa"},
		{Index: 3, LanguageTag: "eng"},
		{Index: 4, LanguageTag: "ger"},
	}
	policy := mustPolicy(t, []string{"de", "en", "es"}, false, false, false, "")

	first := Select(tracks, policy)
	for i := 0; i < 10; i++ {
		again := Select(tracks, policy)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("selection not deterministic: %+v vs %+v", first, again)
		}
	}
}
