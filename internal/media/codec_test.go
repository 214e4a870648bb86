package media

import (
	"errors"
	"testing"
)

func TestParseCodec(t *testing.T) {
	tests := []struct {
		input    string
		expected Codec
	}{
		{"SubRip/SRT", CodecSubRip},
		{"subrip", CodecSubRip},
		{"S_TEXT/UTF8 SubRip", CodecSubRip},
		{"SubStationAlpha", CodecASS},
		{"ass", CodecASS},
		{"ssa", CodecASS},
		{"HDMV PGS", CodecPGS},
		{"hdmv_pgs_subtitle", CodecPGS},
		{"pgssub", CodecPGS},
		{"VobSub", CodecVobSub},
		{"dvd_subtitle", CodecVobSub},
		{"dvdsub", CodecVobSub},
		{"mov_text", CodecMovText},
		{"tx3g", CodecMovText},
		{"", CodecUnknown},
		{"webvtt", CodecUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseCodec(tt.input); got != tt.expected {
				t.Errorf("ParseCodec(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCodecExtension(t *testing.T) {
	tests := []struct {
		codec Codec
		ext   string
	}{
		{CodecSubRip, "srt"},
		{CodecMovText, "srt"},
		{CodecASS, "ass"},
		{CodecPGS, "sup"},
		{CodecVobSub, "sup"},
	}
	for _, tt := range tests {
		t.Run(tt.codec.String(), func(t *testing.T) {
			ext, err := tt.codec.Extension()
			if err != nil {
				t.Fatalf("Extension(%v): %v", tt.codec, err)
			}
			if ext != tt.ext {
				t.Errorf("Extension(%v) = %q, want %q", tt.codec, ext, tt.ext)
			}
		})
	}
}

func TestCodecExtensionUnknown(t *testing.T) {
	if _, err := CodecUnknown.Extension(); !errors.Is(err, ErrUnknownCodec) {
		t.Fatalf("Extension(unknown) error = %v, want ErrUnknownCodec", err)
	}
}

func TestImageBased(t *testing.T) {
	for _, c := range []Codec{CodecPGS, CodecVobSub} {
		if !c.ImageBased() {
			t.Errorf("%v should be image-based", c)
		}
	}
	for _, c := range []Codec{CodecSubRip, CodecASS, CodecMovText, CodecUnknown} {
		if c.ImageBased() {
			t.Errorf("%v should not be image-based", c)
		}
	}
}

func TestClassifyTitle(t *testing.T) {
	tests := []struct {
		title      string
		forced     bool
		sdh        bool
		commentary bool
	}{
		{"English (Forced)", true, false, false},
		{"English SDH", false, true, false},
		{"Hearing Impaired", false, true, false},
		{"English CC", false, true, false},
		{"Director's Commentary", false, false, true},
		{"Signs & Songs", false, false, false},
		{"", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			track := Track{Title: tt.title}
			track.ClassifyTitle()
			if track.Forced != tt.forced || track.SDH != tt.sdh || track.Commentary != tt.commentary {
				t.Errorf("ClassifyTitle(%q) = forced=%v sdh=%v commentary=%v, want %v %v %v",
					tt.title, track.Forced, track.SDH, track.Commentary, tt.forced, tt.sdh, tt.commentary)
			}
		})
	}
}

func TestClassifyTitleNeverClearsDispositionFlags(t *testing.T) {
	track := Track{Title: "English", Forced: true}
	track.ClassifyTitle()
	if !track.Forced {
		t.Fatal("disposition forced flag was cleared by title classification")
	}
}
