package media

import (
	"errors"
	"fmt"
	"strings"
)

// Codec identifies a subtitle stream format. The set is closed; anything a
// prober cannot classify is CodecUnknown and never silently defaulted.
type Codec int

const (
	CodecUnknown Codec = iota
	CodecSubRip
	CodecASS
	CodecPGS
	CodecVobSub
	CodecMovText
)

// ErrUnknownCodec reports a codec with no defined output extension.
var ErrUnknownCodec = errors.New("unknown subtitle codec")

func (c Codec) String() string {
	switch c {
	case CodecSubRip:
		return "SubRip"
	case CodecASS:
		return "ASS"
	case CodecPGS:
		return "PGS"
	case CodecVobSub:
		return "VobSub"
	case CodecMovText:
		return "MOV text"
	default:
		return "unknown"
	}
}

// Extension returns the output file extension (without dot) for the codec.
// Unknown codecs are an error, not a fallback.
func (c Codec) Extension() (string, error) {
	switch c {
	case CodecSubRip, CodecMovText:
		return "srt", nil
	case CodecASS:
		return "ass", nil
	case CodecPGS, CodecVobSub:
		return "sup", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCodec, c)
	}
}

// ImageBased reports whether the codec carries bitmap subtitles that need
// OCR before any text-format conversion.
func (c Codec) ImageBased() bool {
	return c == CodecPGS || c == CodecVobSub
}

// Codec identifier strings as emitted by mkvmerge and ffprobe. Exact match is
// attempted first; the substring pass catches compound strings such as
// "SubRip/SRT" or "HDMV PGS".
var codecNames = []struct {
	name  string
	codec Codec
}{
	{"subrip/srt", CodecSubRip},
	{"subrip", CodecSubRip},
	{"srt", CodecSubRip},
	{"substationalpha", CodecASS},
	{"ass", CodecASS},
	{"ssa", CodecASS},
	{"hdmv pgs", CodecPGS},
	{"hdmv_pgs_subtitle", CodecPGS},
	{"pgssub", CodecPGS},
	{"vobsub", CodecVobSub},
	{"dvd_subtitle", CodecVobSub},
	{"dvdsub", CodecVobSub},
	{"mov_text", CodecMovText},
	{"tx3g", CodecMovText},
}

// ParseCodec classifies a raw codec identifier from container metadata.
func ParseCodec(raw string) Codec {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return CodecUnknown
	}
	for _, cn := range codecNames {
		if cleaned == cn.name {
			return cn.codec
		}
	}
	for _, cn := range codecNames {
		if strings.Contains(cleaned, cn.name) {
			return cn.codec
		}
	}
	return CodecUnknown
}
