package storage

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Text that was written as UTF-8 but decoded as Latin-1 somewhere along the
// way shows up with these tell-tale sequences. Spanish accents become "Ã"
// pairs, smart punctuation becomes "â€" runs, and emoji turn into "ðŸ"
// garbage.
var mojibakeArtifacts = []string{"Ã", "â€", "ðŸ"}

// mojibakeFixes maps known corrupted sequences to their intended characters.
// Applied as a last resort when re-decoding cannot produce clean text. The
// order matters: longer sequences first so their prefixes don't match early.
var mojibakeFixes = []struct{ bad, good string }{
	{"â€œ", "“"},
	{"â€", "”"},
	{"â€™", "’"},
	{"â€˜", "‘"},
	{"â€”", "—"},
	{"â€“", "–"},
	{"â€¦", "…"},
	{"Ã¡", "á"},
	{"Ã©", "é"},
	{"Ã­", "í"},
	{"Ã³", "ó"},
	{"Ãº", "ú"},
	{"Ã±", "ñ"},
	{"Ã", "Á"},
	{"Ã‰", "É"},
	{"Ã", "Í"},
	{"Ã“", "Ó"},
	{"Ãš", "Ú"},
	{"Ã‘", "Ñ"},
	{"Ã¼", "ü"},
	{"Ãœ", "Ü"},
	{"Â¿", "¿"},
	{"Â¡", "¡"},
}

// HasMojibake reports whether s contains artifacts of a UTF-8-as-Latin-1
// mis-decode.
func HasMojibake(s string) bool {
	for _, a := range mojibakeArtifacts {
		if strings.Contains(s, a) {
			return true
		}
	}
	return false
}

// DecodeText decodes raw file bytes into a string, recovering from common
// legacy-encoding corruption. UTF-8 is tried first; when the result carries
// mojibake artifacts the raw bytes are re-decoded under a prioritized list
// of fallback charmaps, and the first artifact-free candidate wins. If no
// decoding is clean, the known corrupted sequences are patched in place.
//
// This is a best-effort heuristic, not a guarantee: text corrupted in ways
// outside the fix table passes through patched only partially.
func DecodeText(raw []byte) string {
	content := string(raw)
	if !HasMojibake(content) {
		return content
	}

	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := cm.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		if s := string(decoded); !HasMojibake(s) {
			return s
		}
	}

	return FixMojibake(content)
}

// FixMojibake applies the fixed substring substitution table to s.
func FixMojibake(s string) string {
	for _, f := range mojibakeFixes {
		s = strings.ReplaceAll(s, f.bad, f.good)
	}
	return s
}
