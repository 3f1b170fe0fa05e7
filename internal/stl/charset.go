package stl

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// stlOverrides mirrors t42.g0Overrides in the opposite direction: the
// teletext national-option runes this module emits for header/data rows are
// re-encoded to their original G0 byte when building STL text fields.
var stlOverrides = map[rune]byte{
	'£': 0x23,
	'←': 0x5B,
	'½': 0x5C,
	'→': 0x5D,
	'↑': 0x5E,
	'–': 0x60,
	'¼': 0x7B,
	'‖': 0x7C,
	'¾': 0x7D,
	'÷': 0x7E,
}

var g0Encoder = charmap.ISO8859_1.NewEncoder()

// encodeRune maps a single display rune to its STL (Latin G0) byte. Runes
// with no representation fall back to '?'.
func encodeRune(r rune) byte {
	if b, ok := stlOverrides[r]; ok {
		return b
	}
	if out, err := g0Encoder.Bytes([]byte(string(r))); err == nil && len(out) == 1 {
		return out[0]
	}
	return '?'
}

// EncodeText converts decoded teletext display text into STL Latin
// character-set bytes. Every rune is first decomposed via NFD and the
// grave, acute, circumflex, tilde and diaeresis combining marks are
// dropped, so an accented letter is written as its unaccented base letter
// even where ISO-8859-1 has a byte for the precomposed form; any other rune
// with no single-byte encoding becomes '?'.
func EncodeText(s string) []byte {
	decomposed := norm.NFD.String(s)
	out := make([]byte, 0, len(decomposed))
	for _, r := range decomposed {
		if r == '̀' || r == '́' || r == '̂' || r == '̃' || r == '̈' {
			continue // combining marks with no direct STL slot are dropped
		}
		out = append(out, encodeRune(r))
	}
	return out
}

// IsBlank reports whether every byte in text is a space or control code,
// i.e. carries no displayable content.
func IsBlank(text []byte) bool {
	for _, b := range text {
		if b > 0x20 {
			return false
		}
	}
	return true
}
