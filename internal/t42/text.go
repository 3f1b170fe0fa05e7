package t42

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// g0Overrides lists the teletext Latin G0 "English" national-option
// substitutions that diverge from plain ASCII/ISO-8859-1 in the 0x20-0x7F
// range.
var g0Overrides = map[byte]string{
	0x23: "£",
	0x5B: "←",
	0x5C: "½",
	0x5D: "→",
	0x5E: "↑",
	0x5F: "#",
	0x60: "–",
	0x7B: "¼",
	0x7C: "‖",
	0x7D: "¾",
	0x7E: "÷",
}

// g0Decoder transcodes the ASCII-range passthrough bytes of the G0 table
// via ISO-8859-1, which is byte-identical to ASCII over 0x20-0x7E; only the
// codepoints in g0Overrides differ from it.
var g0Decoder = charmap.ISO8859_1.NewDecoder()

// decodeG0Byte maps one parity-stripped G0 byte (0x20-0x7F) to its display
// string, applying the national-option substitutions.
func decodeG0Byte(b byte) string {
	if s, ok := g0Overrides[b]; ok {
		return s
	}
	if b < 0x20 || b == 0x7F {
		return " "
	}
	out, err := g0Decoder.Bytes([]byte{b})
	if err != nil || len(out) == 0 {
		return string(rune(b))
	}
	return string(out)
}

// StripParity removes the parity bit from a teletext text byte.
func StripParity(b byte) byte {
	return b & 0x7F
}

// DecodeHeaderText decodes a header row (row 0): a simple G0 ASCII mapping
// with no colour control-code interpretation. payload is the raw text
// portion of the line (bytes after the packet address field).
func DecodeHeaderText(payload []byte) string {
	var sb strings.Builder
	for _, raw := range payload {
		b := StripParity(raw)
		if b < 0x20 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(decodeG0Byte(b))
	}
	return sb.String()
}

// Colour indices used by the Set-After state machine: the classic 8-colour
// teletext palette (black, red, green, yellow, blue, magenta, cyan, white).
const (
	ColorBlack = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// ColorState models the teletext Set-After colour control-code state
// machine used when decoding data rows (1-24). It is a pure state machine
// so its contract can be tested independently of text rendering.
type ColorState struct {
	CommittedFG  int
	CommittedBG  int
	PendingFG    int
	PendingBG    int
	HasPendingFG bool
	HasPendingBG bool
	BoxDepth     int
	Graphics     bool
}

// NewColorState returns the reset state: white text on a black background.
func NewColorState() ColorState {
	return ColorState{CommittedFG: ColorWhite, CommittedBG: ColorBlack}
}

// Apply processes one parity-stripped byte and reports whether it should
// be emitted as a printable character (using the now-committed colours).
func (s *ColorState) Apply(b byte) (printable bool) {
	switch {
	case b <= 0x07:
		s.PendingFG, s.HasPendingFG, s.Graphics = int(b&0x07), true, false
		return false
	case b >= 0x10 && b <= 0x17:
		s.PendingFG, s.HasPendingFG, s.Graphics = int(b&0x07), true, true
		return false
	case b == 0x0B:
		s.BoxDepth++
		return false
	case b == 0x0A:
		if s.BoxDepth > 0 {
			s.BoxDepth--
		}
		if s.BoxDepth == 0 {
			*s = NewColorState()
		}
		return false
	case b == 0x1C:
		s.CommittedBG = ColorBlack
		s.HasPendingBG = false
		return false
	case b == 0x1D:
		if s.HasPendingFG {
			s.CommittedFG = s.PendingFG
			s.HasPendingFG = false
		}
		s.PendingBG, s.HasPendingBG = s.CommittedFG, true
		return false
	case b < 0x20:
		return false
	default:
		s.commitPending()
		return true
	}
}

func (s *ColorState) commitPending() {
	if s.HasPendingFG {
		s.CommittedFG = s.PendingFG
		s.HasPendingFG = false
	}
	if s.HasPendingBG {
		s.CommittedBG = s.PendingBG
		s.HasPendingBG = false
	}
}

// DecodeDataText decodes a data row (1-24) by driving the Set-After state
// machine over payload and emitting only the bytes that survive as
// printable characters. Colour state itself is not reflected in the
// returned string; callers that need colour spans should drive ColorState
// directly per byte.
func DecodeDataText(payload []byte) string {
	var sb strings.Builder
	state := NewColorState()
	for _, raw := range payload {
		b := StripParity(raw)
		if state.Apply(b) {
			sb.WriteString(decodeG0Byte(b))
		}
	}
	return sb.String()
}
