// Package mxf decodes SMPTE 377M MXF (KLV-encoded) files: ancillary
// teletext extraction, raw key/type extraction and demuxing, and
// in-place timecode restriping.
package mxf

import (
	"bytes"
	"encoding/hex"
)

// Key is a 16-byte MXF Universal Label.
type Key [16]byte

// String renders the key as lowercase hex, the conventional form used by
// demux output filenames.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// FourCC is the fixed MXF universal-label prefix shared by every key.
var FourCC = [4]byte{0x06, 0x0E, 0x2B, 0x34}

// KeyType classifies a Key by its registered function within an MXF file.
type KeyType int

const (
	Unknown KeyType = iota
	TimecodeComponent
	System
	Data
	Video
	Audio
)

func (t KeyType) String() string {
	switch t {
	case TimecodeComponent:
		return "TimecodeComponent"
	case System:
		return "System"
	case Data:
		return "Data"
	case Video:
		return "Video"
	case Audio:
		return "Audio"
	default:
		return "Unknown"
	}
}

// Suffix returns the fixed filename suffix used by Extract mode.
func (t KeyType) Suffix() string {
	switch t {
	case Data:
		return "_d"
	case Video:
		return "_v"
	case System:
		return "_s"
	case TimecodeComponent:
		return "_t"
	case Audio:
		return "_a"
	default:
		return "_u"
	}
}

type ulEntry struct {
	prefix []byte
	typ    KeyType
}

// essenceTable holds the generic-container essence element keys: the
// specific table, matched before the generic structural-metadata table.
var essenceTable = []ulEntry{
	{prefix: []byte{0x02, 0x05, 0x01, 0x01, 0x0D, 0x01, 0x03, 0x01, 0x04}, typ: System},
	{prefix: []byte{0x01, 0x02, 0x01, 0x01, 0x0D, 0x01, 0x03, 0x01, 0x15}, typ: Video},
	{prefix: []byte{0x01, 0x02, 0x01, 0x01, 0x0D, 0x01, 0x03, 0x01, 0x16}, typ: Audio},
	{prefix: []byte{0x01, 0x02, 0x01, 0x01, 0x0D, 0x01, 0x03, 0x01, 0x17}, typ: Data},
}

// keysTable holds generic structural-metadata set keys.
var keysTable = []ulEntry{
	{prefix: []byte{0x02, 0x53, 0x01, 0x01, 0x0D, 0x01, 0x01, 0x01, 0x01, 0x14}, typ: TimecodeComponent},
}

// ClassifyKey classifies k by longest matching prefix, first against the
// essence table, then the generic keys table. The universal FourCC prefix
// (bytes 0-3) is excluded from matching.
func ClassifyKey(k Key) KeyType {
	rest := k[4:]
	if t, ok := longestMatch(essenceTable, rest); ok {
		return t
	}
	if t, ok := longestMatch(keysTable, rest); ok {
		return t
	}
	return Unknown
}

func longestMatch(table []ulEntry, rest []byte) (KeyType, bool) {
	bestLen := -1
	best := Unknown
	for _, e := range table {
		if len(e.prefix) <= bestLen {
			continue
		}
		if bytes.HasPrefix(rest, e.prefix) {
			bestLen = len(e.prefix)
			best = e.typ
		}
	}
	return best, bestLen >= 0
}
