// Package format defines the container-agnostic Line and Packet types that
// flow between every decoder, converter, and encoder in this module, along
// with the FormatTag enumeration and ParseOptions configuration shared by
// every decoder.
package format

import "github.com/zsiec/ttxcodec/timecode"

// Tag is a closed enumeration of the container and line formats this module
// understands.
type Tag int

const (
	Unknown Tag = iota
	VBI
	VBIDouble
	T42
	ANC
	MXF
	TS
	RCWT
	STL
)

func (t Tag) String() string {
	switch t {
	case VBI:
		return "VBI"
	case VBIDouble:
		return "VBI_DOUBLE"
	case T42:
		return "T42"
	case ANC:
		return "ANC"
	case MXF:
		return "MXF"
	case TS:
		return "TS"
	case RCWT:
		return "RCWT"
	case STL:
		return "STL"
	default:
		return "Unknown"
	}
}

// Byte lengths for the line formats that have a fixed, bit-exact size.
const (
	T42LineLength       = 42
	VBILineLength       = 720
	VBIDoubleLineLength = 1440
)

// DefaultRows is the full teletext page display row range, 0..23.
var DefaultRows = func() map[int]bool {
	m := make(map[int]bool, 24)
	for r := 0; r <= 23; r++ {
		m[r] = true
	}
	return m
}()

// CaptionRows is the fixed subset of rows conventionally carrying closed
// captions in a teletext page (rows 20-22).
var CaptionRows = map[int]bool{20: true, 21: true, 22: true}

// Line is a decoded teletext-class unit of exactly 42 (T42), 720 (VBI), or
// 1440 (VBI_DOUBLE) bytes.
type Line struct {
	Raw          []byte
	Format       Tag
	SampleCoding byte
	SampleCount  int
	Magazine     int // 0 means "not present"; valid range 1-8
	HasMagazine  bool
	Row          int
	HasRow       bool
	Text         string
	HasText      bool
	Timecode     timecode.Timecode
}

// Len returns the byte length of the line's raw payload.
func (l Line) Len() int {
	return len(l.Raw)
}

// Packet is a frame-level grouping of lines sharing a single timecode.
type Packet struct {
	Timecode  timecode.Timecode
	Magazine  byte
	LineCount int
	Lines     []Line
}

// ParseOptions configures every decoder in this module.
type ParseOptions struct {
	// Magazine filters lines/packets to a single magazine (1-8). Zero
	// means "no filter".
	Magazine int
	HasMagazine bool

	// Rows filters lines to the given row set. Nil defaults to
	// DefaultRows (rows 0-23).
	Rows map[int]bool

	// OutputFormat is the format the caller intends to convert to.
	OutputFormat Tag

	// StartTimecode seeds decoders that lack an intrinsic start
	// timecode (ANC, TS fallback counter).
	StartTimecode *timecode.Timecode

	// PIDs restricts TS decoding to a set of elementary PIDs. TS only.
	PIDs map[uint16]bool

	// LineCount is the number of lines per frame for formats lacking an
	// intrinsic frame boundary (T42, VBI). Defaults to 2.
	LineCount int

	// Verbose is carried for callers; no decoder in this module reads it,
	// and the decoders do not log.
	Verbose bool
}

// EffectiveRows returns opts.Rows, or DefaultRows if unset.
func (o ParseOptions) EffectiveRows() map[int]bool {
	if o.Rows != nil {
		return o.Rows
	}
	return DefaultRows
}

// EffectiveLineCount returns opts.LineCount, or 2 if unset.
func (o ParseOptions) EffectiveLineCount() int {
	if o.LineCount <= 0 {
		return 2
	}
	return o.LineCount
}

// MatchesFilter reports whether a line with the given magazine/row passes
// the options' filters. A missing magazine/row on the line only fails a
// filter that is itself active.
func (o ParseOptions) MatchesFilter(hasMagazine bool, magazine int, hasRow bool, row int) bool {
	if o.HasMagazine {
		if !hasMagazine || magazine != o.Magazine {
			return false
		}
	}
	rows := o.EffectiveRows()
	if hasRow {
		if !rows[row] {
			return false
		}
	}
	return true
}

// LineDecoder produces a lazy, single-pass sequence of Lines. Next returns
// a bare io.EOF when the sequence is exhausted.
type LineDecoder interface {
	Next() (Line, error)
	Close() error
}

// PacketDecoder produces a lazy, single-pass sequence of Packets.
type PacketDecoder interface {
	Next() (Packet, error)
	Close() error
}
