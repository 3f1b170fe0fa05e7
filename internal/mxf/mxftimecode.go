package mxf

import (
	"encoding/binary"

	"github.com/zsiec/ttxcodec/timecode"
	"github.com/zsiec/ttxcodec/ttxerr"
)

// TimecodeComponentSize is the minimum byte length of a TimecodeComponent
// value this package inspects: a 4-byte start-frame count, a 2-byte
// rounded timebase, and a 1-byte drop-frame flag.
const TimecodeComponentSize = 7

// DecodeTimecodeComponent parses a TimecodeComponent value into a
// Timecode.
func DecodeTimecodeComponent(value []byte) (timecode.Timecode, error) {
	if len(value) < TimecodeComponentSize {
		return timecode.Timecode{}, ttxerr.New(ttxerr.KindDecodeStructural, "mxf: TimecodeComponent value too short")
	}
	startFrame := int64(binary.BigEndian.Uint32(value[0:4]))
	timebase := int(binary.BigEndian.Uint16(value[4:6]))
	dropFrame := value[6] != 0
	return timecode.FromFrameNumber(startFrame, timebase, dropFrame), nil
}

// EncodeTimecodeComponentStart rewrites only the start-frame field (the
// first 4 bytes) of an already-decoded TimecodeComponent value in place,
// preserving every other byte.
func EncodeTimecodeComponentStart(value []byte, tc timecode.Timecode) {
	binary.BigEndian.PutUint32(value[0:4], uint32(tc.FrameNumber()))
}

// SystemTimecodeOffset and SystemTimecodeLength locate the embedded SMPTE
// timecode within a System metadata pack's value.
const (
	SystemTimecodeOffset = 40
	SystemTimecodeLength = 4
)

// DecodeSystemTimecode reads the per-frame timecode embedded in a System
// packet value, at the fixed byte offset, as a big-endian frame count.
func DecodeSystemTimecode(value []byte, timebase int, dropFrame bool) (timecode.Timecode, error) {
	if len(value) < SystemTimecodeOffset+SystemTimecodeLength {
		return timecode.Timecode{}, ttxerr.New(ttxerr.KindDecodeStructural, "mxf: System packet value too short for embedded timecode")
	}
	frame := int64(binary.BigEndian.Uint32(value[SystemTimecodeOffset : SystemTimecodeOffset+4]))
	return timecode.FromFrameNumber(frame, timebase, dropFrame), nil
}

// EncodeSystemTimecode rewrites the embedded timecode field of a System
// packet value in place.
func EncodeSystemTimecode(value []byte, tc timecode.Timecode) {
	binary.BigEndian.PutUint32(value[SystemTimecodeOffset:SystemTimecodeOffset+4], uint32(tc.FrameNumber()))
}
