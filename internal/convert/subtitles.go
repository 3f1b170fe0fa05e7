package convert

import (
	"encoding/binary"

	"github.com/zsiec/ttxcodec/internal/rcwt"
	"github.com/zsiec/ttxcodec/internal/stl"
)

// T42ToRCWTRecord renders one RCWT record (without the session header) for
// a 42-byte T42 line: {fts u32 LE, field u8, 42 bytes}. fts is
// frameNumber*40 per the fixed 25fps RCWT convention.
func T42ToRCWTRecord(frameNumber int64, field uint8, t42 []byte) ([]byte, error) {
	if len(t42) != 42 {
		return nil, ErrInvalidLineLength
	}
	rec := make([]byte, rcwt.RecordSize)
	binary.LittleEndian.PutUint32(rec[0:4], uint32(frameNumber*40))
	rec[4] = field
	copy(rec[5:], t42)
	return rec, nil
}

// T42ToSTLText converts decoded teletext display text into STL Latin
// character-set bytes and reports whether the result is blank starting
// from its row-appropriate displayable column.
func T42ToSTLText(text string, row int) (encoded []byte, blank bool) {
	encoded = stl.EncodeText(text)
	start := 2
	if row == 0 {
		start = 10
	}
	if start > len(encoded) {
		start = len(encoded)
	}
	return encoded, stl.IsBlank(encoded[start:])
}
