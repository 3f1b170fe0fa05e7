// Package rcwt implements the RCWT ("Raw Captions With Time") exporter: a
// fixed 11-byte file header followed by one {fts, field, 42 bytes of T42}
// record per line.
package rcwt

import (
	"encoding/binary"
	"io"
)

// HeaderSize is the fixed byte length of the RCWT file header.
const HeaderSize = 11

// header is the 11-byte magic this format opens with. No literal
// byte-for-byte reference for this header existed to copy; it follows the
// documented shape (magic + format tag + version) of ccextractor's
// debugging bitstream without claiming to reproduce its exact bytes.
var header = [HeaderSize]byte{0xCC, 0xCC, 0xED, 'C', 'C', 1, 0, 0, 0, 0, 0}

// RecordSize is the byte length of one {fts u32, field u8, t42 42 bytes}
// record.
const RecordSize = 4 + 1 + 42

// fpsScaleFrameMS is the fixed millisecond-per-frame scale RCWT timestamps
// use regardless of the source's actual frame rate (ccextractor's
// convention: 25 fps, so 1000/25 = 40ms per frame).
const fpsScaleFrameMS = 40

// Encoder accumulates T42 lines for a single RCWT output session. It owns
// all session state (header-written flag, field toggle) so concurrent
// sessions never share mutable globals.
type Encoder struct {
	headerWritten bool
	field         uint8
}

// NewEncoder returns a fresh Encoder with the header-written flag clear and
// field number reset to 0.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// WriteLine writes the header (once, on the first call) then one record
// for a T42 line at the given frame number. t42 must be exactly 42 bytes.
func (e *Encoder) WriteLine(w io.Writer, frameNumber int64, t42 []byte) error {
	if len(t42) != 42 {
		return ErrInvalidLineLength
	}
	if !e.headerWritten {
		if _, err := w.Write(header[:]); err != nil {
			return err
		}
		e.headerWritten = true
	}

	rec := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(rec[0:4], uint32(frameNumber*fpsScaleFrameMS))
	rec[4] = e.field
	copy(rec[5:], t42)
	if _, err := w.Write(rec); err != nil {
		return err
	}

	e.field ^= 1
	return nil
}

// Reset clears the header-written flag and resets the field toggle so the
// same Encoder can start a new output session.
func (e *Encoder) Reset() {
	e.headerWritten = false
	e.field = 0
}
