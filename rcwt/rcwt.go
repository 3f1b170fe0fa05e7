// Package rcwt is the public façade over the RCWT subtitle exporter.
package rcwt

import (
	"io"

	internal "github.com/zsiec/ttxcodec/internal/rcwt"
)

// HeaderSize is the fixed byte length of the RCWT file header.
const HeaderSize = internal.HeaderSize

// RecordSize is the byte length of one per-line record.
const RecordSize = internal.RecordSize

// Encoder accumulates T42 lines for a single RCWT output session.
type Encoder struct {
	inner *internal.Encoder
}

// NewEncoder returns a fresh Encoder.
func NewEncoder() *Encoder {
	return &Encoder{inner: internal.NewEncoder()}
}

// WriteLine writes the header (once) then one record for a 42-byte T42
// line at the given frame number.
func (e *Encoder) WriteLine(w io.Writer, frameNumber int64, t42 []byte) error {
	return e.inner.WriteLine(w, frameNumber, t42)
}

// Reset clears session state so the Encoder can start a new output.
func (e *Encoder) Reset() {
	e.inner.Reset()
}
