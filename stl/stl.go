// Package stl is the public façade over the EBU-t3264 (STL) subtitle
// exporter.
package stl

import (
	"io"

	internal "github.com/zsiec/ttxcodec/internal/stl"
	"github.com/zsiec/ttxcodec/timecode"
)

// Options configures the GSI header fields a caller may want to set.
type Options = internal.GSIOptions

// Encoder accumulates decoded teletext lines for one STL output session.
type Encoder struct {
	inner *internal.Encoder
}

// NewEncoder returns an Encoder. merge enables the growth/clear-countdown
// subtitle-merge state machine; when false every non-blank line becomes
// its own TTI block.
func NewEncoder(opts Options, merge bool) *Encoder {
	return &Encoder{inner: internal.NewEncoder(opts, merge)}
}

// WriteLine feeds one decoded teletext row into the exporter.
func (e *Encoder) WriteLine(text string, row int, tc timecode.Timecode) {
	e.inner.WriteLine(text, row, tc)
}

// Finalize flushes any pending merged subtitle and writes the GSI header
// followed by every accumulated TTI block to w. date is the "yymmdd" value
// stamped into the GSI creation/revision date fields. It returns the
// number of TTI blocks written.
func (e *Encoder) Finalize(w io.Writer, date string) (int, error) {
	return e.inner.Finalize(w, date)
}
