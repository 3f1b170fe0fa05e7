// Package vbi is the public façade over the VBI waveform decoder.
package vbi

import (
	"io"

	"github.com/zsiec/ttxcodec/format"
	internal "github.com/zsiec/ttxcodec/internal/vbi"
)

// NewLineDecoder returns a format.LineDecoder over r, reading fixed-length
// VBI waveform lines (lineLength must be format.VBILineLength or
// format.VBIDoubleLineLength).
func NewLineDecoder(r io.Reader, lineLength int, opts format.ParseOptions) format.LineDecoder {
	return internal.NewDecoder(r, lineLength, opts)
}

// DecodeLine decodes one VBI waveform line to its 42-byte T42 payload.
func DecodeLine(raw []byte) (line []byte, ok bool) {
	return internal.DecodeLine(raw)
}

// Upsample converts a 720-sample VBI line to a 1440-sample VBI_DOUBLE line.
func Upsample(in []byte) []byte {
	return internal.Upsample(in)
}
