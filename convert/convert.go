// Package convert is the public façade over the stateless single-line
// format conversion routines (FormatConverter).
package convert

import internal "github.com/zsiec/ttxcodec/internal/convert"

// T42ToVBI renders a 42-byte T42 line as a 720-sample VBI waveform.
func T42ToVBI(t42 []byte) ([]byte, error) { return internal.T42ToVBI(t42) }

// T42ToVBIDouble renders a 42-byte T42 line as a 1440-sample VBI_DOUBLE
// waveform.
func T42ToVBIDouble(t42 []byte) ([]byte, error) { return internal.T42ToVBIDouble(t42) }

// VBIToT42 decodes a VBI waveform line (720 or 1440 samples) to its
// 42-byte T42 payload.
func VBIToT42(raw []byte) (line []byte, ok bool) { return internal.VBIToT42(raw) }

// DoubleVBI upsamples a 720-sample VBI line to 1440 samples by linear
// interpolation.
func DoubleVBI(in []byte) []byte { return internal.DoubleVBI(in) }

// HalveVBI downsamples a 1440-sample VBI_DOUBLE line to 720 by taking
// every other sample.
func HalveVBI(in []byte) []byte { return internal.HalveVBI(in) }

// T42ToRCWTRecord renders one RCWT record (without the session header)
// for a 42-byte T42 line.
func T42ToRCWTRecord(frameNumber int64, field uint8, t42 []byte) ([]byte, error) {
	return internal.T42ToRCWTRecord(frameNumber, field, t42)
}

// T42ToSTLText converts decoded teletext display text into STL Latin
// character-set bytes and reports whether it is blank.
func T42ToSTLText(text string, row int) (encoded []byte, blank bool) {
	return internal.T42ToSTLText(text, row)
}
