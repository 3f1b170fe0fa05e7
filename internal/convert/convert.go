// Package convert implements the stateless single-line FormatConverter
// routines: T42 to/from VBI waveform samples, VBI/VBI_DOUBLE resampling,
// and the building blocks RCWT/STL use to render one line.
package convert

import (
	"errors"

	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/internal/vbi"
)

// ErrInvalidLineLength is returned when a conversion input is not the
// expected fixed line length for its format.
var ErrInvalidLineLength = errors.New("convert: unexpected line length")

// frameBytes is the clock-run-in + framing-code preamble prepended to a
// T42 payload before it is expanded into a VBI waveform.
var frameBytes = [3]byte{0x55, 0x55, 0x27}

// samplesPerBitVBI is the scale factor projecting the 360-bit frame
// (preamble + 42 data bytes) onto the 720-sample VBI line.
const samplesPerBitVBI = 2

// T42ToVBI renders a 42-byte T42 line as a 720-sample VBI waveform: clock
// run-in and framing-code preamble, 42 data bytes, each bit expanded to
// samplesPerBitVBI samples (high = 0xFF, low = 0x00), LSB first per byte.
func T42ToVBI(t42 []byte) ([]byte, error) {
	if len(t42) != format.T42LineLength {
		return nil, ErrInvalidLineLength
	}
	out := make([]byte, format.VBILineLength)
	pos := 0
	writeByte := func(b byte) {
		for i := 0; i < 8; i++ {
			bit := (b >> uint(i)) & 1
			val := byte(0x00)
			if bit == 1 {
				val = 0xFF
			}
			for s := 0; s < samplesPerBitVBI; s++ {
				if pos < len(out) {
					out[pos] = val
					pos++
				}
			}
		}
	}
	for _, b := range frameBytes {
		writeByte(b)
	}
	for _, b := range t42 {
		writeByte(b)
	}
	return out, nil
}

// T42ToVBIDouble renders a 42-byte T42 line as a 1440-sample VBI_DOUBLE
// waveform: the 720-sample encoding, doubled via linear interpolation.
func T42ToVBIDouble(t42 []byte) ([]byte, error) {
	base, err := T42ToVBI(t42)
	if err != nil {
		return nil, err
	}
	return DoubleVBI(base), nil
}

// DoubleVBI upsamples a 720-sample VBI line to 1440 samples by linear
// interpolation: out[2i]=in[i], out[2i+1]=floor((in[i]+in[i+1])/2).
func DoubleVBI(in []byte) []byte {
	return vbi.Upsample(in)
}

// HalveVBI downsamples a 1440-sample VBI_DOUBLE line to 720 by taking
// every other sample.
func HalveVBI(in []byte) []byte {
	out := make([]byte, len(in)/2)
	for i := range out {
		out[i] = in[2*i]
	}
	return out
}

// VBIToT42 decodes a VBI waveform line (720 or 1440 samples) to its
// 42-byte T42 payload, per §4.3.
func VBIToT42(raw []byte) (line []byte, ok bool) {
	return vbi.DecodeLine(raw)
}
