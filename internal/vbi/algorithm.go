// Package vbi decodes VBI (Vertical Blanking Interval) waveform lines into
// T42 teletext payloads.
package vbi

import "github.com/zsiec/ttxcodec/format"

// Sampling constants. A transmitted bit occupies BitStride samples at the
// upsampled (1440-sample) rate; a byte therefore spans ByteStride samples.
const (
	BitStride    = 4
	ByteStride   = BitStride * 8 // 32
	ExtendedByte = ByteStride + BitStride

	MaxOffsetSearch = ByteStride * 2
	ClockOffset1    = ByteStride
	FramingOffset1  = ByteStride * 2
	FramingOffset2  = ByteStride * 3

	Threshold = 0.40
)

// Upsample converts a 720-sample VBI line to 1440 samples by
// linear interpolation: out[2i]=in[i], out[2i+1]=floor((in[i]+
// in[i+1])/2), with the last sample duplicated.
func Upsample(in []byte) []byte {
	out := make([]byte, len(in)*2)
	for i, v := range in {
		out[2*i] = v
		next := v
		if i+1 < len(in) {
			next = in[i+1]
		}
		out[2*i+1] = byte((int(v) + int(next)) / 2)
	}
	return out
}

// normalize rescales a line's samples to [0.0, 1.0] using its per-line
// min/max; a flat line (max==min) is treated as having range 1.
func normalize(b []byte) []float64 {
	if len(b) == 0 {
		return nil
	}
	min, max := b[0], b[0]
	for _, v := range b {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rangeF := float64(max) - float64(min)
	if rangeF == 0 {
		rangeF = 1
	}
	out := make([]float64, len(b))
	for i, v := range b {
		out[i] = (float64(v) - float64(min)) / rangeF
	}
	return out
}

func threshold(f []float64) []bool {
	out := make([]bool, len(f))
	for i, v := range f {
		out[i] = v >= Threshold
	}
	return out
}

// collectByte samples 8 bits at positions offset, offset+BitStride, ...,
// offset+7*BitStride, LSB first.
func collectByte(bits []bool, offset int) byte {
	var b byte
	for i := 0; i < 8; i++ {
		pos := offset + i*BitStride
		if pos >= len(bits) {
			break
		}
		if bits[pos] {
			b |= 1 << uint(i)
		}
	}
	return b
}

func evenParity(b byte) bool {
	count := 0
	for i := 0; i < 8; i++ {
		if b&(1<<uint(i)) != 0 {
			count++
		}
	}
	return count%2 == 0
}

// enforceParity flips bit 7 of a data byte when it carries even parity, so
// that every data byte decodes with odd parity.
func enforceParity(b byte) byte {
	if evenParity(b) {
		return b ^ 0x80
	}
	return b
}

// findDataOffset scans bit positions 0..MaxOffsetSearch for the clock
// run-in (0x55 0x55) followed by a framing code (0x27) at either
// FramingOffset1 or FramingOffset2 (the former preferred). It returns the
// bit offset immediately past the framing code.
func findDataOffset(bits []bool) (offset int, found bool) {
	limit := MaxOffsetSearch
	for o := 0; o <= limit; o++ {
		if o+FramingOffset2+ByteStride > len(bits) {
			break
		}
		b0 := collectByte(bits, o)
		b1 := collectByte(bits, o+ClockOffset1)
		if b0 != 0x55 || b1 != 0x55 {
			continue
		}
		b2 := collectByte(bits, o+FramingOffset1)
		if b2 == 0x27 {
			return o + FramingOffset1 + ByteStride, true
		}
		b3 := collectByte(bits, o+FramingOffset2)
		if b3 == 0x27 {
			return o + FramingOffset2 + ByteStride, true
		}
	}
	return 0, false
}

// extractDataBytes copies format.T42LineLength data bytes starting at
// start, applying the byte-selection heuristic that compensates for
// subsample drift: when the previous and current byte agree (and the
// lookahead two bytes ahead disagrees, or only by its sign bit), advance by
// the normal byte stride; when the previous and current byte disagree but
// the current and next byte agree, advance by the extended stride.
func extractDataBytes(bits []bool, start int) []byte {
	out := make([]byte, format.T42LineLength)
	pos := start
	var prev byte
	for n := 0; n < format.T42LineLength; n++ {
		b := enforceParity(collectByte(bits, pos))
		out[n] = b

		step := ByteStride
		if n > 0 {
			bNext := collectByte(bits, pos+ByteStride)
			bNext2 := collectByte(bits, pos+2*ByteStride)
			if prev == b && (b != bNext2 || (bNext2|0x80) == b) {
				step = ByteStride
			} else if prev != b && b == bNext {
				step = ExtendedByte
			}
		}
		pos += step
		prev = b
	}
	return out
}

// DecodeLine decodes one VBI waveform line (720 or 1440 samples) to its
// 42-byte T42 payload. ok is false when no valid offset was found, in
// which case the returned line is 42 zero bytes.
func DecodeLine(raw []byte) (line []byte, ok bool) {
	samples := raw
	if len(samples) == format.VBILineLength {
		samples = Upsample(samples)
	}
	bits := threshold(normalize(samples))
	offset, found := findDataOffset(bits)
	if !found {
		return make([]byte, format.T42LineLength), false
	}
	return extractDataBytes(bits, offset), true
}
