// Package t42 is the public façade over the T42 teletext line decoder.
package t42

import (
	"io"

	"github.com/zsiec/ttxcodec/format"
	internal "github.com/zsiec/ttxcodec/internal/t42"
)

// NewLineDecoder returns a format.LineDecoder over r, reading 42-byte T42
// lines.
func NewLineDecoder(r io.Reader, opts format.ParseOptions) format.LineDecoder {
	return internal.NewDecoder(r, opts)
}

// DecodeHamming84 decodes a single Hamming 8/4 protected byte, returning
// 0xF for an uncorrectable (double-bit) error.
func DecodeHamming84(b byte) byte {
	return internal.DecodeHamming84(b)
}

// DecodeHamming168 decodes a teletext packet address field (two Hamming
// 8/4 bytes) into magazine/row bits.
func DecodeHamming168(b0, b1 byte) (value byte, uncorrectable bool) {
	return internal.DecodeHamming168(b0, b1)
}
