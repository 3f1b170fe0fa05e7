// Package anc is the public façade over the SMPTE-291-like ancillary data
// packet decoder.
package anc

import (
	"io"

	"github.com/zsiec/ttxcodec/format"
	internal "github.com/zsiec/ttxcodec/internal/anc"
)

// NewPacketDecoder returns a format.PacketDecoder over r, reading ANC
// packets per the configured ParseOptions.
func NewPacketDecoder(r io.Reader, opts format.ParseOptions) format.PacketDecoder {
	return internal.NewDecoder(r, opts)
}
