// Package tsdec is the public façade over the MPEG Transport Stream
// teletext decoder: PAT/PMT-driven PID discovery, PES reassembly, and
// PTS-based (or fallback counter) timecode assignment.
package tsdec

import (
	"io"

	"github.com/zsiec/ttxcodec/format"
	internal "github.com/zsiec/ttxcodec/internal/mpegts"
)

// NewPacketDecoder returns a format.PacketDecoder over r. When r also
// implements io.ReadSeeker, its transport packet size (188 or 192 bytes)
// and video frame rate are auto-detected by scanning ahead; otherwise
// 188-byte packets and a 25fps fallback timecode are assumed.
func NewPacketDecoder(r io.Reader, opts format.ParseOptions) format.PacketDecoder {
	return internal.NewTSDecoder(r, opts)
}

// DetectPacketSize reports whether r's transport stream uses 188-byte or
// 192-byte (M2TS) packets, resetting r to its original position.
func DetectPacketSize(r io.ReadSeeker) (int, error) {
	return internal.DetectPacketSize(r)
}
