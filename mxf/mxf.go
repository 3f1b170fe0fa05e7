// Package mxf is the public façade over the MXF (SMPTE 377M) KLV
// container decoder: teletext filtering, key/type extraction and
// demuxing, and in-place timecode restriping.
package mxf

import (
	"io"

	"github.com/zsiec/ttxcodec/format"
	internal "github.com/zsiec/ttxcodec/internal/mxf"
	"github.com/zsiec/ttxcodec/timecode"
)

// Function selects one of the four MXF operating modes.
type Function = internal.Function

const (
	FunctionFilter    = internal.FunctionFilter
	FunctionExtract   = internal.FunctionExtract
	FunctionDemux     = internal.FunctionDemux
	FunctionRestripe  = internal.FunctionRestripe
)

// Options configures Extract/Demux/Restripe behaviour.
type Options = internal.Options

// KeyType classifies an MXF Universal Label.
type KeyType = internal.KeyType

const (
	Unknown           = internal.Unknown
	TimecodeComponent = internal.TimecodeComponent
	System            = internal.System
	Data              = internal.Data
	Video             = internal.Video
	Audio             = internal.Audio
)

// NewFilterPacketDecoder returns a format.PacketDecoder that locates
// ancillary Data packets in r, decodes their teletext lines, and yields
// Packets stamped with the file's per-frame timecode.
func NewFilterPacketDecoder(r io.ReadSeeker, opts format.ParseOptions, mxfOpts Options) (format.PacketDecoder, error) {
	return internal.NewFilterDecoder(r, opts, mxfOpts)
}

// Extract writes one output file per KeyType encountered in r.
func Extract(r io.ReadSeeker, opts Options) error {
	return internal.Extract(r, opts)
}

// Demux writes one output file per distinct 16-byte key observed in r.
func Demux(r io.ReadSeeker, opts Options) error {
	return internal.Demux(r, opts)
}

// Restripe rewrites every timecode in rw so the timeline begins at
// newStart, in place.
func Restripe(rw internal.ReadWriterAt, newStart timecode.Timecode, opts Options) error {
	return internal.Restripe(rw, newStart, opts)
}

// DiscoverStartTimecode scans the first 128 KiB of r for a
// TimecodeComponent, defaulting to zero if none is found.
func DiscoverStartTimecode(r io.ReadSeeker) (timecode.Timecode, error) {
	return internal.DiscoverStartTimecode(r)
}

// ClassifyKey classifies a 16-byte MXF key by its registered UL prefix.
func ClassifyKey(key internal.Key) KeyType {
	return internal.ClassifyKey(key)
}
