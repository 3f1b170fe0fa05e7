package mxf

// Function selects which of the four MXF operating modes a Decoder runs.
type Function int

const (
	FunctionFilter Function = iota
	FunctionExtract
	FunctionDemux
	FunctionRestripe
)

// StartScanLimit bounds the start-timecode discovery scan to the first
// 128 KiB of the file.
const StartScanLimit = 128 * 1024

// Options configures Extract/Demux output naming.
type Options struct {
	Function Function

	// OutDir and BaseName determine output file paths for Extract/Demux.
	OutDir   string
	BaseName string

	// UseNames resolves a demuxed key to its classified type name instead
	// of its raw 32-char hex key id.
	UseNames bool

	// KLVMode, when set, prepends the original key and BER length bytes
	// to each demuxed output (extension .klv instead of .raw).
	KLVMode bool

	// CheckSequential enables strict per-frame timecode continuity
	// validation while filtering.
	CheckSequential bool

	// ProgressEvery reports restripe progress once per N packets; 0
	// disables progress reporting.
	ProgressEvery int
	OnProgress    func(packetsProcessed int)
}
