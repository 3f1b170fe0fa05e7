// Package formatio is the fluent builder façade over the whole module:
// Open/Filter/ConvertTo/SaveTo compose a decode-convert-encode pipeline in
// one expression, per the source's Open→Filter→ConvertTo→SaveTo usage
// idiom.
package formatio

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/registry"
	"github.com/zsiec/ttxcodec/timecode"
	"github.com/zsiec/ttxcodec/ttxerr"
)

// Pipeline accumulates a source, filter options, and an optional target
// format before Parse*/SaveTo build the concrete decode chain.
type Pipeline struct {
	reg        *registry.Registry
	source     io.Reader
	closer     io.Closer
	sourceTag  format.Tag
	opts       format.ParseOptions
	convertTo  format.Tag
	hasConvert bool
}

// Open opens path and detects its format tag from its extension. Returns
// an error immediately if the extension is unrecognised, before any bytes
// are read.
func Open(path string) (*Pipeline, error) {
	tag, err := detectTag(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ttxerr.Wrap(ttxerr.KindIO, -1, "open "+path, err)
	}
	return &Pipeline{reg: registry.Global(), source: f, closer: f, sourceTag: tag}, nil
}

// OpenReader wraps an already-open stream tagged with an explicit format,
// for callers that don't have a path to detect from (e.g. a network
// stream or an in-memory buffer).
func OpenReader(r io.Reader, tag format.Tag) *Pipeline {
	p := &Pipeline{reg: registry.Global(), source: r, sourceTag: tag}
	if c, ok := r.(io.Closer); ok {
		p.closer = c
	}
	return p
}

// OpenStdin wraps os.Stdin tagged with an explicit format, for CLI usage
// where the caller pipes a stream in rather than naming a file.
func OpenStdin(tag format.Tag) *Pipeline {
	return OpenReader(os.Stdin, tag)
}

// detectTag maps a file extension (case-insensitive) to its format.Tag.
// Unrecognised extensions fail before any bytes are read.
func detectTag(path string) (format.Tag, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vbi":
		return format.VBI, nil
	case ".vbid":
		return format.VBIDouble, nil
	case ".t42":
		return format.T42, nil
	case ".bin":
		return format.ANC, nil
	case ".mxf":
		return format.MXF, nil
	case ".ts":
		return format.TS, nil
	case ".rcwt":
		return format.RCWT, nil
	case ".stl":
		return format.STL, nil
	default:
		return format.Unknown, ttxerr.Newf(ttxerr.KindFormatDetection, "unrecognised extension %q", filepath.Ext(path))
	}
}

// WithOptions replaces the pipeline's ParseOptions wholesale.
func (p *Pipeline) WithOptions(opts format.ParseOptions) *Pipeline {
	p.opts = opts
	return p
}

// Filter restricts decoding to the given magazine (0 disables the filter)
// and row set (nil keeps the current/default rows).
func (p *Pipeline) Filter(magazine int, rows map[int]bool) *Pipeline {
	p.opts.HasMagazine = magazine > 0
	p.opts.Magazine = magazine
	if rows != nil {
		p.opts.Rows = rows
	}
	return p
}

// WithLineCount sets the number of lines per frame for formats lacking an
// intrinsic frame boundary (T42, VBI).
func (p *Pipeline) WithLineCount(n int) *Pipeline {
	p.opts.LineCount = n
	return p
}

// WithStartTimecode seeds decoders that lack an intrinsic start timecode.
func (p *Pipeline) WithStartTimecode(tc timecode.Timecode) *Pipeline {
	p.opts.StartTimecode = &tc
	return p
}

// WithPIDs restricts TS decoding to the given elementary PIDs.
func (p *Pipeline) WithPIDs(pids map[uint16]bool) *Pipeline {
	p.opts.PIDs = pids
	return p
}

// ConvertTo sets the target format for SaveTo/encoded output. Validity is
// checked when the pipeline is built (ParseLines/ParsePackets/SaveTo), not
// here, so calls can be chained in any order.
func (p *Pipeline) ConvertTo(tag format.Tag) *Pipeline {
	p.convertTo = tag
	p.hasConvert = true
	return p
}

// outputTag returns the pipeline's effective target format: the explicit
// ConvertTo tag, or the source tag when no conversion was requested.
func (p *Pipeline) outputTag() format.Tag {
	if p.hasConvert {
		return p.convertTo
	}
	return p.sourceTag
}

// convertibleSources is exactly the matrix's "From" column: ANC/MXF/TS
// decode straight to their natural T42-shaped Lines and, without a
// ConvertTo, are written back out as their raw line bytes; asking to
// ConvertTo any target (T42, RCWT and STL included) from one of them is
// unsupported.
var convertibleSources = map[format.Tag]bool{
	format.T42:       true,
	format.VBI:       true,
	format.VBIDouble: true,
}

var convertibleTargets = map[format.Tag]bool{
	format.T42:       true,
	format.VBI:       true,
	format.VBIDouble: true,
	format.RCWT:      true,
	format.STL:       true,
}

// checkConversion validates the (source, target) pair against the
// supported conversion matrix.
func (p *Pipeline) checkConversion() error {
	if !p.hasConvert {
		return nil
	}
	if !convertibleSources[p.sourceTag] || !convertibleTargets[p.convertTo] {
		return ttxerr.Newf(ttxerr.KindUnsupportedConversion, "%s -> %s is not a supported conversion", p.sourceTag, p.convertTo)
	}
	return nil
}

// ParseLines builds a format.LineDecoder over the pipeline's source. A
// packet-yielding source (ANC, MXF, TS) is flattened line-by-line.
func (p *Pipeline) ParseLines() (format.LineDecoder, error) {
	if err := p.checkConversion(); err != nil {
		return nil, err
	}
	opts := p.opts
	opts.OutputFormat = p.outputTag()
	if h, ok := p.reg.LineHandler(p.sourceTag); ok {
		return h(p.source, opts), nil
	}
	if h, ok := p.reg.PacketHandler(p.sourceTag); ok {
		pd, err := h(p.source, opts)
		if err != nil {
			return nil, err
		}
		return &flattenDecoder{pd: pd}, nil
	}
	return nil, ttxerr.Wrap(ttxerr.KindFormatDetection, -1, "no handler for "+p.sourceTag.String(), ttxerr.ErrNoHandler)
}

// ParsePackets builds a format.PacketDecoder over the pipeline's source.
// Only valid for packet-yielding formats (ANC, MXF, TS).
func (p *Pipeline) ParsePackets() (format.PacketDecoder, error) {
	h, ok := p.reg.PacketHandler(p.sourceTag)
	if !ok {
		return nil, ttxerr.Newf(ttxerr.KindFormatDetection, "%s is not a packet-yielding format", p.sourceTag)
	}
	return h(p.source, p.opts)
}

// flattenDecoder adapts a format.PacketDecoder to format.LineDecoder by
// yielding its Lines one at a time, in packet order.
type flattenDecoder struct {
	pd      format.PacketDecoder
	pending []format.Line
}

func (f *flattenDecoder) Next() (format.Line, error) {
	for len(f.pending) == 0 {
		pkt, err := f.pd.Next()
		if err != nil {
			return format.Line{}, err
		}
		f.pending = pkt.Lines
	}
	line := f.pending[0]
	f.pending = f.pending[1:]
	return line, nil
}

func (f *flattenDecoder) Close() error {
	return f.pd.Close()
}
