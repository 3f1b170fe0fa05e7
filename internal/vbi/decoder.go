package vbi

import (
	"io"

	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/internal/t42"
	"github.com/zsiec/ttxcodec/timecode"
)

// Decoder reads a stream of fixed-length VBI waveform lines (720 or 1440
// samples) and emits T42-decoded Lines, or passes the raw waveform through
// unchanged when opts.OutputFormat is VBI or VBIDouble.
type Decoder struct {
	r          io.Reader
	opts       format.ParseOptions
	lineLength int
	lineNum    int
	tc         timecode.Timecode
}

// NewDecoder constructs a VBI Decoder. lineLength must be
// format.VBILineLength or format.VBIDoubleLineLength.
func NewDecoder(r io.Reader, lineLength int, opts format.ParseOptions) *Decoder {
	tc := timecode.Zero(25, false)
	if opts.StartTimecode != nil {
		tc = *opts.StartTimecode
	}
	return &Decoder{r: r, opts: opts, lineLength: lineLength, tc: tc}
}

func (d *Decoder) Next() (format.Line, error) {
	for {
		buf := make([]byte, d.lineLength)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			if err == io.ErrUnexpectedEOF {
				return format.Line{}, io.EOF
			}
			return format.Line{}, err
		}
		line := d.decodeLine(buf)
		d.advance()
		if !d.opts.MatchesFilter(line.HasMagazine, line.Magazine, line.HasRow, line.Row) {
			continue
		}
		return line, nil
	}
}

func (d *Decoder) decodeLine(buf []byte) format.Line {
	if d.opts.OutputFormat == format.VBI || d.opts.OutputFormat == format.VBIDouble {
		tag := format.VBI
		if d.lineLength == format.VBIDoubleLineLength {
			tag = format.VBIDouble
		}
		return format.Line{Raw: append([]byte(nil), buf...), Format: tag, Timecode: d.tc}
	}

	t42Bytes, _ := DecodeLine(buf)
	value, uncorrectable := t42.DecodeHamming168(t42Bytes[0], t42Bytes[1])
	line := format.Line{Raw: t42Bytes, Format: format.T42, Timecode: d.tc}
	if !uncorrectable {
		line.Magazine = t42.MagazineFromPacketAddress(value)
		line.HasMagazine = true
		line.Row = t42.RowFromPacketAddress(value)
		line.HasRow = true
	}
	return line
}

func (d *Decoder) advance() {
	d.lineNum++
	if d.lineNum%d.opts.EffectiveLineCount() == 0 {
		d.tc = d.tc.Next()
	}
}

func (d *Decoder) Close() error {
	if c, ok := d.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
