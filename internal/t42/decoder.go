package t42

import (
	"io"

	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/timecode"
)

// Decoder reads a stream of 42-byte T42 lines and produces format.Line
// values: a 2-byte Hamming 16/8 packet address followed by 40 bytes of
// text payload. It implements format.LineDecoder.
type Decoder struct {
	r       io.Reader
	opts    format.ParseOptions
	lineNum int
	tc      timecode.Timecode
}

// NewDecoder constructs a T42 Decoder. opts.StartTimecode seeds the
// emitted timecode; absent that, decoding starts at 00:00:00:00/25fps.
func NewDecoder(r io.Reader, opts format.ParseOptions) *Decoder {
	tc := timecode.Zero(25, false)
	if opts.StartTimecode != nil {
		tc = *opts.StartTimecode
	}
	return &Decoder{r: r, opts: opts, tc: tc}
}

// Next returns the next Line passing the configured magazine/row filter.
// Filtering happens after metadata extraction, so a rejected line still
// advances the timecode.
func (d *Decoder) Next() (format.Line, error) {
	for {
		buf := make([]byte, format.T42LineLength)
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
	line := format.Line{
		Raw:      append([]byte(nil), buf...),
		Format:   format.T42,
		Timecode: d.tc,
	}
	value, uncorrectable := DecodeHamming168(buf[0], buf[1])
	if !uncorrectable {
		line.Magazine = MagazineFromPacketAddress(value)
		line.HasMagazine = true
		line.Row = RowFromPacketAddress(value)
		line.HasRow = true
	}
	payload := buf[2:]
	if line.HasRow && line.Row == 0 {
		line.Text = DecodeHeaderText(payload)
	} else {
		line.Text = DecodeDataText(payload)
	}
	line.HasText = true
	return line
}

func (d *Decoder) advance() {
	d.lineNum++
	if d.lineNum%d.opts.EffectiveLineCount() == 0 {
		d.tc = d.tc.Next()
	}
}

// Close releases the underlying reader, if closable.
func (d *Decoder) Close() error {
	if c, ok := d.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
