// Package anc decodes SMPTE-291-like ancillary data packets (as extracted
// from an MXF ancillary data track) into teletext Packets.
package anc

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/internal/t42"
	"github.com/zsiec/ttxcodec/timecode"
)

// Fixed header sizes. A packet header carries the number of lines that
// follow it; each line header carries its magazine/row addressing and the
// byte length of its payload.
const (
	PacketHeaderSize = 4
	LineHeaderSize   = 4
)

// ErrInvalidLineLength is returned when a line header declares a
// non-positive payload length: a corrupt stream.
var ErrInvalidLineLength = errors.New("anc: declared line length must be positive")

// Decoder reads a stream of ANC packets and produces format.Packet values.
// It implements format.PacketDecoder.
type Decoder struct {
	r    io.Reader
	opts format.ParseOptions
	tc   timecode.Timecode
}

// NewDecoder constructs an ANC Decoder seeded at opts.StartTimecode (or
// zero if unset).
func NewDecoder(r io.Reader, opts format.ParseOptions) *Decoder {
	tc := timecode.Zero(25, false)
	if opts.StartTimecode != nil {
		tc = *opts.StartTimecode
	}
	return &Decoder{r: r, opts: opts, tc: tc}
}

// Next returns the next non-empty Packet. A packet becomes empty (and is
// skipped) when every one of its lines is rejected by the magazine/row
// filter.
func (d *Decoder) Next() (format.Packet, error) {
	for {
		pkt, err := d.readPacket()
		if err != nil {
			return format.Packet{}, err
		}
		d.tc = d.tc.Next()
		if len(pkt.Lines) == 0 {
			continue
		}
		return pkt, nil
	}
}

func (d *Decoder) readPacket() (format.Packet, error) {
	header := make([]byte, PacketHeaderSize)
	if _, err := io.ReadFull(d.r, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			return format.Packet{}, io.EOF
		}
		return format.Packet{}, err
	}
	lineCount := binary.BigEndian.Uint32(header)

	pkt := format.Packet{Timecode: d.tc}
	for i := uint32(0); i < lineCount; i++ {
		line, err := d.readLine()
		if err == io.EOF {
			// Truncation mid-line ends the sequence cleanly.
			break
		}
		if err != nil {
			return format.Packet{}, err
		}
		if line == nil {
			continue // filtered out
		}
		pkt.Lines = append(pkt.Lines, *line)
	}
	pkt.LineCount = len(pkt.Lines)
	return pkt, nil
}

// readLine reads one line. It returns (nil, nil) when the line is read
// successfully but rejected by the magazine/row filter.
func (d *Decoder) readLine() (*format.Line, error) {
	header := make([]byte, LineHeaderSize)
	if _, err := io.ReadFull(d.r, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	magazine := int(header[0])
	row := int(header[1])
	length := int(int16(binary.BigEndian.Uint16(header[2:4])))
	if length <= 0 {
		return nil, ErrInvalidLineLength
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(d.r, payload); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}

	if !d.opts.MatchesFilter(true, magazine, true, row) {
		return nil, nil
	}

	line := format.Line{
		Raw:         payload,
		Format:      format.ANC,
		Magazine:    magazine,
		HasMagazine: true,
		Row:         row,
		HasRow:      true,
		Timecode:    d.tc,
	}
	if row == 0 {
		line.Text = t42.DecodeHeaderText(payload)
	} else {
		line.Text = t42.DecodeDataText(payload)
	}
	line.HasText = true
	return &line, nil
}

// Close releases the underlying reader, if closable.
func (d *Decoder) Close() error {
	if c, ok := d.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
