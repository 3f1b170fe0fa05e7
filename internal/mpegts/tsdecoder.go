package mpegts

import (
	"context"
	"io"

	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/internal/t42"
	"github.com/zsiec/ttxcodec/timecode"
)

// TSDecoder extracts DVB teletext Lines from an MPEG-2 Transport Stream
// and groups them into per-PES Packets. It implements format.PacketDecoder.
type TSDecoder struct {
	demux        *Demuxer
	opts         format.ParseOptions
	teletextPIDs map[uint16]bool
	explicitPIDs bool
	videoPIDs    map[uint16]bool
	frameRate    int
	rateInferred bool
	fallbackTC   timecode.Timecode
	queue        []format.Packet
	seekable     io.ReadSeeker
	pktSize      int
}

// NewTSDecoder constructs a TSDecoder over r. If r is seekable, its
// 188/192-byte packet size is auto-detected; otherwise 188 is assumed.
func NewTSDecoder(r io.Reader, opts format.ParseOptions) *TSDecoder {
	pktSize := packetSize188
	var seekable io.ReadSeeker
	if rs, ok := r.(io.ReadSeeker); ok {
		seekable = rs
		if sz, err := DetectPacketSize(rs); err == nil {
			pktSize = sz
		}
	}

	teletextPIDs := map[uint16]bool{}
	explicit := len(opts.PIDs) > 0
	if explicit {
		teletextPIDs = opts.PIDs
	}

	tc := timecode.Zero(25, false)
	if opts.StartTimecode != nil {
		tc = *opts.StartTimecode
	}

	demux := NewDemuxer(context.Background(), r, DemuxerOptPacketSize(pktSize))
	return &TSDecoder{
		demux:        demux,
		opts:         opts,
		teletextPIDs: teletextPIDs,
		explicitPIDs: explicit,
		videoPIDs:    map[uint16]bool{},
		frameRate:    25,
		fallbackTC:   tc,
		seekable:     seekable,
		pktSize:      pktSize,
	}
}

func (d *TSDecoder) Next() (format.Packet, error) {
	for {
		if len(d.queue) > 0 {
			pkt := d.queue[0]
			d.queue = d.queue[1:]
			return pkt, nil
		}
		data, err := d.demux.NextData()
		if err != nil {
			return format.Packet{}, err
		}
		d.handle(data)
	}
}

func (d *TSDecoder) handle(data *DemuxerData) {
	switch {
	case data.PMT != nil:
		for _, es := range data.PMT.ElementaryStreams {
			if es.StreamType == StreamTypeTeletext && !d.explicitPIDs {
				d.teletextPIDs[es.ElementaryPID] = true
			}
			if IsVideoStreamType(es.StreamType) {
				if !d.videoPIDs[es.ElementaryPID] {
					d.videoPIDs[es.ElementaryPID] = true
					d.maybeInferFrameRate()
				}
			}
		}
	case data.PES != nil && data.FirstPacket != nil:
		d.handlePES(data)
	}
}

func (d *TSDecoder) maybeInferFrameRate() {
	if d.rateInferred || d.seekable == nil {
		return
	}
	d.rateInferred = true
	d.frameRate = scanFrameRate(d.seekable, d.pktSize, d.videoPIDs)
}

func (d *TSDecoder) handlePES(data *DemuxerData) {
	pid := data.FirstPacket.Header.PID
	if !d.teletextPIDs[pid] {
		return
	}
	lines := ExtractTeletextLines(data.PES.Data)
	if len(lines) == 0 {
		return
	}

	var tc timecode.Timecode
	if oh := data.PES.Header.OptionalHeader; oh != nil && oh.PTS != nil {
		frame := PTSToFrameNumber(oh.PTS.Base, d.frameRate)
		tc = timecode.FromFrameNumber(frame, d.frameRate, false)
	} else {
		tc = d.fallbackTC
		d.fallbackTC = d.fallbackTC.Next()
	}

	pkt := format.Packet{Timecode: tc}
	for _, raw := range lines {
		line := d.decodeLine(raw, tc)
		if !d.opts.MatchesFilter(line.HasMagazine, line.Magazine, line.HasRow, line.Row) {
			continue
		}
		pkt.Lines = append(pkt.Lines, line)
	}
	pkt.LineCount = len(pkt.Lines)
	if len(pkt.Lines) == 0 {
		return
	}
	d.queue = append(d.queue, pkt)
}

func (d *TSDecoder) decodeLine(raw []byte, tc timecode.Timecode) format.Line {
	line := format.Line{Raw: raw, Format: format.T42, Timecode: tc}
	if len(raw) < 2 {
		return line
	}
	value, uncorrectable := t42.DecodeHamming168(raw[0], raw[1])
	if uncorrectable {
		return line
	}
	line.Magazine = t42.MagazineFromPacketAddress(value)
	line.HasMagazine = true
	line.Row = t42.RowFromPacketAddress(value)
	line.HasRow = true
	payload := raw[2:]
	if line.Row == 0 {
		line.Text = t42.DecodeHeaderText(payload)
	} else {
		line.Text = t42.DecodeDataText(payload)
	}
	line.HasText = true
	return line
}

// scanFrameRate pauses the main read position, scans up to
// maxScanPackets TS packets on videoPIDs collecting PTS samples, and
// restores the original position before returning the inferred rate.
func scanFrameRate(r io.ReadSeeker, pktSize int, videoPIDs map[uint16]bool) int {
	save, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 25
	}
	defer r.Seek(save, io.SeekStart)

	var ptsValues []int64
	buf := make([]byte, pktSize)
	for i := 0; i < maxScanPackets && len(ptsValues) < minPTSSamples*4; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			break
		}
		pkt, err := parsePacket(buf)
		if err != nil || !videoPIDs[pkt.Header.PID] {
			continue
		}
		if !pkt.Header.PayloadUnitStartIndicator || !isPESPayload(pkt.Payload) {
			continue
		}
		pes, err := parsePES(pkt.Payload)
		if err != nil || pes.Header.OptionalHeader == nil || pes.Header.OptionalHeader.PTS == nil {
			continue
		}
		ptsValues = append(ptsValues, pes.Header.OptionalHeader.PTS.Base)
	}
	return InferFrameRate(ptsValues)
}

func (d *TSDecoder) Close() error {
	if c, ok := d.seekable.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
