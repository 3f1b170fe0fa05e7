package mxf

import (
	"bytes"
	"io"

	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/internal/anc"
	"github.com/zsiec/ttxcodec/timecode"
	"github.com/zsiec/ttxcodec/ttxerr"
)

// FilterDecoder walks an MXF file, decodes each Data essence element as an
// ANC byte stream (§ ancillary decoder), and yields the resulting Packets
// stamped with the file's per-frame System timecode. It implements
// format.PacketDecoder.
type FilterDecoder struct {
	r               io.ReadSeeker
	opts            format.ParseOptions
	mxfOpts         Options
	walker          *Walker
	currentTC       timecode.Timecode
	timebase        int
	dropFrame       bool
	haveStartTC     bool
	havePrevSysTC   bool
	prevSysTC       timecode.Timecode
	queue           []format.Packet
}

// NewFilterDecoder constructs a FilterDecoder over r, positioned at the
// start of the file.
func NewFilterDecoder(r io.ReadSeeker, opts format.ParseOptions, mxfOpts Options) (*FilterDecoder, error) {
	startTC, err := DiscoverStartTimecode(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	w, err := NewWalker(r)
	if err != nil {
		return nil, err
	}
	return &FilterDecoder{
		r:         r,
		opts:      opts,
		mxfOpts:   mxfOpts,
		walker:    w,
		currentTC: startTC,
		timebase:  startTC.Timebase,
		dropFrame: startTC.DropFrame,
	}, nil
}

func (d *FilterDecoder) Next() (format.Packet, error) {
	for {
		if len(d.queue) > 0 {
			pkt := d.queue[0]
			d.queue = d.queue[1:]
			return pkt, nil
		}
		if err := d.advance(); err != nil {
			return format.Packet{}, err
		}
	}
}

// advance reads one KLV unit, dispatching it by classified type; Data
// units populate d.queue with one or more Packets.
func (d *FilterDecoder) advance() error {
	h, err := d.walker.Next()
	if err != nil {
		return err
	}
	switch ClassifyKey(h.Key) {
	case TimecodeComponent:
		value, err := d.walker.ReadValue(h)
		if err != nil {
			return err
		}
		tc, err := DecodeTimecodeComponent(value)
		if err == nil && !d.haveStartTC {
			d.currentTC, d.timebase, d.dropFrame = tc, tc.Timebase, tc.DropFrame
			d.haveStartTC = true
		}
	case System:
		value, err := d.walker.ReadValue(h)
		if err != nil {
			return err
		}
		tc, err := DecodeSystemTimecode(value, d.timebase, d.dropFrame)
		if err == nil {
			if d.mxfOpts.CheckSequential && d.havePrevSysTC {
				if !tc.Equal(d.prevSysTC.Next()) {
					return ttxerr.New(ttxerr.KindSequentialViolation, "mxf: System timecode discontinuity: "+tc.String()+" does not follow "+d.prevSysTC.String())
				}
			}
			d.currentTC = tc
			d.prevSysTC = tc
			d.havePrevSysTC = true
		}
	case Data:
		value, err := d.walker.ReadValue(h)
		if err != nil {
			return err
		}
		pkts, err := d.decodeAncStream(value)
		if err != nil {
			return err
		}
		d.queue = append(d.queue, pkts...)
	default:
		if err := d.walker.SkipValue(h); err != nil {
			return err
		}
	}
	return nil
}

func (d *FilterDecoder) decodeAncStream(value []byte) ([]format.Packet, error) {
	sub := anc.NewDecoder(bytes.NewReader(value), d.opts)
	var out []format.Packet
	for {
		pkt, err := sub.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		pkt.Timecode = d.currentTC
		for i := range pkt.Lines {
			pkt.Lines[i].Timecode = d.currentTC
		}
		out = append(out, pkt)
	}
	return out, nil
}

func (d *FilterDecoder) Close() error {
	if c, ok := d.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
