package mxf

import (
	"io"

	"github.com/zsiec/ttxcodec/timecode"
)

// ReadWriterAt is the capability Restripe needs: sequential KLV walking
// plus random-access writes back to the same file offsets.
type ReadWriterAt interface {
	io.ReadSeeker
	io.WriterAt
}

// Restripe rewrites every TimecodeComponent start-timecode and every
// System packet's embedded per-frame timecode so the file's timeline
// begins at newStart, preserving file length and every BER length. Writes
// land at the exact offsets the values were read from; no bytes are
// inserted or removed.
func Restripe(rw ReadWriterAt, newStart timecode.Timecode, opts Options) error {
	oldStart, err := DiscoverStartTimecode(rw)
	if err != nil {
		return err
	}
	delta := newStart.FrameNumber() - oldStart.FrameNumber()

	if _, err := rw.Seek(0, io.SeekStart); err != nil {
		return err
	}
	w, err := NewWalker(rw)
	if err != nil {
		return err
	}

	timebase, dropFrame := oldStart.Timebase, oldStart.DropFrame
	processed := 0
	for {
		h, err := w.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch ClassifyKey(h.Key) {
		case TimecodeComponent:
			value, err := w.ReadValue(h)
			if err != nil {
				return err
			}
			tc, err := DecodeTimecodeComponent(value)
			if err != nil {
				continue
			}
			newTC := timecode.Add(tc, delta)
			EncodeTimecodeComponentStart(value, newTC)
			if _, err := rw.WriteAt(value[0:4], h.ValueOffset); err != nil {
				return err
			}
		case System:
			value, err := w.ReadValue(h)
			if err != nil {
				return err
			}
			tc, err := DecodeSystemTimecode(value, timebase, dropFrame)
			if err != nil {
				continue
			}
			newTC := timecode.Add(tc, delta)
			EncodeSystemTimecode(value, newTC)
			if _, err := rw.WriteAt(value[SystemTimecodeOffset:SystemTimecodeOffset+SystemTimecodeLength], h.ValueOffset+SystemTimecodeOffset); err != nil {
				return err
			}
		default:
			if err := w.SkipValue(h); err != nil {
				return err
			}
		}
		processed++
		if opts.ProgressEvery > 0 && opts.OnProgress != nil && processed%opts.ProgressEvery == 0 {
			opts.OnProgress(processed)
		}
	}
}
