package mxf

import (
	"io"

	"github.com/zsiec/ttxcodec/timecode"
)

// DiscoverStartTimecode scans the first StartScanLimit bytes of r, walking
// KLV units until a TimecodeComponent is found. It returns the zero
// timecode (25fps, non-drop) if none is found before the scan limit or
// end of stream.
func DiscoverStartTimecode(r io.ReadSeeker) (timecode.Timecode, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return timecode.Timecode{}, err
	}
	w, err := NewWalker(r)
	if err != nil {
		return timecode.Timecode{}, err
	}
	for w.Pos() < StartScanLimit {
		h, err := w.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return timecode.Timecode{}, err
		}
		if ClassifyKey(h.Key) != TimecodeComponent {
			if err := w.SkipValue(h); err != nil {
				return timecode.Timecode{}, err
			}
			continue
		}
		value, err := w.ReadValue(h)
		if err != nil {
			return timecode.Timecode{}, err
		}
		tc, err := DecodeTimecodeComponent(value)
		if err != nil {
			continue
		}
		return tc, nil
	}
	return timecode.Zero(25, false), nil
}
