// Package timecode implements SMPTE HH:MM:SS:FF timecode arithmetic,
// including drop-frame compensation for 29.97/59.94 fps signals.
package timecode

import "fmt"

// Timecode is a SMPTE HH:MM:SS:FF timecode at a fixed timebase (frames per
// second). DropFrame enables the 29.97/59.94 fps label-skipping convention.
type Timecode struct {
	Hours     int
	Minutes   int
	Seconds   int
	Frames    int
	Timebase  int
	DropFrame bool
}

// New constructs a Timecode, wrapping fields that exceed their natural range
// is the caller's responsibility; New does not validate.
func New(h, m, s, f, timebase int, dropFrame bool) Timecode {
	return Timecode{Hours: h, Minutes: m, Seconds: s, Frames: f, Timebase: timebase, DropFrame: dropFrame}
}

// Zero returns the 00:00:00:00 timecode at the given timebase.
func Zero(timebase int, dropFrame bool) Timecode {
	return Timecode{Timebase: timebase, DropFrame: dropFrame}
}

// dropFramesPerMinute returns the number of frame labels skipped at the
// start of each droppable minute: 2 at 30 fps, 4 at 60 fps.
func dropFramesPerMinute(timebase int) int {
	if timebase <= 0 {
		return 0
	}
	return timebase / 15
}

// FrameNumber returns the bijective frame count for this timecode within a
// single 24-hour day, compensating for drop-frame label skips.
func (tc Timecode) FrameNumber() int64 {
	totalMinutes := int64(tc.Hours*60 + tc.Minutes)
	raw := int64(tc.Hours*3600+tc.Minutes*60+tc.Seconds)*int64(tc.Timebase) + int64(tc.Frames)
	if tc.DropFrame {
		drop := int64(dropFramesPerMinute(tc.Timebase))
		raw -= drop * (totalMinutes - totalMinutes/10)
	}
	return raw
}

// FromFrameNumber constructs the Timecode corresponding to a frame count
// produced by FrameNumber, at the given timebase and drop-frame setting.
func FromFrameNumber(frameNumber int64, timebase int, dropFrame bool) Timecode {
	n := frameNumber
	if dropFrame {
		drop := int64(dropFramesPerMinute(timebase))
		framesPerMin := int64(timebase)*60 - drop
		framesPer10Min := framesPerMin*10 + drop

		d := n / framesPer10Min
		m := n % framesPer10Min
		if m > drop {
			n += drop*9*d + drop*((m-drop)/framesPerMin)
		} else {
			n += drop * 9 * d
		}
	}

	fr := int64(timebase)
	frames := int(n % fr)
	seconds := int((n / fr) % 60)
	minutes := int((n / (fr * 60)) % 60)
	hours := int((n / (fr * 3600)) % 24)

	return Timecode{Hours: hours, Minutes: minutes, Seconds: seconds, Frames: frames, Timebase: timebase, DropFrame: dropFrame}
}

// Next returns the timecode one frame later, wrapping 24:00:00:00 back to
// 00:00:00:00 and applying the drop-frame label skip at droppable minute
// boundaries.
func (tc Timecode) Next() Timecode {
	next := tc
	next.Frames++
	if next.Frames < next.Timebase {
		return next
	}
	next.Frames = 0
	next.Seconds++
	if next.Seconds < 60 {
		return next
	}
	next.Seconds = 0
	next.Minutes++
	if next.Minutes >= 60 {
		next.Minutes = 0
		next.Hours++
		if next.Hours >= 24 {
			next.Hours = 0
		}
	}
	if next.DropFrame && next.Minutes%10 != 0 {
		next.Frames = dropFramesPerMinute(next.Timebase)
	}
	return next
}

// Add returns the timecode n frames later than tc (n may be negative),
// wrapping within the 24-hour day.
func Add(tc Timecode, n int64) Timecode {
	framesPerDay := New(23, 59, 59, tc.Timebase-1, tc.Timebase, tc.DropFrame).FrameNumber() + 1
	fn := tc.FrameNumber() + n
	fn %= framesPerDay
	if fn < 0 {
		fn += framesPerDay
	}
	return FromFrameNumber(fn, tc.Timebase, tc.DropFrame)
}

// String renders the timecode as HH:MM:SS:FF (drop-frame uses ';' before
// the frame field, the broadcast convention).
func (tc Timecode) String() string {
	sep := ":"
	if tc.DropFrame {
		sep = ";"
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", tc.Hours, tc.Minutes, tc.Seconds, sep, tc.Frames)
}

// Equal reports whether two timecodes denote the same instant and timebase.
func (tc Timecode) Equal(other Timecode) bool {
	return tc.Hours == other.Hours && tc.Minutes == other.Minutes &&
		tc.Seconds == other.Seconds && tc.Frames == other.Frames &&
		tc.Timebase == other.Timebase && tc.DropFrame == other.DropFrame
}
