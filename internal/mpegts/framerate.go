package mpegts

import "sort"

// PTSClockHz is the 90 kHz PES timestamp clock.
const PTSClockHz = 90000

const (
	minPTSSamples  = 5
	maxScanPackets = 5000
	maxDeltaTicks  = 10000
)

// InferFrameRate picks the standard frame rate nearest 90000/minDelta
// among a set of observed PTS values (in 90 kHz ticks). It returns the
// default of 25 if fewer than minPTSSamples PTS values are given, or if
// none of their deltas is usable.
func InferFrameRate(ptsValues []int64) int {
	if len(ptsValues) < minPTSSamples {
		return 25
	}
	sorted := append([]int64(nil), ptsValues...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	minDelta := int64(-1)
	for i := 1; i < len(sorted); i++ {
		d := sorted[i] - sorted[i-1]
		if d <= 0 || d > maxDeltaTicks {
			continue
		}
		if minDelta < 0 || d < minDelta {
			minDelta = d
		}
	}
	if minDelta <= 0 {
		return 25
	}

	fps := float64(PTSClockHz) / float64(minDelta)
	return roundToStandardFPS(fps)
}

// roundToStandardFPS snaps fps to the nearest of the standard broadcast
// frame rates using fixed band boundaries.
func roundToStandardFPS(fps float64) int {
	switch {
	case fps >= 23.0 && fps < 24.5:
		return 24
	case fps >= 24.5 && fps < 27.5:
		return 25
	case fps >= 27.5 && fps < 32.5:
		return 30
	case fps >= 45.0 && fps < 49.0:
		return 48
	case fps >= 49.0 && fps < 55.0:
		return 50
	case fps >= 55.0 && fps < 65.0:
		return 60
	default:
		return 25
	}
}

// PTSToFrameNumber converts a PTS (90 kHz ticks) to an integer frame
// number at the given frame rate, avoiding float rounding error.
func PTSToFrameNumber(pts int64, frameRate int) int64 {
	return pts * int64(frameRate) / PTSClockHz
}
