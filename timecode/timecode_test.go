package timecode

import "testing"

func TestFrameNumberRoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		timebase  int
		dropFrame bool
	}{
		{"25fps", 25, false},
		{"30fps-ndf", 30, false},
		{"30fps-df", 30, true},
		{"60fps-df", 60, true},
		{"50fps", 50, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for h := 0; h < 24; h += 3 {
				for m := 0; m < 60; m += 7 {
					for s := 0; s < 60; s += 11 {
						for f := 0; f < c.timebase; f += 5 {
							if c.dropFrame && s == 0 && m%10 != 0 && f < c.timebase/15 {
								continue // label skipped by drop-frame counting; not a valid timecode
							}
							tc := New(h, m, s, f, c.timebase, c.dropFrame)
							got := FromFrameNumber(tc.FrameNumber(), c.timebase, c.dropFrame)
							if !got.Equal(tc) {
								t.Fatalf("round trip mismatch for %v: got %v", tc, got)
							}
						}
					}
				}
			}
		})
	}
}

func TestDropFrame30MinuteBoundaryValues(t *testing.T) {
	// Published NDF values: frame number at MM:00:00:00 for 30fps drop-frame.
	cases := []struct {
		minute int
		want   int64
	}{
		{1, 1798},
		{2, 3596},
		{9, 16182},
		{10, 17982},
		{20, 35964},
	}
	for _, c := range cases {
		tc := New(0, c.minute, 0, 0, 30, true)
		if got := tc.FrameNumber(); got != c.want {
			t.Errorf("minute %d: got %d, want %d", c.minute, got, c.want)
		}
	}
}

func TestNextWrapsMidnight(t *testing.T) {
	tc := New(23, 59, 59, 24, 25, false)
	next := tc.Next()
	want := Zero(25, false)
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestNextDropFrameSkipsLabels(t *testing.T) {
	// 00:00:59:29 -> 00:01:00:02 (labels 00 and 01 skipped for minute 1).
	tc := New(0, 0, 59, 29, 30, true)
	next := tc.Next()
	want := New(0, 1, 0, 2, 30, true)
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestNextDropFrameDecadeMinuteKeepsLabels(t *testing.T) {
	// Minute 10 is a decade minute: no frames are skipped.
	tc := New(0, 9, 59, 29, 30, true)
	next := tc.Next()
	want := New(0, 10, 0, 0, 30, true)
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestNextConsistentWithFrameNumber(t *testing.T) {
	tc := New(0, 0, 0, 0, 30, true)
	for i := 0; i < 20000; i++ {
		fromFrame := FromFrameNumber(int64(i), 30, true)
		if !fromFrame.Equal(tc) {
			t.Fatalf("frame %d: Next()-walk %v != FromFrameNumber %v", i, tc, fromFrame)
		}
		tc = tc.Next()
	}
}

func TestAddWraps(t *testing.T) {
	tc := New(23, 59, 59, 24, 25, false)
	got := Add(tc, 1)
	want := Zero(25, false)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStringDropFrameSeparator(t *testing.T) {
	tc := New(1, 2, 3, 4, 30, true)
	if got, want := tc.String(), "01:02:03;04"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	tc.DropFrame = false
	if got, want := tc.String(), "01:02:03:04"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
