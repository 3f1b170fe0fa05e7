package stl

import (
	"testing"

	"github.com/zsiec/ttxcodec/timecode"
)

func tcAt(frame int) timecode.Timecode {
	return timecode.FromFrameNumber(int64(frame), 25, false)
}

func TestMerger_GrowthExtendsWithoutEmitting(t *testing.T) {
	var m merger
	if _, ok := m.push([]byte("HELLO"), tcAt(0)); ok {
		t.Fatal("first non-blank line should not emit")
	}
	if _, ok := m.push([]byte("HELLO WORLD"), tcAt(12)); ok {
		t.Fatal("growth should not emit")
	}
	ev, ok := m.finish()
	if !ok {
		t.Fatal("expected a pending subtitle at finish")
	}
	if string(ev.text) != "HELLO WORLD" {
		t.Errorf("text = %q, want %q", ev.text, "HELLO WORLD")
	}
	if ev.in.FrameNumber() != 0 {
		t.Errorf("start frame = %d, want 0", ev.in.FrameNumber())
	}
}

func TestMerger_DifferentContentEmitsAndStartsNew(t *testing.T) {
	var m merger
	m.push([]byte("FIRST"), tcAt(0))
	ev, ok := m.push([]byte("SECOND"), tcAt(50))
	if !ok {
		t.Fatal("expected emission on differing content")
	}
	if string(ev.text) != "FIRST" {
		t.Errorf("emitted text = %q, want FIRST", ev.text)
	}
	if ev.out.FrameNumber() != 50 {
		t.Errorf("out frame = %d, want 50", ev.out.FrameNumber())
	}

	final, ok := m.finish()
	if !ok {
		t.Fatal("expected second subtitle pending at finish")
	}
	if string(final.text) != "SECOND" {
		t.Errorf("final text = %q, want SECOND", final.text)
	}
}

func TestMerger_BlankCountdownEmitsAfterThreshold(t *testing.T) {
	var m merger
	m.push([]byte("CAPTION"), tcAt(0))
	var ev event
	var ok bool
	for i := 1; i <= clearCountdownFrames; i++ {
		ev, ok = m.push(nil, tcAt(i))
		if ok {
			break
		}
	}
	if !ok {
		t.Fatal("expected emission once the clear countdown elapses")
	}
	if string(ev.text) != "CAPTION" {
		t.Errorf("text = %q, want CAPTION", ev.text)
	}
}

func TestMerger_BriefBlankDoesNotClear(t *testing.T) {
	var m merger
	m.push([]byte("CAPTION"), tcAt(0))
	if _, ok := m.push(nil, tcAt(1)); ok {
		t.Fatal("a single blank frame should not emit immediately")
	}
	if _, ok := m.push([]byte("CAPTION"), tcAt(2)); ok {
		t.Fatal("resumed content should not emit")
	}
	ev, ok := m.finish()
	if !ok || string(ev.text) != "CAPTION" {
		t.Fatalf("expected CAPTION subtitle to survive the blip, got %+v, ok=%v", ev, ok)
	}
}

func TestIsGrowth_TolerantOfOneRowScrollingUp(t *testing.T) {
	prior := []byte("ROW ONE\nROW TWO")
	next := []byte("ROW TWO\nROW THREE")
	if !isGrowth(prior, next) {
		t.Error("expected scroll-up continuation to be treated as growth")
	}
}
