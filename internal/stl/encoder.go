// Package stl implements an EBU-t3264 (STL) subtitle exporter: a 1024-byte
// GSI header followed by 128-byte TTI blocks, with an opt-in merge state
// machine that collapses frame-by-frame teletext updates into subtitles.
package stl

import (
	"io"

	"github.com/zsiec/ttxcodec/timecode"
)

// Encoder accumulates decoded teletext lines for a single STL output
// session. It owns all session state (subtitle counter, merge buffer) so
// multiple sessions can run concurrently without shared globals.
type Encoder struct {
	opts  GSIOptions
	merge bool
	m     merger
	ttis  []tti
	subs  int
}

// NewEncoder returns an Encoder. When merge is true, lines are fed through
// the growth/clear-countdown state machine (§4.7); otherwise every
// non-blank line becomes its own TTI block.
func NewEncoder(opts GSIOptions, merge bool) *Encoder {
	return &Encoder{opts: opts, merge: merge}
}

// WriteLine feeds one decoded teletext row (its rendered text, source row
// number, and timecode) into the exporter.
func (e *Encoder) WriteLine(text string, row int, tc timecode.Timecode) {
	encoded := EncodeText(text)
	blank := isBlankLine(encoded, row)

	if !e.merge {
		if !blank {
			e.emit(encoded, tc, tc.Next(), verticalPositionFor(row))
		}
		return
	}

	var payload []byte
	if !blank {
		payload = encoded
	}
	if ev, ok := e.m.push(payload, tc); ok {
		e.emit(ev.text, ev.in, ev.out, verticalPositionFor(row))
	}
}

func (e *Encoder) emit(text []byte, in, out timecode.Timecode, vpos byte) {
	e.subs++
	e.ttis = append(e.ttis, tti{
		subtitleNumber: e.subs,
		verticalPos:    vpos,
		in:             in,
		out:            out,
		text:           text,
	})
}

// Finalize flushes any pending merged subtitle, writes the GSI header and
// every accumulated TTI block to w, and returns the number of TTI blocks
// written. date is the "yymmdd" value stamped into the GSI CD/RD fields.
func (e *Encoder) Finalize(w io.Writer, date string) (int, error) {
	if e.merge {
		if ev, ok := e.m.finish(); ok {
			e.emit(ev.text, ev.in, ev.out, 20)
		}
	}

	gsi := buildGSI(e.opts, date, len(e.ttis), e.subs)
	if _, err := w.Write(gsi); err != nil {
		return 0, err
	}
	for _, t := range e.ttis {
		if _, err := w.Write(t.bytes()); err != nil {
			return 0, err
		}
	}
	return len(e.ttis), nil
}

func isBlankLine(encoded []byte, row int) bool {
	start := 2
	if row == 0 {
		start = 10
	}
	if start > len(encoded) {
		start = len(encoded)
	}
	return IsBlank(encoded[start:])
}

func verticalPositionFor(row int) byte {
	if row <= 0 || row > 23 {
		return 20
	}
	return byte(row)
}
