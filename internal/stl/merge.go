package stl

import (
	"strings"

	"github.com/zsiec/ttxcodec/timecode"
)

// clearCountdownFrames is how many consecutive blank lines are tolerated
// before a pending subtitle is flushed as ended.
const clearCountdownFrames = 30

// merger collapses a frame-by-frame stream of teletext text into
// human-readable subtitle spans, per the growth/clear rules.
type merger struct {
	active      bool
	currentText []byte
	startTC     timecode.Timecode
	lastTC      timecode.Timecode
	countdown   int
	counting    bool
}

// event is a merged subtitle span ready to become a TTI block.
type event struct {
	text   []byte
	in, out timecode.Timecode
}

// push feeds one decoded line into the state machine, returning a
// completed event if the new line ended the previous subtitle.
func (m *merger) push(text []byte, tc timecode.Timecode) (event, bool) {
	m.lastTC = tc
	if IsBlank(text) {
		if m.active {
			if !m.counting {
				m.counting = true
				m.countdown = clearCountdownFrames
			}
			m.countdown--
			if m.countdown <= 0 {
				return m.flush(tc)
			}
		}
		return event{}, false
	}
	m.counting = false

	if !m.active {
		m.active = true
		m.currentText = append([]byte(nil), text...)
		m.startTC = tc
		return event{}, false
	}

	if isGrowth(m.currentText, text) {
		m.currentText = append([]byte(nil), text...)
		return event{}, false
	}

	ev, _ := m.flush(tc)
	m.active = true
	m.currentText = append([]byte(nil), text...)
	m.startTC = tc
	return ev, true
}

// finish flushes any pending subtitle using the last observed timecode.
func (m *merger) finish() (event, bool) {
	if !m.active {
		return event{}, false
	}
	return m.flush(m.lastTC)
}

func (m *merger) flush(tc timecode.Timecode) (event, bool) {
	ev := event{text: m.currentText, in: m.startTC, out: tc}
	m.active = false
	m.currentText = nil
	m.counting = false
	return ev, true
}

// isGrowth reports whether next is prior with more characters appended,
// tolerant of one leading row having scrolled up (in which case prior's
// first line may no longer be a prefix, but its remaining lines are).
func isGrowth(prior, next []byte) bool {
	p := strings.TrimRight(string(prior), " ")
	n := strings.TrimRight(string(next), " ")
	if len(n) < len(p) {
		return false
	}
	if strings.HasPrefix(n, p) {
		return true
	}

	pLines := strings.SplitN(p, "\n", 2)
	if len(pLines) == 2 {
		return strings.HasPrefix(n, pLines[1])
	}
	return false
}
