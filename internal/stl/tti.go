package stl

import (
	"github.com/zsiec/ttxcodec/timecode"
)

// TTISize is the fixed byte length of one Text and Timing Information block.
const TTISize = 128

const (
	ttiTextFieldLen  = 112
	ttiTerminator    = 0x8F
	ttiJustifyLeft   = 0x01
	ttiCommentNone   = 0x00
	ttiCumulativeNot = 0x00
)

// tti is one subtitle event: its timecode range, display row, and text.
type tti struct {
	subtitleNumber int
	verticalPos    byte
	in, out        timecode.Timecode
	text           []byte
}

// bytes renders the 128-byte TTI block, little-endian subtitle number, and
// text padded with a 0x8F terminator then spaces to fill the 112-byte field.
func (t tti) bytes() []byte {
	b := make([]byte, TTISize)
	b[0] = 0 // subtitle group number
	b[1] = byte(t.subtitleNumber)
	b[2] = byte(t.subtitleNumber >> 8)
	b[3] = 0xFE // extension block number: none follows
	b[4] = ttiCumulativeNot
	putTimecode(b[5:9], t.in)
	putTimecode(b[9:13], t.out)
	b[13] = t.verticalPos
	b[14] = ttiJustifyLeft
	b[15] = ttiCommentNone

	field := b[16:128]
	n := copy(field, t.text)
	if n < ttiTextFieldLen {
		field[n] = ttiTerminator
		for i := n + 1; i < ttiTextFieldLen; i++ {
			field[i] = ' '
		}
	}
	return b
}

func putTimecode(b []byte, tc timecode.Timecode) {
	b[0] = byte(tc.Hours)
	b[1] = byte(tc.Minutes)
	b[2] = byte(tc.Seconds)
	b[3] = byte(tc.Frames)
}
