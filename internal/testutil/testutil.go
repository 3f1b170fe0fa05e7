// Package testutil provides synthetic-stream builders shared by this
// module's test files and by test/gen, in the style of the teacher's
// test/tools/gen-streams and test/tools/tsutil helpers.
package testutil

import (
	"encoding/binary"

	"github.com/zsiec/ttxcodec/convert"
	"github.com/zsiec/ttxcodec/format"
)

// EncodeHamming84 builds a valid Hamming 8/4 codeword for a 4-bit value:
// parity bits at positions 1, 2, 4 protecting data bits 3, 5, 6, 7, plus
// an overall parity bit.
func EncodeHamming84(nibble byte) byte {
	d1 := int(nibble & 1)
	d2 := int((nibble >> 1) & 1)
	d3 := int((nibble >> 2) & 1)
	d4 := int((nibble >> 3) & 1)
	p1 := d1 ^ d2 ^ d4
	p2 := d1 ^ d3 ^ d4
	p3 := d2 ^ d3 ^ d4
	bits := [7]int{p1, p2, d1, p3, d2, d3, d4}
	overall := 0
	for _, b := range bits {
		overall ^= b
	}
	var out byte
	for i, b := range bits {
		out |= byte(b) << uint(i)
	}
	out |= byte(overall) << 7
	return out
}

// RowHeader builds the 2-byte Hamming-16/8 packet-address prefix for a
// row on a magazine.
func RowHeader(magazine, row int) [2]byte {
	value := byte(magazine&0x07) | byte(row<<3)
	if magazine == 8 {
		value = byte(row << 3)
	}
	return [2]byte{EncodeHamming84(value & 0x0F), EncodeHamming84(value >> 4)}
}

// PadText right-pads (or truncates) s to exactly n bytes with spaces.
func PadText(s string, n int) string {
	b := []byte(s)
	if len(b) >= n {
		return string(b[:n])
	}
	out := make([]byte, n)
	copy(out, b)
	for i := len(b); i < n; i++ {
		out[i] = ' '
	}
	return string(out)
}

// BuildT42Stream builds lineCount 42-byte T42 lines cycling through rows
// 0-23 on the given magazine, each carrying text padded/truncated to 40
// characters.
func BuildT42Stream(lineCount, magazine int, text string) []byte {
	out := make([]byte, 0, lineCount*format.T42LineLength)
	for i := 0; i < lineCount; i++ {
		row := i % 24
		hdr := RowHeader(magazine, row)
		line := make([]byte, format.T42LineLength)
		line[0], line[1] = hdr[0], hdr[1]
		copy(line[2:], PadText(text, 40))
		out = append(out, line...)
	}
	return out
}

// BuildVBIStream builds lineCount VBI waveform lines by T42-encoding then
// expanding each one through the public convert façade.
func BuildVBIStream(lineCount, magazine int, text string) ([]byte, error) {
	t42Stream := BuildT42Stream(lineCount, magazine, text)
	out := make([]byte, 0, lineCount*format.VBILineLength)
	for i := 0; i < lineCount; i++ {
		line := t42Stream[i*format.T42LineLength : (i+1)*format.T42LineLength]
		vbiLine, err := convert.T42ToVBI(line)
		if err != nil {
			return nil, err
		}
		out = append(out, vbiLine...)
	}
	return out, nil
}

// BuildANCStream builds lineCount ANC packets, each holding one line on
// the given magazine/row, per internal/anc's
// {header u32 count}{magazine,row,len,payload} packet framing.
func BuildANCStream(lineCount, magazine, row int, text string) []byte {
	var out []byte
	payload := []byte(PadText(text, 40))
	for i := 0; i < lineCount; i++ {
		header := make([]byte, 4)
		binary.BigEndian.PutUint32(header, 1)
		out = append(out, header...)
		out = append(out, byte(magazine), byte(row))
		lenBuf := make([]byte, 2)
		binary.BigEndian.PutUint16(lenBuf, uint16(len(payload)))
		out = append(out, lenBuf...)
		out = append(out, payload...)
	}
	return out
}
