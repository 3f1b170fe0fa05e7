package anc

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/zsiec/ttxcodec/format"
)

func appendLine(buf *bytes.Buffer, magazine, row byte, payload []byte) {
	buf.WriteByte(magazine)
	buf.WriteByte(row)
	lenBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBuf, uint16(len(payload)))
	buf.Write(lenBuf)
	buf.Write(payload)
}

func appendPacket(buf *bytes.Buffer, lines [][3]any) {
	header := make([]byte, PacketHeaderSize)
	binary.BigEndian.PutUint32(header, uint32(len(lines)))
	buf.Write(header)
	for _, l := range lines {
		appendLine(buf, l[0].(byte), l[1].(byte), l[2].([]byte))
	}
}

func TestDecoderReadsLinesAndAdvancesTimecode(t *testing.T) {
	var buf bytes.Buffer
	appendPacket(&buf, [][3]any{{byte(1), byte(1), []byte("hello")}})
	appendPacket(&buf, [][3]any{{byte(1), byte(1), []byte("world")}})

	d := NewDecoder(&buf, format.ParseOptions{})
	first, err := d.Next()
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(first.Lines))
	}
	second, err := d.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !second.Timecode.Equal(first.Timecode.Next()) {
		t.Errorf("expected timecode to advance by one frame per packet")
	}
	if _, err := d.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestDecoderSuppressesEmptyPackets(t *testing.T) {
	var buf bytes.Buffer
	appendPacket(&buf, [][3]any{{byte(1), byte(1), []byte("skip")}})
	appendPacket(&buf, [][3]any{{byte(2), byte(1), []byte("keep")}})

	d := NewDecoder(&buf, format.ParseOptions{Magazine: 2, HasMagazine: true})
	pkt, err := d.Next()
	if err != nil {
		t.Fatal(err)
	}
	if len(pkt.Lines) != 1 || pkt.Lines[0].Magazine != 2 {
		t.Fatalf("expected only the magazine-2 line to survive, got %+v", pkt.Lines)
	}
}

func TestDecoderRejectsInvalidLineLength(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, PacketHeaderSize)
	binary.BigEndian.PutUint32(header, 1)
	buf.Write(header)
	buf.WriteByte(1)
	buf.WriteByte(1)
	buf.Write([]byte{0x00, 0x00}) // length 0

	d := NewDecoder(&buf, format.ParseOptions{})
	if _, err := d.Next(); err != ErrInvalidLineLength {
		t.Fatalf("got %v, want ErrInvalidLineLength", err)
	}
}

func TestDecoderTruncatedLineEndsCleanly(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, PacketHeaderSize)
	binary.BigEndian.PutUint32(header, 2)
	buf.Write(header)
	appendLine(&buf, 1, 1, []byte("ok"))
	buf.WriteByte(1) // truncated second line header

	d := NewDecoder(&buf, format.ParseOptions{})
	pkt, err := d.Next()
	if err != nil {
		t.Fatal(err)
	}
	if len(pkt.Lines) != 1 {
		t.Fatalf("expected the one complete line, got %d", len(pkt.Lines))
	}
}
