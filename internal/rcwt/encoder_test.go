package rcwt

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func line42(fill byte) []byte {
	b := make([]byte, 42)
	for i := range b {
		b[i] = fill
	}
	return b
}

func TestEncoder_HeaderWrittenOnce(t *testing.T) {
	e := NewEncoder()
	var buf bytes.Buffer
	for i := 0; i < 3; i++ {
		if err := e.WriteLine(&buf, int64(i), line42(0xAA)); err != nil {
			t.Fatal(err)
		}
	}
	wantLen := HeaderSize + 3*RecordSize
	if buf.Len() != wantLen {
		t.Fatalf("output length = %d, want %d", buf.Len(), wantLen)
	}
	if !bytes.Equal(buf.Bytes()[:HeaderSize], header[:]) {
		t.Error("expected header at start of output")
	}
}

func TestEncoder_FTSAndFieldToggleRoundTrip(t *testing.T) {
	e := NewEncoder()
	var buf bytes.Buffer
	for frame := 0; frame < 50; frame++ {
		for field := 0; field < 2; field++ {
			if err := e.WriteLine(&buf, int64(frame), line42(0)); err != nil {
				t.Fatal(err)
			}
		}
	}
	data := buf.Bytes()[HeaderSize:]
	for i := 0; i < 100; i++ {
		rec := data[i*RecordSize : (i+1)*RecordSize]
		fts := binary.LittleEndian.Uint32(rec[0:4])
		wantFTS := uint32((i / 2) * 40)
		if fts != wantFTS {
			t.Fatalf("record %d: fts = %d, want %d", i, fts, wantFTS)
		}
		wantField := uint8(i % 2)
		if rec[4] != wantField {
			t.Fatalf("record %d: field = %d, want %d", i, rec[4], wantField)
		}
	}
}

func TestEncoder_RejectsWrongLineLength(t *testing.T) {
	e := NewEncoder()
	var buf bytes.Buffer
	if err := e.WriteLine(&buf, 0, make([]byte, 10)); err == nil {
		t.Fatal("expected error for non-42-byte line")
	}
}

func TestEncoder_ResetAllowsNewSession(t *testing.T) {
	e := NewEncoder()
	var buf1 bytes.Buffer
	e.WriteLine(&buf1, 0, line42(1))
	e.Reset()

	var buf2 bytes.Buffer
	e.WriteLine(&buf2, 0, line42(2))
	if buf2.Len() != HeaderSize+RecordSize {
		t.Fatalf("second session length = %d, want header+1 record", buf2.Len())
	}
	if buf2.Bytes()[HeaderSize+4] != 0 {
		t.Error("expected field number to reset to 0 after Reset")
	}
}
