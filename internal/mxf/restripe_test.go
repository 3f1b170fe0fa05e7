package mxf

import (
	"bytes"
	"io"
	"testing"

	"github.com/zsiec/ttxcodec/timecode"
)

// memFile is a minimal in-memory ReadWriterAt for exercising Restripe
// without touching the filesystem.
type memFile struct {
	data []byte
	pos  int64
}

func (m *memFile) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.data)) + offset
	}
	return m.pos, nil
}

func (m *memFile) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.data)) {
		t := make([]byte, end)
		copy(t, m.data)
		m.data = t
	}
	return copy(m.data[off:end], p), nil
}

func TestRestripeShiftsEveryTimecode(t *testing.T) {
	var buf bytes.Buffer
	writeKLV(&buf, timecodeComponentKey(), timecodeComponentValue(0, 25, false))
	writeKLV(&buf, systemKey(), systemValue(0))
	writeKLV(&buf, systemKey(), systemValue(1))
	writeKLV(&buf, systemKey(), systemValue(2))

	mem := &memFile{data: append([]byte(nil), buf.Bytes()...)}
	originalLen := len(mem.data)

	newStart := timecode.New(1, 0, 0, 0, 25, false)
	if err := Restripe(mem, newStart, Options{}); err != nil {
		t.Fatal(err)
	}
	if len(mem.data) != originalLen {
		t.Fatalf("file length changed: got %d, want %d", len(mem.data), originalLen)
	}

	w, err := NewWalker(bytes.NewReader(mem.data))
	if err != nil {
		t.Fatal(err)
	}
	h, err := w.Next()
	if err != nil {
		t.Fatal(err)
	}
	value, err := w.ReadValue(h)
	if err != nil {
		t.Fatal(err)
	}
	tc, err := DecodeTimecodeComponent(value)
	if err != nil {
		t.Fatal(err)
	}
	if !tc.Equal(newStart) {
		t.Errorf("got restriped start %v, want %v", tc, newStart)
	}

	for i := 0; i < 3; i++ {
		h, err := w.Next()
		if err != nil {
			t.Fatal(err)
		}
		value, err := w.ReadValue(h)
		if err != nil {
			t.Fatal(err)
		}
		tc, err := DecodeSystemTimecode(value, 25, false)
		if err != nil {
			t.Fatal(err)
		}
		want := timecode.Add(newStart, int64(i))
		if !tc.Equal(want) {
			t.Errorf("system packet %d: got %v, want %v", i, tc, want)
		}
	}
}
