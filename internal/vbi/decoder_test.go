package vbi

import (
	"bytes"
	"io"
	"testing"

	"github.com/zsiec/ttxcodec/format"
)

func TestDecoderProducesT42Lines(t *testing.T) {
	data := bytes.Repeat([]byte{'Z'}, format.T42LineLength)
	waveform := encodeWaveform(data)
	d := NewDecoder(bytes.NewReader(waveform), format.VBIDoubleLineLength, format.ParseOptions{})
	line, err := d.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Format != format.T42 {
		t.Errorf("got format %v, want T42", line.Format)
	}
	if _, err := d.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestDecoderPassesThroughRawVBI(t *testing.T) {
	data := bytes.Repeat([]byte{'Z'}, format.T42LineLength)
	waveform := encodeWaveform(data)
	opts := format.ParseOptions{OutputFormat: format.VBIDouble}
	d := NewDecoder(bytes.NewReader(waveform), format.VBIDoubleLineLength, opts)
	line, err := d.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Format != format.VBIDouble {
		t.Errorf("got format %v, want VBIDouble", line.Format)
	}
	if !bytes.Equal(line.Raw, waveform) {
		t.Error("raw passthrough should equal the input waveform")
	}
}
