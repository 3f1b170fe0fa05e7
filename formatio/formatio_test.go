package formatio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/internal/testutil"
)

func TestPipeline_VBIToT42WithFilter(t *testing.T) {
	data, err := testutil.BuildVBIStream(48, 8, "caption")
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "out.t42")
	n, err := OpenReader(bytes.NewReader(data), format.VBI).
		Filter(8, map[int]bool{20: true, 21: true, 22: true}).
		ConvertTo(format.T42).
		SaveTo(out, SaveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("expected at least one matching line")
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(written)%format.T42LineLength != 0 {
		t.Fatalf("output length %d is not a multiple of %d", len(written), format.T42LineLength)
	}
}

func TestPipeline_RejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.xyz")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("expected an error for an unrecognised extension")
	}
}

func TestPipeline_RejectsUnsupportedConversion(t *testing.T) {
	data := testutil.BuildANCStream(2, 1, 1, "hi")
	out := filepath.Join(t.TempDir(), "out.t42")
	_, err := OpenReader(bytes.NewReader(data), format.ANC).
		ConvertTo(format.T42).
		SaveTo(out, SaveOptions{})
	if err == nil {
		t.Fatal("expected ANC -> T42 ConvertTo to be rejected per the supported conversion matrix")
	}
}

func TestPipeline_T42ToSTL(t *testing.T) {
	data := testutil.BuildT42Stream(24, 1, "SUBTITLE TEXT")
	out := filepath.Join(t.TempDir(), "out.stl")
	n, err := OpenReader(bytes.NewReader(data), format.T42).
		ConvertTo(format.STL).
		SaveTo(out, SaveOptions{Merge: true, Date: "240101"})
	if err != nil {
		t.Fatal(err)
	}
	if n < 1 {
		t.Fatal("expected at least one TTI block")
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) < 1024 {
		t.Fatal("expected at least a 1024-byte GSI header")
	}
}

func TestPipeline_ParseLinesAsync(t *testing.T) {
	data := testutil.BuildT42Stream(5, 1, "async")
	p := OpenReader(bytes.NewReader(data), format.T42)
	dec, err := p.ParseLinesAsync(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for {
		_, ok := dec.Next()
		if !ok {
			break
		}
		count++
	}
	if err := dec.Wait(); err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Fatalf("got %d lines, want 5", count)
	}
}
