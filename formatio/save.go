package formatio

import (
	"io"
	"os"

	"github.com/zsiec/ttxcodec/convert"
	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/internal/t42"
	"github.com/zsiec/ttxcodec/rcwt"
	"github.com/zsiec/ttxcodec/stl"
	"github.com/zsiec/ttxcodec/ttxerr"
)

// SaveOptions configures the terminal stage of a pipeline.
type SaveOptions struct {
	// Merge enables the STL intelligent-merge state machine. Ignored
	// for every other target format.
	Merge bool
	// GSI supplies the GSI country/publisher fields for an STL target.
	GSI stl.Options
	// Date is the "yymmdd" GSI creation/revision date for an STL target.
	Date string
}

// SaveTo decodes the pipeline's source, converts each line to the
// pipeline's output format, and writes the result to path, overwriting
// any existing file.
func (p *Pipeline) SaveTo(path string, opts SaveOptions) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, ttxerr.Wrap(ttxerr.KindIO, -1, "create "+path, err)
	}
	defer f.Close()
	return p.save(f, opts)
}

// SaveToStdout behaves like SaveTo but writes to os.Stdout.
func (p *Pipeline) SaveToStdout(opts SaveOptions) (int, error) {
	return p.save(os.Stdout, opts)
}

func (p *Pipeline) save(w io.Writer, opts SaveOptions) (int, error) {
	if err := p.checkConversion(); err != nil {
		return 0, err
	}
	dec, err := p.ParseLines()
	if err != nil {
		return 0, err
	}
	defer dec.Close()

	target := p.outputTag()
	switch target {
	case format.RCWT:
		return p.saveRCWT(w, dec)
	case format.STL:
		return p.saveSTL(w, dec, opts)
	default:
		return p.saveLines(w, dec, target)
	}
}

// saveLines writes raw per-line bytes for a T42/VBI/VBI_DOUBLE target.
func (p *Pipeline) saveLines(w io.Writer, dec format.LineDecoder, target format.Tag) (int, error) {
	n := 0
	for {
		line, err := dec.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		out, err := convertLine(line, p.sourceTag, target)
		if err != nil {
			return n, err
		}
		if _, err := w.Write(out); err != nil {
			return n, ttxerr.Wrap(ttxerr.KindIO, -1, "write line", err)
		}
		n++
	}
}

func (p *Pipeline) saveRCWT(w io.Writer, dec format.LineDecoder) (int, error) {
	enc := rcwt.NewEncoder()
	n := 0
	for {
		line, err := dec.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		t42Bytes, err := toT42Bytes(line, p.sourceTag)
		if err != nil {
			return n, err
		}
		if err := enc.WriteLine(w, line.Timecode.FrameNumber(), t42Bytes); err != nil {
			return n, ttxerr.Wrap(ttxerr.KindIO, -1, "write rcwt record", err)
		}
		n++
	}
}

func (p *Pipeline) saveSTL(w io.Writer, dec format.LineDecoder, opts SaveOptions) (int, error) {
	enc := stl.NewEncoder(opts.GSI, opts.Merge)
	for {
		line, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		text, row, err := lineText(line, p.sourceTag)
		if err != nil {
			return 0, err
		}
		enc.WriteLine(text, row, line.Timecode)
	}
	return enc.Finalize(w, opts.Date)
}

// toT42Bytes returns line's payload as a 42-byte T42 line, decoding from
// VBI/VBI_DOUBLE samples when necessary.
func toT42Bytes(line format.Line, sourceTag format.Tag) ([]byte, error) {
	switch line.Format {
	case format.VBI, format.VBIDouble:
		t42Line, ok := convert.VBIToT42(line.Raw)
		if !ok {
			return nil, ttxerr.New(ttxerr.KindDecodeSoft, "could not locate VBI framing for this line")
		}
		return t42Line, nil
	default:
		if len(line.Raw) != format.T42LineLength {
			return nil, ttxerr.Newf(ttxerr.KindDecodeStructural, "expected a 42-byte T42 line, got %d bytes", len(line.Raw))
		}
		return line.Raw, nil
	}
}

// lineText returns the decoded display text and row for line, deriving it
// from the raw T42 payload when the decoder didn't already set it (the VBI
// decoder only decodes magazine/row, not text, on its T42 output path).
func lineText(line format.Line, sourceTag format.Tag) (string, int, error) {
	if line.HasText {
		return line.Text, line.Row, nil
	}
	t42Line, err := toT42Bytes(line, sourceTag)
	if err != nil {
		return "", 0, err
	}
	payload := t42Line[2:]
	if line.HasRow && line.Row == 0 {
		return t42.DecodeHeaderText(payload), line.Row, nil
	}
	return t42.DecodeDataText(payload), line.Row, nil
}

// convertLine renders line as target's raw byte encoding.
func convertLine(line format.Line, sourceTag, target format.Tag) ([]byte, error) {
	if target == sourceTag {
		return line.Raw, nil
	}
	switch target {
	case format.T42:
		return toT42Bytes(line, sourceTag)
	case format.VBI:
		switch sourceTag {
		case format.VBIDouble:
			return convert.HalveVBI(line.Raw), nil
		default:
			t42Line, err := toT42Bytes(line, sourceTag)
			if err != nil {
				return nil, err
			}
			return convert.T42ToVBI(t42Line)
		}
	case format.VBIDouble:
		switch sourceTag {
		case format.VBI:
			return convert.DoubleVBI(line.Raw), nil
		default:
			t42Line, err := toT42Bytes(line, sourceTag)
			if err != nil {
				return nil, err
			}
			return convert.T42ToVBIDouble(t42Line)
		}
	default:
		return nil, ttxerr.Newf(ttxerr.KindUnsupportedConversion, "%s -> %s is not a supported conversion", sourceTag, target)
	}
}
