package mxf

import (
	"fmt"
	"io"

	"github.com/zsiec/ttxcodec/ttxerr"
)

// MaxBERFollowOnBytes is the largest permitted BER long-form follow-on
// byte count.
const MaxBERFollowOnBytes = 8

// ReadBERLength reads a BER length field from r. It returns the decoded
// length and the exact bytes that encoded it, so callers that need to
// reproduce the original encoding byte-for-byte (restripe, KLV demux) can
// do so.
func ReadBERLength(r io.Reader) (length int64, encoded []byte, err error) {
	first := make([]byte, 1)
	if _, err := io.ReadFull(r, first); err != nil {
		return 0, nil, err
	}
	if first[0]&0x80 == 0 {
		return int64(first[0]), first, nil
	}
	n := int(first[0] & 0x7F)
	if n == 0 || n > MaxBERFollowOnBytes {
		return 0, nil, ttxerr.Newf(ttxerr.KindDecodeStructural, "mxf: invalid BER length follow-on count %d", n)
	}
	rest := make([]byte, n)
	if _, err := io.ReadFull(r, rest); err != nil {
		return 0, nil, err
	}
	var v int64
	for _, b := range rest {
		v = (v << 8) | int64(b)
	}
	encoded = append(append([]byte{}, first...), rest...)
	return v, encoded, nil
}

// KLVHeader is a decoded Key + Length, without its Value.
type KLVHeader struct {
	Key         Key
	Length      int64
	LengthBytes []byte
	ValueOffset int64
}

// Walker performs a single forward pass over an MXF byte stream, yielding
// one KLVHeader (and, on request, its Value) per iteration.
type Walker struct {
	r   io.ReadSeeker
	pos int64
}

// NewWalker constructs a Walker starting at r's current position.
func NewWalker(r io.ReadSeeker) (*Walker, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return &Walker{r: r, pos: pos}, nil
}

// Next reads the next KLV unit's key and length, without consuming the
// value. Call ReadValue or SkipValue before the next call to Next.
func (w *Walker) Next() (KLVHeader, error) {
	keyBuf := make([]byte, 16)
	if _, err := io.ReadFull(w.r, keyBuf); err != nil {
		return KLVHeader{}, err
	}
	length, encoded, err := ReadBERLength(w.r)
	if err != nil {
		return KLVHeader{}, err
	}
	var key Key
	copy(key[:], keyBuf)
	valueOffset := w.pos + 16 + int64(len(encoded))
	w.pos = valueOffset
	return KLVHeader{Key: key, Length: length, LengthBytes: encoded, ValueOffset: valueOffset}, nil
}

// ReadValue reads and returns h's value (Length bytes), advancing the
// walker past it.
func (w *Walker) ReadValue(h KLVHeader) ([]byte, error) {
	buf := make([]byte, h.Length)
	if _, err := io.ReadFull(w.r, buf); err != nil {
		return nil, err
	}
	w.pos += h.Length
	return buf, nil
}

// SkipValue advances past h's value without reading it.
func (w *Walker) SkipValue(h KLVHeader) error {
	if _, err := w.r.Seek(h.Length, io.SeekCurrent); err != nil {
		return err
	}
	w.pos += h.Length
	return nil
}

// Pos returns the walker's current stream position.
func (w *Walker) Pos() int64 {
	return w.pos
}

// ValidateFourCC reports an error if k does not begin with the MXF
// universal-label FourCC.
func ValidateFourCC(k Key) error {
	for i, b := range FourCC {
		if k[i] != b {
			return fmt.Errorf("mxf: key %s missing universal-label FourCC prefix", k.String())
		}
	}
	return nil
}
