// Package registry holds the process-wide FormatTag to handler map used by
// the formatio façade to locate the right decoder for a format tag. Two
// handler shapes share the registry: line-yielding (VBI, VBI_DOUBLE, T42)
// and packet-yielding (ANC, MXF, TS). Registration happens once, lazily, on
// first access; lookups afterward take only a read lock.
package registry

import (
	"io"
	"sync"

	"github.com/zsiec/ttxcodec/anc"
	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/mxf"
	"github.com/zsiec/ttxcodec/t42"
	"github.com/zsiec/ttxcodec/tsdec"
	"github.com/zsiec/ttxcodec/ttxerr"
	"github.com/zsiec/ttxcodec/vbi"
)

// LineHandler constructs a format.LineDecoder over r for the tag it was
// registered under.
type LineHandler func(r io.Reader, opts format.ParseOptions) format.LineDecoder

// PacketHandler constructs a format.PacketDecoder over r for the tag it
// was registered under. It may fail if r does not satisfy the handler's
// requirements (MXF requires io.ReadSeeker).
type PacketHandler func(r io.Reader, opts format.ParseOptions) (format.PacketDecoder, error)

// Registry maps format.Tag to the handler that can decode it.
type Registry struct {
	mu      sync.RWMutex
	lines   map[format.Tag]LineHandler
	packets map[format.Tag]PacketHandler
}

var (
	once   sync.Once
	global *Registry
)

// Global returns the process-wide Registry, building it on first call.
// Subsequent calls return the same instance without re-registering.
func Global() *Registry {
	once.Do(func() {
		global = New()
		global.registerDefaults()
	})
	return global
}

// New returns an empty Registry. Most callers want Global; New exists for
// tests that need isolation from process-wide registration state.
func New() *Registry {
	return &Registry{
		lines:   make(map[format.Tag]LineHandler),
		packets: make(map[format.Tag]PacketHandler),
	}
}

func (r *Registry) registerDefaults() {
	r.RegisterLineHandler(format.T42, func(rd io.Reader, opts format.ParseOptions) format.LineDecoder {
		return t42.NewLineDecoder(rd, opts)
	})
	r.RegisterLineHandler(format.VBI, func(rd io.Reader, opts format.ParseOptions) format.LineDecoder {
		return vbi.NewLineDecoder(rd, format.VBILineLength, opts)
	})
	r.RegisterLineHandler(format.VBIDouble, func(rd io.Reader, opts format.ParseOptions) format.LineDecoder {
		return vbi.NewLineDecoder(rd, format.VBIDoubleLineLength, opts)
	})
	r.RegisterPacketHandler(format.ANC, func(rd io.Reader, opts format.ParseOptions) (format.PacketDecoder, error) {
		return anc.NewPacketDecoder(rd, opts), nil
	})
	r.RegisterPacketHandler(format.TS, func(rd io.Reader, opts format.ParseOptions) (format.PacketDecoder, error) {
		return tsdec.NewPacketDecoder(rd, opts), nil
	})
	r.RegisterPacketHandler(format.MXF, func(rd io.Reader, opts format.ParseOptions) (format.PacketDecoder, error) {
		rs, ok := rd.(io.ReadSeeker)
		if !ok {
			return nil, ttxerr.New(ttxerr.KindIO, "mxf decoding requires a seekable source")
		}
		return mxf.NewFilterPacketDecoder(rs, opts, mxf.Options{})
	})
}

// RegisterLineHandler installs h as the line-yielding handler for tag,
// replacing any prior registration.
func (r *Registry) RegisterLineHandler(tag format.Tag, h LineHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[tag] = h
}

// RegisterPacketHandler installs h as the packet-yielding handler for tag,
// replacing any prior registration.
func (r *Registry) RegisterPacketHandler(tag format.Tag, h PacketHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packets[tag] = h
}

// LineHandler returns the registered line handler for tag, if any.
func (r *Registry) LineHandler(tag format.Tag) (LineHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.lines[tag]
	return h, ok
}

// PacketHandler returns the registered packet handler for tag, if any.
func (r *Registry) PacketHandler(tag format.Tag) (PacketHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.packets[tag]
	return h, ok
}

// IsLineFormat reports whether tag is registered as line-yielding.
func (r *Registry) IsLineFormat(tag format.Tag) bool {
	_, ok := r.LineHandler(tag)
	return ok
}

// IsPacketFormat reports whether tag is registered as packet-yielding.
func (r *Registry) IsPacketFormat(tag format.Tag) bool {
	_, ok := r.PacketHandler(tag)
	return ok
}
