package formatio

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/zsiec/ttxcodec/format"
)

// AsyncLineDecoder adapts a format.LineDecoder to a channel-driven
// interface for callers integrating with a cooperative I/O scheduler. It
// runs the underlying decoder on a single background goroutine, so output
// order is identical to the synchronous decoder: no internal parallelism,
// only a different consumption style.
type AsyncLineDecoder struct {
	lines <-chan format.Line
	g     *errgroup.Group
}

// ParseLinesAsync builds the pipeline's line decoder and starts it reading
// on a background goroutine managed by an errgroup, so a cancelled ctx (or
// a decode error) unwinds the goroutine and is observed through Wait.
func (p *Pipeline) ParseLinesAsync(ctx context.Context) (*AsyncLineDecoder, error) {
	dec, err := p.ParseLines()
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan format.Line)

	g.Go(func() error {
		defer close(ch)
		defer dec.Close()
		for {
			line, err := dec.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			select {
			case ch <- line:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	return &AsyncLineDecoder{lines: ch, g: g}, nil
}

// Next returns the next decoded line. ok is false once the source is
// exhausted or the pipeline was cancelled; call Wait afterward to observe
// any error.
func (a *AsyncLineDecoder) Next() (format.Line, bool) {
	line, ok := <-a.lines
	return line, ok
}

// Wait blocks until the background goroutine exits and returns its error,
// if any (nil on a clean end-of-stream or explicit cancellation).
func (a *AsyncLineDecoder) Wait() error {
	err := a.g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
