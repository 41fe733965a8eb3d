package record

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/randomizedcoder/periodic/internal/stats"
	"github.com/randomizedcoder/periodic/internal/timer"
)

// Reader streams the samples of a trace.
type Reader struct {
	closer  io.Closer
	decoder *cbor.Decoder
	header  Header
}

// NewReader reads the trace header from r.
func NewReader(r io.Reader) (*Reader, error) {
	dec := decMode.NewDecoder(r)
	var h Header
	if err := dec.Decode(&h); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("record: empty trace: %w", err)
		}
		return nil, fmt.Errorf("record: read header: %w", err)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	return &Reader{decoder: dec, header: h}, nil
}

// Open opens the trace file at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Header returns the trace header.
func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next sample.
// Returns io.EOF when no more samples are available.
func (r *Reader) Next() (timer.Sample, error) {
	var e entry
	if err := r.decoder.Decode(&e); err != nil {
		if err == io.EOF {
			return timer.Sample{}, io.EOF
		}
		return timer.Sample{}, err
	}
	return e.sample(), nil
}

// Close closes the underlying file when the Reader was built by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Replay feeds every remaining sample into acc in trace order, the way the
// timer did during the run, and returns the number of samples read.
func Replay(r *Reader, acc *stats.Accumulator) (int, error) {
	n := 0
	for {
		s, err := r.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		acc.Observe(s.DT, s.TET, s.Result == timer.Ok)
		n++
	}
}
