package record

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/randomizedcoder/periodic/internal/timer"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("record: writer closed")

// Writer appends cycle samples to a trace.
// It is safe for concurrent use.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	encoder *cbor.Encoder
	header  Header
	count   uint64
	closed  bool
}

// NewWriter writes h to w and returns a Writer for the samples that follow.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	if h.Version == 0 {
		h.Version = Version
	}
	enc := encMode.NewEncoder(w)
	if err := enc.Encode(h); err != nil {
		return nil, err
	}
	return &Writer{w: w, encoder: enc, header: h}, nil
}

// Create truncates or creates the file at path and writes h to it.
func Create(path string, h Header) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// Header returns the header written at the start of the trace.
func (w *Writer) Header() Header {
	return w.header
}

// Write appends one sample.
func (w *Writer) Write(s timer.Sample) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if err := w.encoder.Encode(toEntry(s)); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns the number of samples written.
func (w *Writer) Count() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying file when the Writer was built by Create.
// It is safe to call Close multiple times.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
