// Package record writes and reads cycle traces.
//
// A trace is a CBOR stream: one Header followed by one item per cycle, in
// the order the timer produced them. Items use integer keys for compactness.
// A trace is a caller-side log of a single run; it does not restore timer
// statistics.
package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randomizedcoder/periodic/internal/timer"
)

// Version is the trace format version written by this package.
const Version = 1

// ErrVersion is returned when a trace was written with an unknown format.
var ErrVersion = errors.New("record: unsupported trace version")

// Header describes the run a trace was taken from.
type Header struct {
	Version  int           `cbor:"1,keyasint"`
	Session  uuid.UUID     `cbor:"2,keyasint"`
	Interval time.Duration `cbor:"3,keyasint"`
	MaxWait  time.Duration `cbor:"4,keyasint"`
	Mode     string        `cbor:"5,keyasint,omitempty"`
	Started  time.Time     `cbor:"6,keyasint"`
	Host     string        `cbor:"7,keyasint,omitempty"`
}

// NewHeader returns a Header for a fresh session started now.
func NewHeader(cfg timer.Config, mode timer.Mode) Header {
	return Header{
		Version:  Version,
		Session:  uuid.New(),
		Interval: cfg.Interval,
		MaxWait:  cfg.MaxWait,
		Mode:     mode.String(),
		Started:  time.Now(),
	}
}

func (h Header) String() string {
	return fmt.Sprintf("session %s: interval %v, max wait %v, mode %s, started %s",
		h.Session, h.Interval, h.MaxWait, h.Mode, h.Started.Format(time.RFC3339))
}

// entry is the wire form of a timer.Sample.
type entry struct {
	Seq    uint64        `cbor:"1,keyasint"`
	DT     time.Duration `cbor:"2,keyasint"`
	TET    time.Duration `cbor:"3,keyasint,omitempty"`
	Result timer.Result  `cbor:"4,keyasint,omitempty"`
}

func toEntry(s timer.Sample) entry {
	return entry{Seq: s.Seq, DT: s.DT, TET: s.TET, Result: s.Result}
}

func (e entry) sample() timer.Sample {
	return timer.Sample{Seq: e.Seq, DT: e.DT, TET: e.TET, Result: e.Result}
}
