// Package report formats timer output: one CSV row per cycle while the loop
// runs and a summary when it stops.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/randomizedcoder/periodic/internal/stats"
	"github.com/randomizedcoder/periodic/internal/timer"
)

// Columns is the CSV header.
var Columns = []string{"n", "dt", "min", "max", "mean", "sd", "tet"}

// CSVWriter writes one row per cycle.
type CSVWriter struct {
	w      *csv.Writer
	header bool
	row    []string
}

// NewCSVWriter returns a CSVWriter on w. The header is written with the
// first row.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), row: make([]string, len(Columns))}
}

// Write appends the row for s. dt is expressed in the snapshot unit, or in
// seconds when the snapshot is empty.
func (c *CSVWriter) Write(s timer.Sample, snap stats.Snapshot) error {
	if !c.header {
		if err := c.w.Write(Columns); err != nil {
			return err
		}
		c.header = true
	}

	unit := snap.Unit
	if unit <= 0 {
		unit = 1e9
	}
	c.row[0] = strconv.Itoa(snap.N)
	c.row[1] = formatFloat(float64(s.DT) / float64(unit))
	c.row[2] = formatFloat(snap.Min)
	c.row[3] = formatFloat(snap.Max)
	c.row[4] = formatFloat(snap.Mean)
	c.row[5] = formatFloat(snap.SD)
	c.row[6] = formatFloat(snap.TET)
	return c.w.Write(c.row)
}

// Flush writes buffered rows to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
