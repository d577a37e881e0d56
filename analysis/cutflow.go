package analysis

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/decibelcooper/phicp/observable"
)

// Cutflow tallies why events and observables were dropped.
type Cutflow struct {
	Processed int
	Accepted  int
	Channels  map[string]int
	Excluded  map[string]int
	Filled    [NumBranches]int
	Skipped   map[string]int
}

// NewCutflow returns an empty Cutflow.
func NewCutflow() *Cutflow {
	return &Cutflow{
		Channels: make(map[string]int),
		Excluded: make(map[string]int),
		Skipped:  make(map[string]int),
	}
}

// Add records one Result.
func (c *Cutflow) Add(r Result) {
	c.Processed++
	if !r.Accepted() {
		c.Excluded[reason(r.Err)]++
		return
	}
	c.Accepted++
	c.Channels[r.Channel]++
	for b, v := range r.Values {
		if v != observable.Invalid {
			c.Filled[b]++
		}
	}
	for _, err := range r.Skipped {
		c.Skipped[err.Error()]++
	}
}

// reason strips the wrapped context from known exclusion errors so that
// counts aggregate.
func reason(err error) string {
	if errors.Is(err, ErrUnknownChannel) {
		return ErrUnknownChannel.Error()
	}
	return err.Error()
}

// WriteTo prints the cutflow as an aligned table.
func (c *Cutflow) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "processed\t%d\n", c.Processed)
	fmt.Fprintf(tw, "accepted\t%d\n", c.Accepted)
	for _, k := range sortedKeys(c.Excluded) {
		fmt.Fprintf(tw, "  excluded: %s\t%d\n", k, c.Excluded[k])
	}
	for _, k := range sortedKeys(c.Channels) {
		fmt.Fprintf(tw, "  channel %s\t%d\n", k, c.Channels[k])
	}
	for _, b := range Branches() {
		if c.Filled[b] > 0 {
			fmt.Fprintf(tw, "  filled %v\t%d\n", b, c.Filled[b])
		}
	}
	for _, k := range sortedKeys(c.Skipped) {
		fmt.Fprintf(tw, "  skipped %s\t%d\n", k, c.Skipped[k])
	}

	if err := tw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, cw.err
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	if err != nil && cw.err == nil {
		cw.err = err
	}
	return n, err
}
