package phicp

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/phicp/analysis"
	"github.com/decibelcooper/phicp/observable"
)

// TreeName is the tree holding one entry per accepted event.
const TreeName = "tau_analysis"

// EventBranch is the tree branch holding the event number.
const EventBranch = "event"

// TreeWriter writes analysis results to a ROOT file.
type TreeWriter struct {
	f    *riofs.File
	w    rtree.Writer
	evt  uint64
	vals analysis.Values
}

// CreateTree creates filename with an empty TreeName tree.
func CreateTree(filename string) (*TreeWriter, error) {
	f, err := groot.Create(filename)
	if err != nil {
		return nil, err
	}

	tw := &TreeWriter{f: f, vals: analysis.NewValues()}
	wvars := []rtree.WriteVar{{Name: EventBranch, Value: &tw.evt}}
	for _, br := range analysis.Branches() {
		wvars = append(wvars, rtree.WriteVar{Name: br.String(), Value: &tw.vals[br]})
	}
	tw.w, err = rtree.NewWriter(f, TreeName, wvars, rtree.WithTitle("H to tau tau phi_CP observables"))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("phicp: creating tree in %s: %w", filename, err)
	}
	return tw, nil
}

// Write appends r to the tree. Excluded events are not written.
func (tw *TreeWriter) Write(r analysis.Result) error {
	if !r.Accepted() {
		return nil
	}
	tw.evt = r.Event
	tw.vals = r.Values
	_, err := tw.w.Write()
	return err
}

// Close flushes the tree, stores hists next to it and closes the file.
func (tw *TreeWriter) Close(hists ...*hbook.H1D) error {
	err := tw.w.Close()
	for _, h := range hists {
		if err != nil {
			break
		}
		err = tw.f.Put(h.Name(), rhist.NewH1DFrom(h))
	}
	if cerr := tw.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadTree calls fn for every entry of the tree in filename. Branches missing
// from the file read as observable.Invalid.
func ReadTree(filename string, fn func(event uint64, vs analysis.Values) error) error {
	f, err := groot.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	obj, err := f.Get(TreeName)
	if err != nil {
		return err
	}
	t, ok := obj.(rtree.Tree)
	if !ok {
		return fmt.Errorf("phicp: %s in %s is a %T, not a tree", TreeName, filename, obj)
	}

	var (
		evt  uint64
		vals = analysis.NewValues()
	)
	rvars := []rtree.ReadVar{{Name: EventBranch, Value: &evt}}
	for _, br := range analysis.Branches() {
		if t.Branch(br.String()) == nil {
			continue
		}
		rvars = append(rvars, rtree.ReadVar{Name: br.String(), Value: &vals[br]})
	}

	r, err := rtree.NewReader(t, rvars)
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Read(func(rtree.RCtx) error {
		return fn(evt, vals)
	})
}

// ReadBooking fills a new Booking with bins bins from the tree in filename.
func ReadBooking(filename string, bins int) (*Booking, error) {
	b := NewBooking(bins)
	err := ReadTree(filename, func(_ uint64, vs analysis.Values) error {
		b.FillValues(vs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("phicp: reading %s: %w", filename, err)
	}
	return b, nil
}

// Counts are the number of tree entries and of defined values per branch.
type Counts struct {
	Entries int
	Filled  [analysis.NumBranches]int
}

// Fraction returns the fraction of entries with br defined and its binomial
// uncertainty.
func (c *Counts) Fraction(br analysis.Branch) (frac, sigma float64) {
	if c.Entries == 0 {
		return 0, 0
	}
	n := float64(c.Entries)
	frac = float64(c.Filled[br]) / n
	return frac, math.Sqrt(frac * (1 - frac) / n)
}

// CountTree counts the defined values per branch of the tree in filename.
func CountTree(filename string) (*Counts, error) {
	var c Counts
	err := ReadTree(filename, func(_ uint64, vs analysis.Values) error {
		c.Entries++
		for br, v := range vs {
			if v != observable.Invalid {
				c.Filled[br]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("phicp: reading %s: %w", filename, err)
	}
	return &c, nil
}
