// Package phicp holds the pieces shared by the phicp tools: histogram
// booking for the φ_CP branches, ROOT persistence, plotting and axis tickers.
package phicp

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/phicp/analysis"
	"github.com/decibelcooper/phicp/observable"
)

// ErrEmpty is returned when normalising a histogram without entries in range.
var ErrEmpty = errors.New("phicp: empty histogram")

// NewAngleH1D returns a histogram over [0, 2π).
func NewAngleH1D(name string, bins int) *hbook.H1D {
	h := hbook.NewH1D(bins, 0, 2*math.Pi)
	h.Annotation()["name"] = name
	h.Annotation()["title"] = name
	return h
}

// Booking holds one angular histogram per branch and the cutflow of the
// events filled into them. It is not safe for concurrent use.
type Booking struct {
	Hists   [analysis.NumBranches]*hbook.H1D
	Cutflow *analysis.Cutflow
}

// NewBooking books every branch with bins bins.
func NewBooking(bins int) *Booking {
	b := &Booking{Cutflow: analysis.NewCutflow()}
	for _, br := range analysis.Branches() {
		b.Hists[br] = NewAngleH1D(br.String(), bins)
	}
	return b
}

// Fill adds the defined values of r.
func (b *Booking) Fill(r analysis.Result) {
	b.Cutflow.Add(r)
	if !r.Accepted() {
		return
	}
	b.FillValues(r.Values)
}

// FillValues adds every value that is not observable.Invalid.
func (b *Booking) FillValues(vs analysis.Values) {
	for br, v := range vs {
		if v == observable.Invalid {
			continue
		}
		b.Hists[br].Fill(v, 1)
	}
}

// Normalize scales h to unit area, i.e. divides every bin by the in-range
// integral times the bin width.
func Normalize(h *hbook.H1D) error {
	integral := h.Integral(h.XMin(), h.XMax())
	if integral == 0 {
		return fmt.Errorf("%w: %s", ErrEmpty, h.Name())
	}
	width := h.Binning.Bins[0].XWidth()
	h.Scale(1 / (integral * width))
	return nil
}
