package event

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/phicp/lorentz"
)

// GeV converts proio momenta and masses to the MeV used by the analysis.
const GeV = 1000.

// FromProio collects the eic.Particle entries carrying tag into an Event.
func FromProio(number uint64, evt *proio.Event, tag string) *Event {
	var particles []*Particle
	for _, id := range evt.TaggedEntries(tag) {
		part, ok := evt.GetEntry(id).(*eic.Particle)
		if !ok {
			continue
		}
		particles = append(particles, fromEIC(id, part))
	}
	return New(number, particles)
}

func fromEIC(id uint64, part *eic.Particle) *Particle {
	p := part.GetP()
	v := part.GetVertex()
	mom := r3.Vec{
		X: GeV * float64(p.GetX()),
		Y: GeV * float64(p.GetY()),
		Z: GeV * float64(p.GetZ()),
	}
	return &Particle{
		ID:       id,
		PDG:      int(part.GetPdg()),
		P4:       lorentz.FromMass(mom, GeV*float64(part.GetMass())),
		ProdVtx:  r3.Vec{X: float64(v.GetX()), Y: float64(v.GetY()), Z: float64(v.GetZ())},
		Parents:  part.GetParent(),
		Children: part.GetChild(),
	}
}

// ReadProio streams the events of a proio file into out until the file is
// exhausted or ctx is cancelled, numbering them from first. It does not close
// out and returns the number of events sent. Errors met while scanning, such
// as a corrupt bucket, are returned once the scan stops.
func ReadProio(ctx context.Context, filename, tag string, first uint64, out chan<- *Event) (uint64, error) {
	reader, err := proio.Open(filename)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	var n uint64
	for evt := range reader.ScanEvents() {
		select {
		case out <- FromProio(first+n, evt, tag):
		case <-ctx.Done():
			return n, ctx.Err()
		}
		n++
	}
	if err := scanErr(reader.Err); err != nil {
		return n, fmt.Errorf("event: reading %s after %d events: %w", filename, n, err)
	}
	return n, nil
}

// scanErr drains the errors a proio scan left behind without blocking. The
// end of the stream is not an error.
func scanErr(errs <-chan error) error {
	for {
		select {
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
		default:
			return nil
		}
	}
}
