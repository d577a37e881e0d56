// Package event holds the per-event record the analysis runs on: the truth
// particle graph plus the reconstructed vertices, tau jets and electrons.
package event

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/phicp/lorentz"
	"github.com/decibelcooper/phicp/track"
)

// PDG particle codes used by the analysis.
const (
	ElectronPDG = 11
	Positron    = -11
	NuE         = 12
	Muon        = 13
	NuMu        = 14
	Tau         = 15
	NuTau       = 16
	Higgs       = 25
	Pi0         = 111
	PiPlus      = 211
	PiMinus     = -211
)

// Particle is a node of the truth decay graph.
type Particle struct {
	ID       uint64
	PDG      int
	P4       lorentz.Vec
	ProdVtx  r3.Vec
	Parents  []uint64
	Children []uint64
}

// VertexType follows the xAOD vertex classification.
type VertexType int

const (
	NoVtx VertexType = iota
	PriVtx
	SecVtx
	PileUp
	ConvVtx
	V0Vtx
	KinkVtx
	NotSpecified VertexType = -99
)

// Vertex is a reconstructed vertex.
type Vertex struct {
	Pos  r3.Vec
	Type VertexType
}

// TauJet is a reconstructed hadronic tau candidate.
type TauJet struct {
	P4          lorentz.Vec
	Charge      float64
	Tracks      []track.Track
	NeutralPFOs []lorentz.Vec
	Vertex      *r3.Vec
}

// Pt returns the transverse momentum.
func (j *TauJet) Pt() float64 { return math.Hypot(j.P4.Px(), j.P4.Py()) }

// Eta returns the pseudorapidity.
func (j *TauJet) Eta() float64 { return eta(j.P4) }

// ChargedSum returns the summed four-momentum of the jet tracks.
func (j *TauJet) ChargedSum() lorentz.Vec {
	var sum lorentz.Vec
	for _, t := range j.Tracks {
		sum = sum.Add(t.P4)
	}
	return sum
}

// NeutralSum returns the summed four-momentum of the neutral PFOs.
func (j *TauJet) NeutralSum() lorentz.Vec {
	return lorentz.Sum(j.NeutralPFOs...)
}

// Electron is a reconstructed electron.
type Electron struct {
	P4     lorentz.Vec
	Charge float64
	Tracks []track.Track
}

// Pt returns the transverse momentum.
func (e *Electron) Pt() float64 { return math.Hypot(e.P4.Px(), e.P4.Py()) }

func eta(p lorentz.Vec) float64 {
	pt := math.Hypot(p.Px(), p.Py())
	if pt == 0 {
		return math.Copysign(math.Inf(1), p.Pz())
	}
	return math.Asinh(p.Pz() / pt)
}

// Event is one collision.
type Event struct {
	Number    uint64
	Particles []*Particle
	BeamSpot  r3.Vec
	Vertices  []Vertex
	TauJets   []TauJet
	Electrons []Electron

	index map[uint64]*Particle
}

// New returns an event with its truth particles indexed by ID.
func New(number uint64, particles []*Particle) *Event {
	ev := &Event{Number: number, Particles: particles}
	ev.index = make(map[uint64]*Particle, len(particles))
	for _, p := range particles {
		ev.index[p.ID] = p
	}
	return ev
}

// Lookup returns the particle with the given ID, or nil.
func (ev *Event) Lookup(id uint64) *Particle {
	if ev.index != nil {
		return ev.index[id]
	}
	for _, p := range ev.Particles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Parent returns the first parent of p, or nil.
func (ev *Event) Parent(p *Particle) *Particle {
	if len(p.Parents) == 0 {
		return nil
	}
	return ev.Lookup(p.Parents[0])
}

// PrimaryVertex returns the last vertex of type PriVtx.
func (ev *Event) PrimaryVertex() (r3.Vec, bool) {
	var (
		pv    r3.Vec
		found bool
	)
	for _, v := range ev.Vertices {
		if v.Type == PriVtx {
			pv, found = v.Pos, true
		}
	}
	return pv, found
}
