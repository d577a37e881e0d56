// Package eventtest builds kinematically consistent H → τ⁺τ⁻ truth events for
// tests.
package eventtest

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/phicp/event"
	"github.com/decibelcooper/phicp/lorentz"
)

// Masses in MeV.
const (
	MHiggs = 125000.
	MTau   = 1776.86
	MPi    = 139.57
	MPi0   = 134.9768
	MRho   = 775.26
	MElec  = 0.511
)

// Builder accumulates a truth particle graph.
type Builder struct {
	next  uint64
	parts []*event.Particle
}

// Add appends a particle. A nil parent makes it a root.
func (b *Builder) Add(pdg int, p4 lorentz.Vec, vtx r3.Vec, parent *event.Particle) *event.Particle {
	b.next++
	p := &event.Particle{ID: b.next, PDG: pdg, P4: p4, ProdVtx: vtx}
	if parent != nil {
		p.Parents = []uint64{parent.ID}
		parent.Children = append(parent.Children, p.ID)
	}
	b.parts = append(b.parts, p)
	return p
}

// Event returns the indexed event.
func (b *Builder) Event(number uint64) *event.Event {
	return event.New(number, b.parts)
}

// Higgs adds a Higgs boson with three-momentum p produced at the origin.
func (b *Builder) Higgs(p r3.Vec) *event.Particle {
	return b.Add(event.Higgs, lorentz.FromMass(p, MHiggs), r3.Vec{}, nil)
}

// TauPair decays h into a back-to-back τ⁺τ⁻ pair, the τ⁺ along dir in the
// Higgs rest frame.
func (b *Builder) TauPair(h *event.Particle, dir r3.Vec) (pos, neg *event.Particle) {
	p4Pos, p4Neg := TwoBody(h.P4, MTau, MTau, dir)
	pos = b.Add(-event.Tau, p4Pos, h.ProdVtx, h)
	neg = b.Add(event.Tau, p4Neg, h.ProdVtx, h)
	return pos, neg
}

// Copy adds a τ → τ copy of tau with identical kinematics.
func (b *Builder) Copy(tau *event.Particle) *event.Particle {
	return b.Add(tau.PDG, tau.P4, tau.ProdVtx, tau)
}

// decayVertex places the decay of p a distance flight along its momentum.
func decayVertex(p *event.Particle, flight float64) r3.Vec {
	return r3.Add(p.ProdVtx, r3.Scale(flight/r3.Norm(p.P4.Vect()), p.P4.Vect()))
}

func sign(tau *event.Particle) int {
	if tau.PDG > 0 {
		return -1
	}
	return +1
}

// PionDecay adds τ → πν with the pion along dir in the tau rest frame.
func (b *Builder) PionDecay(tau *event.Particle, dir r3.Vec, flight float64) (pi, nu *event.Particle) {
	vtx := decayVertex(tau, flight)
	p4Pi, p4Nu := TwoBody(tau.P4, MPi, 0, dir)
	q := sign(tau)
	pi = b.Add(q*event.PiPlus, p4Pi, vtx, tau)
	nu = b.Add(-q*event.NuTau, p4Nu, vtx, tau)
	return pi, nu
}

// RhoDecay adds τ → π π⁰... ν with nNeutral neutral pions. The hadronic system
// travels along dir in the tau rest frame and the neutral system along dirRho
// in the hadronic rest frame.
func (b *Builder) RhoDecay(tau *event.Particle, dir, dirRho r3.Vec, nNeutral int, flight float64) (pi *event.Particle, neutrals []*event.Particle) {
	vtx := decayVertex(tau, flight)
	q := sign(tau)

	mNeutral := MPi0
	if nNeutral > 1 {
		mNeutral = float64(nNeutral)*MPi0 + 50
	}
	mHad := math.Max(MRho, MPi+mNeutral+50)
	p4Had, p4Nu := TwoBody(tau.P4, mHad, 0, dir)
	p4Pi, p4Neutral := TwoBody(p4Had, MPi, mNeutral, r3.Scale(-1, dirRho))

	pi = b.Add(q*event.PiPlus, p4Pi, vtx, tau)
	b.Add(-q*event.NuTau, p4Nu, vtx, tau)

	if nNeutral == 1 {
		return pi, []*event.Particle{b.Add(event.Pi0, p4Neutral, vtx, tau)}
	}
	rest := p4Neutral
	axis := perpendicularTo(dirRho)
	for i := nNeutral; i > 1; i-- {
		mRest := float64(i-1) * MPi0
		if i-1 > 1 {
			mRest += 25
		}
		var one lorentz.Vec
		one, rest = TwoBody(rest, MPi0, mRest, axis)
		neutrals = append(neutrals, b.Add(event.Pi0, one, vtx, tau))
		axis = r3.Cross(axis, dirRho)
	}
	neutrals = append(neutrals, b.Add(event.Pi0, rest, vtx, tau))
	return pi, neutrals
}

// perpendicularTo returns a direction orthogonal to d, built from the unit axis
// least parallel to it.
func perpendicularTo(d r3.Vec) r3.Vec {
	e := r3.Vec{X: 1}
	if math.Abs(d.Y) < math.Abs(d.X) {
		e = r3.Vec{Y: 1}
	}
	return r3.Cross(d, e)
}

// LeptonDecay adds τ → ℓνν with an electron along dir in the tau rest frame.
func (b *Builder) LeptonDecay(tau *event.Particle, dir, dirNu r3.Vec, flight float64) *event.Particle {
	vtx := decayVertex(tau, flight)
	q := sign(tau)

	const mNuNu = 500.
	p4Lep, p4NuNu := TwoBody(tau.P4, MElec, mNuNu, dir)
	p4Nu1, p4Nu2 := TwoBody(p4NuNu, 0, 0, dirNu)

	lep := b.Add(-q*event.ElectronPDG, p4Lep, vtx, tau)
	b.Add(q*event.NuE, p4Nu1, vtx, tau)
	b.Add(-q*event.NuTau, p4Nu2, vtx, tau)
	return lep
}

// TwoBody decays parent into masses m1 and m2, the first along dir in the
// parent rest frame, and returns both daughters in the lab frame.
func TwoBody(parent lorentz.Vec, m1, m2 float64, dir r3.Vec) (d1, d2 lorentz.Vec) {
	if r3.Norm(dir) == 0 {
		panic("eventtest: two-body decay along a null direction")
	}
	m2Parent := parent.M2()
	m := math.Sqrt(m2Parent)
	pStar := math.Sqrt((m2Parent-(m1+m2)*(m1+m2))*(m2Parent-(m1-m2)*(m1-m2))) / (2 * m)

	u := r3.Scale(pStar/r3.Norm(dir), dir)
	beta, err := parent.BoostVector()
	if err != nil {
		panic(err)
	}
	d1, err = lorentz.FromMass(u, m1).Boost(beta)
	if err != nil {
		panic(err)
	}
	d2, err = lorentz.FromMass(r3.Scale(-1, u), m2).Boost(beta)
	if err != nil {
		panic(err)
	}
	return d1, d2
}
