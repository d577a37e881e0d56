package decay

import (
	"errors"

	"github.com/decibelcooper/phicp/event"
	"github.com/decibelcooper/phicp/lorentz"
)

var (
	// ErrNoHiggs is returned when no tau with a Higgs parent is found.
	ErrNoHiggs = errors.New("decay: Higgs boson not found")
	// ErrNoTauPair is returned unless exactly one τ⁺ and one τ⁻ come from the Higgs.
	ErrNoTauPair = errors.New("decay: could not find tau+ tau- pair")
)

// Products are the direct decay products of one tau.
type Products struct {
	Tau         *event.Particle
	Charged     *event.Particle // last charged pion seen
	Neutrals    []*event.Particle
	Lepton      *event.Particle
	TauNeutrino *event.Particle
	Counts      Counts
}

// Mode classifies the products.
func (ps *Products) Mode() Mode { return Classify(ps.Counts) }

// NeutralSum returns the summed four-momentum of the neutral pions.
func (ps *Products) NeutralSum() lorentz.Vec {
	var sum lorentz.Vec
	for _, n := range ps.Neutrals {
		sum = sum.Add(n.P4)
	}
	return sum
}

// Visible returns the summed four-momentum of the visible decay products: the
// charged lepton or pion plus any neutral pions.
func (ps *Products) Visible() lorentz.Vec {
	sum := ps.NeutralSum()
	if ps.Lepton != nil {
		sum = sum.Add(ps.Lepton.P4)
	}
	if ps.Charged != nil {
		sum = sum.Add(ps.Charged.P4)
	}
	return sum
}

// HiggsTauTau is an identified H → τ⁺τ⁻ decay.
type HiggsTauTau struct {
	Higgs    *event.Particle
	Pos, Neg Products
}

// Modes returns the τ⁺ and τ⁻ decay modes.
func (d *HiggsTauTau) Modes() (pos, neg Mode) {
	return d.Pos.Mode(), d.Neg.Mode()
}

// Find locates the taus produced by the Higgs and collects the direct decay
// products of each. Tau copies (τ → τ) are followed back to the tau attached
// to the Higgs.
func Find(ev *event.Event) (*HiggsTauTau, error) {
	var (
		d     HiggsTauTau
		nTaus int
	)
	for _, p := range ev.Particles {
		parent := ev.Parent(p)
		if parent == nil || parent.PDG != event.Higgs {
			continue
		}
		switch p.PDG {
		case event.Tau:
			d.Neg.Tau = p
			d.Higgs = parent
			nTaus++
		case -event.Tau:
			d.Pos.Tau = p
			nTaus++
		}
	}

	if d.Higgs == nil {
		return nil, ErrNoHiggs
	}
	if d.Pos.Tau == nil || d.Neg.Tau == nil || nTaus != 2 {
		return nil, ErrNoTauPair
	}

	for _, p := range ev.Particles {
		parent := rootTau(ev, ev.Parent(p))
		switch {
		case parent == nil:
		case parent == d.Neg.Tau:
			d.Neg.add(p, -1)
		case parent == d.Pos.Tau:
			d.Pos.add(p, +1)
		}
	}
	return &d, nil
}

// rootTau walks up a chain of tau copies.
func rootTau(ev *event.Event, p *event.Particle) *event.Particle {
	if p == nil || abs(p.PDG) != event.Tau {
		return p
	}
	for {
		up := ev.Parent(p)
		if up == nil || abs(up.PDG) != event.Tau {
			return p
		}
		p = up
	}
}

// add records one decay product of a tau with the given charge sign.
func (ps *Products) add(p *event.Particle, charge int) {
	switch p.PDG {
	case event.PiPlus, event.PiMinus:
		ps.Charged = p
		ps.Counts.ChargedPions++
	case event.Pi0:
		ps.Neutrals = append(ps.Neutrals, p)
		ps.Counts.NeutralPions++
	case -charge * event.ElectronPDG, -charge * event.Muon:
		// PDG codes of the negative leptons are positive
		ps.Lepton = p
		ps.Counts.Leptons++
	case event.NuE, -event.NuE, event.NuMu, -event.NuMu:
		ps.Counts.Neutrinos++
	case event.NuTau, -event.NuTau:
		ps.TauNeutrino = p
		ps.Counts.Neutrinos++
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
