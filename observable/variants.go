package observable

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/phicp/geom"
	"github.com/decibelcooper/phicp/lorentz"
)

// TauPlane returns φ_CP between the τ⁺/π⁺ and τ⁻/π⁻ decay planes in the
// Higgs rest frame. The sign is taken from the π⁻ direction.
func TauPlane(higgs, tauPos, tauNeg, piPos, piNeg lorentz.Vec) (float64, error) {
	return decayPlanes(higgs, tauPos, tauNeg, piPos, piNeg)
}

// NeutrinoPlane is TauPlane with the planes spanned by the (anti)neutrino
// instead of the tau.
func NeutrinoPlane(higgs, antiNu, nu, piPos, piNeg lorentz.Vec) (float64, error) {
	return decayPlanes(higgs, antiNu, nu, piPos, piNeg)
}

func decayPlanes(higgs, pos, neg, piPos, piNeg lorentz.Vec) (float64, error) {
	if err := requireNonNull(higgs, pos, neg, piPos, piNeg); err != nil {
		return Invalid, err
	}
	b, err := boostAll(higgs, pos, neg, piPos, piNeg)
	if err != nil {
		return Invalid, err
	}
	pos, neg, piPos, piNeg = b[0], b[1], b[2], b[3]

	planePos, err := geom.PlaneNormal(pos.Vect(), piPos.Vect())
	if err != nil {
		return Invalid, err
	}
	planeNeg, err := geom.PlaneNormal(neg.Vect(), piNeg.Vect())
	if err != nil {
		return Invalid, err
	}
	ref, err := geom.Unit(piNeg.Vect())
	if err != nil {
		return Invalid, err
	}
	return geom.SignedAngle(planePos, planeNeg, ref)
}

// ImpactParameter returns φ_CP from the impact parameters of the two charged
// decay products, boosted into frame (usually their combined four-momentum).
func ImpactParameter(ipPos, ipNeg r3.Vec, piPos, piNeg, frame lorentz.Vec) (float64, error) {
	return Default.ImpactParameter(ipPos, ipNeg, piPos, piNeg, frame)
}

// PionImpactParameter builds the impact parameters of both pions from their
// production vertices relative to refVtx and evaluates ImpactParameter in the
// π⁺π⁻ rest frame.
func PionImpactParameter(vtxPos, vtxNeg, refVtx r3.Vec, piPos, piNeg lorentz.Vec) (float64, error) {
	return Default.PionImpactParameter(vtxPos, vtxNeg, refVtx, piPos, piNeg)
}

// RhoDecayPlane returns φ_CP from the ρ± → π±π⁰ decay planes. pi0Pos and
// pi0Neg are the summed neutral pions of each side. The upsilons are taken in
// the lab frame and the angle is shifted by π when they have opposite signs.
func RhoDecayPlane(piPos, pi0Pos, piNeg, pi0Neg, frame lorentz.Vec) (float64, error) {
	if err := requireNonNull(piPos, pi0Pos, piNeg, pi0Neg, frame); err != nil {
		return Invalid, err
	}
	yPos := Upsilon(piPos, pi0Pos)
	yNeg := Upsilon(piNeg, pi0Neg)

	b, err := boostAll(frame, piPos, pi0Pos, piNeg, pi0Neg)
	if err != nil {
		return Invalid, err
	}
	piPos, pi0Pos, piNeg, pi0Neg = b[0], b[1], b[2], b[3]

	planePos, err := geom.Perpendicular(pi0Pos.Vect(), piPos.Vect())
	if err != nil {
		return Invalid, err
	}
	planeNeg, err := geom.Perpendicular(pi0Neg.Vect(), piNeg.Vect())
	if err != nil {
		return Invalid, err
	}
	ref, err := geom.Unit(piNeg.Vect())
	if err != nil {
		return Invalid, err
	}
	phi, err := geom.SignedAngle(planePos, planeNeg, ref)
	if err != nil {
		return Invalid, err
	}
	if yPos*yNeg < 0 {
		phi = geom.ShiftByPi(phi)
	}
	return phi, nil
}

// ImpactParameterRho combines an impact parameter on one side with a ρ decay
// plane on the other.
func ImpactParameterRho(ip r3.Vec, single, rhoCharged, rhoNeutral, frame lorentz.Vec, rhoPositive bool) (float64, error) {
	return Default.ImpactParameterRho(ip, single, rhoCharged, rhoNeutral, frame, rhoPositive)
}

// ImpactParameter is the package-level ImpactParameter under l's options.
func (l Library) ImpactParameter(ipPos, ipNeg r3.Vec, piPos, piNeg, frame lorentz.Vec) (float64, error) {
	if err := requireNonNull(piPos, piNeg, frame); err != nil {
		return Invalid, err
	}
	dirPos, err := geom.Unit(ipPos)
	if err != nil {
		return Invalid, err
	}
	dirNeg, err := geom.Unit(ipNeg)
	if err != nil {
		return Invalid, err
	}

	b, err := boostAll(frame, lorentz.Direction(dirPos), lorentz.Direction(dirNeg), piPos, piNeg)
	if err != nil {
		return Invalid, err
	}

	planePos, err := l.project(b[0], b[2])
	if err != nil {
		return Invalid, err
	}
	planeNeg, err := l.project(b[1], b[3])
	if err != nil {
		return Invalid, err
	}
	ref, err := geom.Unit(b[3].Vect())
	if err != nil {
		return Invalid, err
	}
	return geom.SignedAngle(planePos, planeNeg, ref)
}

// PionImpactParameter is the package-level PionImpactParameter under l's options.
func (l Library) PionImpactParameter(vtxPos, vtxNeg, refVtx r3.Vec, piPos, piNeg lorentz.Vec) (float64, error) {
	if err := requireNonNull(piPos, piNeg); err != nil {
		return Invalid, err
	}
	ipPos, err := geom.Perpendicular(r3.Sub(vtxPos, refVtx), piPos.Vect())
	if err != nil {
		return Invalid, err
	}
	ipNeg, err := geom.Perpendicular(r3.Sub(vtxNeg, refVtx), piNeg.Vect())
	if err != nil {
		return Invalid, err
	}
	return l.ImpactParameter(ipPos, ipNeg, piPos, piNeg, piPos.Add(piNeg))
}

// ImpactParameterRho is the package-level ImpactParameterRho under l's options.
//
// rhoPositive tells which tau decayed to the ρ. The orientation is
// single·(ρ-plane × ip-plane) when it is the τ⁺ and ρ±·(ip-plane × ρ-plane)
// otherwise. The angle is shifted by π when the ρ upsilon is negative.
func (l Library) ImpactParameterRho(ip r3.Vec, single, rhoCharged, rhoNeutral, frame lorentz.Vec, rhoPositive bool) (float64, error) {
	if err := requireNonNull(single, rhoCharged, rhoNeutral, frame); err != nil {
		return Invalid, err
	}
	y := Upsilon(rhoCharged, rhoNeutral)

	dir, err := geom.Unit(ip)
	if err != nil {
		return Invalid, err
	}
	b, err := boostAll(frame, lorentz.Direction(dir), single, rhoCharged, rhoNeutral)
	if err != nil {
		return Invalid, err
	}
	single, rhoCharged, rhoNeutral = b[1], b[2], b[3]

	planeIP, err := l.project(b[0], single)
	if err != nil {
		return Invalid, err
	}
	planeRho, err := geom.Perpendicular(rhoNeutral.Vect(), rhoCharged.Vect())
	if err != nil {
		return Invalid, err
	}

	var phi float64
	if rhoPositive {
		ref, err := geom.Unit(single.Vect())
		if err != nil {
			return Invalid, err
		}
		phi, err = geom.SignedAngle(planeRho, planeIP, ref)
		if err != nil {
			return Invalid, err
		}
	} else {
		ref, err := geom.Unit(rhoCharged.Vect())
		if err != nil {
			return Invalid, err
		}
		phi, err = geom.SignedAngle(planeIP, planeRho, ref)
		if err != nil {
			return Invalid, err
		}
	}

	if y < 0 {
		phi = geom.ShiftByPi(phi)
	}
	return phi, nil
}
