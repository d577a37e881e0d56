// Package lorentz holds the four-vector type used throughout phicp and the
// boosts into rest frames of reference four-momenta.
package lorentz

import (
	"math"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is an energy-momentum (px, py, pz, E) or spacetime (x, y, z, t)
// four-vector. The zero value is the null four-vector.
type Vec struct {
	p fmom.PxPyPzE
}

// New returns the four-vector (px, py, pz, e).
func New(px, py, pz, e float64) Vec {
	return Vec{p: fmom.NewPxPyPzE(px, py, pz, e)}
}

// FromP4 copies any fmom four-momentum.
func FromP4(p fmom.P4) Vec {
	return New(p.Px(), p.Py(), p.Pz(), p.E())
}

// FromMass returns the four-momentum of a particle with three-momentum p and mass m.
func FromMass(p r3.Vec, m float64) Vec {
	return New(p.X, p.Y, p.Z, math.Sqrt(r3.Norm2(p)+m*m))
}

// Direction embeds a spatial direction as a zero-energy four-vector so that it
// can be carried through a boost alongside momenta.
func Direction(v r3.Vec) Vec {
	return New(v.X, v.Y, v.Z, 0)
}

func (v Vec) Px() float64 { return v.p.P4.X }
func (v Vec) Py() float64 { return v.p.P4.Y }
func (v Vec) Pz() float64 { return v.p.P4.Z }
func (v Vec) E() float64  { return v.p.P4.T }

// Vect returns the spatial part.
func (v Vec) Vect() r3.Vec {
	return r3.Vec{X: v.p.P4.X, Y: v.p.P4.Y, Z: v.p.P4.Z}
}

// M2 returns E² − |p|².
func (v Vec) M2() float64 {
	p := v.p
	return p.M2()
}

// IsZero reports whether all four components vanish.
func (v Vec) IsZero() bool {
	return v.p == fmom.PxPyPzE{}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec) IsFinite() bool {
	for _, x := range [...]float64{v.p.P4.X, v.p.P4.Y, v.p.P4.Z, v.p.P4.T} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// P4 returns a copy of v as an fmom four-momentum.
func (v Vec) P4() fmom.P4 {
	p := v.p
	return &p
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	a, b := v.p, o.p
	return FromP4(fmom.Add(&a, &b))
}

// Sum adds up vs. The sum of nothing is the null four-vector.
func Sum(vs ...Vec) Vec {
	var sum Vec
	for _, v := range vs {
		sum = sum.Add(v)
	}
	return sum
}
