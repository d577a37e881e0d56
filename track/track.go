// Package track turns charged-track perigee parameters into impact-parameter
// vectors.
package track

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/phicp/geom"
	"github.com/decibelcooper/phicp/lorentz"
)

// Perigee holds the track parameters at the point of closest approach to the
// beam axis.
type Perigee struct {
	D0   float64 // transverse impact parameter
	Z0   float64 // longitudinal impact parameter
	Phi0 float64 // azimuthal angle of the momentum at the perigee
}

// Track is a reconstructed charged-particle track.
type Track struct {
	Perigee
	P4 lorentz.Vec
}

// PointOfClosestApproach returns ref + (−d0 sinφ0, d0 cosφ0, z0).
func PointOfClosestApproach(p Perigee, ref r3.Vec) r3.Vec {
	sin, cos := math.Sincos(p.Phi0)
	return r3.Add(ref, r3.Vec{X: -p.D0 * sin, Y: p.D0 * cos, Z: p.Z0})
}

// ImpactParameter returns the component of vtx − refVtx perpendicular to dir.
func ImpactParameter(vtx, dir, refVtx r3.Vec) (r3.Vec, error) {
	return geom.Perpendicular(r3.Sub(vtx, refVtx), dir)
}

// TrackImpactParameter returns the impact parameter of t relative to refVtx.
func TrackImpactParameter(t Track, refVtx r3.Vec) (r3.Vec, error) {
	return ImpactParameter(PointOfClosestApproach(t.Perigee, r3.Vec{}), t.P4.Vect(), refVtx)
}
