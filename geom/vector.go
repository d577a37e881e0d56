// Package geom decomposes three-vectors relative to a reference direction and
// measures oriented angles between planes.
package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerate is returned when a unit direction is required from a vector of
// zero magnitude, e.g. collinear decay products or a zero momentum.
var ErrDegenerate = errors.New("geom: degenerate vector")

// Unit returns v scaled to unit length.
func Unit(v r3.Vec) (r3.Vec, error) {
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) {
		return r3.Vec{}, ErrDegenerate
	}
	return r3.Scale(1/n, v), nil
}

// Parallel returns the projection of v onto the direction of ref.
func Parallel(v, ref r3.Vec) (r3.Vec, error) {
	u, err := Unit(ref)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Scale(r3.Dot(v, u), u), nil
}

// Perpendicular returns the component of v orthogonal to ref.
func Perpendicular(v, ref r3.Vec) (r3.Vec, error) {
	par, err := Parallel(v, ref)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Sub(v, par), nil
}

// PlaneNormal returns unit(a × b). The order of a and b fixes the orientation.
func PlaneNormal(a, b r3.Vec) (r3.Vec, error) {
	return Unit(r3.Cross(a, b))
}
