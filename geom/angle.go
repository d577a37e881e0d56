package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const twoPi = 2 * math.Pi

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}

// SignedAngle returns the angle between the planes with normals a and b in
// [0, 2π). The unsigned angle from acos is extended to the full circle using
// the sign of signRef·(a × b): non-negative keeps the acos value, negative
// returns its complement 2π − φ.
//
// Both normals are normalised first, and the cosine is clamped to [-1, 1]
// before acos.
func SignedAngle(a, b, signRef r3.Vec) (float64, error) {
	ua, err := Unit(a)
	if err != nil {
		return 0, err
	}
	ub, err := Unit(b)
	if err != nil {
		return 0, err
	}

	phi := math.Acos(Clamp(r3.Dot(ua, ub), -1, 1))
	if r3.Dot(signRef, r3.Cross(ua, ub)) >= 0 {
		return phi, nil
	}
	return wrap(twoPi - phi), nil
}

// ShiftByPi rotates phi by π, keeping the result in [0, 2π).
func ShiftByPi(phi float64) float64 {
	if phi < math.Pi {
		return phi + math.Pi
	}
	return phi - math.Pi
}

// wrap folds 2π onto 0.
func wrap(phi float64) float64 {
	if phi >= twoPi {
		return phi - twoPi
	}
	return phi
}
