package geom

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func randVec(rng *rand.Rand, scale float64) r3.Vec {
	return r3.Vec{
		X: scale * (2*rng.Float64() - 1),
		Y: scale * (2*rng.Float64() - 1),
		Z: scale * (2*rng.Float64() - 1),
	}
}

func vecClose(a, b r3.Vec, tol float64) bool {
	scale := math.Max(1, math.Max(r3.Norm(a), r3.Norm(b)))
	return r3.Norm(r3.Sub(a, b)) <= tol*scale
}

// perpendicularMag2 is the (v·ref)/|ref|² formulation of the perpendicular
// component. It must agree with Perpendicular.
func perpendicularMag2(v, ref r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(v, ref)/r3.Norm2(ref), ref))
}

func TestUnit(t *testing.T) {
	u, err := Unit(r3.Vec{X: 3, Y: 0, Z: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !vecClose(u, r3.Vec{X: 0.6, Z: 0.8}, 1e-15) {
		t.Error("Expected (0.6, 0, 0.8) got", u)
	}

	if _, err := Unit(r3.Vec{}); !errors.Is(err, ErrDegenerate) {
		t.Error("Expected ErrDegenerate got", err)
	}
}

func TestDecomposition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := randVec(rng, 1e4)
		ref := randVec(rng, 1e2)

		par, err := Parallel(v, ref)
		if err != nil {
			t.Fatal(err)
		}
		perp, err := Perpendicular(v, ref)
		if err != nil {
			t.Fatal(err)
		}

		if !vecClose(r3.Add(par, perp), v, 1e-9) {
			t.Fatalf("par+perp != v: %v + %v != %v", par, perp, v)
		}
		if d := r3.Dot(perp, ref); math.Abs(d) > 1e-9*r3.Norm(v)*r3.Norm(ref) {
			t.Fatalf("perp not orthogonal to ref: %g", d)
		}
		if alt := perpendicularMag2(v, ref); !vecClose(alt, perp, 1e-9) {
			t.Fatalf("formulations differ: %v vs %v", perp, alt)
		}
	}
}

func TestDecompositionDegenerate(t *testing.T) {
	v := r3.Vec{X: 1, Y: 2, Z: 3}
	if _, err := Parallel(v, r3.Vec{}); !errors.Is(err, ErrDegenerate) {
		t.Error("Parallel: expected ErrDegenerate got", err)
	}
	if _, err := Perpendicular(v, r3.Vec{}); !errors.Is(err, ErrDegenerate) {
		t.Error("Perpendicular: expected ErrDegenerate got", err)
	}
}

func TestPlaneNormal(t *testing.T) {
	n, err := PlaneNormal(r3.Vec{X: 2}, r3.Vec{Y: 5})
	if err != nil {
		t.Fatal(err)
	}
	if n != (r3.Vec{Z: 1}) {
		t.Error("Expected (0, 0, 1) got", n)
	}

	n, err = PlaneNormal(r3.Vec{Y: 5}, r3.Vec{X: 2})
	if err != nil {
		t.Fatal(err)
	}
	if n != (r3.Vec{Z: -1}) {
		t.Error("Expected (0, 0, -1) got", n)
	}

	if _, err := PlaneNormal(r3.Vec{X: 1, Y: 1}, r3.Vec{X: 3, Y: 3}); !errors.Is(err, ErrDegenerate) {
		t.Error("collinear: expected ErrDegenerate got", err)
	}
}
