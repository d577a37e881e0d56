package geom

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestSignedAngle(t *testing.T) {
	x := r3.Vec{X: 1}
	y := r3.Vec{Y: 1}
	z := r3.Vec{Z: 1}
	diag := r3.Vec{X: 1, Y: -1}

	for _, tc := range []struct {
		name    string
		a, b    r3.Vec
		ref     r3.Vec
		want    float64
		wantErr error
	}{
		{name: "quarter", a: x, b: y, ref: z, want: math.Pi / 2},
		{name: "quarter-flipped-ref", a: x, b: y, ref: r3.Scale(-1, z), want: 3 * math.Pi / 2},
		{name: "quarter-swapped", a: y, b: x, ref: z, want: 3 * math.Pi / 2},
		{name: "parallel", a: x, b: r3.Scale(7, x), ref: z, want: 0},
		{name: "antiparallel", a: x, b: r3.Scale(-2, x), ref: z, want: math.Pi},
		{name: "unnormalised", a: r3.Scale(3, x), b: diag, ref: z, want: 7 * math.Pi / 4},
		{name: "degenerate-a", a: r3.Vec{}, b: y, ref: z, wantErr: ErrDegenerate},
		{name: "degenerate-b", a: x, b: r3.Vec{}, ref: z, wantErr: ErrDegenerate},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SignedAngle(tc.a, tc.b, tc.ref)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestSignedAngleClampsCosine(t *testing.T) {
	// Nearly identical normals whose normalised dot product rounds above 1.
	a := r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}
	b := r3.Vec{X: 0.1 * (1 + 1e-16), Y: 0.2, Z: 0.3}
	got, err := SignedAngle(a, b, r3.Vec{Z: 1})
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(got) {
		t.Fatal("got NaN")
	}
	if got >= 2*math.Pi || got < 0 {
		t.Fatalf("out of range: %v", got)
	}
}

func TestSignedAngleProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	complement := func(phi float64) float64 {
		return math.Mod(2*math.Pi-phi, 2*math.Pi)
	}
	for i := 0; i < 2000; i++ {
		a := randVec(rng, 1)
		b := randVec(rng, 1)
		ref := randVec(rng, 1)

		phi, err := SignedAngle(a, b, ref)
		if err != nil {
			t.Fatal(err)
		}
		if phi < 0 || phi >= 2*math.Pi {
			t.Fatalf("angle %v out of [0, 2π)", phi)
		}

		swapped, err := SignedAngle(b, a, ref)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(swapped-complement(phi)) > 1e-9 {
			t.Fatalf("swap: expected %v got %v", complement(phi), swapped)
		}

		negated, err := SignedAngle(a, b, r3.Scale(-1, ref))
		if err != nil {
			t.Fatal(err)
		}
		// exactly perpendicular references keep the acos value on both sides
		if o := r3.Dot(ref, r3.Cross(a, b)); o == 0 {
			continue
		}
		if math.Abs(negated-complement(phi)) > 1e-9 {
			t.Fatalf("negated ref: expected %v got %v", complement(phi), negated)
		}
	}
}

func TestShiftByPi(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0, math.Pi},
		{1, 1 + math.Pi},
		{math.Pi, 0},
		{4, 4 - math.Pi},
	} {
		if got := ShiftByPi(tc.in); math.Abs(got-tc.want) > 1e-15 {
			t.Errorf("ShiftByPi(%v): expected %v got %v", tc.in, tc.want, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.0000000000000002, -1, 1); got != 1 {
		t.Error("Expected 1 got", got)
	}
	if got := Clamp(-1.5, -1, 1); got != -1 {
		t.Error("Expected -1 got", got)
	}
	if got := Clamp(0.25, -1, 1); got != 0.25 {
		t.Error("Expected 0.25 got", got)
	}
}
