package lorentz

import (
	"errors"
	"fmt"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrNonPhysicalFrame is returned for a reference with zero or negative energy.
	ErrNonPhysicalFrame = errors.New("lorentz: reference energy must be positive")
	// ErrSuperluminal is returned for boost velocities with |β| ≥ 1.
	ErrSuperluminal = errors.New("lorentz: boost velocity is lightlike or superluminal")
	// ErrNonFinite is returned when a reference carries NaN or Inf components.
	ErrNonFinite = errors.New("lorentz: non-finite four-vector")
)

// CheckFrame rejects references whose rest frame is undefined.
func CheckFrame(ref Vec) error {
	if !ref.IsFinite() {
		return ErrNonFinite
	}
	if ref.E() <= 0 {
		return fmt.Errorf("%w: E=%g", ErrNonPhysicalFrame, ref.E())
	}
	return checkVelocity(r3.Scale(1/ref.E(), ref.Vect()))
}

func checkVelocity(beta r3.Vec) error {
	if b2 := r3.Norm2(beta); b2 >= 1 {
		return fmt.Errorf("%w: |β|²=%g", ErrSuperluminal, b2)
	}
	return nil
}

// BoostVector returns the velocity p/E of the frame in which v is at rest.
func (v Vec) BoostVector() (r3.Vec, error) {
	if err := CheckFrame(v); err != nil {
		return r3.Vec{}, err
	}
	return r3.Scale(1/v.E(), v.Vect()), nil
}

// Boost transforms v by the velocity beta, following the TLorentzVector
// convention: boosting a vector at rest by β gives it velocity β.
func (v Vec) Boost(beta r3.Vec) (Vec, error) {
	if err := checkVelocity(beta); err != nil {
		return Vec{}, err
	}
	p := v.p
	return FromP4(fmom.Boost(&p, beta)), nil
}

// BoostToRestFrame boosts every vector in vs into the rest frame of ref.
func BoostToRestFrame(ref Vec, vs ...Vec) ([]Vec, error) {
	beta, err := ref.BoostVector()
	if err != nil {
		return nil, err
	}
	beta = r3.Scale(-1, beta)

	out := make([]Vec, len(vs))
	for i, v := range vs {
		if out[i], err = v.Boost(beta); err != nil {
			return nil, err
		}
	}
	return out, nil
}
