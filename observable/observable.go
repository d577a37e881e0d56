// Package observable computes the CP-sensitive angle φ_CP between the decay
// planes of the two taus in H → τ⁺τ⁻.
//
// Every variant returns an angle in [0, 2π) or an error. Errors wrap
// geom.ErrDegenerate (collinear or zero directions), the lorentz frame errors
// (unphysical reference frame) or ErrNullInput; OrInvalid turns them into the
// Invalid sentinel recorded for events where the observable is undefined.
package observable

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/phicp/geom"
	"github.com/decibelcooper/phicp/lorentz"
)

// Invalid is recorded for events where an observable could not be computed.
const Invalid = -99.

// ErrNullInput is returned when a required four-vector is identically zero.
var ErrNullInput = errors.New("observable: null four-vector")

// OrInvalid returns phi, or Invalid when err is non-nil.
func OrInvalid(phi float64, err error) float64 {
	if err != nil {
		return Invalid
	}
	return phi
}

// Projection selects where impact-parameter-like directions are made
// perpendicular to their momenta.
type Projection int

const (
	// ProjectAfterBoost projects in the lab frame and projects again after
	// boosting, since the momentum direction itself changes under the boost.
	ProjectAfterBoost Projection = iota
	// ProjectBeforeBoost only projects in the lab frame.
	ProjectBeforeBoost
)

func (p Projection) String() string {
	switch p {
	case ProjectAfterBoost:
		return "after-boost"
	case ProjectBeforeBoost:
		return "before-boost"
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// ParseProjection is the inverse of Projection.String.
func ParseProjection(s string) (Projection, error) {
	switch s {
	case "after-boost", "":
		return ProjectAfterBoost, nil
	case "before-boost":
		return ProjectBeforeBoost, nil
	}
	return 0, fmt.Errorf("observable: unknown projection %q", s)
}

// Library evaluates the φ_CP variants with a fixed set of options. The zero
// value uses ProjectAfterBoost.
type Library struct {
	Projection Projection
}

// Default is the Library used by the package-level functions.
var Default = Library{Projection: ProjectAfterBoost}

func requireNonNull(vs ...lorentz.Vec) error {
	for i, v := range vs {
		if v.IsZero() {
			return fmt.Errorf("%w (input %d)", ErrNullInput, i)
		}
	}
	return nil
}

// boostAll checks the frame before boosting, so that an unphysical reference
// never reaches the boost.
func boostAll(frame lorentz.Vec, vs ...lorentz.Vec) ([]lorentz.Vec, error) {
	if err := lorentz.CheckFrame(frame); err != nil {
		return nil, fmt.Errorf("observable: reference frame: %w", err)
	}
	return lorentz.BoostToRestFrame(frame, vs...)
}

// project makes the boosted direction perpendicular to the boosted momentum
// when the library is configured to do so.
func (l Library) project(dir lorentz.Vec, p lorentz.Vec) (r3.Vec, error) {
	if l.Projection == ProjectBeforeBoost {
		return dir.Vect(), nil
	}
	return geom.Perpendicular(dir.Vect(), p.Vect())
}

// Upsilon returns the energy asymmetry (E_charged − E_neutral)/(E_charged + E_neutral).
// It must be evaluated in the lab frame.
func Upsilon(charged, neutral lorentz.Vec) float64 {
	return (charged.E() - neutral.E()) / (charged.E() + neutral.E())
}
