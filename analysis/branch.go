package analysis

import "github.com/decibelcooper/phicp/observable"

// Branch identifies one recorded φ_CP observable.
type Branch int

const (
	TauPiTruth Branch = iota
	NeutrinoPiTruth
	PiPiTruth
	PiPiRecon
	LeptPiTruth
	LeptPiRecon
	RhoRhoTruth
	RhoRhoRecon
	RhoRhoXTruth
	RhoRhoXRecon
	PiRhoTruth
	PiRhoRecon
	LeptRhoTruth
	NumBranches
)

var branchNames = [NumBranches]string{
	TauPiTruth:      "phiCP_tau_pi_truth",
	NeutrinoPiTruth: "phiCP_neutrino_pi_truth",
	PiPiTruth:       "phiCP_1p0n_1p0n_truth",
	PiPiRecon:       "phiCP_1p0n_1p0n_recon",
	LeptPiTruth:     "phiCP_lept_1p0n_truth",
	LeptPiRecon:     "phiCP_lept_1p0n_recon",
	RhoRhoTruth:     "phiCP_1p1n_1p1n_truth",
	RhoRhoRecon:     "phiCP_1p1n_1p1n_recon",
	RhoRhoXTruth:    "phiCP_1p1n_1pXn_truth",
	RhoRhoXRecon:    "phiCP_1p1n_1pXn_recon",
	PiRhoTruth:      "phiCP_1p0n_1p1n_truth",
	PiRhoRecon:      "phiCP_1p0n_1p1n_recon",
	LeptRhoTruth:    "phiCP_lept_1p1n_truth",
}

func (b Branch) String() string {
	if b < 0 || b >= NumBranches {
		return "phiCP_invalid"
	}
	return branchNames[b]
}

// Branches returns every branch in tree order.
func Branches() []Branch {
	bs := make([]Branch, NumBranches)
	for i := range bs {
		bs[i] = Branch(i)
	}
	return bs
}

// ParseBranch looks a branch up by name.
func ParseBranch(name string) (Branch, bool) {
	for i, n := range branchNames {
		if n == name {
			return Branch(i), true
		}
	}
	return 0, false
}

// Values holds one value per branch.
type Values [NumBranches]float64

// NewValues returns Values with every branch set to observable.Invalid.
func NewValues() Values {
	var v Values
	for i := range v {
		v[i] = observable.Invalid
	}
	return v
}
