// Package decay identifies the H → τ⁺τ⁻ decay chain in the truth record and
// classifies each tau decay by its visible topology.
package decay

// Mode is the decay topology of one tau.
type Mode int

const (
	Unknown Mode = iota
	Leptonic
	Hadronic1P0N
	Hadronic1P1N
	Hadronic1PXN
	Hadronic3P0N
)

var modeNames = [...]string{
	Unknown:      "unknown",
	Leptonic:     "lept",
	Hadronic1P0N: "1p0n",
	Hadronic1P1N: "1p1n",
	Hadronic1PXN: "1pXn",
	Hadronic3P0N: "3p0n",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return modeNames[Unknown]
	}
	return modeNames[m]
}

// Counts are the multiplicities among a tau's direct decay products.
type Counts struct {
	Leptons      int
	ChargedPions int
	NeutralPions int
	Neutrinos    int
}

// Classify maps decay-product counts to a Mode. Every input maps to exactly
// one Mode; anything outside the known patterns is Unknown.
func Classify(c Counts) Mode {
	switch {
	case c == (Counts{Leptons: 1, Neutrinos: 2}):
		return Leptonic
	case c == (Counts{ChargedPions: 1, Neutrinos: 1}):
		return Hadronic1P0N
	case c == (Counts{ChargedPions: 1, NeutralPions: 1, Neutrinos: 1}):
		return Hadronic1P1N
	case c.Leptons == 0 && c.ChargedPions == 1 && c.NeutralPions >= 2 && c.Neutrinos == 1:
		return Hadronic1PXN
	case c == (Counts{ChargedPions: 3}):
		return Hadronic3P0N
	}
	return Unknown
}

// ClassifyCounts is Classify with the counts spelled out.
func ClassifyCounts(leptons, chargedPions, neutralPions, neutrinos int) Mode {
	return Classify(Counts{leptons, chargedPions, neutralPions, neutrinos})
}
