package event

import "math"

// Tau jet selection.
const (
	MinTauJetPt = 20000.0 // MeV
	MaxEta      = 2.47
	CrackLow    = 1.37
	CrackHigh   = 1.52
)

// LeadingTauJet returns the highest-pT jet of the requested charge sign that
// has 1 or 3 tracks, passes the pT cut and lies outside the barrel/endcap
// crack. It returns nil if no jet qualifies.
func LeadingTauJet(jets []TauJet, positive bool) *TauJet {
	var leading *TauJet
	for i := range jets {
		jet := &jets[i]
		if (jet.Charge <= 0 && positive) || (jet.Charge >= 0 && !positive) {
			continue
		}
		if n := len(jet.Tracks); n != 1 && n != 3 {
			continue
		}
		if jet.Pt() < MinTauJetPt {
			continue
		}
		if eta := math.Abs(jet.Eta()); eta > MaxEta || (eta > CrackLow && eta < CrackHigh) {
			continue
		}
		if leading == nil || jet.Pt() > leading.Pt() {
			leading = jet
		}
	}
	return leading
}

// LeadingElectron returns the highest-pT electron of the requested charge sign
// with at least one track, or nil.
func LeadingElectron(electrons []Electron, positive bool) *Electron {
	var leading *Electron
	for i := range electrons {
		el := &electrons[i]
		if (el.Charge <= 0 && positive) || (el.Charge >= 0 && !positive) {
			continue
		}
		if len(el.Tracks) == 0 {
			continue
		}
		if leading == nil || el.Pt() > leading.Pt() {
			leading = el
		}
	}
	return leading
}
