// Package analysis turns events into φ_CP observables. Each event is matched
// to a decay channel from its truth record, and every observable defined for
// that channel is computed at truth level and, when reconstructed objects are
// present, at reconstruction level.
package analysis

import (
	"errors"
	"fmt"
	"log"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/phicp/decay"
	"github.com/decibelcooper/phicp/event"
	"github.com/decibelcooper/phicp/geom"
	"github.com/decibelcooper/phicp/lorentz"
	"github.com/decibelcooper/phicp/observable"
	"github.com/decibelcooper/phicp/track"
)

var (
	ErrUnknownChannel  = errors.New("analysis: decay channel not analysed")
	ErrNoTauJets       = errors.New("analysis: fewer than two tau jets")
	ErrNoTauJet        = errors.New("analysis: no tau jet of the required charge")
	ErrNoJetVertex     = errors.New("analysis: tau jet has no vertex")
	ErrNoJetTracks     = errors.New("analysis: tau jet has no tracks")
	ErrNoElectron      = errors.New("analysis: no electron of the required charge")
	ErrNoPrimaryVertex = errors.New("analysis: no primary vertex")
	ErrVertexMismatch  = errors.New("analysis: tau jet vertex away from primary vertex")
)

// MaxVertexDist2 is the largest squared distance allowed between the hadronic
// tau jet vertex and the primary vertex in the leptonic channel.
const MaxVertexDist2 = 0.01

// Result is the outcome of analysing one event.
type Result struct {
	Event   uint64
	Channel string
	Values  Values

	// Err is set when the event was excluded before any observable was
	// computed.
	Err error
	// Skipped lists observables of the channel that were left Invalid.
	Skipped []error
}

// Accepted reports whether the event was analysed.
func (r *Result) Accepted() bool { return r.Err == nil }

// Analysis computes the observables of single events. It holds no per-event
// state and is safe for concurrent use.
type Analysis struct {
	Library observable.Library
	// Log receives one line per excluded event and skipped observable. A nil
	// Log discards them.
	Log *log.Logger
}

// New returns an Analysis using lib.
func New(lib observable.Library, logger *log.Logger) *Analysis {
	return &Analysis{Library: lib, Log: logger}
}

// Default returns a silent Analysis using observable.Default.
func Default() *Analysis { return New(observable.Default, nil) }

func (a *Analysis) logf(format string, v ...interface{}) {
	if a.Log != nil {
		a.Log.Printf(format, v...)
	}
}

// ChannelName is the canonical name of a pair of decay modes: leptonic side
// first, then the side with fewer neutral pions.
func ChannelName(pos, neg decay.Mode) string {
	if neg < pos {
		pos, neg = neg, pos
	}
	return pos.String() + "_" + neg.String()
}

// Process analyses one event.
func (a *Analysis) Process(ev *event.Event) Result {
	r := &recorder{a: a, res: Result{Event: ev.Number, Values: NewValues()}}

	d, err := decay.Find(ev)
	if err != nil {
		r.res.Err = err
		a.logf("event %d: %v", ev.Number, err)
		return r.res
	}

	pos, neg := d.Modes()
	r.res.Channel = ChannelName(pos, neg)

	switch {
	case pos == decay.Hadronic1P0N && neg == decay.Hadronic1P0N:
		a.pionPion(r, ev, d)
	case pos == decay.Leptonic && neg == decay.Hadronic1P0N,
		pos == decay.Hadronic1P0N && neg == decay.Leptonic:
		a.leptonPion(r, ev, d)
	case pos == decay.Hadronic1P1N && neg == decay.Hadronic1P1N:
		a.rhoRho(r, ev, d, RhoRhoTruth, RhoRhoRecon)
	case pos == decay.Hadronic1P1N && neg == decay.Hadronic1PXN,
		pos == decay.Hadronic1PXN && neg == decay.Hadronic1P1N:
		a.rhoRho(r, ev, d, RhoRhoXTruth, RhoRhoXRecon)
	case pos == decay.Hadronic1P0N && neg == decay.Hadronic1P1N,
		pos == decay.Hadronic1P1N && neg == decay.Hadronic1P0N:
		a.pionRho(r, ev, d)
	case pos == decay.Leptonic && neg == decay.Hadronic1P1N,
		pos == decay.Hadronic1P1N && neg == decay.Leptonic:
		a.leptonRho(r, d)
	default:
		r.res.Err = fmt.Errorf("%w: %s", ErrUnknownChannel, r.res.Channel)
		a.logf("event %d: %v", ev.Number, r.res.Err)
	}
	return r.res
}

// recorder fills the Values of one Result.
type recorder struct {
	a   *Analysis
	res Result
}

func (r *recorder) set(b Branch, phi float64, err error) {
	if err != nil {
		err = fmt.Errorf("%v: %w", b, err)
		r.res.Skipped = append(r.res.Skipped, err)
		r.a.logf("event %d: %v", r.res.Event, err)
		return
	}
	r.res.Values[b] = phi
}


// visible returns the charged visible daughter of a tau.
func visible(ps *decay.Products) *event.Particle {
	if ps.Mode() == decay.Leptonic {
		return ps.Lepton
	}
	return ps.Charged
}

func hasReco(ev *event.Event) bool {
	return len(ev.TauJets) > 0 || len(ev.Electrons) > 0
}

func (a *Analysis) pionPion(r *recorder, ev *event.Event, d *decay.HiggsTauTau) {
	piPos, piNeg := d.Pos.Charged.P4, d.Neg.Charged.P4

	phi, err := observable.TauPlane(d.Higgs.P4, d.Pos.Tau.P4, d.Neg.Tau.P4, piPos, piNeg)
	r.set(TauPiTruth, phi, err)

	if d.Pos.TauNeutrino != nil && d.Neg.TauNeutrino != nil {
		phi, err = observable.NeutrinoPlane(d.Higgs.P4, d.Pos.TauNeutrino.P4, d.Neg.TauNeutrino.P4, piPos, piNeg)
		r.set(NeutrinoPiTruth, phi, err)
	}

	phi, err = a.truthImpactParameter(d)
	r.set(PiPiTruth, phi, err)

	if !hasReco(ev) {
		return
	}
	phi, err = a.recoImpactParameter(ev)
	r.set(PiPiRecon, phi, err)
}

func (a *Analysis) leptonPion(r *recorder, ev *event.Event, d *decay.HiggsTauTau) {
	phi, err := leptonic(a.truthImpactParameter(d))
	r.set(LeptPiTruth, phi, err)

	if !hasReco(ev) {
		return
	}
	phi, err = leptonic(a.recoLeptonPion(ev, d.Pos.Mode() == decay.Leptonic))
	r.set(LeptPiRecon, phi, err)
}

func (a *Analysis) rhoRho(r *recorder, ev *event.Event, d *decay.HiggsTauTau, truth, recon Branch) {
	phi, err := observable.RhoDecayPlane(
		d.Pos.Charged.P4, d.Pos.NeutralSum(),
		d.Neg.Charged.P4, d.Neg.NeutralSum(),
		d.Pos.Tau.P4.Add(d.Neg.Tau.P4))
	r.set(truth, phi, err)

	if !hasReco(ev) {
		return
	}
	phi, err = recoRhoDecayPlane(ev)
	r.set(recon, phi, err)
}

func (a *Analysis) pionRho(r *recorder, ev *event.Event, d *decay.HiggsTauTau) {
	phi, err := a.truthImpactParameterRho(d)
	r.set(PiRhoTruth, phi, err)

	if !hasReco(ev) {
		return
	}
	phi, err = a.recoImpactParameterRho(ev, d.Pos.Mode() == decay.Hadronic1P1N)
	r.set(PiRhoRecon, phi, err)
}

func (a *Analysis) leptonRho(r *recorder, d *decay.HiggsTauTau) {
	phi, err := leptonic(a.truthImpactParameterRho(d))
	r.set(LeptRhoTruth, phi, err)
}

// leptonic applies the π shift for the opposite spin analysing power of the
// leptonic decay.
func leptonic(phi float64, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	return geom.ShiftByPi(phi), nil
}

// truthImpactParameter evaluates the impact parameter method on the visible
// charged daughters, with impact parameters taken about the tau production
// vertices.
func (a *Analysis) truthImpactParameter(d *decay.HiggsTauTau) (float64, error) {
	pos, neg := visible(&d.Pos), visible(&d.Neg)
	ipPos, err := truthIP(pos, d.Pos.Tau)
	if err != nil {
		return 0, err
	}
	ipNeg, err := truthIP(neg, d.Neg.Tau)
	if err != nil {
		return 0, err
	}
	return a.Library.ImpactParameter(ipPos, ipNeg, pos.P4, neg.P4, pos.P4.Add(neg.P4))
}

func (a *Analysis) truthImpactParameterRho(d *decay.HiggsTauTau) (float64, error) {
	single, rho := &d.Pos, &d.Neg
	rhoPositive := d.Pos.Mode() == decay.Hadronic1P1N
	if rhoPositive {
		single, rho = rho, single
	}

	charged := visible(single)
	ip, err := truthIP(charged, single.Tau)
	if err != nil {
		return 0, err
	}
	neutral := rho.NeutralSum()
	frame := lorentz.Sum(charged.P4, rho.Charged.P4, neutral)
	return a.Library.ImpactParameterRho(ip, charged.P4, rho.Charged.P4, neutral, frame, rhoPositive)
}

func truthIP(p, tau *event.Particle) (r3.Vec, error) {
	return track.ImpactParameter(p.ProdVtx, p.P4.Vect(), tau.ProdVtx)
}

func (a *Analysis) recoImpactParameter(ev *event.Event) (float64, error) {
	jetPos, jetNeg, err := tauJets(ev)
	if err != nil {
		return 0, err
	}
	trkPos, ipPos, err := jetImpactParameter(ev, jetPos)
	if err != nil {
		return 0, err
	}
	trkNeg, ipNeg, err := jetImpactParameter(ev, jetNeg)
	if err != nil {
		return 0, err
	}
	frame := trkPos.P4.Add(trkNeg.P4)
	return a.Library.ImpactParameter(ipPos, ipNeg, trkPos.P4, trkNeg.P4, frame)
}

func (a *Analysis) recoLeptonPion(ev *event.Event, leptonPositive bool) (float64, error) {
	pv, ok := ev.PrimaryVertex()
	if !ok {
		return 0, ErrNoPrimaryVertex
	}
	jet := event.LeadingTauJet(ev.TauJets, !leptonPositive)
	if jet == nil {
		return 0, ErrNoTauJet
	}
	elec := event.LeadingElectron(ev.Electrons, leptonPositive)
	if elec == nil {
		return 0, ErrNoElectron
	}
	if jet.Vertex == nil {
		return 0, ErrNoJetVertex
	}
	if len(jet.Tracks) == 0 || len(elec.Tracks) == 0 {
		return 0, ErrNoJetTracks
	}
	if r3.Norm2(r3.Sub(*jet.Vertex, pv)) > MaxVertexDist2 {
		return 0, ErrVertexMismatch
	}

	ref := r3.Sub(*jet.Vertex, ev.BeamSpot)
	trkJet, trkElec := jet.Tracks[0], elec.Tracks[0]
	ipJet, err := track.TrackImpactParameter(trkJet, ref)
	if err != nil {
		return 0, err
	}
	ipElec, err := track.TrackImpactParameter(trkElec, ref)
	if err != nil {
		return 0, err
	}

	frame := jet.P4.Add(elec.P4)
	if leptonPositive {
		return a.Library.ImpactParameter(ipElec, ipJet, trkElec.P4, trkJet.P4, frame)
	}
	return a.Library.ImpactParameter(ipJet, ipElec, trkJet.P4, trkElec.P4, frame)
}

func recoRhoDecayPlane(ev *event.Event) (float64, error) {
	jetPos, jetNeg, err := tauJets(ev)
	if err != nil {
		return 0, err
	}
	return observable.RhoDecayPlane(
		jetPos.ChargedSum(), jetPos.NeutralSum(),
		jetNeg.ChargedSum(), jetNeg.NeutralSum(),
		jetPos.P4.Add(jetNeg.P4))
}

func (a *Analysis) recoImpactParameterRho(ev *event.Event, rhoPositive bool) (float64, error) {
	jetPos, jetNeg, err := tauJets(ev)
	if err != nil {
		return 0, err
	}
	single, rho := jetNeg, jetPos
	if !rhoPositive {
		single, rho = jetPos, jetNeg
	}
	trk, ip, err := jetImpactParameter(ev, single)
	if err != nil {
		return 0, err
	}
	charged, neutral := rho.ChargedSum(), rho.NeutralSum()
	frame := lorentz.Sum(trk.P4, charged, neutral)
	return a.Library.ImpactParameterRho(ip, trk.P4, charged, neutral, frame, rhoPositive)
}

// tauJets returns the leading positive and negative tau jets.
func tauJets(ev *event.Event) (pos, neg *event.TauJet, err error) {
	if len(ev.TauJets) < 2 {
		return nil, nil, ErrNoTauJets
	}
	pos = event.LeadingTauJet(ev.TauJets, true)
	neg = event.LeadingTauJet(ev.TauJets, false)
	if pos == nil || neg == nil {
		return nil, nil, ErrNoTauJet
	}
	return pos, neg, nil
}

// jetImpactParameter returns the leading track of jet and its impact
// parameter about the jet vertex.
func jetImpactParameter(ev *event.Event, jet *event.TauJet) (track.Track, r3.Vec, error) {
	if jet.Vertex == nil {
		return track.Track{}, r3.Vec{}, ErrNoJetVertex
	}
	if len(jet.Tracks) == 0 {
		return track.Track{}, r3.Vec{}, ErrNoJetTracks
	}
	trk := jet.Tracks[0]
	ip, err := track.TrackImpactParameter(trk, r3.Sub(*jet.Vertex, ev.BeamSpot))
	return trk, ip, err
}
