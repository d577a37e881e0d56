package decay

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/phicp/event"
	"github.com/decibelcooper/phicp/event/eventtest"
	"github.com/decibelcooper/phicp/lorentz"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		counts [4]int
		want   Mode
	}{
		{[4]int{1, 0, 0, 2}, Leptonic},
		{[4]int{0, 1, 0, 1}, Hadronic1P0N},
		{[4]int{0, 1, 1, 1}, Hadronic1P1N},
		{[4]int{0, 1, 2, 1}, Hadronic1PXN},
		{[4]int{0, 1, 5, 1}, Hadronic1PXN},
		{[4]int{0, 3, 0, 0}, Hadronic3P0N},
		{[4]int{2, 2, 2, 2}, Unknown},
		{[4]int{0, 0, 0, 0}, Unknown},
		{[4]int{1, 0, 0, 1}, Unknown},
		{[4]int{0, 3, 0, 1}, Unknown},
		{[4]int{0, 1, 1, 2}, Unknown},
	} {
		c := tc.counts
		if got := ClassifyCounts(c[0], c[1], c[2], c[3]); got != tc.want {
			t.Errorf("%v: expected %v got %v", c, tc.want, got)
		}
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{
		Leptonic:     "lept",
		Hadronic1P0N: "1p0n",
		Hadronic1PXN: "1pXn",
		Unknown:      "unknown",
		Mode(42):     "unknown",
	} {
		if got := m.String(); got != want {
			t.Errorf("expected %q got %q", want, got)
		}
	}
}

func TestFindPionPion(t *testing.T) {
	var b eventtest.Builder
	h := b.Higgs(r3.Vec{X: 1000, Y: 2000, Z: 30000})
	pos, neg := b.TauPair(h, r3.Vec{X: 1, Y: 0.2, Z: 0.5})
	piPos, _ := b.PionDecay(pos, r3.Vec{Y: 1}, 2)
	piNeg, _ := b.PionDecay(neg, r3.Vec{X: -1, Z: 1}, 1)

	d, err := Find(b.Event(1))
	if err != nil {
		t.Fatal(err)
	}
	if d.Higgs != h || d.Pos.Tau != pos || d.Neg.Tau != neg {
		t.Fatal("wrong Higgs or taus")
	}
	if d.Pos.Charged != piPos || d.Neg.Charged != piNeg {
		t.Error("wrong charged pions")
	}
	if d.Pos.TauNeutrino == nil || d.Pos.TauNeutrino.PDG != -event.NuTau {
		t.Errorf("expected tau+ antineutrino got %+v", d.Pos.TauNeutrino)
	}
	if d.Neg.TauNeutrino == nil || d.Neg.TauNeutrino.PDG != event.NuTau {
		t.Errorf("expected tau- neutrino got %+v", d.Neg.TauNeutrino)
	}
	if p, n := d.Modes(); p != Hadronic1P0N || n != Hadronic1P0N {
		t.Errorf("expected 1p0n/1p0n got %v/%v", p, n)
	}
}

func TestFindFollowsTauCopies(t *testing.T) {
	var b eventtest.Builder
	h := b.Higgs(r3.Vec{Z: 5000})
	pos, neg := b.TauPair(h, r3.Vec{X: 1})
	posCopy := b.Copy(b.Copy(pos))
	b.RhoDecay(posCopy, r3.Vec{Y: 1}, r3.Vec{Z: 1}, 1, 1)
	b.LeptonDecay(neg, r3.Vec{Z: 1}, r3.Vec{X: 1}, 1)

	d, err := Find(b.Event(2))
	if err != nil {
		t.Fatal(err)
	}
	if d.Pos.Tau != pos {
		t.Error("expected the tau attached to the Higgs")
	}
	if p, n := d.Modes(); p != Hadronic1P1N || n != Leptonic {
		t.Errorf("expected 1p1n/lept got %v/%v", p, n)
	}
	if d.Neg.Lepton == nil || d.Neg.Lepton.PDG != event.ElectronPDG {
		t.Errorf("expected electron got %+v", d.Neg.Lepton)
	}
	if len(d.Pos.Neutrals) != 1 {
		t.Errorf("expected one neutral pion got %d", len(d.Pos.Neutrals))
	}
}

func TestNeutralSum(t *testing.T) {
	var b eventtest.Builder
	h := b.Higgs(r3.Vec{})
	pos, neg := b.TauPair(h, r3.Vec{X: 1, Y: 1})
	b.RhoDecay(pos, r3.Vec{Y: 1}, r3.Vec{Z: 1}, 3, 1)
	b.PionDecay(neg, r3.Vec{X: 1}, 1)

	d, err := Find(b.Event(3))
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Pos.Mode(); got != Hadronic1PXN {
		t.Fatalf("expected 1pXn got %v", got)
	}

	var want lorentz.Vec
	for _, n := range d.Pos.Neutrals {
		if !n.P4.IsFinite() {
			t.Fatalf("non-finite neutral pion %v", n.P4)
		}
		want = want.Add(n.P4)
	}
	if got := d.Pos.NeutralSum(); got != want {
		t.Errorf("expected %v got %v", want, got)
	}
	if got, want := d.Neg.Visible(), d.Neg.Charged.P4; got != want {
		t.Errorf("expected visible %v got %v", want, got)
	}
	if m := math.Sqrt(d.Pos.Visible().M2()); math.Abs(m-eventtest.MRho) > 1e-6*eventtest.MRho {
		t.Errorf("expected visible mass %v got %v", eventtest.MRho, m)
	}
	if !d.Neg.NeutralSum().IsZero() {
		t.Error("expected no neutral pions on the tau- side")
	}
}

func TestFindErrors(t *testing.T) {
	t.Run("no-higgs", func(t *testing.T) {
		var b eventtest.Builder
		z := b.Add(23, lorentz.New(0, 0, 0, 91187), r3.Vec{}, nil)
		b.Add(event.Tau, lorentz.New(0, 0, 1000, 2000), r3.Vec{}, z)
		if _, err := Find(b.Event(0)); !errors.Is(err, ErrNoHiggs) {
			t.Errorf("expected ErrNoHiggs got %v", err)
		}
	})
	t.Run("one-tau", func(t *testing.T) {
		var b eventtest.Builder
		h := b.Higgs(r3.Vec{})
		b.Add(event.Tau, lorentz.New(0, 0, 1000, 2000), r3.Vec{}, h)
		if _, err := Find(b.Event(0)); !errors.Is(err, ErrNoTauPair) {
			t.Errorf("expected ErrNoTauPair got %v", err)
		}
	})
	t.Run("three-taus", func(t *testing.T) {
		var b eventtest.Builder
		h := b.Higgs(r3.Vec{})
		b.TauPair(h, r3.Vec{Z: 1})
		b.Add(event.Tau, lorentz.New(0, 0, 1000, 2000), r3.Vec{}, h)
		if _, err := Find(b.Event(0)); !errors.Is(err, ErrNoTauPair) {
			t.Errorf("expected ErrNoTauPair got %v", err)
		}
	})
}
