package phicp

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// Migration is the truth against reconstructed φ_CP matrix of one channel.
// It implements plotter.GridXYZ with every truth column normalised to unit
// sum, so Z(i, j) is the probability that an event in truth bin i is
// reconstructed in bin j.
type Migration struct {
	h     *hbook.H2D
	nBins int
}

// NewMigration returns an empty nBins×nBins matrix over [0, 2π)².
func NewMigration(nBins int) *Migration {
	return &Migration{
		h:     hbook.NewH2D(nBins, 0, 2*math.Pi, nBins, 0, 2*math.Pi),
		nBins: nBins,
	}
}

// Fill adds one event.
func (m *Migration) Fill(truth, reco float64) {
	m.h.Fill(truth, reco, 1)
}

// Entries returns the number of events filled.
func (m *Migration) Entries() int64 { return m.h.Entries() }

func (m *Migration) Dims() (c, r int) { return m.nBins, m.nBins }

func (m *Migration) Z(c, r int) float64 {
	g := m.h.GridXYZ()
	var col float64
	for j := 0; j < m.nBins; j++ {
		col += g.Z(c, j)
	}
	if col == 0 {
		return 0
	}
	return g.Z(c, r) / col
}

func (m *Migration) X(c int) float64 { return m.h.GridXYZ().X(c) }

func (m *Migration) Y(r int) float64 { return m.h.GridXYZ().Y(r) }

// Diagonal returns the fraction of events reconstructed in their truth bin or
// in a neighbouring one, counting the first and last bins as neighbours.
func (m *Migration) Diagonal() float64 {
	g := m.h.GridXYZ()
	var diag, total float64
	for i := 0; i < m.nBins; i++ {
		for j := 0; j < m.nBins; j++ {
			z := g.Z(i, j)
			total += z
			d := abs(i - j)
			if d <= 1 || d == m.nBins-1 {
				diag += z
			}
		}
	}
	if total == 0 {
		return 0
	}
	return diag / total
}
