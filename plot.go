package phicp

import (
	"image/color"
	"math"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/phicp/analysis"
)

// LineColor returns the line color of the i-th overlaid histogram.
func LineColor(i int) color.Color {
	switch i % 6 {
	case 1:
		return color.RGBA{G: 160, A: 255}
	case 2:
		return color.RGBA{B: 255, A: 255}
	case 3:
		return color.RGBA{R: 255, B: 127, G: 127, A: 255}
	case 4:
		return color.RGBA{R: 255, A: 255}
	case 5:
		return color.RGBA{R: 127, B: 255, A: 255}
	}
	return color.RGBA{A: 255}
}

// Overlay draws histograms over φ_CP on shared axes.
type Overlay struct {
	*hplot.Plot
	n int
}

// NewOverlay returns an empty overlay with angular x ticks.
func NewOverlay(title string) *Overlay {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = "φ_CP"
	p.Y.Label.Text = "1/N dN/dφ_CP"
	p.X.Min, p.X.Max = 0, 2*math.Pi
	p.X.Tick.Marker = AngleTicks{}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	p.Legend.Top = true
	return &Overlay{Plot: p}
}

// Add draws h with the next line color. An empty label leaves it out of the
// legend.
func (o *Overlay) Add(h *hbook.H1D, label string) {
	hh := hplot.NewH1D(h)
	hh.LineStyle.Color = LineColor(o.n)
	hh.LineStyle.Width = vg.Points(1.5)
	o.Plot.Add(hh)
	if label != "" {
		o.Legend.Add(label, hh)
	}
	o.n++
}

// Len returns the number of histograms drawn.
func (o *Overlay) Len() int { return o.n }

// SaveAll writes the plot to stem.<format> for every format and returns the
// file names written.
func (o *Overlay) SaveAll(width, height vg.Length, stem string, formats []string) ([]string, error) {
	var files []string
	for _, f := range formats {
		name := stem + "." + strings.ToLower(f)
		if err := o.Save(width, height, name); err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

// Group is a set of branches drawn on one plot.
type Group struct {
	Name     string
	Title    string
	Branches []analysis.Branch
	Labels   []string
}

// Label returns the legend entry of br, or its branch name.
func (g Group) Label(br analysis.Branch) string {
	for i, b := range g.Branches {
		if b == br && i < len(g.Labels) {
			return g.Labels[i]
		}
	}
	return br.String()
}

// Groups are the standard plots: the three truth-level methods in the
// 1p0n-1p0n channel, then truth against reconstruction per channel.
var Groups = []Group{
	{
		Name:     "methods_1p0n_1p0n",
		Title:    "τ±→π±ν",
		Branches: []analysis.Branch{analysis.TauPiTruth, analysis.NeutrinoPiTruth, analysis.PiPiTruth},
		Labels:   []string{"τ decay planes", "ν decay planes", "impact parameters"},
	},
	truthReco("1p0n_1p0n", "τ±→π±ν", analysis.PiPiTruth, analysis.PiPiRecon),
	truthReco("lept_1p0n", "τ→ℓνν, τ→πν", analysis.LeptPiTruth, analysis.LeptPiRecon),
	truthReco("1p1n_1p1n", "τ±→ρ±ν", analysis.RhoRhoTruth, analysis.RhoRhoRecon),
	truthReco("1p1n_1pXn", "τ±→π±nπ0ν", analysis.RhoRhoXTruth, analysis.RhoRhoXRecon),
	truthReco("1p0n_1p1n", "τ→πν, τ→ρν", analysis.PiRhoTruth, analysis.PiRhoRecon),
	{
		Name:     "lept_1p1n",
		Title:    "τ→ℓνν, τ→ρν",
		Branches: []analysis.Branch{analysis.LeptRhoTruth},
		Labels:   []string{"truth"},
	},
}

func truthReco(name, title string, truth, reco analysis.Branch) Group {
	return Group{
		Name:     name,
		Title:    title,
		Branches: []analysis.Branch{truth, reco},
		Labels:   []string{"truth", "reco"},
	}
}
