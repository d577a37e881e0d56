package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/phicp"
	"github.com/decibelcooper/phicp/analysis"
)

var (
	channel = flag.String("channel", "1p0n_1p0n", "channel with truth and reco branches: "+strings.Join(channels(), ", "))
	nBins   = flag.Int("nbins", 20, "number of bins in phi_CP")
	zMax    = flag.Float64("zmax", 0.5, "maximum migration probability in the color map")
	title   = flag.String("title", "", "plot title")
	output  = flag.String("output", "migration.png", "output file")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-file>

Draws the migration between truth and reconstructed phi_CP for one channel.

options:
`,
	)
	flag.PrintDefaults()
}

func channels() []string {
	var names []string
	for _, g := range phicp.Groups {
		if len(g.Branches) == 2 && strings.HasSuffix(g.Branches[1].String(), "_recon") {
			names = append(names, g.Name)
		}
	}
	return names
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	var truth, reco analysis.Branch = -1, -1
	for _, g := range phicp.Groups {
		if g.Name == *channel && len(g.Branches) == 2 {
			truth, reco = g.Branches[0], g.Branches[1]
		}
	}
	if truth < 0 {
		log.Fatalf("unknown channel %q", *channel)
	}

	grid := phicp.NewMigration(*nBins)
	err := phicp.ReadTree(flag.Arg(0), func(_ uint64, vs analysis.Values) error {
		if vs[truth] >= 0 && vs[reco] >= 0 {
			grid.Fill(vs[truth], vs[reco])
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	if grid.Entries() == 0 {
		log.Fatalf("no events with both %v and %v", truth, reco)
	}
	log.Printf("%d events, %.1f%% within one bin of the diagonal", grid.Entries(), 100*grid.Diagonal())

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "truth φ_CP"
	p.Y.Label.Text = "reco φ_CP"
	p.X.Tick.Marker = phicp.AngleTicks{}
	p.Y.Tick.Marker = phicp.AngleTicks{}
	p.X.Min, p.X.Max = 0, 2*math.Pi
	p.Y.Min, p.Y.Max = 0, 2*math.Pi

	img := vgimg.New(670, 560)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(*zMax)
	pal := colorMap.Palette(1000)
	heatMap := plotter.NewHeatMap(grid, pal)
	heatMap.Min = 0
	heatMap.Max = *zMax
	p.Add(heatMap)

	p.Draw(dc0)

	p = plot.New()

	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0

	p.Draw(dc1)

	w, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		log.Panic(err)
	}
}
