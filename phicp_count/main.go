package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/phicp"
	"github.com/decibelcooper/phicp/analysis"
)

var (
	title  = flag.String("title", "", "plot title")
	prefix = flag.String("prefix", "", "output file prefix, no plot if empty")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-files>...

Counts the entries of the `+phicp.TreeName+` tree and the fraction of them with
each observable defined.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	branches := analysis.Branches()

	p := hplot.New()
	p.Title.Text = *title
	p.Y.Label.Text = "fraction defined"
	p.Y.Tick.Marker = phicp.PreciseTicks{NSuggestedTicks: 5}
	p.X.Tick.Marker = branchTicks(branches)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = -1
	p.X.Min, p.X.Max = -0.5, float64(len(branches))-0.5
	p.Legend.Top = true

	for i, filename := range flag.Args() {
		c, err := phicp.CountTree(filename)
		if err != nil {
			log.Fatal(err)
		}
		printCounts(filename, c)

		points := make(plotter.XYs, len(branches))
		xErrors := make(plotter.XErrors, len(branches))
		yErrors := make(plotter.YErrors, len(branches))
		for j, br := range branches {
			frac, sigma := c.Fraction(br)
			points[j].X = float64(j)
			points[j].Y = frac
			xErrors[j].Low, xErrors[j].High = 0.3, 0.3
			yErrors[j].Low, yErrors[j].High = sigma, sigma
		}
		errPoints := plotutil.ErrorPoints{XYs: points, XErrors: xErrors, YErrors: yErrors}
		xerr, err := plotter.NewXErrorBars(errPoints)
		if err != nil {
			log.Fatal(err)
		}
		yerr, err := plotter.NewYErrorBars(errPoints)
		if err != nil {
			log.Fatal(err)
		}

		marks, err := plotter.NewScatter(points)
		if err != nil {
			log.Fatal(err)
		}

		pointColor := phicp.LineColor(i)
		xerr.LineStyle.Color = pointColor
		yerr.LineStyle.Color = pointColor
		marks.Color = pointColor

		p.Add(xerr, yerr, marks)
		if flag.NArg() > 1 {
			p.Legend.Add(strings.TrimSuffix(filename, ".root"), marks)
		}
	}

	if *prefix == "" {
		return
	}
	for _, ext := range []string{".pdf", ".png"} {
		if err := p.Save(8*vg.Inch, 5*vg.Inch, *prefix+ext); err != nil {
			log.Fatal(err)
		}
	}
}

func printCounts(filename string, c *phicp.Counts) {
	fmt.Printf("%s: %d entries\n", filename, c.Entries)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, br := range analysis.Branches() {
		frac, _ := c.Fraction(br)
		fmt.Fprintf(tw, "  %v\t%d / %d\t(%5.1f%%)\n", br, c.Filled[br], c.Entries, 100*frac)
	}
	tw.Flush()
}

func branchTicks(branches []analysis.Branch) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(branches))
	for i, br := range branches {
		ticks[i] = plot.Tick{Value: float64(i), Label: strings.TrimPrefix(br.String(), "phiCP_")}
	}
	return ticks
}
