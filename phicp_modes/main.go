package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/phicp"
	"github.com/decibelcooper/phicp/analysis"
	"github.com/decibelcooper/phicp/decay"
	"github.com/decibelcooper/phicp/event"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <proio-input-files>...

Classifies the tau decays of H -> tau tau truth events, prints the number of
events per channel and plots the visible mass of each tau decay mode.

options:
`,
	)
	flag.PrintDefaults()
}

var modes = []decay.Mode{
	decay.Leptonic,
	decay.Hadronic1P0N,
	decay.Hadronic1P1N,
	decay.Hadronic1PXN,
	decay.Hadronic3P0N,
}

func main() {
	var (
		tag       = flag.String("tag", "Particle", "proio tag of the truth particles")
		nBins     = flag.Int("nbins", 60, "number of bins in visible mass")
		massMax   = flag.Float64("maxmass", 1.8, "upper edge of the visible mass axis (GeV)")
		title     = flag.String("title", "", "plot title")
		output    = flag.String("output", "modes.png", "output file")
		doProfile = flag.Bool("profile", false, "write a CPU profile")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *doProfile {
		defer profile.Start().Stop()
	}

	hists := make(map[decay.Mode]*hbook.H1D)
	for _, m := range modes {
		hists[m] = hbook.NewH1D(*nBins, 0, *massMax)
	}
	channels := make(map[string]int)
	var excluded, total int

	for _, filename := range flag.Args() {
		events := make(chan *event.Event)
		errc := make(chan error, 1)
		go func() {
			defer close(events)
			_, err := event.ReadProio(context.Background(), filename, *tag, 0, events)
			errc <- err
		}()

		for ev := range events {
			total++
			d, err := decay.Find(ev)
			if err != nil {
				excluded++
				continue
			}
			pos, neg := d.Modes()
			channels[analysis.ChannelName(pos, neg)]++
			for _, ps := range []*decay.Products{&d.Pos, &d.Neg} {
				if h, ok := hists[ps.Mode()]; ok {
					h.Fill(math.Sqrt(math.Max(ps.Visible().M2(), 0))/event.GeV, 1)
				}
			}
		}
		if err := <-errc; err != nil {
			log.Fatal(err)
		}
	}

	printChannels(channels, total, excluded)

	p := hplot.New()
	p.Title.Text = *title
	p.X.Label.Text = "visible mass (GeV)"
	p.X.Tick.Marker = phicp.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}
	p.Legend.Top = true

	for i, m := range modes {
		hist := hists[m]
		if hist.Entries() == 0 {
			continue
		}
		h := hplot.NewH1D(hist, hplot.WithLogY(true))
		h.FillColor = nil
		h.LineStyle.Color = phicp.LineColor(i)
		h.Infos.Style = hplot.HInfoNone
		p.Add(h)
		p.Legend.Add(m.String(), h)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}

func printChannels(channels map[string]int, total, excluded int) {
	if total == 0 {
		log.Print("no events")
		return
	}
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return channels[names[i]] > channels[names[j]] })

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "channel\tevents\tfraction\t\n")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t\n", name, channels[name], float64(channels[name])/float64(total))
	}
	fmt.Fprintf(tw, "no H->tautau\t%d\t%.3f\t\n", excluded, float64(excluded)/float64(total))
	tw.Flush()
}
