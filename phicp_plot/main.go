package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/phicp"
	"github.com/decibelcooper/phicp/analysis"
	"github.com/decibelcooper/phicp/config"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-files>...

Overlays the normalised phi_CP distributions of one or more phicp_truth
outputs, one plot per branch.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		configFile = flag.String("config", "", "YAML configuration file")
		nBins      = flag.Int("nbins", 0, "number of bins in phi_CP (default from config)")
		title      = flag.String("title", "", "plot title (default: branch name)")
		output     = flag.String("output", "phicp", "output file stem, the branch name and format are appended")
		formats    phicp.ListFlags
		branches   phicp.BranchFlags
	)
	flag.Var(&formats, "format", "plot file format, repeatable (default from config: png,pdf)")
	flag.Var(&branches, "branch", "branch to plot, repeatable (default: every branch with entries)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *nBins > 0 {
		cfg.Plot.Bins = *nBins
	}
	if formats.IsSet() {
		cfg.Plot.Formats = formats.List
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var bookings []*phicp.Booking
	for _, filename := range flag.Args() {
		b, err := phicp.ReadBooking(filename, cfg.Plot.Bins)
		if err != nil {
			log.Fatal(err)
		}
		bookings = append(bookings, b)
	}

	selected := branches.Branches
	if len(selected) == 0 {
		selected = analysis.Branches()
	}

	w, h := vg.Length(cfg.Plot.Width)*vg.Centimeter, vg.Length(cfg.Plot.Height)*vg.Centimeter
	for _, br := range selected {
		plotTitle := *title
		if plotTitle == "" {
			plotTitle = br.String()
		}
		o := phicp.NewOverlay(plotTitle)

		for i, b := range bookings {
			hist := b.Hists[br]
			if err := phicp.Normalize(hist); err != nil {
				log.Printf("%s: skipping %v: %v", flag.Arg(i), br, err)
				continue
			}
			label := ""
			if len(bookings) > 1 {
				label = strings.TrimSuffix(filepath.Base(flag.Arg(i)), ".root")
			}
			o.Add(hist, label)
		}
		if o.Len() == 0 {
			continue
		}

		files, err := o.SaveAll(w, h, *output+"_"+br.String(), cfg.Plot.Formats)
		if err != nil {
			log.Fatal(err)
		}
		for _, f := range files {
			log.Printf("wrote %s", f)
		}
	}
}
