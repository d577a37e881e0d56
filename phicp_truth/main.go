package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/phicp"
	"github.com/decibelcooper/phicp/analysis"
	"github.com/decibelcooper/phicp/config"
	"github.com/decibelcooper/phicp/event"
)

var (
	configFile = flag.String("config", "", "YAML configuration file")
	tag        = flag.String("tag", "", "proio tag of the truth particles")
	workers    = flag.Int("workers", 0, "number of analysis goroutines")
	projection = flag.String("projection", "", "impact parameter projection: after-boost or before-boost")
	nBins      = flag.Int("nbins", 0, "number of bins in phi_CP")
	output     = flag.String("output", "", "output ROOT file")
	plotDir    = flag.String("plots", "", "directory for plots (none if empty)")
	verbose    = flag.Bool("v", false, "log every excluded event and skipped observable")
	doProfile  = flag.Bool("profile", false, "write a CPU profile")
	formats    phicp.ListFlags
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <proio-input-files>...

Computes the phi_CP observables of H -> tau tau events and writes them to the
tree `+phicp.TreeName+` of a ROOT file, together with one histogram per
observable.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(&formats, "format", "plot file format, repeatable (default from config: png,pdf)")
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
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if *doProfile {
		defer profile.Start().Stop()
	}

	var logger *log.Logger
	if cfg.Analysis.Verbose {
		logger = log.New(os.Stderr, "phicp_truth: ", log.LstdFlags)
	}
	a := analysis.New(cfg.Library(), logger)

	tw, err := phicp.CreateTree(cfg.Output.File)
	if err != nil {
		log.Fatal(err)
	}
	booking := phicp.NewBooking(cfg.Plot.Bins)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan *event.Event, cfg.Analysis.Workers)
	readErr := make(chan error, 1)
	go func() {
		defer close(events)
		var n uint64
		for _, filename := range flag.Args() {
			nFile, err := event.ReadProio(ctx, filename, cfg.Input.Tag, n, events)
			if err != nil {
				readErr <- fmt.Errorf("%s: %w", filename, err)
				return
			}
			n += nFile
		}
		readErr <- nil
	}()

	err = a.Run(ctx, events, cfg.Analysis.Workers, func(r analysis.Result) error {
		booking.Fill(r)
		return tw.Write(r)
	})
	cancel()
	if rerr := <-readErr; err == nil {
		err = rerr
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := tw.Close(booking.Hists[:]...); err != nil {
		log.Fatal(err)
	}
	booking.Cutflow.WriteTo(os.Stderr)

	if *plotDir != "" {
		if err := makePlots(booking, cfg); err != nil {
			log.Fatal(err)
		}
	}
}

func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tag":
			cfg.Input.Tag = *tag
		case "workers":
			cfg.Analysis.Workers = *workers
		case "projection":
			cfg.Analysis.Projection = *projection
		case "nbins":
			cfg.Plot.Bins = *nBins
		case "output":
			cfg.Output.File = *output
		case "v":
			cfg.Analysis.Verbose = *verbose
		case "format":
			cfg.Plot.Formats = formats.List
		}
	})
}

func makePlots(booking *phicp.Booking, cfg *config.Config) error {
	if err := os.MkdirAll(*plotDir, 0o755); err != nil {
		return err
	}
	for _, br := range analysis.Branches() {
		if err := phicp.Normalize(booking.Hists[br]); err != nil {
			log.Printf("skipping %v: %v", br, err)
		}
	}

	w, h := vg.Length(cfg.Plot.Width)*vg.Centimeter, vg.Length(cfg.Plot.Height)*vg.Centimeter
	for _, g := range phicp.Groups {
		o := phicp.NewOverlay(g.Title)
		for _, br := range g.Branches {
			if booking.Hists[br].Entries() == 0 {
				continue
			}
			o.Add(booking.Hists[br], g.Label(br))
		}
		if o.Len() == 0 {
			continue
		}
		files, err := o.SaveAll(w, h, filepath.Join(*plotDir, g.Name), cfg.Plot.Formats)
		if err != nil {
			return err
		}
		for _, f := range files {
			log.Printf("wrote %s", f)
		}
	}
	return nil
}
