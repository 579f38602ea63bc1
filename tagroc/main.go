package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"go-hep.org/x/hep/csvutil"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/flavourtag/tagplot"
	"github.com/flavourtag/tagplot/gendata"
)

var (
	title      = flag.String("title", "", "plot title")
	output     = flag.String("output", "roc.png", "output file")
	resolution = flag.Int("resolution", 100, "number of signal efficiency working points")
	effMin     = flag.Float64("mineff", 0.5, "minimum signal efficiency")
	effMax     = flag.Float64("maxeff", 1.0, "maximum signal efficiency")
	demo       = flag.Bool("demo", false, "plot two generated dummy taggers instead of input files")
	dists      = flag.String("dists", "", "also write a discriminant distribution overlay to this file")
	distBins   = flag.Int("distbins", 50, "number of discriminant distribution bins")
	labels     tagplot.StringArrayFlags
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <score-csv-files>...

Each input row is one jet:
	disc,is_signal
Lines starting with # are skipped.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(&labels, "label", "legend label (may be given once per input)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 && !*demo {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	p, err := plot.New()
	if err != nil {
		log.Fatal(err)
	}
	p.Title.Text = *title
	p.X.Label.Text = "signal efficiency"
	p.Y.Label.Text = "background rejection"
	p.X.Tick.Marker = tagplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = tagplot.LogTicks{}
	p.Y.Scale = tagplot.LogScale{}

	sigEffs := tagplot.SigEffGrid(*effMin, *effMax, *resolution)

	var sets []scoreSet
	if *demo {
		good, bad := gendata.TwoTaggers(20000, 42)
		for _, t := range []gendata.TaggerSample{good, bad} {
			sets = append(sets, scoreSet{sig: t.SigDisc, bkg: t.BkgDisc, label: t.Name})
		}
	}
	for i, filename := range flag.Args() {
		sig, bkg, err := readScores(filename)
		if err != nil {
			log.Fatal(err)
		}
		label := filename
		if i < len(labels.Array) {
			label = labels.Array[i]
		}
		sets = append(sets, scoreSet{sig: sig, bkg: bkg, label: label})
	}

	for i, set := range sets {
		pts, err := tagplot.RejectionCurve(set.sig, set.bkg, sigEffs)
		if err != nil {
			log.Fatal(err)
		}
		if err := rocCurve(pts, set.label).AddTo(p, i); err != nil {
			log.Fatal(err)
		}
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}

	if *dists != "" {
		if err := saveDists(sets, *dists); err != nil {
			log.Fatal(err)
		}
	}
}

type scoreSet struct {
	sig, bkg []float64
	label    string
}

// saveDists overlays one signal and one background discriminant
// histogram per score set, outline-only, curve colours matching the ROC
// overlay order.
func saveDists(sets []scoreSet, output string) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = *title
	p.X.Label.Text = "discriminant"
	p.X.Tick.Marker = tagplot.PreciseTicks{NSuggestedTicks: 5}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, set := range sets {
		for _, scores := range [][]float64{set.sig, set.bkg} {
			if len(scores) == 0 {
				continue
			}
			lo = math.Min(lo, floats.Min(scores))
			hi = math.Max(hi, floats.Max(scores))
		}
	}

	for i, set := range sets {
		sigHist, err := tagplot.ScoreDist(set.sig, *distBins, lo, hi)
		if err != nil {
			return err
		}
		bkgHist, err := tagplot.ScoreDist(set.bkg, *distBins, lo, hi)
		if err != nil {
			return err
		}
		sigLine := tagplot.DistLine(sigHist, i)
		bkgLine := tagplot.DistLine(bkgHist, i)
		bkgLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(sigLine, bkgLine)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, output)
}

func rocCurve(pts plotter.XYs, label string) tagplot.FractionScan {
	x := make([]float64, len(pts))
	y := make([]float64, len(pts))
	for i, pt := range pts {
		x[i] = pt.X
		y[i] = pt.Y
	}
	c, err := tagplot.NewFractionScan(x, y, label)
	if err != nil {
		log.Fatal(err)
	}
	return *c
}

func readScores(filename string) (sig, bkg []float64, err error) {
	tbl, err := csvutil.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer tbl.Close()
	tbl.Reader.Comma = ','
	tbl.Reader.Comment = '#'

	rows, err := tbl.ReadRows(0, -1)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	defer rows.Close()

	for rows.Next() {
		data := struct {
			Disc     float64
			IsSignal int
		}{}
		if err := rows.Scan(&data); err != nil {
			return nil, nil, fmt.Errorf("scanning %s: %w", filename, err)
		}
		if data.IsSignal != 0 {
			sig = append(sig, data.Disc)
		} else {
			bkg = append(bkg, data.Disc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return sig, bkg, nil
}
