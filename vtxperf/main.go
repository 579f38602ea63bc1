package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/csvutil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/flavourtag/tagplot"
	"github.com/flavourtag/tagplot/gendata"
	"github.com/flavourtag/tagplot/vertexing"
)

var (
	title      = flag.String("title", "", "plot title")
	prefix     = flag.String("prefix", "vtx", "output file prefix")
	nBins      = flag.Int("nbins", 20, "number of bins")
	pTMin      = flag.Float64("minpt", 20, "minimum jet pT (GeV)")
	pTMax      = flag.Float64("maxpt", 250, "maximum jet pT (GeV)")
	inclusive  = flag.Bool("incl", false, "merge heavy-flavour vertices into one inclusive vertex")
	trackLevel = flag.Bool("tracklevel", false, "count matched tracks instead of matched vertices")
	demo       = flag.Bool("demo", false, "run on a generated dummy sample instead of input files")
	cpuProf    = flag.Bool("cpuprofile", false, "write a CPU profile")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <track-csv-files>...

Each input row is one real track slot:
	jet,pt,flavour,truth_vertex,reco_vertex,truth_origin
Lines starting with # are skipped.

options:
`,
	)
	flag.PrintDefaults()
}

// sample is one file's worth of per-jet data: aligned truth and reco
// vertex index rows plus the jet performance variable.
type sample struct {
	pt     []float64
	truth  [][]int
	reco   [][]int
	origin [][]int
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 && !*demo {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *cpuProf {
		defer profile.Start().Stop()
	}

	var samples []sample
	if *demo {
		samples = append(samples, demoSample())
	}
	for _, filename := range flag.Args() {
		s, err := readSample(filename)
		if err != nil {
			log.Fatal(err)
		}
		samples = append(samples, s)
	}

	plots := []struct {
		mode   tagplot.VtxMode
		name   string
		ylabel string
	}{
		{tagplot.VtxEfficiency, "eff", "n match / n true"},
		{tagplot.VtxPurity, "purity", "n match / n reco"},
		{tagplot.VtxTotalReco, "nreco", "n reco"},
	}

	for _, pl := range plots {
		p, err := plot.New()
		if err != nil {
			log.Fatal(err)
		}
		p.Title.Text = *title
		p.X.Label.Text = "jet pT (GeV)"
		p.Y.Label.Text = pl.ylabel
		p.X.Tick.Marker = tagplot.PreciseTicks{NSuggestedTicks: 5}
		p.Y.Tick.Marker = tagplot.PreciseTicks{NSuggestedTicks: 5}

		for i, s := range samples {
			truth, reco := s.cleaned()
			metrics, err := vertexing.VertexMetrics(reco, truth)
			if err != nil {
				log.Fatal(err)
			}
			num, den, err := tagplot.VertexCounts(metrics, pl.mode, *trackLevel)
			if err != nil {
				log.Fatal(err)
			}

			prof := tagplot.NewVarProfile(*nBins, *pTMin, *pTMax)
			if err := prof.FillCounts(s.pt, num, den); err != nil {
				log.Fatal(err)
			}
			xerr, yerr, err := prof.ErrorBars(tagplot.CurveColor(i))
			if err != nil {
				log.Fatal(err)
			}
			p.Add(xerr)
			p.Add(yerr)
		}

		out := fmt.Sprintf("%s_%s.png", *prefix, pl.name)
		if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
			log.Fatal(err)
		}
	}
}

// cleaned applies the standard index cleaning recipe: drop truth indices
// from the primary vertex and from PV/PU/fake-origin tracks, then merge
// the heavy-flavour ones when inclusive vertexing is requested. Reco
// indices carry no origin prediction here, so inclusive mode merges every
// assigned reco index.
func (s sample) cleaned() (truth, reco [][]int) {
	removeCond := make([][]bool, len(s.truth))
	for i, row := range s.truth {
		cond := make([]bool, len(row))
		for j, v := range row {
			o := s.origin[i][j]
			cond[j] = v == 0 || o == 0 || o == 1 || o == 2
		}
		removeCond[i] = cond
	}
	truth, err := vertexing.CleanIndices(s.truth, removeCond, vertexing.CleanRemove)
	if err != nil {
		log.Fatal(err)
	}

	reco = s.reco
	if *inclusive {
		mergeCond := make([][]bool, len(truth))
		for i, row := range truth {
			cond := make([]bool, len(row))
			for j, v := range row {
				o := s.origin[i][j]
				cond[j] = v > 0 && o >= 3 && o <= 6
			}
			mergeCond[i] = cond
		}
		truth, err = vertexing.CleanIndices(truth, mergeCond, vertexing.CleanMerge)
		if err != nil {
			log.Fatal(err)
		}

		recoCond := make([][]bool, len(s.reco))
		for i, row := range s.reco {
			cond := make([]bool, len(row))
			for j, v := range row {
				cond[j] = v >= 0
			}
			recoCond[i] = cond
		}
		reco, err = vertexing.CleanIndices(s.reco, recoCond, vertexing.CleanMerge)
		if err != nil {
			log.Fatal(err)
		}
	}
	return truth, reco
}

func readSample(filename string) (sample, error) {
	var s sample

	tbl, err := csvutil.Open(filename)
	if err != nil {
		return s, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer tbl.Close()
	tbl.Reader.Comma = ','
	tbl.Reader.Comment = '#'

	rows, err := tbl.ReadRows(0, -1)
	if err != nil {
		return s, fmt.Errorf("reading %s: %w", filename, err)
	}
	defer rows.Close()

	jetOf := make(map[int]int)
	for rows.Next() {
		data := struct {
			Jet     int
			PT      float64
			Flavour int
			Truth   int
			Reco    int
			Origin  int
		}{}
		if err := rows.Scan(&data); err != nil {
			return s, fmt.Errorf("scanning %s: %w", filename, err)
		}

		i, ok := jetOf[data.Jet]
		if !ok {
			i = len(s.pt)
			jetOf[data.Jet] = i
			s.pt = append(s.pt, data.PT)
			s.truth = append(s.truth, nil)
			s.reco = append(s.reco, nil)
			s.origin = append(s.origin, nil)
		}
		s.truth[i] = append(s.truth[i], data.Truth)
		s.reco[i] = append(s.reco[i], data.Reco)
		s.origin[i] = append(s.origin[i], data.Origin)
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("reading %s: %w", filename, err)
	}
	return s, nil
}

// demoSample runs the full truth-matching pipeline over a generated batch
// and smears the resulting truth assignment into a mock reconstruction.
func demoSample() sample {
	batch := gendata.Batch(5000, 12, 3, 17)
	rel, err := vertexing.ResolveHadrons(&batch.Hadrons, slog.Default())
	if err != nil {
		log.Fatal(err)
	}
	assoc, err := vertexing.AssociateTracks(batch, rel, vertexing.AssocOptions{DropBadJets: true})
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(1))
	var s sample
	for n, i := range assoc.JetIndex {
		width := len(batch.Tracks.ParentBarcode[i])
		truth := make([]int, width)
		reco := make([]int, width)
		origin := make([]int, width)
		for j := 0; j < width; j++ {
			truth[j] = vertexing.NoIndex
			reco[j] = vertexing.NoIndex
			origin[j] = 3
		}
		for k, excl := range assoc.Exclusive[n] {
			for j, assigned := range excl {
				if !assigned {
					continue
				}
				truth[j] = k + 1
				// Reconstruction loses a handful of tracks.
				if rng.Float64() < 0.85 {
					reco[j] = k + 1
				}
			}
		}
		s.pt = append(s.pt, batch.Jets.PT[i])
		s.truth = append(s.truth, truth)
		s.reco = append(s.reco, reco)
		s.origin = append(s.origin, origin)
	}
	return s
}
