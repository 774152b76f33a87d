//go:build analysis

// Command analysis generates a long keystream and reports how uniformly the
// PRF outputs cover Z_p: summary statistics, a chi-square score against the
// uniform distribution, and an HTML histogram of symbol frequencies.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"LWR-PRF/lwrprf"
	"LWR-PRF/prof"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type summaryStats struct {
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	Std       float64 `json:"std"`
	Min       uint64  `json:"min"`
	Max       uint64  `json:"max"`
	ChiSquare float64 `json:"chi_square"`
	DoF       int     `json:"degrees_of_freedom"`
}

func computeStats(ks []uint64, p uint64) summaryStats {
	st := summaryStats{Count: len(ks), Min: p}
	if len(ks) == 0 {
		return st
	}
	counts := make([]int, p)
	var sum float64
	for _, v := range ks {
		counts[v]++
		sum += float64(v)
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	st.Mean = sum / float64(len(ks))
	if len(ks) > 1 {
		var m2 float64
		for _, v := range ks {
			d := float64(v) - st.Mean
			m2 += d * d
		}
		st.Std = math.Sqrt(m2 / float64(len(ks)-1))
	}
	expected := float64(len(ks)) / float64(p)
	for _, c := range counts {
		d := float64(c) - expected
		st.ChiSquare += d * d / expected
	}
	st.DoF = int(p) - 1
	return st
}

func symbolCounts(ks []uint64, p uint64) []int {
	counts := make([]int, p)
	for _, v := range ks {
		counts[v]++
	}
	return counts
}

func toBarItems(vals []int) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func newFrequencyChart(title string, counts []int, stats summaryStats) *charts.Bar {
	xLabels := make([]string, len(counts))
	for i := range counts {
		xLabels[i] = fmt.Sprintf("%d", i)
	}
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("samples=%d, mean=%.3f, std=%.3f, chi2=%.2f (dof=%d)",
		stats.Count, stats.Mean, stats.Std, stats.ChiSquare, stats.DoF)
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(xLabels).
		AddSeries("count", toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func main() {
	n := flag.Int("n", 445, "secret-key dimension n")
	ringDim := flag.Uint64("N", 2048, "ring dimension N (power of two)")
	p := flag.Uint64("p", 32, "plaintext modulus p")
	keyFile := flag.String("key", "secret_key.json", "secret key file")
	seed := flag.Uint64("seed", 42, "deterministic key seed")
	nonce := flag.String("nonce", "analysis_nonce", "keystream nonce")
	samples := flag.Int("samples", 1<<14, "keystream length to analyse")
	outDir := flag.String("out", "Analysis_Reports", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	params := lwrprf.Params{Dim: *n, RingDim: *ringDim, P: *p}
	client, err := lwrprf.Open(params, lwrprf.KeyStoreOptions{
		Path: *keyFile,
		Seed: lwrprf.SeedUint64(*seed),
	})
	if err != nil {
		log.Fatalf("open client: %v", err)
	}

	start := time.Now()
	ks, err := client.EvaluateMany([]byte(*nonce), *samples)
	prof.Track(start, "keystream")
	if err != nil {
		log.Fatalf("keystream: %v", err)
	}

	stats := computeStats(ks, *p)
	counts := symbolCounts(ks, *p)

	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("keystream_stats_%s.json", ts))
	if err := saveJSON(jsonPath, stats); err != nil {
		log.Printf("warn: save stats: %v", err)
	}

	page := components.NewPage()
	page.AddCharts(newFrequencyChart(
		fmt.Sprintf("keystream symbol frequencies (n=%d, N=%d, p=%d)", *n, *ringDim, *p),
		counts, stats))

	htmlPath := filepath.Join(*outDir, fmt.Sprintf("keystream_histogram_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}

	fmt.Println("Histogram page:", htmlPath)
	fmt.Println("Stats JSON:", jsonPath)
	prof.Report(os.Stdout, prof.SnapshotAndReset())
}
