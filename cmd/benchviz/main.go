// Package main provides the benchviz command line tool.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/osmetrics/benchviz/analysis"
	"github.com/osmetrics/benchviz/raster"
	"github.com/osmetrics/benchviz/report"
	"github.com/osmetrics/benchviz/service"
	"github.com/osmetrics/benchviz/sink"
	"github.com/osmetrics/benchviz/svgdoc"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	dataDir   string
	outDir    string
	format    string
	addr      string
	cacheSize int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "benchviz",
		Short: "Render benchmark measurements as charts and summary tables",
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render charts and summaries into an output directory",
		Long: `render reads parallel_results.csv and cow_results.csv from the data
directory (either may be absent), writes summary CSVs and an XLSX workbook,
and draws the charts into <out>/graphs with an index.html next to them.`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}
	renderCmd.Flags().StringVar(&dataDir, "data", ".", "Directory holding the measurement CSV files")
	renderCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to write summaries, charts, and the index into")
	renderCmd.Flags().StringVar(&format, "format", "svg", "Chart image format: svg or png")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts and summaries over HTTP, rendering on demand",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&dataDir, "data", ".", "Directory holding the measurement CSV files")
	serveCmd.Flags().StringVar(&addr, "addr", ":6061", "Address to serve on")
	serveCmd.Flags().IntVar(&cacheSize, "cache", 16, "Number of encoded charts to keep in memory")

	rootCmd.AddCommand(renderCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// A chartJob is one chart to render and write.
type chartJob struct {
	name   string
	title  string
	render func() (*svgdoc.Document, error)
}

func runRender(cmd *cobra.Command, args []string) error {
	if format != "svg" && format != "png" {
		return fmt.Errorf("invalid chart format %q, want svg or png", format)
	}

	parallelRows, haveParallel, err := loadParallelRows()
	if err != nil {
		return err
	}
	cowSamples, haveCOW, err := loadCOWSamples()
	if err != nil {
		return err
	}
	if !haveParallel && !haveCOW {
		return fmt.Errorf("no measurement files under %s", dataDir)
	}

	var jobs []chartJob
	if haveParallel {
		if err := writeSummaryCSV(analysis.ParallelSummaryFile, func(w io.Writer) error {
			return analysis.WriteParallelCSV(w, parallelRows)
		}); err != nil {
			return err
		}
		timeChart, speedupChart, err := analysis.ParallelCharts(parallelRows)
		if err != nil {
			return err
		}
		jobs = append(jobs,
			chartJob{analysis.ParallelTimeChart, timeChart.Config.Title, timeChart.Render},
			chartJob{analysis.ParallelSpeedupChart, speedupChart.Config.Title, speedupChart.Render},
		)
	}
	var cowRows []analysis.COWRow
	if haveCOW {
		cowRows = analysis.SummarizeCOW(cowSamples)
		if err := writeSummaryCSV(analysis.COWSummaryFile, func(w io.Writer) error {
			return analysis.WriteCOWCSV(w, cowRows)
		}); err != nil {
			return err
		}
		cowChart := analysis.COWChart(cowSamples)
		jobs = append(jobs, chartJob{analysis.COWRSSChart, cowChart.Config.Title, cowChart.Render})
	}

	var workbook bytes.Buffer
	if err := analysis.WriteSummaryXLSX(&workbook, parallelRows, cowRows); err != nil {
		return err
	}
	workbookPath := filepath.Join(outDir, analysis.SummaryWorkbookFile)
	if err := sink.Write(workbookPath, workbook.Bytes()); err != nil {
		return err
	}
	log.Printf("Wrote %s", workbookPath)

	// The charts are independent pure computations; render them concurrently.
	var errg errgroup.Group
	for _, job := range jobs {
		errg.Go(func() error {
			return renderChartFile(job)
		})
	}
	if err := errg.Wait(); err != nil {
		return err
	}

	entries := make([]report.Entry, len(jobs))
	for i, job := range jobs {
		entries[i] = report.Entry{File: path.Join("graphs", job.name+"."+format), Title: job.title}
	}
	var page bytes.Buffer
	if err := report.Write(&page, "Benchmark results", entries); err != nil {
		return err
	}
	indexPath := filepath.Join(outDir, "index.html")
	if err := sink.Write(indexPath, page.Bytes()); err != nil {
		return err
	}
	log.Printf("Wrote %s", indexPath)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := service.New(dataDir, cacheSize)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}
	mux := http.NewServeMux()
	s.RegisterHandlers(mux)
	log.Printf("Serving benchmark charts from %s at %s", dataDir, addr)
	return http.ListenAndServe(addr, mux)
}

// loadParallelRows summarises the parallel measurement file, reporting
// ok=false when the file is absent.
func loadParallelRows() (rows []analysis.ParallelRow, ok bool, err error) {
	name := filepath.Join(dataDir, analysis.ParallelResultsFile)
	file, err := os.Open(name)
	if os.IsNotExist(err) {
		log.Printf("No %s; skipping parallel results", name)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer file.Close()
	data, err := analysis.LoadParallel(file)
	if err != nil {
		return nil, false, err
	}
	rows, err = analysis.SummarizeParallel(data)
	if err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

// loadCOWSamples reads the copy-on-write measurement file, reporting
// ok=false when the file is absent.
func loadCOWSamples() (samples []analysis.COWSample, ok bool, err error) {
	name := filepath.Join(dataDir, analysis.COWResultsFile)
	file, err := os.Open(name)
	if os.IsNotExist(err) {
		log.Printf("No %s; skipping copy-on-write results", name)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer file.Close()
	samples, err = analysis.LoadCOW(file)
	if err != nil {
		return nil, false, err
	}
	return samples, true, nil
}

func writeSummaryCSV(name string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	summaryPath := filepath.Join(outDir, name)
	if err := sink.Write(summaryPath, buf.Bytes()); err != nil {
		return err
	}
	log.Printf("Wrote %s", summaryPath)
	return nil
}

func renderChartFile(job chartJob) error {
	doc, err := job.render()
	if err != nil {
		return fmt.Errorf("rendering %s: %w", job.name, err)
	}
	name := filepath.Join(outDir, "graphs", job.name+"."+format)
	var data []byte
	if sink.FormatFor(name) == sink.PNG {
		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf, doc); err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		data = buf.Bytes()
	} else {
		data = doc.Bytes()
	}
	if err := sink.Write(name, data); err != nil {
		return err
	}
	log.Printf("Wrote %s", name)
	return nil
}
