/*
	Copyright 2025 The benchviz Authors
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package service serves charts and summary tables rendered on demand from
// the measurement files in a data directory.
//
// Chart bytes are cached under the requested file name, so each chart is
// rendered once per encoding until evicted.  The measurement files are
// assumed not to change while the service runs.
package service

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/osmetrics/benchviz/analysis"
	"github.com/osmetrics/benchviz/raster"
	"github.com/osmetrics/benchviz/report"
	"github.com/osmetrics/benchviz/sink"
	"github.com/osmetrics/benchviz/svgdoc"
)

// chartIndex lists the served charts in index-page order.
var chartIndex = []report.Entry{
	{File: "charts/" + analysis.ParallelTimeChart + ".svg", Title: "Factorisation Time vs Threads"},
	{File: "charts/" + analysis.ParallelSpeedupChart + ".svg", Title: "Measured Speedup"},
	{File: "charts/" + analysis.COWRSSChart + ".svg", Title: "Copy-on-Write RSS Observations"},
}

// Service renders benchmark charts and summaries over HTTP.
type Service struct {
	dataDir string

	mu  sync.Mutex // guards lru
	lru *simplelru.LRU
}

// New returns a Service reading measurement files from dataDir and keeping
// up to cacheSize encoded charts in memory.
func New(dataDir string, cacheSize int) (*Service, error) {
	lru, err := simplelru.NewLRU(cacheSize, nil /* no onEvict policy */)
	if err != nil {
		return nil, err
	}
	return &Service{dataDir: dataDir, lru: lru}, nil
}

// RegisterHandlers installs the service's routes on mux: the index page at
// /, rendered charts under /charts/, and summary downloads at /summary.xlsx
// and under /summary/.
func (s *Service) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/charts/", s.serveChart)
	mux.HandleFunc("/summary.xlsx", s.serveWorkbook)
	mux.HandleFunc("/summary/", s.serveSummaryCSV)
}

func (s *Service) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, "Benchmark results", chartIndex); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Service) serveChart(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path[len("/charts/"):]
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if !knownChart(base) || (ext != ".svg" && ext != ".png") {
		http.NotFound(w, r)
		return
	}
	format := sink.FormatFor(name)
	data, err := s.chartBytes(name, base, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if format == sink.PNG {
		w.Header().Set("Content-Type", "image/png")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Write(data)
}

func (s *Service) serveWorkbook(w http.ResponseWriter, r *http.Request) {
	parallel, err := s.parallelSummary()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	samples, err := s.cowSamples()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := analysis.WriteSummaryXLSX(&buf, parallel, analysis.SummarizeCOW(samples)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Write(buf.Bytes())
}

func (s *Service) serveSummaryCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	switch r.URL.Path[len("/summary/"):] {
	case analysis.ParallelSummaryFile:
		rows, err := s.parallelSummary()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := analysis.WriteParallelCSV(&buf, rows); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	case analysis.COWSummaryFile:
		samples, err := s.cowSamples()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := analysis.WriteCOWCSV(&buf, analysis.SummarizeCOW(samples)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	default:
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Write(buf.Bytes())
}

func knownChart(base string) bool {
	switch base {
	case analysis.ParallelTimeChart, analysis.ParallelSpeedupChart, analysis.COWRSSChart:
		return true
	}
	return false
}

// chartBytes returns the encoded chart, rendering and caching it on the
// first request for each file name.
func (s *Service) chartBytes(name, base string, format sink.Format) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.lru.Get(name); ok {
		data, ok := cached.([]byte)
		if !ok {
			return nil, fmt.Errorf("cached chart %q wasn't encoded bytes", name)
		}
		return data, nil
	}
	doc, err := s.renderChart(base)
	if err != nil {
		return nil, err
	}
	var data []byte
	if format == sink.PNG {
		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf, doc); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	} else {
		data = doc.Bytes()
	}
	s.lru.Add(name, data)
	return data, nil
}

func (s *Service) renderChart(base string) (*svgdoc.Document, error) {
	switch base {
	case analysis.ParallelTimeChart, analysis.ParallelSpeedupChart:
		rows, err := s.parallelSummary()
		if err != nil {
			return nil, err
		}
		timeChart, speedupChart, err := analysis.ParallelCharts(rows)
		if err != nil {
			return nil, err
		}
		if base == analysis.ParallelTimeChart {
			return timeChart.Render()
		}
		return speedupChart.Render()
	case analysis.COWRSSChart:
		samples, err := s.cowSamples()
		if err != nil {
			return nil, err
		}
		return analysis.COWChart(samples).Render()
	}
	return nil, fmt.Errorf("unknown chart %q", base)
}

func (s *Service) parallelSummary() ([]analysis.ParallelRow, error) {
	file, err := os.Open(filepath.Join(s.dataDir, analysis.ParallelResultsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := analysis.LoadParallel(file)
	if err != nil {
		return nil, err
	}
	return analysis.SummarizeParallel(data)
}

func (s *Service) cowSamples() ([]analysis.COWSample, error) {
	file, err := os.Open(filepath.Join(s.dataDir, analysis.COWResultsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return analysis.LoadCOW(file)
}
