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

// Package analysis turns raw benchmark measurements into summary tables and
// render-ready charts.
//
// Two measurement files are understood.  parallel_results.csv holds one
// factorisation timing trial per row (number, threads, time_ms); repeated
// trials of the same number/thread pair are averaged, and each thread count
// is compared against the single-thread baseline to derive speedup and the
// Amdahl parallel fraction.  cow_results.csv holds one copy-on-write RSS
// observation per row; summarising appends the RSS growth between the
// post-fork and post-write readings.
//
// Summaries can be written back out as CSV or as a two-sheet XLSX workbook,
// and the chart constructors pair each dataset with the chart configuration
// it is plotted under.
package analysis

import (
	"fmt"
	"strings"

	"github.com/osmetrics/benchviz/chart"
	"github.com/osmetrics/benchviz/svgdoc"
)

// Measurement input and summary output file names, shared by the render
// command and the serve mode.
const (
	ParallelResultsFile = "parallel_results.csv"
	COWResultsFile      = "cow_results.csv"
	ParallelSummaryFile = "parallel_summary.csv"
	COWSummaryFile      = "cow_summary.csv"
	SummaryWorkbookFile = "summary.xlsx"
)

// Chart base names; callers append ".svg" or ".png".
const (
	ParallelTimeChart    = "parallel_time"
	ParallelSpeedupChart = "parallel_speedup"
	COWRSSChart          = "cow_rss"
)

// A LineChart couples a chart configuration with the series it plots.
type LineChart struct {
	Config chart.Config
	XS     []float64
	Series []chart.Series
}

// Render draws the chart.
func (c LineChart) Render() (*svgdoc.Document, error) {
	return chart.Line(c.Config, c.XS, c.Series)
}

// A BarChart couples a chart configuration with the categories it plots.
type BarChart struct {
	Config     chart.Config
	Categories []chart.Category
}

// Render draws the chart.
func (c BarChart) Render() (*svgdoc.Document, error) {
	return chart.Bar(c.Config, c.Categories)
}

// columnIndex maps header column names to positions and verifies that every
// required column is present.  Column order in the file is immaterial.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}
