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

package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/osmetrics/benchviz/chart"
	"github.com/osmetrics/benchviz/dataset"
)

// ParallelData holds factorisation timing trials grouped by factorised
// number, then by thread count.  Numbers keep the order they first appear
// in the file.
type ParallelData struct {
	trials *dataset.Grouped
}

// A ParallelRow is one line of the parallel summary table: the averaged
// timing for one number at one thread count, with its derived speedup and
// Amdahl parallel fraction.
type ParallelRow struct {
	Number           int64
	Threads          int
	AvgTimeMS        float64
	Speedup          float64
	ParallelFraction float64
}

// LoadParallel reads parallel_results.csv content: a header row with the
// columns number, threads, and time_ms, then one trial per row.
func LoadParallel(r io.Reader) (*ParallelData, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading parallel results header: %w", err)
	}
	idx, err := columnIndex(header, "number", "threads", "time_ms")
	if err != nil {
		return nil, fmt.Errorf("parallel results: %w", err)
	}
	trials := dataset.New()
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading parallel results: %w", err)
		}
		number, err := strconv.ParseInt(record[idx["number"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parallel results: bad number %q: %w", record[idx["number"]], err)
		}
		threads, err := strconv.Atoi(record[idx["threads"]])
		if err != nil {
			return nil, fmt.Errorf("parallel results: bad thread count %q: %w", record[idx["threads"]], err)
		}
		timeMS, err := strconv.ParseFloat(record[idx["time_ms"]], 64)
		if err != nil {
			return nil, fmt.Errorf("parallel results: bad time %q: %w", record[idx["time_ms"]], err)
		}
		trials.Add(strconv.FormatInt(number, 10), strconv.Itoa(threads), timeMS)
	}
	return &ParallelData{trials: trials}, nil
}

// SummarizeParallel averages the trials of each number/thread pair and
// derives speedup against that number's single-thread baseline.  Rows come
// out grouped by number in file order, thread counts ascending within each
// number.
//
// Speedup is 0 when the averaged time is not positive.  The parallel
// fraction is derived only when threads > 1 and the run actually sped up;
// it is clamped into [0, 1] and reported as 0 otherwise, so a slowdown
// reads as "no parallel benefit" rather than as missing data.
func SummarizeParallel(d *ParallelData) ([]ParallelRow, error) {
	var rows []ParallelRow
	for _, group := range d.trials.Groups() {
		number, err := strconv.ParseInt(group, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parallel summary: bad number key %q: %w", group, err)
		}
		threads := make([]int, 0, len(d.trials.Subs(group)))
		for _, sub := range d.trials.Subs(group) {
			t, err := strconv.Atoi(sub)
			if err != nil {
				return nil, fmt.Errorf("parallel summary: bad thread key %q: %w", sub, err)
			}
			threads = append(threads, t)
		}
		slices.Sort(threads)
		if !slices.Contains(threads, 1) {
			return nil, fmt.Errorf("number %s has no single-thread baseline run", group)
		}
		baseline := d.trials.Mean(group, "1")
		for _, t := range threads {
			avg := d.trials.Mean(group, strconv.Itoa(t))
			speedup := 0.0
			if avg > 0 {
				speedup = baseline / avg
			}
			fraction := 0.0
			if t > 1 && speedup > 1.0 {
				fraction = (1 - 1/speedup) / (1 - 1/float64(t))
				if fraction < 0 {
					fraction = 0
				}
				if fraction > 1 {
					fraction = 1
				}
			}
			rows = append(rows, ParallelRow{
				Number:           number,
				Threads:          t,
				AvgTimeMS:        avg,
				Speedup:          speedup,
				ParallelFraction: fraction,
			})
		}
	}
	return rows, nil
}

// ParallelCharts builds the two line charts plotted from a parallel summary:
// average time against threads, and measured speedup against threads with a
// reference line at 1.0.  Series are ordered by number ascending, and every
// number must have a row at every thread count seen in the summary.
func ParallelCharts(rows []ParallelRow) (timeChart, speedupChart LineChart, err error) {
	byNumber := map[int64]map[int]ParallelRow{}
	threadSet := map[int]bool{}
	for _, row := range rows {
		if byNumber[row.Number] == nil {
			byNumber[row.Number] = map[int]ParallelRow{}
		}
		byNumber[row.Number][row.Threads] = row
		threadSet[row.Threads] = true
	}
	numbers := make([]int64, 0, len(byNumber))
	for n := range byNumber {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)
	threads := make([]int, 0, len(threadSet))
	for t := range threadSet {
		threads = append(threads, t)
	}
	slices.Sort(threads)

	xs := make([]float64, len(threads))
	for i, t := range threads {
		xs[i] = float64(t)
	}
	timeSeries := make([]chart.Series, 0, len(numbers))
	speedupSeries := make([]chart.Series, 0, len(numbers))
	for _, n := range numbers {
		times := make([]float64, len(threads))
		speedups := make([]float64, len(threads))
		for i, t := range threads {
			row, ok := byNumber[n][t]
			if !ok {
				return LineChart{}, LineChart{}, fmt.Errorf("number %d has no row at %d threads", n, t)
			}
			times[i] = row.AvgTimeMS
			speedups[i] = row.Speedup
		}
		label := strconv.FormatInt(n, 10)
		timeSeries = append(timeSeries, chart.Series{Label: label, Values: times})
		speedupSeries = append(speedupSeries, chart.Series{Label: label, Values: speedups})
	}

	timeChart = LineChart{
		Config: chart.Config{
			Title:       "Factorisation Time vs Threads",
			XLabel:      "Threads",
			YLabel:      "Average time (ms)",
			LegendTitle: "Number",
		},
		XS:     xs,
		Series: timeSeries,
	}
	ref := 1.0
	speedupChart = LineChart{
		Config: chart.Config{
			Title:       "Measured Speedup",
			XLabel:      "Threads",
			YLabel:      "Speedup (T1/Tn)",
			LegendTitle: "Number",
			RefLineY:    &ref,
		},
		XS:     xs,
		Series: speedupSeries,
	}
	return timeChart, speedupChart, nil
}
