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
	"strconv"

	"github.com/osmetrics/benchviz/chart"
)

// A COWSample is one copy-on-write observation: RSS readings around fork
// and write events for a memory region of SizeMB megabytes.
type COWSample struct {
	SizeMB         int
	ParentRSSKB    int
	PostForkRSSKB  int
	PostWriteRSSKB int
	PrivateDirtyKB int
	TouchMS        float64
}

// A COWRow is one line of the cow summary table: the sample plus the RSS
// growth between the post-fork and post-write readings.
type COWRow struct {
	COWSample
	RSSDeltaKB int
}

// The integer columns of cow_results.csv, in COWSample field order.
var cowIntColumns = []string{
	"size_mb",
	"parent_rss_kb",
	"child_post_fork_rss_kb",
	"child_post_write_rss_kb",
	"child_post_write_private_dirty_kb",
}

// LoadCOW reads cow_results.csv content: a header row, then one observation
// per row.  Samples keep file order.
func LoadCOW(r io.Reader) ([]COWSample, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading cow results header: %w", err)
	}
	required := append(append([]string{}, cowIntColumns...), "touch_ms")
	idx, err := columnIndex(header, required...)
	if err != nil {
		return nil, fmt.Errorf("cow results: %w", err)
	}
	var samples []COWSample
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading cow results: %w", err)
		}
		ints := make([]int, len(cowIntColumns))
		for i, col := range cowIntColumns {
			v, err := strconv.Atoi(record[idx[col]])
			if err != nil {
				return nil, fmt.Errorf("cow results: bad %s %q: %w", col, record[idx[col]], err)
			}
			ints[i] = v
		}
		touchMS, err := strconv.ParseFloat(record[idx["touch_ms"]], 64)
		if err != nil {
			return nil, fmt.Errorf("cow results: bad touch_ms %q: %w", record[idx["touch_ms"]], err)
		}
		samples = append(samples, COWSample{
			SizeMB:         ints[0],
			ParentRSSKB:    ints[1],
			PostForkRSSKB:  ints[2],
			PostWriteRSSKB: ints[3],
			PrivateDirtyKB: ints[4],
			TouchMS:        touchMS,
		})
	}
	return samples, nil
}

// SummarizeCOW appends the fork-to-write RSS delta to each sample, keeping
// file order.
func SummarizeCOW(samples []COWSample) []COWRow {
	rows := make([]COWRow, len(samples))
	for i, s := range samples {
		rows[i] = COWRow{
			COWSample:  s,
			RSSDeltaKB: s.PostWriteRSSKB - s.PostForkRSSKB,
		}
	}
	return rows
}

// COWChart builds the grouped bar chart of RSS observations: one category
// per sample, three bars comparing the parent's RSS with the child's after
// fork and after writes.
func COWChart(samples []COWSample) BarChart {
	categories := make([]chart.Category, len(samples))
	for i, s := range samples {
		categories[i] = chart.Category{
			Label: fmt.Sprintf("%d MB", s.SizeMB),
			Stages: []chart.StageValue{
				{Stage: "Parent RSS", Value: float64(s.ParentRSSKB)},
				{Stage: "Child after fork", Value: float64(s.PostForkRSSKB)},
				{Stage: "Child after writes", Value: float64(s.PostWriteRSSKB)},
			},
		}
	}
	return BarChart{
		Config: chart.Config{
			Title:       "Copy-on-Write RSS Observations",
			YLabel:      "RSS (kB)",
			LegendTitle: "Measurement",
		},
		Categories: categories,
	}
}
