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
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var (
	parallelSummaryColumns = []string{
		"number", "threads", "avg_time_ms", "speedup", "parallel_fraction",
	}
	cowSummaryColumns = []string{
		"size_mb",
		"parent_rss_kb",
		"child_post_fork_rss_kb",
		"child_post_write_rss_kb",
		"child_post_write_private_dirty_kb",
		"touch_ms",
		"rss_delta_kb",
	}
)

func (r ParallelRow) record() []string {
	return []string{
		strconv.FormatInt(r.Number, 10),
		strconv.Itoa(r.Threads),
		strconv.FormatFloat(r.AvgTimeMS, 'g', -1, 64),
		strconv.FormatFloat(r.Speedup, 'g', -1, 64),
		strconv.FormatFloat(r.ParallelFraction, 'g', -1, 64),
	}
}

func (r COWRow) record() []string {
	return []string{
		strconv.Itoa(r.SizeMB),
		strconv.Itoa(r.ParentRSSKB),
		strconv.Itoa(r.PostForkRSSKB),
		strconv.Itoa(r.PostWriteRSSKB),
		strconv.Itoa(r.PrivateDirtyKB),
		strconv.FormatFloat(r.TouchMS, 'g', -1, 64),
		strconv.Itoa(r.RSSDeltaKB),
	}
}

// WriteParallelCSV writes the parallel summary table as CSV.
func WriteParallelCSV(w io.Writer, rows []ParallelRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(parallelSummaryColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCOWCSV writes the cow summary table as CSV.
func WriteCOWCSV(w io.Writer, rows []COWRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cowSummaryColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryXLSX writes both summaries into one workbook, a sheet per
// summary with a header row, so the tables open directly in a spreadsheet.
func WriteSummaryXLSX(w io.Writer, parallel []ParallelRow, cow []COWRow) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "parallel_summary"); err != nil {
		return err
	}
	parallelCells := make([][]any, len(parallel))
	for i, r := range parallel {
		parallelCells[i] = []any{r.Number, r.Threads, r.AvgTimeMS, r.Speedup, r.ParallelFraction}
	}
	if err := writeSheet(f, "parallel_summary", parallelSummaryColumns, parallelCells); err != nil {
		return err
	}
	if _, err := f.NewSheet("cow_summary"); err != nil {
		return err
	}
	cowCells := make([][]any, len(cow))
	for i, r := range cow {
		cowCells[i] = []any{
			r.SizeMB, r.ParentRSSKB, r.PostForkRSSKB, r.PostWriteRSSKB,
			r.PrivateDirtyKB, r.TouchMS, r.RSSDeltaKB,
		}
	}
	if err := writeSheet(f, "cow_summary", cowSummaryColumns, cowCells); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing summary workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
