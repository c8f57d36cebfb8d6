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

package chart

import (
	"math"
	"strconv"

	"github.com/osmetrics/benchviz/scale"
	"github.com/osmetrics/benchviz/svgdoc"
)

// Bar renders a grouped bar chart: one group per category, one bar per stage
// within each group, side by side.  Color is keyed by stage index, so the
// same stage looks the same in every group, and the legend carries one entry
// per stage.  Each bar's value is drawn just above it, and the y axis starts
// at zero with thousands-grouped tick labels.
//
// Every category must carry the same stages in the same order; violations
// are reported as ErrInvalidDomain or ErrLengthMismatch before anything is
// drawn.
func Bar(cfg Config, categories []Category) (*svgdoc.Document, error) {
	if err := validateBar(categories); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	f := newFrame(cfg)

	maxV := 0.0
	for _, c := range categories {
		for _, sv := range c.Stages {
			if sv.Value > maxV {
				maxV = sv.Value
			}
		}
	}
	minY, maxY := yDomain(0, maxV, true)
	sy := scale.NewLinear(minY, maxY, f.bottom(), f.top)

	doc := svgdoc.New(cfg.Width, cfg.Height, cfg.Title)
	drawPanel(doc, f)
	drawYTicks(doc, f, sy, minY, maxY, scale.FormatGrouped)
	drawAxes(doc, f)
	drawTitles(doc, f, cfg)

	// Each group is split into len(stages)+1 slots; bars fill the middle
	// slots and the spare slot becomes the gap between groups, half on
	// each side.
	stages := categories[0].Stages
	groupW := f.plotW / float64(len(categories))
	slotW := groupW / float64(len(stages)+1)
	barW := slotW * 0.9
	offset := valueLabelOffset(maxV)

	for ci, c := range categories {
		groupX := f.left + groupW*float64(ci)
		for si, sv := range c.Stages {
			center := groupX + slotW*float64(si+1)
			top := sy.Map(sv.Value)
			doc.Add(
				svgdoc.Rect{
					X: center - barW/2, Y: top,
					W: barW, H: f.bottom() - top,
					Fill:   cfg.color(si),
					Stroke: barEdge, StrokeWidth: barEdgeW,
				},
				svgdoc.Text{
					X: center, Y: sy.Map(math.Min(sv.Value+offset, maxY)),
					S:    strconv.FormatFloat(sv.Value, 'f', 0, 64),
					Size: valueLabelSize, Fill: textFill,
					Anchor: svgdoc.Middle,
				},
			)
		}
		doc.Add(svgdoc.Text{
			X: groupX + groupW/2, Y: f.bottom() + 18,
			S: c.Label, Size: tickSize, Fill: textFill,
			Anchor: svgdoc.Middle,
		})
	}

	entries := make([]legendEntry, len(stages))
	for i, sv := range stages {
		entries[i] = legendEntry{label: sv.Stage, color: cfg.color(i)}
	}
	drawLegend(doc, f, cfg, entries)
	return doc, nil
}
