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

import "github.com/osmetrics/benchviz/svgdoc"

// LegendRowHeight is the vertical spacing of legend rows in pixels.
const LegendRowHeight = 20

const (
	legendSwatch   = 12
	legendTextSize = 12
)

type legendEntry struct {
	label string
	color string
}

// drawLegend draws one swatch+label row per entry down the right margin,
// starting level with the top of the plot area, preceded by an optional
// title row.
//
// Known limitation: the legend neither wraps nor clips.  The caller sizes
// the canvas — in practice Config.Margin.Right — to fit the longest label
// and Config.Height to fit all rows.
func drawLegend(doc *svgdoc.Document, f frame, cfg Config, entries []legendEntry) {
	x := f.right() + 16
	y := f.top + 8
	if cfg.LegendTitle != "" {
		doc.Add(svgdoc.Text{
			X: x, Y: y + 10,
			S: cfg.LegendTitle, Size: legendTextSize, Fill: textFill,
			Bold: true,
		})
		y += LegendRowHeight
	}
	for i, e := range entries {
		rowY := y + LegendRowHeight*float64(i)
		doc.Add(
			svgdoc.Rect{X: x, Y: rowY, W: legendSwatch, H: legendSwatch, Fill: e.color},
			svgdoc.Text{
				X: x + legendSwatch + 6, Y: rowY + 10,
				S: e.label, Size: legendTextSize, Fill: textFill,
			},
		)
	}
}
