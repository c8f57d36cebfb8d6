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
	"github.com/osmetrics/benchviz/scale"
	"github.com/osmetrics/benchviz/svgdoc"
)

// Line renders a multi-series line chart over a shared x-domain.  Series are
// drawn in input order, colored by the Config palette cycle, as a polyline
// with a circular marker at every point; a series of length one draws its
// marker only.  X ticks sit at exactly the x-domain positions.
//
// The x-domain must be nonempty and strictly increasing, and every series
// must be the same length as the x-domain; violations are reported as
// ErrInvalidDomain or ErrLengthMismatch before anything is drawn.
func Line(cfg Config, xs []float64, series []Series) (*svgdoc.Document, error) {
	if err := validateLine(xs, series); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	f := newFrame(cfg)

	minV, maxV := series[0].Values[0], series[0].Values[0]
	for _, s := range series {
		for _, v := range s.Values {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	minY, maxY := yDomain(minV, maxV, false)

	sx := scale.NewLinear(xs[0], xs[len(xs)-1], f.left, f.right())
	sy := scale.NewLinear(minY, maxY, f.bottom(), f.top)

	doc := svgdoc.New(cfg.Width, cfg.Height, cfg.Title)
	drawPanel(doc, f)
	drawYTicks(doc, f, sy, minY, maxY, scale.FormatFixed(1))
	for _, x := range xs {
		px := sx.Map(x)
		doc.Add(
			svgdoc.Line{
				X1: px, Y1: f.top, X2: px, Y2: f.bottom(),
				Stroke: gridStroke, StrokeWidth: gridWidth,
				Dash: gridDash, Opacity: gridOpacity,
			},
			svgdoc.Text{
				X: px, Y: f.bottom() + 18,
				S: scale.FormatAuto(x), Size: tickSize, Fill: textFill,
				Anchor: svgdoc.Middle,
			},
		)
	}
	drawAxes(doc, f)
	drawTitles(doc, f, cfg)

	if cfg.RefLineY != nil && *cfg.RefLineY >= minY && *cfg.RefLineY <= maxY {
		y := sy.Map(*cfg.RefLineY)
		doc.Add(svgdoc.Line{
			X1: f.left, Y1: y, X2: f.right(), Y2: y,
			Stroke: refStroke, StrokeWidth: 1.2, Dash: "2,4", Opacity: 0.8,
		})
	}

	entries := make([]legendEntry, len(series))
	for i, s := range series {
		color := cfg.color(i)
		entries[i] = legendEntry{label: s.Label, color: color}
		if len(xs) > 1 {
			points := make([]svgdoc.Point, len(xs))
			for j, x := range xs {
				points[j] = svgdoc.Point{X: sx.Map(x), Y: sy.Map(s.Values[j])}
			}
			doc.Add(svgdoc.Polyline{Points: points, Stroke: color, StrokeWidth: seriesWidth})
		}
		for j, x := range xs {
			doc.Add(svgdoc.Circle{
				CX: sx.Map(x), CY: sy.Map(s.Values[j]),
				R: markerRadius, Fill: color,
			})
		}
	}
	drawLegend(doc, f, cfg, entries)
	return doc, nil
}
