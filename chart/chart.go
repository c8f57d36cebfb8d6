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

// Package chart renders multi-series line charts and grouped bar charts as
// standalone SVG documents.
//
// Inputs are in-memory values: a Config describing titles, canvas geometry,
// and palette, plus either labeled Series over a shared x-domain (line
// charts) or Categories of stage-labeled values (bar charts).  Rendering is
// stateless and deterministic: the same input always produces the same
// document, and nothing is retained across calls.  Structural problems with
// the input are reported before any element is emitted, so a returned
// document is always complete.
//
// Vertical bounds are derived from the data, not configured: the top of the
// y domain is the largest value plus 10% headroom; the bottom is the
// smallest value for line charts and zero for bar charts.  A flat y domain
// is widened by a fixed epsilon rather than rejected.
package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/osmetrics/benchviz/scale"
	"github.com/osmetrics/benchviz/svgdoc"
)

var (
	// ErrInvalidDomain reports an unusable chart domain: an empty or
	// non-strictly-increasing x-domain, a chart with no series or
	// categories, or a category without stages.
	ErrInvalidDomain = errors.New("invalid chart domain")

	// ErrLengthMismatch reports structurally inconsistent input: a series
	// whose length disagrees with the x-domain, or categories whose stage
	// sets disagree.
	ErrLengthMismatch = errors.New("chart input length mismatch")
)

// DefaultPalette is the default color cycle for series and stages.
var DefaultPalette = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
}

// A Series is one labeled line of a line chart.  Values align 1:1 with the
// chart's shared x-domain.
type Series struct {
	Label  string
	Values []float64
}

// A StageValue is one labeled measurement within a Category.
type StageValue struct {
	Stage string
	Value float64
}

// A Category is one bar group of a grouped bar chart: a labeled, ordered
// list of stage measurements.  Every Category in a chart must carry the same
// stages in the same order; the stage list is the chart's legend.
type Category struct {
	Label  string
	Stages []StageValue
}

// Margin is the whitespace around the plot area, in pixels.  The right
// margin must be wide enough for the legend.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Config describes one chart.  A Config is consumed by a single render call
// and never retained.  Zero-valued geometry fields take defaults.
type Config struct {
	Title  string
	XLabel string
	YLabel string

	// Width and Height are the canvas dimensions in pixels; zero means
	// 900x560.
	Width  int
	Height int
	// Margin is the whitespace around the plot area; a zero Margin takes
	// the default, which leaves room for a legend on the right.
	Margin Margin

	// Palette is the color cycle, indexed modulo its length by series or
	// stage position.  Empty means DefaultPalette.
	Palette []string

	// LegendTitle, when nonempty, draws a heading row above the legend
	// entries.
	LegendTitle string

	// RefLineY, when non-nil, draws a dotted horizontal reference line at
	// that y value if it falls within the derived y domain.
	RefLineY *float64
}

const (
	defaultWidth  = 900
	defaultHeight = 560

	panelFill   = "#eaeaf2"
	gridStroke  = "#ffffff"
	axisStroke  = "#444444"
	textFill    = "#333333"
	refStroke   = "#555555"
	barEdge     = "#222222"
	barEdgeW    = 0.7
	gridWidth   = 0.8
	gridDash    = "4,3"
	gridOpacity = 0.5

	titleSize      = 16
	axisLabelSize  = 12
	tickSize       = 11
	valueLabelSize = 10

	markerRadius = 3.5
	seriesWidth  = 2
)

func (c Config) withDefaults() Config {
	if c.Width == 0 {
		c.Width = defaultWidth
	}
	if c.Height == 0 {
		c.Height = defaultHeight
	}
	if c.Margin == (Margin{}) {
		c.Margin = Margin{Top: 56, Right: 180, Bottom: 64, Left: 76}
	}
	if len(c.Palette) == 0 {
		c.Palette = DefaultPalette
	}
	return c
}

func (c Config) color(i int) string {
	return c.Palette[i%len(c.Palette)]
}

// frame is the pixel-space plot area derived from a Config.
type frame struct {
	left, top    float64
	plotW, plotH float64
}

func newFrame(c Config) frame {
	return frame{
		left:  c.Margin.Left,
		top:   c.Margin.Top,
		plotW: float64(c.Width) - c.Margin.Left - c.Margin.Right,
		plotH: float64(c.Height) - c.Margin.Top - c.Margin.Bottom,
	}
}

func (f frame) right() float64  { return f.left + f.plotW }
func (f frame) bottom() float64 { return f.top + f.plotH }

// yDomain applies the headroom and flat-domain rules to observed value
// extents.  A flat domain is a correction case, never an error; the guard
// also covers flat negative values, where the headroom product lands below
// the minimum.
func yDomain(minV, maxV float64, zeroBased bool) (minY, maxY float64) {
	minY = minV
	if zeroBased {
		minY = 0
	}
	maxY = maxV * 1.1
	if maxY <= minY {
		maxY = minY + 1
	}
	return minY, maxY
}

func validateLine(xs []float64, series []Series) error {
	if len(xs) == 0 {
		return fmt.Errorf("%w: x-domain is empty", ErrInvalidDomain)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("%w: x-domain must be strictly increasing, got %v then %v",
				ErrInvalidDomain, xs[i-1], xs[i])
		}
	}
	if len(series) == 0 {
		return fmt.Errorf("%w: no series", ErrInvalidDomain)
	}
	for _, s := range series {
		if len(s.Values) != len(xs) {
			return fmt.Errorf("%w: series %q has %d values for %d x positions",
				ErrLengthMismatch, s.Label, len(s.Values), len(xs))
		}
	}
	return nil
}

func validateBar(categories []Category) error {
	if len(categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidDomain)
	}
	first := categories[0]
	if len(first.Stages) == 0 {
		return fmt.Errorf("%w: category %q has no stages", ErrInvalidDomain, first.Label)
	}
	for _, c := range categories[1:] {
		if len(c.Stages) != len(first.Stages) {
			return fmt.Errorf("%w: category %q has %d stages, category %q has %d",
				ErrLengthMismatch, first.Label, len(first.Stages), c.Label, len(c.Stages))
		}
		for i, sv := range c.Stages {
			if sv.Stage != first.Stages[i].Stage {
				return fmt.Errorf("%w: category %q stage %d is %q, category %q has %q",
					ErrLengthMismatch, c.Label, i, sv.Stage, first.Label, first.Stages[i].Stage)
			}
		}
	}
	return nil
}

func drawPanel(doc *svgdoc.Document, f frame) {
	doc.Add(svgdoc.Rect{X: f.left, Y: f.top, W: f.plotW, H: f.plotH, Fill: panelFill})
}

func drawAxes(doc *svgdoc.Document, f frame) {
	doc.Add(
		svgdoc.Line{X1: f.left, Y1: f.bottom(), X2: f.right(), Y2: f.bottom(), Stroke: axisStroke},
		svgdoc.Line{X1: f.left, Y1: f.top, X2: f.left, Y2: f.bottom(), Stroke: axisStroke},
	)
}

func drawTitles(doc *svgdoc.Document, f frame, c Config) {
	if c.Title != "" {
		doc.Add(svgdoc.Text{
			X: float64(c.Width) / 2, Y: f.top/2 + 8,
			S: c.Title, Size: titleSize, Fill: textFill,
			Anchor: svgdoc.Middle, Bold: true,
		})
	}
	if c.XLabel != "" {
		doc.Add(svgdoc.Text{
			X: f.left + f.plotW/2, Y: f.bottom() + 44,
			S: c.XLabel, Size: axisLabelSize, Fill: textFill,
			Anchor: svgdoc.Middle,
		})
	}
	if c.YLabel != "" {
		doc.Add(svgdoc.Text{
			X: f.left - 56, Y: f.top + f.plotH/2,
			S: c.YLabel, Size: axisLabelSize, Fill: textFill,
			Anchor: svgdoc.Middle, Rotate: true,
		})
	}
}

// drawYTicks draws horizontal gridlines across the plot area and a label
// left of each.
func drawYTicks(doc *svgdoc.Document, f frame, sy scale.Linear, minY, maxY float64, format scale.Formatter) {
	for _, tick := range scale.Ticks(minY, maxY, scale.DefaultTickCount) {
		y := sy.Map(tick)
		doc.Add(
			svgdoc.Line{
				X1: f.left, Y1: y, X2: f.right(), Y2: y,
				Stroke: gridStroke, StrokeWidth: gridWidth,
				Dash: gridDash, Opacity: gridOpacity,
			},
			svgdoc.Text{
				X: f.left - 8, Y: y + 4,
				S: format(tick), Size: tickSize, Fill: textFill,
				Anchor: svgdoc.End,
			},
		)
	}
}

// valueLabelOffset is the data-space gap between a bar top and its value
// label.  An all-zero chart collapses the gap so labels sit on the baseline.
func valueLabelOffset(maxV float64) float64 {
	if maxV <= 0 {
		return 0
	}
	return math.Max(10, maxV*0.012)
}
