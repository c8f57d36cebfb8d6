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

package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/osmetrics/benchviz/chart"
	"github.com/osmetrics/benchviz/svgdoc"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

var white = color.RGBA{0xff, 0xff, 0xff, 0xff}

func TestEncodeFillsShapes(t *testing.T) {
	for _, test := range []struct {
		description string
		element     svgdoc.Element
		at          image.Point
		want        color.RGBA
	}{{
		description: "rect interior",
		element:     svgdoc.Rect{X: 10, Y: 10, W: 20, H: 10, Fill: "#1f77b4"},
		at:          image.Point{20, 15},
		want:        color.RGBA{0x1f, 0x77, 0xb4, 0xff},
	}, {
		description: "circle center",
		element:     svgdoc.Circle{CX: 20, CY: 15, R: 8, Fill: "#d62728"},
		at:          image.Point{20, 15},
		want:        color.RGBA{0xd6, 0x27, 0x28, 0xff},
	}, {
		description: "default fill is black",
		element:     svgdoc.Rect{X: 10, Y: 10, W: 20, H: 10},
		at:          image.Point{20, 15},
		want:        color.RGBA{0x00, 0x00, 0x00, 0xff},
	}} {
		t.Run(test.description, func(t *testing.T) {
			doc := svgdoc.New(40, 30, "")
			doc.Add(test.element)
			img, err := Encode(doc)
			if err != nil {
				t.Fatalf("Encode() = err %v", err)
			}
			if got, want := img.Bounds(), image.Rect(0, 0, 40, 30); got != want {
				t.Fatalf("Encode() bounds = %v, want %v", got, want)
			}
			if diff := cmp.Diff(test.want, rgbaAt(img, test.at.X, test.at.Y)); diff != "" {
				t.Errorf("pixel %v mismatch (-want +got) %s", test.at, diff)
			}
			if diff := cmp.Diff(white, rgbaAt(img, 1, 1)); diff != "" {
				t.Errorf("background pixel mismatch (-want +got) %s", diff)
			}
		})
	}
}

func TestEncodeDashedLineLeavesGaps(t *testing.T) {
	doc := svgdoc.New(100, 20, "")
	doc.Add(svgdoc.Line{X1: 10, Y1: 10, X2: 90, Y2: 10, Stroke: "#000000", StrokeWidth: 2, Dash: "6,6"})
	img, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() = err %v", err)
	}
	if diff := cmp.Diff(color.RGBA{0, 0, 0, 0xff}, rgbaAt(img, 12, 10)); diff != "" {
		t.Errorf("pixel inside first dash mismatch (-want +got) %s", diff)
	}
	if diff := cmp.Diff(white, rgbaAt(img, 19, 10)); diff != "" {
		t.Errorf("pixel inside first gap mismatch (-want +got) %s", diff)
	}
}

// blackPixels returns the coordinates of every fully black pixel.
func blackPixels(img *image.RGBA) []image.Point {
	var pts []image.Point
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgbaAt(img, x, y) == (color.RGBA{0, 0, 0, 0xff}) {
				pts = append(pts, image.Point{x, y})
			}
		}
	}
	return pts
}

func TestEncodeTextPlacement(t *testing.T) {
	// The 7x13 face advances 7px per glyph, ascends 11px and descends 2px,
	// so "AB" at a start anchor covers at most 14x13 pixels.
	for _, test := range []struct {
		description string
		text        svgdoc.Text
		within      image.Rectangle
	}{{
		description: "start anchor extends right of the anchor point",
		text:        svgdoc.Text{X: 30, Y: 30, S: "AB"},
		within:      image.Rect(30, 19, 44, 32),
	}, {
		description: "middle anchor centers on the anchor point",
		text:        svgdoc.Text{X: 50, Y: 30, S: "AB", Anchor: svgdoc.Middle},
		within:      image.Rect(43, 19, 57, 32),
	}, {
		description: "end anchor extends left of the anchor point",
		text:        svgdoc.Text{X: 70, Y: 30, S: "AB", Anchor: svgdoc.End},
		within:      image.Rect(56, 19, 70, 32),
	}, {
		description: "rotated text reads upward from the anchor point",
		text:        svgdoc.Text{X: 30, Y: 40, S: "AB", Rotate: true},
		within:      image.Rect(19, 24, 32, 41),
	}} {
		t.Run(test.description, func(t *testing.T) {
			doc := svgdoc.New(100, 60, "")
			doc.Add(test.text)
			img, err := Encode(doc)
			if err != nil {
				t.Fatalf("Encode() = err %v", err)
			}
			pts := blackPixels(img)
			if len(pts) == 0 {
				t.Fatal("Encode() drew no text pixels")
			}
			for _, pt := range pts {
				if !pt.In(test.within) {
					t.Errorf("text pixel %v outside expected region %v", pt, test.within)
				}
			}
		})
	}
}

func TestEncodeChartPixels(t *testing.T) {
	cfg := chart.Config{
		Width:  400,
		Height: 300,
		Margin: chart.Margin{Top: 40, Right: 100, Bottom: 40, Left: 60},
	}
	doc, err := chart.Bar(cfg, []chart.Category{{
		Label: "64 MB",
		Stages: []chart.StageValue{
			{Stage: "Parent RSS", Value: 12000},
			{Stage: "Child after fork", Value: 12000},
			{Stage: "Child after writes", Value: 18000},
		},
	}})
	if err != nil {
		t.Fatalf("chart.Bar() = err %v", err)
	}
	img, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() = err %v", err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 400, 300); got != want {
		t.Fatalf("Encode() bounds = %v, want %v", got, want)
	}
	// (70, 50) sits inside the plot panel left of the first bar; (120, 200)
	// is the interior of the first bar.
	if diff := cmp.Diff(color.RGBA{0xea, 0xea, 0xf2, 0xff}, rgbaAt(img, 70, 50)); diff != "" {
		t.Errorf("panel pixel mismatch (-want +got) %s", diff)
	}
	if diff := cmp.Diff(color.RGBA{0x1f, 0x77, 0xb4, 0xff}, rgbaAt(img, 120, 200)); diff != "" {
		t.Errorf("bar pixel mismatch (-want +got) %s", diff)
	}
	if diff := cmp.Diff(white, rgbaAt(img, 5, 5)); diff != "" {
		t.Errorf("canvas corner mismatch (-want +got) %s", diff)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	doc := svgdoc.New(40, 30, "")
	doc.Add(svgdoc.Rect{X: 10, Y: 10, W: 20, H: 10, Fill: "#2ca02c"})
	var buf bytes.Buffer
	if err := EncodePNG(&buf, doc); err != nil {
		t.Fatalf("EncodePNG() = err %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() = err %v", err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 40, 30); got != want {
		t.Fatalf("decoded bounds = %v, want %v", got, want)
	}
	if diff := cmp.Diff(color.RGBA{0x2c, 0xa0, 0x2c, 0xff}, rgbaAt(img, 20, 15)); diff != "" {
		t.Errorf("decoded pixel mismatch (-want +got) %s", diff)
	}
}

func TestEncodeRejectsUnsupportedColor(t *testing.T) {
	for _, test := range []struct {
		description string
		element     svgdoc.Element
	}{{
		description: "named color",
		element:     svgdoc.Rect{X: 0, Y: 0, W: 10, H: 10, Fill: "red"},
	}, {
		description: "malformed hex",
		element:     svgdoc.Line{X1: 0, Y1: 0, X2: 10, Y2: 10, Stroke: "#zzzzzz"},
	}} {
		t.Run(test.description, func(t *testing.T) {
			doc := svgdoc.New(20, 20, "")
			doc.Add(test.element)
			if _, err := Encode(doc); err == nil {
				t.Error("Encode() = nil error, want error")
			}
		})
	}
}
