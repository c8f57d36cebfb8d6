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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineDecreasingSeries(t *testing.T) {
	// Four timings dropping as threads increase: the y domain derives to
	// [20, 110] and pixel Y must rise as values fall.
	doc, err := Line(testConfig(), []float64{1, 2, 4, 8}, []Series{
		{Label: "1", Values: []float64{100, 55, 30, 20}},
	})
	if err != nil {
		t.Fatalf("Line() = %s", err)
	}

	markers := docCircles(doc)
	if len(markers) != 4 {
		t.Fatalf("got %d markers, want 4", len(markers))
	}
	for i := 1; i < len(markers); i++ {
		if markers[i].CY <= markers[i-1].CY {
			t.Errorf("marker %d pixel y = %v, want greater than marker %d pixel y = %v",
				i, markers[i].CY, i-1, markers[i-1].CY)
		}
	}

	polylines := docPolylines(doc)
	if len(polylines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(polylines))
	}
	points := polylines[0].Points
	if len(points) != 4 {
		t.Fatalf("polyline has %d points, want 4", len(points))
	}
	if points[0].X != 60 {
		t.Errorf("first point x = %v, want 60 (left plot edge)", points[0].X)
	}
	if points[3].X != 300 {
		t.Errorf("last point x = %v, want 300 (right plot edge)", points[3].X)
	}

	wantY := []string{"20.0", "38.0", "56.0", "74.0", "92.0", "110.0"}
	if diff := cmp.Diff(wantY, yTickLabels(doc)); diff != "" {
		t.Errorf("y tick labels diff (-want +got):\n%s", diff)
	}
	wantX := []string{"1", "2", "4", "8"}
	if diff := cmp.Diff(wantX, xTickLabels(doc)); diff != "" {
		t.Errorf("x tick labels diff (-want +got):\n%s", diff)
	}
}

func TestLineSinglePoint(t *testing.T) {
	doc, err := Line(testConfig(), []float64{3}, []Series{
		{Label: "only", Values: []float64{42}},
	})
	if err != nil {
		t.Fatalf("Line() = %s", err)
	}
	if polylines := docPolylines(doc); len(polylines) != 0 {
		t.Errorf("got %d polylines, want 0 for a single-point series", len(polylines))
	}
	markers := docCircles(doc)
	if len(markers) != 1 {
		t.Fatalf("got %d markers, want 1", len(markers))
	}
	// A one-point x-domain centers on the plot area; the sole value sits on
	// the bottom edge of its derived y domain.
	if got, want := markers[0].CX, 180.0; got != want {
		t.Errorf("marker x = %v, want %v", got, want)
	}
	if got, want := markers[0].CY, 260.0; got != want {
		t.Errorf("marker y = %v, want %v", got, want)
	}
}

func TestLineIdenticalSeriesCoincide(t *testing.T) {
	values := []float64{5, 9, 3, 7}
	doc, err := Line(testConfig(), []float64{1, 2, 3, 4}, []Series{
		{Label: "a", Values: values},
		{Label: "b", Values: values},
	})
	if err != nil {
		t.Fatalf("Line() = %s", err)
	}
	polylines := docPolylines(doc)
	if len(polylines) != 2 {
		t.Fatalf("got %d polylines, want 2", len(polylines))
	}
	if diff := cmp.Diff(polylines[0].Points, polylines[1].Points); diff != "" {
		t.Errorf("identical series map to different geometry (-first +second):\n%s", diff)
	}
}

func TestLineFlatSeriesWidensDomain(t *testing.T) {
	for _, test := range []struct {
		description string
		values      []float64
		wantTicks   []string
	}{{
		description: "all zero",
		values:      []float64{0, 0},
		wantTicks:   []string{"0.0", "0.2", "0.4", "0.6", "0.8", "1.0"},
	}, {
		description: "flat negative",
		values:      []float64{-10, -10},
		wantTicks:   []string{"-10.0", "-9.8", "-9.6", "-9.4", "-9.2", "-9.0"},
	}} {
		t.Run(test.description, func(t *testing.T) {
			doc, err := Line(testConfig(), []float64{1, 2}, []Series{
				{Label: "flat", Values: test.values},
			})
			if err != nil {
				t.Fatalf("Line() = %s", err)
			}
			if diff := cmp.Diff(test.wantTicks, yTickLabels(doc)); diff != "" {
				t.Errorf("y tick labels diff (-want +got):\n%s", diff)
			}
			for i, m := range docCircles(doc) {
				if m.CY != 260 {
					t.Errorf("marker %d pixel y = %v, want 260 (baseline)", i, m.CY)
				}
			}
		})
	}
}

func TestLineReferenceLine(t *testing.T) {
	for _, test := range []struct {
		description string
		ref         float64
		want        int
	}{{
		description: "reference inside the domain is drawn",
		ref:         1.0,
		want:        1,
	}, {
		description: "reference below the domain is omitted",
		ref:         0.5,
		want:        0,
	}} {
		t.Run(test.description, func(t *testing.T) {
			cfg := testConfig()
			cfg.RefLineY = &test.ref
			doc, err := Line(cfg, []float64{1, 2}, []Series{
				{Label: "s", Values: []float64{1.0, 1.8}},
			})
			if err != nil {
				t.Fatalf("Line() = %s", err)
			}
			got := 0
			for _, l := range docLines(doc) {
				if l.Stroke == refStroke {
					got++
				}
			}
			if got != test.want {
				t.Errorf("got %d reference lines, want %d", got, test.want)
			}
		})
	}
}

func TestLineIsDeterministic(t *testing.T) {
	render := func() string {
		doc, err := Line(testConfig(), []float64{1, 2, 4, 8}, []Series{
			{Label: "1", Values: []float64{100, 55, 30, 20}},
			{Label: "2", Values: []float64{90, 50, 28, 19}},
		})
		if err != nil {
			t.Fatalf("Line() = %s", err)
		}
		return string(doc.Bytes())
	}
	if diff := cmp.Diff(render(), render()); diff != "" {
		t.Errorf("two renders of the same input differ:\n%s", diff)
	}
}
