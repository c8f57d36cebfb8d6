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

package svgdoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func encodeOne(el Element) string {
	var b bytes.Buffer
	el.encode(&b)
	return b.String()
}

func TestElementEncoding(t *testing.T) {
	for _, test := range []struct {
		description string
		element     Element
		want        string
	}{{
		description: "line with defaults",
		element:     Line{X1: 1, Y1: 2, X2: 3, Y2: 4.5, Stroke: "#444444"},
		want:        `<line x1="1" y1="2" x2="3" y2="4.5" stroke="#444444" stroke-width="1"/>`,
	}, {
		description: "dashed translucent line",
		element: Line{
			X1: 0, Y1: 0, X2: 10, Y2: 0,
			Stroke: "#ffffff", StrokeWidth: 0.8, Dash: "4,3", Opacity: 0.5,
		},
		want: `<line x1="0" y1="0" x2="10" y2="0" stroke="#ffffff" stroke-width="0.8" stroke-dasharray="4,3" stroke-opacity="0.5"/>`,
	}, {
		description: "plain rect",
		element:     Rect{X: 5, Y: 6, W: 7, H: 8, Fill: "#1f77b4"},
		want:        `<rect x="5" y="6" width="7" height="8" fill="#1f77b4"/>`,
	}, {
		description: "outlined rect",
		element: Rect{
			X: 5, Y: 6, W: 7, H: 8,
			Fill: "#1f77b4", Stroke: "#222222", StrokeWidth: 0.7,
		},
		want: `<rect x="5" y="6" width="7" height="8" fill="#1f77b4" stroke="#222222" stroke-width="0.7"/>`,
	}, {
		description: "circle",
		element:     Circle{CX: 1.25, CY: 2.5, R: 3.5, Fill: "#ff7f0e"},
		want:        `<circle cx="1.25" cy="2.5" r="3.5" fill="#ff7f0e"/>`,
	}, {
		description: "polyline",
		element: Polyline{
			Points: []Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
			Stroke: "#2ca02c", StrokeWidth: 2,
		},
		want: `<polyline points="1,2 3,4" fill="none" stroke="#2ca02c" stroke-width="2"/>`,
	}, {
		description: "anchored text escapes content",
		element: Text{
			X: 10, Y: 20, S: "a<b & c",
			Size: 11, Fill: "#333333", Anchor: Middle,
		},
		want: `<text x="10" y="20" font-family="sans-serif" font-size="11" fill="#333333" text-anchor="middle">a&lt;b &amp; c</text>`,
	}, {
		description: "rotated bold text with defaults",
		element: Text{
			X: 24, Y: 280, S: "RSS (kB)",
			Anchor: Middle, Bold: true, Rotate: true,
		},
		want: `<text x="24" y="280" font-family="sans-serif" font-size="12" fill="#000000" text-anchor="middle" font-weight="bold" transform="rotate(-90 24 280)">RSS (kB)</text>`,
	}, {
		description: "start-anchored text omits the anchor attribute",
		element:     Text{X: 1, Y: 2, S: "legend", Anchor: Start},
		want:        `<text x="1" y="2" font-family="sans-serif" font-size="12" fill="#000000">legend</text>`,
	}} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, encodeOne(test.element)); diff != "" {
				t.Errorf("encoded element diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDocumentBytes(t *testing.T) {
	doc := New(200, 100, "demo & more")
	doc.Add(
		Rect{X: 0, Y: 0, W: 200, H: 100, Fill: "#eaeaf2"},
		Line{X1: 0, Y1: 50, X2: 200, Y2: 50, Stroke: "#444444"},
	)
	want := strings.Join([]string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100">`,
		`  <title>demo &amp; more</title>`,
		`  <rect x="0" y="0" width="200" height="100" fill="#eaeaf2"/>`,
		`  <line x1="0" y1="50" x2="200" y2="50" stroke="#444444" stroke-width="1"/>`,
		`</svg>`,
		``,
	}, "\n")
	if diff := cmp.Diff(want, string(doc.Bytes())); diff != "" {
		t.Errorf("document diff (-want +got):\n%s", diff)
	}
}

func TestDocumentWithoutTitle(t *testing.T) {
	doc := New(10, 10, "")
	if got := string(doc.Bytes()); strings.Contains(got, "<title>") {
		t.Errorf("document contains a title element, want none:\n%s", got)
	}
}

func TestDocumentPreservesInsertionOrder(t *testing.T) {
	doc := New(10, 10, "")
	doc.Add(Circle{CX: 1, CY: 1, R: 1, Fill: "#111111"})
	doc.Add(Circle{CX: 2, CY: 2, R: 2, Fill: "#222222"})
	doc.Add(Circle{CX: 3, CY: 3, R: 3, Fill: "#333333"})
	var got []float64
	for _, el := range doc.Elements() {
		c, ok := el.(Circle)
		if !ok {
			t.Fatalf("unexpected element %T", el)
		}
		got = append(got, c.CX)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, got); diff != "" {
		t.Errorf("element order diff (-want +got):\n%s", diff)
	}
}

func TestDocumentWriteTo(t *testing.T) {
	doc := New(10, 10, "t")
	doc.Add(Circle{CX: 1, CY: 1, R: 1, Fill: "#111111"})
	var b bytes.Buffer
	n, err := doc.WriteTo(&b)
	if err != nil {
		t.Fatalf("WriteTo: %s", err)
	}
	if n != int64(b.Len()) {
		t.Errorf("WriteTo reported %d bytes, wrote %d", n, b.Len())
	}
	if diff := cmp.Diff(string(doc.Bytes()), b.String()); diff != "" {
		t.Errorf("WriteTo output diff (-want +got):\n%s", diff)
	}
}
