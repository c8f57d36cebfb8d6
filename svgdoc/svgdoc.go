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

// Package svgdoc assembles structured drawing commands into a standalone
// SVG document.
//
// Renderers accumulate typed elements (lines, rectangles, circles,
// polylines, text) against a Document, keeping geometry computation separate
// from text formatting, and the Document serializes exactly once.  The
// accumulated element list is also the input for alternate encoders, such as
// the PNG rasterizer.
//
// A Document never performs file I/O; persisting the serialized bytes is the
// caller's concern.
package svgdoc

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
)

// A Point is a pixel-space coordinate.  The origin is the top-left corner of
// the canvas; Y grows downward.
type Point struct {
	X, Y float64
}

// An Element is a single drawing command.
type Element interface {
	encode(b *bytes.Buffer)
}

// A Line is a stroked straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	// Stroke is the stroke color; empty means black.
	Stroke string
	// StrokeWidth is the stroke width in pixels; zero means 1.
	StrokeWidth float64
	// Dash, when nonempty, is an SVG dash pattern such as "4,3".
	Dash string
	// Opacity, when nonzero, sets the stroke opacity.
	Opacity float64
}

func (l Line) encode(b *bytes.Buffer) {
	fmt.Fprintf(b, `<line x1=%q y1=%q x2=%q y2=%q stroke=%q stroke-width=%q`,
		ftoa(l.X1), ftoa(l.Y1), ftoa(l.X2), ftoa(l.Y2),
		colorOrBlack(l.Stroke), ftoa(widthOrOne(l.StrokeWidth)))
	if l.Dash != "" {
		fmt.Fprintf(b, ` stroke-dasharray=%q`, l.Dash)
	}
	if l.Opacity != 0 {
		fmt.Fprintf(b, ` stroke-opacity=%q`, ftoa(l.Opacity))
	}
	b.WriteString("/>")
}

// A Rect is a filled rectangle, optionally outlined.
type Rect struct {
	X, Y, W, H float64
	// Fill is the fill color; empty means black.
	Fill string
	// Stroke, when nonempty, outlines the rectangle.
	Stroke string
	// StrokeWidth is the outline width; zero means 1 when Stroke is set.
	StrokeWidth float64
	// Opacity, when nonzero, sets the fill opacity.
	Opacity float64
}

func (r Rect) encode(b *bytes.Buffer) {
	fmt.Fprintf(b, `<rect x=%q y=%q width=%q height=%q fill=%q`,
		ftoa(r.X), ftoa(r.Y), ftoa(r.W), ftoa(r.H), colorOrBlack(r.Fill))
	if r.Stroke != "" {
		fmt.Fprintf(b, ` stroke=%q stroke-width=%q`,
			r.Stroke, ftoa(widthOrOne(r.StrokeWidth)))
	}
	if r.Opacity != 0 {
		fmt.Fprintf(b, ` fill-opacity=%q`, ftoa(r.Opacity))
	}
	b.WriteString("/>")
}

// A Circle is a filled circle.
type Circle struct {
	CX, CY, R float64
	// Fill is the fill color; empty means black.
	Fill string
}

func (c Circle) encode(b *bytes.Buffer) {
	fmt.Fprintf(b, `<circle cx=%q cy=%q r=%q fill=%q/>`,
		ftoa(c.CX), ftoa(c.CY), ftoa(c.R), colorOrBlack(c.Fill))
}

// A Polyline is an open stroked path through its points, unfilled.
type Polyline struct {
	Points []Point
	// Stroke is the stroke color; empty means black.
	Stroke string
	// StrokeWidth is the stroke width in pixels; zero means 1.
	StrokeWidth float64
}

func (p Polyline) encode(b *bytes.Buffer) {
	b.WriteString(`<polyline points="`)
	for i, pt := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(ftoa(pt.X))
		b.WriteByte(',')
		b.WriteString(ftoa(pt.Y))
	}
	fmt.Fprintf(b, `" fill="none" stroke=%q stroke-width=%q/>`,
		colorOrBlack(p.Stroke), ftoa(widthOrOne(p.StrokeWidth)))
}

// An Anchor positions text horizontally relative to its anchor point.
type Anchor string

const (
	// Start aligns the beginning of the text with the anchor point.
	Start Anchor = "start"
	// Middle centers the text on the anchor point.
	Middle Anchor = "middle"
	// End aligns the end of the text with the anchor point.
	End Anchor = "end"
)

// A Text is a single line of text drawn in the document's sans-serif face.
type Text struct {
	X, Y float64
	S    string
	// Size is the font size in pixels; zero means 12.
	Size float64
	// Fill is the text color; empty means black.
	Fill   string
	Anchor Anchor
	Bold   bool
	// Rotate turns the text 90 degrees counterclockwise about its anchor
	// point, for vertical axis titles.
	Rotate bool
}

func (t Text) encode(b *bytes.Buffer) {
	size := t.Size
	if size == 0 {
		size = 12
	}
	fmt.Fprintf(b, `<text x=%q y=%q font-family="sans-serif" font-size=%q fill=%q`,
		ftoa(t.X), ftoa(t.Y), ftoa(size), colorOrBlack(t.Fill))
	if t.Anchor != "" && t.Anchor != Start {
		fmt.Fprintf(b, ` text-anchor=%q`, string(t.Anchor))
	}
	if t.Bold {
		b.WriteString(` font-weight="bold"`)
	}
	if t.Rotate {
		fmt.Fprintf(b, ` transform="rotate(-90 %s %s)"`, ftoa(t.X), ftoa(t.Y))
	}
	b.WriteByte('>')
	b.WriteString(html.EscapeString(t.S))
	b.WriteString(`</text>`)
}

// A Document is an SVG document under assembly.
type Document struct {
	width, height int
	title         string
	elements      []Element
}

// New returns an empty Document with the given pixel dimensions and an
// optional accessibility title.
func New(width, height int, title string) *Document {
	return &Document{width: width, height: height, title: title}
}

// Add appends elements in drawing order.  Later elements paint over earlier
// ones.
func (d *Document) Add(els ...Element) {
	d.elements = append(d.elements, els...)
}

// Width returns the canvas width in pixels.
func (d *Document) Width() int { return d.width }

// Height returns the canvas height in pixels.
func (d *Document) Height() int { return d.height }

// Title returns the document's accessibility title.
func (d *Document) Title() string { return d.title }

// Elements returns the accumulated drawing commands in insertion order.
func (d *Document) Elements() []Element { return d.elements }

// Bytes serializes the document: XML declaration, a root carrying explicit
// pixel dimensions and a matching viewBox, the optional title, and the
// elements in insertion order.  The output is self-contained and renderable
// with no external resources.
func (d *Document) Bytes() []byte {
	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		d.width, d.height, d.width, d.height)
	if d.title != "" {
		fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(d.title))
	}
	for _, el := range d.elements {
		b.WriteString("  ")
		el.encode(&b)
		b.WriteByte('\n')
	}
	b.WriteString("</svg>\n")
	return b.Bytes()
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Bytes())
	return int64(n), err
}

// ftoa renders a pixel quantity with at most two decimal places and no
// trailing zeros.
func ftoa(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func colorOrBlack(c string) string {
	if c == "" {
		return "#000000"
	}
	return c
}

func widthOrOne(w float64) float64 {
	if w == 0 {
		return 1
	}
	return w
}
