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

// Package raster renders an assembled chart document onto a pixel canvas,
// for output formats such as PNG.
//
// The rasterizer replays the document's element list, so the geometry is
// exactly what the SVG serialization describes.  Text is drawn with the
// fixed-size 7x13 bitmap face; the font size recorded on a text element only
// affects the SVG encoding.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/osmetrics/benchviz/svgdoc"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// Encode replays doc's drawing commands onto a white canvas and returns the
// resulting image.
func Encode(doc *svgdoc.Document) (*image.RGBA, error) {
	w, h := doc.Width(), doc.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid canvas dimensions %dx%d", w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	c := &canvas{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(w, h, scanner),
		dasher:  rasterx.NewDasher(w, h, scanner),
	}
	for _, el := range doc.Elements() {
		var err error
		switch el := el.(type) {
		case svgdoc.Rect:
			err = c.rect(el)
		case svgdoc.Circle:
			err = c.circle(el)
		case svgdoc.Line:
			err = c.line(el)
		case svgdoc.Polyline:
			err = c.polyline(el)
		case svgdoc.Text:
			err = c.text(el)
		default:
			err = fmt.Errorf("raster: unsupported element type %T", el)
		}
		if err != nil {
			return nil, err
		}
	}
	return img, nil
}

// EncodePNG renders doc and writes the result to w as a PNG image.
func EncodePNG(w io.Writer, doc *svgdoc.Document) error {
	img, err := Encode(doc)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// canvas holds one rasterizer pair over a shared scanner.  Fill and stroke
// passes run sequentially, clearing accumulated state between paths.
type canvas struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher
}

// fill paints the path accumulated by add.  The path must be closed by add
// (the rasterx shape helpers close the paths they emit).
func (c *canvas) fill(col color.Color, add func(rasterx.Adder)) {
	c.filler.Clear()
	add(c.filler)
	c.scanner.SetColor(col)
	c.filler.Draw()
}

func (c *canvas) stroke(col color.Color, width float64, dash []float64, add func(rasterx.Adder)) {
	c.dasher.Clear()
	c.dasher.SetStroke(
		fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Bevel,
		dash, 0)
	add(c.dasher)
	c.scanner.SetColor(col)
	c.dasher.Draw()
}

func (c *canvas) rect(r svgdoc.Rect) error {
	fill, err := parseColor(r.Fill, r.Opacity)
	if err != nil {
		return err
	}
	c.fill(fill, func(p rasterx.Adder) {
		rasterx.AddRect(r.X, r.Y, r.X+r.W, r.Y+r.H, 0, p)
	})
	if r.Stroke == "" {
		return nil
	}
	edge, err := parseColor(r.Stroke, 0)
	if err != nil {
		return err
	}
	c.stroke(edge, widthOrOne(r.StrokeWidth), nil, func(p rasterx.Adder) {
		rasterx.AddRect(r.X, r.Y, r.X+r.W, r.Y+r.H, 0, p)
	})
	return nil
}

func (c *canvas) circle(ci svgdoc.Circle) error {
	fill, err := parseColor(ci.Fill, 0)
	if err != nil {
		return err
	}
	c.fill(fill, func(p rasterx.Adder) {
		rasterx.AddCircle(ci.CX, ci.CY, ci.R, p)
	})
	return nil
}

func (c *canvas) line(l svgdoc.Line) error {
	col, err := parseColor(l.Stroke, l.Opacity)
	if err != nil {
		return err
	}
	dash, err := parseDash(l.Dash)
	if err != nil {
		return err
	}
	c.stroke(col, widthOrOne(l.StrokeWidth), dash, func(p rasterx.Adder) {
		p.Start(rasterx.ToFixedP(l.X1, l.Y1))
		p.Line(rasterx.ToFixedP(l.X2, l.Y2))
		p.Stop(false)
	})
	return nil
}

func (c *canvas) polyline(pl svgdoc.Polyline) error {
	if len(pl.Points) < 2 {
		return nil
	}
	col, err := parseColor(pl.Stroke, 0)
	if err != nil {
		return err
	}
	c.stroke(col, widthOrOne(pl.StrokeWidth), nil, func(p rasterx.Adder) {
		p.Start(rasterx.ToFixedP(pl.Points[0].X, pl.Points[0].Y))
		for _, pt := range pl.Points[1:] {
			p.Line(rasterx.ToFixedP(pt.X, pt.Y))
		}
		p.Stop(false)
	})
	return nil
}

func (c *canvas) text(t svgdoc.Text) error {
	col, err := parseColor(t.Fill, 0)
	if err != nil {
		return err
	}
	adv := font.MeasureString(face, t.S)
	var shift fixed.Int26_6
	switch t.Anchor {
	case svgdoc.Middle:
		shift = adv / 2
	case svgdoc.End:
		shift = adv
	}
	if !t.Rotate {
		d := font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(col),
			Face: face,
		}
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(math.Round(t.X*64)) - shift,
			Y: fixed.Int26_6(math.Round(t.Y * 64)),
		}
		d.DrawString(t.S)
		if t.Bold {
			d.Dot = fixed.Point26_6{
				X: fixed.Int26_6(math.Round(t.X*64)) - shift + 64,
				Y: fixed.Int26_6(math.Round(t.Y * 64)),
			}
			d.DrawString(t.S)
		}
		return nil
	}

	// Rotated text is drawn horizontally into a scratch image and copied one
	// pixel at a time, turned a quarter turn counterclockwise about the
	// anchor point.
	scratch := image.NewRGBA(image.Rect(0, 0, adv.Ceil()+2, face.Ascent+face.Descent))
	d := font.Drawer{
		Dst:  scratch,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(t.S)
	if t.Bold {
		d.Dot = fixed.P(1, face.Ascent)
		d.DrawString(t.S)
	}
	xi := int(math.Round(t.X))
	yi := int(math.Round(t.Y))
	shiftPx := shift.Round()
	b := scratch.Bounds()
	for sy := b.Min.Y; sy < b.Max.Y; sy++ {
		for sx := b.Min.X; sx < b.Max.X; sx++ {
			if _, _, _, a := scratch.At(sx, sy).RGBA(); a != 0 {
				c.img.Set(xi+sy-face.Ascent, yi-sx+shiftPx, col)
			}
		}
	}
	return nil
}

// parseColor resolves the color syntax the chart renderers emit: "#rrggbb"
// hex, with the empty string meaning black.  A nonzero opacity below one
// scales the alpha channel.
func parseColor(s string, opacity float64) (color.Color, error) {
	if s == "" {
		s = "#000000"
	}
	if len(s) != 7 || s[0] != '#' {
		return nil, fmt.Errorf("raster: unsupported color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("raster: unsupported color %q", s)
	}
	c := color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	if opacity != 0 && opacity < 1 {
		return rasterx.ApplyOpacity(c, opacity), nil
	}
	return c, nil
}

// parseDash converts an SVG dash pattern such as "4,3" to stroke dash
// lengths in pixels.
func parseDash(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	dash := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("raster: unsupported dash pattern %q", s)
		}
		dash[i] = v
	}
	return dash, nil
}

func widthOrOne(w float64) float64 {
	if w == 0 {
		return 1
	}
	return w
}
