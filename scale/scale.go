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

// Package scale provides linear data-to-pixel coordinate mapping, evenly
// spaced tick planning, and tick label formatting for chart axes.
package scale

import (
	"math"
	"strconv"
	"strings"
)

// DefaultTickCount is the number of intervals a value axis is divided into.
// An axis using it shows DefaultTickCount+1 tick values, including both
// domain endpoints.
const DefaultTickCount = 5

// Linear maps a data-space interval onto a pixel-space interval by linear
// interpolation.  An inverted pixel axis (the usual case for Y, since the
// pixel origin is the top-left corner) is expressed by passing a range whose
// start is greater than its end.
type Linear struct {
	domainMin, domainMax float64
	rangeStart, rangeEnd float64
}

// NewLinear returns a Linear mapping [domainMin, domainMax] onto
// [rangeStart, rangeEnd].
func NewLinear(domainMin, domainMax, rangeStart, rangeEnd float64) Linear {
	return Linear{
		domainMin:  domainMin,
		domainMax:  domainMax,
		rangeStart: rangeStart,
		rangeEnd:   rangeEnd,
	}
}

// Map returns the pixel position of v.  Map is total: a degenerate domain
// (domainMin == domainMax) maps every value to the midpoint of the range
// rather than dividing by zero.
func (l Linear) Map(v float64) float64 {
	if l.domainMax == l.domainMin {
		return (l.rangeStart + l.rangeEnd) / 2
	}
	t := (v - l.domainMin) / (l.domainMax - l.domainMin)
	return l.rangeStart + t*(l.rangeEnd-l.rangeStart)
}

// Ticks returns count+1 evenly spaced values spanning [min, max], inclusive
// of both endpoints.  The first and last ticks are exactly min and max; no
// floating accumulation drift reaches the endpoints.
func Ticks(min, max float64, count int) []float64 {
	if count < 1 {
		count = 1
	}
	ticks := make([]float64, count+1)
	step := (max - min) / float64(count)
	for i := 0; i < count; i++ {
		ticks[i] = min + float64(i)*step
	}
	ticks[count] = max
	return ticks
}

// A Formatter renders a tick value as an axis label.
type Formatter func(v float64) string

// FormatFixed returns a Formatter rendering values with prec digits after
// the decimal point.
func FormatFixed(prec int) Formatter {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}
}

// FormatAuto renders a value with the fewest digits that reproduce it
// exactly, so integral domains label as "1", "2", "4".
func FormatAuto(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatGrouped renders a value rounded to the nearest integer with comma
// thousands separators, as in "12,000".
func FormatGrouped(v float64) string {
	n := int64(math.Round(v))
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead == 0 {
			lead = 3
		}
		b.WriteString(s[:lead])
		for i := lead; i < len(s); i += 3 {
			b.WriteByte(',')
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}
