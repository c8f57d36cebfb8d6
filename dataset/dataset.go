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

// Package dataset accumulates sampled measurements under a group key and a
// sub-key.  Both key levels preserve first-seen order, so anything rendered
// from a Grouped comes out in a deterministic order regardless of how the
// samples interleaved on the way in.
package dataset

// A Grouped is a two-level ordered mapping from group key to sub-key to the
// samples recorded under that pair.  The zero value is not usable; call New.
type Grouped struct {
	groups  []string
	subs    map[string][]string
	samples map[string]map[string][]float64
}

// New returns an empty Grouped.
func New() *Grouped {
	return &Grouped{
		subs:    map[string][]string{},
		samples: map[string]map[string][]float64{},
	}
}

// Add records a sample under (group, sub), registering unseen keys in
// encounter order.
func (g *Grouped) Add(group, sub string, v float64) {
	bySub, ok := g.samples[group]
	if !ok {
		bySub = map[string][]float64{}
		g.samples[group] = bySub
		g.groups = append(g.groups, group)
	}
	if _, ok := bySub[sub]; !ok {
		g.subs[group] = append(g.subs[group], sub)
	}
	bySub[sub] = append(bySub[sub], v)
}

// Groups returns the group keys in first-seen order.
func (g *Grouped) Groups() []string {
	return g.groups
}

// Subs returns the sub-keys recorded under group, in first-seen order.
func (g *Grouped) Subs(group string) []string {
	return g.subs[group]
}

// Samples returns the samples recorded under (group, sub) in insertion
// order, or nil if none were recorded.
func (g *Grouped) Samples(group, sub string) []float64 {
	bySub, ok := g.samples[group]
	if !ok {
		return nil
	}
	return bySub[sub]
}

// Mean returns the arithmetic mean of the samples under (group, sub), or 0
// if none were recorded.
func (g *Grouped) Mean(group, sub string) float64 {
	samples := g.Samples(group, sub)
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}
