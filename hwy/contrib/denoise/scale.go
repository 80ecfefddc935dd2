// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package denoise

import "github.com/rendertools/hwydenoise/hwy"

// ScaleFloor is the smallest deviation a scale is computed from, so no
// normalization factor exceeds 1/ScaleFloor = 100.
const ScaleFloor = 0.01

const numGroups = 3

// GetFeatureScales measures how far one lane batch deviates from mean,
// writing layout.NumBase() vectors into scales in feature order.
//
// Scalar features get |raw - mean|. The normal and albedo groups get the
// squared Euclidean distance of their three components from the group mean,
// written identically into all three slots. Inactive lanes are zero.
func GetFeatureScales[T hwy.Floats](layout *Layout, buf *Buffer[T], batch *LaneBatch[T], mean []T, scales []hwy.Vec[T]) {
	n := layout.NumBase()
	if len(scales) < n {
		panic("denoise: scales slice too short")
	}
	if len(mean) < n {
		panic("denoise: mean slice too short")
	}

	var group [numGroups]hwy.Vec[T]
	var seen [numGroups]bool

	for i := range n {
		f := layout.Feature(i)
		g := f.Group()

		var dev hwy.Vec[T]
		if g == GroupScalar {
			dev = hwy.Abs(hwy.Sub(rawFeature(f, buf, batch), hwy.Set(mean[i])))
		} else {
			if !seen[g] {
				group[g] = groupDeviation(layout, buf, batch, mean, g)
				seen[g] = true
			}
			dev = group[g]
		}
		scales[i] = hwy.IfThenElseZero(batch.Active, dev)
	}
}

// groupDeviation sums the squared differences of every pass in g, in pass
// order.
func groupDeviation[T hwy.Floats](layout *Layout, buf *Buffer[T], batch *LaneBatch[T], mean []T, g Group) hwy.Vec[T] {
	sum := hwy.Zero[T]()
	for p := range NumPasses {
		if p.Group() != g {
			continue
		}
		d := hwy.Sub(buf.load(batch, p), hwy.Set(mean[layout.PassIndex(p)]))
		sum = hwy.Add(sum, hwy.Mul(d, d))
	}
	return sum
}

// CalculateScale reduces a window's combined accumulator, in place, to one
// reciprocal scale per base feature broadcast to every lane.
//
// Grouped features hold squared norms, so their lanes are square-rooted
// before the horizontal maximum. The maximum is clamped to ScaleFloor, and
// a NaN anywhere in the accumulator also yields the floor, so no scale
// exceeds 1/ScaleFloor. The reciprocal is an exact division (1/max), not a
// hardware reciprocal estimate.
func CalculateScale[T hwy.Floats](layout *Layout, scales []hwy.Vec[T]) {
	n := layout.NumBase()
	if len(scales) < n {
		panic("denoise: scales slice too short")
	}

	one := hwy.Set(T(1))
	floor := hwy.Set(T(ScaleFloor))
	for i := range n {
		v := scales[i]
		if layout.Group(i) != GroupScalar {
			v = hwy.Sqrt(v)
		}
		m := hwy.Max(floor, hwy.Set(hwy.ReduceMax(v)))
		scales[i] = hwy.Div(one, m)
	}
}

// ScaleValues returns the scalar held by each reduced scale vector.
func ScaleValues[T hwy.Floats](layout *Layout, scales []hwy.Vec[T]) []T {
	out := make([]T, layout.NumBase())
	for i := range out {
		out[i] = hwy.GetLane(scales[i], 0)
	}
	return out
}
