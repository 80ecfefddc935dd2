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

// GetFeatures writes the feature vector of one lane batch into features,
// which must hold layout.NumFeatures() vectors.
//
// Coordinates come from the batch and the eight passes from buf. When mean
// is non-nil (layout.NumBase() entries) every base feature is centered on
// it. Inactive lanes are then forced to zero in every feature, and finally
// the second-order terms, if enabled, are formed from the centered and
// masked x and y.
func GetFeatures[T hwy.Floats](layout *Layout, buf *Buffer[T], batch *LaneBatch[T], mean []T, features []hwy.Vec[T]) {
	if len(features) < layout.NumFeatures() {
		panic("denoise: features slice too short")
	}
	if mean != nil && len(mean) < layout.NumBase() {
		panic("denoise: mean slice too short")
	}

	for i := range layout.NumBase() {
		v := rawFeature(layout.Feature(i), buf, batch)
		if mean != nil {
			v = hwy.Sub(v, hwy.Set(mean[i]))
		}
		features[i] = hwy.IfThenElseZero(batch.Active, v)
	}

	if layout.SecondOrder() {
		secondOrder(layout, features)
	}
}

// rawFeature returns the un-centered, un-masked lanes of a base feature.
func rawFeature[T hwy.Floats](f Feature, buf *Buffer[T], batch *LaneBatch[T]) hwy.Vec[T] {
	switch f {
	case FeatureX:
		return batch.X
	case FeatureY:
		return batch.Y
	case FeatureT:
		return batch.Time
	}
	p, ok := f.Pass()
	if !ok {
		panic("denoise: " + f.String() + " is not a base feature")
	}
	return buf.load(batch, p)
}

// NormalizeFeatures multiplies each base feature by its scale, as produced
// by CalculateScale, and rebuilds the second-order terms from the scaled x
// and y so they inherit that normalization.
func NormalizeFeatures[T hwy.Floats](layout *Layout, features, scales []hwy.Vec[T]) {
	if len(features) < layout.NumFeatures() {
		panic("denoise: features slice too short")
	}
	if len(scales) < layout.NumBase() {
		panic("denoise: scales slice too short")
	}

	for i := range layout.NumBase() {
		features[i] = hwy.Mul(features[i], scales[i])
	}

	if layout.SecondOrder() {
		secondOrder(layout, features)
	}
}

func secondOrder[T hwy.Floats](layout *Layout, features []hwy.Vec[T]) {
	x := features[layout.Index(FeatureX)]
	y := features[layout.Index(FeatureY)]
	features[layout.Index(FeatureXX)] = hwy.Mul(x, x)
	features[layout.Index(FeatureYY)] = hwy.Mul(y, y)
	features[layout.Index(FeatureXY)] = hwy.Mul(x, y)
}
