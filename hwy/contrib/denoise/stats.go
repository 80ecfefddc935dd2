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

// NewVectors returns n zero vectors, ready to be used as accumulators.
func NewVectors[T hwy.Floats](n int) []hwy.Vec[T] {
	vs := make([]hwy.Vec[T], n)
	for i := range vs {
		vs[i] = hwy.Zero[T]()
	}
	return vs
}

// AccumulateMax folds a batch of scale deviations into acc lane-wise.
func AccumulateMax[T hwy.Floats](acc, scales []hwy.Vec[T]) {
	for i := range min(len(acc), len(scales)) {
		acc[i] = hwy.Max(acc[i], scales[i])
	}
}

// AccumulateSum adds a batch of features into acc lane-wise.
func AccumulateSum[T hwy.Floats](acc, features []hwy.Vec[T]) {
	for i := range min(len(acc), len(features)) {
		acc[i] = hwy.Add(acc[i], features[i])
	}
}

// WindowMean averages the un-centered base features over the active pixels
// of win. It returns the mean (layout.NumBase() entries) and the number of
// pixels averaged; an empty window yields a zero mean.
func WindowMean[T hwy.Floats](layout *Layout, buf *Buffer[T], win Window) ([]T, int) {
	features := make([]hwy.Vec[T], layout.NumFeatures())
	sum := NewVectors[T](layout.NumBase())
	pixels := 0

	it := NewWindowIterator(buf, layout, win)
	for it.Next() {
		batch := it.Batch()
		GetFeatures(layout, buf, batch, nil, features)
		AccumulateSum(sum, features[:layout.NumBase()])
		pixels += batch.Active.CountTrue()
	}

	mean := make([]T, layout.NumBase())
	if pixels == 0 {
		return mean, 0
	}
	for i := range mean {
		mean[i] = hwy.ReduceSum(sum[i]) / T(pixels)
	}
	return mean, pixels
}

// WindowScale returns the reciprocal scale of every base feature over win:
// the lane-wise maximum of GetFeatureScales across all batches, reduced by
// CalculateScale.
func WindowScale[T hwy.Floats](layout *Layout, buf *Buffer[T], win Window, mean []T) []T {
	acc := NewVectors[T](layout.NumBase())
	scales := make([]hwy.Vec[T], layout.NumBase())

	it := NewWindowIterator(buf, layout, win)
	for it.Next() {
		GetFeatureScales(layout, buf, it.Batch(), mean, scales)
		AccumulateMax(acc, scales)
	}

	CalculateScale(layout, acc)
	return ScaleValues(layout, acc)
}

// WindowStats holds the statistics of one denoising window.
type WindowStats[T hwy.Floats] struct {
	Window Window
	// Mean is the per-feature mean over the window's active pixels.
	Mean []T
	// Scale is the per-feature reciprocal normalization factor.
	Scale []T
	// Pixels is the number of pixels the statistics were gathered from.
	Pixels int
}

// NewWindowStats gathers the mean and then the scale of win.
func NewWindowStats[T hwy.Floats](layout *Layout, buf *Buffer[T], win Window) WindowStats[T] {
	mean, pixels := WindowMean(layout, buf, win)
	return WindowStats[T]{
		Window: win,
		Mean:   mean,
		Scale:  WindowScale(layout, buf, win, mean),
		Pixels: pixels,
	}
}

// Features returns the centered, masked and normalized feature vectors of
// every lane batch of the window, in traversal order.
func (s WindowStats[T]) Features(layout *Layout, buf *Buffer[T]) [][]hwy.Vec[T] {
	scales := make([]hwy.Vec[T], len(s.Scale))
	for i, v := range s.Scale {
		scales[i] = hwy.Set(v)
	}

	it := NewWindowIterator(buf, layout, s.Window)
	out := make([][]hwy.Vec[T], 0, it.NumBatches())
	for it.Next() {
		features := make([]hwy.Vec[T], layout.NumFeatures())
		GetFeatures(layout, buf, it.Batch(), s.Mean, features)
		NormalizeFeatures(layout, features, scales)
		out = append(out, features)
	}
	return out
}
