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

// Package denoise turns the raw render passes of a Monte-Carlo image into
// the normalized per-pixel feature vectors a regression denoiser consumes.
//
// Work is done per denoising window, a lane batch at a time:
//
//	layout := denoise.NewLayout(denoise.Options{SecondOrder: true})
//	buf := denoise.NewBuffer[float32](denoise.Rect{X1: 640, Y1: 480}, 1)
//	win := denoise.PixelWindow(denoise.Point{X: 100, Y: 80}, 7, buf.Rect())
//
//	mean, _ := denoise.WindowMean(layout, buf, win)
//	scale := denoise.WindowScale(layout, buf, win, mean)
//
// # Components
//
//   - WindowIterator enumerates a window in batches of hwy.MaxLanes lanes,
//     with an active mask for lanes past the window's right edge.
//   - GetFeatures gathers x, y, (t), depth, normal, shadow and albedo,
//     optionally centers them, zeroes inactive lanes and appends the
//     second-order screen terms.
//   - GetFeatureScales measures deviation from the mean; the normal and
//     albedo groups share one squared-norm deviation.
//   - CalculateScale reduces a combined accumulator to one reciprocal scale
//     per feature, never larger than 1/ScaleFloor.
//
// The feature order is fixed by Layout and the pass order by Pass; every
// component indexes through them.
//
// All functions are pure over caller-owned buffers. Distinct windows may be
// processed concurrently (see ComputeWindowStats).
package denoise
