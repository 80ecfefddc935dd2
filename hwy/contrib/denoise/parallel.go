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

import (
	"github.com/rendertools/hwydenoise/hwy"
	"github.com/rendertools/hwydenoise/hwy/contrib/workerpool"
)

// MinParallelWindows is the window count below which ComputeWindowStats
// stays on the calling goroutine.
const MinParallelWindows = 4

// PixelWindow returns the window of the given radius centered on p,
// clipped to bounds.
func PixelWindow(p Point, radius int, bounds Rect) Window {
	return Window{
		Low:  Point{X: max(bounds.X0, p.X-radius), Y: max(bounds.Y0, p.Y-radius)},
		High: Point{X: min(bounds.X1, p.X+radius+1), Y: min(bounds.Y1, p.Y+radius+1)},
	}
}

// TileWindows splits bounds into size x size windows, row by row. Edge
// tiles are clipped.
func TileWindows(bounds Rect, size int) []Window {
	if size <= 0 || bounds.IsEmpty() {
		return nil
	}
	var wins []Window
	for y := bounds.Y0; y < bounds.Y1; y += size {
		for x := bounds.X0; x < bounds.X1; x += size {
			wins = append(wins, Window{
				Low:  Point{X: x, Y: y},
				High: Point{X: min(x+size, bounds.X1), Y: min(y+size, bounds.Y1)},
			})
		}
	}
	return wins
}

// ComputeWindowStats gathers NewWindowStats for every window. Windows are
// independent and each writes only its own result slot, so they are spread
// over pool; a nil pool or a short list runs sequentially.
func ComputeWindowStats[T hwy.Floats](pool *workerpool.Pool, layout *Layout, buf *Buffer[T], windows []Window) []WindowStats[T] {
	out := make([]WindowStats[T], len(windows))
	if pool == nil || len(windows) < MinParallelWindows {
		for i, win := range windows {
			out[i] = NewWindowStats(layout, buf, win)
		}
		return out
	}

	pool.ParallelForAtomic(len(windows), func(i int) {
		out[i] = NewWindowStats(layout, buf, windows[i])
	})
	return out
}
