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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/rendertools/hwydenoise/hwy"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

// newTestBuffer builds a float32 buffer whose passes are filled by fill.
func newTestBuffer(tb testing.TB, rect Rect, frames int, fill func(x, y, frame int, p Pass) float32) *Buffer[float32] {
	tb.Helper()
	buf := NewBuffer[float32](rect, frames)
	for f := range frames {
		for y := rect.Y0; y < rect.Y1; y++ {
			for x := rect.X0; x < rect.X1; x++ {
				for p := range NumPasses {
					buf.Set(x, y, f, p, fill(x, y, f, p))
				}
			}
		}
	}
	return buf
}

// garbage fills every pass with large distinct values.
func garbage(x, y, frame int, p Pass) float32 {
	return 1000 + float32(x) + 100*float32(y) + 10*float32(p) + 5000*float32(frame)
}

func firstBatch(tb testing.TB, buf *Buffer[float32], layout *Layout, win Window) *LaneBatch[float32] {
	tb.Helper()
	it := NewWindowIterator(buf, layout, win)
	if !it.Next() {
		tb.Fatalf("window %+v yielded no batches", win)
	}
	return it.Batch()
}

// vec builds a full-width vector whose leading lanes are vals.
func vec(vals ...float32) hwy.Vec[float32] {
	data := make([]float32, max(hwy.MaxLanes[float32](), len(vals)))
	copy(data, vals)
	return hwy.Load(data)
}

// padded returns vals followed by zeros up to the lane count.
func padded(vals ...float32) []float32 {
	return vec(vals...).Data()
}

func checkLanes(t *testing.T, name string, got hwy.Vec[float32], want []float32) {
	t.Helper()
	if diff := cmp.Diff(want, got.Data(), approx); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
	}
}
