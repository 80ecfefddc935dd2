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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rendertools/hwydenoise/hwy"
)

type pixelFill func(x, y, frame int, p Pass) float32

// windowSamples lists, per base feature, the value of every pixel of win.
func windowSamples(layout *Layout, win Window, fill pixelFill) [][]float64 {
	frames := 1
	if layout.Temporal() {
		frames = max(win.Frames, 1)
	}
	out := make([][]float64, layout.NumBase())
	for frame := range frames {
		for y := win.Low.Y; y < win.High.Y; y++ {
			for x := win.Low.X; x < win.High.X; x++ {
				for i := range layout.NumBase() {
					var v float64
					switch f := layout.Feature(i); f {
					case FeatureX:
						v = float64(x)
					case FeatureY:
						v = float64(y)
					case FeatureT:
						v = float64(FrameOffset(frame, win.PrevFrames))
					default:
						p, _ := f.Pass()
						v = float64(fill(x, y, frame, p))
					}
					out[i] = append(out[i], v)
				}
			}
		}
	}
	return out
}

// wantScales computes the reciprocal scales of win directly from samples.
func wantScales(layout *Layout, samples [][]float64, mean []float64) []float64 {
	out := make([]float64, layout.NumBase())
	for i := range out {
		dev := make([]float64, len(samples[i]))
		for k := range dev {
			if g := layout.Group(i); g == GroupScalar {
				dev[k] = math.Abs(samples[i][k] - mean[i])
			} else {
				for j := range layout.NumBase() {
					if layout.Group(j) == g {
						d := samples[j][k] - mean[j]
						dev[k] += d * d
					}
				}
				dev[k] = math.Sqrt(dev[k])
			}
		}
		out[i] = 1 / math.Max(floats.Max(dev), ScaleFloor)
	}
	return out
}

func smoothScene(x, y, frame int, p Pass) float32 {
	switch p.Group() {
	case GroupNormal:
		return float32(math.Sin(float64(x)*0.3+float64(p))) * 0.5
	case GroupAlbedo:
		return float32((x+2*y+int(p))%5) * 0.2
	}
	return float32(x*x)*0.01 + float32(y) + float32(frame)*0.5
}

var statsWindows = []struct {
	name   string
	opts   Options
	win    Window
	frames int
}{
	{"single batch", Options{}, Window{Low: Point{2, 1}, High: Point{5, 3}}, 1},
	{"wide", Options{SecondOrder: true}, Window{Low: Point{1, 0}, High: Point{20, 6}}, 1},
	{"temporal", Options{Temporal: true}, Window{Low: Point{3, 2}, High: Point{14, 7}, Frames: 3, PrevFrames: 1}, 3},
	{"temporal second order", Options{Temporal: true, SecondOrder: true}, Window{Low: Point{0, 0}, High: Point{24, 8}, Frames: 2, PrevFrames: 0}, 2},
}

func TestWindowMean(t *testing.T) {
	for _, tt := range statsWindows {
		t.Run(tt.name, func(t *testing.T) {
			layout := NewLayout(tt.opts)
			buf := newTestBuffer(t, Rect{X1: 24, Y1: 8}, tt.frames, smoothScene)

			got, pixels := WindowMean(layout, buf, tt.win)
			samples := windowSamples(layout, tt.win, smoothScene)
			if want := len(samples[0]); pixels != want {
				t.Errorf("pixels: got %d, want %d", pixels, want)
			}
			want := make([]float32, layout.NumBase())
			for i := range want {
				want[i] = float32(stat.Mean(samples[i], nil))
			}
			if diff := cmp.Diff(want, got, cmp.Comparer(closeTo(1e-4))); diff != "" {
				t.Errorf("mean mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWindowMeanEmpty(t *testing.T) {
	layout := NewLayout(Options{Temporal: true})
	buf := newTestBuffer(t, Rect{X1: 8, Y1: 8}, 1, garbage)
	mean, pixels := WindowMean(layout, buf, Window{Low: Point{3, 3}, High: Point{3, 6}})
	if pixels != 0 {
		t.Errorf("pixels: got %d, want 0", pixels)
	}
	if diff := cmp.Diff(make([]float32, layout.NumBase()), mean); diff != "" {
		t.Errorf("mean of empty window (-want +got):\n%s", diff)
	}
}

func TestWindowScale(t *testing.T) {
	for _, tt := range statsWindows {
		t.Run(tt.name, func(t *testing.T) {
			layout := NewLayout(tt.opts)
			buf := newTestBuffer(t, Rect{X1: 24, Y1: 8}, tt.frames, smoothScene)
			samples := windowSamples(layout, tt.win, smoothScene)

			mean := make([]float32, layout.NumBase())
			mean64 := make([]float64, layout.NumBase())
			for i := range mean {
				mean[i] = float32(stat.Mean(samples[i], nil))
				mean64[i] = float64(mean[i])
			}

			got := WindowScale(layout, buf, tt.win, mean)
			want := wantScales(layout, samples, mean64)
			if diff := cmp.Diff(want, toFloat64(got), cmp.Comparer(closeTo64(1e-4))); diff != "" {
				t.Errorf("scale mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWindowStatsFeatures(t *testing.T) {
	layout := NewLayout(Options{Temporal: true, SecondOrder: true})
	buf := newTestBuffer(t, Rect{X1: 24, Y1: 8}, 2, smoothScene)
	win := Window{Low: Point{2, 1}, High: Point{13, 5}, Frames: 2, PrevFrames: 1}

	s := NewWindowStats(layout, buf, win)
	if s.Window != win || s.Pixels != 2*4*11 {
		t.Fatalf("stats header: got %+v with %d pixels", s.Window, s.Pixels)
	}

	batches := s.Features(layout, buf)
	lanes := hwy.MaxLanes[float32]()
	if want := 2 * 4 * hwy.LaneBatches[float32](11); len(batches) != want {
		t.Fatalf("batches: got %d, want %d", len(batches), want)
	}

	xi, yi := layout.Index(FeatureX), layout.Index(FeatureY)
	k := 0
	it := NewWindowIterator(buf, layout, win)
	for it.Next() {
		batch := it.Batch()
		features := batches[k]
		k++
		for lane := range lanes {
			x := batch.Pixel.X + lane
			if !batch.Active.GetBit(lane) {
				for i, f := range features {
					if got := hwy.GetLane(f, lane); got != 0 {
						t.Errorf("%v inactive lane %d = %v", layout.Feature(i), lane, got)
					}
				}
				continue
			}
			for i := range layout.NumBase() {
				var raw float32
				switch f := layout.Feature(i); f {
				case FeatureX:
					raw = float32(x)
				case FeatureY:
					raw = float32(batch.Pixel.Y)
				case FeatureT:
					raw = float32(FrameOffset(batch.Frame, win.PrevFrames))
				default:
					p, _ := f.Pass()
					raw = smoothScene(x, batch.Pixel.Y, batch.Frame, p)
				}
				want := (raw - s.Mean[i]) * s.Scale[i]
				if got := hwy.GetLane(features[i], lane); !closeTo(1e-4)(got, want) {
					t.Errorf("%v at (%d,%d,%d): got %v, want %v", layout.Feature(i), x, batch.Pixel.Y, batch.Frame, got, want)
				}
			}
			nx, ny := hwy.GetLane(features[xi], lane), hwy.GetLane(features[yi], lane)
			if got := hwy.GetLane(features[layout.Index(FeatureXY)], lane); !closeTo(1e-4)(got, nx*ny) {
				t.Errorf("x·y at (%d,%d): got %v, want %v", x, batch.Pixel.Y, got, nx*ny)
			}
		}
	}
}

func TestAccumulate(t *testing.T) {
	acc := NewVectors[float32](2)
	AccumulateMax(acc, []hwy.Vec[float32]{vec(1, 5, 2), vec(0, 0, 3)})
	AccumulateMax(acc, []hwy.Vec[float32]{vec(4, 2, 1), vec(0, 1, 2)})
	checkLanes(t, "max[0]", acc[0], padded(4, 5, 2))
	checkLanes(t, "max[1]", acc[1], padded(0, 1, 3))

	sum := NewVectors[float32](2)
	AccumulateSum(sum, []hwy.Vec[float32]{vec(1, 5, 2), vec(0, 0, 3)})
	AccumulateSum(sum, []hwy.Vec[float32]{vec(4, 2, 1)})
	checkLanes(t, "sum[0]", sum[0], padded(5, 7, 3))
	checkLanes(t, "sum[1]", sum[1], padded(0, 0, 3))
}

// closeTo reports whether a and b agree to within tol, relative to the
// larger magnitude once that exceeds 1.
func closeTo(tol float64) func(a, b float32) bool {
	cmp64 := closeTo64(tol)
	return func(a, b float32) bool { return cmp64(float64(a), float64(b)) }
}

func closeTo64(tol float64) func(a, b float64) bool {
	return func(a, b float64) bool {
		return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	}
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
