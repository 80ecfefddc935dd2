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

// Window is a denoising window [Low, High) in global pixel coordinates.
//
// Frames counts the stored frames visited when the layout is temporal;
// frame 0 is the primary frame, frames 1..PrevFrames precede it in time and
// the rest follow it. Frames <= 1 means a single frame.
type Window struct {
	Low, High  Point
	Frames     int
	PrevFrames int
}

// Rect returns the spatial extent of the window.
func (w Window) Rect() Rect {
	return Rect{X0: w.Low.X, Y0: w.Low.Y, X1: w.High.X, Y1: w.High.Y}
}

func (w Window) frames() int {
	return max(w.Frames, 1)
}

// FrameOffset maps a stored frame index to a signed time offset around the
// primary frame: 0 for t == 0, t-prevFrames-1 for preceding frames
// (t <= prevFrames) and t-prevFrames for following frames.
func FrameOffset(t, prevFrames int) int {
	switch {
	case t == 0:
		return 0
	case t <= prevFrames:
		return t - prevFrames - 1
	default:
		return t - prevFrames
	}
}

// LaneBatch is one group of W horizontally adjacent pixels of a window.
type LaneBatch[T hwy.Floats] struct {
	// Offset is the buffer-local offset of lane 0 in pass 0.
	Offset int
	// Pixel is the global coordinate of lane 0.
	Pixel Point
	// Frame is the stored frame index.
	Frame int

	// X and Y hold the lane coordinates; Time holds the re-centered frame
	// offset broadcast to every lane.
	X, Y, Time hwy.Vec[T]

	// Active is set for lanes whose x lies below the window's High.X.
	Active hwy.Mask[T]
}

// WindowIterator walks a window in lane batches: x within a row in steps of
// W, then rows, then (for temporal layouts) frames. It is single pass; once
// Next has returned false it keeps doing so.
//
//	it := denoise.NewWindowIterator(buf, layout, win)
//	for it.Next() {
//	    batch := it.Batch()
//	    denoise.GetFeatures(layout, buf, batch, mean, features)
//	}
type WindowIterator[T hwy.Floats] struct {
	win    Window
	lanes  int
	frames int
	bufW   int
	bufH   int
	laneX  hwy.Vec[T]

	started bool
	done    bool
	x, y    int
	frame   int
	offset  int
	batch   LaneBatch[T]
}

// NewWindowIterator prepares a traversal of win over buf. The caller
// guarantees the window lies inside the buffer (see Buffer.Contains); a
// non-temporal layout visits only the primary frame.
func NewWindowIterator[T hwy.Floats](buf *Buffer[T], layout *Layout, win Window) *WindowIterator[T] {
	it := &WindowIterator[T]{
		win:    win,
		lanes:  hwy.MaxLanes[T](),
		frames: 1,
		bufW:   buf.Width(),
		bufH:   buf.Height(),
		laneX:  hwy.Iota[T](),
	}
	if layout.Temporal() {
		it.frames = win.frames()
	}
	if win.Rect().IsEmpty() {
		it.done = true
		return it
	}
	it.offset = buf.Offset(win.Low.X, win.Low.Y, 0)
	return it
}

// Next advances to the next lane batch and reports whether there is one.
func (it *WindowIterator[T]) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		it.x, it.y, it.frame = it.win.Low.X, it.win.Low.Y, 0
	} else if !it.advance() {
		it.done = true
		return false
	}
	it.fill()
	return true
}

// advance steps the cursor with the same offset arithmetic as a strided
// pointer walk: +W per batch, then skip the rest of the buffer row, then
// skip the rows of the frame outside the window.
func (it *WindowIterator[T]) advance() bool {
	it.x += it.lanes
	it.offset += it.lanes
	if it.x < it.win.High.X {
		return true
	}

	it.offset += it.bufW - (it.x - it.win.Low.X)
	it.x = it.win.Low.X
	it.y++
	if it.y < it.win.High.Y {
		return true
	}

	it.offset += it.bufW * (it.bufH - (it.win.High.Y - it.win.Low.Y))
	it.y = it.win.Low.Y
	it.frame++
	return it.frame < it.frames
}

func (it *WindowIterator[T]) fill() {
	x := hwy.Add(hwy.Set(T(it.x)), it.laneX)
	it.batch = LaneBatch[T]{
		Offset: it.offset,
		Pixel:  Point{X: it.x, Y: it.y},
		Frame:  it.frame,
		X:      x,
		Y:      hwy.Set(T(it.y)),
		Time:   hwy.Set(T(FrameOffset(it.frame, it.win.PrevFrames))),
		Active: hwy.TailMask[T](it.win.High.X - it.x),
	}
}

// NumBatches returns the total number of lane batches the traversal yields.
func (it *WindowIterator[T]) NumBatches() int {
	r := it.win.Rect()
	if r.IsEmpty() {
		return 0
	}
	return hwy.LaneBatches[T](r.Width()) * r.Height() * it.frames
}

// Batch returns the current lane batch. It is valid until the next call
// to Next.
func (it *WindowIterator[T]) Batch() *LaneBatch[T] {
	return &it.batch
}
