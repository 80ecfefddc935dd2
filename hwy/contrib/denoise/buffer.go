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
	"errors"
	"fmt"

	"github.com/rendertools/hwydenoise/hwy"
)

// ErrInvalidBuffer is returned by WrapBuffer when the data cannot hold the
// described extent.
var ErrInvalidBuffer = errors.New("denoise: invalid buffer")

// Point is a pixel position in global image coordinates.
type Point struct {
	X, Y int
}

// Rect is a half-open rectangle [X0, X1) x [Y0, Y1) in global coordinates.
type Rect struct {
	X0, Y0 int // Top-left corner (inclusive)
	X1, Y1 int // Bottom-right corner (exclusive)
}

// Width returns the rectangle width.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns the rectangle height.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Intersect returns the intersection of two rectangles.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		X0: max(r.X0, other.X0),
		Y0: max(r.Y0, other.Y0),
		X1: min(r.X1, other.X1),
		Y1: min(r.Y1, other.Y1),
	}
}

// Buffer is a planar multi-pass render buffer.
//
// Pixels are stored row-major over Rect, frames are stacked contiguously
// after the primary frame, and the value of pass p for the pixel at
// buffer-local offset o lives at o + p*PassStride. Consecutive pixels of a
// row are therefore adjacent within each pass, which is what lets a lane
// batch load W neighbours at once.
type Buffer[T hwy.Floats] struct {
	data       []T
	rect       Rect
	width      int
	height     int
	frames     int
	passStride int
}

// NewBuffer allocates a zeroed buffer covering rect for the given number of
// frames, with a pass stride of width*height*frames.
func NewBuffer[T hwy.Floats](rect Rect, frames int) *Buffer[T] {
	frames = max(frames, 1)
	if rect.IsEmpty() {
		return &Buffer[T]{rect: rect, frames: frames}
	}
	w, h := rect.Width(), rect.Height()
	stride := w * h * frames
	return &Buffer[T]{
		data:       make([]T, stride*int(NumPasses)),
		rect:       rect,
		width:      w,
		height:     h,
		frames:     frames,
		passStride: stride,
	}
}

// WrapBuffer adopts caller-owned data laid out as described on Buffer.
// The pass stride may exceed width*height*frames when passes are padded.
func WrapBuffer[T hwy.Floats](data []T, rect Rect, frames, passStride int) (*Buffer[T], error) {
	if rect.IsEmpty() {
		return nil, fmt.Errorf("%w: empty rect %+v", ErrInvalidBuffer, rect)
	}
	if frames < 1 {
		return nil, fmt.Errorf("%w: %d frames", ErrInvalidBuffer, frames)
	}
	pixels := rect.Width() * rect.Height() * frames
	if passStride < pixels {
		return nil, fmt.Errorf("%w: pass stride %d shorter than %d pixels", ErrInvalidBuffer, passStride, pixels)
	}
	if need := passStride*(int(NumPasses)-1) + pixels; len(data) < need {
		return nil, fmt.Errorf("%w: %d elements, need %d", ErrInvalidBuffer, len(data), need)
	}
	return &Buffer[T]{
		data:       data,
		rect:       rect,
		width:      rect.Width(),
		height:     rect.Height(),
		frames:     frames,
		passStride: passStride,
	}, nil
}

// Rect returns the global-coordinate extent of one frame.
func (b *Buffer[T]) Rect() Rect { return b.rect }

// Width returns the allocated row length in pixels.
func (b *Buffer[T]) Width() int { return b.width }

// Height returns the allocated number of rows per frame.
func (b *Buffer[T]) Height() int { return b.height }

// Frames returns the number of stacked frames.
func (b *Buffer[T]) Frames() int { return b.frames }

// PassStride returns the element distance between passes of one pixel.
func (b *Buffer[T]) PassStride() int { return b.passStride }

// Offset returns the buffer-local offset of global pixel (x, y) in frame.
func (b *Buffer[T]) Offset(x, y, frame int) int {
	return (frame*b.height+(y-b.rect.Y0))*b.width + (x - b.rect.X0)
}

// At returns the value of pass p for the pixel at offset.
func (b *Buffer[T]) At(offset int, p Pass) T {
	return b.data[offset+int(p)*b.passStride]
}

// Set stores v as pass p of global pixel (x, y) in frame.
func (b *Buffer[T]) Set(x, y, frame int, p Pass, v T) {
	b.data[b.Offset(x, y, frame)+int(p)*b.passStride] = v
}

// Lanes returns pass p starting at the pixel at offset. The slice runs to
// the end of the buffer; loads take as many elements as they need.
func (b *Buffer[T]) Lanes(offset int, p Pass) []T {
	return b.data[offset+int(p)*b.passStride:]
}

// load reads pass p for a lane batch. Inactive lanes read as zero.
func (b *Buffer[T]) load(batch *LaneBatch[T], p Pass) hwy.Vec[T] {
	src := b.Lanes(batch.Offset, p)
	if batch.Active.AllTrue() {
		return hwy.Load(src)
	}
	return hwy.MaskLoad(batch.Active, src)
}

// Contains reports whether every pixel of win lies inside the buffer,
// including all of its frames.
func (b *Buffer[T]) Contains(win Window) bool {
	r := Rect{X0: win.Low.X, Y0: win.Low.Y, X1: win.High.X, Y1: win.High.Y}
	if r.IsEmpty() {
		return true
	}
	return r.Intersect(b.rect) == r && win.frames() <= b.frames
}
