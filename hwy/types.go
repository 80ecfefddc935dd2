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

// Package hwy provides portable fixed-width lane vectors with runtime
// selection of the lane count.
//
// Kernels are written once against Vec and Mask and run with whatever lane
// width the current CPU dispatch level selects. With HWY_NO_SIMD set, or on
// targets without wide registers, vectors are 16 bytes wide, which is four
// float32 lanes.
//
// Basic usage:
//
//	import "github.com/rendertools/hwydenoise/hwy"
//
//	mask := hwy.TailMask[float32](len(data))
//	v := hwy.MaskLoad(mask, data)
//	total := hwy.ReduceSum(hwy.Mul(v, v))
package hwy

// Floats is a constraint for floating-point lane types.
type Floats interface {
	~float32 | ~float64
}

// Vec is a portable vector handle holding MaxLanes[T]() lanes.
//
// Vec instances should not be created directly; use Load, MaskLoad, Set,
// Zero or Iota instead. The zero Vec has no lanes.
type Vec[T Floats] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	return v.data
}

// Mask holds one validity flag per lane.
//
// Masks come from TailMask and are consumed by IfThenElse, IfThenElseZero
// and MaskLoad.
type Mask[T Floats] struct {
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	return count
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}
