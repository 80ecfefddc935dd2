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

package hwy

import "math"

// This file holds the portable implementations of the lane operations.
// Binary operations produce as many lanes as the shorter operand, so
// vectors built from Set, Zero, Iota, MaskLoad or a full Load always
// combine at full width.

// Load creates a vector from the first MaxLanes[T]() elements of src.
// A shorter src yields a shorter vector; use MaskLoad near buffer ends.
func Load[T Floats](src []T) Vec[T] {
	n := min(len(src), MaxLanes[T]())
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// MaskLoad loads src only for lanes where mask is set. Inactive lanes are
// zero and src is never indexed past its length, so the result always has
// mask.NumLanes() lanes.
func MaskLoad[T Floats](mask Mask[T], src []T) Vec[T] {
	n := min(len(src), len(mask.bits))
	result := make([]T, len(mask.bits))
	for i := range n {
		if mask.bits[i] {
			result[i] = src[i]
		}
	}
	return Vec[T]{data: result}
}

// Set creates a vector with all lanes set to the same value.
func Set[T Floats](value T) Vec[T] {
	data := make([]T, MaxLanes[T]())
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Floats]() Vec[T] {
	return Vec[T]{data: make([]T, MaxLanes[T]())}
}

// Iota returns a vector with lanes set to [0, 1, 2, 3, ...].
func Iota[T Floats]() Vec[T] {
	data := make([]T, MaxLanes[T]())
	for i := range data {
		data[i] = T(i)
	}
	return Vec[T]{data: data}
}

func binary[T Floats](a, b Vec[T], op func(x, y T) T) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := range n {
		result[i] = op(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

func unary[T Floats](v Vec[T], op func(x T) T) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = op(x)
	}
	return Vec[T]{data: result}
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x + y })
}

// Sub performs element-wise subtraction.
func Sub[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x - y })
}

// Mul performs element-wise multiplication.
func Mul[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x * y })
}

// Div performs element-wise division.
func Div[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x / y })
}

// Max returns the element-wise maximum. A lane where either input is NaN
// takes the lane of a, so Max(floor, v) never lets a NaN through.
func Max[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T {
		if y > x {
			return y
		}
		return x
	})
}

// Abs computes the absolute value of each lane.
func Abs[T Floats](v Vec[T]) Vec[T] {
	return unary(v, func(x T) T { return T(math.Abs(float64(x))) })
}

// Sqrt computes the square root of each lane.
func Sqrt[T Floats](v Vec[T]) Vec[T] {
	return unary(v, func(x T) T { return T(math.Sqrt(float64(x))) })
}

// ReduceSum sums all lanes.
func ReduceSum[T Floats](v Vec[T]) T {
	var sum T
	for _, x := range v.data {
		sum += x
	}
	return sum
}

// ReduceMax returns the maximum value across all lanes. It is NaN if any
// lane is NaN, whatever its position. An empty vector reduces to zero.
func ReduceMax[T Floats](v Vec[T]) T {
	if len(v.data) == 0 {
		var zero T
		return zero
	}
	m := v.data[0]
	for _, x := range v.data {
		if math.IsNaN(float64(x)) {
			return x
		}
		if x > m {
			m = x
		}
	}
	return m
}

// GetLane extracts a single lane value from the vector.
// Returns zero value if index is out of bounds.
func GetLane[T Floats](v Vec[T], idx int) T {
	if idx < 0 || idx >= len(v.data) {
		var zero T
		return zero
	}
	return v.data[idx]
}

// IfThenElse returns a where mask is set and b elsewhere.
func IfThenElse[T Floats](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data), len(mask.bits))
	result := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// IfThenElseZero returns a where mask is set and zero elsewhere.
func IfThenElseZero[T Floats](mask Mask[T], a Vec[T]) Vec[T] {
	return IfThenElse(mask, a, Vec[T]{data: make([]T, len(a.data))})
}
