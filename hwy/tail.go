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

// TailMask creates a mask with the first count lanes active.
// count is clamped to [0, MaxLanes[T]()].
//
// Example:
//
//	remaining := len(data) % hwy.MaxLanes[float32]()
//	mask := hwy.TailMask[float32](remaining)
//	v := hwy.MaskLoad(mask, data[len(data)-remaining:])
func TailMask[T Floats](count int) Mask[T] {
	maxLanes := MaxLanes[T]()
	count = max(0, min(count, maxLanes))

	bits := make([]bool, maxLanes)
	for i := range count {
		bits[i] = true
	}
	return Mask[T]{bits: bits}
}

// LaneBatches returns how many vectors of MaxLanes[T]() lanes are needed to
// cover size elements.
func LaneBatches[T Floats](size int) int {
	maxLanes := MaxLanes[T]()
	if size <= 0 || maxLanes == 0 {
		return 0
	}
	return (size + maxLanes - 1) / maxLanes
}
