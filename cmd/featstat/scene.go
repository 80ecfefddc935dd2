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

package main

import (
	"math"

	"github.com/rendertools/hwydenoise/hwy"
	"github.com/rendertools/hwydenoise/hwy/contrib/denoise"
)

var albedoBands = [...][3]float64{
	{0.8, 0.2, 0.2},
	{0.2, 0.7, 0.3},
	{0.3, 0.3, 0.9},
}

// renderScene fills every pass of a synthetic scene: a depth gradient that
// drifts between frames, the normals of a sphere centered in bounds, a
// checkerboard shadow and vertical albedo bands.
func renderScene[T hwy.Floats](bounds denoise.Rect, frames int) *denoise.Buffer[T] {
	buf := denoise.NewBuffer[T](bounds, frames)
	cx := float64(bounds.X0+bounds.X1) / 2
	cy := float64(bounds.Y0+bounds.Y1) / 2
	radius := float64(min(bounds.Width(), bounds.Height())) / 2

	for f := range frames {
		for y := bounds.Y0; y < bounds.Y1; y++ {
			for x := bounds.X0; x < bounds.X1; x++ {
				set := func(p denoise.Pass, v float64) { buf.Set(x, y, f, p, T(v)) }

				set(denoise.PassDepth, 1+0.05*float64(x)+0.02*float64(y)+0.1*float64(f))

				nx, ny, nz := 0.0, 0.0, 1.0
				dx, dy := (float64(x)+0.5-cx)/radius, (float64(y)+0.5-cy)/radius
				if d2 := dx*dx + dy*dy; d2 < 1 {
					nx, ny, nz = dx, dy, math.Sqrt(1-d2)
				}
				set(denoise.PassNormalX, nx)
				set(denoise.PassNormalY, ny)
				set(denoise.PassNormalZ, nz)

				shadow := 1.0
				if (x/8+y/8+f)%2 == 1 {
					shadow = 0.2
				}
				set(denoise.PassShadow, shadow)

				band := albedoBands[(x/6)%len(albedoBands)]
				set(denoise.PassAlbedoR, band[0])
				set(denoise.PassAlbedoG, band[1])
				set(denoise.PassAlbedoB, band[2])
			}
		}
	}
	return buf
}
