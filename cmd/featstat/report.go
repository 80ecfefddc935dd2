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
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/rendertools/hwydenoise/hwy"
	"github.com/rendertools/hwydenoise/hwy/contrib/denoise"
)

// printReport writes one mean/scale table per window and a summary line.
func printReport[T hwy.Floats](w io.Writer, layout *denoise.Layout, stats []denoise.WindowStats[T]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	names := lo.Map(layout.Features()[:layout.NumBase()], func(f denoise.Feature, _ int) string {
		return f.String()
	})

	fmt.Fprintf(tw, "window\tpixels\tstat\t%s\t\n", strings.Join(names, "\t"))
	for _, s := range stats {
		label := fmt.Sprintf("(%d,%d)-(%d,%d)", s.Window.Low.X, s.Window.Low.Y, s.Window.High.X, s.Window.High.Y)
		fmt.Fprintf(tw, "%s\t%d\tmean\t%s\t\n", label, s.Pixels, formatRow(s.Mean))
		fmt.Fprintf(tw, "\t\tscale\t%s\t\n", formatRow(s.Scale))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	pixels := lo.SumBy(stats, func(s denoise.WindowStats[T]) int { return s.Pixels })
	scales := lo.FlatMap(stats, func(s denoise.WindowStats[T], _ int) []float64 {
		return lo.Map(s.Scale, func(v T, _ int) float64 { return float64(v) })
	})
	if len(scales) == 0 {
		_, err := fmt.Fprintf(w, "%d windows, no pixels\n", len(stats))
		return err
	}
	_, err := fmt.Fprintf(w, "%d windows, %d pixels, largest scale %.4g\n", len(stats), pixels, floats.Max(scales))
	return err
}

func formatRow[T hwy.Floats](vals []T) string {
	return strings.Join(lo.Map(vals, func(v T, _ int) string {
		return fmt.Sprintf("%.4f", float64(v))
	}), "\t")
}
