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

// Command featstat renders a synthetic multi-pass scene and prints the
// per-feature mean and normalization scale of one or more denoising windows.
//
// Usage:
//
//	featstat --width 64 --height 32 --window 8,8,24,20 --second-order
//	featstat --tile 16 --frames 3 --prev-frames 1 --temporal
//	HWY_NO_SIMD=1 featstat --float64
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rendertools/hwydenoise/hwy"
	"github.com/rendertools/hwydenoise/hwy/contrib/denoise"
	"github.com/rendertools/hwydenoise/hwy/contrib/workerpool"
)

type config struct {
	width, height int
	window        string
	tile          int
	workers       int
	frames        int
	prevFrames    int
	temporal      bool
	secondOrder   bool
	double        bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("featstat: ")

	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:   "featstat",
		Short: "Print denoising feature statistics of a synthetic scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if cfg.double {
				return run[float64](cmd, cfg)
			}
			return run[float32](cmd, cfg)
		},
	}
	f := cmd.Flags()
	f.IntVar(&cfg.width, "width", 64, "scene width in pixels")
	f.IntVar(&cfg.height, "height", 32, "scene height in pixels")
	f.StringVar(&cfg.window, "window", "", "window as x0,y0,x1,y1 (default: whole scene)")
	f.IntVar(&cfg.tile, "tile", 0, "split the scene into tiles of this size instead of a single window")
	f.IntVar(&cfg.workers, "workers", 0, "worker goroutines for --tile (0: GOMAXPROCS)")
	f.IntVar(&cfg.frames, "frames", 1, "number of stored frames")
	f.IntVar(&cfg.prevFrames, "prev-frames", 0, "frames stored before the current one")
	f.BoolVar(&cfg.temporal, "temporal", false, "add the time feature")
	f.BoolVar(&cfg.secondOrder, "second-order", false, "add the x², y² and x·y features")
	f.BoolVar(&cfg.double, "float64", false, "compute in float64 instead of float32")
	return cmd
}

func (c config) validate() error {
	switch {
	case c.width <= 0 || c.height <= 0:
		return fmt.Errorf("invalid scene size %dx%d", c.width, c.height)
	case c.frames < 1:
		return fmt.Errorf("--frames must be at least 1, got %d", c.frames)
	case c.prevFrames < 0 || c.prevFrames >= c.frames:
		return fmt.Errorf("--prev-frames must be in [0, %d), got %d", c.frames, c.prevFrames)
	case c.tile < 0:
		return fmt.Errorf("--tile must not be negative, got %d", c.tile)
	}
	return nil
}

// parseWindow parses "x0,y0,x1,y1". An empty string selects bounds.
func parseWindow(s string, bounds denoise.Rect) (denoise.Rect, error) {
	if s == "" {
		return bounds, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return denoise.Rect{}, fmt.Errorf("window %q: want x0,y0,x1,y1", s)
	}
	v := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return denoise.Rect{}, fmt.Errorf("window %q: %w", s, err)
		}
		v[i] = n
	}
	r := denoise.Rect{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}
	if r.IsEmpty() || r.Intersect(bounds) != r {
		return denoise.Rect{}, fmt.Errorf("window %q is empty or outside the %dx%d scene", s, bounds.X1, bounds.Y1)
	}
	return r, nil
}

func run[T hwy.Floats](cmd *cobra.Command, cfg config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	bounds := denoise.Rect{X1: cfg.width, Y1: cfg.height}
	rect, err := parseWindow(cfg.window, bounds)
	if err != nil {
		return err
	}

	layout := denoise.NewLayout(denoise.Options{Temporal: cfg.temporal, SecondOrder: cfg.secondOrder})
	buf := renderScene[T](bounds, cfg.frames)

	var windows []denoise.Window
	if cfg.tile > 0 {
		windows = denoise.TileWindows(rect, cfg.tile)
	} else {
		windows = []denoise.Window{{Low: denoise.Point{X: rect.X0, Y: rect.Y0}, High: denoise.Point{X: rect.X1, Y: rect.Y1}}}
	}
	for i := range windows {
		windows[i].Frames = cfg.frames
		windows[i].PrevFrames = cfg.prevFrames
	}

	pool := workerpool.New(cfg.workers)
	defer pool.Close()
	stats := denoise.ComputeWindowStats(pool, layout, buf, windows)

	log.Printf("%s, %d lanes of %T, %d windows", hwy.CurrentName(), hwy.MaxLanes[T](), T(0), len(windows))
	return printReport(cmd.OutOrStdout(), layout, stats)
}
