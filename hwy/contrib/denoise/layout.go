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
	"fmt"
	"strings"
)

// Pass identifies a render pass by its position inside a pixel's pass block.
// The order is part of the buffer contract: grouping and square-root
// selection are derived from it, so every component addresses passes
// through this type rather than raw positions.
type Pass int

const (
	PassDepth Pass = iota
	PassNormalX
	PassNormalY
	PassNormalZ
	PassShadow
	PassAlbedoR
	PassAlbedoG
	PassAlbedoB

	// NumPasses is the size of the pass block read for every pixel.
	NumPasses
)

var passNames = [NumPasses]string{
	"depth", "normal.x", "normal.y", "normal.z",
	"shadow", "albedo.r", "albedo.g", "albedo.b",
}

func (p Pass) String() string {
	if p < 0 || p >= NumPasses {
		return fmt.Sprintf("Pass(%d)", int(p))
	}
	return passNames[p]
}

// Group reports which vector-valued feature the pass belongs to.
func (p Pass) Group() Group {
	switch p {
	case PassNormalX, PassNormalY, PassNormalZ:
		return GroupNormal
	case PassAlbedoR, PassAlbedoG, PassAlbedoB:
		return GroupAlbedo
	default:
		return GroupScalar
	}
}

// Group classifies a feature for scale computation. Scalar features get an
// absolute deviation; members of a vector group share one squared-norm
// deviation and hence one scale.
type Group int

const (
	GroupScalar Group = iota
	GroupNormal
	GroupAlbedo
)

func (g Group) String() string {
	switch g {
	case GroupScalar:
		return "scalar"
	case GroupNormal:
		return "normal"
	case GroupAlbedo:
		return "albedo"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// Feature names a quantity in the feature vector.
type Feature int

const (
	FeatureX Feature = iota
	FeatureY
	FeatureT

	// featurePassBase is the first pass-backed feature; FeatureDepth through
	// FeatureAlbedoB follow the Pass order one to one.
	featurePassBase
)

const (
	FeatureDepth   = featurePassBase + Feature(PassDepth)
	FeatureNormalX = featurePassBase + Feature(PassNormalX)
	FeatureNormalY = featurePassBase + Feature(PassNormalY)
	FeatureNormalZ = featurePassBase + Feature(PassNormalZ)
	FeatureShadow  = featurePassBase + Feature(PassShadow)
	FeatureAlbedoR = featurePassBase + Feature(PassAlbedoR)
	FeatureAlbedoG = featurePassBase + Feature(PassAlbedoG)
	FeatureAlbedoB = featurePassBase + Feature(PassAlbedoB)
)

// Second-order screen terms.
const (
	FeatureXX = featurePassBase + Feature(NumPasses) + iota
	FeatureYY
	FeatureXY

	numFeatureKinds
)

// FeatureOf returns the feature backed by pass p.
func FeatureOf(p Pass) Feature {
	return featurePassBase + Feature(p)
}

// Pass returns the render pass backing f, if any.
func (f Feature) Pass() (Pass, bool) {
	if f >= featurePassBase && f < featurePassBase+Feature(NumPasses) {
		return Pass(f - featurePassBase), true
	}
	return 0, false
}

// Group returns the scale group of f. Coordinates and second-order terms
// are scalar.
func (f Feature) Group() Group {
	if p, ok := f.Pass(); ok {
		return p.Group()
	}
	return GroupScalar
}

// IsSecondOrder reports whether f is one of x², y², x·y.
func (f Feature) IsSecondOrder() bool {
	return f == FeatureXX || f == FeatureYY || f == FeatureXY
}

func (f Feature) String() string {
	switch f {
	case FeatureX:
		return "x"
	case FeatureY:
		return "y"
	case FeatureT:
		return "t"
	case FeatureXX:
		return "x²"
	case FeatureYY:
		return "y²"
	case FeatureXY:
		return "x·y"
	}
	if p, ok := f.Pass(); ok {
		return p.String()
	}
	return fmt.Sprintf("Feature(%d)", int(f))
}

// Options are the configuration-time toggles that shape a Layout.
type Options struct {
	// Temporal adds the re-centered frame offset t after y.
	Temporal bool
	// SecondOrder appends x², y² and x·y after the base features.
	SecondOrder bool
}

// Layout is the resolved, immutable feature order shared by the window
// iterator, extractor, accumulator and reducer. Index i means the same
// feature in every component.
type Layout struct {
	opts     Options
	features []Feature
	index    [numFeatureKinds]int
	numBase  int
}

// NewLayout resolves opts into a Layout:
//
//	[x, y, (t), depth, normal.x, normal.y, normal.z, shadow,
//	 albedo.r, albedo.g, albedo.b, (x², y², x·y)]
func NewLayout(opts Options) *Layout {
	l := &Layout{opts: opts}
	l.features = append(l.features, FeatureX, FeatureY)
	if opts.Temporal {
		l.features = append(l.features, FeatureT)
	}
	for p := range NumPasses {
		l.features = append(l.features, FeatureOf(p))
	}
	l.numBase = len(l.features)
	if opts.SecondOrder {
		l.features = append(l.features, FeatureXX, FeatureYY, FeatureXY)
	}

	for i := range l.index {
		l.index[i] = -1
	}
	for i, f := range l.features {
		l.index[f] = i
	}
	return l
}

// Options returns the toggles the layout was built from.
func (l *Layout) Options() Options { return l.opts }

// Temporal reports whether the layout carries the t feature.
func (l *Layout) Temporal() bool { return l.opts.Temporal }

// SecondOrder reports whether the layout carries x², y², x·y.
func (l *Layout) SecondOrder() bool { return l.opts.SecondOrder }

// NumFeatures is the length of a feature vector, second-order terms included.
func (l *Layout) NumFeatures() int { return len(l.features) }

// NumBase is the length of mean and scale vectors. Second-order terms carry
// no independent statistics.
func (l *Layout) NumBase() int { return l.numBase }

// Feature returns the feature at index i.
func (l *Layout) Feature(i int) Feature { return l.features[i] }

// Features returns a copy of the feature order.
func (l *Layout) Features() []Feature {
	return append([]Feature(nil), l.features...)
}

// Index returns the position of f, or -1 when the layout does not carry it.
func (l *Layout) Index(f Feature) int {
	if f < 0 || f >= numFeatureKinds {
		return -1
	}
	return l.index[f]
}

// PassIndex returns the position of the feature backed by pass p.
func (l *Layout) PassIndex(p Pass) int {
	return l.Index(FeatureOf(p))
}

// Group returns the scale group of the feature at index i.
func (l *Layout) Group(i int) Group { return l.features[i].Group() }

func (l *Layout) String() string {
	names := make([]string, len(l.features))
	for i, f := range l.features {
		names[i] = f.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
