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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLayoutOrder(t *testing.T) {
	passes := []Feature{
		FeatureDepth, FeatureNormalX, FeatureNormalY, FeatureNormalZ,
		FeatureShadow, FeatureAlbedoR, FeatureAlbedoG, FeatureAlbedoB,
	}
	cat := func(parts ...[]Feature) []Feature {
		var out []Feature
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}
	second := []Feature{FeatureXX, FeatureYY, FeatureXY}

	tests := []struct {
		opts     Options
		want     []Feature
		wantBase int
	}{
		{Options{}, cat([]Feature{FeatureX, FeatureY}, passes), 10},
		{Options{Temporal: true}, cat([]Feature{FeatureX, FeatureY, FeatureT}, passes), 11},
		{Options{SecondOrder: true}, cat([]Feature{FeatureX, FeatureY}, passes, second), 10},
		{Options{Temporal: true, SecondOrder: true}, cat([]Feature{FeatureX, FeatureY, FeatureT}, passes, second), 11},
	}
	for _, tt := range tests {
		l := NewLayout(tt.opts)
		if diff := cmp.Diff(tt.want, l.Features()); diff != "" {
			t.Errorf("%+v: order mismatch (-want +got):\n%s", tt.opts, diff)
		}
		if l.NumBase() != tt.wantBase {
			t.Errorf("%+v: NumBase: got %d, want %d", tt.opts, l.NumBase(), tt.wantBase)
		}
		if l.NumFeatures() != len(tt.want) {
			t.Errorf("%+v: NumFeatures: got %d, want %d", tt.opts, l.NumFeatures(), len(tt.want))
		}
		for i, f := range tt.want {
			if got := l.Index(f); got != i {
				t.Errorf("%+v: Index(%v): got %d, want %d", tt.opts, f, got, i)
			}
		}
	}
}

func TestLayoutAbsentFeatures(t *testing.T) {
	l := NewLayout(Options{})
	for _, f := range []Feature{FeatureT, FeatureXX, FeatureYY, FeatureXY, Feature(-1), numFeatureKinds} {
		if got := l.Index(f); got != -1 {
			t.Errorf("Index(%v): got %d, want -1", f, got)
		}
	}
}

func TestPassContract(t *testing.T) {
	// Pass positions inside the pixel block are fixed.
	want := []string{"depth", "normal.x", "normal.y", "normal.z", "shadow", "albedo.r", "albedo.g", "albedo.b"}
	if int(NumPasses) != len(want) {
		t.Fatalf("NumPasses: got %d, want %d", NumPasses, len(want))
	}
	for p := range NumPasses {
		if p.String() != want[p] {
			t.Errorf("Pass %d: got %q, want %q", int(p), p.String(), want[p])
		}
		f := FeatureOf(p)
		back, ok := f.Pass()
		if !ok || back != p {
			t.Errorf("FeatureOf(%v).Pass(): got %v, %v", p, back, ok)
		}
	}

	groups := map[Group][]Pass{}
	for p := range NumPasses {
		groups[p.Group()] = append(groups[p.Group()], p)
	}
	wantGroups := map[Group][]Pass{
		GroupScalar: {PassDepth, PassShadow},
		GroupNormal: {PassNormalX, PassNormalY, PassNormalZ},
		GroupAlbedo: {PassAlbedoR, PassAlbedoG, PassAlbedoB},
	}
	if diff := cmp.Diff(wantGroups, groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutGroups(t *testing.T) {
	l := NewLayout(Options{Temporal: true, SecondOrder: true})
	for i := range l.NumFeatures() {
		f := l.Feature(i)
		if got := l.Group(i); got != f.Group() {
			t.Errorf("Group(%d): got %v, want %v", i, got, f.Group())
		}
		if f.IsSecondOrder() && i < l.NumBase() {
			t.Errorf("second-order %v at base index %d", f, i)
		}
	}
	if got := l.Group(l.PassIndex(PassNormalY)); got != GroupNormal {
		t.Errorf("normal.y group: got %v, want normal", got)
	}
	if got := l.Group(l.Index(FeatureT)); got != GroupScalar {
		t.Errorf("t group: got %v, want scalar", got)
	}
}

func TestLayoutString(t *testing.T) {
	l := NewLayout(Options{SecondOrder: true})
	want := "[x, y, depth, normal.x, normal.y, normal.z, shadow, albedo.r, albedo.g, albedo.b, x², y², x·y]"
	if got := l.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
	if got := Pass(42).String(); got != "Pass(42)" {
		t.Errorf("unknown pass: got %q", got)
	}
}
