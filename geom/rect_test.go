// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package geom

import (
	"math"
	"testing"
)

// TestRect_Contains перевіряє повне вкладення прямокутників і точок
func TestRect_Contains(t *testing.T) {
	r := NewRect(Vec2d{2, 2}, Vec2d{-1, -1})
	if r.Min != (Vec2d{-1, -1}) || r.Max != (Vec2d{2, 2}) {
		t.Fatalf("NewRect should sort corners, got %v", r)
	}

	if !r.ContainsPoint(Vec2d{0, 0}) {
		t.Errorf("(0, 0) should be included")
	}
	if !r.ContainsPoint(Vec2d{2, -1}) {
		t.Errorf("corner (2, -1) should be included")
	}
	if r.ContainsPoint(Vec2d{-2, -2}) {
		t.Errorf("(-2, -2) shouldn't be included")
	}

	if !r.Contains(r) {
		t.Errorf("rect should contain itself")
	}
	if !r.Contains(Rect{Min: Vec2d{0, 0}, Max: Vec2d{1, 1}}) {
		t.Errorf("inner rect should be contained")
	}
	if r.Contains(Rect{Min: Vec2d{0, 0}, Max: Vec2d{3, 1}}) {
		t.Errorf("rect sticking out shouldn't be contained")
	}
}

func TestRect_IsFinite(t *testing.T) {
	if !NewRect(Vec2d{-1, -1}, Vec2d{2, 2}).IsFinite() {
		t.Errorf("ordinary rect should be finite")
	}
	for _, r := range []Rect{
		{Min: Vec2d{math.NaN(), 0}, Max: Vec2d{1, 1}},
		{Min: Vec2d{0, 0}, Max: Vec2d{1, math.NaN()}},
		{Min: Vec2d{math.Inf(-1), 0}, Max: Vec2d{1, 1}},
		{Min: Vec2d{0, 0}, Max: Vec2d{math.Inf(1), 1}},
	} {
		if r.IsFinite() {
			t.Errorf("%v shouldn't be finite", r)
		}
	}
}

func TestRect_Union(t *testing.T) {
	a := Rect{Min: Vec2d{0, 0}, Max: Vec2d{1, 1}}
	b := Rect{Min: Vec2d{5, 5}, Max: Vec2d{6, 6}}
	want := Rect{Min: Vec2d{0, 0}, Max: Vec2d{6, 6}}

	if got := Combining(a, b); !got.Equals(want) {
		t.Errorf("Combining = %v, want %v", got, want)
	}
	var r Rect
	r.SetContaining(b, a)
	if !r.Equals(want) {
		t.Errorf("SetContaining = %v, want %v", r, want)
	}
	if !a.Overlaps(Rect{Min: Vec2d{1, 1}, Max: Vec2d{2, 2}}) {
		t.Errorf("touching rects should overlap")
	}
	if a.Overlaps(b) {
		t.Errorf("disjoint rects shouldn't overlap")
	}
	if a.Area() != 1 || want.Perimeter() != 24 {
		t.Errorf("area/perimeter mismatch: %v %v", a.Area(), want.Perimeter())
	}
}

// TestRect_Intersection - тест плит з усіма крайніми випадками
func TestRect_Intersection(t *testing.T) {
	r := Rect{Min: Vec2d{0, -1}, Max: Vec2d{1, 1}}
	inf := math.Inf(1)

	tests := []struct {
		name string
		ray  Ray
		want float64
	}{
		{"hit from the left", Ray{Vec2d{-1, 0}, Vec2d{1, 0}}, 1},
		{"miss above", Ray{Vec2d{-1, 5}, Vec2d{1, 0}}, inf},
		{"behind origin", Ray{Vec2d{3, 0}, Vec2d{1, 0}}, inf},
		{"origin inside", Ray{Vec2d{0.5, 0}, Vec2d{1, 0}}, 0},
		{"vertical ray", Ray{Vec2d{0.5, -3}, Vec2d{0, 1}}, 2},
		{"vertical ray on edge", Ray{Vec2d{0, -3}, Vec2d{0, 1}}, 2},
		{"vertical ray outside", Ray{Vec2d{2, -3}, Vec2d{0, 1}}, inf},
		{"diagonal", NewRay(Vec2d{-1, -2}, Vec2d{1, 1}), math.Sqrt2},
		{"zero direction inside", Ray{Vec2d{0.5, 0.5}, Vec2d{}}, 0},
		{"zero direction outside", Ray{Vec2d{5, 5}, Vec2d{}}, inf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Intersection(tt.ray)
			if math.IsNaN(got) {
				t.Fatalf("got NaN")
			}
			if math.Abs(got-tt.want) > 1e-9 && got != tt.want {
				t.Errorf("Intersection(%v) = %v, want %v", tt.ray, got, tt.want)
			}
		})
	}
}

func TestRect_IntersectionNaN(t *testing.T) {
	bad := Rect{Min: Vec2d{math.NaN(), -1}, Max: Vec2d{1, 1}}
	for _, ray := range []Ray{
		{Vec2d{-1, 0}, Vec2d{1, 0}},
		{Vec2d{0.5, -3}, Vec2d{0, 1}},
		{Vec2d{100, 100}, Vec2d{0, 1}},
	} {
		if got := bad.Intersection(ray); !math.IsInf(got, 1) {
			t.Errorf("Intersection(%v) with NaN bounds = %v, want +Inf", ray, got)
		}
	}
}
