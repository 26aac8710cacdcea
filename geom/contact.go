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

// Йоу, чат! Тут рахуємо контакти між фігурами.
// Для кожної пари типів своя функція, нормаль завжди від a до b:
// якщо зсунути b вздовж нормалі на Depth - фігури перестануть перетинатись.

package geom

import "math"

// boxBoxContact шукає вісь з найменшим проникненням
func boxBoxContact(a, b *Box) (Manifold, bool) {
	ox := min(a.Rect.Max[0], b.Rect.Max[0]) - max(a.Rect.Min[0], b.Rect.Min[0])
	oy := min(a.Rect.Max[1], b.Rect.Max[1]) - max(a.Rect.Min[1], b.Rect.Min[1])
	if ox < 0 || oy < 0 {
		return Manifold{}, false
	}
	overlap := Rect{Min: a.Rect.Min.Max(b.Rect.Min), Max: a.Rect.Max.Min(b.Rect.Max)}
	d := b.Rect.Center().Sub(a.Rect.Center())

	m := Manifold{Points: []Vec2d{overlap.Center()}}
	if ox < oy {
		m.Normal, m.Depth = Vec2d{sign(d[0]), 0}, ox
	} else {
		m.Normal, m.Depth = Vec2d{0, sign(d[1])}, oy
	}
	return m, true
}

func circleCircleContact(a, b *Circle) (Manifold, bool) {
	d := b.Center.Sub(a.Center)
	r := a.Radius + b.Radius
	dist2 := d.Len2()
	if dist2 > r*r {
		return Manifold{}, false
	}
	dist := math.Sqrt(dist2)
	if dist == 0 {
		// центри збігаються - напрямок довільний, беремо вісь X
		return Manifold{Normal: Vec2d{1, 0}, Depth: r, Points: []Vec2d{a.Center}}, true
	}
	n := d.Mul(1 / dist)
	depth := r - dist
	return Manifold{
		Normal: n,
		Depth:  depth,
		Points: []Vec2d{a.Center.Add(n.Mul(a.Radius - depth/2))},
	}, true
}

// circleBoxContact - нормаль від кола до коробки
func circleBoxContact(c *Circle, b *Box) (Manifold, bool) {
	closest := Clamp(c.Center, b.Rect.Min, b.Rect.Max)
	d := closest.Sub(c.Center)
	dist2 := d.Len2()
	if dist2 > c.Radius*c.Radius {
		return Manifold{}, false
	}
	if dist2 > 0 {
		dist := math.Sqrt(dist2)
		return Manifold{Normal: d.Mul(1 / dist), Depth: c.Radius - dist, Points: []Vec2d{closest}}, true
	}

	// центр кола всередині коробки: виштовхуємо через найближчу грань
	faces := [4]struct {
		dist   float64
		normal Vec2d
		point  Vec2d
	}{
		{c.Center[0] - b.Rect.Min[0], Vec2d{1, 0}, Vec2d{b.Rect.Min[0], c.Center[1]}},
		{b.Rect.Max[0] - c.Center[0], Vec2d{-1, 0}, Vec2d{b.Rect.Max[0], c.Center[1]}},
		{c.Center[1] - b.Rect.Min[1], Vec2d{0, 1}, Vec2d{c.Center[0], b.Rect.Min[1]}},
		{b.Rect.Max[1] - c.Center[1], Vec2d{0, -1}, Vec2d{c.Center[0], b.Rect.Max[1]}},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.dist < best.dist {
			best = f
		}
	}
	return Manifold{Normal: best.normal, Depth: c.Radius + best.dist, Points: []Vec2d{best.point}}, true
}

// sign повертає -1 для від'ємних чисел і 1 для решти
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
