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

// Йоу, чат! Коло - друга наша фігура.
// Всі перевірки тут через квадрати відстаней, щоб не брати корінь без потреби.

package geom

import (
	"fmt"
	"math"
)

// Circle - коло з центром Center і радіусом Radius
type Circle struct {
	Center Vec2d
	Radius float64
}

// NewCircle створює коло
func NewCircle(center Vec2d, radius float64) *Circle {
	return &Circle{Center: center, Radius: radius}
}

// Bounds - квадрат зі стороною 2R навколо центра
func (c *Circle) Bounds() Rect {
	r := Vec2d{c.Radius, c.Radius}
	return Rect{Min: c.Center.Sub(r), Max: c.Center.Add(r)}
}

func (c *Circle) ContainsPoint(p Vec2d) bool {
	return c.Center.Sub(p).Len2() <= c.Radius*c.Radius
}

func (c *Circle) ContainsShape(other Shape) bool {
	switch o := other.(type) {
	case *Circle:
		return c.Center.Sub(o.Center).Norm()+o.Radius <= c.Radius
	case *Box:
		return c.containsCorners(o.Rect)
	default:
		// для невідомих фігур беремо межі - це суворіша перевірка
		return c.containsCorners(other.Bounds())
	}
}

// containsCorners перевіряє всі чотири кути прямокутника
func (c *Circle) containsCorners(r Rect) bool {
	return c.ContainsPoint(r.Min) && c.ContainsPoint(r.Max) &&
		c.ContainsPoint(Vec2d{r.Min[0], r.Max[1]}) && c.ContainsPoint(Vec2d{r.Max[0], r.Min[1]})
}

func (c *Circle) Overlaps(other Shape) bool {
	switch o := other.(type) {
	case *Circle:
		r := c.Radius + o.Radius
		return c.Center.Sub(o.Center).Len2() <= r*r
	case *Box:
		closest := Clamp(c.Center, o.Rect.Min, o.Rect.Max)
		return closest.Sub(c.Center).Len2() <= c.Radius*c.Radius
	default:
		return c.Bounds().Overlaps(other.Bounds())
	}
}

func (c *Circle) Contact(other Shape) (Manifold, bool) {
	switch o := other.(type) {
	case *Circle:
		return circleCircleContact(c, o)
	case *Box:
		return circleBoxContact(c, o)
	default:
		return Manifold{}, false
	}
}

// Raycast розв'язує квадратне рівняння |O + tD - C|^2 = R^2
// Вважаємо що D нормалізований, тому коефіцієнт при t^2 дорівнює 1
func (c *Circle) Raycast(ray Ray, maxLength float64) (Hit, bool) {
	m := ray.Origin.Sub(c.Center)
	b := m.Dot(ray.Direction)
	k := m.Len2() - c.Radius*c.Radius
	if k > 0 && b > 0 {
		// початок зовні і промінь дивиться від кола
		return Hit{}, false
	}
	disc := b*b - k
	if disc < 0 {
		return Hit{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		// початок всередині кола
		return Hit{Distance: 0, Point: ray.Origin, Normal: ray.Direction.Neg()}, true
	}
	if t > maxLength {
		return Hit{}, false
	}
	p := ray.At(t)
	return Hit{Distance: t, Point: p, Normal: Normalize(p.Sub(c.Center))}, true
}

// Translate зсуває центр кола на d
func (c *Circle) Translate(d Vec2d) { c.Center = c.Center.Add(d) }

func (c *Circle) String() string { return fmt.Sprintf("circle(%v, r=%v)", c.Center, c.Radius) }
