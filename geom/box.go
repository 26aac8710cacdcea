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

// Box - фігура-прямокутник, вирівняний по осях
// Межі Box збігаються з ним самим, тому всі перевірки точні
type Box struct {
	Rect Rect
}

// NewBox створює Box по двох протилежних кутах
func NewBox(a, b Vec2d) *Box {
	return &Box{Rect: NewRect(a, b)}
}

func (b *Box) Bounds() Rect { return b.Rect }

func (b *Box) ContainsPoint(p Vec2d) bool { return b.Rect.ContainsPoint(p) }

// ContainsShape - для прямокутника достатньо перевірити межі іншої фігури
func (b *Box) ContainsShape(other Shape) bool { return b.Rect.Contains(other.Bounds()) }

func (b *Box) Overlaps(other Shape) bool {
	switch o := other.(type) {
	case *Box:
		return b.Rect.Overlaps(o.Rect)
	case *Circle:
		return o.Overlaps(b)
	default:
		return b.Rect.Overlaps(other.Bounds())
	}
}

func (b *Box) Contact(other Shape) (Manifold, bool) {
	switch o := other.(type) {
	case *Box:
		return boxBoxContact(b, o)
	case *Circle:
		m, ok := circleBoxContact(o, b)
		return m.Flip(), ok
	default:
		return Manifold{}, false
	}
}

// Raycast - той самий тест плит, що і в Rect, плюс нормаль грані
func (b *Box) Raycast(ray Ray, maxLength float64) (Hit, bool) {
	tmin, _, axis, ok := b.Rect.slab(ray)
	if !ok {
		return Hit{}, false
	}
	if tmin <= 0 {
		// початок променя всередині коробки
		return Hit{Distance: 0, Point: ray.Origin, Normal: ray.Direction.Neg()}, true
	}
	if tmin > maxLength {
		return Hit{}, false
	}
	var normal Vec2d
	if ray.Direction[axis] > 0 {
		normal[axis] = -1
	} else {
		normal[axis] = 1
	}
	return Hit{Distance: tmin, Point: ray.At(tmin), Normal: normal}, true
}

// Translate зсуває коробку на d
func (b *Box) Translate(d Vec2d) { b.Rect = b.Rect.Translate(d) }

func (b *Box) String() string { return "box" + b.Rect.String() }
