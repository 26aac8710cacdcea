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

// Йоу, чат! Тут живе Rect - прямокутник, вирівняний по осях (AABB).
// Саме з таких прямокутників BVH дерево будує свої вузли,
// тому всі перевірки тут мають бути дешеві і без сюрпризів.

package geom

import (
	"fmt"
	"math"
)

// Rect - прямокутник, вирівняний по осях координат
// Min - лівий нижній кут, Max - правий верхній
// Ребра входять у прямокутник (всі перевірки включні)
type Rect struct {
	Min, Max Vec2d
}

// NewRect будує прямокутник по двох довільних протилежних кутах
func NewRect(a, b Vec2d) Rect {
	return Rect{Min: a.Min(b), Max: a.Max(b)}
}

// Contains перевіряє чи other повністю лежить всередині r
func (r Rect) Contains(other Rect) bool {
	return r.Min.LessEq(other.Min) && r.Max.MoreEq(other.Max)
}

// ContainsPoint перевіряє чи точка лежить всередині або на ребрі
func (r Rect) ContainsPoint(p Vec2d) bool {
	return r.Min.LessEq(p) && r.Max.MoreEq(p)
}

// Overlaps перевіряє чи два прямокутники перетинаються
// Дотик ребрами теж рахується
func (r Rect) Overlaps(other Rect) bool {
	return r.Min.LessEq(other.Max) && other.Min.LessEq(r.Max)
}

// SetContaining перетворює r на об'єднання a і b, без нових алокацій
func (r *Rect) SetContaining(a, b Rect) {
	r.Min = a.Min.Min(b.Min)
	r.Max = a.Max.Max(b.Max)
}

// Combining повертає найменший прямокутник, що містить обидва вхідні
func Combining(a, b Rect) Rect {
	var r Rect
	r.SetContaining(a, b)
	return r
}

// Union - те саме що Combining, але як метод
func (r Rect) Union(other Rect) Rect { return Combining(r, other) }

// Equals порівнює кути точно, без епсилону
func (r Rect) Equals(other Rect) bool { return r.Min == other.Min && r.Max == other.Max }

// IsFinite перевіряє що жодна координата не NaN і не нескінченність
func (r Rect) IsFinite() bool {
	for _, v := range [...]float64{r.Min[0], r.Min[1], r.Max[0], r.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Size повертає ширину і висоту
func (r Rect) Size() Vec2d { return r.Max.Sub(r.Min) }

// Center повертає центр прямокутника
func (r Rect) Center() Vec2d { return r.Min.Add(r.Max).Mul(0.5) }

// Area повертає площу
func (r Rect) Area() float64 {
	s := r.Size()
	return s[0] * s[1]
}

// Perimeter повертає периметр, в 2D це аналог площі поверхні для SAH
func (r Rect) Perimeter() float64 { return r.Size().Sum() * 2 }

// Translate зсуває прямокутник на d
func (r Rect) Translate(d Vec2d) Rect { return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)} }

func (r Rect) String() string { return fmt.Sprintf("[%v, %v]", r.Min, r.Max) }

// Intersection повертає відстань вздовж променя до входу в прямокутник.
// Якщо початок променя всередині - повертає 0.
// Якщо промінь промахується або прямокутник повністю позаду - +Inf.
func (r Rect) Intersection(ray Ray) float64 {
	tmin, _, _, ok := r.slab(ray)
	if !ok {
		return math.Inf(1)
	}
	return max(tmin, 0)
}

// slab - класичний тест "плит": для кожної осі рахуємо де промінь
// входить і виходить зі смуги [Min, Max], потім перетинаємо інтервали.
// axis - вісь, по якій промінь увійшов останнім (потрібна для нормалі).
// Нульова компонента напрямку обробляється окремо, щоб 0*Inf не дав NaN.
func (r Rect) slab(ray Ray) (tmin, tmax float64, axis int, ok bool) {
	tmin, tmax = math.Inf(-1), math.Inf(1)
	for i := 0; i < 2; i++ {
		o, d := ray.Origin[i], ray.Direction[i]
		if math.IsNaN(r.Min[i]) || math.IsNaN(r.Max[i]) {
			// з NaN усі порівняння хибні, і промінь "починався б усередині"
			return 0, 0, 0, false
		}
		if d == 0 {
			// промінь паралельний цій смузі: або завжди в ній, або ніколи
			if o < r.Min[i] || o > r.Max[i] {
				return 0, 0, 0, false
			}
			continue
		}
		t1 := (r.Min[i] - o) / d
		t2 := (r.Max[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin, axis = t1, i
		}
		tmax = min(tmax, t2)
	}
	if tmax < tmin || tmax < 0 {
		return 0, 0, 0, false
	}
	return tmin, tmax, axis, true
}
