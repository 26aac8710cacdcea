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

// Йоу, чат! Тут пускаємо промені крізь дерево.
// Спочатку йдемо в ближчу дитину, а дальню перевіряємо лише тоді,
// коли там ще може знайтись щось ближче за вже знайдене влучання.

package bvh

import (
	"iter"
	"math"

	"FlowyGeom/geom"
)

// RayHit - влучання променя разом з фігурою, в яку влучили
type RayHit[S Primitive] struct {
	Shape S
	geom.Hit
}

// RaycastFilter - необов'язкові фільтри для Raycast, nil означає "приймати все"
type RaycastFilter[S Primitive] struct {
	Broad func(bound geom.Rect) bool // відкидає цілі гілки за прямокутником
	Shape func(s S) bool             // відкидає фігуру до перевірки променем
	Hit   func(hit RayHit[S]) bool   // відкидає вже знайдене влучання
}

// Raycast повертає найближче влучання не далі maxLength
func (t *BVH[S]) Raycast(ray geom.Ray, maxLength float64) (RayHit[S], bool) {
	return t.RaycastFiltered(ray, maxLength, RaycastFilter[S]{})
}

// RaycastFiltered - Raycast з фільтрами
func (t *BVH[S]) RaycastFiltered(ray geom.Ray, maxLength float64, filter RaycastFilter[S]) (RayHit[S], bool) {
	if t.root == nil {
		return RayHit[S]{}, false
	}
	if d := entry(t.root, ray, filter); d > maxLength || math.IsInf(d, 1) {
		return RayHit[S]{}, false
	}
	return raycast(t.root, ray, maxLength, filter)
}

// entry - відстань до входу в прямокутник вузла, +Inf якщо промах
// або якщо фільтр широкої фази відкинув вузол
func entry[S Primitive](n *node[S], ray geom.Ray, filter RaycastFilter[S]) float64 {
	if filter.Broad != nil && !filter.Broad(n.bounds) {
		return math.Inf(1)
	}
	return n.bounds.Intersection(ray)
}

// raycast рекурсивно спускається від n, ближча дитина першою
func raycast[S Primitive](n *node[S], ray geom.Ray, maxLength float64, filter RaycastFilter[S]) (RayHit[S], bool) {
	if n.isLeaf {
		if filter.Shape != nil && !filter.Shape(n.primitive) {
			return RayHit[S]{}, false
		}
		h, ok := n.primitive.Raycast(ray, maxLength)
		if !ok {
			return RayHit[S]{}, false
		}
		hit := RayHit[S]{Shape: n.primitive, Hit: h}
		if filter.Hit != nil && !filter.Hit(hit) {
			return RayHit[S]{}, false
		}
		return hit, true
	}

	near, far := n.left, n.right
	dNear, dFar := entry(near, ray, filter), entry(far, ray, filter)
	if dFar < dNear {
		near, far = far, near
		dNear, dFar = dFar, dNear
	}
	farReachable := dFar <= maxLength && !math.IsInf(dFar, 1)
	if dNear > maxLength || math.IsInf(dNear, 1) {
		// ближча дитина недосяжна, значить і дальня теж
		return RayHit[S]{}, false
	}

	hit, ok := raycast(near, ray, maxLength, filter)
	if !ok {
		if farReachable {
			return raycast(far, ray, maxLength, filter)
		}
		return RayHit[S]{}, false
	}
	if hit.Distance < dFar || !farReachable {
		// в дальньому піддереві нічого ближчого бути не може
		return hit, true
	}
	// дальнє піддерево ще може дати ближче влучання, шукаємо не далі за hit
	if farHit, ok := raycast(far, ray, hit.Distance, filter); ok && farHit.Distance < hit.Distance {
		return farHit, true
	}
	return hit, true
}

// RaycastAll повертає всі влучання не далі maxLength у довільному порядку
func (t *BVH[S]) RaycastAll(ray geom.Ray, maxLength float64) iter.Seq2[S, geom.Hit] {
	return QueryMap(t,
		func(bound geom.Rect) bool {
			d := bound.Intersection(ray)
			return d <= maxLength && !math.IsInf(d, 1)
		},
		func(s S) (geom.Hit, bool) { return s.Raycast(ray, maxLength) },
	)
}
