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

// Йоу, чат! Тут пошук по дереву.
// Широка фаза дивиться лише на прямокутники вузлів і відкидає цілі гілки,
// вузька фаза перевіряє вже самі фігури. Всі результати ледачі:
// поки ви не попросили наступний елемент, дерево ніхто не чіпає.

package bvh

import (
	"iter"

	"FlowyGeom/geom"
)

// BroadQuery повертає фігури, для яких filter приймає прямокутник
// кожного вузла на шляху від кореня до листа. Порядок не визначений.
//
// filter має бути монотонним: якщо він приймає фігуру, то має приймати
// і будь-який прямокутник, що її містить. Інакше фігури будуть загублені.
//
// Кожен виклик (і кожен range по результату) починає новий обхід.
// Не можна змінювати дерево поки обхід не скінчився.
func (t *BVH[S]) BroadQuery(filter func(bound geom.Rect) bool) iter.Seq[S] {
	return func(yield func(S) bool) {
		// обхід без рекурсії: курсор або спускається вліво,
		// або перестрибує через піддерево до наступного вузла
		n := t.root
		for n != nil {
			if !filter(n.bounds) {
				n = n.next()
				continue
			}
			if !n.isLeaf {
				n = n.left
				continue
			}
			if !yield(n.primitive) {
				return
			}
			n = n.next()
		}
	}
}

// Query - широка фаза broad, а потім точна перевірка narrow
func (t *BVH[S]) Query(broad func(bound geom.Rect) bool, narrow func(s S) bool) iter.Seq[S] {
	return func(yield func(S) bool) {
		for s := range t.BroadQuery(broad) {
			if narrow(s) && !yield(s) {
				return
			}
		}
	}
}

// QueryShape використовує один предикат для обох фаз:
// у широкій фазі прямокутник вузла подається як geom.Box
func (t *BVH[S]) QueryShape(pred func(shape geom.Shape) bool) iter.Seq[S] {
	return t.Query(
		func(bound geom.Rect) bool { return pred(&geom.Box{Rect: bound}) },
		func(s S) bool { return pred(s) },
	)
}

// QueryMap - широка фаза + фільтр з перетворенням
// Видаються лише ті фігури, для яких mapper повернув true
// Це функція, а не метод, бо методи в Go не можуть мати своїх параметрів типу
func QueryMap[S Primitive, R any](t *BVH[S], broad func(bound geom.Rect) bool, mapper func(s S) (R, bool)) iter.Seq2[S, R] {
	return func(yield func(S, R) bool) {
		for s := range t.BroadQuery(broad) {
			if r, ok := mapper(s); ok && !yield(s, r) {
				return
			}
		}
	}
}

// QueryPoint повертає фігури, які містять точку
func (t *BVH[S]) QueryPoint(p geom.Vec2d) iter.Seq[S] {
	return t.Query(
		func(bound geom.Rect) bool { return bound.ContainsPoint(p) },
		func(s S) bool { return s.ContainsPoint(p) },
	)
}

// QueryOverlapping повертає фігури, що перетинаються з shape, разом з контактом
// Нормаль контакту дивиться від shape до знайденої фігури
// Якщо shape сама лежить у дереві - її пропускаємо
func (t *BVH[S]) QueryOverlapping(shape geom.Shape) iter.Seq2[S, geom.Manifold] {
	bounds := shape.Bounds()
	return QueryMap(t,
		func(bound geom.Rect) bool { return bound.Overlaps(bounds) },
		func(s S) (geom.Manifold, bool) {
			if geom.Shape(s) == shape {
				return geom.Manifold{}, false
			}
			return shape.Contact(s)
		},
	)
}

// QueryContainedIn повертає фігури, що повністю лежать всередині shape
func (t *BVH[S]) QueryContainedIn(shape geom.Shape) iter.Seq[S] {
	bounds := shape.Bounds()
	return t.Query(
		func(bound geom.Rect) bool { return bound.Overlaps(bounds) },
		func(s S) bool { return geom.Shape(s) != shape && shape.ContainsShape(s) },
	)
}
