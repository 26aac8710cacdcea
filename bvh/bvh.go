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

// Йоу, чат! Сьогодні ми розберемо як працює BVH дерево для 2D фігур!
// BVH (Bounding Volume Hierarchy) - це бінарне дерево, де кожен вузол
// тримає прямокутник, який повністю містить усі фігури під ним.
// Дерево оновлюється на льоту: вставка, видалення, оновлення меж,
// а пошук просто відкидає гілки, чиї прямокутники не підходять.
//
// Дерево НЕ потокобезпечне: змінювати його можна лише з однієї горутини,
// і не можна змінювати поки хтось ще ітерує ледачий результат пошуку.

package bvh

import (
	"iter"

	"github.com/pkg/errors"

	"FlowyGeom/geom"
)

// Primitive - фігура, яку можна класти в дерево
// comparable потрібен бо фігура є ключем у lookup (за ідентичністю),
// тому фігури мають бути вказівниками, наприклад *geom.Box
type Primitive interface {
	geom.Shape
	comparable
}

// BVH - дерево обмежувальних прямокутників
type BVH[S Primitive] struct {
	root   *node[S]       // корінь дерева, nil якщо дерево пусте
	lookup map[S]*node[S] // фігура -> її лист, для O(1) видалення і оновлення
}

// New створює пусте дерево
func New[S Primitive]() *BVH[S] {
	return &BVH[S]{lookup: make(map[S]*node[S])}
}

// Len повертає кількість фігур у дереві
func (t *BVH[S]) Len() int { return len(t.lookup) }

// Depth повертає висоту дерева, 0 для пустого або з одним листом
func (t *BVH[S]) Depth() int {
	if t.root == nil {
		return 0
	}
	return t.root.depth
}

// Bounds повертає межі всього дерева, false якщо дерево пусте
func (t *BVH[S]) Bounds() (geom.Rect, bool) {
	if t.root == nil {
		return geom.Rect{}, false
	}
	return t.root.bounds, true
}

// Contains перевіряє чи фігура лежить у дереві
func (t *BVH[S]) Contains(s S) bool {
	_, ok := t.lookup[s]
	return ok
}

// All повертає всі фігури у довільному порядку
func (t *BVH[S]) All() iter.Seq[S] {
	return t.BroadQuery(func(geom.Rect) bool { return true })
}

// Clear видаляє всі фігури
func (t *BVH[S]) Clear() {
	t.root = nil
	clear(t.lookup)
}

// Insert додає фігуру в дерево
// Алгоритм:
// 1. Якщо дерево пусте - новий лист стає коренем
// 2. Якщо корінь не містить фігуру - дерево росте вгору
// 3. Інакше спускаємось туди, де фігура вміщається
func (t *BVH[S]) Insert(s S) error {
	if _, ok := t.lookup[s]; ok {
		return errors.Wrapf(ErrAlreadyContained, "insert %v", s)
	}
	if b := s.Bounds(); !b.IsFinite() {
		return errors.Wrapf(ErrInvalidBounds, "insert %v", s)
	}
	n := newLeaf(s)
	t.lookup[s] = n
	t.insertNode(n)
	return nil
}

// insertNode вставляє готовий вузол від кореня
func (t *BVH[S]) insertNode(n *node[S]) {
	n.parent = nil
	if t.root == nil {
		t.root = n
		return
	}
	if !t.root.bounds.Contains(n.bounds) {
		// новий корінь: старе дерево зліва, новий вузол справа
		t.root = newInternal(t.root, n)
		return
	}
	t.insertUnder(t.root, n)
}

// insertUnder спускається від cur, який вже містить межі n
// Межі предків не змінюються: все відбувається всередині cur
func (t *BVH[S]) insertUnder(cur, n *node[S]) {
	for {
		if cur.isLeaf {
			// дійшли до листа: робимо n його братом
			parent := cur.parent
			pair := newInternal(cur, n)
			if parent == nil {
				t.root = pair
			} else {
				parent.replaceChild(cur, pair)
			}
			t.updateDepth(parent)
			return
		}

		inLeft := cur.left.bounds.Contains(n.bounds)
		inRight := cur.right.bounds.Contains(n.bounds)
		switch {
		case inLeft && inRight:
			// обидва підходять - ростемо менш глибоке піддерево, при рівності праве
			cur = shallower(cur)
		case inLeft:
			cur = cur.left
		case inRight:
			cur = cur.right
		default:
			// ніхто не містить: n в парі з менш глибокою дитиною
			child := shallower(cur)
			cur.replaceChild(child, newInternal(child, n))
			t.updateDepth(cur)
			return
		}
	}
}

// shallower повертає дитину з меншою висотою, при рівності праву
func shallower[S Primitive](n *node[S]) *node[S] {
	if n.left.depth < n.right.depth {
		return n.left
	}
	return n.right
}

// updateDepth перераховує висоту від n вгору
// Зупиняється на першому предку, чия висота вже правильна
func (t *BVH[S]) updateDepth(n *node[S]) {
	for ; n != nil; n = n.parent {
		d := 1 + max(n.left.depth, n.right.depth)
		if d == n.depth {
			return
		}
		n.depth = d
	}
}

// refit перераховує межі і висоту від n вгору
// Зупиняється на першому предку, який не змінився
func (t *BVH[S]) refit(n *node[S]) {
	for ; n != nil; n = n.parent {
		if !n.refresh() {
			return
		}
	}
}

// Remove видаляє фігуру з дерева
func (t *BVH[S]) Remove(s S) error {
	n, ok := t.lookup[s]
	if !ok {
		return errors.Wrapf(ErrNotContained, "remove %v", s)
	}
	delete(t.lookup, s)
	if n == t.root {
		// видаляємо корінь - дерево стає пустим
		t.root = nil
		return nil
	}
	t.refit(t.detach(n))
	return nil
}

// detach вирізає лист з дерева: його брат займає місце батька
// Повертає діда (звідки треба оновлювати межі) або nil якщо брат став коренем
func (t *BVH[S]) detach(n *node[S]) *node[S] {
	parent := n.parent
	sibling := parent.sibling(n)
	grand := parent.parent
	n.parent = nil
	if grand == nil {
		// батько був коренем, брат стає новим коренем
		t.root = sibling
		sibling.parent = nil
		return nil
	}
	grand.replaceChild(parent, sibling)
	return grand
}

// Update синхронізує кешовані межі з поточними межами фігури
// Викликати треба щоразу, коли геометрія фігури змінилась
func (t *BVH[S]) Update(s S) error {
	n, ok := t.lookup[s]
	if !ok {
		return errors.Wrapf(ErrNotContained, "update %v", s)
	}
	if b := s.Bounds(); !b.IsFinite() {
		// лист лишається зі старими межами, поки фігуру не виправлять
		return errors.Wrapf(ErrInvalidBounds, "update %v", s)
	}
	t.sync(n)
	return nil
}

// Replace міняє фігуру в листі на іншу і синхронізує межі
// Дешевше ніж Remove+Insert, коли геометрія схожа
func (t *BVH[S]) Replace(old, now S) error {
	n, ok := t.lookup[old]
	if !ok {
		return errors.Wrapf(ErrNotContained, "replace %v", old)
	}
	if other, ok := t.lookup[now]; ok && other != n {
		return errors.Wrapf(ErrAlreadyContained, "replace %v with %v", old, now)
	}
	if b := now.Bounds(); !b.IsFinite() {
		return errors.Wrapf(ErrInvalidBounds, "replace %v with %v", old, now)
	}
	delete(t.lookup, old)
	t.lookup[now] = n
	n.primitive = now
	t.sync(n)
	return nil
}

// sync - спільна логіка Update і Replace
func (t *BVH[S]) sync(n *node[S]) {
	b := n.primitive.Bounds()
	switch {
	case b.Equals(n.bounds):
		return
	case n == t.root:
		n.bounds = b
		return
	case n.bounds.Contains(b):
		// фігура зменшилась: достатньо підтягнути межі предків
		n.bounds = b
		t.refit(n.parent)
		return
	}

	// фігура вилізла за старі межі: виймаємо і вставляємо заново
	n.bounds = b
	grand := t.detach(n)
	if grand == nil {
		// брат тепер окреме дерево, пробуємо вставити під нього
		t.insertNode(n)
		return
	}
	t.refit(grand)
	// шукаємо найнижчого предка, який вже вміщує нові межі
	for p := grand; p != nil; p = p.parent {
		if p.bounds.Contains(b) {
			t.insertUnder(p, n)
			return
		}
	}
	// навіть корінь не вміщує - новий корінь
	t.root = newInternal(t.root, n)
}

// String повертає текстове представлення дерева
func (t *BVH[S]) String() string {
	return t.root.String()
}
