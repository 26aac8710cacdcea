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

package bvh

import (
	"fmt"

	"FlowyGeom/geom"
)

// node - вузол BVH дерева
// Лист тримає одну фігуру і копію її меж, depth = 0.
// Внутрішній вузол має рівно двох дітей, bounds = об'єднання їх меж,
// depth = 1 + max(depth дітей).
// Батько володіє дітьми, а діти тримають лише зворотне посилання.
type node[S Primitive] struct {
	bounds    geom.Rect // обмежувальний прямокутник
	primitive S         // фігура (тільки в листах)
	parent    *node[S]  // батьківський вузол, nil для кореня
	left      *node[S]  // nil для листів
	right     *node[S]  // nil для листів
	depth     int       // висота піддерева
	isLeaf    bool      // чи є вузол листом
}

// newLeaf загортає фігуру в лист, межі копіюються одразу
func newLeaf[S Primitive](s S) *node[S] {
	return &node[S]{bounds: s.Bounds(), primitive: s, isLeaf: true}
}

// newInternal об'єднує два піддерева під новим вузлом
// Батька нового вузла виставляє той, хто його вставляє
func newInternal[S Primitive](left, right *node[S]) *node[S] {
	n := &node[S]{
		bounds: geom.Combining(left.bounds, right.bounds),
		left:   left,
		right:  right,
		depth:  1 + max(left.depth, right.depth),
	}
	left.parent = n
	right.parent = n
	return n
}

// sibling повертає іншу дитину (не child)
func (n *node[S]) sibling(child *node[S]) *node[S] {
	if n.left == child {
		return n.right
	} else if n.right == child {
		return n.left
	}
	panic("unreachable, please make sure the 'child' is the n's child")
}

// replaceChild ставить now на місце old і перепідвішує now до n
func (n *node[S]) replaceChild(old, now *node[S]) {
	if n.left == old {
		n.left = now
	} else if n.right == old {
		n.right = now
	} else {
		panic("unreachable, please make sure the 'old' is the n's child")
	}
	now.parent = n
}

// refresh перераховує межі і висоту з дітей
// Повертає false якщо нічого не змінилось
func (n *node[S]) refresh() bool {
	var b geom.Rect
	b.SetContaining(n.left.bounds, n.right.bounds)
	d := 1 + max(n.left.depth, n.right.depth)
	if b.Equals(n.bounds) && d == n.depth {
		return false
	}
	n.bounds, n.depth = b, d
	return true
}

// next повертає наступний вузол у прямому обході, пропускаючи піддерево n:
// правого брата, або правого брата найближчого предка. nil - обхід скінчився.
func (n *node[S]) next() *node[S] {
	for c := n; c.parent != nil; c = c.parent {
		if c.parent.left == c {
			return c.parent.right
		}
	}
	return nil
}

// String повертає текстове представлення піддерева
func (n *node[S]) String() string {
	if n == nil {
		return "{}"
	}
	if n.isLeaf {
		return fmt.Sprint(n.primitive)
	}
	return fmt.Sprintf("{%v, %v}", n.left, n.right)
}
