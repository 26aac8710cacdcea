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
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate обходить усе дерево і збирає всі порушені інваріанти:
// - межі внутрішнього вузла точно дорівнюють об'єднанню меж дітей
// - висота внутрішнього вузла = 1 + max(висоти дітей), у листа 0
// - діти посилаються на свого батька
// - межі листа збігаються з межами фігури і містяться в межах батька
// - lookup містить рівно ті фігури, що є листами дерева
// Повертає nil якщо все гаразд.
func (t *BVH[S]) Validate() error {
	var err error
	if t.root != nil && t.root.parent != nil {
		err = multierr.Append(err, errors.New("root has a parent"))
	}
	leaves := 0
	err = multierr.Append(err, t.validateNode(t.root, &leaves))
	if leaves != len(t.lookup) {
		err = multierr.Append(err, errors.Errorf("tree has %d leaves, lookup has %d entries", leaves, len(t.lookup)))
	}
	return err
}

func (t *BVH[S]) validateNode(n *node[S], leaves *int) (err error) {
	if n == nil {
		return nil
	}
	if n.isLeaf {
		*leaves++
		if n.left != nil || n.right != nil {
			err = multierr.Append(err, errors.Errorf("leaf %v has children", n.primitive))
		}
		if n.depth != 0 {
			err = multierr.Append(err, errors.Errorf("leaf %v has depth %d", n.primitive, n.depth))
		}
		if owner, ok := t.lookup[n.primitive]; !ok || owner != n {
			err = multierr.Append(err, errors.Errorf("leaf %v is not in lookup", n.primitive))
		}
		if b := n.primitive.Bounds(); !b.Equals(n.bounds) {
			err = multierr.Append(err, errors.Errorf("leaf %v caches %v, shape bounds are %v", n.primitive, n.bounds, b))
		}
		if n.parent != nil && !n.parent.bounds.Contains(n.bounds) {
			err = multierr.Append(err, errors.Errorf("leaf %v sticks out of its parent %v", n.primitive, n.parent.bounds))
		}
		return err
	}

	if n.left == nil || n.right == nil {
		return multierr.Append(err, errors.Errorf("internal node %v misses a child", n.bounds))
	}
	for _, c := range [2]*node[S]{n.left, n.right} {
		if c.parent != n {
			err = multierr.Append(err, errors.Errorf("child %v doesn't point to its parent %v", c.bounds, n.bounds))
		}
	}
	want := n.left.bounds.Union(n.right.bounds)
	if !want.Equals(n.bounds) {
		err = multierr.Append(err, errors.Errorf("node bounds %v, union of children is %v", n.bounds, want))
	}
	if d := 1 + max(n.left.depth, n.right.depth); d != n.depth {
		err = multierr.Append(err, errors.Errorf("node %v has depth %d, want %d", n.bounds, n.depth, d))
	}
	return multierr.Combine(err, t.validateNode(n.left, leaves), t.validateNode(n.right, leaves))
}
