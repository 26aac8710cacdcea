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
	"testing"

	"github.com/stretchr/testify/require"

	"FlowyGeom/geom"
)

// queryTree - чотири коробки, що перекриваються, як у старому тесті Find
func queryTree(t *testing.T) (*boxTree, []*geom.Box) {
	tree := New[*geom.Box]()
	boxes := []*geom.Box{
		box(-1, -1, 2, 2), // великий прямокутник
		box(-1, -2, 2, 1), // нижній
		box(-2, -2, 1, 1), // лівий
		box(-2, -1, 1, 2), // верхній
		box(10, 10, 11, 11),
	}
	for _, b := range boxes {
		require.NoError(t, tree.Insert(b))
	}
	requireValid(t, tree)
	return tree, boxes
}

func TestBVH_BroadQuery(t *testing.T) {
	tree, boxes := queryTree(t)

	none := collect(tree.BroadQuery(func(geom.Rect) bool { return false }))
	require.Empty(t, none)

	all := collect(tree.BroadQuery(func(geom.Rect) bool { return true }))
	require.ElementsMatch(t, boxes, all)
	require.ElementsMatch(t, boxes, collect(tree.All()))

	// кожен range починає обхід спочатку
	seq := tree.All()
	require.Len(t, collect(seq), len(boxes))
	require.Len(t, collect(seq), len(boxes))

	// обхід можна перервати
	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)
}

func TestBVH_QueryPoint(t *testing.T) {
	tree, boxes := queryTree(t)

	require.ElementsMatch(t, boxes[:4], collect(tree.QueryPoint(geom.Vec2d{0, 0})))
	require.ElementsMatch(t, []*geom.Box{boxes[0], boxes[1]}, collect(tree.QueryPoint(geom.Vec2d{1.5, 0})))
	require.ElementsMatch(t, []*geom.Box{boxes[0]}, collect(tree.QueryPoint(geom.Vec2d{1.5, 1.5})))
	require.ElementsMatch(t, []*geom.Box{boxes[2], boxes[3]}, collect(tree.QueryPoint(geom.Vec2d{-1.5, 0})))
	require.Empty(t, collect(tree.QueryPoint(geom.Vec2d{5, 5})))
}

func TestBVH_QueryShape(t *testing.T) {
	tree, boxes := queryTree(t)

	probe := geom.NewCircle(geom.Vec2d{10.5, 10.5}, 0.2)
	got := collect(tree.QueryShape(probe.Overlaps))
	require.Equal(t, []*geom.Box{boxes[4]}, got)
}

func TestBVH_QueryOverlapping(t *testing.T) {
	tree, boxes := queryTree(t)

	probe := geom.NewBox(geom.Vec2d{-2.5, -0.5}, geom.Vec2d{-1.5, 0.5})
	found := map[*geom.Box]geom.Manifold{}
	for s, m := range tree.QueryOverlapping(probe) {
		found[s] = m
	}
	require.Len(t, found, 2)
	require.Contains(t, found, boxes[2])
	require.Contains(t, found, boxes[3])
	require.Equal(t, geom.Vec2d{1, 0}, found[boxes[2]].Normal)

	// фігура з дерева не перетинається сама з собою
	found = map[*geom.Box]geom.Manifold{}
	for s, m := range tree.QueryOverlapping(boxes[4]) {
		found[s] = m
	}
	require.Empty(t, found)
}

func TestBVH_QueryContainedIn(t *testing.T) {
	tree, boxes := queryTree(t)

	got := collect(tree.QueryContainedIn(geom.NewBox(geom.Vec2d{-3, -3}, geom.Vec2d{3, 3})))
	require.ElementsMatch(t, boxes[:4], got)

	got = collect(tree.QueryContainedIn(boxes[0]))
	require.Empty(t, got)

	got = collect(tree.QueryContainedIn(geom.NewCircle(geom.Vec2d{10.5, 10.5}, 1)))
	require.Equal(t, []*geom.Box{boxes[4]}, got)
}

func TestQueryMap(t *testing.T) {
	tree, boxes := queryTree(t)

	areas := map[*geom.Box]float64{}
	seq := QueryMap(tree,
		func(bound geom.Rect) bool { return true },
		func(b *geom.Box) (float64, bool) {
			a := b.Rect.Area()
			return a, a > 1
		},
	)
	for b, a := range seq {
		areas[b] = a
	}
	require.Len(t, areas, 4)
	require.NotContains(t, areas, boxes[4])
	require.Equal(t, 9.0, areas[boxes[0]])
}
