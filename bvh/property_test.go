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
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/rtree"

	"FlowyGeom/geom"
)

// snapshotNode - один вузол у прямому обході, для порівняння структури дерева
type snapshotNode struct {
	Bounds geom.Rect
	Depth  int
	Leaf   bool
	Shape  string
}

func snapshot[S Primitive](t *BVH[S]) []snapshotNode {
	var out []snapshotNode
	var walk func(n *node[S])
	walk = func(n *node[S]) {
		if n == nil {
			return
		}
		s := snapshotNode{Bounds: n.bounds, Depth: n.depth, Leaf: n.isLeaf}
		if n.isLeaf {
			s.Shape = fmt.Sprintf("%p", any(n.primitive))
		}
		out = append(out, s)
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return out
}

func randomBox(r *rand.Rand) *geom.Box {
	x, y := r.Float64()*100, r.Float64()*100
	w, h := 0.1+r.Float64()*5, 0.1+r.Float64()*5
	return box(x, y, x+w, y+h)
}

// TestBVH_RandomOperations - випадкова послідовність змін,
// після кожної перевіряємо всі інваріанти дерева
func TestBVH_RandomOperations(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tree := New[*geom.Box]()
	var live []*geom.Box

	pick := func() (int, *geom.Box) {
		i := r.Intn(len(live))
		return i, live[i]
	}

	for step := 0; step < 2000; step++ {
		op := r.Intn(6)
		if len(live) == 0 {
			op = 0
		}
		switch op {
		case 0, 1: // insert
			b := randomBox(r)
			require.NoError(t, tree.Insert(b))
			live = append(live, b)
		case 2: // remove
			i, b := pick()
			require.NoError(t, tree.Remove(b))
			live = append(live[:i], live[i+1:]...)
		case 3: // move
			_, b := pick()
			b.Translate(geom.Vec2d{r.Float64()*20 - 10, r.Float64()*20 - 10})
			require.NoError(t, tree.Update(b))
		case 4: // grow or shrink
			_, b := pick()
			c := b.Rect.Center()
			half := b.Rect.Size().Mul(0.5 * (0.25 + r.Float64()*2))
			b.Rect = geom.Rect{Min: c.Sub(half), Max: c.Add(half)}
			require.NoError(t, tree.Update(b))
		case 5: // replace
			i, b := pick()
			now := randomBox(r)
			require.NoError(t, tree.Replace(b, now))
			live[i] = now
		}

		if err := tree.Validate(); err != nil {
			t.Fatalf("step %d (op %d): %v", step, op, err)
		}
		require.Equal(t, len(live), tree.Len())
	}
	require.ElementsMatch(t, live, collect(tree.All()))
	t.Logf("%d shapes, depth %d", tree.Len(), tree.Depth())
}

// TestBVH_UpdateNoop - Update без зміни меж не чіпає жодного вузла
func TestBVH_UpdateNoop(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	tree := New[*geom.Box]()
	var shapes []*geom.Box
	for i := 0; i < 200; i++ {
		b := randomBox(r)
		shapes = append(shapes, b)
		require.NoError(t, tree.Insert(b))
	}

	before := snapshot(tree)
	for _, b := range shapes {
		require.NoError(t, tree.Update(b))
	}
	if diff := cmp.Diff(before, snapshot(tree)); diff != "" {
		t.Errorf("update changed the tree (-before +after):\n%s", diff)
	}
}

// TestBVH_BroadQueryMatchesRTree - широка фаза має повертати рівно те,
// що повертає незалежний R-tree на тих самих прямокутниках
func TestBVH_BroadQueryMatchesRTree(t *testing.T) {
	r := rand.New(rand.NewSource(1234))
	tree := New[*geom.Box]()
	var shapes []*geom.Box
	for i := 0; i < 500; i++ {
		b := randomBox(r)
		shapes = append(shapes, b)
		require.NoError(t, tree.Insert(b))
	}
	// трохи перемішуємо дерево, щоб перевіряти не лише свіжі вставки
	for _, b := range shapes[:100] {
		b.Translate(geom.Vec2d{r.Float64()*30 - 15, r.Float64()*30 - 15})
		require.NoError(t, tree.Update(b))
	}
	for _, b := range shapes[100:150] {
		require.NoError(t, tree.Remove(b))
	}
	shapes = append(shapes[:100], shapes[150:]...)
	requireValid(t, tree)

	var oracle rtree.RTreeG[*geom.Box]
	for _, b := range shapes {
		oracle.Insert(b.Rect.Min, b.Rect.Max, b)
	}

	for i := 0; i < 100; i++ {
		q := randomBox(r)
		q.Rect.Max = q.Rect.Max.Add(geom.Vec2d{r.Float64() * 20, r.Float64() * 20})

		var want []*geom.Box
		oracle.Search(q.Rect.Min, q.Rect.Max, func(_, _ [2]float64, b *geom.Box) bool {
			want = append(want, b)
			return true
		})
		got := collect(tree.BroadQuery(q.Rect.Overlaps))
		require.ElementsMatch(t, want, got, "query %v", q.Rect)
	}
}

// TestBVH_QueryMatchesLookup - широка фаза "все підходить" плюс точний
// предикат дає те саме, що й прямий перебір усіх фігур
func TestBVH_QueryMatchesLookup(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	tree := New[*geom.Box]()
	for i := 0; i < 300; i++ {
		require.NoError(t, tree.Insert(randomBox(r)))
	}

	probe := geom.NewCircle(geom.Vec2d{50, 50}, 20)
	var want []*geom.Box
	for b := range tree.lookup {
		if probe.Overlaps(b) {
			want = append(want, b)
		}
	}
	got := collect(tree.Query(
		func(geom.Rect) bool { return true },
		func(b *geom.Box) bool { return probe.Overlaps(b) },
	))
	require.ElementsMatch(t, want, got)
	require.ElementsMatch(t, want, collect(tree.QueryShape(probe.Overlaps)))
}

// TestBVH_RaycastMatchesBruteForce - найближче влучання збігається з повним перебором
func TestBVH_RaycastMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	tree := New[*geom.Box]()
	var shapes []*geom.Box
	for i := 0; i < 300; i++ {
		b := randomBox(r)
		shapes = append(shapes, b)
		require.NoError(t, tree.Insert(b))
	}

	for i := 0; i < 200; i++ {
		angle := r.Float64() * 2 * math.Pi
		ray := geom.NewRay(
			geom.Vec2d{r.Float64()*140 - 20, r.Float64()*140 - 20},
			geom.Vec2d{math.Cos(angle), math.Sin(angle)},
		)
		maxLength := 20 + r.Float64()*100

		best := math.Inf(1)
		for _, b := range shapes {
			if h, ok := b.Raycast(ray, maxLength); ok && h.Distance < best {
				best = h.Distance
			}
		}

		hit, ok := tree.Raycast(ray, maxLength)
		if math.IsInf(best, 1) {
			require.False(t, ok, "ray %v", ray)
			continue
		}
		require.True(t, ok, "ray %v", ray)
		require.Equal(t, best, hit.Distance, "ray %v", ray)
	}
}
