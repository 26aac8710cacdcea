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

package world

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"FlowyGeom/bvh"
	"FlowyGeom/geom"
)

// RayProbe - промінь, який треба кинути у світ
type RayProbe struct {
	Ray       geom.Ray
	MaxLength float64
	Ignore    *Body // тіло, яке промінь пропускає (наприклад, той хто стріляє)
}

// RayResult - результат одного променя. Body == nil означає промах.
type RayResult struct {
	Body *Body
	geom.Hit
}

// CastRays кидає всі промені паралельно і повертає результати в тому ж порядку.
// Поки промені летять, тіки чекають: дерево читається без запису.
func (w *World) CastRays(ctx context.Context, probes []RayProbe) ([]RayResult, error) {
	w.tickLock.RLock()
	defer w.tickLock.RUnlock()

	results := make([]RayResult, len(probes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range probes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Wrapf(err, "ray %d", i)
			}
			results[i] = w.castRay(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// castRay викликається під tickLock на читання
func (w *World) castRay(p RayProbe) RayResult {
	var filter bvh.RaycastFilter[geom.Shape]
	if p.Ignore != nil {
		ignored := p.Ignore.Shape
		filter.Shape = func(s geom.Shape) bool { return s != ignored }
	}
	hit, ok := w.tree.RaycastFiltered(p.Ray, p.MaxLength, filter)
	if !ok {
		return RayResult{}
	}
	return RayResult{Body: w.byShape[hit.Shape], Hit: hit.Hit}
}

// BodiesAt повертає всі тіла, що містять точку
func (w *World) BodiesAt(p geom.Vec2d) []*Body {
	w.tickLock.RLock()
	defer w.tickLock.RUnlock()
	var out []*Body
	for s := range w.tree.QueryPoint(p) {
		out = append(out, w.byShape[s])
	}
	return out
}

// BodiesTouching повертає всі тіла, що перетинаються з фігурою
func (w *World) BodiesTouching(shape geom.Shape) []*Body {
	w.tickLock.RLock()
	defer w.tickLock.RUnlock()
	var out []*Body
	for s := range w.tree.QueryShape(shape.Overlaps) {
		if s != shape {
			out = append(out, w.byShape[s])
		}
	}
	return out
}

// BodiesInside повертає всі тіла, що повністю всередині фігури
func (w *World) BodiesInside(shape geom.Shape) []*Body {
	w.tickLock.RLock()
	defer w.tickLock.RUnlock()
	var out []*Body
	for s := range w.tree.QueryContainedIn(shape) {
		out = append(out, w.byShape[s])
	}
	return out
}
