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

// Йоу, чат! Тут система тіків нашого світу.
// Один тік: рухаємо всі тіла, відбиваємо їх від стін, оновлюємо дерево,
// а потім шукаємо всі пари тіл, що торкаються. Темп тіків задає rate.Limiter.

package world

import (
	"bytes"
	"context"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"FlowyGeom/geom"
)

// Contact - два тіла, що перетинаються. Нормаль дивиться від A до B.
type Contact struct {
	A, B *Body
	geom.Manifold
}

// TickReport - результат одного тіку
type TickReport struct {
	Tick     uint
	Moved    int
	Contacts []Contact
}

// RunReport - підсумок кількох тіків
type RunReport struct {
	Ticks       int
	Contacts    int // сума контактів по всіх тіках
	MaxContacts int // найбільше контактів за один тік
}

// Tick виконує одне оновлення світу на dt секунд
func (w *World) Tick(dt float64) TickReport {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()

	w.ticks++
	report := TickReport{Tick: w.ticks}
	report.Moved = w.subtickMove(dt)
	report.Contacts = w.subtickContacts()

	if w.config.CheckInvariants {
		if err := w.tree.Validate(); err != nil {
			w.log.Panic("Tree invariants are broken", zap.Uint("tick", w.ticks), zap.Error(err))
		}
	}
	return report
}

// subtickMove рухає тіла і синхронізує їх межі в дереві
func (w *World) subtickMove(dt float64) (moved int) {
	for _, b := range w.bodies {
		if !b.Movable() {
			continue
		}
		b.move(b.Velocity.Mul(dt))
		if w.config.walled() {
			w.bounce(b)
		}
		if err := w.tree.Update(b.Shape); err != nil {
			w.log.Panic("Moving body is not in the tree", zap.Stringer("body", b), zap.Error(err))
		}
		moved++
	}
	return
}

// bounce повертає тіло всередину стін і розвертає швидкість по тій осі,
// де воно вилізло
func (w *World) bounce(b *Body) {
	walls, r := w.config.Bounds, b.Shape.Bounds()
	var push geom.Vec2d
	for i := 0; i < 2; i++ {
		switch {
		case r.Min[i] < walls.Min[i]:
			push[i] = walls.Min[i] - r.Min[i]
			b.Velocity[i] = abs(b.Velocity[i])
		case r.Max[i] > walls.Max[i]:
			push[i] = walls.Max[i] - r.Max[i]
			b.Velocity[i] = -abs(b.Velocity[i])
		}
	}
	if push != (geom.Vec2d{}) {
		b.move(push)
		w.log.Debug("Body bounced",
			zap.Stringer("body", b),
			zap.Stringer("velocity", b.Velocity),
		)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// subtickContacts шукає всі пари тіл, що перетинаються.
// Кожна пара потрапляє в результат один раз: A завжди з меншим ID.
func (w *World) subtickContacts() []Contact {
	var contacts []Contact
	for _, a := range w.bodies {
		for s, m := range w.tree.QueryOverlapping(a.Shape) {
			b := w.byShape[s]
			if bytes.Compare(a.ID[:], b.ID[:]) < 0 {
				contacts = append(contacts, Contact{A: a, B: b, Manifold: m})
			}
		}
	}
	slices.SortFunc(contacts, func(x, y Contact) int {
		if c := bytes.Compare(x.A.ID[:], y.A.ID[:]); c != 0 {
			return c
		}
		return bytes.Compare(x.B.ID[:], y.B.ID[:])
	})
	return contacts
}

// Run виконує steps тіків по dt секунд, чекаючи limiter перед кожним.
// limiter може бути nil, тоді тіки йдуть без пауз.
func (w *World) Run(ctx context.Context, steps int, dt float64, limiter *rate.Limiter) (RunReport, error) {
	var report RunReport
	for i := 0; i < steps; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return report, errors.Wrapf(err, "wait for tick %d", i)
			}
		} else if err := ctx.Err(); err != nil {
			return report, errors.Wrapf(err, "tick %d", i)
		}

		r := w.Tick(dt)
		report.Ticks++
		report.Contacts += len(r.Contacts)
		report.MaxContacts = max(report.MaxContacts, len(r.Contacts))
		if len(r.Contacts) > 0 {
			w.log.Debug("Contacts",
				zap.Uint("tick", r.Tick),
				zap.Int("count", len(r.Contacts)),
				zap.Int("moved", r.Moved),
			)
		}
	}
	return report, nil
}
