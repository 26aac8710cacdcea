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

// Йоу, чат! Тут живуть тіла нашого світу.
// Тіло - це фігура з ідентифікатором, ім'ям і швидкістю.
// Рухатись можуть лише фігури, що вміють Translate (geom.Mover),
// решта стоїть на місці як стіни.

package world

import (
	"math"

	"github.com/google/uuid"

	"FlowyGeom/geom"
)

// Body - одне тіло у світі
type Body struct {
	ID       uuid.UUID
	Name     string
	Shape    geom.Shape
	Velocity geom.Vec2d // одиниць за секунду
}

// NewBody створює тіло з випадковим ID
func NewBody(name string, shape geom.Shape, velocity geom.Vec2d) *Body {
	return &Body{ID: uuid.New(), Name: name, Shape: shape, Velocity: velocity}
}

// Movable повідомляє чи тіло може рухатись
func (b *Body) Movable() bool {
	_, ok := b.Shape.(geom.Mover)
	return ok && b.Velocity != (geom.Vec2d{})
}

// move зсуває фігуру на d, фігура мусить бути geom.Mover
func (b *Body) move(d geom.Vec2d) {
	b.Shape.(geom.Mover).Translate(d)
}

// isValid перевіряє що межі тіла і швидкість - скінченні числа.
// NaN у межах ламає всі порівняння в дереві, тож таке тіло не пускаємо.
func (b *Body) isValid() bool {
	if !b.Shape.Bounds().IsFinite() {
		return false
	}
	for _, v := range b.Velocity {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (b *Body) String() string {
	if b.Name != "" {
		return b.Name
	}
	return b.ID.String()
}
