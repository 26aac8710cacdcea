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

// Йоу, чат! Це центральний файл світу.
// Світ тримає всі тіла в BVH дереві, щоб швидко шукати зіткнення,
// влучання променів і тіла в точці. Дерево саме по собі не потокобезпечне,
// тому тіки беруть м'ютекс на запис, а всі запити - на читання.

package world

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"FlowyGeom/bvh"
	"FlowyGeom/geom"
)

var (
	ErrBodyExists   = errors.New("body already exists")
	ErrBodyNotFound = errors.New("body not found")
	ErrInvalidBody  = errors.New("invalid body")
)

// World - світ з тілами, проіндексованими BVH деревом
type World struct {
	log    *zap.Logger
	config Config

	tickLock sync.RWMutex // тік пише, запити читають
	tree     *bvh.BVH[geom.Shape]
	bodies   map[uuid.UUID]*Body
	byShape  map[geom.Shape]*Body // зворотний індекс для результатів дерева
	ticks    uint
}

// Config - налаштування світу
type Config struct {
	// Bounds - стіни світу, від яких відбиваються тіла.
	// Порожній прямокутник означає світ без стін.
	Bounds geom.Rect
	// CheckInvariants - перевіряти дерево після кожного тіку
	CheckInvariants bool
}

func (c Config) walled() bool { return c.Bounds.Area() > 0 }

// New створює порожній світ
func New(logger *zap.Logger, config Config) *World {
	return &World{
		log:     logger,
		config:  config,
		tree:    bvh.New[geom.Shape](),
		bodies:  make(map[uuid.UUID]*Body),
		byShape: make(map[geom.Shape]*Body),
	}
}

// AddBody додає тіло до світу
func (w *World) AddBody(b *Body) error {
	if b == nil || b.Shape == nil {
		return errors.Wrap(ErrInvalidBody, "body without shape")
	}
	if !b.isValid() {
		return errors.Wrapf(ErrInvalidBody, "body %v has non-finite bounds or velocity", b)
	}

	w.tickLock.Lock()
	defer w.tickLock.Unlock()
	if _, ok := w.bodies[b.ID]; ok {
		return errors.Wrapf(ErrBodyExists, "add %v", b)
	}
	if err := w.tree.Insert(b.Shape); err != nil {
		return errors.Wrapf(err, "add %v", b)
	}
	w.bodies[b.ID] = b
	w.byShape[b.Shape] = b
	w.log.Debug("Add body",
		zap.Stringer("id", b.ID),
		zap.String("name", b.Name),
		zap.Stringer("bounds", b.Shape.Bounds()),
	)
	return nil
}

// RemoveBody видаляє тіло зі світу
func (w *World) RemoveBody(id uuid.UUID) error {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return errors.Wrapf(ErrBodyNotFound, "remove %v", id)
	}
	if err := w.tree.Remove(b.Shape); err != nil {
		// тіло є в мапі, а фігури немає в дереві - індекси розійшлись
		w.log.Panic("body is not in the tree", zap.Stringer("body", b), zap.Error(err))
	}
	delete(w.bodies, id)
	delete(w.byShape, b.Shape)
	w.log.Debug("Remove body", zap.Stringer("id", id), zap.String("name", b.Name))
	return nil
}

// Body повертає тіло за ID
func (w *World) Body(id uuid.UUID) (*Body, bool) {
	w.tickLock.RLock()
	defer w.tickLock.RUnlock()
	b, ok := w.bodies[id]
	return b, ok
}

// Len повертає кількість тіл
func (w *World) Len() int {
	w.tickLock.RLock()
	defer w.tickLock.RUnlock()
	return len(w.bodies)
}

// Stats - знімок стану індексу
type Stats struct {
	Bodies int
	Depth  int
	Ticks  uint
	Bounds geom.Rect
}

func (w *World) Stats() Stats {
	w.tickLock.RLock()
	defer w.tickLock.RUnlock()
	bounds, _ := w.tree.Bounds()
	return Stats{
		Bodies: w.tree.Len(),
		Depth:  w.tree.Depth(),
		Ticks:  w.ticks,
		Bounds: bounds,
	}
}

// Validate перевіряє інваріанти дерева
func (w *World) Validate() error {
	w.tickLock.RLock()
	defer w.tickLock.RUnlock()
	return w.tree.Validate()
}
