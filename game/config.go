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

// Йоу, чат! Зараз розберемо конфігурацію сцени!
// Сцена описується TOML файлом: налаштування симуляції, фігури,
// промені і точки, які треба перевірити.

package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"FlowyGeom/geom"
)

// Config - головна структура сцени
// Поля з тегом `toml` читаються з конфіг файлу
type Config struct {
	Simulation Simulation    `toml:"simulation"`
	Shapes     []ShapeConfig `toml:"shape"`
	Rays       []RayConfig   `toml:"ray"`
	Probes     []ProbeConfig `toml:"probe"`
}

// Simulation - як довго і як швидко крутити світ
type Simulation struct {
	// Скільки тіків виконати
	Steps int `toml:"steps"`

	// Скільки секунд минає за один тік
	Dt float64 `toml:"dt"`

	// Темп тіків, наприклад не більше 1 тіку кожні 50ms.
	// Порожній лімітер означає "без пауз".
	StepLimiter Limiter `toml:"step-limiter"`

	// Стіни світу, від яких відбиваються тіла
	WorldBounds *Bounds `toml:"world-bounds"`

	// Перевіряти дерево після кожного тіку (повільно, для дебагу)
	CheckInvariants bool `toml:"check-invariants"`
}

// Bounds - прямокутник у конфігу, кути можна задавати в будь-якому порядку
type Bounds struct {
	Min geom.Vec2d `toml:"min"`
	Max geom.Vec2d `toml:"max"`
}

func (b Bounds) Rect() geom.Rect { return geom.NewRect(b.Min, b.Max) }

// Типи фігур, які розуміє конфіг
const (
	KindBox    = "box"
	KindCircle = "circle"
)

// ShapeConfig - одна фігура сцени
type ShapeConfig struct {
	Kind string `toml:"kind"`
	Name string `toml:"name"`
	// ID у форматі UUID, якщо порожній - генерується випадковий
	ID string `toml:"id,omitempty"`

	// для коробки
	Min geom.Vec2d `toml:"min,omitempty"`
	Max geom.Vec2d `toml:"max,omitempty"`

	// для кола
	Center geom.Vec2d `toml:"center,omitempty"`
	Radius float64    `toml:"radius,omitempty"`

	Velocity geom.Vec2d `toml:"velocity,omitempty"`
}

// Shape будує фігуру з конфігу
func (s ShapeConfig) Shape() (geom.Shape, error) {
	switch s.Kind {
	case KindBox:
		if s.Min == s.Max {
			return nil, errors.Errorf("box %q has zero size", s.Name)
		}
		return geom.NewBox(s.Min, s.Max), nil
	case KindCircle:
		if s.Radius <= 0 {
			return nil, errors.Errorf("circle %q has radius %v", s.Name, s.Radius)
		}
		return geom.NewCircle(s.Center, s.Radius), nil
	default:
		return nil, errors.Errorf("shape %q has unknown kind %q", s.Name, s.Kind)
	}
}

// UUID повертає ID фігури або новий випадковий
func (s ShapeConfig) UUID() (uuid.UUID, error) {
	if s.ID == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(s.ID)
	return id, errors.Wrapf(err, "shape %q", s.Name)
}

// RayConfig - промінь, який кидається після симуляції
type RayConfig struct {
	Origin    geom.Vec2d `toml:"origin"`
	Direction geom.Vec2d `toml:"direction"`
	MaxLength float64    `toml:"max-length"`
	// Ім'я фігури, крізь яку промінь пролітає
	Ignore string `toml:"ignore,omitempty"`
}

// ProbeConfig - точка, для якої шукаємо всі тіла, що її містять
type ProbeConfig struct {
	Point geom.Vec2d `toml:"point"`
}

// Validate перевіряє всю сцену і повертає всі знайдені помилки разом
func (c *Config) Validate() (err error) {
	sim := c.Simulation
	if sim.Steps < 0 {
		err = multierr.Append(err, errors.Errorf("simulation.steps is negative: %d", sim.Steps))
	}
	if sim.Steps > 0 && sim.Dt <= 0 {
		err = multierr.Append(err, errors.Errorf("simulation.dt must be positive, got %v", sim.Dt))
	}
	if l := sim.StepLimiter; l.Every.Duration < 0 || l.N < 0 || (l.Every.Duration > 0 && l.N == 0) {
		err = multierr.Append(err, errors.Errorf("simulation.step-limiter is invalid: every=%v n=%d", l.Every, l.N))
	}
	if b := sim.WorldBounds; b != nil && b.Rect().Area() <= 0 {
		err = multierr.Append(err, errors.Errorf("simulation.world-bounds is empty: %v", b.Rect()))
	}

	names := make(map[string]bool)
	for i, s := range c.Shapes {
		if _, e := s.Shape(); e != nil {
			err = multierr.Append(err, errors.Wrapf(e, "shape #%d", i))
		}
		if _, e := s.UUID(); e != nil {
			err = multierr.Append(err, errors.Wrapf(e, "shape #%d", i))
		}
		if s.Name != "" {
			if names[s.Name] {
				err = multierr.Append(err, errors.Errorf("shape #%d: duplicate name %q", i, s.Name))
			}
			names[s.Name] = true
		}
	}
	for i, r := range c.Rays {
		if r.Direction == (geom.Vec2d{}) {
			err = multierr.Append(err, errors.Errorf("ray #%d has zero direction", i))
		}
		if r.MaxLength <= 0 {
			err = multierr.Append(err, errors.Errorf("ray #%d has max-length %v", i, r.MaxLength))
		}
		if r.Ignore != "" && !names[r.Ignore] {
			err = multierr.Append(err, errors.Errorf("ray #%d ignores unknown shape %q", i, r.Ignore))
		}
	}
	return err
}

// Limiter - структура для обмеження частоти дій
// Наприклад: не більше 1 тіку кожні 50 мілісекунд
type Limiter struct {
	// Як часто можна виконувати дію
	// Наприклад "5s" = кожні 5 секунд
	Every Duration `toml:"every"`

	// Скільки разів можна виконати дію за цей період
	N int `toml:"n"`
}

// Limiter перетворює наші налаштування в готовий rate.Limiter
// nil означає, що обмежувати нічого не треба
func (l *Limiter) Limiter() *rate.Limiter {
	if l.Every.Duration == 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(l.Every.Duration), l.N)
}

// Duration - обгортка навколо time.Duration
// Потрібна щоб читати тривалість з конфіг файлу
type Duration struct {
	time.Duration
}

// UnmarshalText перетворює текст з конфігу в time.Duration
// Наприклад "5s" -> 5 секунд
func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

// MarshalText - зворотне перетворення, потрібне генератору сцен
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
