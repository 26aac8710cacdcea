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

package game

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"FlowyGeom/geom"
	"FlowyGeom/world"
)

type Game struct {
	log *zap.Logger

	config Config
	world  *world.World
	byName map[string]*world.Body
}

// NewGame будує світ з фігур конфігу
func NewGame(log *zap.Logger, config Config) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	var wc world.Config
	if b := config.Simulation.WorldBounds; b != nil {
		wc.Bounds = b.Rect()
	}
	wc.CheckInvariants = config.Simulation.CheckInvariants

	g := &Game{
		log:    log.Named("game"),
		config: config,
		world:  world.New(log.Named("world"), wc),
		byName: make(map[string]*world.Body),
	}
	for i, sc := range config.Shapes {
		// Validate вже перевірив фігуру і ID
		shape, _ := sc.Shape()
		id, _ := sc.UUID()
		body := &world.Body{ID: id, Name: sc.Name, Shape: shape, Velocity: sc.Velocity}
		if err := g.world.AddBody(body); err != nil {
			return nil, errors.Wrapf(err, "shape #%d", i)
		}
		if sc.Name != "" {
			g.byName[sc.Name] = body
		}
	}
	g.log.Info("Scene loaded",
		zap.Int("shapes", len(config.Shapes)),
		zap.Int("rays", len(config.Rays)),
		zap.Int("probes", len(config.Probes)),
	)
	return g, nil
}

// World дає доступ до світу, наприклад для власних запитів
func (g *Game) World() *world.World { return g.world }

// Simulate крутить світ стільки тіків, скільки сказано в конфігу
func (g *Game) Simulate(ctx context.Context) (world.RunReport, error) {
	sim := g.config.Simulation
	start := time.Now()
	report, err := g.world.Run(ctx, sim.Steps, sim.Dt, sim.StepLimiter.Limiter())
	if err != nil {
		return report, errors.Wrap(err, "simulate")
	}
	g.log.Info("Simulation finished",
		zap.Int("ticks", report.Ticks),
		zap.Int("contacts", report.Contacts),
		zap.Int("max contacts", report.MaxContacts),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// RayOutcome - результат променя з конфігу
type RayOutcome struct {
	Ray  RayConfig
	Body string // ім'я або ID тіла, порожнє при промаху
	Hit  geom.Hit
}

// CastRays кидає всі промені з конфігу
func (g *Game) CastRays(ctx context.Context) ([]RayOutcome, error) {
	probes := make([]world.RayProbe, len(g.config.Rays))
	for i, r := range g.config.Rays {
		probes[i] = world.RayProbe{
			Ray:       geom.NewRay(r.Origin, r.Direction),
			MaxLength: r.MaxLength,
			Ignore:    g.byName[r.Ignore],
		}
	}
	results, err := g.world.CastRays(ctx, probes)
	if err != nil {
		return nil, errors.Wrap(err, "cast rays")
	}

	outcomes := make([]RayOutcome, len(results))
	for i, res := range results {
		outcomes[i] = RayOutcome{Ray: g.config.Rays[i], Hit: res.Hit}
		if res.Body == nil {
			g.log.Debug("Ray missed", zap.Int("ray", i))
			continue
		}
		outcomes[i].Body = res.Body.String()
		g.log.Debug("Ray hit",
			zap.Int("ray", i),
			zap.String("body", outcomes[i].Body),
			zap.Float64("distance", res.Distance),
		)
	}
	return outcomes, nil
}

// ProbeOutcome - всі тіла в точці
type ProbeOutcome struct {
	Point  geom.Vec2d
	Bodies []string
}

// Probe перевіряє всі точки з конфігу
func (g *Game) Probe() []ProbeOutcome {
	outcomes := make([]ProbeOutcome, len(g.config.Probes))
	for i, p := range g.config.Probes {
		outcomes[i].Point = p.Point
		for _, b := range g.world.BodiesAt(p.Point) {
			outcomes[i].Bodies = append(outcomes[i].Bodies, b.String())
		}
	}
	return outcomes
}

// Stats повертає стан індексу світу
func (g *Game) Stats() world.Stats {
	return g.world.Stats()
}
