// Генератор випадкових сцен для FlowyGeom.
// Запуск: go run ./tools -n 500 -o config.toml
package main

import (
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"FlowyGeom/game"
	"FlowyGeom/geom"
)

type options struct {
	shapes, rays, probes int
	size                 float64
	seed                 int64
	out                  string
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:   "gen-scene",
		Short: "Write a random scene config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeScene(opts.out, randomScene(opts))
		},
	}
	cmd.Flags().IntVarP(&opts.shapes, "shapes", "n", 100, "number of shapes")
	cmd.Flags().IntVar(&opts.rays, "rays", 10, "number of rays")
	cmd.Flags().IntVar(&opts.probes, "probes", 10, "number of probe points")
	cmd.Flags().Float64Var(&opts.size, "size", 1000, "side of the square world")
	cmd.Flags().Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "config.toml", "output file")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func randomScene(opts options) game.Config {
	r := rand.New(rand.NewSource(opts.seed))
	point := func() geom.Vec2d { return geom.Vec2d{r.Float64() * opts.size, r.Float64() * opts.size} }
	maxSpeed := opts.size / 20

	c := game.Config{
		Simulation: game.Simulation{
			Steps: 200,
			Dt:    0.05,
			StepLimiter: game.Limiter{
				Every: game.Duration{Duration: time.Second / 60},
				N:     1,
			},
			WorldBounds: &game.Bounds{Max: geom.Vec2d{opts.size, opts.size}},
		},
	}

	for i := 0; i < opts.shapes; i++ {
		s := game.ShapeConfig{Name: "shape-" + strconv.Itoa(i)}
		if r.Intn(2) == 0 {
			s.Kind = game.KindBox
			s.Min = point()
			s.Max = s.Min.Add(geom.Vec2d{1 + r.Float64()*opts.size/50, 1 + r.Float64()*opts.size/50})
		} else {
			s.Kind = game.KindCircle
			s.Center = point()
			s.Radius = 0.5 + r.Float64()*opts.size/100
		}
		// приблизно третина тіл нерухомі
		if r.Intn(3) != 0 {
			s.Velocity = geom.Vec2d{(r.Float64()*2 - 1) * maxSpeed, (r.Float64()*2 - 1) * maxSpeed}
		}
		c.Shapes = append(c.Shapes, s)
	}

	for i := 0; i < opts.rays; i++ {
		angle := r.Float64() * 2 * math.Pi
		c.Rays = append(c.Rays, game.RayConfig{
			Origin:    point(),
			Direction: geom.Vec2d{math.Cos(angle), math.Sin(angle)},
			MaxLength: opts.size,
		})
	}

	for i := 0; i < opts.probes; i++ {
		c.Probes = append(c.Probes, game.ProbeConfig{Point: point()})
	}
	return c
}

func writeScene(path string, c game.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
