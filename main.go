// Йоу, чат! Це точка входу FlowyGeom.
// Програма читає сцену з TOML файлу, будує з неї світ на BVH дереві
// і вміє: крутити симуляцію, кидати промені, перевіряти точки
// і показувати стан дерева.

// Пакет main - це точка входу нашої програми, звідси все починається!
package main

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"FlowyGeom/game"
)

// cli - стан, спільний для всіх команд
type cli struct {
	isDebug    bool
	configPath string
	logger     *zap.Logger
}

func main() {
	// Ctrl+C зупиняє симуляцію між тіками
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	c := &cli{}
	err := c.rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flowygeom",
		Short:         "2D scenes indexed by a bounding volume hierarchy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// В дебаг режимі логи детальніші, в продакшені - швидші
			if c.isDebug {
				c.logger = unwrap(zap.NewDevelopment())
			} else {
				c.logger = unwrap(zap.NewProduction())
			}
			printBuildInfo(c.logger)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// stderr/stdout не вміють fsync, на це не зважаємо
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVar(&c.isDebug, "debug", false, "Enable debug log output")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "config.toml", "Scene config file")

	root.AddCommand(
		c.simulateCmd(),
		c.raycastCmd(),
		c.queryCmd(),
		c.statsCmd(),
	)
	return root
}

// loadGame читає конфіг і будує з нього гру
func (c *cli) loadGame() (*game.Game, error) {
	config, err := readConfig(c.configPath)
	if err != nil {
		c.logger.Error("Read config fail", zap.String("path", c.configPath), zap.Error(err))
		return nil, err
	}
	g, err := game.NewGame(c.logger, config)
	if err != nil {
		c.logger.Error("Build scene fail", zap.Error(err))
		return nil, err
	}
	return g, nil
}

func (c *cli) simulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run the simulation described by the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGame()
			if err != nil {
				return err
			}
			if _, err := g.Simulate(cmd.Context()); err != nil {
				c.logger.Error("Simulation interrupted", zap.Error(err))
				return err
			}
			logStats(c.logger, g)
			return nil
		},
	}
}

func (c *cli) raycastCmd() *cobra.Command {
	var simulate bool
	cmd := &cobra.Command{
		Use:   "raycast",
		Short: "Cast every [[ray]] of the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGame()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if simulate {
				if _, err := g.Simulate(ctx); err != nil {
					return err
				}
			}
			rays, err := g.CastRays(ctx)
			if err != nil {
				c.logger.Error("Raycast fail", zap.Error(err))
				return err
			}
			for i, r := range rays {
				if r.Body == "" {
					c.logger.Info("Miss", zap.Int("ray", i), zap.Stringer("origin", r.Ray.Origin))
					continue
				}
				c.logger.Info("Hit",
					zap.Int("ray", i),
					zap.String("body", r.Body),
					zap.Float64("distance", r.Hit.Distance),
					zap.Stringer("point", r.Hit.Point),
					zap.Stringer("normal", r.Hit.Normal),
				)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&simulate, "simulate", false, "Run the simulation before casting")
	return cmd
}

func (c *cli) queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "List the bodies under every [[probe]] point",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGame()
			if err != nil {
				return err
			}
			for _, p := range g.Probe() {
				c.logger.Info("Probe",
					zap.Stringer("point", p.Point),
					zap.Strings("bodies", p.Bodies),
				)
			}
			return nil
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the shape of the tree built from the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGame()
			if err != nil {
				return err
			}
			logStats(c.logger, g)
			if err := g.World().Validate(); err != nil {
				c.logger.Error("Tree is broken", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func logStats(logger *zap.Logger, g *game.Game) {
	s := g.Stats()
	logger.Info("Stats",
		zap.Int("bodies", s.Bodies),
		zap.Int("depth", s.Depth),
		zap.Uint("ticks", s.Ticks),
		zap.Stringer("bounds", s.Bounds),
	)
}

// printBuildInfo виводить інформацію про збірку
// Це допомагає знайти проблеми з версіями бібліотек
func printBuildInfo(logger *zap.Logger) {
	binaryInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	settings := make(map[string]string)
	for _, v := range binaryInfo.Settings {
		settings[v.Key] = v.Value
	}
	logger.Debug("Build info", zap.Any("settings", settings))
}

// readConfig читає сцену з файлу
// Якщо знайдемо невідомі налаштування - повернемо помилку
func readConfig(path string) (game.Config, error) {
	var c game.Config
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return game.Config{}, errors.Wrap(err, "decode config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err errUnknownConfig
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return game.Config{}, err
	}

	return c, nil
}

// errUnknownConfig - це список невідомих налаштувань
// Коли знаходимо щось чого не очікували в конфігу
type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// unwrap - хелпер функція яка спрощує обробку помилок
// Якщо є помилка - відразу панікуємо
func unwrap[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
