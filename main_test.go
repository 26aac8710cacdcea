package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const scene = `
[simulation]
steps = 2
dt = 0.1

[[shape]]
kind = "box"
name = "floor"
min = [0.0, 0.0]
max = [10.0, 1.0]

[[shape]]
kind = "circle"
name = "ball"
center = [5.0, 3.0]
radius = 0.5
velocity = [0.0, -1.0]

[[ray]]
origin = [5.0, 10.0]
direction = [0.0, -1.0]
max-length = 20.0

[[probe]]
point = [1.0, 0.5]
`

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestReadConfig(t *testing.T) {
	c, err := readConfig(writeConfig(t, scene))
	require.NoError(t, err)
	require.Len(t, c.Shapes, 2)
	require.Len(t, c.Rays, 1)

	_, err = readConfig(writeConfig(t, scene+"\n[extra]\nspeed = 3\n"))
	var unknown errUnknownConfig
	require.ErrorAs(t, err, &unknown)
	require.Contains(t, unknown, "extra.speed")

	_, err = readConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestCommands(t *testing.T) {
	path := writeConfig(t, scene)
	for _, args := range [][]string{
		{"simulate", "--config", path},
		{"raycast", "--simulate", "--config", path},
		{"query", "--config", path},
		{"stats", "-c", path, "--debug"},
	} {
		t.Run(args[0], func(t *testing.T) {
			root := (&cli{}).rootCmd()
			root.SetArgs(args)
			require.NoError(t, root.Execute())
		})
	}

	root := (&cli{}).rootCmd()
	root.SetArgs([]string{"stats", "--config", writeConfig(t, "[[shape]]\nkind = \"hexagon\"\n")})
	require.Error(t, root.Execute())
}
