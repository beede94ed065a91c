package app

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"tiletown/internal/render"
	"tiletown/internal/sims/town"
)

// Config represents the command-line parameters for the application.
type Config struct {
	ConfigPath string
	Seed       int64
	TPS        int
	TickMillis int
	Assets     string
	TileW      int
	TileH      int
	Chunks     int
	LogLevel   string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{TPS: 60, TickMillis: 250, TileW: 32, TileH: 24, Chunks: 4, LogLevel: "info"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file with town parameters")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "world seed (0 keeps the configured seed)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.TickMillis, "tick-ms", c.TickMillis, "milliseconds between simulation ticks")
	fs.StringVar(&c.Assets, "assets", c.Assets, "directory holding grass/water/road/house .bmp tiles (empty draws built-in tiles)")
	fs.IntVar(&c.TileW, "tile-w", c.TileW, "tile width in pixels")
	fs.IntVar(&c.TileH, "tile-h", c.TileH, "tile height in pixels")
	fs.IntVar(&c.Chunks, "chunks", c.Chunks, "render chunks per side")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// TownConfig loads the town parameters, applying the -seed override.
func (c *Config) TownConfig() (town.Config, error) {
	cfg := town.DefaultConfig()
	if c.ConfigPath != "" {
		loaded, err := town.LoadConfig(c.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	return cfg, nil
}

// Tileset loads tile bitmaps from the asset directory, or draws the built-in
// set when none is configured.
func (c *Config) Tileset(seed int64) (*render.Tileset, error) {
	if c.TileW <= 0 || c.TileH <= 0 {
		return nil, fmt.Errorf("invalid tile size %dx%d", c.TileW, c.TileH)
	}
	if c.Assets == "" {
		return render.ProceduralTileset(seed, c.TileW, c.TileH), nil
	}
	return render.LoadTileset(render.BMPLoader{FS: os.DirFS(c.Assets)}, ".", render.DefaultTilePaths)
}

// NewLogger builds the process logger at the configured level.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "tiletown",
		ReportTimestamp: true,
	}), nil
}
