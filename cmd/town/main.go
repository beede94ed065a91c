//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"tiletown/internal/app"
	"tiletown/internal/core"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := app.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal("bad -log-level", "err", err)
	}

	townCfg, err := cfg.TownConfig()
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	tiles, err := cfg.Tileset(townCfg.Seed)
	if err != nil {
		logger.Fatal("load tileset", "assets", cfg.Assets, "err", err)
	}

	session, err := app.NewSession(cfg, townCfg, tiles, core.NewSystemClock(), logger)
	if err != nil {
		logger.Fatal("start session", "err", err)
	}
	game := app.New(session, logger)
	w, h := session.Cache().PixelSize()

	ebiten.SetWindowTitle(fmt.Sprintf("tiletown — seed %d", townCfg.Seed))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("run", "err", err)
	}
}
