package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"tiletown/internal/app"
	"tiletown/internal/sims/town"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

func (l kvList) Map() map[string]string {
	m := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return m
}

func main() {
	ticks := flag.Int("ticks", 1000, "number of ticks to simulate")
	seed := flag.Int64("seed", 0, "world seed (0 keeps the configured seed)")
	configPath := flag.String("config", "", "YAML file with town parameters")
	showMap := flag.Bool("map", false, "print the final map")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	logger, err := app.NewLogger(os.Stderr, *level)
	if err != nil {
		log.Fatal("bad -log-level", "err", err)
	}

	cfg := town.DefaultConfig()
	if *configPath != "" {
		if cfg, err = town.LoadConfig(*configPath); err != nil {
			logger.Fatal("load config", "err", err)
		}
	}
	cfg = town.Override(cfg, overrides.Map())
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid parameters", "err", err)
	}

	world := town.New(cfg)
	report := world.Generate()
	logger.Info("world generated",
		"seed", cfg.Seed,
		"lake", report.LakeTiles,
		"road_from", fmt.Sprintf("(%d,%d)", report.RoadFrom.X, report.RoadFrom.Y),
		"road_to", fmt.Sprintf("(%d,%d)", report.RoadTo.X, report.RoadTo.Y),
		"road_fallback", report.RoadFallback,
		"houses", report.InitialHouses,
	)

	grown := 0
	for i := 0; i < *ticks; i++ {
		res := world.Step()
		grown += res.NewHouses
		if res.Sampled {
			logger.Debug("sample", "tick", res.Tick, "population", res.Population, "emigration", res.Emigration)
		}
	}

	printParams(world)

	st := world.Status()
	hist := world.History()
	fmt.Printf("\nAfter %s ticks: population %s, emigration %s, houses %s (%s grown)\n",
		humanize.Comma(int64(st.Tick)),
		humanize.Comma(int64(st.Population)),
		humanize.Comma(int64(st.Emigration)),
		humanize.Comma(int64(st.Houses)),
		humanize.Comma(int64(grown)),
	)
	fmt.Printf("History: %d samples kept, compacted %s times\n", hist.Len(), humanize.Comma(int64(hist.Compactions())))

	if *showMap {
		fmt.Println()
		fmt.Print(world.String())
	}
}

func printParams(world *town.World) {
	for _, g := range world.Parameters().Groups {
		fmt.Printf("%s:\n", g.Name)
		for _, p := range g.Params {
			fmt.Printf("  %-24s %s\n", p.Label, p.Value)
		}
	}
}
