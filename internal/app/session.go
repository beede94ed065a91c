package app

import (
	"image/color"

	"github.com/charmbracelet/log"

	"tiletown/internal/core"
	"tiletown/internal/render"
	"tiletown/internal/sims/town"
	"tiletown/internal/ui"
)

// Session owns one world and everything derived from it: the chunk cache,
// the overlay stack and the tick throttle. It runs the per-frame control
// flow without touching the window, so it is shared by the GUI and tests.
type Session struct {
	cfg      *Config
	townCfg  town.Config
	tiles    *render.Tileset
	clock    core.Clock
	logger   *log.Logger
	interval *core.Interval

	world    *town.World
	cache    *render.Cache
	overlays *ui.Overlays
	graph    *ui.Graph
	paused   bool
}

// NewSession generates a world and prepares its cache and overlays.
func NewSession(cfg *Config, townCfg town.Config, tiles *render.Tileset, clock core.Clock, logger *log.Logger) (*Session, error) {
	s := &Session{
		cfg:      cfg,
		townCfg:  townCfg,
		tiles:    tiles,
		clock:    clock,
		logger:   logger,
		interval: core.NewInterval(clock, int64(cfg.TickMillis)),
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build() error {
	world := town.New(s.townCfg)
	cache, err := render.NewCache(world.Grid(), s.tiles, s.cfg.Chunks, s.cfg.TileW, s.cfg.TileH)
	if err != nil {
		return err
	}
	world.Grid().SetObserver(cache)
	report := world.Generate()
	s.logger.Info("world generated",
		"seed", s.townCfg.Seed,
		"lake", report.LakeTiles,
		"road", report.RoadTiles,
		"road_fallback", report.RoadFallback,
		"houses", report.InitialHouses,
	)

	s.world = world
	s.cache = cache
	s.overlays = ui.NewOverlays()
	s.pushOverlays()
	return nil
}

var (
	menuBackground = color.RGBA{R: 250, G: 250, B: 245, A: 235}
	menuForeground = color.RGBA{R: 30, G: 30, B: 40, A: 255}
	menuBorder     = color.RGBA{R: 20, G: 20, B: 24, A: 255}
)

func (s *Session) pushOverlays() {
	st := s.world.Status()
	s.overlays.PushMenu(&ui.Menu{
		X: 10, Y: 10,
		Entries: []ui.Text{
			ui.DynamicText("Population: ", &st.Population),
			ui.DynamicText("Emigration: ", &st.Emigration),
			ui.DynamicText("Houses: ", &st.Houses),
			ui.DynamicText("Tick: ", &st.Tick),
		},
		FontSize:   2,
		BorderSize: 2,
		Padding:    2,
		Background: menuBackground,
		Foreground: menuForeground,
		Border:     menuBorder,
	})

	w, h := s.cache.PixelSize()
	s.overlays.PushMenu(&ui.Menu{
		X: w - 150, Y: 10,
		Entries: []ui.Text{
			ui.StaticText("SPACE pause"),
			ui.StaticText("N     step"),
			ui.StaticText("R     reset"),
			ui.StaticText("S     new seed"),
			ui.StaticText("Q     quit"),
		},
		FontSize:   1,
		BorderSize: 1,
		Padding:    3,
		Background: menuBackground,
		Foreground: menuForeground,
		Border:     menuBorder,
	})

	s.graph = &ui.Graph{
		X: 10, Y: h - 130, W: 256, H: 120,
		Samples:    s.world.History(),
		Background: color.RGBA{R: 16, G: 16, B: 20, A: 220},
		Line:       color.RGBA{R: 120, G: 220, B: 140, A: 255},
		Border:     menuBorder,
	}
	s.overlays.PushGraph(s.graph)
}

// World exposes the simulated world.
func (s *Session) World() *town.World { return s.world }

// Cache exposes the chunk cache.
func (s *Session) Cache() *render.Cache { return s.cache }

// Overlays exposes the overlay stack.
func (s *Session) Overlays() *ui.Overlays { return s.overlays }

// Paused reports whether ticking is suspended.
func (s *Session) Paused() bool { return s.paused }

// TogglePause suspends or resumes ticking.
func (s *Session) TogglePause() { s.paused = !s.paused }

// Advance runs one simulation tick when the tick interval has elapsed and
// the session is not paused, or unconditionally when force is set. It
// reports whether a tick ran.
func (s *Session) Advance(force bool) (town.TickResult, bool) {
	due := s.interval.Due()
	if !force && (s.paused || !due) {
		return town.TickResult{}, false
	}
	res := s.world.Step()
	if res.NewHouses > 0 {
		s.logger.Debug("houses grew", "tick", res.Tick, "new", res.NewHouses)
	}
	if res.Sampled {
		s.overlays.ReplaceGraph(s.graph)
		s.logger.Info("sample",
			"tick", res.Tick,
			"population", res.Population,
			"emigration", res.Emigration,
			"houses", s.world.Status().Houses,
		)
	}
	return res, true
}

// Frame recomposites dirty chunks and overlays and returns what to draw.
func (s *Session) Frame() ([]render.Region, []ui.Layer) {
	return s.cache.PrepareFrame(), s.overlays.Prepare()
}

// Reset discards the world and generates a new one from seed.
func (s *Session) Reset(seed int64) error {
	s.townCfg.Seed = seed
	return s.build()
}

// Seed returns the seed of the current world.
func (s *Session) Seed() int64 { return s.townCfg.Seed }
