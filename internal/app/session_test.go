package app

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"tiletown/internal/render"
	"tiletown/internal/sims/town"
)

type fakeClock struct{ now int64 }

func (c *fakeClock) Millis() int64 { return c.now }

func newTestSession(t *testing.T, clock *fakeClock) *Session {
	t.Helper()
	cfg := NewConfig()
	cfg.TileW, cfg.TileH = 4, 3
	s, err := NewSession(cfg, town.DefaultConfig(), render.ProceduralTileset(1, 4, 3), clock, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSessionFirstFrameDrawsEverything(t *testing.T) {
	s := newTestSession(t, &fakeClock{})

	regions, layers := s.Frame()
	if len(regions) != 16 {
		t.Fatalf("expected 16 chunk regions, got %d", len(regions))
	}
	for _, r := range regions {
		if !r.Updated {
			t.Fatalf("chunk %d not composited on first frame", r.Index)
		}
	}
	if len(layers) != 3 {
		t.Fatalf("expected graph and two menus, got %d layers", len(layers))
	}
	if s.World().Population() != 2*s.World().Status().Houses {
		t.Fatalf("initial houses should hold two adults each")
	}
}

func TestSessionAdvanceFollowsInterval(t *testing.T) {
	clock := &fakeClock{}
	s := newTestSession(t, clock)

	if _, ran := s.Advance(false); ran {
		t.Fatalf("first poll should only prime the interval")
	}
	clock.now = 100
	if _, ran := s.Advance(false); ran {
		t.Fatalf("tick ran before the period elapsed")
	}
	clock.now = 250
	res, ran := s.Advance(false)
	if !ran || res.Tick != 1 {
		t.Fatalf("expected tick 1, got ran=%v tick=%d", ran, res.Tick)
	}

	s.TogglePause()
	clock.now = 1000
	if _, ran := s.Advance(false); ran {
		t.Fatalf("paused session ticked")
	}
	res, ran = s.Advance(true)
	if !ran || res.Tick != 2 {
		t.Fatalf("forced step should run while paused, got ran=%v tick=%d", ran, res.Tick)
	}
}

func TestSessionRefreshesGraphOnSample(t *testing.T) {
	s := newTestSession(t, &fakeClock{})
	s.Frame()

	freq := s.World().Config().Params.SampleFrequency
	for i := 1; i < freq; i++ {
		if res, _ := s.Advance(true); res.Sampled {
			t.Fatalf("tick %d sampled early", res.Tick)
		}
		if _, layers := s.Frame(); layers[0].Updated {
			t.Fatalf("graph recompiled without a new sample at tick %d", i)
		}
	}
	res, _ := s.Advance(true)
	if !res.Sampled {
		t.Fatalf("tick %d should sample", res.Tick)
	}
	if _, layers := s.Frame(); !layers[0].Updated {
		t.Fatalf("graph not recompiled after sample")
	}
	if s.World().History().Len() != 1 {
		t.Fatalf("expected one sample, got %d", s.World().History().Len())
	}
}

func TestSessionReset(t *testing.T) {
	s := newTestSession(t, &fakeClock{})
	s.Frame()
	s.Advance(true)

	if err := s.Reset(99); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.Seed() != 99 || s.World().Tick() != 0 {
		t.Fatalf("reset kept old state: seed %d tick %d", s.Seed(), s.World().Tick())
	}
	regions, _ := s.Frame()
	for _, r := range regions {
		if !r.Updated {
			t.Fatalf("chunk %d not composited after reset", r.Index)
		}
	}
}

func TestConfigFlagsAndTownConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "town.yaml")
	if err := os.WriteFile(path, []byte("seed: 5\nparams:\n  birth_chance: 0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig()
	fs := flag.NewFlagSet("town", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-config", path, "-tick-ms", "100", "-chunks", "8"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.TickMillis != 100 || cfg.Chunks != 8 {
		t.Fatalf("flags not bound: %+v", cfg)
	}

	tc, err := cfg.TownConfig()
	if err != nil {
		t.Fatalf("TownConfig: %v", err)
	}
	if tc.Seed != 5 || tc.Params.BirthChance != 0.2 {
		t.Fatalf("file values not applied: %+v", tc)
	}

	cfg.Seed = 77
	tc, err = cfg.TownConfig()
	if err != nil {
		t.Fatalf("TownConfig: %v", err)
	}
	if tc.Seed != 77 {
		t.Fatalf("-seed should override the file, got %d", tc.Seed)
	}
}

func TestConfigTilesetFromAssets(t *testing.T) {
	cfg := NewConfig()
	cfg.Assets = t.TempDir()
	if _, err := cfg.Tileset(1); err == nil {
		t.Fatalf("expected error for empty asset directory")
	}
	cfg.Assets = ""
	ts, err := cfg.Tileset(1)
	if err != nil || ts == nil {
		t.Fatalf("built-in tileset: %v", err)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := NewLogger(io.Discard, "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := NewLogger(io.Discard, "debug"); err != nil {
		t.Fatalf("debug level: %v", err)
	}
}
