package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.Tick != 500*time.Millisecond || s.Port != 8080 || s.Seed != 0 {
		t.Errorf("Unexpected scalars: tick=%v port=%d seed=%d", s.Tick, s.Port, s.Seed)
	}
	if s.Entry != domain.ZoneEntrance {
		t.Errorf("Expected entrance as entry, got %s", s.Entry)
	}
	if s.PursuerStart != (domain.Position{X: 10, Y: 7}) {
		t.Errorf("Unexpected pursuer start %s", s.PursuerStart)
	}
	if len(s.Zones) != 5 || len(s.Order) != 5 || len(s.Transitions) != 5 {
		t.Fatalf("Expected 5 zones, got zones=%d order=%d rows=%d", len(s.Zones), len(s.Order), len(s.Transitions))
	}

	market, cfg, err := s.Build()
	if err != nil {
		t.Fatalf("Default scenario must build: %v", err)
	}
	if market.Grid.Width() != 18 || market.Grid.Height() != 12 {
		t.Errorf("Expected 18x12 grid, got %dx%d", market.Grid.Width(), market.Grid.Height())
	}
	r, err := market.Catalog.RangeOf(domain.ZoneSpices)
	if err != nil || r != (domain.Rect{X0: 11, Y0: 1, X1: 11, Y1: 9}) {
		t.Errorf("Unexpected spices rect %s (%v)", r, err)
	}
	if cfg.Entry != domain.ZoneEntrance {
		t.Errorf("Engine config lost entry: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Scenario)
	}{
		{"zero tick", func(s *Scenario) { s.Tick = 0 }},
		{"port too big", func(s *Scenario) { s.Port = 70000 }},
		{"zero scale", func(s *Scenario) { s.Scale = 0 }},
		{"no entry", func(s *Scenario) { s.Entry = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Scenario)
		want   error
	}{
		{"ragged layout", func(s *Scenario) { s.Layout = "###\n##\n" }, domain.ErrMalformedLayout},
		{"zone on shelf", func(s *Scenario) {
			s.Zones[1].Cells = domain.Rect{X0: 4, Y0: 2, X1: 4, Y1: 6}
		}, domain.ErrZoneNotWalkable},
		{"empty zone", func(s *Scenario) {
			s.Zones[1].Cells = domain.Rect{X0: 6, Y0: 5, X1: 6, Y1: 4}
		}, domain.ErrEmptyZone},
		{"missing row", func(s *Scenario) { delete(s.Transitions, domain.ZoneFruits) }, domain.ErrInvalidTransitionMatrix},
		{"row sums to 0.9", func(s *Scenario) {
			s.Transitions[domain.ZoneDairy] = []float64{0.1, 0.5, 0.1, 0.1, 0.1}
		}, domain.ErrInvalidTransitionMatrix},
		{"unknown zone in order", func(s *Scenario) {
			s.Order[4] = "bakery"
			s.Transitions["bakery"] = s.Transitions[domain.ZoneSpices]
			delete(s.Transitions, domain.ZoneSpices)
		}, domain.ErrUnknownZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			if _, _, err := s.Build(); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")

	content := `
name: tiny
tick: 50ms
layout: |
  #####
  #...#
  #...#
  #####
entry: door
pursuer_start: {x: 3, y: 2}
zones:
  - name: door
    cells: {x0: 1, y0: 1, x1: 1, y1: 2}
  - name: shelf
    cells: {x0: 3, y0: 1, x1: 3, y1: 1}
order: [door, shelf]
transitions:
  door: [0.5, 0.5]
  shelf: [1.0, 0.0]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if s.Name != "tiny" || s.Tick != 50*time.Millisecond {
		t.Errorf("Unexpected scenario %s tick=%v", s.Name, s.Tick)
	}
	// Не указанное в файле берется из встроенного сценария
	if s.Port != 8080 {
		t.Errorf("Port must fall back to default, got %d", s.Port)
	}
	if len(s.Transitions) != 2 {
		t.Errorf("Transitions must come from the file only, got %v", s.Transitions)
	}

	market, cfg, err := s.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if market.Grid.Width() != 5 || cfg.Entry != "door" {
		t.Errorf("Unexpected market: width=%d entry=%s", market.Grid.Width(), cfg.Entry)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MARKET_SEED", "42")
	t.Setenv("MARKET_PORT", "9090")
	t.Setenv("MARKET_TICK", "1s")

	s, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Seed != 42 || s.Port != 9090 || s.Tick != time.Second {
		t.Errorf("Env overrides not applied: seed=%d port=%d tick=%v", s.Seed, s.Port, s.Tick)
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("MARKET_TICK", "soon")

	if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestSeed_YAML(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Seed
	}{
		{"integer", "seed: 42", 42},
		{"zero means time-based", "seed: 0", 0},
		{"negative", "seed: -7", -7},
		{"quoted number", `seed: "42"`, 42},
		{"phrase", "seed: supermarket", Seed(utils.StringToSeed("supermarket"))},
		{"quoted phrase", `seed: "tuesday rush"`, Seed(utils.StringToSeed("tuesday rush"))},
		{"null", "seed: ~", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				Seed Seed `yaml:"seed"`
			}
			if err := yaml.Unmarshal([]byte(tt.doc), &got); err != nil {
				t.Fatalf("Unmarshal(%q) error = %v", tt.doc, err)
			}
			if got.Seed != tt.want {
				t.Errorf("Unmarshal(%q) seed = %d, want %d", tt.doc, got.Seed, tt.want)
			}
		})
	}

	var bad struct {
		Seed Seed `yaml:"seed"`
	}
	if err := yaml.Unmarshal([]byte("seed: [1, 2]"), &bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for a list seed, got %v", err)
	}
}

func TestLoadFromFile_PhraseSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrase.yaml")
	if err := os.WriteFile(path, []byte("name: phrase\nseed: supermarket\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	_, cfg, err := s.Build()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != utils.StringToSeed("supermarket") || cfg.Seed == 0 {
		t.Errorf("Phrase seed must hash to a stable non-zero seed, got %d", cfg.Seed)
	}
}

func TestLoad_EnvPhraseSeed(t *testing.T) {
	t.Setenv("MARKET_SEED", "friday")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Seed != Seed(utils.StringToSeed("friday")) {
		t.Errorf("MARKET_SEED phrase not hashed: %d", s.Seed)
	}
}
