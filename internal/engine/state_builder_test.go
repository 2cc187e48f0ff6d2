package engine

import (
	"strings"
	"testing"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/pkg/api"
)

func TestBuildLayout(t *testing.T) {
	market := newMarket(t, marketLayout)

	meta, tiles := BuildLayout(market)
	if meta.Width != 18 || meta.Height != 12 {
		t.Fatalf("Unexpected grid meta %+v", meta)
	}
	if len(tiles) != 18*12 {
		t.Fatalf("Expected %d tiles, got %d", 18*12, len(tiles))
	}

	at := func(x, y int) api.TileView { return tiles[y*meta.Width+x] }

	tests := []struct {
		name    string
		x, y    int
		symbol  string
		terrain string
		wall    bool
		zone    string
	}{
		{"corner wall", 0, 0, "#", "wall", true, ""},
		{"drinks shelf", 4, 2, "p", "shelf", true, ""},
		{"spices aisle", 11, 5, ".", "floor", false, "spices"},
		{"entrance", 15, 10, ".", "floor", false, "entrance"},
		{"checkout", 14, 10, "s", "checkout", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := at(tt.x, tt.y)
			if tile.X != tt.x || tile.Y != tt.y {
				t.Fatalf("Tiles are not row-major: got (%d,%d)", tile.X, tile.Y)
			}
			if tile.Symbol != tt.symbol || tile.Terrain != tt.terrain || tile.IsWall != tt.wall || tile.Zone != tt.zone {
				t.Errorf("Unexpected tile %+v", tile)
			}
			if len(tile.Color) != 7 || tile.Color[0] != '#' {
				t.Errorf("Color must be #RRGGBB, got %q", tile.Color)
			}
		})
	}
}

func TestBuildUpdate(t *testing.T) {
	state := domain.SimulationState{
		Tick:         7,
		ShopperZone:  domain.ZoneEntrance,
		ShopperPos:   domain.Position{X: 15, Y: 8},
		ShopperVisit: 3,
		PursuerPos:   domain.Position{X: 11, Y: 5},
		Collided:     true,
		Respawns:     2,
	}

	msg := BuildUpdate("run-1", state)
	if msg.Type != api.TypeUpdate || msg.RunID != "run-1" || msg.Tick != 7 {
		t.Errorf("Unexpected header %+v", msg)
	}
	if msg.Shopper.Zone != "entrance" || msg.Shopper.Pos.X != 15 || msg.Pursuer.Pos.Y != 5 {
		t.Errorf("Unexpected agents %+v %+v", msg.Shopper, msg.Pursuer)
	}
	if len(msg.Logs) != 1 || msg.Logs[0].Type != "CATCH" {
		t.Errorf("Collision must produce a CATCH log, got %+v", msg.Logs)
	}
	if msg.Grid != nil || msg.Map != nil {
		t.Error("UPDATE must not carry the map")
	}

	state.Collided = false
	if msg := BuildUpdate("run-1", state); len(msg.Logs) != 0 {
		t.Error("Plain tick must have no logs")
	}
}

func TestBuildInit(t *testing.T) {
	market := newMarket(t, marketLayout)

	msg := BuildInit("run-2", market, domain.SimulationState{Collided: true})
	if msg.Type != api.TypeInit || msg.Grid == nil || len(msg.Map) != 18*12 {
		t.Errorf("INIT must carry the map, got type=%s grid=%v tiles=%d", msg.Type, msg.Grid, len(msg.Map))
	}
	if msg.Logs != nil {
		t.Error("INIT must not repeat tick logs")
	}
}

func TestBuildLayout_DecorativeGlyph(t *testing.T) {
	layout := strings.Replace(marketLayout, "##...............#", "##..☺............#", 1)
	market := newMarket(t, layout)

	meta, tiles := BuildLayout(market)
	if meta.Width != 18 || len(tiles) != 18*12 {
		t.Fatalf("Decorative glyph must not change the grid size, got %dx%d", meta.Width, meta.Height)
	}

	tile := tiles[7*meta.Width+4]
	if tile.Symbol != "☺" || tile.Terrain != "floor" || tile.IsWall {
		t.Errorf("Decorative glyph should be a floor tile, got %+v", tile)
	}
	if next := tiles[7*meta.Width+5]; next.Symbol != "." {
		t.Errorf("Cells after the glyph must keep their symbols, got %+v", next)
	}
}

func TestBuildLegend(t *testing.T) {
	legend := BuildLegend()
	if len(legend) != len(domain.KnownSymbols()) {
		t.Fatalf("Expected %d legend entries, got %d", len(domain.KnownSymbols()), len(legend))
	}

	bySymbol := make(map[string]api.LegendEntry, len(legend))
	for _, e := range legend {
		bySymbol[e.Symbol] = e
	}

	tests := []struct {
		symbol   string
		terrain  string
		walkable bool
	}{
		{"#", "wall", false},
		{".", "floor", true},
		{"p", "shelf", false},
		{"s", "checkout", false},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			e, ok := bySymbol[tt.symbol]
			if !ok {
				t.Fatalf("Symbol %q missing from legend", tt.symbol)
			}
			if e.Terrain != tt.terrain || e.Walkable != tt.walkable || e.Name == "" {
				t.Errorf("Unexpected legend entry %+v", e)
			}
		})
	}

	market := newMarket(t, marketLayout)
	if msg := BuildInit("run-3", market, domain.SimulationState{}); len(msg.Legend) != len(legend) {
		t.Errorf("INIT must carry the legend, got %d entries", len(msg.Legend))
	}
	if msg := BuildUpdate("run-3", domain.SimulationState{}); msg.Legend != nil {
		t.Error("UPDATE must not carry the legend")
	}
}
