package engine

import (
	"fmt"
	"time"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/pkg/api"
)

// BuildLayout переводит планировку в DTO для клиента: размеры и все клетки построчно.
func BuildLayout(market Market) (*api.GridMeta, []api.TileView) {
	grid := market.Grid
	meta := &api.GridMeta{Width: grid.Width(), Height: grid.Height()}

	tiles := make([]api.TileView, 0, grid.Width()*grid.Height())
	for y, row := range grid.Rows() {
		for x, sym := range row {
			terrain := domain.TerrainOf(sym)
			tView := api.TileView{
				X: x, Y: y,
				Symbol:  string(rune(sym)),
				Color:   terrain.Glyph.HexColor(),
				Terrain: terrain.Kind.String(),
				IsWall:  !terrain.Walkable,
			}
			if zone, ok := market.Catalog.ZoneAt(domain.Position{X: x, Y: y}); ok {
				tView.Zone = string(zone)
			}
			tiles = append(tiles, tView)
		}
	}
	return meta, tiles
}

// BuildLegend - известные символы планировки в порядке KnownSymbols
func BuildLegend() []api.LegendEntry {
	symbols := domain.KnownSymbols()
	legend := make([]api.LegendEntry, 0, len(symbols))
	for _, sym := range symbols {
		terrain := domain.TerrainOf(sym)
		legend = append(legend, api.LegendEntry{
			Symbol:   string(rune(sym)),
			Name:     terrain.Name,
			Terrain:  terrain.Kind.String(),
			Color:    terrain.Glyph.HexColor(),
			Walkable: terrain.Walkable,
		})
	}
	return legend
}

// BuildUpdate - сообщение UPDATE для одного тика
func BuildUpdate(runID string, state domain.SimulationState) api.ServerResponse {
	resp := api.ServerResponse{
		Type:  api.TypeUpdate,
		RunID: runID,
		Tick:  state.Tick,
		Shopper: &api.AgentView{
			Pos:    api.PositionView{X: state.ShopperPos.X, Y: state.ShopperPos.Y},
			Zone:   string(state.ShopperZone),
			Avatar: state.ShopperAvatar,
			Visit:  state.ShopperVisit,
		},
		Pursuer: &api.AgentView{
			Pos: api.PositionView{X: state.PursuerPos.X, Y: state.PursuerPos.Y},
		},
		Collided: state.Collided,
		Respawns: state.Respawns,
	}

	if state.Collided {
		now := time.Now()
		resp.Logs = []api.LogEntry{{
			ID:        fmt.Sprintf("%s_%d", runID, state.Tick),
			Text:      fmt.Sprintf("Shopper caught at %s, visit %d starts at the entrance", state.PursuerPos, state.ShopperVisit),
			Type:      "CATCH",
			Timestamp: now.UnixMilli(),
		}}
	}
	return resp
}

// BuildInit - полное сообщение для нового клиента: карта + последнее состояние
func BuildInit(runID string, market Market, state domain.SimulationState) api.ServerResponse {
	resp := BuildUpdate(runID, state)
	resp.Type = api.TypeInit
	resp.Logs = nil
	resp.Grid, resp.Map = BuildLayout(market)
	resp.Legend = BuildLegend()
	return resp
}
