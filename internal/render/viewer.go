// Package render - окно просмотра на ebiten. Это внешний коллаборатор симуляции:
// задает темп тиков, превращает клавишу q в сигнал остановки и рисует снимки.
package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/internal/engine"
	"github.com/mkoeppel/Markov-Market/pkg/logger"
	"github.com/sirupsen/logrus"
)

const hudHeight = 20

// Цвета трех вариантов покупателя (индекс = Avatar)
var avatarColors = []color.RGBA{
	{R: 0x22, G: 0xC5, B: 0x5E, A: 0xFF},
	{R: 0xF9, G: 0x73, B: 0x16, A: 0xFF},
	{R: 0xA8, G: 0x55, B: 0xF7, A: 0xFF},
}

var (
	pursuerColor = color.RGBA{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF}
	caughtColor  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x80}
	hudColor     = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}
)

// Viewer реализует ebiten.Game
type Viewer struct {
	sim   *engine.Simulation
	stop  *engine.StopFlag
	pacer *engine.FramePacer
	scale int

	tiles [][]color.RGBA
	state domain.SimulationState

	log *logrus.Entry
}

// NewViewer. interval - период тика; кадры ebiten идут с частотой ebiten.TPS().
func NewViewer(sim *engine.Simulation, stop *engine.StopFlag, interval time.Duration, scale int) *Viewer {
	grid := sim.Market().Grid

	// Цвета клеток не меняются: считаем один раз
	tiles := make([][]color.RGBA, grid.Height())
	for y, row := range grid.Rows() {
		tiles[y] = make([]color.RGBA, len(row))
		for x, sym := range row {
			tiles[y][x] = domain.TerrainOf(sym).Glyph.RGBA()
		}
	}

	return &Viewer{
		sim:   sim,
		stop:  stop,
		pacer: engine.NewFramePacer(ebiten.TPS(), interval),
		scale: scale,
		tiles: tiles,
		state: sim.Snapshot(),
		log:   logger.Component("viewer"),
	}
}

// Run открывает окно и блокируется до закрытия или остановки симуляции
func (v *Viewer) Run(title string) error {
	w, h := v.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)

	v.log.WithField("frames_per_tick", v.pacer.FramesPerTick()).Info("Viewer started")
	return ebiten.RunGame(v)
}

func (v *Viewer) Update() error {
	// q - внешний сигнал остановки. Симуляция увидит его на ближайшем тике,
	// поэтому тикаем сразу, не дожидаясь темпа.
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		v.stop.Stop()
		return v.tick()
	}

	if !v.pacer.Frame() {
		return nil
	}
	return v.tick()
}

func (v *Viewer) tick() error {
	ok, err := v.sim.Tick()
	if err != nil {
		return err
	}
	if !ok {
		v.log.WithField("tick", v.sim.TickCount()).Info("Simulation stopped, closing window")
		return ebiten.Termination
	}
	v.state = v.sim.Snapshot()
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	s := float32(v.scale)

	// 1. Планировка
	for y, row := range v.tiles {
		for x, c := range row {
			vector.DrawFilledRect(screen, float32(x)*s, float32(y)*s, s, s, c, false)
		}
	}

	// 2. Покупатель: квадрат цвета своего варианта
	shopper := avatarColors[v.state.ShopperAvatar%len(avatarColors)]
	pad := s / 6
	sp := v.state.ShopperPos
	vector.DrawFilledRect(screen, float32(sp.X)*s+pad, float32(sp.Y)*s+pad, s-2*pad, s-2*pad, shopper, true)
	if v.state.Collided {
		vector.DrawFilledRect(screen, float32(sp.X)*s, float32(sp.Y)*s, s, s, caughtColor, false)
	}

	// 3. Призрак: круг
	pp := v.state.PursuerPos
	vector.DrawFilledCircle(screen, float32(pp.X)*s+s/2, float32(pp.Y)*s+s/2, s/2.5, pursuerColor, true)

	// 4. Строка состояния под картой
	top := float32(len(v.tiles)) * s
	w, _ := v.Layout(0, 0)
	vector.DrawFilledRect(screen, 0, top, float32(w), hudHeight, hudColor, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tick %d  zone %-8s visit %d  caught %d  [q] quit",
		v.state.Tick, v.state.ShopperZone, v.state.ShopperVisit, v.state.Respawns), 4, int(top)+2)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	grid := v.sim.Market().Grid
	return grid.Width() * v.scale, grid.Height()*v.scale + hudHeight
}
