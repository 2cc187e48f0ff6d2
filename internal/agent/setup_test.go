package agent

import (
	"fmt"
	"testing"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/internal/systems"
)

// Маленький зал 8x5:
// ########
// #..#...#
// #..#.s.#
// #......#
// ########
const hallLayout = `
########
#..#...#
#..#.s.#
#......#
########
`

const (
	zoneLeft  domain.ZoneName = "left"
	zoneRight domain.ZoneName = "right"
	zoneDoor  domain.ZoneName = "door"
)

// walkableCount - число проходимых клеток сетки
func walkableCount(grid *domain.GridMap) int {
	n := 0
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if ok, _ := grid.IsWalkable(x, y); ok {
				n++
			}
		}
	}
	return n
}

type fixture struct {
	grid    *domain.GridMap
	catalog *domain.ZoneCatalog
	model   *systems.MarkovModel
}

func newFixture(t *testing.T, rows [][]float64) fixture {
	t.Helper()

	grid := domain.MustParseLayout(hallLayout)
	catalog, err := domain.NewZoneCatalog(grid, []domain.Zone{
		{Name: zoneLeft, Cells: domain.Rect{X0: 1, Y0: 1, X1: 2, Y1: 2}},
		{Name: zoneRight, Cells: domain.Rect{X0: 6, Y0: 1, X1: 6, Y1: 3}},
		{Name: zoneDoor, Cells: domain.Rect{X0: 4, Y0: 3, X1: 4, Y1: 3}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	model, err := systems.NewMarkovModel(catalog, []domain.ZoneName{zoneLeft, zoneRight, zoneDoor}, rows)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	return fixture{grid: grid, catalog: catalog, model: model}
}

var mixingRows = [][]float64{
	{0.6, 0.3, 0.1},
	{0.2, 0.7, 0.1},
	{0.5, 0.5, 0.0},
}

// script - источник случайности с заранее записанными значениями.
// calls - журнал обращений в порядке вызова.
type script struct {
	floats []float64
	ints   []int
	calls  []string
}

func (s *script) Float64() float64 {
	s.calls = append(s.calls, "Float64")
	if len(s.floats) == 0 {
		panic("script: no floats left")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *script) Intn(n int) int {
	s.calls = append(s.calls, fmt.Sprintf("Intn(%d)", n))
	if len(s.ints) == 0 {
		panic("script: no ints left")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		panic("script: int out of range")
	}
	return v
}
