package domain

import "fmt"

// InBounds проверяет попадание клетки в [0,width) x [0,height)
func (g *GridMap) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// SymbolAt возвращает исходный символ клетки (для поиска спрайта рендерером)
func (g *GridMap) SymbolAt(x, y int) (Symbol, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.cells[y][x], nil
}

// TerrainAt возвращает покрытие клетки
func (g *GridMap) TerrainAt(x, y int) (Terrain, error) {
	s, err := g.SymbolAt(x, y)
	if err != nil {
		return Terrain{}, err
	}
	return TerrainOf(s), nil
}

// IsWalkable - false только для стен и прочих преград.
// За пределами сетки возвращает ErrOutOfBounds.
func (g *GridMap) IsWalkable(x, y int) (bool, error) {
	t, err := g.TerrainAt(x, y)
	if err != nil {
		return false, err
	}
	return t.Walkable, nil
}

// Rows - копия символов построчно (рендерер не должен менять сетку)
func (g *GridMap) Rows() [][]Symbol {
	out := make([][]Symbol, g.height)
	for y, row := range g.cells {
		out[y] = append([]Symbol(nil), row...)
	}
	return out
}
