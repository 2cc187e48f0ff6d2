package domain

import "fmt"

// Position - координата клетки сетки (X - столбец, Y - строка)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift возвращает новую позицию со смещением, не меняя текущую
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// ChebyshevTo возвращает число шагов "королем" до другой клетки
func (p Position) ChebyshevTo(other Position) int {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect - прямоугольник клеток, обе границы ВКЛЮЧИТЕЛЬНО.
// Пустым считается прямоугольник с X1 < X0 или Y1 < Y0.
type Rect struct {
	X0 int `json:"x0" yaml:"x0"`
	Y0 int `json:"y0" yaml:"y0"`
	X1 int `json:"x1" yaml:"x1"`
	Y1 int `json:"y1" yaml:"y1"`
}

// Width - количество столбцов (0 для пустого)
func (r Rect) Width() int {
	if r.X1 < r.X0 {
		return 0
	}
	return r.X1 - r.X0 + 1
}

// Height - количество строк (0 для пустого)
func (r Rect) Height() int {
	if r.Y1 < r.Y0 {
		return 0
	}
	return r.Y1 - r.Y0 + 1
}

// Area - число клеток
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

func (r Rect) IsEmpty() bool {
	return r.Area() == 0
}

// Contains проверяет, что клетка лежит внутри прямоугольника
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
