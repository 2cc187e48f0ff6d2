package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// GridMap - неизменяемая сетка символов планировки магазина.
// Строки хранятся сверху вниз, Y растет вниз.
type GridMap struct {
	width  int
	height int
	cells  [][]Symbol
}

// ParseLayout разбирает прямоугольный блок текста: одна строка текста - одна строка сетки,
// один символ (rune, не байт) - одна клетка. Пустые строки в начале и конце отбрасываются.
func ParseLayout(layout string) (*GridMap, error) {
	text := strings.Trim(strings.ReplaceAll(layout, "\r\n", "\n"), "\n")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: layout is empty", ErrMalformedLayout)
	}

	lines := strings.Split(text, "\n")
	width := utf8.RuneCountInString(lines[0])

	cells := make([][]Symbol, len(lines))
	for y, line := range lines {
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%w: row %d is not valid UTF-8", ErrMalformedLayout, y)
		}
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has length %d, expected %d", ErrMalformedLayout, y, len(runes), width)
		}
		row := make([]Symbol, width)
		for x, r := range runes {
			row[x] = Symbol(r)
		}
		cells[y] = row
	}

	return &GridMap{
		width:  width,
		height: len(lines),
		cells:  cells,
	}, nil
}

// MustParseLayout - для статических планировок в тестах и дефолтах
func MustParseLayout(layout string) *GridMap {
	g, err := ParseLayout(layout)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *GridMap) Width() int  { return g.width }
func (g *GridMap) Height() int { return g.height }

// String возвращает планировку обратно в текстовом виде
func (g *GridMap) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y, row := range g.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, s := range row {
			sb.WriteRune(rune(s))
		}
	}
	return sb.String()
}
