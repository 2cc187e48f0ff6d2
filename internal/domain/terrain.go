package domain

import (
	"sort"

	"github.com/mkoeppel/Markov-Market/internal/core/types"
)

// Symbol - один символ планировки (одна клетка). Декоративные символы могут быть любыми из Unicode.
type Symbol rune

// TerrainKind - тип покрытия клетки
type TerrainKind uint8

const (
	TerrainFloor TerrainKind = iota
	TerrainWall
	TerrainShelf
	TerrainCheckout
)

func (k TerrainKind) String() string {
	switch k {
	case TerrainWall:
		return "wall"
	case TerrainShelf:
		return "shelf"
	case TerrainCheckout:
		return "checkout"
	default:
		return "floor"
	}
}

// Terrain описывает, как символ планировки ведет себя в симуляции и как рисуется
type Terrain struct {
	Kind     TerrainKind `json:"kind"`
	Name     string      `json:"name"`
	Walkable bool        `json:"walkable"`
	Glyph    types.Glyph `json:"-"`
}

// defaultTerrain - для декоративных и неизвестных символов: обычный пол
var defaultTerrain = Terrain{Kind: TerrainFloor, Name: "floor", Walkable: true, Glyph: types.MakeGlyph(0xD8D2C4, '.')}

// terrainTable - таблица символ -> покрытие. Всё, чего здесь нет, считается полом.
// Стеллажи и кассы непроходимы, как и стены.
var terrainTable = map[Symbol]Terrain{
	'#': {Kind: TerrainWall, Name: "wall", Walkable: false, Glyph: types.MakeGlyph(0x2B2B2B, '#')},
	'.': defaultTerrain,

	// Стеллажи с товарами
	'p': {Kind: TerrainShelf, Name: "drinks shelf", Glyph: types.MakeGlyph(0x3B82F6, 'p')},
	'q': {Kind: TerrainShelf, Name: "drinks shelf", Glyph: types.MakeGlyph(0x2563EB, 'q')},
	'a': {Kind: TerrainShelf, Name: "dairy shelf", Glyph: types.MakeGlyph(0xF5F5F4, 'a')},
	'w': {Kind: TerrainShelf, Name: "dairy shelf", Glyph: types.MakeGlyph(0xE7E5E4, 'w')},
	'd': {Kind: TerrainShelf, Name: "spice shelf", Glyph: types.MakeGlyph(0xB45309, 'd')},
	'b': {Kind: TerrainShelf, Name: "spice shelf", Glyph: types.MakeGlyph(0x92400E, 'b')},
	'x': {Kind: TerrainShelf, Name: "fruit crate", Glyph: types.MakeGlyph(0x16A34A, 'x')},
	'y': {Kind: TerrainShelf, Name: "fruit crate", Glyph: types.MakeGlyph(0xEAB308, 'y')},
	'z': {Kind: TerrainShelf, Name: "fruit crate", Glyph: types.MakeGlyph(0xDC2626, 'z')},
	'm': {Kind: TerrainShelf, Name: "fruit crate", Glyph: types.MakeGlyph(0xEA580C, 'm')},

	's': {Kind: TerrainCheckout, Name: "checkout", Walkable: false, Glyph: types.MakeGlyph(0x6B7280, 's')},
}

// TerrainOf возвращает покрытие для символа (неизвестный символ -> пол)
func TerrainOf(s Symbol) Terrain {
	if t, ok := terrainTable[s]; ok {
		return t
	}
	return defaultTerrain
}

// KnownSymbols - отсортированный список символов таблицы (легенда в /layout)
func KnownSymbols() []Symbol {
	out := make([]Symbol, 0, len(terrainTable))
	for s := range terrainTable {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
