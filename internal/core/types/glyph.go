package types

import (
	"fmt"
	"image/color"
	"unicode"
)

// Glyph - упакованное представление тайла для отрисовки.
// 64 бита (uint64):
//
//	[0:32]  - символ планировки (rune)
//	[32:56] - RGB-цвет заливки (3 байта)
//	[56:64] - не используется
type Glyph uint64

const (
	bitsChar  = 32
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1  // 0xFFFFFFFF
	maskColor = (1 << bitsColor) - 1 // 0xFFFFFF
)

// MakeGlyph собирает Glyph из цвета 0xRRGGBB и символа.
// Старшие биты цвета (альфа) отбрасываются.
func MakeGlyph(colorRGB uint32, char rune) Glyph {
	return Glyph(uint64(colorRGB&maskColor)<<shiftColor | uint64(uint32(char)))
}

// Char - символ планировки
func (g Glyph) Char() rune {
	return rune(uint32(g & maskChar))
}

// Color - цвет в формате 0xRRGGBB
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

// RGBA - непрозрачный цвет для рендерера (ebiten принимает color.Color)
func (g Glyph) RGBA() color.RGBA {
	c := g.Color()
	return color.RGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: 0xFF,
	}
}

// HexColor - цвет строкой "#RRGGBB" (для веб-клиента)
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

// String реализует fmt.Stringer: "Glyph{char='#', color=#2B2B2B}".
// Непечатаемые символы выводятся как \xNN (или \uNNNN).
func (g Glyph) String() string {
	char := g.Char()
	charStr := string(char)
	switch {
	case char < 0x80 && (char < 32 || char == 0x7F):
		charStr = fmt.Sprintf("\\x%02X", char)
	case !unicode.IsPrint(char):
		charStr = fmt.Sprintf("\\u%04X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}
