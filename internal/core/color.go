package core

import "image/color"

// Color is a palette index shared by every presentation layer.
// Terminal frontends map it to an ANSI 256-color code, windowed frontends
// to an RGBA value.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorSpace
	ColorStar
	ColorShip
	ColorCockpit
	ColorRocket
	ColorFlame
	ColorRock
	ColorRockDark
	ColorText
	ColorAccent
	ColorDanger
	ColorMuted
)

type paletteEntry struct {
	ansi string
	rgba color.RGBA
}

var palette = map[Color]paletteEntry{
	ColorDefault:  {"", color.RGBA{0xff, 0xff, 0xff, 0xff}},
	ColorSpace:    {"17", color.RGBA{0x09, 0x09, 0x2b, 0xff}},
	ColorStar:     {"255", color.RGBA{0xff, 0xff, 0xff, 0xcc}},
	ColorShip:     {"33", color.RGBA{0x34, 0x98, 0xdb, 0xff}},
	ColorCockpit:  {"153", color.RGBA{0xae, 0xd6, 0xf1, 0xff}},
	ColorRocket:   {"250", color.RGBA{0xd0, 0xd3, 0xd4, 0xff}},
	ColorFlame:    {"208", color.RGBA{0xf3, 0x9c, 0x12, 0xff}},
	ColorRock:     {"124", color.RGBA{0xc0, 0x39, 0x2b, 0xff}},
	ColorRockDark: {"88", color.RGBA{0xa0, 0x2c, 0x2c, 0xff}},
	ColorText:     {"15", color.RGBA{0xff, 0xff, 0xff, 0xff}},
	ColorAccent:   {"229", color.RGBA{0xf7, 0xdc, 0x6f, 0xff}},
	ColorDanger:   {"196", color.RGBA{0xe7, 0x4c, 0x3c, 0xff}},
	ColorMuted:    {"245", color.RGBA{0x95, 0xa5, 0xa6, 0xff}},
}

// ANSI returns the 256-color code for terminals, or "" for the default color.
func (c Color) ANSI() string {
	return palette[c].ansi
}

// RGBA returns the color for pixel-based surfaces.
func (c Color) RGBA() color.RGBA {
	if e, ok := palette[c]; ok {
		return e.rgba
	}
	return palette[ColorDefault].rgba
}
