// Package palette holds the engine's 256 colour palettes.  Palettes are
// addressed by Index, can be duplicated into new slots and edited in place
// through their raw RGB bytes.  Callers that edit a palette report it with
// Updated so cached colours and listeners catch up.
package palette

import (
	"fmt"
	"image/color"
)

// Index names a palette slot.
type Index int

const (
	Game Index = iota
	Movie
	Cred
	Misc
	Misc2

	// JPFontStart is the first of the palettes used to colour Japanese
	// shape fonts.  The palette for font slot n is JPFontStart + n.
	JPFontStart Index = 16
)

func (i Index) String() string {
	switch i {
	case Game:
		return "game"
	case Movie:
		return "movie"
	case Cred:
		return "cred"
	case Misc:
		return "misc"
	case Misc2:
		return "misc2"
	}
	if i >= JPFontStart {
		return fmt.Sprintf("jpfont%d", i-JPFontStart)
	}
	return fmt.Sprintf("palette%d", int(i))
}

// Size is the length in bytes of a raw palette.
const Size = 256 * 3

// Palette is 256 RGB triples.  Entry 0 is treated as transparent by the
// font renderers.
type Palette struct {
	Raw [Size]byte

	colors color.Palette
}

// Color returns entry i as an opaque colour.
func (p *Palette) Color(i uint8) color.RGBA {
	o := int(i) * 3
	return color.RGBA{R: p.Raw[o], G: p.Raw[o+1], B: p.Raw[o+2], A: 0xff}
}

// ColorPalette returns the palette as a color.Palette.  The result is
// cached until the palette is reported with Manager.Updated.
func (p *Palette) ColorPalette() color.Palette {
	if p.colors == nil {
		p.colors = make(color.Palette, 256)
		for i := range p.colors {
			p.colors[i] = p.Color(uint8(i))
		}
	}
	return p.colors
}

func (p *Palette) invalidate() {
	p.colors = nil
}

// Expand6Bit converts VGA DAC values (0..63) to 8 bit.
func Expand6Bit(raw []byte) []byte {
	out := make([]byte, len(raw))
	for i, v := range raw {
		v &= 0x3f
		out[i] = v<<2 | v>>4
	}
	return out
}
