package flat

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bradbev/flatfont/src/palette"
	"golang.org/x/exp/slices"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextIndex is the palette index shape font glyphs use for the body of a
// character.  Indices 1 and 2 are used for shading and bullets.
const TextIndex = 3

// Glyph is one character of a ShapeFont.  Pixels holds Width * the font's
// CellHeight palette indices, row major.  Index 0 is transparent.
type Glyph struct {
	Width  int
	Pixels []byte
}

// ShapeFont is a bitmap font whose pixels are palette indices.  ShapeFonts
// are loaded as assets and are the game's built-in fonts.
type ShapeFont struct {
	Name       string
	Slot       int
	CellHeight int
	Spacing    int
	Palette    palette.Index
	Glyphs     map[rune]Glyph

	palettes PaletteSource
	dropped  []rune
}

var _ Font = (*ShapeFont)(nil)

func (f *ShapeFont) DefaultInitialize() {
	f.Spacing = 1
	f.Palette = palette.Game
}

// PostLoad drops glyphs whose pixel data does not match their size.
func (f *ShapeFont) PostLoad() {
	f.dropped = f.dropped[:0]
	for r, g := range f.Glyphs {
		if g.Width < 0 || len(g.Pixels) != g.Width*f.CellHeight {
			f.dropped = append(f.dropped, r)
			delete(f.Glyphs, r)
		}
	}
	slices.Sort(f.dropped)
}

// DroppedGlyphs lists the runes PostLoad removed, ascending.
func (f *ShapeFont) DroppedGlyphs() []rune {
	return f.dropped
}

// SetPalettes sets where the font looks up its colours.
func (f *ShapeFont) SetPalettes(palettes PaletteSource) {
	f.palettes = palettes
}

func (f *ShapeFont) Height() int {
	return f.CellHeight
}

func (f *ShapeFont) glyph(r rune) (Glyph, bool) {
	if g, ok := f.Glyphs[r]; ok {
		return g, true
	}
	g, ok := f.Glyphs['?']
	return g, ok
}

func (f *ShapeFont) runesSize(runes []rune) (width, height int) {
	drawn := 0
	for _, r := range runes {
		g, ok := f.glyph(r)
		if !ok {
			continue
		}
		width += g.Width
		drawn++
	}
	if drawn > 1 {
		width += f.Spacing * (drawn - 1)
	}
	return width, f.CellHeight
}

func (f *ShapeFont) TextSize(text string) (width, height int) {
	return f.runesSize([]rune(text))
}

func (f *ShapeFont) Draw(dst draw.Image, text string, x, y int) {
	f.drawRunes(dst, []rune(text), x, y, f.lookupPalette(f.Palette))
}

func (f *ShapeFont) lookupPalette(idx palette.Index) *palette.Palette {
	if f.palettes == nil {
		return nil
	}
	return f.palettes.Palette(idx)
}

// drawRunes draws runes through pal.  Without a palette every opaque pixel
// is drawn white.
func (f *ShapeFont) drawRunes(dst draw.Image, runes []rune, x, y int, pal *palette.Palette) {
	bounds := dst.Bounds()
	for _, r := range runes {
		g, ok := f.glyph(r)
		if !ok {
			continue
		}
		for row := 0; row < f.CellHeight; row++ {
			for col := 0; col < g.Width; col++ {
				idx := g.Pixels[row*g.Width+col]
				if idx == 0 {
					continue
				}
				p := image.Pt(x+col, y+row)
				if !p.In(bounds) {
					continue
				}
				var c color.Color = color.White
				if pal != nil {
					c = pal.Color(idx)
				}
				dst.Set(p.X, p.Y, c)
			}
		}
		x += g.Width + f.Spacing
	}
}

func (f *ShapeFont) JPShapeSource() (*ShapeFont, bool) {
	return f, true
}

// Release is a no-op, shape fonts belong to the game data.
func (f *ShapeFont) Release() {}

// BakeShapeFont renders runes from face into a ShapeFont.  Covered pixels
// use TextIndex so palette recolouring applies to baked fonts too.
func BakeShapeFont(name string, face font.Face, runes []rune) *ShapeFont {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	f := &ShapeFont{
		Name:       name,
		CellHeight: height,
		Glyphs:     map[rune]Glyph{},
	}
	f.DefaultInitialize()

	dot := fixed.P(0, ascent)
	for _, r := range runes {
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		width := advance.Ceil()
		g := Glyph{Width: width, Pixels: make([]byte, width*height)}
		for py := dr.Min.Y; py < dr.Max.Y; py++ {
			for px := dr.Min.X; px < dr.Max.X; px++ {
				if px < 0 || px >= width || py < 0 || py >= height {
					continue
				}
				_, _, _, a := mask.At(maskp.X+px-dr.Min.X, maskp.Y+py-dr.Min.Y).RGBA()
				if a >= 0x8000 {
					g.Pixels[py*width+px] = TextIndex
				}
			}
		}
		f.Glyphs[r] = g
	}
	return f
}

// PrintableASCII is the rune range baked for fallback fonts.
func PrintableASCII() []rune {
	runes := make([]rune, 0, 0x7f-0x20)
	for r := rune(0x20); r < 0x7f; r++ {
		runes = append(runes, r)
	}
	return runes
}
