package flat

import (
	"image/draw"

	"github.com/bradbev/flatfont/src/palette"
)

// JPFont draws Shift-JIS text with a game shape font, coloured through the
// palette reserved for its slot.
type JPFont struct {
	shapes   *ShapeFont
	slot     int
	palettes PaletteSource
}

var _ Font = (*JPFont)(nil)

func NewJPFont(shapes *ShapeFont, slot int, palettes PaletteSource) *JPFont {
	return &JPFont{
		shapes:   shapes,
		slot:     slot,
		palettes: palettes,
	}
}

// PaletteIndex is the palette the font draws with.
func (f *JPFont) PaletteIndex() palette.Index {
	return palette.JPFontStart + palette.Index(f.slot)
}

func (f *JPFont) Slot() int {
	return f.slot
}

func (f *JPFont) Height() int {
	return f.shapes.Height()
}

func (f *JPFont) TextSize(text string) (width, height int) {
	return f.shapes.runesSize([]rune(decodeSJIS(text)))
}

func (f *JPFont) Draw(dst draw.Image, text string, x, y int) {
	var pal *palette.Palette
	if f.palettes != nil {
		pal = f.palettes.Palette(f.PaletteIndex())
	}
	f.shapes.drawRunes(dst, []rune(decodeSJIS(text)), x, y, pal)
}

func (f *JPFont) JPShapeSource() (*ShapeFont, bool) {
	return nil, false
}

// Release forgets the shape font, which stays owned by the game data.
func (f *JPFont) Release() {
	f.shapes = nil
	f.palettes = nil
}
