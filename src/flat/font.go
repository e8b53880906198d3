package flat

import (
	"image/draw"

	"github.com/bradbev/flatfont/src/palette"
)

// Font is anything that can measure and draw a line of text.
type Font interface {
	// Height is the line height in pixels.
	Height() int

	// TextSize returns the size of the box Draw would fill for text.
	TextSize(text string) (width, height int)

	// Draw draws text with the top left of its box at x, y.
	Draw(dst draw.Image, text string, x, y int)

	// JPShapeSource reports whether the font is a shape font that can back
	// a Japanese font override, and returns it if so.
	JPShapeSource() (*ShapeFont, bool)

	// Release drops whatever the font owns.  The font must not be used
	// afterwards.
	Release()
}

// GameFonts supplies a game's built-in fonts by slot.  Font returns nil
// when the game has no font at slot.
type GameFonts interface {
	Font(slot int) Font
}

// PaletteSource is the read side of the palette manager.
type PaletteSource interface {
	Palette(idx palette.Index) *palette.Palette
}
