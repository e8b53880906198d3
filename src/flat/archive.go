package flat

import (
	"fmt"

	"github.com/bradbev/flatfont/src/asset"
	"github.com/charmbracelet/log"
)

// FontArchive holds a game's built-in fonts by slot.
type FontArchive struct {
	fonts []Font
}

var _ GameFonts = (*FontArchive)(nil)

func NewFontArchive() *FontArchive {
	return &FontArchive{}
}

// Set installs f at slot, growing the archive as needed.  A nil f clears
// the slot.
func (a *FontArchive) Set(slot int, f Font) {
	if slot < 0 {
		return
	}
	if slot >= len(a.fonts) {
		grown := make([]Font, slot+1)
		copy(grown, a.fonts)
		a.fonts = grown
	}
	a.fonts[slot] = f
}

func (a *FontArchive) Font(slot int) Font {
	if slot < 0 || slot >= len(a.fonts) {
		return nil
	}
	return a.fonts[slot]
}

// Len is one past the highest slot ever set.
func (a *FontArchive) Len() int {
	return len(a.fonts)
}

// LoadFontArchive loads every ShapeFont asset m can find and installs each
// at its Slot.  ShapeFont must already be registered with m.  A nil logger
// uses the default logger.
func LoadFontArchive(m *asset.Manager, palettes PaletteSource, logger *log.Logger) (*FontArchive, error) {
	if logger == nil {
		logger = log.Default()
	}
	paths, err := asset.FilterFilesOfType[ShapeFont](m)
	if err != nil {
		return nil, err
	}
	a := NewFontArchive()
	for _, p := range paths {
		f, err := asset.LoadAs[ShapeFont](m, p)
		if err != nil {
			return nil, err
		}
		if f.Slot < 0 {
			return nil, fmt.Errorf("shape font %s: negative slot %d", p, f.Slot)
		}
		for _, r := range f.DroppedGlyphs() {
			logger.Warn("dropped malformed glyph", "font", f.Name, "path", p, "rune", string(r))
		}
		if a.Font(f.Slot) != nil {
			logger.Warn("shape font slot already taken, replacing", "slot", f.Slot, "path", p)
		}
		f.SetPalettes(palettes)
		a.Set(f.Slot, f)
	}
	return a, nil
}
