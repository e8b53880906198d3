// Package fontman resolves a game's logical font slots to fonts.  A slot
// can be overridden with a TrueType font or a recoloured Japanese shape
// font; otherwise the game's built-in font for the slot is used.
// TrueType rasterizations are expensive and are cached by file, size and
// render mode for the life of the Manager.
//
// A Manager is not safe for concurrent use.  Fonts it returns stay valid
// until the slot they came from is replaced, reset or the Manager closed.
package fontman

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bradbev/flatfont/src/config"
	"github.com/bradbev/flatfont/src/flat"
	"github.com/bradbev/flatfont/src/palette"
	"github.com/charmbracelet/log"
)

// Files opens font files by path.
type Files interface {
	Open(path string) (io.ReadCloser, error)
}

// Rasterizer turns font file data into a rasterized font.
type Rasterizer func(r io.Reader, pointSize int, mode flat.RenderMode) (*flat.RasterFont, error)

// Palettes is the part of the palette manager Japanese overrides need.
type Palettes interface {
	Duplicate(src, dst palette.Index) error
	Palette(idx palette.Index) *palette.Palette
	Updated(idx palette.Index)
}

// Preferences are the process-wide settings the manager reads.
type Preferences interface {
	Bool(key string) bool
	RegisterDefault(key string, value bool)
}

type rasterKey struct {
	path      string
	pointSize int
	mode      flat.RenderMode
}

type Manager struct {
	games     flat.GameFonts
	files     Files
	palettes  Palettes
	prefs     Preferences
	rasterize Rasterizer

	overrides slotTable[flat.Font]
	ttFonts   slotTable[*flat.TTFont]

	rasterFonts map[rasterKey]*flat.RasterFont

	log *log.Logger
}

type Option func(*Manager)

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// WithRasterizer replaces flat.LoadRasterFont.
func WithRasterizer(r Rasterizer) Option {
	return func(m *Manager) {
		m.rasterize = r
	}
}

// New creates a Manager.  games supplies the built-in fonts and may be nil
// for a game without any.  New registers the high resolution font default
// with prefs.
func New(games flat.GameFonts, files Files, palettes Palettes, prefs Preferences, opts ...Option) *Manager {
	if prefs == nil {
		prefs = config.NewStore()
	}
	m := &Manager{
		games:       games,
		files:       files,
		palettes:    palettes,
		prefs:       prefs,
		rasterize:   flat.LoadRasterFont,
		rasterFonts: map[rasterKey]*flat.RasterFont{},
		log: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "fonts",
		}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.prefs.RegisterDefault(config.KeyFontHighRes, true)
	m.log.Debug("created font manager")
	return m
}

// GameFont returns the font for slot.  An installed override is returned
// when allowOverride is set, otherwise the game's own font.  The result is
// nil when neither exists.
func (m *Manager) GameFont(slot int, allowOverride bool) flat.Font {
	if allowOverride {
		if f, ok := m.overrides.get(slot); ok {
			return f
		}
	}
	if m.games == nil {
		return nil
	}
	return m.games.Font(slot)
}

// TTFont returns the TrueType font loaded at slot with LoadTTFont, or nil.
func (m *Manager) TTFont(slot int) *flat.TTFont {
	f, _ := m.ttFonts.get(slot)
	return f
}

// RasterFont returns the rasterization of the font file at path.  Repeated
// calls with the same arguments return the same instance.
func (m *Manager) RasterFont(path string, pointSize int, antialiasing bool) (*flat.RasterFont, error) {
	key := rasterKey{path: path, pointSize: pointSize, mode: flat.RenderModeFor(antialiasing)}
	if f, ok := m.rasterFonts[key]; ok {
		return f, nil
	}

	if m.files == nil {
		m.log.Warn("failed to open TTF, no file system", "path", path)
		return nil, fmt.Errorf("%w: %s", ErrFontNotFound, path)
	}
	r, err := m.files.Open(path)
	if err != nil {
		m.log.Warn("failed to open TTF", "path", path, "err", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrFontNotFound, path, err)
	}
	defer r.Close()

	f, err := m.rasterize(r, pointSize, key.mode)
	if err != nil {
		m.log.Warn("failed to load TTF", "path", path, "size", pointSize, "err", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrBadFont, path, err)
	}
	m.rasterFonts[key] = f
	m.log.Debug("opened TTF", "path", path, "size", pointSize, "mode", key.mode)
	return f, nil
}

// CachedRasterFonts is the number of rasterizations held.
func (m *Manager) CachedRasterFonts() int {
	return len(m.rasterFonts)
}

// SetOverride installs f as the override for slot, releasing the previous
// override.  The manager owns f from now on.
func (m *Manager) SetOverride(slot int, f flat.Font) {
	if slot < 0 {
		m.log.Warn("ignoring override for invalid slot", "slot", slot)
		return
	}
	m.overrides.set(slot, f)
}

// OverrideSlots lists the slots with an override installed, ascending.
func (m *Manager) OverrideSlots() []int {
	return m.overrides.slots()
}

// TTFontSlots lists the slots with a loaded TrueType font, ascending.
func (m *Manager) TTFontSlots() []int {
	return m.ttFonts.slots()
}

func (m *Manager) newTTFont(path string, pointSize int, rgb uint32, borderSize int, sjis bool) (*flat.TTFont, error) {
	antialiasing := m.prefs.Bool(config.KeyFontAntialiasing)
	raster, err := m.RasterFont(path, pointSize, antialiasing)
	if err != nil {
		return nil, err
	}
	f := flat.NewTTFont(raster, rgb, borderSize, antialiasing, sjis)
	f.SetHighRes(m.prefs.Bool(config.KeyFontHighRes))
	return f, nil
}

// AddTTFOverride overrides slot with the TrueType font at path.  On error
// the slot keeps whatever it had.
func (m *Manager) AddTTFOverride(slot int, path string, pointSize int, rgb uint32, borderSize int, sjis bool) error {
	if slot < 0 {
		m.log.Warn("invalid slot for TTF override", "slot", slot)
		return fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}
	f, err := m.newTTFont(path, pointSize, rgb, borderSize, sjis)
	if err != nil {
		return err
	}
	m.overrides.set(slot, f)
	m.log.Debug("added TTF override", "slot", slot, "path", path)
	return nil
}

// AddJPOverride overrides slot with the game's shape font at jpSlot,
// coloured rgb.  The colour is written to entries 1 to 3 of a copy of the
// game palette reserved for slot.
func (m *Manager) AddJPOverride(slot, jpSlot int, rgb uint32) error {
	if slot < 0 || jpSlot < 0 {
		m.log.Warn("invalid slot for JP override", "slot", slot, "jpfont", jpSlot)
		return fmt.Errorf("%w: %d/%d", ErrBadSlot, slot, jpSlot)
	}
	var src flat.Font
	if m.games != nil {
		src = m.games.Font(jpSlot)
	}
	if src == nil {
		m.log.Warn("no game font for JP override", "slot", slot, "jpfont", jpSlot)
		return fmt.Errorf("%w: no font at slot %d", ErrNotJPFont, jpSlot)
	}
	shapes, ok := src.JPShapeSource()
	if !ok {
		m.log.Warn("game font is not a shape font", "slot", slot, "jpfont", jpSlot)
		return fmt.Errorf("%w: font at slot %d", ErrNotJPFont, jpSlot)
	}
	if m.palettes == nil {
		return fmt.Errorf("JP override %d: no palette manager", slot)
	}

	fontPal := palette.JPFontStart + palette.Index(slot)
	if err := m.palettes.Duplicate(palette.Game, fontPal); err != nil {
		m.log.Warn("failed to create JP font palette", "slot", slot, "err", err)
		return fmt.Errorf("JP override %d: %w", slot, err)
	}
	pal := m.palettes.Palette(fontPal)
	// the main text uses index 3, indices 1 and 2 are used for the
	// bullets of conversation options
	for i := 1; i < 4; i++ {
		pal.Raw[3*i+0] = byte(rgb >> 16)
		pal.Raw[3*i+1] = byte(rgb >> 8)
		pal.Raw[3*i+2] = byte(rgb)
	}
	m.palettes.Updated(fontPal)

	m.overrides.set(slot, flat.NewJPFont(shapes, slot, m.palettes))
	m.log.Debug("added JP override", "slot", slot, "jpfont", jpSlot)
	return nil
}

// LoadTTFont loads the TrueType font at path into slot of the TrueType
// table, which is separate from the overrides.
func (m *Manager) LoadTTFont(slot int, path string, pointSize int, rgb uint32, borderSize int) error {
	if slot < 0 {
		m.log.Warn("invalid slot for TTF", "slot", slot)
		return fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}
	f, err := m.newTTFont(path, pointSize, rgb, borderSize, false)
	if err != nil {
		return err
	}
	m.ttFonts.set(slot, f)
	return nil
}

// ApplyOverrides installs configured overrides in order.  An override that
// fails is logged and skipped; the others are still installed.  The
// returned error joins every failure.
func (m *Manager) ApplyOverrides(overrides []config.FontOverride) error {
	var errs []error
	for _, o := range overrides {
		var err error
		switch o.Kind {
		case config.OverrideTTF:
			err = m.AddTTFOverride(o.Slot, o.File, o.PointSize, o.RGB, o.BorderSize, o.SJIS)
		case config.OverrideJP:
			err = m.AddJPOverride(o.Slot, o.JPFont, o.RGB)
		default:
			err = fmt.Errorf("unknown override kind %d", o.Kind)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("override %s: %w", o, err))
		}
	}
	return errors.Join(errs...)
}

// ResetGameFonts releases every override and loaded TrueType font.  Cached
// rasterizations are kept for reuse.
func (m *Manager) ResetGameFonts() {
	m.overrides.reset()
	m.ttFonts.reset()
}

// Close resets the game fonts and frees every cached rasterization.
func (m *Manager) Close() {
	m.log.Debug("destroying font manager")
	m.ResetGameFonts()
	for key, f := range m.rasterFonts {
		if err := f.Close(); err != nil {
			m.log.Warn("failed to close TTF", "path", key.path, "err", err)
		}
		delete(m.rasterFonts, key)
	}
}
