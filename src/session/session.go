// Package session wires the font subsystem together for a game directory:
// the layered file system, the game palette, the built-in font archive,
// the preferences and the font manager with its configured overrides.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bradbev/flatfont/src/asset"
	"github.com/bradbev/flatfont/src/config"
	"github.com/bradbev/flatfont/src/flat"
	"github.com/bradbev/flatfont/src/fontman"
	"github.com/bradbev/flatfont/src/palette"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
	"golang.org/x/image/font/basicfont"
)

// GamePalettePath holds the game palette as 256 VGA DAC triplets.
const GamePalettePath = "static/game.pal"

type Session struct {
	Settings config.Settings
	Prefs    *config.Store
	Assets   *asset.Manager
	Palettes *palette.Manager
	Archive  *flat.FontArchive
	Fonts    *fontman.Manager

	log *log.Logger
}

// Open builds a session for cfg.  The game directory, when set, is searched
// first, followed by extra in order.  Overrides that fail to install are
// logged and returned in the error alongside a usable session.
func Open(cfg config.Settings, logger *log.Logger, extra ...fs.FS) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		Settings: cfg,
		Prefs:    config.NewStore(),
		Assets:   asset.New(asset.WithLogger(logger.WithPrefix("asset"))),
		Palettes: palette.NewManager(palette.WithLogger(logger.WithPrefix("palette"))),
		log:      logger,
	}
	flat.RegisterAllFlatTypes(s.Assets)

	priority := 0
	if cfg.GameDir != "" {
		s.Assets.RegisterFileSystem(os.DirFS(cfg.GameDir), priority)
		priority++
	}
	for _, fsys := range extra {
		s.Assets.RegisterFileSystem(fsys, priority)
		priority++
	}

	if err := s.loadGamePalette(); err != nil {
		return nil, err
	}

	archive, err := flat.LoadFontArchive(s.Assets, s.Palettes, logger.WithPrefix("fonts"))
	if err != nil {
		return nil, fmt.Errorf("loading game fonts: %w", err)
	}
	if archive.Font(0) == nil {
		logger.Info("no game font in slot 0, using the built-in fallback")
		fallback := flat.BakeShapeFont("fallback", basicfont.Face7x13, flat.PrintableASCII())
		fallback.SetPalettes(s.Palettes)
		archive.Set(0, fallback)
	}
	s.Archive = archive

	s.Prefs.RegisterDefault(config.KeyFontAntialiasing, true)
	s.Prefs.Apply(cfg)
	s.Fonts = fontman.New(archive, s.Assets, s.Palettes, s.Prefs,
		fontman.WithLogger(logger.WithPrefix("fonts")))

	return s, s.ApplyOverrides()
}

func (s *Session) loadGamePalette() error {
	raw, err := s.Assets.ReadFile(GamePalettePath)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("no game palette, using a grey ramp", "path", GamePalettePath)
		raw = make([]byte, palette.Size)
		for i := range raw {
			raw[i] = byte(i / 3)
		}
		return s.Palettes.Load(palette.Game, raw)
	}
	if err != nil {
		return err
	}
	if len(raw) < palette.Size {
		return fmt.Errorf("%s: %d bytes, need %d", GamePalettePath, len(raw), palette.Size)
	}
	return s.Palettes.Load(palette.Game, palette.Expand6Bit(raw[:palette.Size]))
}

// Overrides gathers the configured overrides: the settings file first, then
// the game INI file.  A slot named in both ends up with the INI entry.
func (s *Session) Overrides() ([]config.FontOverride, error) {
	overrides, err := s.Settings.Overrides()
	if err != nil {
		return nil, err
	}
	if s.Settings.OverridesINI == "" {
		return overrides, nil
	}
	data, err := os.ReadFile(s.Settings.OverridesINI)
	if err != nil {
		return nil, fmt.Errorf("reading font overrides: %w", err)
	}
	fromINI, err := config.LoadFontOverrides(data, s.Settings.Game)
	if err != nil {
		return nil, err
	}
	return append(overrides, fromINI...), nil
}

// ApplyOverrides installs the configured overrides into the font manager.
func (s *Session) ApplyOverrides() error {
	overrides, err := s.Overrides()
	if err != nil {
		s.log.Warn("bad font override configuration", "err", err)
		return err
	}
	if err := s.Fonts.ApplyOverrides(overrides); err != nil {
		s.log.Warn("some font overrides were not installed", "err", err)
		return err
	}
	return nil
}

// Reload drops every override and installs the configured ones again with
// the current preferences.
func (s *Session) Reload() error {
	s.Fonts.ResetGameFonts()
	return s.ApplyOverrides()
}

// Slots lists every slot with either a game font or an override.
func (s *Session) Slots() []int {
	seen := map[int]bool{}
	var out []int
	for i := 0; i < s.Archive.Len(); i++ {
		if s.Archive.Font(i) != nil {
			seen[i] = true
			out = append(out, i)
		}
	}
	for _, i := range s.Fonts.OverrideSlots() {
		if !seen[i] {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return out
}

func (s *Session) Close() {
	s.Fonts.Close()
}
