// fontview opens a window showing a line of text in every font slot, with
// the configured overrides applied.
//
// Keys: A toggles antialiasing, H toggles high resolution filtering, O
// toggles overrides, Escape quits.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bradbev/flatfont/src/config"
	"github.com/bradbev/flatfont/src/flat/ebitentext"
	"github.com/bradbev/flatfont/src/session"
	"github.com/charmbracelet/log"
	"github.com/deeean/go-vector/vector2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
)

var errQuit = errors.New("quit")

var (
	flagConfig  string
	flagGameDir string
	flagText    string
	flagRetina  bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "fontview"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fontview",
	Short: "Show a line of text in every font slot",
	Long: `Opens a window drawing sample text in every game font slot, with the
configured overrides applied.

Keys: A toggles antialiasing, H toggles high resolution filtering, O
toggles overrides, Escape quits.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Settings file")
	rootCmd.Flags().StringVar(&flagGameDir, "game-dir", "", "Game data directory")
	rootCmd.Flags().StringVar(&flagText, "text", "The quick brown fox {{.}}", "Text template drawn in each slot")
	rootCmd.Flags().BoolVar(&flagRetina, "retina", false, "Render at device resolution")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagGameDir != "" {
		cfg.GameDir = flagGameDir
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	s, err := session.Open(cfg, logger)
	if s == nil {
		return err
	}
	defer s.Close()
	if err != nil {
		logger.Warn("continuing without some overrides", "err", err)
	}

	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowTitle("fontview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &G{
		s:         s,
		log:       logger,
		template:  flagText,
		overrides: true,
		dscale:    ebiten.DeviceScaleFactor(),
		retina:    flagRetina,
	}
	g.rebuild()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

type G struct {
	s         *session.Session
	log       *log.Logger
	template  string
	overrides bool
	texts     []*ebitentext.TextComponent
	frame     int

	dscale float64
	retina bool
	w, h   int
}

// rebuild lays out one text component per slot.
func (g *G) rebuild() {
	g.texts = g.texts[:0]
	y := 40.0
	for _, slot := range g.s.Slots() {
		f := g.s.Fonts.GameFont(slot, g.overrides)
		if f == nil {
			continue
		}
		g.texts = append(g.texts, &ebitentext.TextComponent{
			Font:         f,
			Name:         fmt.Sprintf("slot%d", slot),
			TextTemplate: fmt.Sprintf("%d: %s", slot, g.template),
			Location:     vector2.Vector2{X: 10, Y: y},
		})
		y += float64(f.Height()) + 8
	}
}

func (g *G) toggle(key string) {
	g.s.Prefs.Set(key, !g.s.Prefs.Bool(key))
	if err := g.s.Reload(); err != nil {
		g.log.Warn("reloading fonts", "err", err)
	}
	g.rebuild()
}

func (g *G) Draw(screen *ebiten.Image) {
	for _, t := range g.texts {
		t.SetValues(g.frame / 60)
		t.Draw(screen)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  aa: %v  highres: %v  overrides: %v  cached: %d",
		ebiten.ActualTPS(),
		g.s.Prefs.Bool(config.KeyFontAntialiasing),
		g.s.Prefs.Bool(config.KeyFontHighRes),
		g.overrides,
		g.s.Fonts.CachedRasterFonts()), 10, 10)
}

func (g *G) Update() error {
	g.frame++
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return errQuit
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.toggle(config.KeyFontAntialiasing)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.toggle(config.KeyFontHighRes)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.overrides = !g.overrides
		g.rebuild()
	}
	return nil
}

func (g *G) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.retina {
		g.w = int(float64(outsideWidth) * g.dscale)
		g.h = int(float64(outsideHeight) * g.dscale)
	} else {
		g.w = outsideWidth
		g.h = outsideHeight
	}
	return g.w, g.h
}
