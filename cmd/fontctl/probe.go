package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bradbev/flatfont/src/config"
	"github.com/bradbev/flatfont/src/session"
	"github.com/spf13/cobra"
	"golang.org/x/image/font"
)

var (
	flagSize      int
	flagMonochrom bool
)

var probeCmd = &cobra.Command{
	Use:   "probe <file>",
	Short: "Rasterize a TrueType font and print its metrics",
	Long: `Loads a font the way a ttf override would and prints its metrics.
The file is looked up in the game directory first, then relative to the
current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().IntVar(&flagSize, "size", 24, "Point size")
	probeCmd.Flags().BoolVar(&flagMonochrom, "mono", false, "Render without antialiasing")
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	// overrides are not needed here
	cfg.FontOverrides = nil
	cfg.OverridesINI = ""

	path := args[0]
	dir := "."
	if filepath.IsAbs(path) {
		dir, path = filepath.Split(path)
	}
	s, err := session.Open(cfg, logger, os.DirFS(dir))
	if err != nil {
		return err
	}
	defer s.Close()
	s.Prefs.Set(config.KeyFontAntialiasing, !flagMonochrom)

	if err := s.Fonts.LoadTTFont(0, path, flagSize, 0xFFFFFF, 0); err != nil {
		return err
	}
	f := s.Fonts.TTFont(0)
	metrics := f.Raster().Face().Metrics()
	rows := [][]string{
		{"mode", f.Raster().Mode().String()},
		{"point size", strconv.Itoa(f.Raster().PointSize())},
		{"height", strconv.Itoa(f.Height())},
		{"ascent", strconv.Itoa(metrics.Ascent.Ceil())},
		{"descent", strconv.Itoa(metrics.Descent.Ceil())},
		{"x-height", strconv.Itoa(metrics.XHeight.Ceil())},
		{"advance of M", advance(f.Raster().Face(), 'M')},
	}
	fmt.Println(headerStyle.Render(args[0]))
	fmt.Print(table([]string{"Metric", "Value"}, rows))
	return nil
}

func advance(face font.Face, r rune) string {
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		return "missing"
	}
	return strconv.Itoa(adv.Ceil())
}
