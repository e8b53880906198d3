package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradbev/flatfont/src/asset"
	"github.com/bradbev/flatfont/src/config"
	"github.com/bradbev/flatfont/src/flat"
	"github.com/bradbev/flatfont/src/session"
	"github.com/spf13/cobra"
)

var (
	flagBakeSize int
	flagBakeSlot int
	flagBakeOut  string
)

var bakeCmd = &cobra.Command{
	Use:   "bake <file>",
	Short: "Bake a TrueType font into a shape font asset",
	Long: `Rasterizes the printable ASCII range of a TrueType font without
antialiasing and saves it as a shape font for a game font slot.  The asset
is written to fonts/<name>.json below --out, the game directory by default.`,
	Args: cobra.ExactArgs(1),
	RunE: runBake,
}

func init() {
	bakeCmd.Flags().IntVar(&flagBakeSize, "size", 12, "Point size")
	bakeCmd.Flags().IntVar(&flagBakeSlot, "slot", 0, "Game font slot the asset fills")
	bakeCmd.Flags().StringVar(&flagBakeOut, "out", "", "Directory to write to")
}

func runBake(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	cfg.FontOverrides = nil
	cfg.OverridesINI = ""
	out := flagBakeOut
	if out == "" {
		out = cfg.GameDir
	}
	if out == "" {
		return fmt.Errorf("bake needs --out or a game directory")
	}

	dir, file := filepath.Split(args[0])
	if dir == "" {
		dir = "."
	}
	s, err := session.Open(cfg, logger, os.DirFS(dir))
	if err != nil {
		return err
	}
	defer s.Close()
	s.Prefs.Set(config.KeyFontAntialiasing, false)

	raster, err := s.Fonts.RasterFont(file, flagBakeSize, false)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(file, filepath.Ext(file))
	shape := flat.BakeShapeFont(name, raster.Face(), flat.PrintableASCII())
	shape.Slot = flagBakeSlot

	s.Assets.RegisterWritableFileSystem(asset.NewWritableFS(asset.Path(out)))
	target := asset.Path("fonts/" + name + ".json")
	if err := s.Assets.Save(target, shape); err != nil {
		return err
	}
	fmt.Println(okStyle.Render(fmt.Sprintf("baked %d glyphs into %s", len(shape.Glyphs), filepath.Join(out, string(target)))))
	return nil
}
