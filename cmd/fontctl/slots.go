package main

import (
	"fmt"
	"strconv"

	"github.com/bradbev/flatfont/src/flat"
	"github.com/bradbev/flatfont/src/session"
	"github.com/spf13/cobra"
)

var flagSample string

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List every font slot and what backs it",
	RunE:  runSlots,
}

func init() {
	slotsCmd.Flags().StringVar(&flagSample, "sample", "The quick brown fox", "Text to measure")
}

func describe(f flat.Font) (kind, detail string) {
	switch f := f.(type) {
	case *flat.TTFont:
		return "ttf", fmt.Sprintf("%dpt %s #%06X border %d", f.Raster().PointSize(), f.Raster().Mode(), f.RGB(), f.BorderSize())
	case *flat.JPFont:
		return "jp", "palette " + f.PaletteIndex().String()
	case *flat.ShapeFont:
		return "shape", f.Name
	case nil:
		return "-", ""
	}
	return fmt.Sprintf("%T", f), ""
}

func runSlots(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	s, err := session.Open(cfg, logger)
	if s == nil {
		return err
	}
	defer s.Close()
	if err != nil {
		fmt.Println(warnStyle.Render("warning: " + err.Error()))
	}

	var rows [][]string
	for _, slot := range s.Slots() {
		game := s.Fonts.GameFont(slot, false)
		active := s.Fonts.GameFont(slot, true)
		gameKind, _ := describe(game)
		kind, detail := describe(active)
		if active == game {
			kind = dimStyle.Render("game " + kind)
		} else {
			kind = okStyle.Render(kind)
		}
		w, h := active.TextSize(flagSample)
		rows = append(rows, []string{
			strconv.Itoa(slot), gameKind, kind, detail,
			strconv.Itoa(active.Height()), fmt.Sprintf("%dx%d", w, h),
		})
	}
	fmt.Print(table([]string{"Slot", "Game font", "Active", "Details", "Height", "Sample"}, rows))
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d cached rasterizations", s.Fonts.CachedRasterFonts())))
	return nil
}
