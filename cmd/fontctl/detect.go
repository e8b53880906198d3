package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bradbev/flatfont/src/detection"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [dir]",
	Short: "Identify the game release in a directory",
	Long:  `Hashes the files named by the detection tables and lists every release that matches.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	dir := flagGameDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		dir = cfg.GameDir
	}
	if dir == "" {
		dir = "."
	}

	found, err := detection.Detect(os.DirFS(dir), detection.Crousti, detection.WithLogger(logger))
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Println(warnStyle.Render("No known game found in " + dir))
		return nil
	}
	var rows [][]string
	for _, e := range found {
		rows = append(rows, []string{
			e.GameID, e.Extra, string(e.Language), string(e.Platform),
			strings.Join(e.GUIOptions, ","), e.Note,
		})
	}
	fmt.Print(table([]string{"Game", "Version", "Language", "Platform", "GUI options", "Notes"}, rows))
	return nil
}
