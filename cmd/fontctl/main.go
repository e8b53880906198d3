// fontctl inspects the fonts a game would use.
//
// Usage:
//
//	fontctl detect [dir]            - Identify the game release in dir
//	fontctl slots                   - List every font slot and what backs it
//	fontctl probe <file>            - Rasterize a TrueType font and print its metrics
//	fontctl say <text>              - Speak text the way dialogue is spoken
//	fontctl bake <file>             - Bake a TrueType font into a shape font asset
//
// Global flags:
//
//	--config <path>     - Settings file (default: search ~/.flatfont, ./configs)
//	--game-dir <dir>    - Game data directory, overrides the settings file
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/bradbev/flatfont/src/config"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagGameDir  string
	flagLogLevel string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "fontctl"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "fontctl",
	Short:         "Inspect game fonts, overrides and detection tables",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagLogLevel == "" {
			return nil
		}
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file")
	rootCmd.PersistentFlags().StringVar(&flagGameDir, "game-dir", "", "Game data directory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(bakeCmd)
}

// loadSettings reads the settings file and applies the command line on top.
func loadSettings() (config.Settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagGameDir != "" {
		cfg.GameDir = flagGameDir
	}
	if flagLogLevel == "" && cfg.LogLevel != "" {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}
	return cfg, nil
}
