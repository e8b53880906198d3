package main

import (
	"strings"

	"github.com/bradbev/flatfont/src/tts"
	"github.com/spf13/cobra"
)

var flagEspeak string

var sayCmd = &cobra.Command{
	Use:   "say <text>",
	Short: "Speak text the way dialogue lines are spoken",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		speaker := &tts.Espeak{Command: flagEspeak}
		h := tts.NewHandler(speaker)
		h.SetLogger(logger.WithPrefix("tts"))
		h.OnEntry(strings.Join(args, " "))
		speaker.Wait()
		h.OnExit()
		return nil
	},
}

func init() {
	sayCmd.Flags().StringVar(&flagEspeak, "espeak", "espeak", "Speech program")
}
