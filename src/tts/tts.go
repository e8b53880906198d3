// Package tts speaks dialogue lines as they appear on screen.
package tts

import (
	"os"

	"github.com/charmbracelet/log"
)

// Speaker is a platform text to speech engine.
type Speaker interface {
	Enable(on bool)
	SetPitch(pitch int)
	SetVolume(volume int)
	SetRate(rate int)
	SetVoice(voice int)
	Say(text string) error
	Stop() error
}

// Voice settings applied before each line.
const (
	Pitch  = 50
	Volume = 100
	Rate   = 20
	Voice  = 1
)

// Handler drives a Speaker from dialogue box events.  A Handler with a nil
// Speaker does nothing.
type Handler struct {
	speaker Speaker
	log     *log.Logger
}

func NewHandler(s Speaker) *Handler {
	return &Handler{
		speaker: s,
		log:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "tts"}),
	}
}

func (h *Handler) SetLogger(l *log.Logger) {
	h.log = l
}

// OnEntry is called when a dialogue line is shown.
func (h *Handler) OnEntry(dialog string) {
	if h.speaker == nil {
		return
	}
	h.speaker.Enable(true)
	h.speaker.SetPitch(Pitch)
	h.speaker.SetVolume(Volume)
	h.speaker.SetRate(Rate)
	h.speaker.SetVoice(Voice)
	if err := h.speaker.Say(dialog); err != nil {
		h.log.Warn("failed to speak", "err", err)
	}
}

// OnExit is called when the dialogue line is dismissed.
func (h *Handler) OnExit() {
	if h.speaker == nil {
		return
	}
	if err := h.speaker.Stop(); err != nil {
		h.log.Warn("failed to stop speech", "err", err)
	}
}
