package tts_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/bradbev/flatfont/src/tts"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls  []string
	sayErr error
}

func (r *recorder) Enable(on bool)     { r.calls = append(r.calls, fmt.Sprintf("enable %v", on)) }
func (r *recorder) SetPitch(p int)     { r.calls = append(r.calls, fmt.Sprintf("pitch %d", p)) }
func (r *recorder) SetVolume(v int)    { r.calls = append(r.calls, fmt.Sprintf("volume %d", v)) }
func (r *recorder) SetRate(v int)      { r.calls = append(r.calls, fmt.Sprintf("rate %d", v)) }
func (r *recorder) SetVoice(v int)     { r.calls = append(r.calls, fmt.Sprintf("voice %d", v)) }
func (r *recorder) Say(s string) error { r.calls = append(r.calls, "say "+s); return r.sayErr }
func (r *recorder) Stop() error        { r.calls = append(r.calls, "stop"); return nil }

func TestHandlerOnEntry(t *testing.T) {
	r := &recorder{}
	h := tts.NewHandler(r)
	h.OnEntry("Hello there")
	assert.Equal(t, []string{
		"enable true",
		"pitch 50",
		"volume 100",
		"rate 20",
		"voice 1",
		"say Hello there",
	}, r.calls)
}

func TestHandlerOnExit(t *testing.T) {
	r := &recorder{}
	tts.NewHandler(r).OnExit()
	assert.Equal(t, []string{"stop"}, r.calls)
}

func TestHandlerLogsSayFailure(t *testing.T) {
	r := &recorder{sayErr: errors.New("no audio device")}
	h := tts.NewHandler(r)
	h.SetLogger(log.New(io.Discard))
	assert.NotPanics(t, func() { h.OnEntry("line") })
	assert.Len(t, r.calls, 6)
}

func TestNilSpeaker(t *testing.T) {
	h := tts.NewHandler(nil)
	assert.NotPanics(t, func() {
		h.OnEntry("line")
		h.OnExit()
	})
}

func TestEspeakArgs(t *testing.T) {
	e := &tts.Espeak{}
	e.SetPitch(tts.Pitch)
	e.SetVolume(tts.Volume)
	e.SetRate(tts.Rate)
	e.SetVoice(tts.Voice)
	assert.Equal(t, []string{"-p", "50", "-a", "200", "-s", "210", "-v", "en+m1", "--", "-rm"}, e.Args("-rm"))

	e.SetPitch(500)
	e.SetVoice(0)
	assert.Equal(t, []string{"-p", "99", "-a", "200", "-s", "210", "--", "x"}, e.Args("x"))
}

func TestEspeakDisabled(t *testing.T) {
	e := &tts.Espeak{}
	require.ErrorIs(t, e.Say("hello"), tts.ErrDisabled)
	assert.NoError(t, e.Stop())
}

func TestEspeakWaitWithoutSpeech(t *testing.T) {
	e := &tts.Espeak{}
	done := make(chan struct{})
	go func() {
		e.Wait()
		close(done)
	}()
	<-done
}
