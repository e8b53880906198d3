package tts

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
	"sync"
)

var ErrDisabled = errors.New("speech disabled")

// Espeak speaks through the espeak command line program.  Only one line is
// spoken at a time; Say interrupts the previous line.
type Espeak struct {
	// Command is the program to run, "espeak" when empty.
	Command string

	mu      sync.Mutex
	enabled bool
	pitch   int
	volume  int
	rate    int
	voice   int
	cmd     *exec.Cmd
	done    chan struct{}
}

var _ Speaker = (*Espeak)(nil)

func (e *Espeak) Enable(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = on
}

// SetPitch takes 0 to 100.
func (e *Espeak) SetPitch(pitch int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pitch = pitch
}

// SetVolume takes 0 to 100.
func (e *Espeak) SetVolume(volume int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = volume
}

// SetRate takes -100 to 100, 0 being the normal rate.
func (e *Espeak) SetRate(rate int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rate = rate
}

func (e *Espeak) SetVoice(voice int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.voice = voice
}

// Args returns the espeak arguments for text with the current settings.
func (e *Espeak) Args(text string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.args(text)
}

func (e *Espeak) args(text string) []string {
	// espeak amplitude is 0-200 and speed is words per minute
	args := []string{
		"-p", strconv.Itoa(clamp(e.pitch, 0, 99)),
		"-a", strconv.Itoa(clamp(e.volume, 0, 100) * 2),
		"-s", strconv.Itoa(175 + clamp(e.rate, -100, 100)*175/100),
	}
	if e.voice > 0 {
		args = append(args, "-v", "en+m"+strconv.Itoa(e.voice))
	}
	return append(args, "--", text)
}

func (e *Espeak) Say(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return ErrDisabled
	}
	e.stopLocked()
	name := e.Command
	if name == "" {
		name = "espeak"
	}
	cmd := exec.Command(name, e.args(text)...)
	if err := cmd.Start(); err != nil {
		return err
	}
	done := make(chan struct{})
	e.cmd, e.done = cmd, done
	go func() {
		cmd.Wait()
		close(done)
	}()
	return nil
}

// Wait blocks until the current line has been spoken or stopped.
func (e *Espeak) Wait() {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (e *Espeak) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopLocked()
}

func (e *Espeak) stopLocked() error {
	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	err := e.cmd.Process.Kill()
	e.cmd = nil
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
