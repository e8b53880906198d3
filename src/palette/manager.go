package palette

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jinzhu/copier"
)

type Manager struct {
	palettes  map[Index]*Palette
	listeners []func(Index)
	log       *log.Logger
}

type Option func(*Manager)

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		palettes: map[Index]*Palette{},
		log: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "palette",
		}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load installs raw as the palette at idx.  raw must hold exactly Size bytes.
func (m *Manager) Load(idx Index, raw []byte) error {
	if len(raw) != Size {
		return fmt.Errorf("palette %s: want %d bytes, got %d", idx, Size, len(raw))
	}
	p := m.palettes[idx]
	if p == nil {
		p = &Palette{}
		m.palettes[idx] = p
	}
	copy(p.Raw[:], raw)
	m.Updated(idx)
	return nil
}

// Duplicate copies the palette at src into dst.  An existing palette at dst
// is overwritten in place so references to it stay valid.
func (m *Manager) Duplicate(src, dst Index) error {
	from := m.palettes[src]
	if from == nil {
		return fmt.Errorf("duplicate palette %s: source not loaded", src)
	}
	to := m.palettes[dst]
	if to == nil {
		to = &Palette{}
		m.palettes[dst] = to
	}
	if err := copier.CopyWithOption(to, from, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("duplicate palette %s to %s: %w", src, dst, err)
	}
	to.invalidate()
	m.log.Debug("duplicated palette", "src", src, "dst", dst)
	return nil
}

// Palette returns the palette at idx, or nil if none is loaded.
func (m *Manager) Palette(idx Index) *Palette {
	return m.palettes[idx]
}

// Updated must be called after a palette's Raw bytes are edited.
func (m *Manager) Updated(idx Index) {
	if p := m.palettes[idx]; p != nil {
		p.invalidate()
	}
	for _, fn := range m.listeners {
		fn(idx)
	}
}

// OnUpdate registers fn to be called whenever a palette changes.
func (m *Manager) OnUpdate(fn func(Index)) {
	m.listeners = append(m.listeners, fn)
}
