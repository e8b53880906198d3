package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Settings is the on-disk settings file.  Pointer fields are nil when the
// file does not mention them.
type Settings struct {
	FontAntialiasing *bool          `yaml:"font_antialiasing"`
	FontHighRes      *bool          `yaml:"font_highres"`
	LogLevel         string         `yaml:"log_level"`
	Game             string         `yaml:"game"`
	GameDir          string         `yaml:"game_dir"`
	OverridesINI     string         `yaml:"overrides_ini"`
	FontOverrides    map[int]string `yaml:"font_overrides"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	on := true
	return Settings{
		FontAntialiasing: &on,
		FontHighRes:      &on,
		LogLevel:         "info",
		Game:             "ultima8",
	}
}

// Load loads settings.  The file found is layered over the embedded
// defaults, so keys it omits keep their default values.
// Search order: customPath -> ~/.flatfont/config.yaml -> ./configs/config.yaml -> embedded default
func Load(customPath string) (Settings, error) {
	// Try custom path first
	if customPath != "" {
		cfg := embeddedDefaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if cfg, ok := loadOverDefaults(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := loadOverDefaults("configs/config.yaml"); ok {
		return cfg, nil
	}

	return embeddedDefaults(), nil
}

func loadOverDefaults(path string) (Settings, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, false
	}
	cfg := embeddedDefaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, false
	}
	return cfg, true
}

// embeddedDefaults decodes a fresh copy of the embedded default YAML.
func embeddedDefaults() Settings {
	var cfg Settings
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return DefaultSettings() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flatfont", filename)
}

// Overrides parses FontOverrides, ordered by slot.
func (s Settings) Overrides() ([]FontOverride, error) {
	var out []FontOverride
	for slot, value := range s.FontOverrides {
		o, err := ParseFontOverride(slot, value)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b FontOverride) int {
		return a.Slot - b.Slot
	})
	return out, nil
}
