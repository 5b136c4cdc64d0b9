package project

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Zoom bounds for the pixel size setting.
const (
	MinPixelSize = 1.0
	MaxPixelSize = 8.0

	defaultPixelSize = 3.0
	defaultGridAlpha = 0.25
)

// Settings are the user's editor preferences, stored as a YAML file next to
// the project database.
type Settings struct {
	ProjectDir string  `yaml:"project_dir"`
	PixelSize  float64 `yaml:"pixel_size"`
	GridAlpha  float64 `yaml:"grid_alpha"`
}

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() Settings {
	return Settings{
		PixelSize: defaultPixelSize,
		GridAlpha: defaultGridAlpha,
	}
}

// LoadSettings reads the settings file at path. A missing file yields the
// defaults. Out of range values are clamped.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, err
	}

	if err := yaml.Unmarshal(b, &s); err != nil {
		return DefaultSettings(), err
	}

	if s.PixelSize < MinPixelSize {
		s.PixelSize = MinPixelSize
	}
	if s.PixelSize > MaxPixelSize {
		s.PixelSize = MaxPixelSize
	}

	return s, nil
}

// SaveSettings writes the settings file at path.
func SaveSettings(path string, s Settings) error {
	b, err := yaml.Marshal(&s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
