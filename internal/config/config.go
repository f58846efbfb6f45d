// Package config loads the YAML options file shared by the command-line tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds tool defaults. Command-line flags override these values.
type Config struct {
	// Engine names the body decoder: placeholder, g4 or ccitt.
	Engine string `yaml:"engine"`
	// Format is the output image format: png or qoi.
	Format string `yaml:"format"`
	// MaxPixels rejects larger images before allocating a raster. Zero disables the limit.
	MaxPixels int `yaml:"max_pixels"`
	// Verbose enables progress logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine:    "placeholder",
		Format:    "png",
		MaxPixels: 1 << 28,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read configuration file '%s': %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse configuration file '%s': %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown engines, formats and negative limits.
func (c Config) Validate() error {
	switch c.Engine {
	case "placeholder", "g4", "ccitt":
	default:
		return fmt.Errorf("config: unknown engine %q", c.Engine)
	}
	switch c.Format {
	case "png", "qoi":
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if c.MaxPixels < 0 {
		return fmt.Errorf("config: max_pixels must not be negative, got %d", c.MaxPixels)
	}
	return nil
}
