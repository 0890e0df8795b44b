// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// Config is the server configuration. Every field has a default so an empty
// environment is valid.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `env:"IMAGE_MCP_LOG_LEVEL" envDefault:"info"`

	// Encoder settings applied by every save.
	JPEGQuality  int     `env:"IMAGE_MCP_JPEG_QUALITY" envDefault:"75"`
	WebPQuality  float32 `env:"IMAGE_MCP_WEBP_QUALITY" envDefault:"80"`
	WebPLossless bool    `env:"IMAGE_MCP_WEBP_LOSSLESS" envDefault:"false"`
	GIFNumColors int     `env:"IMAGE_MCP_GIF_COLORS" envDefault:"256"`

	// Background is the default rotate fill colour as "#RRGGBB".
	Background string `env:"IMAGE_MCP_BACKGROUND" envDefault:"#000000"`
}

// Load reads a .env file if one is present, then parses the environment.
func Load() (Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		LogLevel:     "info",
		JPEGQuality:  75,
		WebPQuality:  80,
		GIFNumColors: 256,
		Background:   "#000000",
	}
}

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.New("config: JPEGQuality must be between 1 and 100")
	}
	if c.WebPQuality < 0 || c.WebPQuality > 100 {
		return errors.New("config: WebPQuality must be between 0 and 100")
	}
	if c.GIFNumColors < 1 || c.GIFNumColors > 256 {
		return errors.New("config: GIFNumColors must be between 1 and 256")
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return fmt.Errorf("config: Background: %w", err)
	}
	return nil
}

// EncodeOptions returns the encoder settings described by c.
func (c Config) EncodeOptions() imaging.EncodeOptions {
	return imaging.EncodeOptions{
		JPEGQuality:  c.JPEGQuality,
		WebPQuality:  c.WebPQuality,
		WebPLossless: c.WebPLossless,
		GIFNumColors: c.GIFNumColors,
	}
}
