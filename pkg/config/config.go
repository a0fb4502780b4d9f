// Package config loads envelope settings from defaults, an optional YAML
// file and ENVELOPE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Document DocumentConfig `mapstructure:"document"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Render   RenderConfig   `mapstructure:"render"`
	Export   ExportConfig   `mapstructure:"export"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DocumentConfig seeds the in-memory document. Lengths are millimetres.
type DocumentConfig struct {
	WallThickness     float64 `mapstructure:"wall_thickness"`
	UnconnectedHeight float64 `mapstructure:"unconnected_height"`
}

type EngineConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type RenderConfig struct {
	MeshCells int `mapstructure:"mesh_cells"`
}

type ExportConfig struct {
	Scale  float64 `mapstructure:"scale"`
	Margin int     `mapstructure:"margin"`
}

// EnvPrefix prefixes environment overrides: ENVELOPE_LOG_LEVEL → log.level.
const EnvPrefix = "ENVELOPE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("document.wall_thickness", 200.0)
	v.SetDefault("document.unconnected_height", 3000.0)
	v.SetDefault("engine.timeout", 5*time.Second)
	v.SetDefault("render.mesh_cells", 200)
	v.SetDefault("export.scale", 20.0)
	v.SetDefault("export.margin", 24)
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration. When path is empty an "envelope.yaml" in the
// working directory or ./configs is used if present; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("envelope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Document.WallThickness <= 0 {
		errs = append(errs, fmt.Sprintf("document.wall_thickness must be positive, got %g", c.Document.WallThickness))
	}
	if c.Document.UnconnectedHeight <= 0 {
		errs = append(errs, fmt.Sprintf("document.unconnected_height must be positive, got %g", c.Document.UnconnectedHeight))
	}
	if c.Engine.Timeout <= 0 {
		errs = append(errs, "engine.timeout must be positive")
	}
	if c.Render.MeshCells < 8 || c.Render.MeshCells > 1000 {
		errs = append(errs, fmt.Sprintf("render.mesh_cells must be 8-1000, got %d", c.Render.MeshCells))
	}
	if c.Export.Scale <= 0 {
		errs = append(errs, fmt.Sprintf("export.scale must be positive, got %g", c.Export.Scale))
	}
	if c.Export.Margin < 0 {
		errs = append(errs, fmt.Sprintf("export.margin must not be negative, got %d", c.Export.Margin))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
