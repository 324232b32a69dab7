package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

type Config struct {
	Window WindowConfig `mapstructure:"window" yaml:"window"`
	Game   GameConfig   `mapstructure:"game" yaml:"game"`
	Audio  AudioConfig  `mapstructure:"audio" yaml:"audio"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

type WindowConfig struct {
	Width      int    `mapstructure:"width" yaml:"width"`
	Height     int    `mapstructure:"height" yaml:"height"`
	Title      string `mapstructure:"title" yaml:"title"`
	Fullscreen bool   `mapstructure:"fullscreen" yaml:"fullscreen"`
	Backend    string `mapstructure:"backend" yaml:"backend"`
}

type GameConfig struct {
	// Seed of the circle spawner; 0 picks one from the clock.
	Seed  uint64 `mapstructure:"seed" yaml:"seed"`
	Theme string `mapstructure:"theme" yaml:"theme"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`
}

type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	Volume     float64 `mapstructure:"volume" yaml:"volume"`
	SampleRate int     `mapstructure:"sample_rate" yaml:"sample_rate"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every key with its default value so that env
// overrides resolve even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Bubble Popper")
	v.SetDefault("window.fullscreen", false)
	v.SetDefault("window.backend", BackendWindow)

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.theme", "")
	v.SetDefault("game.debug", false)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)
	v.SetDefault("audio.sample_rate", 44100)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "bubble-popper")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; failing here is a programming error.
		panic(fmt.Sprintf("config: unmarshalling defaults: %v", err))
	}

	return &cfg
}

// Load decodes the viper state into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width < 64 || c.Window.Height < 64 {
		return fmt.Errorf("window size must be at least 64x64, got %dx%d", c.Window.Width, c.Window.Height)
	}

	switch c.Window.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return fmt.Errorf("window.backend must be %q or %q, got %q", BackendWindow, BackendTerminal, c.Window.Backend)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume)
	}

	switch c.Audio.SampleRate {
	case 22050, 44100, 48000:
	default:
		return fmt.Errorf("audio.sample_rate must be 22050, 44100 or 48000, got %d", c.Audio.SampleRate)
	}

	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}

	return nil
}
