package overlay

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogRetention is how long log entries stay on the panel when
	// Config.LogRetention is unset.
	DefaultLogRetention = 4 * time.Second
	// DefaultLogMax caps the log buffer when Config.LogMax is unset.
	DefaultLogMax = 8
)

// Config holds the debug toggles read by the overlays every frame. Fields may
// be changed between frames.
type Config struct {
	Inspect   bool    `yaml:"inspect"`
	Paused    bool    `yaml:"paused"`
	TimeScale float64 `yaml:"timeScale"`
	Recording bool    `yaml:"recording"`
	ShowLog   bool    `yaml:"showLog"`

	// LogRetention is the maximum age of a log entry; 0 uses DefaultLogRetention.
	LogRetention time.Duration `yaml:"logRetention"`
	// LogMax is the number of entries a LogBuffer keeps; 0 uses DefaultLogMax.
	LogMax int `yaml:"logMax"`
}

// DefaultConfig returns a Config with the log panel on, every other overlay
// off and a time scale of 1.
func DefaultConfig() Config {
	return Config{
		TimeScale:    1,
		ShowLog:      true,
		LogRetention: DefaultLogRetention,
		LogMax:       DefaultLogMax,
	}
}

// Retention returns the effective log retention in seconds.
func (c *Config) Retention() float64 {
	if c.LogRetention <= 0 {
		return DefaultLogRetention.Seconds()
	}
	return c.LogRetention.Seconds()
}

// LoadConfig decodes a YAML document over DefaultConfig. Keys that are absent
// keep their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.LogMax < 0 {
		return cfg, fmt.Errorf("parse config: logMax must not be negative, got %d", cfg.LogMax)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config from path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Environment variables read by ApplyEnv.
const (
	EnvInspect      = "OVERLAY_INSPECT"
	EnvShowLog      = "OVERLAY_SHOW_LOG"
	EnvTimeScale    = "OVERLAY_TIME_SCALE"
	EnvLogRetention = "OVERLAY_LOG_RETENTION"
)

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv. Unset variables are ignored; malformed ones are errors.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvInspect); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvInspect, err)
		}
		c.Inspect = b
	}
	if v, ok := lookup(EnvShowLog); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShowLog, err)
		}
		c.ShowLog = b
	}
	if v, ok := lookup(EnvTimeScale); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeScale, err)
		}
		c.TimeScale = f
	}
	if v, ok := lookup(EnvLogRetention); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogRetention, err)
		}
		c.LogRetention = d
	}
	return nil
}
