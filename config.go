package tabletop

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable input thresholds of a board. It is usually loaded
// from YAML:
//
//	gesture:
//	  min_interval: 50ms
//	  max_interval: 350ms
//	  max_distance: 20
//	drag_dead_zone: 4
//	grid_size: 50
//	debug: false
type Config struct {
	Gesture      GestureConfig `yaml:"gesture"`
	DragDeadZone float64       `yaml:"drag_dead_zone"`
	GridSize     float64       `yaml:"grid_size"`
	Debug        bool          `yaml:"debug"`
}

// DefaultGridSize is the pixel size of one grid cell when none is configured.
const DefaultGridSize = 50.0

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Gesture:      DefaultGestureConfig(),
		DragDeadZone: defaultDragDeadZone,
		GridSize:     DefaultGridSize,
	}
}

// LoadConfig parses YAML over the defaults, so omitted keys keep their
// default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return LoadConfig(data)
}

// Validate reports the first inconsistent threshold.
func (c Config) Validate() error {
	g := c.Gesture
	switch {
	case g.MinInterval < 0:
		return fmt.Errorf("invalid config: gesture.min_interval %s is negative", g.MinInterval)
	case g.MaxInterval <= g.MinInterval:
		return fmt.Errorf("invalid config: gesture.max_interval %s must exceed min_interval %s",
			g.MaxInterval, g.MinInterval)
	case g.MaxDistance <= 0:
		return fmt.Errorf("invalid config: gesture.max_distance %g must be positive", g.MaxDistance)
	case c.DragDeadZone < 0:
		return fmt.Errorf("invalid config: drag_dead_zone %g is negative", c.DragDeadZone)
	case c.GridSize <= 0:
		return fmt.Errorf("invalid config: grid_size %g must be positive", c.GridSize)
	}
	return nil
}

// Apply pushes the config into an input source and sets the package debug
// mode. in may be nil. The gesture thresholds are consumed separately by
// NewGestureDetector.
func (c Config) Apply(in *InputSource) {
	if in != nil {
		in.SetDragDeadZone(c.DragDeadZone)
	}
	SetDebugMode(c.Debug)
}
