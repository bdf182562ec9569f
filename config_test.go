package tabletop

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultGestureConfig(), cfg.Gesture)
	assert.Equal(t, DefaultGridSize, cfg.GridSize)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig([]byte(`
gesture:
  max_interval: 500ms
  max_distance: 30
grid_size: 70
debug: true
`))
	require.NoError(t, err)
	t.Cleanup(func() { SetDebugMode(false) })

	assert.Equal(t, Config{
		Gesture: GestureConfig{
			MinInterval: DefaultDoubleTapMinInterval,
			MaxInterval: 500 * time.Millisecond,
			MaxDistance: 30,
		},
		DragDeadZone: defaultDragDeadZone,
		GridSize:     70,
		Debug:        true,
	}, cfg)
}

func TestLoadConfigEmptyKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "gesture: [1, 2"},
		{"bad duration", "gesture:\n  min_interval: soon\n"},
		{"inverted interval", "gesture:\n  min_interval: 400ms\n  max_interval: 300ms\n"},
		{"zero distance", "gesture:\n  max_distance: 0\n"},
		{"negative dead zone", "drag_dead_zone: -1\n"},
		{"zero grid", "grid_size: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drag_dead_zone: 8\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.DragDeadZone)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigApply(t *testing.T) {
	in := NewInputSource(NewEventRouter(nil, ToolHandlers{}, nil), nil, nil)
	cfg := DefaultConfig()
	cfg.DragDeadZone = 12
	cfg.Apply(in)
	assert.Equal(t, 12.0, in.dragDeadZone)
	assert.False(t, globalDebug)

	cfg.Apply(nil)
}
