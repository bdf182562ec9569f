package tabletop

import (
	"time"
)

// Default double-tap recognition thresholds.
const (
	DefaultDoubleTapMinInterval = 50 * time.Millisecond  // rejects paired synthetic events from one tap
	DefaultDoubleTapMaxInterval = 350 * time.Millisecond // upper bound of human double-tap cadence
	DefaultDoubleTapMaxDistance = 20.0                   // pixels of jitter tolerated between taps
)

// GestureConfig holds the double-tap recognition thresholds. Both interval
// bounds and the distance bound are exclusive.
type GestureConfig struct {
	MinInterval time.Duration `yaml:"min_interval"`
	MaxInterval time.Duration `yaml:"max_interval"`
	MaxDistance float64       `yaml:"max_distance"`
}

// DefaultGestureConfig returns the default double-tap thresholds.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		MinInterval: DefaultDoubleTapMinInterval,
		MaxInterval: DefaultDoubleTapMaxInterval,
		MaxDistance: DefaultDoubleTapMaxDistance,
	}
}

// GesturePhase is the state of the double-tap recognizer.
type GesturePhase uint8

const (
	// GestureIdle: no tap is pending.
	GestureIdle GesturePhase = iota
	// GesturePendingTap: one tap has been recorded and a second may complete
	// a double tap.
	GesturePendingTap
)

// GestureState is a snapshot of the recognizer. Pos and At are meaningful
// only in GesturePendingTap.
type GestureState struct {
	Phase GesturePhase
	Pos   Vec2
	At    time.Time
}

// GestureDetector recognizes double taps and double clicks from a stream of
// tap/click events shared by the mouse and touch paths.
//
// Transitions:
//
//	Idle       --tap-->                    PendingTap(tap)
//	PendingTap --matching tap--> fire  ->  Idle
//	PendingTap --non-matching tap-->       PendingTap(new tap)
//	any        --multi-touch-->            Idle
//
// Returning to Idle after firing means a third quick tap starts a new pair
// instead of firing again.
type GestureDetector struct {
	cfg   GestureConfig
	state GestureState

	// OnDoubleTap is called with the world position of the second tap when a double tap
	// is recognized. May be nil.
	OnDoubleTap func(pos Vec2)
}

// NewGestureDetector creates a detector with the given thresholds.
func NewGestureDetector(cfg GestureConfig) *GestureDetector {
	return &GestureDetector{cfg: cfg}
}

// State returns the current recognizer state.
func (g *GestureDetector) State() GestureState {
	return g.state
}

// Reset discards any pending tap.
func (g *GestureDetector) Reset() {
	g.state = GestureState{}
}

// Observe feeds one click or tap to the recognizer and reports whether it
// completed a double tap. Events without a resolvable position are ignored.
// An event with more than one touch point discards the pending tap.
func (g *GestureDetector) Observe(e PointerEvent) bool {
	if len(e.Touches) > 1 {
		g.Reset()
		return false
	}
	if !e.HasPosition {
		return false
	}

	pos := e.Screen
	if g.state.Phase == GesturePendingTap && g.matches(pos, e.At) {
		g.Reset()
		if g.OnDoubleTap != nil {
			g.OnDoubleTap(e.World)
		}
		return true
	}

	g.state = GestureState{Phase: GesturePendingTap, Pos: pos, At: e.At}
	return false
}

func (g *GestureDetector) matches(pos Vec2, at time.Time) bool {
	elapsed := at.Sub(g.state.At)
	if elapsed <= g.cfg.MinInterval || elapsed >= g.cfg.MaxInterval {
		return false
	}
	return g.state.Pos.Dist(pos) < g.cfg.MaxDistance
}
