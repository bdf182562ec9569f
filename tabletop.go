package tabletop

import "math"

// Vec2 is a 2D vector used for positions, offsets, scales, and sizes
// throughout the API.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// ObjectType identifies what a SceneObject represents on the board.
type ObjectType string

const (
	ObjectMap         ObjectType = "map"          // background map image
	ObjectToken       ObjectType = "token"        // a player or monster piece
	ObjectDrawing     ObjectType = "drawing"      // a freehand stroke or shape
	ObjectStagingZone ObjectType = "staging-zone" // area holding pieces before placement
	ObjectProp        ObjectType = "prop"         // a placed scenery object
	ObjectPointer     ObjectType = "pointer"      // a transient ping from a player
)

// EventKind identifies the physical input category an event came from.
type EventKind uint8

const (
	EventClick       EventKind = iota // mouse press then release without a drag
	EventTap                          // single-finger touch then release without a drag
	EventPointerDown                  // pointer button pressed
	EventPointerMove                  // pointer moved (held or hovering)
	EventPointerUp                    // pointer button released
	EventTouchStart                   // a finger touched the canvas
	EventTouchMove                    // one or more fingers moved
	EventTouchEnd                     // a finger left the canvas
)

var eventKindNames = [...]string{
	EventClick:       "click",
	EventTap:         "tap",
	EventPointerDown: "pointer-down",
	EventPointerMove: "pointer-move",
	EventPointerUp:   "pointer-up",
	EventTouchStart:  "touch-start",
	EventTouchMove:   "touch-move",
	EventTouchEnd:    "touch-end",
}

// String returns the event kind's name.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
