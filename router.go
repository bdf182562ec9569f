package tabletop

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PointerEvent carries one input event from the canvas to the router and on
// to the tool handlers. Mouse and touch events share this type so tool
// handlers need no touch-specific variants.
type PointerEvent struct {
	Kind EventKind

	// World and Screen are meaningful only when HasPosition is true. An event
	// without a resolvable position is routed normally but ignored by the
	// gesture detector.
	World       Vec2
	Screen      Vec2
	HasPosition bool

	// Target is the ID of the scene object under the pointer, or "" when the
	// pointer is over the canvas background.
	Target string

	PointerID int
	Button    MouseButton
	Modifiers KeyModifiers

	// Touches holds the screen positions of every active touch point for touch
	// events; it is empty for mouse events.
	Touches []Vec2

	At time.Time

	// ShouldPan is set by the router on pointer-down and touch-start: free
	// camera panning is permitted only when no tool mode is active.
	ShouldPan bool
}

// OnBackground reports whether the event targets the canvas background
// rather than a scene object.
func (e PointerEvent) OnBackground() bool {
	return e.Target == ""
}

// ToolModes is the set of active editing tools. Modes are independent
// booleans; mutual exclusion is the caller's responsibility and the router's
// fixed priority order resolves any overlap for click routing.
type ToolModes struct {
	Alignment bool
	Select    bool
	Pointer   bool
	Measure   bool
	Draw      bool
}

// Any reports whether any tool mode is active.
func (m ToolModes) Any() bool {
	return m.Alignment || m.Select || m.Pointer || m.Measure || m.Draw
}

// ModeSource reports the tool modes in effect for the event being routed.
type ModeSource interface {
	ToolModes() ToolModes
}

// ModeFunc adapts an ordinary function to the ModeSource interface.
type ModeFunc func() ToolModes

// ToolModes calls f().
func (f ModeFunc) ToolModes() ToolModes {
	return f()
}

// ToolHandlers holds the external per-tool handlers the router dispatches to.
// Every field is optional; a nil handler is skipped.
type ToolHandlers struct {
	// Click routing.
	AlignmentClick  func(PointerEvent)
	PointerClick    func(PointerEvent) // ping, measure, or draw click
	ClearSelection  func()
	DeselectIfEmpty func(PointerEvent)

	// Camera.
	CameraDown func(PointerEvent)
	CameraMove func(PointerEvent)
	CameraUp   func(PointerEvent)

	// Pointer/measure tool.
	PointerMove func(PointerEvent)

	// Freehand drawing.
	DrawStart func(PointerEvent)
	DrawMove  func(PointerEvent)
	DrawUp    func(PointerEvent)

	// Marquee selection. MarqueeActive reports whether a marquee gesture is in
	// progress; MarqueeUp is only called while it returns true.
	MarqueeStart  func(PointerEvent)
	MarqueeMove   func(PointerEvent)
	MarqueeUp     func(PointerEvent)
	MarqueeActive func() bool

	// Touch.
	TouchStart func(PointerEvent)
	TouchMove  func(PointerEvent)
	TouchEnd   func(PointerEvent)
}

// --- Handler registry ---

type routeHandler struct {
	id uint32
	fn func(PointerEvent)
}

type handlerRegistry struct {
	pointerDown []routeHandler
	pointerMove []routeHandler
	pointerUp   []routeHandler
	nextID      uint32
}

func (r *handlerRegistry) add(list *[]routeHandler, fn func(PointerEvent)) uint32 {
	r.nextID++
	*list = append(*list, routeHandler{id: r.nextID, fn: fn})
	return r.nextID
}

// CallbackHandle allows removing a registered broadcast observer.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventKind
}

// Remove unregisters this observer so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeRouteHandler(h.reg.pointerDown, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removeRouteHandler(h.reg.pointerMove, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removeRouteHandler(h.reg.pointerUp, h.id)
	}
}

func removeRouteHandler(s []routeHandler, id uint32) []routeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = routeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- EventRouter ---

// EventRouter decides, per physical event category, which tool handlers run
// and in what order. It holds no tool state of its own beyond the gesture
// detector; everything else is read from the ModeSource and the handlers.
//
// Pointer-down and pointer-move broadcast to a fixed list of handlers that
// each check whether their own mode is active. Click routing is exclusive
// and priority-ordered.
type EventRouter struct {
	modes    ModeSource
	tools    ToolHandlers
	gestures *GestureDetector

	// Fixed broadcast lists, built once from tools. Extra observers live in
	// handlers and run after these.
	downList []func(PointerEvent)
	moveList []func(PointerEvent)

	handlers handlerRegistry
}

// NewEventRouter creates a router. gestures may be nil, in which case a
// detector with default thresholds is created.
func NewEventRouter(modes ModeSource, tools ToolHandlers, gestures *GestureDetector) *EventRouter {
	if gestures == nil {
		gestures = NewGestureDetector(DefaultGestureConfig())
	}
	r := &EventRouter{
		modes:    modes,
		tools:    tools,
		gestures: gestures,
	}
	// Order matters: camera first so a pan starts before any tool reacts.
	r.downList = compact(tools.CameraDown, tools.DrawStart, tools.MarqueeStart)
	r.moveList = compact(tools.CameraMove, tools.PointerMove, tools.DrawMove, tools.MarqueeMove)
	return r
}

func compact(fns ...func(PointerEvent)) []func(PointerEvent) {
	out := make([]func(PointerEvent), 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			out = append(out, fn)
		}
	}
	return out
}

// Gestures returns the router's gesture detector.
func (r *EventRouter) Gestures() *GestureDetector {
	return r.gestures
}

// Modes returns the tool modes currently reported by the ModeSource.
func (r *EventRouter) Modes() ToolModes {
	if r.modes == nil {
		return ToolModes{}
	}
	return r.modes.ToolModes()
}

// --- Observer registration ---

// OnPointerDown registers an extra observer for pointer-down events. It runs
// after the built-in camera, draw, and marquee handlers.
func (r *EventRouter) OnPointerDown(fn func(PointerEvent)) CallbackHandle {
	id := r.handlers.add(&r.handlers.pointerDown, fn)
	return CallbackHandle{id: id, reg: &r.handlers, event: EventPointerDown}
}

// OnPointerMove registers an extra observer for pointer-move events.
func (r *EventRouter) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	id := r.handlers.add(&r.handlers.pointerMove, fn)
	return CallbackHandle{id: id, reg: &r.handlers, event: EventPointerMove}
}

// OnPointerUp registers an extra observer for pointer-up events.
func (r *EventRouter) OnPointerUp(fn func(PointerEvent)) CallbackHandle {
	id := r.handlers.add(&r.handlers.pointerUp, fn)
	return CallbackHandle{id: id, reg: &r.handlers, event: EventPointerUp}
}

// --- Click / tap ---

// HandleClick routes a click. The gesture detector always sees the click
// first; then the first matching rule wins:
//
//  1. alignment mode: only the alignment handler runs.
//  2. select mode: nothing runs; the marquee handlers own this mode.
//  3. no pointer, measure, or draw mode: a click on the background clears
//     the selection, and DeselectIfEmpty always runs.
//  4. otherwise the pointer-click handler runs.
func (r *EventRouter) HandleClick(e PointerEvent) {
	e.Kind = EventClick
	r.gestures.Observe(e)
	r.routeClick(e)
}

// HandleTap routes a single-finger tap exactly like a click. The gesture
// detector observes the tap once.
func (r *EventRouter) HandleTap(e PointerEvent) {
	e.Kind = EventTap
	r.gestures.Observe(e)
	r.routeClick(e)
}

func (r *EventRouter) routeClick(e PointerEvent) {
	modes := r.Modes()
	if globalDebug {
		r.trace(e, modes)
	}

	switch {
	case modes.Alignment:
		call(r.tools.AlignmentClick, e)
	case modes.Select:
		return
	case !modes.Pointer && !modes.Measure && !modes.Draw:
		if r.tools.ClearSelection != nil && e.OnBackground() {
			r.tools.ClearSelection()
		}
		call(r.tools.DeselectIfEmpty, e)
	default:
		call(r.tools.PointerClick, e)
	}
}

// --- Pointer ---

// HandlePointerDown computes whether free panning is permitted and
// broadcasts the event to the camera, draw, and marquee handlers, in that
// order. Every handler is called; each one checks its own mode.
func (r *EventRouter) HandlePointerDown(e PointerEvent) {
	e.Kind = EventPointerDown
	modes := r.Modes()
	e.ShouldPan = !modes.Any()
	if globalDebug {
		r.trace(e, modes)
	}
	broadcast(r.downList, e)
	dispatch(r.handlers.pointerDown, e)
}

// HandlePointerMove broadcasts the event to the camera, pointer, draw, and
// marquee move handlers with no mode gating. It runs at native event
// frequency and does not allocate.
func (r *EventRouter) HandlePointerMove(e PointerEvent) {
	e.Kind = EventPointerMove
	broadcast(r.moveList, e)
	dispatch(r.handlers.pointerMove, e)
}

// HandlePointerUp always ends camera and draw interactions. The marquee is
// finalized only while a marquee gesture is active, because finalizing one
// that never started would commit an empty selection.
func (r *EventRouter) HandlePointerUp(e PointerEvent) {
	e.Kind = EventPointerUp
	call(r.tools.CameraUp, e)
	call(r.tools.DrawUp, e)
	if r.tools.MarqueeActive != nil && r.tools.MarqueeActive() {
		call(r.tools.MarqueeUp, e)
	}
	dispatch(r.handlers.pointerUp, e)
}

// --- Touch ---

// HandleTouchStart computes pan permission like HandlePointerDown and
// delegates to the touch-start handler. A second finger discards any pending
// tap so a pinch is never read as a double tap.
func (r *EventRouter) HandleTouchStart(e PointerEvent) {
	e.Kind = EventTouchStart
	e.ShouldPan = !r.Modes().Any()
	if len(e.Touches) > 1 {
		r.gestures.Reset()
	}
	call(r.tools.TouchStart, e)
}

// HandleTouchMove delegates to the touch-move handler.
func (r *EventRouter) HandleTouchMove(e PointerEvent) {
	e.Kind = EventTouchMove
	if len(e.Touches) > 1 {
		r.gestures.Reset()
	}
	call(r.tools.TouchMove, e)
}

// HandleTouchEnd delegates to the touch-end handler.
func (r *EventRouter) HandleTouchEnd(e PointerEvent) {
	e.Kind = EventTouchEnd
	call(r.tools.TouchEnd, e)
}

// --- Helpers ---

func call(fn func(PointerEvent), e PointerEvent) {
	if fn != nil {
		fn(e)
	}
}

func broadcast(fns []func(PointerEvent), e PointerEvent) {
	for _, fn := range fns {
		fn(e)
	}
}

func dispatch(hs []routeHandler, e PointerEvent) {
	for _, h := range hs {
		h.fn(e)
	}
}

func (r *EventRouter) trace(e PointerEvent, modes ToolModes) {
	logger.WithFields(logrus.Fields{
		"event":  e.Kind.String(),
		"target": e.Target,
		"modes":  modes,
		"pan":    e.ShouldPan,
	}).Debug("route")
}
