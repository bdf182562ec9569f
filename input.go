package tabletop

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxTouches          = 10  // concurrent touch points tracked
	defaultDragDeadZone = 4.0 // pixels
	wheelZoomStep       = 1.1 // zoom factor per wheel notch
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	target   string      // object under the pointer at press time
	dragging bool        // moved beyond the dead zone since press
	button   MouseButton // button captured at press time
}

type touchState struct {
	used     bool
	id       ebiten.TouchID
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	multi    bool // another finger was down at some point during this touch
}

// touchSample is one touch point read in a frame.
type touchSample struct {
	id  ebiten.TouchID
	pos Vec2
}

// frameInput is the raw input state of one frame, either polled from
// Ebitengine or synthesized from the inject queue.
type frameInput struct {
	cursor  Vec2
	pressed bool
	button  MouseButton
	touches []touchSample
	wheel   float64
	mods    KeyModifiers
}

// InputSource turns Ebitengine's polled mouse and touch state into router
// events. Call Update once per tick from the game's Update method.
//
// Mouse input is pointer 0: press, move, and release map to pointer-down,
// pointer-move, and pointer-up, and a release that stayed inside the drag
// dead zone over the same target also produces a click. Touch input maps to
// touch-start, touch-move, and touch-end; a single-finger touch released
// inside the dead zone also produces a tap.
type InputSource struct {
	router       *EventRouter
	camera       *Camera
	resolve      TargetResolver
	now          func() time.Time
	dragDeadZone float64

	mouse   pointerState
	touches [maxTouches]touchState

	frame      frameInput
	touchIDBuf []ebiten.TouchID
	touchPos   []Vec2 // reused Touches buffer

	injectQueue   []syntheticEvent
	injectMouse   syntheticEvent // last injected mouse state
	injectTouches []touchSample  // injected touch points currently down

	script *ScriptRunner
}

// NewInputSource creates an input source feeding router. camera converts
// screen to world coordinates and receives wheel zoom; it may be nil.
// resolve finds the object under the pointer; it may be nil, in which case
// every event targets the background.
func NewInputSource(router *EventRouter, camera *Camera, resolve TargetResolver) *InputSource {
	return &InputSource{
		router:       router,
		camera:       camera,
		resolve:      resolve,
		now:          time.Now,
		dragDeadZone: defaultDragDeadZone,
	}
}

// SetDragDeadZone sets the movement in pixels beyond which a press no longer
// counts as a click or tap.
func (in *InputSource) SetDragDeadZone(pixels float64) {
	in.dragDeadZone = pixels
}

// SetClock replaces the time source used to stamp events.
func (in *InputSource) SetClock(now func() time.Time) {
	in.now = now
}

// SetScript attaches a scripted input sequence. The script is advanced at
// the start of every Update.
func (in *InputSource) SetScript(r *ScriptRunner) {
	in.script = r
}

// Update processes one frame of input. Injected events take precedence over
// real input; while any are queued, or an injected press or touch is still
// held, the mouse and touch screen are not read.
func (in *InputSource) Update() {
	if in.script != nil {
		in.script.step(in)
	}
	if in.processInjectedInput() {
		return
	}
	in.poll(&in.frame)
	in.process(&in.frame)
}

// --- Polling ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// poll reads the live Ebitengine input state into f.
func (in *InputSource) poll(f *frameInput) {
	mx, my := ebiten.CursorPosition()
	f.cursor = Vec2{X: float64(mx), Y: float64(my)}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	f.pressed = left || right || middle
	switch {
	case left:
		f.button = MouseButtonLeft
	case right:
		f.button = MouseButtonRight
	case middle:
		f.button = MouseButtonMiddle
	}

	in.touchIDBuf = ebiten.AppendTouchIDs(in.touchIDBuf[:0])
	f.touches = f.touches[:0]
	for _, id := range in.touchIDBuf {
		tx, ty := ebiten.TouchPosition(id)
		f.touches = append(f.touches, touchSample{id: id, pos: Vec2{X: float64(tx), Y: float64(ty)}})
	}

	_, f.wheel = ebiten.Wheel()
	f.mods = readModifiers()
}

// --- Processing ---

// process runs the mouse and touch state machines for one frame.
func (in *InputSource) process(f *frameInput) {
	in.processMouse(f)
	in.processTouches(f)
	if f.wheel != 0 && in.camera != nil {
		in.camera.ZoomAt(f.cursor.X, f.cursor.Y, math.Pow(wheelZoomStep, f.wheel))
	}
}

// screenToWorld converts screen coordinates to world coordinates using the camera.
func screenToWorld(cam *Camera, sx, sy float64) (float64, float64) {
	if cam != nil {
		return cam.ScreenToWorld(sx, sy)
	}
	return sx, sy
}

func (in *InputSource) event(screen Vec2, pointerID int, button MouseButton, mods KeyModifiers) PointerEvent {
	wx, wy := screenToWorld(in.camera, screen.X, screen.Y)
	return PointerEvent{
		World:       Vec2{X: wx, Y: wy},
		Screen:      screen,
		HasPosition: true,
		PointerID:   pointerID,
		Button:      button,
		Modifiers:   mods,
		At:          in.now(),
	}
}

func (in *InputSource) targetAt(world Vec2) string {
	if in.resolve == nil {
		return ""
	}
	return in.resolve.ResolveTarget(world)
}

// processMouse runs the pointer state machine for the mouse (pointer 0).
func (in *InputSource) processMouse(f *frameInput) {
	ps := &in.mouse
	sx, sy := f.cursor.X, f.cursor.Y

	switch {
	case f.pressed && !ps.down:
		// Just pressed: capture button and target for the whole interaction.
		e := in.event(f.cursor, 0, f.button, f.mods)
		e.Target = in.targetAt(e.World)
		*ps = pointerState{
			down: true, button: f.button, target: e.Target,
			startX: sx, startY: sy, lastX: sx, lastY: sy,
		}
		in.router.HandlePointerDown(e)

	case !f.pressed && ps.down:
		e := in.event(f.cursor, 0, ps.button, f.mods)
		e.Target = in.targetAt(e.World)
		in.router.HandlePointerUp(e)
		if !ps.dragging && e.Target == ps.target {
			in.router.HandleClick(e)
		}
		ps.down = false
		ps.dragging = false
		ps.target = ""
		ps.lastX, ps.lastY = sx, sy

	case f.pressed && ps.down:
		if sx == ps.lastX && sy == ps.lastY {
			return
		}
		if !ps.dragging && math.Hypot(sx-ps.startX, sy-ps.startY) > in.dragDeadZone {
			ps.dragging = true
		}
		e := in.event(f.cursor, 0, ps.button, f.mods)
		e.Target = ps.target
		in.router.HandlePointerMove(e)
		ps.lastX, ps.lastY = sx, sy

	default:
		// Hover move.
		if sx == ps.lastX && sy == ps.lastY {
			return
		}
		in.router.HandlePointerMove(in.event(f.cursor, 0, f.button, f.mods))
		ps.lastX, ps.lastY = sx, sy
	}
}

// touchSlot maps an ebiten.TouchID to a slot. Returns the existing slot, or
// allocates a new one and reports isNew. Returns -1 if all slots are in use.
func (in *InputSource) touchSlot(id ebiten.TouchID) (slot int, isNew bool) {
	for i := range in.touches {
		if in.touches[i].used && in.touches[i].id == id {
			return i, false
		}
	}
	for i := range in.touches {
		if !in.touches[i].used {
			in.touches[i] = touchState{used: true, id: id}
			return i, true
		}
	}
	return -1, false
}

// activeTouches fills the reusable Touches buffer with every tracked touch.
func (in *InputSource) activeTouches() []Vec2 {
	in.touchPos = in.touchPos[:0]
	for i := range in.touches {
		if in.touches[i].used {
			in.touchPos = append(in.touchPos, Vec2{X: in.touches[i].lastX, Y: in.touches[i].lastY})
		}
	}
	return in.touchPos
}

// processTouches diffs the frame's touch points against the tracked slots
// and emits touch-start, touch-move, touch-end, and tap events.
func (in *InputSource) processTouches(f *frameInput) {
	var seen [maxTouches]bool
	var started [maxTouches]bool
	moved := -1

	for _, s := range f.touches {
		slot, isNew := in.touchSlot(s.id)
		if slot < 0 {
			continue
		}
		seen[slot] = true
		ts := &in.touches[slot]
		if isNew {
			ts.startX, ts.startY = s.pos.X, s.pos.Y
			ts.lastX, ts.lastY = s.pos.X, s.pos.Y
			started[slot] = true
			continue
		}
		if s.pos.X == ts.lastX && s.pos.Y == ts.lastY {
			continue
		}
		ts.lastX, ts.lastY = s.pos.X, s.pos.Y
		if !ts.dragging && math.Hypot(ts.lastX-ts.startX, ts.lastY-ts.startY) > in.dragDeadZone {
			ts.dragging = true
		}
		if moved < 0 {
			moved = slot
		}
	}

	count := 0
	for i := range in.touches {
		if in.touches[i].used && seen[i] {
			count++
		}
	}
	if count > 1 {
		for i := range in.touches {
			if in.touches[i].used {
				in.touches[i].multi = true
			}
		}
	}

	for i := range in.touches {
		if !started[i] {
			continue
		}
		ts := &in.touches[i]
		e := in.event(Vec2{X: ts.lastX, Y: ts.lastY}, i, MouseButtonLeft, f.mods)
		e.Target = in.targetAt(e.World)
		e.Touches = in.activeTouches()
		in.router.HandleTouchStart(e)
	}

	if moved >= 0 {
		ts := &in.touches[moved]
		e := in.event(Vec2{X: ts.lastX, Y: ts.lastY}, moved, MouseButtonLeft, f.mods)
		e.Touches = in.activeTouches()
		in.router.HandleTouchMove(e)
	}

	for i := range in.touches {
		ts := in.touches[i]
		if !ts.used || seen[i] {
			continue
		}
		in.touches[i] = touchState{}

		e := in.event(Vec2{X: ts.lastX, Y: ts.lastY}, i, MouseButtonLeft, f.mods)
		e.Touches = in.activeTouches()
		in.router.HandleTouchEnd(e)

		if !ts.dragging && !ts.multi {
			tap := in.event(Vec2{X: ts.lastX, Y: ts.lastY}, i, MouseButtonLeft, f.mods)
			tap.Target = in.targetAt(tap.World)
			in.router.HandleTap(tap)
		}
	}
}
