package tabletop

import "github.com/hajimehoshi/ebiten/v2"

// syntheticEvent represents a single injected mouse or touch event.
// Screen coordinates are used and converted to world coordinates via the
// camera, identical to real input.
type syntheticEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	touch            bool
	touchID          int
}

// tapTouchID is the touch ID used by InjectTap. It is far above the IDs
// scripts normally pick so a tap never collides with an injected drag.
const tapTouchID = 1 << 20

// InjectPress queues a mouse press at the given screen coordinates (left
// button). Each injected event is consumed by one Update call.
func (in *InputSource) InjectPress(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a mouse move with the button held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (in *InputSource) InjectMove(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectHover queues a mouse move with no button held.
func (in *InputSource) InjectHover(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		button: MouseButtonLeft,
	})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (in *InputSource) InjectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (in *InputSource) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The sequence consumes frames frames, minimum 2.
func (in *InputSource) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(toX, toY)
}

// InjectTouchStart queues a finger landing at the given screen coordinates.
func (in *InputSource) InjectTouchStart(id int, x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: true,
		touch:   true,
		touchID: id,
	})
}

// InjectTouchMove queues a move of an already injected finger.
func (in *InputSource) InjectTouchMove(id int, x, y float64) {
	in.InjectTouchStart(id, x, y)
}

// InjectTouchEnd queues the lift of an injected finger.
func (in *InputSource) InjectTouchEnd(id int) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{
		touch:   true,
		touchID: id,
	})
}

// InjectTap queues a single-finger touch and lift at the same screen
// coordinates. Consumes two frames.
func (in *InputSource) InjectTap(x, y float64) {
	in.InjectTouchStart(tapTouchID, x, y)
	in.InjectTouchEnd(tapTouchID)
}

// Pending reports the number of injected events not yet consumed.
func (in *InputSource) Pending() int {
	return len(in.injectQueue)
}

// processInjectedInput pops one event from the inject queue, folds it into
// the synthetic mouse and touch state, and processes the resulting frame.
// With the queue empty it still replays the injected state while a press or
// touch is held. Returns true if real input should be skipped.
func (in *InputSource) processInjectedInput() bool {
	if len(in.injectQueue) == 0 {
		if !in.injectHeld() {
			return false
		}
		// A held injected contact keeps owning the input until released.
		in.processInjectedFrame()
		return true
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	if evt.touch {
		in.applyInjectedTouch(evt)
	} else {
		in.injectMouse = evt
	}
	in.processInjectedFrame()
	return true
}

// injectHeld reports whether an injected press or touch is still down.
func (in *InputSource) injectHeld() bool {
	return in.injectMouse.pressed || len(in.injectTouches) > 0
}

// processInjectedFrame feeds the current injected mouse and touch state
// through the normal frame processing.
func (in *InputSource) processInjectedFrame() {
	f := &in.frame
	f.cursor = Vec2{X: in.injectMouse.screenX, Y: in.injectMouse.screenY}
	f.pressed = in.injectMouse.pressed
	f.button = in.injectMouse.button
	f.touches = append(f.touches[:0], in.injectTouches...)
	f.wheel = 0
	f.mods = 0
	in.process(f)
}

func (in *InputSource) applyInjectedTouch(evt syntheticEvent) {
	id := ebiten.TouchID(evt.touchID)
	for i := range in.injectTouches {
		if in.injectTouches[i].id != id {
			continue
		}
		if !evt.pressed {
			in.injectTouches = append(in.injectTouches[:i], in.injectTouches[i+1:]...)
			return
		}
		in.injectTouches[i].pos = Vec2{X: evt.screenX, Y: evt.screenY}
		return
	}
	if evt.pressed {
		in.injectTouches = append(in.injectTouches, touchSample{
			id:  id,
			pos: Vec2{X: evt.screenX, Y: evt.screenY},
		})
	}
}
