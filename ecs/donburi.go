package ecs

import (
	"github.com/phanxgames/tabletop"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PatchEventType is the Donburi event type for normalized transform patches.
var PatchEventType = events.NewEventType[tabletop.TransformPatch]()

// DoubleTap is published when the gesture detector recognizes a double tap.
// Pos is in world coordinates.
type DoubleTap struct {
	Pos tabletop.Vec2
}

// DoubleTapEventType is the Donburi event type for recognized double taps.
var DoubleTapEventType = events.NewEventType[DoubleTap]()

// DonburiStore publishes board output into a Donburi world. It implements
// tabletop.PatchSink.
type DonburiStore struct {
	world donburi.World
}

var _ tabletop.PatchSink = (*DonburiStore)(nil)

// NewDonburiStore creates a store backed by a Donburi world. Events are
// queued and delivered by events.ProcessAllEvents or the event type's
// ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world}
}

// ApplyPatch publishes patch to PatchEventType.
func (s *DonburiStore) ApplyPatch(patch tabletop.TransformPatch) {
	PatchEventType.Publish(s.world, patch)
}

// DoubleTap publishes a double tap at pos. Its signature matches
// GestureDetector.OnDoubleTap.
func (s *DonburiStore) DoubleTap(pos tabletop.Vec2) {
	DoubleTapEventType.Publish(s.world, DoubleTap{Pos: pos})
}
