package tabletop

import "github.com/sirupsen/logrus"

// TransformPatch is a partial transform update for one object. A nil field
// means "leave unchanged", never "reset to default".
type TransformPatch struct {
	ID       string   `json:"id"`
	Position *Vec2    `json:"position,omitempty"`
	Scale    *Vec2    `json:"scale,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
}

// PatchSink receives normalized transform patches. It is the outbound edge
// to the authoritative store.
type PatchSink interface {
	ApplyPatch(patch TransformPatch)
}

// MutateFunc adapts an ordinary function to the PatchSink interface.
type MutateFunc func(patch TransformPatch)

// ApplyPatch calls f(patch).
func (f MutateFunc) ApplyPatch(patch TransformPatch) {
	f(patch)
}

// ObjectLookup resolves an object by ID. *SceneGraph implements it.
type ObjectLookup interface {
	Lookup(id string) (SceneObject, bool)
}

// TransformDispatcher translates transform patches coming from an interactive
// manipulation handle into the coordinate convention of each object type and
// forwards them to a PatchSink.
type TransformDispatcher struct {
	objects  ObjectLookup
	gridSize float64
	sink     PatchSink
	log      logrus.FieldLogger
}

// NewTransformDispatcher creates a dispatcher resolving objects through
// objects and forwarding to sink. gridSize is the pixel size of one grid unit.
func NewTransformDispatcher(objects ObjectLookup, gridSize float64, sink PatchSink) *TransformDispatcher {
	return &TransformDispatcher{
		objects:  objects,
		gridSize: gridSize,
		sink:     sink,
	}
}

// SetGridSize updates the pixel size of one grid unit.
func (d *TransformDispatcher) SetGridSize(size float64) {
	d.gridSize = size
}

// SetLogger overrides the package logger for this dispatcher.
func (d *TransformDispatcher) SetLogger(l logrus.FieldLogger) {
	d.log = l
}

func (d *TransformDispatcher) logger() logrus.FieldLogger {
	if d.log != nil {
		return d.log
	}
	return logger
}

// Dispatch normalizes patch for the type of the object it targets and
// forwards it. A patch for an unknown object is logged and dropped; this
// happens when the object was deleted concurrently.
//
//   - token: only scale and rotation are forwarded. Token positions change
//     through the drag-and-snap path (TokenDrag) exclusively.
//   - staging zone, prop: the pixel position is converted to grid units.
//   - map, drawing, pointer: forwarded unchanged.
func (d *TransformDispatcher) Dispatch(patch TransformPatch) {
	obj, ok := d.objects.Lookup(patch.ID)
	if !ok {
		d.logger().WithField("id", patch.ID).Warn("transform patch for unknown object dropped")
		return
	}

	switch obj.Type {
	case ObjectToken:
		patch.Position = nil
	case ObjectStagingZone, ObjectProp:
		if patch.Position != nil {
			g := d.grid()
			patch.Position = &Vec2{X: patch.Position.X / g, Y: patch.Position.Y / g}
		}
	}

	if globalDebug {
		d.logger().WithFields(logrus.Fields{
			"id":   patch.ID,
			"type": obj.Type,
		}).Debug("transform patch forwarded")
	}
	d.sink.ApplyPatch(patch)
}

// grid returns the grid size to divide by. A non-positive grid size cannot be
// divided by, so positions are forwarded unscaled.
func (d *TransformDispatcher) grid() float64 {
	if d.gridSize > 0 {
		return d.gridSize
	}
	d.logger().WithField("gridSize", d.gridSize).Warn("non-positive grid size, position forwarded unscaled")
	return 1
}

// --- Fixed-ID wrappers ---

// TokenDrag forwards the snapped position of a dragged token.
func (d *TransformDispatcher) TokenDrag(id string, pos Vec2) {
	d.sink.ApplyPatch(TransformPatch{ID: id, Position: &pos})
}

// PropDrag forwards the position of a dragged prop. pos must already be in
// the prop's storage units.
func (d *TransformDispatcher) PropDrag(id string, pos Vec2) {
	d.sink.ApplyPatch(TransformPatch{ID: id, Position: &pos})
}

// DrawingTransform forwards patch for the drawing with the given id.
func (d *TransformDispatcher) DrawingTransform(id string, patch TransformPatch) {
	patch.ID = id
	d.sink.ApplyPatch(patch)
}
