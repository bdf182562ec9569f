package tabletop

import "math"

// HitShape is a hit area in an object's local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// TargetResolver finds the ID of the object under a world point. It returns
// "" for the canvas background.
type TargetResolver interface {
	ResolveTarget(world Vec2) string
}

// TargetFunc adapts an ordinary function to the TargetResolver interface.
type TargetFunc func(world Vec2) string

// ResolveTarget calls f(world).
func (f TargetFunc) ResolveTarget(world Vec2) string {
	return f(world)
}

// HitTest finds the topmost unlocked object containing the world point.
// objects must be in draw order (see SceneGraph.DrawOrder); they are scanned
// back to front. Locked objects (map, staging zone, pings) never intercept
// the pointer, so clicks on them count as background clicks. Objects whose
// payload is not a TokenData, PropData, or DrawingData have no hit area.
func HitTest(objects []SceneObject, world Vec2, gridSize float64) (SceneObject, bool) {
	if gridSize <= 0 {
		gridSize = 1
	}
	for i := len(objects) - 1; i >= 0; i-- {
		obj := &objects[i]
		if obj.Locked {
			continue
		}
		shape, tr, ok := objectHitArea(obj, gridSize)
		if !ok {
			continue
		}
		lp := WorldToLocal(world, tr)
		if shape.Contains(lp.X, lp.Y) {
			return *obj, true
		}
	}
	return SceneObject{}, false
}

// objectHitArea returns the local hit shape of obj and the pixel-space
// transform to test it against.
func objectHitArea(obj *SceneObject, gridSize float64) (HitShape, Transform, bool) {
	switch data := obj.Data.(type) {
	case TokenData:
		size := data.Size
		if size <= 0 {
			size = 1
		}
		// Tokens are round pieces inscribed in their Size x Size cell block.
		r := size * gridSize / 2
		return HitCircle{CenterX: r, CenterY: r, Radius: r}, obj.Transform, true
	case PropData:
		// Props store their position in grid units.
		tr := obj.Transform
		tr.X *= gridSize
		tr.Y *= gridSize
		return HitRect{Width: data.Width * gridSize, Height: data.Height * gridSize}, tr, true
	case DrawingData:
		r, ok := pointsBounds(data.Drawing.Points)
		if !ok {
			return nil, Transform{}, false
		}
		pad := data.Drawing.Width / 2
		return HitRect{X: r.X - pad, Y: r.Y - pad, Width: r.Width + 2*pad, Height: r.Height + 2*pad},
			obj.Transform, true
	}
	return nil, Transform{}, false
}

// pointsBounds returns the axis-aligned bounds of pts.
func pointsBounds(pts []Vec2) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// SceneResolver resolves targets against the scene graph's current objects.
type SceneResolver struct {
	Scene *SceneGraph
}

// ResolveTarget returns the ID of the topmost unlocked object at world.
func (r SceneResolver) ResolveTarget(world Vec2) string {
	if r.Scene == nil {
		return ""
	}
	obj, ok := HitTest(r.Scene.DrawOrder(), world, r.Scene.GridSize())
	if !ok {
		return ""
	}
	return obj.ID
}
