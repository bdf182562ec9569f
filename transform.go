package tabletop

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minScale is the magnitude below which a scale factor is treated as 1 when
// inverting a transform.
const minScale = 1e-6

// Transform is an object's position, rotation, and scale in world space.
// Rotation is in degrees, clockwise with Y pointing down.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"`
}

// IdentityTransform returns a transform at the origin with unit scale and no
// rotation.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// At returns the identity transform translated to (x, y).
func At(x, y float64) Transform {
	return Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point into the local space of an object
// with transform t: translate by (-X, -Y), rotate by -Rotation, then divide by
// scale per axis. A scale whose magnitude is below 1e-6 is replaced by 1 so
// the result is always finite.
func WorldToLocal(p Vec2, t Transform) Vec2 {
	dx := p.X - t.X
	dy := p.Y - t.Y

	sin, cos := math.Sincos(-degToRad(t.Rotation))
	rx := dx*cos - dy*sin
	ry := dx*sin + dy*cos

	return Vec2{X: rx / safeScale(t.ScaleX), Y: ry / safeScale(t.ScaleY)}
}

// LocalToWorld converts a point in an object's local space into world space.
// It is the inverse of WorldToLocal for any non-degenerate scale.
//
// Composition order:
//
//	Translate(X, Y) * Rotate(Rotation) * Scale(ScaleX, ScaleY)
func LocalToWorld(p Vec2, t Transform) Vec2 {
	m := mgl64.Translate2D(t.X, t.Y).
		Mul3(mgl64.HomogRotate2D(degToRad(t.Rotation))).
		Mul3(mgl64.Scale2D(t.ScaleX, t.ScaleY))
	v := m.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return Vec2{X: v[0], Y: v[1]}
}

func safeScale(s float64) float64 {
	if math.Abs(s) < minScale {
		return 1
	}
	return s
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// --- Affine helpers (camera view matrix) ---

// identityAffine is the identity affine matrix.
var identityAffine = [6]float64{1, 0, 0, 1, 0, 0}

// invertAffine computes the inverse of a 2D affine matrix.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityAffine
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
