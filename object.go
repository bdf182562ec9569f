package tabletop

// --- Payloads ---

// MapData is the payload of the background map object.
type MapData struct {
	ImageURL string  `json:"imageUrl,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
}

// TokenData is the payload of a token object. Size is measured in grid cells.
type TokenData struct {
	Name     string  `json:"name,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Color    string  `json:"color,omitempty"`
	Size     float64 `json:"size,omitempty"`
}

// DrawingData wraps the raw drawing payload of a legacy snapshot.
type DrawingData struct {
	Drawing Drawing `json:"drawing"`
}

// StagingZoneData is the payload of the staging zone. Dimensions are in grid
// units.
type StagingZoneData struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// PropData is the payload of a prop object. Dimensions are in grid units.
type PropData struct {
	Name     string  `json:"name,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
}

// PointerData is the payload of a transient ping.
type PointerData struct {
	PointerID string `json:"pointerId,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// --- SceneObject ---

// SceneObject is a single positioned, typed entity on the shared canvas.
// A flat struct is used for all object types; the type-specific payload lives
// in Data.
type SceneObject struct {
	// Identity. Objects synthesized from legacy snapshot fields carry a
	// type-prefixed ID such as "token:t1".
	ID   string     `json:"id"`
	Type ObjectType `json:"type"`

	// Ownership
	Owner  string `json:"owner,omitempty"`
	Locked bool   `json:"locked,omitempty"`

	// Ordering: lower ZIndex draws first (behind).
	ZIndex int `json:"zIndex"`

	// Transform is always fully populated.
	Transform Transform `json:"transform"`

	// Type-specific payload (MapData, TokenData, DrawingData, ...). Objects
	// passed through from a unified snapshot keep whatever payload they carry.
	Data any `json:"data,omitempty"`
}

// Z-index bands for objects synthesized from legacy snapshot fields.
const (
	zIndexMap         = -100
	zIndexStagingZone = -80
	zIndexDrawing     = 5
	zIndexToken       = 10
	zIndexPointer     = 20
)

// Fixed IDs of the singleton legacy objects.
const (
	MapObjectID         = "map"
	StagingZoneObjectID = "staging-zone"
)

// prefixedID returns the globally unique ID of a legacy-derived object.
func prefixedID(t ObjectType, id string) string {
	return string(t) + ":" + id
}

// newMapObject creates the locked background map object.
func newMapObject(m *MapBackground) SceneObject {
	return SceneObject{
		ID:        MapObjectID,
		Type:      ObjectMap,
		Locked:    true,
		ZIndex:    zIndexMap,
		Transform: At(m.X, m.Y),
		Data:      MapData{ImageURL: m.ImageURL, Width: m.Width, Height: m.Height},
	}
}

// newTokenObject creates a token object at the token's literal position.
func newTokenObject(tk Token) SceneObject {
	return SceneObject{
		ID:        prefixedID(ObjectToken, tk.ID),
		Type:      ObjectToken,
		Owner:     tk.Owner,
		ZIndex:    zIndexToken,
		Transform: At(tk.X, tk.Y),
		Data:      TokenData{Name: tk.Name, ImageURL: tk.ImageURL, Color: tk.Color, Size: tk.Size},
	}
}

// newDrawingObject creates a drawing object. Drawing points are already in
// world space, so the transform is the identity.
func newDrawingObject(d Drawing) SceneObject {
	return SceneObject{
		ID:        prefixedID(ObjectDrawing, d.ID),
		Type:      ObjectDrawing,
		Owner:     d.Owner,
		ZIndex:    zIndexDrawing,
		Transform: IdentityTransform(),
		Data:      DrawingData{Drawing: d},
	}
}

// newStagingZoneObject creates the locked staging zone object.
func newStagingZoneObject(z *StagingZone) SceneObject {
	tr := At(z.X, z.Y)
	tr.Rotation = z.Rotation
	return SceneObject{
		ID:        StagingZoneObjectID,
		Type:      ObjectStagingZone,
		Locked:    true,
		ZIndex:    zIndexStagingZone,
		Transform: tr,
		Data:      StagingZoneData{Width: z.Width, Height: z.Height, Label: z.Label},
	}
}

// newPointerObject creates a locked ping object identified by key (see
// pointerKey).
func newPointerObject(p Pointer, key string) SceneObject {
	return SceneObject{
		ID:        prefixedID(ObjectPointer, key),
		Type:      ObjectPointer,
		Owner:     p.Owner,
		Locked:    true,
		ZIndex:    zIndexPointer,
		Transform: At(p.X, p.Y),
		Data:      PointerData{PointerID: p.ID, Timestamp: p.Timestamp},
	}
}
