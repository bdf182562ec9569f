package tabletop

import "encoding/json"

// RoomSnapshot is the authoritative state of a room as received from the
// store. It carries either a unified SceneObjects list or the legacy discrete
// fields; when SceneObjects is non-empty the legacy fields are ignored.
type RoomSnapshot struct {
	// Unified representation.
	SceneObjects []UnifiedObject `json:"sceneObjects,omitempty"`

	// Legacy representation.
	Map         *MapBackground `json:"map,omitempty"`
	Tokens      []Token        `json:"tokens,omitempty"`
	Drawings    []Drawing      `json:"drawings,omitempty"`
	StagingZone *StagingZone   `json:"stagingZone,omitempty"`
	Pointers    []Pointer      `json:"pointers,omitempty"`

	// Board geometry.
	GridSize    float64 `json:"gridSize,omitempty"`
	WorldWidth  float64 `json:"worldWidth,omitempty"`
	WorldHeight float64 `json:"worldHeight,omitempty"`
}

// UnifiedObject is a scene object as stored in a unified snapshot. Its
// transform may be partial; missing fields are filled with defaults when the
// scene graph is built.
type UnifiedObject struct {
	ID        string           `json:"id"`
	Type      ObjectType       `json:"type"`
	Owner     string           `json:"owner,omitempty"`
	Locked    bool             `json:"locked,omitempty"`
	ZIndex    int              `json:"zIndex"`
	Transform PartialTransform `json:"transform"`
	Data      any              `json:"data,omitempty"`
}

// UnmarshalJSON decodes a unified object, decoding data into the typed
// payload for its type (TokenData for tokens, PropData for props, and so on).
// A payload of an unknown type, or one that does not fit its type's payload,
// is kept as the generic JSON value.
func (o *UnifiedObject) UnmarshalJSON(b []byte) error {
	type plain UnifiedObject
	aux := struct {
		*plain
		Data json.RawMessage `json:"data,omitempty"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	o.Data = nil
	if len(aux.Data) == 0 || string(aux.Data) == "null" {
		return nil
	}
	if data, ok := decodeObjectData(o.Type, aux.Data); ok {
		o.Data = data
		return nil
	}
	var raw any
	if err := json.Unmarshal(aux.Data, &raw); err != nil {
		return err
	}
	o.Data = raw
	return nil
}

// decodeObjectData decodes raw into the payload type of t.
func decodeObjectData(t ObjectType, raw json.RawMessage) (any, bool) {
	switch t {
	case ObjectMap:
		return decodeAs[MapData](raw)
	case ObjectToken:
		return decodeAs[TokenData](raw)
	case ObjectProp:
		return decodeAs[PropData](raw)
	case ObjectStagingZone:
		return decodeAs[StagingZoneData](raw)
	case ObjectPointer:
		return decodeAs[PointerData](raw)
	case ObjectDrawing:
		// Accept both the wrapped form {"drawing": {...}} and a bare drawing.
		var wrapped struct {
			Drawing *Drawing `json:"drawing"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, false
		}
		if wrapped.Drawing != nil {
			return DrawingData{Drawing: *wrapped.Drawing}, true
		}
		d, ok := decodeAs[Drawing](raw)
		if !ok {
			return nil, false
		}
		return DrawingData{Drawing: d}, true
	}
	return nil, false
}

func decodeAs[T any](raw json.RawMessage) (T, bool) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

// PartialTransform is a transform whose fields may be absent.
type PartialTransform struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	ScaleX   *float64 `json:"scaleX,omitempty"`
	ScaleY   *float64 `json:"scaleY,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
}

// Resolve returns a fully populated copy of p. Missing fields take the
// identity defaults: x=0, y=0, scaleX=1, scaleY=1, rotation=0.
func (p PartialTransform) Resolve() Transform {
	t := IdentityTransform()
	if p.X != nil {
		t.X = *p.X
	}
	if p.Y != nil {
		t.Y = *p.Y
	}
	if p.ScaleX != nil {
		t.ScaleX = *p.ScaleX
	}
	if p.ScaleY != nil {
		t.ScaleY = *p.ScaleY
	}
	if p.Rotation != nil {
		t.Rotation = *p.Rotation
	}
	return t
}

// --- Legacy fields ---

// MapBackground is the legacy background map.
type MapBackground struct {
	ImageURL string  `json:"imageUrl,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
}

// Token is a legacy token record. X and Y are pixel positions.
type Token struct {
	ID       string  `json:"id"`
	Owner    string  `json:"owner,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Name     string  `json:"name,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Color    string  `json:"color,omitempty"`
	Size     float64 `json:"size,omitempty"`
}

// Drawing is a legacy drawing record. Points are world-space pixels.
type Drawing struct {
	ID     string  `json:"id"`
	Owner  string  `json:"owner,omitempty"`
	Tool   string  `json:"tool,omitempty"`
	Color  string  `json:"color,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Points []Vec2  `json:"points,omitempty"`
}

// StagingZone is the legacy staging zone record, in grid units.
type StagingZone struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation,omitempty"`
	Label    string  `json:"label,omitempty"`
}

// Pointer is a legacy ping record. ID may be empty, in which case the ping is
// identified by its owner.
type Pointer struct {
	ID        string  `json:"id,omitempty"`
	Owner     string  `json:"owner,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"timestamp,omitempty"`
}
