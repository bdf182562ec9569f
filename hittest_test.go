package tabletop

import (
	"encoding/json"
	"testing"
)

func TestHitShapes(t *testing.T) {
	r := HitRect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(5, 5) || !r.Contains(10, 10) || r.Contains(11, 5) {
		t.Error("HitRect containment wrong")
	}
	c := HitCircle{CenterX: 0, CenterY: 0, Radius: 5}
	if !c.Contains(3, 4) || c.Contains(4, 4) {
		t.Error("HitCircle containment wrong")
	}
}

func hitScene() []SceneObject {
	return BuildSceneObjects(&RoomSnapshot{
		Map:      &MapBackground{Width: 1000, Height: 1000},
		Drawings: []Drawing{{ID: "d1", Width: 4, Points: []Vec2{{X: 0, Y: 0}, {X: 200, Y: 0}}}},
		Tokens: []Token{
			{ID: "small", X: 100, Y: 100},
			{ID: "big", X: 300, Y: 300, Size: 2},
		},
		Pointers: []Pointer{{ID: "ping", X: 110, Y: 110}},
	})
}

func TestHitTest(t *testing.T) {
	objs := hitScene()
	tests := []struct {
		name   string
		world  Vec2
		wantID string
	}{
		{"token centre", Vec2{X: 125, Y: 125}, "token:small"},
		{"inside token under ping", Vec2{X: 110, Y: 110}, "token:small"},
		{"token cell corner outside the piece", Vec2{X: 101, Y: 101}, ""},
		{"outside small token", Vec2{X: 160, Y: 160}, ""},
		{"inside big token", Vec2{X: 380, Y: 380}, "token:big"},
		{"big token cell corner", Vec2{X: 395, Y: 395}, ""},
		{"drawing stroke", Vec2{X: 50, Y: 1}, "drawing:d1"},
		{"beside drawing stroke", Vec2{X: 50, Y: 10}, ""},
		{"map only", Vec2{X: 700, Y: 700}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := HitTest(objs, tt.world, 50)
			if tt.wantID == "" {
				if ok {
					t.Errorf("hit %q, want background", obj.ID)
				}
				return
			}
			if !ok || obj.ID != tt.wantID {
				t.Errorf("hit %q (ok=%v), want %q", obj.ID, ok, tt.wantID)
			}
		})
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	objs := []SceneObject{
		{ID: "below", Type: ObjectToken, Transform: At(0, 0), Data: TokenData{}},
		{ID: "above", Type: ObjectToken, Transform: At(10, 10), Data: TokenData{}},
	}
	obj, ok := HitTest(objs, Vec2{X: 20, Y: 20}, 50)
	if !ok || obj.ID != "above" {
		t.Errorf("hit %q, want above", obj.ID)
	}
}

func TestHitTestRotatedProp(t *testing.T) {
	// A 2x1-cell prop at grid (2, 2) rotated 90 degrees occupies
	// x in [50, 100], y in [100, 200] in pixels.
	objs := []SceneObject{{
		ID:        "prop:bench",
		Type:      ObjectProp,
		Transform: Transform{X: 2, Y: 2, ScaleX: 1, ScaleY: 1, Rotation: 90},
		Data:      PropData{Width: 2, Height: 1},
	}}
	if _, ok := HitTest(objs, Vec2{X: 75, Y: 150}, 50); !ok {
		t.Error("point inside rotated prop missed")
	}
	if _, ok := HitTest(objs, Vec2{X: 150, Y: 110}, 50); ok {
		t.Error("point in unrotated footprint should miss")
	}
}

func TestHitTestSkipsLockedAndUntyped(t *testing.T) {
	objs := []SceneObject{
		{ID: "locked", Locked: true, Transform: At(0, 0), Data: TokenData{}},
		{ID: "raw", Transform: At(0, 0), Data: map[string]any{"size": 1}},
	}
	if obj, ok := HitTest(objs, Vec2{X: 5, Y: 5}, 50); ok {
		t.Errorf("hit %q, want nothing", obj.ID)
	}
}

func TestSceneResolver(t *testing.T) {
	g := NewSceneGraph()
	g.Objects(&RoomSnapshot{GridSize: 50, Tokens: []Token{{ID: "t1", X: 0, Y: 0}}})
	r := SceneResolver{Scene: g}
	if id := r.ResolveTarget(Vec2{X: 25, Y: 25}); id != "token:t1" {
		t.Errorf("ResolveTarget = %q, want token:t1", id)
	}
	if id := r.ResolveTarget(Vec2{X: 75, Y: 25}); id != "" {
		t.Errorf("ResolveTarget = %q, want background", id)
	}
	if id := (SceneResolver{}).ResolveTarget(Vec2{}); id != "" {
		t.Errorf("nil scene resolved %q", id)
	}
}

const unifiedRoomJSON = `{
	"gridSize": 50,
	"sceneObjects": [
		{"id": "map", "type": "map", "locked": true, "zIndex": -100, "transform": {}, "data": {"width": 1000, "height": 1000}},
		{"id": "token:t1", "type": "token", "zIndex": 10, "transform": {"x": 100, "y": 100}, "data": {"name": "Rogue", "size": 1}},
		{"id": "prop:crate", "type": "prop", "zIndex": 1, "transform": {"x": 6, "y": 0}, "data": {"width": 2, "height": 1}},
		{"id": "drawing:d1", "type": "drawing", "zIndex": 5, "transform": {}, "data": {"width": 4, "points": [{"x": 0, "y": 400}, {"x": 200, "y": 400}]}}
	]
}`

func TestSceneResolverUnifiedJSON(t *testing.T) {
	var snap RoomSnapshot
	if err := json.Unmarshal([]byte(unifiedRoomJSON), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	g := NewSceneGraph()
	g.Objects(&snap)
	r := SceneResolver{Scene: g}

	tests := []struct {
		name   string
		world  Vec2
		wantID string
	}{
		{"token", Vec2{X: 125, Y: 125}, "token:t1"},
		{"prop", Vec2{X: 350, Y: 25}, "prop:crate"},
		{"drawing", Vec2{X: 100, Y: 401}, "drawing:d1"},
		{"empty canvas over locked map", Vec2{X: 700, Y: 700}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id := r.ResolveTarget(tt.world); id != tt.wantID {
				t.Errorf("ResolveTarget(%v) = %q, want %q", tt.world, id, tt.wantID)
			}
		})
	}
}

func TestUnifiedJSONClickOnTokenKeepsSelection(t *testing.T) {
	var snap RoomSnapshot
	if err := json.Unmarshal([]byte(unifiedRoomJSON), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	g := NewSceneGraph()
	g.Objects(&snap)

	cleared := 0
	router := NewEventRouter(nil, ToolHandlers{ClearSelection: func() { cleared++ }}, nil)
	in := NewInputSource(router, nil, SceneResolver{Scene: g})

	in.InjectClick(125, 125)
	drain(in)
	if cleared != 0 {
		t.Errorf("click on token cleared the selection %d times", cleared)
	}

	in.InjectClick(700, 700)
	drain(in)
	if cleared != 1 {
		t.Errorf("click on empty canvas cleared %d times, want 1", cleared)
	}
}
