package tabletop

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestUnifiedObjectDefaults(t *testing.T) {
	snap := &RoomSnapshot{
		SceneObjects: []UnifiedObject{{
			ID:        "prop:p1",
			Type:      ObjectProp,
			ZIndex:    3,
			Transform: PartialTransform{X: f64(5), Y: f64(5)},
		}},
	}
	objs := BuildSceneObjects(snap)
	require.Len(t, objs, 1)
	assert.Equal(t, Transform{X: 5, Y: 5, ScaleX: 1, ScaleY: 1, Rotation: 0}, objs[0].Transform)
	assert.Equal(t, "prop:p1", objs[0].ID)
	assert.Equal(t, 3, objs[0].ZIndex)
}

func TestUnifiedObjectTransformCloned(t *testing.T) {
	x := 5.0
	snap := &RoomSnapshot{
		SceneObjects: []UnifiedObject{{ID: "a", Type: ObjectProp, Transform: PartialTransform{X: &x}}},
	}
	objs := BuildSceneObjects(snap)
	x = 99
	assert.Equal(t, 5.0, objs[0].Transform.X)
	assert.Nil(t, snap.SceneObjects[0].Transform.Y, "input snapshot must not be completed in place")
}

func TestUnifiedListWinsOverLegacy(t *testing.T) {
	snap := &RoomSnapshot{
		SceneObjects: []UnifiedObject{{ID: "prop:p1", Type: ObjectProp}},
		Tokens:       []Token{{ID: "t1"}},
		Map:          &MapBackground{ImageURL: "m.png"},
	}
	objs := BuildSceneObjects(snap)
	require.Len(t, objs, 1)
	assert.Equal(t, "prop:p1", objs[0].ID)
}

func TestLegacyToken(t *testing.T) {
	snap := &RoomSnapshot{
		Tokens: []Token{{ID: "t1", Owner: "u1", X: 100, Y: 50, Name: "Goblin", Size: 2}},
	}
	objs := BuildSceneObjects(snap)
	require.Len(t, objs, 1)
	assert.Equal(t, SceneObject{
		ID:        "token:t1",
		Type:      ObjectToken,
		Owner:     "u1",
		ZIndex:    10,
		Transform: Transform{X: 100, Y: 50, ScaleX: 1, ScaleY: 1},
		Data:      TokenData{Name: "Goblin", Size: 2},
	}, objs[0])
}

func TestLegacyOrderAndLocks(t *testing.T) {
	snap := &RoomSnapshot{
		Map:         &MapBackground{ImageURL: "map.png", X: 0, Y: 0, Width: 1000, Height: 800},
		Tokens:      []Token{{ID: "a"}, {ID: "b"}},
		Drawings:    []Drawing{{ID: "d1", Points: []Vec2{{X: 0, Y: 0}, {X: 10, Y: 10}}}},
		StagingZone: &StagingZone{X: 10, Y: 20, Width: 100, Height: 50, Rotation: 45},
		Pointers:    []Pointer{{ID: "p1", Owner: "u1"}},
	}
	objs := BuildSceneObjects(snap)

	var ids []string
	for _, o := range objs {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"map", "token:a", "token:b", "drawing:d1", "staging-zone", "pointer:p1"}, ids)

	byID := map[string]SceneObject{}
	for _, o := range objs {
		byID[o.ID] = o
	}
	assert.True(t, byID["map"].Locked)
	assert.Equal(t, -100, byID["map"].ZIndex)
	assert.True(t, byID["staging-zone"].Locked)
	assert.Equal(t, -80, byID["staging-zone"].ZIndex)
	assert.Equal(t, 45.0, byID["staging-zone"].Transform.Rotation)
	assert.Equal(t, 10.0, byID["staging-zone"].Transform.X, "staging zone position is copied literally")
	assert.True(t, byID["pointer:p1"].Locked)
	assert.Equal(t, 20, byID["pointer:p1"].ZIndex)
	assert.False(t, byID["token:a"].Locked)
	assert.Equal(t, 5, byID["drawing:d1"].ZIndex)
	assert.Equal(t, IdentityTransform(), byID["drawing:d1"].Transform)
}

func TestLegacyPointerKeyFallsBackToOwner(t *testing.T) {
	objs := BuildSceneObjects(&RoomSnapshot{Pointers: []Pointer{{Owner: "alice", X: 1, Y: 2}}})
	require.Len(t, objs, 1)
	assert.Equal(t, "pointer:alice", objs[0].ID)
}

func TestEmptySnapshot(t *testing.T) {
	assert.Nil(t, BuildSceneObjects(nil))
	assert.Empty(t, BuildSceneObjects(&RoomSnapshot{}))
}

func TestSceneGraphMemoization(t *testing.T) {
	g := NewSceneGraph()
	snap := &RoomSnapshot{Tokens: []Token{{ID: "t1"}}, GridSize: 50}

	first := g.Objects(snap)
	second := g.Objects(snap)
	assert.Equal(t, 1, g.builds)
	require.Len(t, second, 1)
	assert.Same(t, &first[0], &second[0], "same snapshot must return the cached list")

	next := &RoomSnapshot{Tokens: []Token{{ID: "t1"}, {ID: "t2"}}, GridSize: 50}
	objs := g.Objects(next)
	assert.Equal(t, 2, g.builds)
	assert.Len(t, objs, 2)
	assert.Same(t, next, g.Snapshot())
	assert.Equal(t, 50.0, g.GridSize())
}

func TestSceneGraphLookup(t *testing.T) {
	g := NewSceneGraph()
	g.Objects(&RoomSnapshot{Tokens: []Token{{ID: "t1", X: 7}}})

	obj, ok := g.Lookup("token:t1")
	require.True(t, ok)
	assert.Equal(t, 7.0, obj.Transform.X)

	_, ok = g.Lookup("token:missing")
	assert.False(t, ok)

	g.Objects(&RoomSnapshot{})
	_, ok = g.Lookup("token:t1")
	assert.False(t, ok, "lookup must not see objects from an older snapshot")
}

func TestSceneGraphDrawOrder(t *testing.T) {
	g := NewSceneGraph()
	g.Objects(&RoomSnapshot{
		Pointers:    []Pointer{{ID: "p"}},
		Tokens:      []Token{{ID: "a"}, {ID: "b"}},
		Drawings:    []Drawing{{ID: "d"}},
		StagingZone: &StagingZone{},
		Map:         &MapBackground{},
	})
	var ids []string
	for _, o := range g.DrawOrder() {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"map", "staging-zone", "drawing:d", "token:a", "token:b", "pointer:p"}, ids)
}

func TestSnapshotJSON(t *testing.T) {
	raw := `{
		"gridSize": 50,
		"map": {"imageUrl": "dungeon.png", "x": 0, "y": 0, "width": 2000, "height": 1500},
		"tokens": [{"id": "t1", "owner": "u1", "x": 100, "y": 150, "name": "Rogue"}],
		"stagingZone": {"x": 5, "y": 5, "width": 200, "height": 100, "rotation": 90}
	}`
	var snap RoomSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))

	objs := BuildSceneObjects(&snap)
	require.Len(t, objs, 3)
	assert.Equal(t, ObjectMap, objs[0].Type)
	assert.Equal(t, MapData{ImageURL: "dungeon.png", Width: 2000, Height: 1500}, objs[0].Data)
	assert.Equal(t, "token:t1", objs[1].ID)
	assert.Equal(t, Vec2{X: 100, Y: 150}, Vec2{X: objs[1].Transform.X, Y: objs[1].Transform.Y})
	assert.Equal(t, 90.0, objs[2].Transform.Rotation)
}

func TestUnifiedSnapshotJSON(t *testing.T) {
	raw := `{"sceneObjects": [{"id": "prop:tree", "type": "prop", "zIndex": 1, "transform": {"x": 2, "rotation": 30}}]}`
	var snap RoomSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))

	objs := BuildSceneObjects(&snap)
	require.Len(t, objs, 1)
	assert.Equal(t, Transform{X: 2, Y: 0, ScaleX: 1, ScaleY: 1, Rotation: 30}, objs[0].Transform)
}

func TestLegacySingleToken(t *testing.T) {
	objs := BuildSceneObjects(&RoomSnapshot{Tokens: []Token{{ID: "t1", X: 10, Y: 20}}})
	require.Len(t, objs, 1)
	assert.Equal(t, "token:t1", objs[0].ID)
	assert.Equal(t, ObjectToken, objs[0].Type)
	assert.Equal(t, 10, objs[0].ZIndex)
	assert.Equal(t, Transform{X: 10, Y: 20, ScaleX: 1, ScaleY: 1, Rotation: 0}, objs[0].Transform)
}

func TestLegacyPointerKeysStayUnique(t *testing.T) {
	hook := withTestLogger(t)
	g := NewSceneGraph()
	objs := g.Objects(&RoomSnapshot{Pointers: []Pointer{
		{Owner: "alice", X: 1},
		{Owner: "alice", X: 2},
		{X: 3},
		{ID: "p9", Owner: "alice", X: 4},
	}})

	var ids []string
	for _, o := range objs {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"pointer:alice", "pointer:alice#1", "pointer:#2", "pointer:p9"}, ids)

	obj, ok := g.Lookup("pointer:alice#1")
	require.True(t, ok)
	assert.Equal(t, 2.0, obj.Transform.X)

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "#2", hook.LastEntry().Data["key"])
}

func TestDrawOrderIsStableAcrossRebuilds(t *testing.T) {
	g := NewSceneGraph()
	var objs []UnifiedObject
	for i := range 40 {
		objs = append(objs, UnifiedObject{ID: strconv.Itoa(i), Type: ObjectProp, ZIndex: i % 3})
	}
	g.Objects(&RoomSnapshot{SceneObjects: objs})

	check := func() {
		t.Helper()
		order := g.DrawOrder()
		require.Len(t, order, len(g.objects))
		for i := 1; i < len(order); i++ {
			prev, cur := order[i-1], order[i]
			require.LessOrEqual(t, prev.ZIndex, cur.ZIndex)
			if prev.ZIndex == cur.ZIndex {
				p, _ := strconv.Atoi(prev.ID)
				c, _ := strconv.Atoi(cur.ID)
				require.Less(t, p, c, "equal z-index must keep derivation order")
			}
		}
	}
	check()

	g.Objects(&RoomSnapshot{SceneObjects: objs[:10]})
	check()
}

func TestUnifiedJSONDecodesTypedPayloads(t *testing.T) {
	raw := `{"sceneObjects": [
		{"id": "token:t1", "type": "token", "zIndex": 10, "transform": {}, "data": {"name": "Rogue", "size": 2}},
		{"id": "drawing:wrapped", "type": "drawing", "zIndex": 5, "transform": {}, "data": {"drawing": {"id": "w", "width": 3}}},
		{"id": "drawing:bare", "type": "drawing", "zIndex": 5, "transform": {}, "data": {"id": "b", "points": [{"x": 1, "y": 2}]}},
		{"id": "sticker:1", "type": "sticker", "zIndex": 0, "transform": {}, "data": {"emoji": "x"}},
		{"id": "prop:odd", "type": "prop", "zIndex": 0, "transform": {}, "data": [1, 2]},
		{"id": "prop:none", "type": "prop", "zIndex": 0, "transform": {}}
	]}`
	var snap RoomSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))

	objs := BuildSceneObjects(&snap)
	require.Len(t, objs, 6)
	assert.Equal(t, TokenData{Name: "Rogue", Size: 2}, objs[0].Data)
	assert.Equal(t, DrawingData{Drawing: Drawing{ID: "w", Width: 3}}, objs[1].Data)
	assert.Equal(t, DrawingData{Drawing: Drawing{ID: "b", Points: []Vec2{{X: 1, Y: 2}}}}, objs[2].Data)
	assert.Equal(t, map[string]any{"emoji": "x"}, objs[3].Data, "unknown types keep the raw payload")
	assert.Equal(t, []any{1.0, 2.0}, objs[4].Data, "payloads that do not fit their type are kept raw")
	assert.Nil(t, objs[5].Data)
}
