package tabletop

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"
)

// SceneGraph derives the typed, ordered list of scene objects from a room
// snapshot. The derivation is memoized on snapshot identity: passing the same
// *RoomSnapshot again returns the cached list without recomputing it. Callers
// must treat a snapshot as immutable once handed over and publish changes as
// a new snapshot value.
type SceneGraph struct {
	snapshot *RoomSnapshot
	built    bool
	objects  []SceneObject
	index    map[string]int

	// Draw order cache, rebuilt lazily after each derivation.
	sorted      []SceneObject
	sortedValid bool

	builds int // number of derivations, for tests
}

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{index: make(map[string]int)}
}

// Objects returns the scene objects derived from snap. The returned slice is
// shared with the scene graph and MUST NOT be mutated by the caller.
func (g *SceneGraph) Objects(snap *RoomSnapshot) []SceneObject {
	if g.built && snap == g.snapshot {
		return g.objects
	}
	g.snapshot = snap
	g.built = true
	g.builds++
	g.objects = BuildSceneObjects(snap)
	g.sortedValid = false

	clear(g.index)
	for i := range g.objects {
		g.index[g.objects[i].ID] = i
	}
	if globalDebug {
		logger.WithField("objects", len(g.objects)).Debug("scene graph rebuilt")
	}
	return g.objects
}

// Snapshot returns the snapshot the current object list was derived from.
func (g *SceneGraph) Snapshot() *RoomSnapshot {
	return g.snapshot
}

// GridSize returns the grid size of the current snapshot, or 0 if none.
func (g *SceneGraph) GridSize() float64 {
	if g.snapshot == nil {
		return 0
	}
	return g.snapshot.GridSize
}

// Lookup returns the object with the given ID from the most recent
// derivation.
func (g *SceneGraph) Lookup(id string) (SceneObject, bool) {
	i, ok := g.index[id]
	if !ok {
		return SceneObject{}, false
	}
	return g.objects[i], true
}

// DrawOrder returns the current objects sorted by ZIndex, lowest first.
// Objects with equal ZIndex keep their derivation order. The returned slice
// is reused between calls and MUST NOT be mutated by the caller.
func (g *SceneGraph) DrawOrder() []SceneObject {
	if g.sortedValid {
		return g.sorted
	}
	g.sorted = sortByZIndex(g.sorted, g.objects)
	g.sortedValid = true
	return g.sorted
}

// sortByZIndex copies src into dst and stable-sorts it by ZIndex.
func sortByZIndex(dst, src []SceneObject) []SceneObject {
	n := len(src)
	if cap(dst) < n {
		dst = make([]SceneObject, n)
	}
	dst = dst[:n]
	copy(dst, src)
	slices.SortStableFunc(dst, func(a, b SceneObject) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	return dst
}

// BuildSceneObjects derives the scene object list from snap without
// memoization. A non-empty unified list is passed through with every
// transform cloned and completed; otherwise the list is synthesized from the
// legacy fields in fixed order: map, tokens, drawings, staging zone, pointers.
func BuildSceneObjects(snap *RoomSnapshot) []SceneObject {
	if snap == nil {
		return nil
	}
	if len(snap.SceneObjects) > 0 {
		return passThroughUnified(snap.SceneObjects)
	}
	return synthesizeLegacy(snap)
}

func passThroughUnified(in []UnifiedObject) []SceneObject {
	out := make([]SceneObject, len(in))
	for i, u := range in {
		out[i] = SceneObject{
			ID:        u.ID,
			Type:      u.Type,
			Owner:     u.Owner,
			Locked:    u.Locked,
			ZIndex:    u.ZIndex,
			Transform: u.Transform.Resolve(),
			Data:      u.Data,
		}
	}
	return out
}

func synthesizeLegacy(snap *RoomSnapshot) []SceneObject {
	n := len(snap.Tokens) + len(snap.Drawings) + len(snap.Pointers) + 2
	out := make([]SceneObject, 0, n)

	if snap.Map != nil {
		out = append(out, newMapObject(snap.Map))
	}
	for _, tk := range snap.Tokens {
		out = append(out, newTokenObject(tk))
	}
	for _, d := range snap.Drawings {
		out = append(out, newDrawingObject(d))
	}
	if snap.StagingZone != nil {
		out = append(out, newStagingZoneObject(snap.StagingZone))
	}
	var seen map[string]bool
	if len(snap.Pointers) > 1 {
		seen = make(map[string]bool, len(snap.Pointers))
	}
	for i, p := range snap.Pointers {
		out = append(out, newPointerObject(p, pointerKey(p, i, seen)))
	}
	return out
}

// pointerKey returns the ID key of the i-th ping: its own ID when present,
// otherwise its owner. A ping with neither, or whose key is already taken,
// is keyed by its list position instead.
func pointerKey(p Pointer, i int, seen map[string]bool) string {
	key := p.ID
	if key == "" {
		key = p.Owner
	}
	if key == "" || seen[key] {
		fallback := p.Owner + "#" + strconv.Itoa(i)
		logger.WithFields(logrus.Fields{
			"owner": p.Owner,
			"index": i,
			"key":   fallback,
		}).Warn("ping without a unique id; keyed by position")
		key = fallback
	}
	if seen != nil {
		seen[key] = true
	}
	return key
}
