// Package tabletop is the input and scene core of a shared virtual tabletop
// for [Ebitengine].
//
// It turns raw mouse and touch input into tool actions on a board of maps,
// tokens, drawings, props, a staging zone, and player pings, and turns
// manipulation-handle output into store patches in each object's own
// coordinate convention.
//
// # Quick start
//
// Wire a router, camera, and input source into your [ebiten.Game]:
//
//	scene := tabletop.NewSceneGraph()
//	cam := tabletop.NewCamera(tabletop.Rect{Width: 960, Height: 640})
//	router := tabletop.NewEventRouter(modes, tabletop.ToolHandlers{
//		CameraDown: cam.PanDown,
//		CameraMove: cam.PanMove,
//		CameraUp:   cam.PanUp,
//	}, nil)
//	input := tabletop.NewInputSource(router, cam, tabletop.SceneResolver{Scene: scene})
//
//	func (g *Game) Update() error {
//		g.scene.Objects(g.store.Snapshot())
//		g.input.Update()
//		g.cam.Update(1.0 / 60)
//		return nil
//	}
//
// # Scene graph
//
// A [RoomSnapshot] carries either a unified list of scene objects or the
// legacy per-type fields. [SceneGraph.Objects] derives one typed, ordered
// [SceneObject] list from either form and memoizes it on the snapshot
// pointer, so publish a new snapshot value for every change.
//
// Object IDs are "map" and "staging-zone" for the singletons and
// "<type>:<id>" for everything else, for example "token:t1".
//
// # Event routing
//
// [EventRouter] decides which tool handlers run for each event category.
// Pointer-down and pointer-move broadcast to every handler and each handler
// checks its own mode. Clicks and taps route exclusively by priority:
// alignment, then select, then the no-tool path, then the pointer tool. Every
// click and tap is first shown to the [GestureDetector], which recognizes
// double taps from mouse and touch alike.
//
// # Transform dispatch
//
// [TransformDispatcher] normalizes [TransformPatch] values before they reach
// the store: token positions are dropped, since tokens move only through the
// drag-and-snap path, and prop and staging zone positions are converted from
// pixels to grid units.
//
// # Configuration
//
// Thresholds load from YAML with [LoadConfig]. Logging goes through
// [logrus]; replace the logger with [SetLogger] and enable routing traces
// with [SetDebugMode].
//
// Transform patches and double taps can be bridged into a [Donburi] world
// with the tabletop/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
// [logrus]: https://github.com/sirupsen/logrus
// [Donburi]: https://github.com/yohamta/donburi
package tabletop
