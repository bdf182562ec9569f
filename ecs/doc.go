// Package ecs provides ECS adapters for tabletop's transform and gesture
// output.
//
// The primary adapter is [NewDonburiStore], which publishes normalized
// transform patches and recognized double taps into a [Donburi] world as
// typed events. Subscribe to [PatchEventType] and [DoubleTapEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	dispatcher := tabletop.NewTransformDispatcher(scene, gridSize, store)
//	router.Gestures().OnDoubleTap = store.DoubleTap
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
