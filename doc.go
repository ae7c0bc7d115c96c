// Package choreo is a time-driven interpolation engine for game and UI
// animation: a single-value [Tween] state machine plus a composite
// [Animation] that choreographs many tweens and nested animations with
// relative start delays.
//
// # Quick start
//
// A tween eases a progress ratio and hands the result to a [Target]:
//
//	var alpha float64
//	fade := choreo.NewTween("fade", 0.5, &choreo.FloatTarget{Field: &alpha, From: 0, To: 1})
//	fade.Easing = choreo.EaseOut{Family: choreo.Cubic}
//	fade.SetEndState(0, fade.Duration())
//
// Register top-level items on a [Scheduler] and tick it once per frame:
//
//	sched := choreo.NewScheduler("game")
//	sched.Add(fade)
//	// every frame:
//	sched.Tick(clock.Frame(dt))
//
// # Composition
//
// An [Animation] holds children, each with a relative delay. SetEndState runs
// every child forward after its delay. SetBeginState runs them backward with
// mirrored delays, so the reverse run is the time reflection of the forward
// one and the animation reaches its begin state [Animation.TotalDuration]
// after activation, give or take the tick that crosses a child's delay:
//
//	intro := choreo.NewAnimation("intro")
//	intro.AddTween("fade", 2, 0, fadeTarget)
//	intro.AddTween("slide", 1, 3, slideTarget)
//	intro.AddTween("grow", 4, 1, growTarget)
//	intro.TotalDuration() // 5
//	intro.SetBeginState(0) // backward delays 3, 1, 0
//
// Begin and end events fire through [Signal] values once per settle. Loop
// policies ([Loop], [PingPong]) re-arm on the same tick; a [Loop] tween never
// settles, so it fires no events.
//
// # Drivers
//
// [Clock] turns host steps into [Frame] values with scaled and unscaled
// deltas. [Preview] is an author-time driver with manual single-stepping and
// JSON [Script] playback; an item can be attached to the preview or to a
// production scheduler, never both. The ebitenhost package runs a scheduler
// inside an Ebitengine game loop, telemetry publishes settle events over
// MQTT, and the ecs module bridges them into a Donburi world.
//
// Everything is single-threaded: no call blocks, and each tick completes
// before the next begins.
package choreo
