// Package lumen is a particle narrative engine for [Ebitengine].
//
// A fixed field of point particles floats in 3D space. The field moves under
// one of four closed-form motion modes, and a sequence of chapters drives it
// from one mode to the next. Each chapter pairs a text card with a color. The
// camera eases toward the pointer and the whole field spins slowly.
//
// # Quick start
//
// [Run] opens a window and drives the engine:
//
//	e := lumen.NewEngine(lumen.EngineConfig{
//		Display:  lumen.NewCardDisplay(face),
//		Controls: true,
//	})
//	lumen.Run(e, lumen.RunConfig{Title: "lumen", Width: 800, Height: 600})
//
// Headless programs skip ebiten entirely and call [Engine.Frame] themselves,
// or hand a ticker to [RunLoop].
//
// # Motion modes
//
// A particle's position is always recomputed from its immutable origin, the
// simulation clock and the smoothed pointer. Nothing accumulates, so any
// instant can be reproduced with [Engine.Seek]. The four laws are:
//
//   - [ModeDrift]: each particle wobbles around its origin.
//   - [ModeVortex]: the field swirls about the y axis with a radial twist.
//   - [ModeAttract]: particles within reach of the pointer are pulled toward it.
//   - [ModeExplode]: particles fly outward along their origin direction and
//     wrap back periodically.
//
// [Displace] evaluates one particle; [Field.Evaluate] evaluates them all,
// optionally across goroutines.
//
// # Chapters
//
// A [Controller] walks a cyclic chapter list. Each [Controller.Advance] hides
// the [Display] at once, then after [DefaultTransitionDelay] presents the new
// content, switches mode and color and shows the display again. All delays
// are measured in frames on the loop, never by background timers.
//
// # Captions
//
// [Engine.RequestCaption] asks a [Captioner] for a one-line caption of the
// current chapter. The request runs in the background. Its result, or a
// fixed fallback on failure, reaches the display on a later frame. The
// gemini subpackage provides a Captioner backed by the Gemini API.
//
// # Testing
//
// [LoadTestScript] reads a JSON script of pointer moves, chapter changes,
// caption requests and screenshots. [Engine.SetTestRunner] replays it one step
// per frame, and [Engine.Screenshot] writes labeled PNGs.
//
// # ECS integration
//
// [Engine.SetEventSink] forwards every applied chapter as a [ChapterEvent].
// The ecs subpackage turns those into donburi events.
//
// [Ebitengine]: https://ebitengine.org
package lumen
