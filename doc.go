// Package overlay draws debug overlays on top of an [Ebitengine] game: an
// inspect mode with picking and dragging, pause, time-scale and recording
// indicators, and a log panel fed by a pretty-printer for arbitrary values.
//
// # Quick start
//
// Create the Ebitengine canvas, pointer and clock once, then call
// [Overlay.Draw] at the end of your Draw:
//
//	canvas, _ := overlay.NewScreenCanvas()
//	clock := overlay.NewSystemClock()
//	logs := overlay.NewLogBuffer(clock, 0)
//	ov := overlay.New(overlay.DefaultConfig())
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		// ... draw the game ...
//		canvas.Begin(screen)
//		ov.Draw(overlay.Frame{
//			Canvas:  canvas,
//			Scene:   g.scene,
//			Pointer: overlay.NewMousePointer(canvas),
//			Clock:   clock,
//			Logs:    logs,
//		})
//		canvas.End()
//	}
//
// # Scenes
//
// The inspect overlay reads the game through the [Scene] and [Object]
// interfaces. Games with their own scene graph implement them directly;
// [Node] and [NodeScene] are a small reference graph.
//
// # Logs
//
// [LogBuffer] holds timestamped messages, newest first. Anything can be
// logged: values are rendered with [Pretty], errors in the error style.
// Route [log/slog] output to the panel with [NewSlogHandler]:
//
//	slog.SetDefault(slog.New(overlay.NewSlogHandler(logs, nil)))
//
// # Automation
//
// [ScriptedPointer] injects pointer events frame by frame and
// [ScriptRunner] plays JSON scripts of clicks, drags, toggles and
// screenshots. [Recorder] writes PNG frames while recording is on.
//
// Interaction state changes can be forwarded to an ECS through
// [EventSink]; the overlay/ecs package adapts them to [Donburi] events.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package overlay
