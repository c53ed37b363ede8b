// Package viz is the interactive terminal front end for telemetry playback.
//
// The package hosts a [playback.Scheduler] inside a Bubble Tea program:
//
//   - [Model]: host loop, advancing the virtual clock on every [TickMsg]
//   - [Canvas]: Braille-based pixel canvas for the board wireframe
//   - [Camera]: perspective projection of the rotated board
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first frame
//	+/-   - Playback speed
//	T     - Cycle color themes
//	Z/z   - Zoom in/out
//	?     - Show help overlay
//	Q     - Quit
package viz
